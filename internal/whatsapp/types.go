package whatsapp

// Message payloads for the WhatsApp Business Cloud API.

type TextMessage struct {
	MessagingProduct string `json:"messaging_product"`
	RecipientType    string `json:"recipient_type"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             Text   `json:"text"`
}

type Text struct {
	PreviewURL bool   `json:"preview_url,omitempty"`
	Body       string `json:"body"`
}

type InteractiveMessage struct {
	MessagingProduct string      `json:"messaging_product"`
	RecipientType    string      `json:"recipient_type"`
	To               string      `json:"to"`
	Type             string      `json:"type"`
	Interactive      Interactive `json:"interactive"`
}

// Interactive is a button or list message body.
type Interactive struct {
	Type   string  `json:"type"` // "button" or "list"
	Header *Header `json:"header,omitempty"`
	Body   Body    `json:"body"`
	Action Action  `json:"action"`
}

type Header struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type Body struct {
	Text string `json:"text"`
}

type Action struct {
	Buttons  []Button  `json:"buttons,omitempty"`
	Sections []Section `json:"sections,omitempty"`
	Button   string    `json:"button,omitempty"`
}

type Button struct {
	Type  string      `json:"type"`
	Reply ButtonReply `json:"reply"`
}

type ButtonReply struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type Section struct {
	Title string       `json:"title"`
	Rows  []SectionRow `json:"rows"`
}

type SectionRow struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}
