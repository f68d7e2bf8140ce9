package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/weknowyourgame/wa-commerce-backend/internal/domain"
)

var (
	ErrMerchantNotFound = errors.New("merchant not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrCustomerNotFound = errors.New("customer not found")
)

// Store encapsulates all reads and the audit write this service performs
// against the commerce database. Order/product/customer mutations other
// than order status live with the storefront backend, not here.
// Every operation runs under the configured timeout; an expired deadline
// surfaces as the query error and is never retried here.
type Store struct {
	db      *sql.DB
	timeout time.Duration
	nowFunc func() time.Time
}

func NewStore(db *sql.DB, timeout time.Duration) *Store {
	return &Store{db: db, timeout: timeout, nowFunc: time.Now}
}

func (s *Store) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

const merchantColumns = `m.id, m."userId", m."upiNumber", m."apiToken", m.website, m."businessInfo",
	       m."phoneNumberId", m."whatsappAccessToken", m."isOnboarded", m."onboardingStep",
	       m."createdAt", m."updatedAt"`

// MerchantByToken resolves a merchant by its opaque API access token.
func (s *Store) MerchantByToken(ctx context.Context, apiToken string) (*domain.Merchant, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	row := s.db.QueryRowContext(ctx,
		`SELECT `+merchantColumns+` FROM "Merchant" m WHERE m."apiToken" = $1`, apiToken)
	return scanMerchant(row)
}

// MerchantByPhoneNumberID resolves the merchant owning a channel-assigned
// WhatsApp phone number id.
func (s *Store) MerchantByPhoneNumberID(ctx context.Context, phoneNumberID string) (*domain.Merchant, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	row := s.db.QueryRowContext(ctx,
		`SELECT `+merchantColumns+` FROM "Merchant" m WHERE m."phoneNumberId" = $1`, phoneNumberID)
	return scanMerchant(row)
}

func scanMerchant(row *sql.Row) (*domain.Merchant, error) {
	var (
		m            domain.Merchant
		upiNumber    sql.NullString
		website      sql.NullString
		businessInfo []byte
		phoneID      sql.NullString
		waToken      sql.NullString
	)
	err := row.Scan(&m.ID, &m.UserID, &upiNumber, &m.APIToken, &website, &businessInfo,
		&phoneID, &waToken, &m.IsOnboarded, &m.OnboardingStep, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMerchantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("repository: scan merchant: %w", err)
	}
	m.UPINumber = upiNumber.String
	m.Website = website.String
	m.PhoneNumberID = phoneID.String
	m.WhatsAppAccessToken = waToken.String
	if len(businessInfo) > 0 {
		if err := json.Unmarshal(businessInfo, &m.BusinessInfo); err != nil {
			return nil, fmt.Errorf("repository: parse business info: %w", err)
		}
	}
	return &m, nil
}

// ProductsByMerchant lists the merchant's full catalog.
func (s *Store) ProductsByMerchant(ctx context.Context, merchantID string) ([]domain.Product, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.id, p."merchantId", p.name, p.description, p.price, p."imageUrl", p."createdAt", p."updatedAt"
		 FROM "Product" p WHERE p."merchantId" = $1`, merchantID)
	if err != nil {
		return nil, fmt.Errorf("repository: query products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var (
			p           domain.Product
			description sql.NullString
			imageURL    sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.MerchantID, &p.Name, &description, &p.Price,
			&imageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("repository: scan product: %w", err)
		}
		p.Description = description.String
		p.ImageURL = imageURL.String
		products = append(products, p)
	}
	return products, rows.Err()
}

// OrdersByMerchant lists the merchant's order history newest-first.
// A non-empty customerPhone narrows the list to that customer's orders.
func (s *Store) OrdersByMerchant(ctx context.Context, merchantID, customerPhone string) ([]domain.Order, error) {
	query := `SELECT o.id, o."customerId", o."merchantId", o."productId", o."txnId", o.amount, o.status,
	                 o."paidAt", o."createdAt", o."updatedAt", p.name, c.phone
	          FROM "Order" o
	          LEFT JOIN "Product" p ON o."productId" = p.id
	          LEFT JOIN "Customer" c ON o."customerId" = c.id
	          WHERE o."merchantId" = $1`
	args := []any{merchantID}
	if customerPhone != "" {
		query += ` AND c.phone = $2`
		args = append(args, customerPhone)
	}
	query += ` ORDER BY o."createdAt" DESC`

	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("repository: query orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

// OrderByID fetches one order scoped to the owning merchant.
func (s *Store) OrderByID(ctx context.Context, orderID, merchantID string) (*domain.Order, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	rows, err := s.db.QueryContext(ctx,
		`SELECT o.id, o."customerId", o."merchantId", o."productId", o."txnId", o.amount, o.status,
		        o."paidAt", o."createdAt", o."updatedAt", p.name, c.phone
		 FROM "Order" o
		 LEFT JOIN "Product" p ON o."productId" = p.id
		 LEFT JOIN "Customer" c ON o."customerId" = c.id
		 WHERE o.id = $1 AND o."merchantId" = $2`, orderID, merchantID)
	if err != nil {
		return nil, fmt.Errorf("repository: query order: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("repository: query order: %w", err)
		}
		return nil, ErrOrderNotFound
	}
	return scanOrder(rows)
}

func scanOrder(rows *sql.Rows) (*domain.Order, error) {
	var (
		o             domain.Order
		txnID         sql.NullString
		paidAt        sql.NullTime
		productName   sql.NullString
		customerPhone sql.NullString
	)
	if err := rows.Scan(&o.ID, &o.CustomerID, &o.MerchantID, &o.ProductID, &txnID, &o.Amount,
		&o.Status, &paidAt, &o.CreatedAt, &o.UpdatedAt, &productName, &customerPhone); err != nil {
		return nil, fmt.Errorf("repository: scan order: %w", err)
	}
	o.TxnID = txnID.String
	if paidAt.Valid {
		t := paidAt.Time
		o.PaidAt = &t
	}
	o.ProductName = productName.String
	o.CustomerPhone = customerPhone.String
	return &o, nil
}

// CustomerByPhone resolves a customer record by phone number.
func (s *Store) CustomerByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	var c domain.Customer
	err := s.db.QueryRowContext(ctx,
		`SELECT id, phone, "createdAt", "updatedAt" FROM "Customer" WHERE phone = $1`, phone).
		Scan(&c.ID, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("repository: scan customer: %w", err)
	}
	return &c, nil
}

// UpdateOrderStatus transitions an order's status; paidAt is set iff the new
// status is CONFIRMED. The order must belong to the merchant.
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID, merchantID string, status domain.OrderStatus) (*domain.Order, error) {
	if _, err := s.OrderByID(ctx, orderID, merchantID); err != nil {
		return nil, err
	}

	var paidAt any
	if status == domain.OrderStatusConfirmed {
		paidAt = s.nowFunc()
	}
	execCtx, cancel := s.opCtx(ctx)
	defer cancel()
	if _, err := s.db.ExecContext(execCtx,
		`UPDATE "Order" SET status = $1, "paidAt" = $2, "updatedAt" = $3 WHERE id = $4`,
		status, paidAt, s.nowFunc(), orderID); err != nil {
		return nil, fmt.Errorf("repository: update order status: %w", err)
	}
	return s.OrderByID(ctx, orderID, merchantID)
}

// InsertWebhookEvent appends one audit record. The table is a write-only
// sink for this service; records are never updated or deleted here.
func (s *Store) InsertWebhookEvent(ctx context.Context, ev domain.WebhookEvent) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO "WebhookEvent" (id, payload, "merchantId", "receivedAt") VALUES ($1, $2, $3, $4)`,
		ev.ID, []byte(ev.Payload), ev.MerchantID, ev.ReceivedAt); err != nil {
		return fmt.Errorf("repository: insert webhook event: %w", err)
	}
	return nil
}

// LoadContext fetches a merchant's bounded context as one logical read:
// profile, full catalog, and full order history newest-first. Any lookup
// fault, not just a missing merchant, collapses into ErrMerchantNotFound
// so callers never observe partial context.
func (s *Store) LoadContext(ctx context.Context, apiToken string) (*domain.MerchantContext, error) {
	merchant, err := s.MerchantByToken(ctx, apiToken)
	if err != nil {
		return nil, ErrMerchantNotFound
	}
	products, err := s.ProductsByMerchant(ctx, merchant.ID)
	if err != nil {
		return nil, ErrMerchantNotFound
	}
	orders, err := s.OrdersByMerchant(ctx, merchant.ID, "")
	if err != nil {
		return nil, ErrMerchantNotFound
	}
	return &domain.MerchantContext{
		Merchant: *merchant,
		Products: products,
		Orders:   orders,
	}, nil
}
