package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/weknowyourgame/wa-commerce-backend/internal/domain"
	"github.com/weknowyourgame/wa-commerce-backend/internal/validation"
)

// PipelineRunner processes one message through the AI pipeline.
type PipelineRunner interface {
	Run(ctx context.Context, message, apiToken string) *domain.AIResponse
}

// IntentHandler serves the synchronous POST /ai/intent endpoint.
type IntentHandler struct {
	runner    PipelineRunner
	validator *validatorv10.Validate
	logger    *zap.Logger
}

func NewIntentHandler(runner PipelineRunner, logger *zap.Logger) *IntentHandler {
	return &IntentHandler{
		runner:    runner,
		validator: validation.New(),
		logger:    logger,
	}
}

// bearerToken pulls the API token out of the Authorization header.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func (h *IntentHandler) ProcessIntent(c *gin.Context) {
	apiToken := bearerToken(c)
	if apiToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Authorization header with API token is required",
		})
		return
	}

	var req validation.IntentRequest
	if err := validation.BindAndValidate(c, &req, h.validator); err != nil {
		return
	}

	result := h.runner.Run(c.Request.Context(), req.Message, apiToken)
	if !result.Success {
		c.JSON(http.StatusBadRequest, result)
		return
	}
	c.JSON(http.StatusOK, result)
}
