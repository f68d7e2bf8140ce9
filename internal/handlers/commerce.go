package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/weknowyourgame/wa-commerce-backend/internal/domain"
	"github.com/weknowyourgame/wa-commerce-backend/internal/repository"
	"github.com/weknowyourgame/wa-commerce-backend/internal/validation"
)

// CommerceHandler serves the plain read/update endpoints for products,
// orders and the business profile. These sit beside the AI pipeline; the
// pipeline itself never mutates commerce entities.
type CommerceHandler struct {
	store     *repository.Store
	validator *validatorv10.Validate
	logger    *zap.Logger
}

func NewCommerceHandler(store *repository.Store, logger *zap.Logger) *CommerceHandler {
	return &CommerceHandler{
		store:     store,
		validator: validation.New(),
		logger:    logger,
	}
}

// merchantFromAuth resolves the calling merchant or writes a 401.
func (h *CommerceHandler) merchantFromAuth(c *gin.Context) *domain.Merchant {
	apiToken := bearerToken(c)
	if apiToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Authorization header with API token is required",
		})
		return nil
	}

	merchant, err := h.store.MerchantByToken(c.Request.Context(), apiToken)
	if err != nil {
		if errors.Is(err, repository.ErrMerchantNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid API token"})
		} else {
			h.logger.Error("merchant lookup failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal error"})
		}
		return nil
	}
	return merchant
}

// GetProducts handles GET /api/products.
func (h *CommerceHandler) GetProducts(c *gin.Context) {
	merchant := h.merchantFromAuth(c)
	if merchant == nil {
		return
	}

	products, err := h.store.ProductsByMerchant(c.Request.Context(), merchant.ID)
	if err != nil {
		h.logger.Error("product listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
		"count":   len(products),
	})
}

// GetBusinessInfo handles GET /api/business-info.
func (h *CommerceHandler) GetBusinessInfo(c *gin.Context) {
	merchant := h.merchantFromAuth(c)
	if merchant == nil {
		return
	}

	ctx := c.Request.Context()
	products, err := h.store.ProductsByMerchant(ctx, merchant.ID)
	if err != nil {
		h.logger.Error("product listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal error"})
		return
	}
	orders, err := h.store.OrdersByMerchant(ctx, merchant.ID, "")
	if err != nil {
		h.logger.Error("order listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"id":             merchant.ID,
			"userId":         merchant.UserID,
			"upiNumber":      merchant.UPINumber,
			"website":        merchant.Website,
			"businessInfo":   merchant.BusinessInfo,
			"isOnboarded":    merchant.IsOnboarded,
			"onboardingStep": merchant.OnboardingStep,
			"createdAt":      merchant.CreatedAt,
			"updatedAt":      merchant.UpdatedAt,
			"products":       products,
			"orders":         orders,
		},
	})
}

// GetOrderByID handles GET /api/orders/:id.
func (h *CommerceHandler) GetOrderByID(c *gin.Context) {
	merchant := h.merchantFromAuth(c)
	if merchant == nil {
		return
	}

	order, err := h.store.OrderByID(c.Request.Context(), c.Param("id"), merchant.ID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Order not found"})
			return
		}
		h.logger.Error("order lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
}

// GetCustomerOrders handles POST /api/orders: a customer's orders with this
// merchant, newest first.
func (h *CommerceHandler) GetCustomerOrders(c *gin.Context) {
	merchant := h.merchantFromAuth(c)
	if merchant == nil {
		return
	}

	var req validation.CustomerOrdersRequest
	if err := validation.BindAndValidate(c, &req, h.validator); err != nil {
		return
	}

	orders, err := h.store.OrdersByMerchant(c.Request.Context(), merchant.ID, req.PhoneNumber)
	if err != nil {
		h.logger.Error("order listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
		"count":   len(orders),
	})
}

// GetUserInfo handles GET /api/user-info/:phoneNumber: the customer record
// for that phone plus their order history with the calling merchant.
func (h *CommerceHandler) GetUserInfo(c *gin.Context) {
	merchant := h.merchantFromAuth(c)
	if merchant == nil {
		return
	}

	ctx := c.Request.Context()
	phone := c.Param("phoneNumber")

	customer, err := h.store.CustomerByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Customer not found"})
			return
		}
		h.logger.Error("customer lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal error"})
		return
	}

	orders, err := h.store.OrdersByMerchant(ctx, merchant.ID, phone)
	if err != nil {
		h.logger.Error("order listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"customer":   customer,
			"orders":     orders,
			"orderCount": len(orders),
		},
	})
}

// UpdateOrderStatus handles PUT /api/orders/:id/status. paidAt is stamped
// iff the order moves to CONFIRMED.
func (h *CommerceHandler) UpdateOrderStatus(c *gin.Context) {
	merchant := h.merchantFromAuth(c)
	if merchant == nil {
		return
	}

	var req validation.OrderStatusRequest
	if err := validation.BindAndValidate(c, &req, h.validator); err != nil {
		return
	}

	order, err := h.store.UpdateOrderStatus(c.Request.Context(), c.Param("id"), merchant.ID, domain.OrderStatus(req.Status))
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Order not found"})
			return
		}
		h.logger.Error("order status update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal error"})
		return
	}

	h.logger.Info("order status updated",
		zap.String("order_id", order.ID),
		zap.String("status", string(order.Status)))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
		"message": "Order status updated to " + req.Status,
	})
}
