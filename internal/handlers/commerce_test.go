package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/weknowyourgame/wa-commerce-backend/internal/repository"
)

var merchantCols = []string{
	"id", "userId", "upiNumber", "apiToken", "website", "businessInfo",
	"phoneNumberId", "whatsappAccessToken", "isOnboarded", "onboardingStep",
	"createdAt", "updatedAt",
}

var orderCols = []string{
	"id", "customerId", "merchantId", "productId", "txnId", "amount", "status",
	"paidAt", "createdAt", "updatedAt", "name", "phone",
}

func merchantRow(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(merchantCols).AddRow(
		"m1", "u1", "store@upi", "token-1", nil,
		[]byte(`{"name":"Widget World"}`),
		"pn-1", "wa-token", true, 3, now, now,
	)
}

func commerceRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewCommerceHandler(repository.NewStore(db, time.Second), zap.NewNop())
	r.GET("/api/user-info/:phoneNumber", h.GetUserInfo)
	return r, mock
}

func getUserInfo(r *gin.Engine, token, phone string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/user-info/"+phone, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestGetUserInfoReturnsCustomerAndOrders(t *testing.T) {
	r, mock := commerceRouter(t)
	now := time.Now()

	mock.ExpectQuery(`(?s)SELECT .+ FROM "Merchant" m WHERE m\."apiToken"`).
		WithArgs("token-1").
		WillReturnRows(merchantRow(now))
	mock.ExpectQuery(`(?s)SELECT .+ FROM "Customer" WHERE phone = \$1`).
		WithArgs("919999999999").
		WillReturnRows(sqlmock.NewRows([]string{"id", "phone", "createdAt", "updatedAt"}).
			AddRow("c1", "919999999999", now, now))
	mock.ExpectQuery(`(?s)SELECT .+ FROM "Order" o .+ AND c\.phone = \$2 ORDER BY o\."createdAt" DESC`).
		WithArgs("m1", "919999999999").
		WillReturnRows(sqlmock.NewRows(orderCols).
			AddRow("o1", "c1", "m1", "p1", nil, 100.0, "PENDING", nil, now, now, "Widget", "919999999999"))

	w := getUserInfo(r, "token-1", "919999999999")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"c1"`)
	assert.Contains(t, w.Body.String(), `"o1"`)
	assert.Contains(t, w.Body.String(), `"orderCount":1`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserInfoUnknownCustomer(t *testing.T) {
	r, mock := commerceRouter(t)

	mock.ExpectQuery(`(?s)SELECT .+ FROM "Merchant" m WHERE m\."apiToken"`).
		WithArgs("token-1").
		WillReturnRows(merchantRow(time.Now()))
	mock.ExpectQuery(`(?s)SELECT .+ FROM "Customer" WHERE phone = \$1`).
		WithArgs("unknown").
		WillReturnRows(sqlmock.NewRows([]string{"id", "phone", "createdAt", "updatedAt"}))

	w := getUserInfo(r, "token-1", "unknown")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Customer not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserInfoRequiresToken(t *testing.T) {
	r, _ := commerceRouter(t)

	w := getUserInfo(r, "", "919999999999")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "API token is required")
}
