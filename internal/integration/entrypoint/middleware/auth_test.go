package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
	"github.com/reimburse-desk/backend/internal/integration/adapters"
	"github.com/reimburse-desk/backend/internal/integration/entrypoint/dto"
	"github.com/reimburse-desk/backend/internal/integration/entrypoint/middleware"
)

const testSecret = "middleware-test-secret"

func newEngine(t *testing.T, handlers ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := adapters.NewTokenService(testSecret, time.Hour)
	auth := middleware.NewAuthMiddleware(tokens)

	engine := gin.New()
	chain := append([]gin.HandlerFunc{auth.Authenticate()}, handlers...)
	chain = append(chain, func(c *gin.Context) {
		actor, ok := middleware.GetActorFromContext(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": actor.ID.String(), "role": string(actor.Role)})
	})
	engine.GET("/protected", chain...)
	return engine
}

func issue(t *testing.T, userID uuid.UUID, role entity.Role) string {
	t.Helper()
	token, err := adapters.NewTokenService(testSecret, time.Hour).GenerateAccessToken(context.Background(), userID, role)
	require.NoError(t, err)
	return token
}

func doRequest(engine *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthenticate_StoresActor(t *testing.T) {
	engine := newEngine(t)
	userID := uuid.New()

	rec := doRequest(engine, "Bearer "+issue(t, userID, entity.RoleApprover))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), userID.String())
	assert.Contains(t, rec.Body.String(), "approver")
}

func TestAuthenticate_Rejections(t *testing.T) {
	engine := newEngine(t)

	tests := []struct {
		name   string
		header string
		code   domainerror.Code
	}{
		{"missing header", "", domainerror.ErrCodeMissingToken},
		{"wrong scheme", "Basic abc", domainerror.ErrCodeInvalidToken},
		{"empty token", "Bearer  ", domainerror.ErrCodeMissingToken},
		{"garbage token", "Bearer not-a-jwt", domainerror.ErrCodeInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(engine, tt.header)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, string(tt.code), decodeError(t, rec).Code)
		})
	}
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	engine := newEngine(t)
	past := time.Now().Add(-2 * time.Hour)
	claims := adapters.CustomClaims{
		UserID: uuid.New().String(),
		Role:   string(entity.RoleStaff),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(past),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	rec := doRequest(engine, "Bearer "+expired)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, string(domainerror.ErrCodeExpiredToken), decodeError(t, rec).Code)
}

func TestRequireRole(t *testing.T) {
	engine := newEngine(t, middleware.RequireRole(entity.RoleFinance, entity.RoleAdmin))

	t.Run("allowed role passes", func(t *testing.T) {
		rec := doRequest(engine, "Bearer "+issue(t, uuid.New(), entity.RoleFinance))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("other role is forbidden", func(t *testing.T) {
		rec := doRequest(engine, "Bearer "+issue(t, uuid.New(), entity.RoleStaff))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, string(domainerror.ErrCodeInsufficientRole), decodeError(t, rec).Code)
	})
}
