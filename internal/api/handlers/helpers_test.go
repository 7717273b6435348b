package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"job-tracker-api/internal/api/middleware"
	"job-tracker-api/internal/models"
	"job-tracker-api/internal/services"
	"job-tracker-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testToken = "test-token"

// staticVerifier accepts testToken only and returns fixed claims for it.
type staticVerifier struct {
	claims *services.SessionClaims
}

func (v staticVerifier) VerifyToken(_ context.Context, token string) (*services.SessionClaims, error) {
	if token != testToken {
		return nil, jwt.ErrTokenMalformed
	}
	return v.claims, nil
}

func claimsFor(actor dto.Actor) *services.SessionClaims {
	return &services.SessionClaims{
		Role: actor.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: actor.UserID.String(),
			ID:      "session-1",
		},
	}
}

var (
	applicantActor = dto.Actor{UserID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Role: models.RoleApplicant}
	adminActor     = dto.Actor{UserID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Role: models.RoleAdmin}
)

// setupRouter returns a bare engine and an auth middleware that resolves
// testToken to actor.
func setupRouter(actor dto.Actor) (*gin.Engine, gin.HandlerFunc) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	return router, middleware.JWTAuthMiddleware(staticVerifier{claims: claimsFor(actor)})
}

func performRequest(router http.Handler, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Authorization", "Bearer "+testToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func performJSON(t *testing.T, router http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	return performRequest(router, method, path, body, "application/json")
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}
