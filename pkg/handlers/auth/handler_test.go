package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/decision-simulator/pkg/models/api"
	"github.com/de-tools/decision-simulator/pkg/services/auth"
	"github.com/de-tools/decision-simulator/pkg/services/validation"
)

func newTestHandler(t *testing.T) (*Handler, *auth.Service) {
	t.Helper()
	svc, err := auth.NewService(auth.Config{
		Secret: "test-secret",
		TTL:    30 * time.Minute,
	})
	require.NoError(t, err)
	return NewHandler(svc, validation.New()), svc
}

func TestHandler_Login(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{"valid credentials", `{"email": " Ada@Example.com ", "password": "x"}`, http.StatusOK},
		{"missing password", `{"email": "ada@example.com"}`, http.StatusBadRequest},
		{"invalid email", `{"email": "not-an-email", "password": "x"}`, http.StatusUnprocessableEntity},
		{"missing email", `{"password": "x"}`, http.StatusUnprocessableEntity},
		{"malformed body", `{"email"`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := newTestHandler(t)

			w := httptest.NewRecorder()
			handler.Login(w, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.body)))

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestHandler_Login_IssuesVerifiableToken(t *testing.T) {
	handler, svc := newTestHandler(t)

	w := httptest.NewRecorder()
	handler.Login(w, httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email": "Ada@Example.com", "password": "secret"}`)))

	require.Equal(t, http.StatusOK, w.Code)
	var resp api.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 1800, resp.ExpiresIn)

	subject, err := svc.Verify(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", subject)
}
