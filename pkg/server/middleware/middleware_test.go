package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) Verify(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

type mockRequestObserver struct {
	mock.Mock
}

func (m *mockRequestObserver) ObserveRequest(method, route string, status int) {
	m.Called(method, route, status)
}

func TestRequireBearer(t *testing.T) {
	verifier := new(mockVerifier)
	verifier.On("Verify", "good").Return("ada@example.com", nil)
	verifier.On("Verify", "bad").Return("", errors.New("expired"))

	var seen string
	handler := RequireBearer(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = SubjectFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectedSub    string
	}{
		{"valid token", "Bearer good", http.StatusNoContent, "ada@example.com"},
		{"lowercase scheme", "bearer good", http.StatusNoContent, "ada@example.com"},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, ""},
		{"invalid token", "Bearer bad", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedSub, seen)
			if tt.expectedStatus == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestSubjectFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := SubjectFromContext(req.Context())
	assert.False(t, ok)
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	observer := new(mockRequestObserver)
	observer.On("ObserveRequest", http.MethodGet, "/items/{id}", http.StatusTeapot).Return().Once()
	observer.On("ObserveRequest", http.MethodGet, "/plain", http.StatusOK).Return().Once()

	router := chi.NewRouter()
	router.Use(Metrics(observer))
	router.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	router.Get("/plain", func(w http.ResponseWriter, r *http.Request) {})

	for _, path := range []string{"/items/42", "/plain"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	observer.AssertExpectations(t)
}

func TestMetrics_CountsWebSocketUpgradeAsSwitchingProtocols(t *testing.T) {
	recorded := make(chan int, 1)
	observer := new(mockRequestObserver)
	observer.On("ObserveRequest", http.MethodGet, "/ws", mock.Anything).
		Run(func(args mock.Arguments) { recorded <- args.Int(2) }).
		Return().Once()

	upgrader := websocket.Upgrader{}
	router := chi.NewRouter()
	router.Use(Metrics(observer))
	router.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		_ = conn.Close()
	})
	server := httptest.NewServer(router)
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	select {
	case status := <-recorded:
		assert.Equal(t, http.StatusSwitchingProtocols, status)
	case <-time.After(5 * time.Second):
		t.Fatal("request was not recorded")
	}
}

func TestLogger_AttachesRequestLogger(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))

	var attached bool
	handler := Logger(&logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attached = zerolog.Ctx(r.Context()).GetLevel() != zerolog.Disabled
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	require.True(t, attached)
}
