package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/de-tools/decision-simulator/pkg/handlers/response"
	"github.com/de-tools/decision-simulator/pkg/models/api"
)

type TokenVerifier interface {
	Verify(token string) (string, error)
}

type subjectKey struct{}

func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey{}, subject)
}

// SubjectFromContext returns the authenticated caller set by RequireBearer.
func SubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectKey{}).(string)
	return subject, ok && subject != ""
}

// RequireBearer rejects requests without a valid "Authorization: Bearer" token.
func RequireBearer(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			header := req.Header.Get("Authorization")
			scheme, token, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
				w.Header().Set("WWW-Authenticate", "Bearer")
				response.WriteJSON(w, req, http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
				return
			}

			subject, err := verifier.Verify(strings.TrimSpace(token))
			if err != nil {
				zerolog.Ctx(req.Context()).Info().Err(err).Msg("rejected bearer token")
				w.Header().Set("WWW-Authenticate", "Bearer")
				response.WriteJSON(w, req, http.StatusUnauthorized, api.ErrorResponse{Error: "invalid or expired token"})
				return
			}

			next.ServeHTTP(w, req.WithContext(WithSubject(req.Context(), subject)))
		})
	}
}
