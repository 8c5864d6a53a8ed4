package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/de-tools/decision-simulator/pkg/handlers/response"
	"github.com/de-tools/decision-simulator/pkg/models/api"
	"github.com/de-tools/decision-simulator/pkg/models/domain"
	"github.com/de-tools/decision-simulator/pkg/services/auth"
	"github.com/de-tools/decision-simulator/pkg/services/validation"
)

type Authenticator interface {
	Login(email, password string) (domain.AccessToken, error)
	TTL() time.Duration
}

type Handler struct {
	auth      Authenticator
	validator *validation.Validator
}

func NewHandler(authenticator Authenticator, validator *validation.Validator) *Handler {
	return &Handler{
		auth:      authenticator,
		validator: validator,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	var req api.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := h.validator.Struct(req); err != nil {
		if verr, ok := validation.AsError(err); ok {
			response.WriteValidationError(w, r, verr)
			return
		}
		response.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.auth.Login(req.Email, req.Password)
	if errors.Is(err, auth.ErrPasswordRequired) {
		response.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("failed to issue access token")
		response.WriteError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	logger.Info().Str("subject", token.Subject).Msg("access token issued")
	response.WriteJSON(w, r, http.StatusOK, api.TokenResponse{
		AccessToken: token.Token,
		TokenType:   "bearer",
		ExpiresIn:   int(h.auth.TTL().Seconds()),
	})
}
