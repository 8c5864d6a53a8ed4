package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/de-tools/decision-simulator/pkg/models/api"
	"github.com/de-tools/decision-simulator/pkg/services/validation"
)

const maxBodyBytes = 1 << 20

// ErrMalformedBody is returned by DecodeJSON when the body is not a JSON object of the expected shape.
var ErrMalformedBody = errors.New("invalid request body")

func WriteJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	WriteJSON(w, r, status, api.ErrorResponse{Error: msg})
}

func WriteValidationError(w http.ResponseWriter, r *http.Request, verr *validation.Error) {
	WriteJSON(w, r, http.StatusUnprocessableEntity, ValidationErrorBody(verr))
}

func ValidationErrorBody(verr *validation.Error) api.ErrorResponse {
	details := make([]api.FieldError, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		details = append(details, api.FieldError{
			Field:   f.Field,
			Rule:    f.Rule,
			Message: f.Message,
		})
	}
	return api.ErrorResponse{Error: "input validation failed", Details: details}
}

// DecodeJSON decodes the request body onto v. Fields absent from the body keep
// whatever value v already holds.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return nil
}
