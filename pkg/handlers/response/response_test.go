package response

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/de-tools/decision-simulator/pkg/services/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		A int `json:"a"`
		B int `json:"b"`
	}

	t.Run("keeps prefilled fields", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a": 5}`))
		v := payload{A: 1, B: 2}

		require.NoError(t, DecodeJSON(r, &v))
		assert.Equal(t, payload{A: 5, B: 2}, v)
	})

	t.Run("malformed", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":`))
		var v payload

		assert.ErrorIs(t, DecodeJSON(r, &v), ErrMalformedBody)
	})

	t.Run("wrong type", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":"x"}`))
		var v payload

		assert.ErrorIs(t, DecodeJSON(r, &v), ErrMalformedBody)
	})
}

func TestWriteValidationError(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	w := httptest.NewRecorder()

	WriteValidationError(w, r, &validation.Error{Fields: []validation.FieldError{{
		Field: "price", Rule: "gt", Message: "price must be greater than 0",
	}}})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{
		"error": "input validation failed",
		"details": [{"field": "price", "rule": "gt", "message": "price must be greater than 0"}]
	}`, w.Body.String())
}
