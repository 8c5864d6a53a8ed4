package simulation

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/de-tools/decision-simulator/pkg/adapters"
	"github.com/de-tools/decision-simulator/pkg/handlers/response"
	"github.com/de-tools/decision-simulator/pkg/models/api"
	"github.com/de-tools/decision-simulator/pkg/services/simulation"
	"github.com/de-tools/decision-simulator/pkg/services/validation"
)

const (
	SourceHTTP      = "http"
	SourceWebSocket = "websocket"

	maxMessageBytes = 64 << 10
	writeTimeout    = 10 * time.Second
)

// Observer receives validation and connection events. A nil Observer is allowed.
type Observer interface {
	ValidationFailed(source string)
	ConnectionOpened()
	ConnectionClosed()
}

type Handler struct {
	projector simulation.Projector
	validator *validation.Validator
	observer  Observer
	upgrader  websocket.Upgrader
}

func NewHandler(
	projector simulation.Projector,
	validator *validation.Validator,
	observer Observer,
	allowedOrigins []string,
) *Handler {
	return &Handler{
		projector: projector,
		validator: validator,
		observer:  observer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

// Run projects a single input vector posted as JSON.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	input := adapters.DefaultApiSimulationInput()
	if err := response.DecodeJSON(r, &input); err != nil {
		logger.Debug().Err(err).Msg("malformed simulation request")
		response.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	body, verr := h.simulate(input)
	if verr != nil {
		h.validationFailed(SourceHTTP)
		response.WriteValidationError(w, r, verr)
		return
	}

	response.WriteJSON(w, r, http.StatusOK, body)
}

// ServeWS upgrades the connection and answers every text frame holding an input
// vector with a frame holding the bare result. Invalid frames get an error frame and the
// session continues.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	h.connectionOpened()
	defer h.connectionClosed()
	logger.Info().Msg("websocket session opened")

	conn.SetReadLimit(maxMessageBytes)
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn().Err(err).Msg("websocket session ended unexpectedly")
			} else {
				logger.Info().Msg("websocket session closed")
			}
			return
		}

		if err := h.reply(conn, payload); err != nil {
			logger.Warn().Err(err).Msg("failed to write websocket frame")
			return
		}
	}
}

func (h *Handler) reply(conn *websocket.Conn, payload []byte) error {
	var frame any

	input := adapters.DefaultApiSimulationInput()
	if err := json.Unmarshal(payload, &input); err != nil {
		frame = api.ErrorResponse{Error: response.ErrMalformedBody.Error()}
	} else if body, verr := h.simulate(input); verr != nil {
		h.validationFailed(SourceWebSocket)
		frame = response.ValidationErrorBody(verr)
	} else {
		frame = body.Result
	}

	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(frame)
}

func (h *Handler) simulate(input api.SimulationInput) (api.SimulationResponse, *validation.Error) {
	if err := h.validator.Struct(input); err != nil {
		if verr, ok := validation.AsError(err); ok {
			return api.SimulationResponse{}, verr
		}
		return api.SimulationResponse{}, &validation.Error{Fields: []validation.FieldError{{Message: err.Error()}}}
	}

	result := h.projector.Project(adapters.MapSimulationInputApiToDomain(input))
	return api.SimulationResponse{
		Inputs: input,
		Result: adapters.MapSimulationResultDomainToApi(result),
	}, nil
}

func (h *Handler) validationFailed(source string) {
	if h.observer != nil {
		h.observer.ValidationFailed(source)
	}
}

func (h *Handler) connectionOpened() {
	if h.observer != nil {
		h.observer.ConnectionOpened()
	}
}

func (h *Handler) connectionClosed() {
	if h.observer != nil {
		h.observer.ConnectionClosed()
	}
}

// originChecker accepts requests without an Origin header, any origin when
// "*" is configured, and otherwise only the listed scheme://host values.
func originChecker(allowed []string) func(r *http.Request) bool {
	wildcard := false
	set := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin == "*" {
			wildcard = true
		}
		set[strings.ToLower(origin)] = struct{}{}
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || wildcard {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil || u.Host == "" {
			return false
		}
		_, ok := set[strings.ToLower(u.Scheme+"://"+u.Host)]
		return ok
	}
}
