package health

import (
	"net/http"

	"github.com/de-tools/decision-simulator/pkg/handlers/response"
	"github.com/de-tools/decision-simulator/pkg/models/api"
)

type Handler struct {
	index api.Index
}

func NewHandler(appName, webSocketRoute string) *Handler {
	return &Handler{index: api.Index{Name: appName, WebSocket: webSocketRoute}}
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, r, http.StatusOK, h.index)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, r, http.StatusOK, api.Health{Status: "ok"})
}
