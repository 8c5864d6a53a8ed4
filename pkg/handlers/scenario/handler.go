package scenario

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/de-tools/decision-simulator/pkg/adapters"
	"github.com/de-tools/decision-simulator/pkg/handlers/response"
	"github.com/de-tools/decision-simulator/pkg/models/api"
	"github.com/de-tools/decision-simulator/pkg/server/middleware"
	"github.com/de-tools/decision-simulator/pkg/services/scenario"
	"github.com/de-tools/decision-simulator/pkg/services/validation"
)

const validationSource = "scenario"

type ValidationObserver interface {
	ValidationFailed(source string)
}

type Handler struct {
	scenarios scenario.Service
	validator *validation.Validator
	observer  ValidationObserver
}

func NewHandler(scenarios scenario.Service, validator *validation.Validator, observer ValidationObserver) *Handler {
	return &Handler{
		scenarios: scenarios,
		validator: validator,
		observer:  observer,
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	scenarios, err := h.scenarios.List(ctx)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	resp := api.ScenarioListResponse{Scenarios: make([]api.Scenario, 0, len(scenarios))}
	for _, sc := range scenarios {
		resp.Scenarios = append(resp.Scenarios, adapters.MapScenarioDomainToApi(sc))
	}
	response.WriteJSON(w, r, http.StatusOK, resp)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := scenarioID(w, r)
	if !ok {
		return
	}

	sc, err := h.scenarios.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	response.WriteJSON(w, r, http.StatusOK, adapters.MapScenarioDomainToApi(sc))
}

// RunByID projects the stored input vector of a catalog or saved scenario.
func (h *Handler) RunByID(w http.ResponseWriter, r *http.Request) {
	id, ok := scenarioID(w, r)
	if !ok {
		return
	}

	sc, result, err := h.scenarios.Run(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	response.WriteJSON(w, r, http.StatusOK, api.SimulationResponse{
		Inputs: adapters.MapSimulationInputDomainToApi(sc.Input),
		Result: adapters.MapSimulationResultDomainToApi(result),
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	owner, ok := middleware.SubjectFromContext(ctx)
	if !ok {
		response.WriteError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	req := api.CreateScenarioRequest{Variables: adapters.DefaultApiSimulationInput()}
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := h.validator.Struct(req); err != nil {
		if verr, ok := validation.AsError(err); ok {
			if h.observer != nil {
				h.observer.ValidationFailed(validationSource)
			}
			response.WriteValidationError(w, r, verr)
			return
		}
		response.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	sc, err := h.scenarios.Create(ctx, req.Name, adapters.MapSimulationInputApiToDomain(req.Variables), owner)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	logger.Info().
		Int64("id", sc.ID).
		Str("owner", owner).
		Msg("scenario saved")
	response.WriteJSON(w, r, http.StatusCreated, adapters.MapScenarioDomainToApi(sc))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	owner, ok := middleware.SubjectFromContext(ctx)
	if !ok {
		response.WriteError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := scenarioID(w, r)
	if !ok {
		return
	}

	if err := h.scenarios.Delete(ctx, id, owner); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	zerolog.Ctx(ctx).Info().
		Int64("id", id).
		Str("owner", owner).
		Msg("scenario deleted")
	w.WriteHeader(http.StatusNoContent)
}

func scenarioID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		response.WriteError(w, r, http.StatusBadRequest, "invalid scenario id")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, scenario.ErrNotFound):
		response.WriteError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, scenario.ErrForbidden), errors.Is(err, scenario.ErrReadOnly):
		response.WriteError(w, r, http.StatusForbidden, err.Error())
	case errors.Is(err, scenario.ErrStorageDisabled):
		response.WriteError(w, r, http.StatusServiceUnavailable, err.Error())
	default:
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("scenario request failed")
		response.WriteError(w, r, http.StatusInternalServerError, "internal error")
	}
}
