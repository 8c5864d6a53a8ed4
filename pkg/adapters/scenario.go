package adapters

import (
	"encoding/json"
	"fmt"

	"github.com/de-tools/decision-simulator/pkg/models/api"
	"github.com/de-tools/decision-simulator/pkg/models/domain"
	"github.com/de-tools/decision-simulator/pkg/models/store"
)

func MapScenarioDomainToApi(s domain.Scenario) api.Scenario {
	out := api.Scenario{
		ID:        s.ID,
		Name:      s.Name,
		Variables: MapSimulationInputDomainToApi(s.Input),
		Source:    string(s.Source),
		Owner:     s.Owner,
	}
	if !s.CreatedAt.IsZero() {
		createdAt := s.CreatedAt
		out.CreatedAt = &createdAt
	}
	return out
}

// MapScenarioStoreToDomain decodes stored variables on top of the defaults,
// so rows written before a field existed still load.
func MapScenarioStoreToDomain(rec store.ScenarioRecord, idOffset int64) (domain.Scenario, error) {
	vars := DefaultApiSimulationInput()
	if len(rec.Variables) > 0 {
		if err := json.Unmarshal(rec.Variables, &vars); err != nil {
			return domain.Scenario{}, fmt.Errorf("decode variables of scenario %d: %w", rec.ID, err)
		}
	}

	s := domain.Scenario{
		ID:        rec.ID + idOffset,
		Name:      rec.Name,
		Input:     MapSimulationInputApiToDomain(vars),
		Source:    domain.ScenarioSourceStored,
		CreatedAt: rec.CreatedAt,
	}
	if rec.Owner != nil {
		s.Owner = *rec.Owner
	}
	return s, nil
}

func MapScenarioDomainToStore(s domain.Scenario, idOffset int64) (store.ScenarioRecord, error) {
	vars, err := json.Marshal(MapSimulationInputDomainToApi(s.Input))
	if err != nil {
		return store.ScenarioRecord{}, fmt.Errorf("encode variables: %w", err)
	}

	rec := store.ScenarioRecord{
		Name:      s.Name,
		Variables: vars,
		CreatedAt: s.CreatedAt,
	}
	if s.ID > idOffset {
		rec.ID = s.ID - idOffset
	}
	if s.Owner != "" {
		owner := s.Owner
		rec.Owner = &owner
	}
	return rec, nil
}
