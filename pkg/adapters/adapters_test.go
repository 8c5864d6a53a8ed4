package adapters

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/de-tools/decision-simulator/pkg/models/domain"
	"github.com/de-tools/decision-simulator/pkg/models/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultApiSimulationInput_KeepsOmittedFields(t *testing.T) {
	// Given
	in := DefaultApiSimulationInput()

	// When
	err := json.Unmarshal([]byte(`{"price": 99.5, "period_months": 6}`), &in)

	// Then
	require.NoError(t, err)
	assert.Equal(t, 99.5, in.Price)
	assert.Equal(t, 6, in.PeriodMonths)
	assert.Equal(t, 45.0, in.VariableCost)
	assert.Equal(t, 12, in.Employees)
	assert.Equal(t, 0.18, in.PriceSensitivity)
}

func TestMapSimulationResultDomainToApi_EmptySeriesEncodeAsArrays(t *testing.T) {
	out := MapSimulationResultDomainToApi(domain.SimulationResult{})

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"revenue_series":[]`)
	assert.Contains(t, string(raw), `"month_labels":[]`)
}

func TestMapScenarioStoreToDomain(t *testing.T) {
	owner := "ada@example.com"
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("partial variables fall back to defaults", func(t *testing.T) {
		rec := store.ScenarioRecord{
			ID:        7,
			Name:      "Lean",
			Variables: json.RawMessage(`{"marketing_spend": 0}`),
			Owner:     &owner,
			CreatedAt: created,
		}

		s, err := MapScenarioStoreToDomain(rec, 1000)

		require.NoError(t, err)
		assert.Equal(t, int64(1007), s.ID)
		assert.Equal(t, domain.ScenarioSourceStored, s.Source)
		assert.Equal(t, owner, s.Owner)
		assert.Equal(t, 0.0, s.Input.MarketingSpend)
		assert.Equal(t, 120.0, s.Input.Price)
	})

	t.Run("corrupt variables", func(t *testing.T) {
		rec := store.ScenarioRecord{ID: 1, Variables: json.RawMessage(`{"price": "x"}`)}

		_, err := MapScenarioStoreToDomain(rec, 1000)

		assert.Error(t, err)
	})
}

func TestMapScenarioDomainToStore(t *testing.T) {
	s := domain.Scenario{
		ID:    1003,
		Name:  "Saved",
		Input: domain.DefaultSimulationInput(),
		Owner: "ada@example.com",
	}

	rec, err := MapScenarioDomainToStore(s, 1000)

	require.NoError(t, err)
	assert.Equal(t, int64(3), rec.ID)
	require.NotNil(t, rec.Owner)
	assert.Equal(t, "ada@example.com", *rec.Owner)

	back, err := MapScenarioStoreToDomain(rec, 1000)
	require.NoError(t, err)
	assert.Equal(t, s.Input, back.Input)
}
