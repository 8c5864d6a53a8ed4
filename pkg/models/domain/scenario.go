package domain

import "time"

type ScenarioSource string

const (
	ScenarioSourceCatalog ScenarioSource = "catalog"
	ScenarioSourceStored  ScenarioSource = "stored"
)

// Scenario is a named input vector, either from the static catalog or saved by a user.
type Scenario struct {
	ID        int64
	Name      string
	Input     SimulationInput
	Source    ScenarioSource
	Owner     string // empty for catalog entries
	CreatedAt time.Time
}
