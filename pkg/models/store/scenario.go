package store

import (
	"encoding/json"
	"time"
)

type ScenarioRecord struct {
	ID        int64
	Name      string
	Variables json.RawMessage // serialized api.SimulationInput
	Owner     *string
	CreatedAt time.Time
}
