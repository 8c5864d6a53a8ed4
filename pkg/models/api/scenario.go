package api

import "time"

type Scenario struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Variables SimulationInput `json:"variables"`
	Source    string          `json:"source"`
	Owner     string          `json:"owner,omitempty"`
	CreatedAt *time.Time      `json:"created_at,omitempty"`
}

type ScenarioListResponse struct {
	Scenarios []Scenario `json:"scenarios"`
}

type CreateScenarioRequest struct {
	Name      string          `json:"name" validate:"required,max=120"`
	Variables SimulationInput `json:"variables"`
}
