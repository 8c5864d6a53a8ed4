package simulation

import (
	"time"

	"github.com/de-tools/decision-simulator/pkg/models/domain"
)

// Observer receives projection telemetry. A nil Observer is ignored.
type Observer interface {
	ObserveProjection(duration time.Duration)
	CacheHit()
}

type observedProjector struct {
	next     Projector
	observer Observer
}

// WithObserver reports the duration of every projection computed by next.
func WithObserver(next Projector, observer Observer) Projector {
	if observer == nil {
		return next
	}
	return &observedProjector{next: next, observer: observer}
}

func (p *observedProjector) Project(input domain.SimulationInput) domain.SimulationResult {
	start := time.Now()
	result := p.next.Project(input)
	p.observer.ObserveProjection(time.Since(start))
	return result
}
