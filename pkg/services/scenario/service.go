package scenario

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/de-tools/decision-simulator/pkg/adapters"
	"github.com/de-tools/decision-simulator/pkg/models/domain"
	"github.com/de-tools/decision-simulator/pkg/services/catalog"
	"github.com/de-tools/decision-simulator/pkg/services/simulation"
	"github.com/de-tools/decision-simulator/pkg/store/sqlite"
	scenariostore "github.com/de-tools/decision-simulator/pkg/store/sqlite/scenario"
)

// StoredIDOffset separates saved scenario ids from catalog ids.
const StoredIDOffset int64 = 1000

var (
	ErrNotFound        = errors.New("scenario not found")
	ErrForbidden       = errors.New("scenario belongs to another user")
	ErrReadOnly        = errors.New("catalog scenarios are read-only")
	ErrStorageDisabled = errors.New("scenario storage is not configured")
)

type Service interface {
	List(ctx context.Context) ([]domain.Scenario, error)
	Get(ctx context.Context, id int64) (domain.Scenario, error)
	Create(ctx context.Context, name string, input domain.SimulationInput, owner string) (domain.Scenario, error)
	Delete(ctx context.Context, id int64, owner string) error
	Run(ctx context.Context, id int64) (domain.Scenario, domain.SimulationResult, error)
}

type service struct {
	db        *sql.DB
	catalog   catalog.Catalog
	store     scenariostore.Store
	projector simulation.Projector
}

// NewService combines the read-only catalog with saved scenarios.
// db and store may both be nil, in which case only the catalog is served.
func NewService(
	db *sql.DB,
	cat catalog.Catalog,
	store scenariostore.Store,
	projector simulation.Projector,
) (Service, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog is nil")
	}
	if projector == nil {
		return nil, fmt.Errorf("projector is nil")
	}
	if (db == nil) != (store == nil) {
		return nil, fmt.Errorf("db and store must be configured together")
	}
	return &service{
		db:        db,
		catalog:   cat,
		store:     store,
		projector: projector,
	}, nil
}

func (s *service) List(ctx context.Context) ([]domain.Scenario, error) {
	scenarios := s.catalog.List(ctx)
	if s.store == nil {
		return scenarios, nil
	}

	records, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stored scenarios: %w", err)
	}
	for _, rec := range records {
		sc, err := adapters.MapScenarioStoreToDomain(rec, StoredIDOffset)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Int64("id", rec.ID).Msg("skipping unreadable scenario")
			continue
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}

func (s *service) Get(ctx context.Context, id int64) (domain.Scenario, error) {
	if id <= StoredIDOffset {
		sc, ok := s.catalog.Get(ctx, id)
		if !ok {
			return domain.Scenario{}, ErrNotFound
		}
		return sc, nil
	}
	if s.store == nil {
		return domain.Scenario{}, ErrNotFound
	}

	rec, err := s.store.Get(ctx, id-StoredIDOffset)
	if errors.Is(err, scenariostore.ErrNotFound) {
		return domain.Scenario{}, ErrNotFound
	}
	if err != nil {
		return domain.Scenario{}, fmt.Errorf("get scenario %d: %w", id, err)
	}
	return adapters.MapScenarioStoreToDomain(*rec, StoredIDOffset)
}

func (s *service) Create(
	ctx context.Context,
	name string,
	input domain.SimulationInput,
	owner string,
) (domain.Scenario, error) {
	if s.store == nil {
		return domain.Scenario{}, ErrStorageDisabled
	}

	sc := domain.Scenario{
		Name:   strings.TrimSpace(name),
		Input:  input,
		Source: domain.ScenarioSourceStored,
		Owner:  owner,
	}
	rec, err := adapters.MapScenarioDomainToStore(sc, StoredIDOffset)
	if err != nil {
		return domain.Scenario{}, err
	}
	if err := s.store.Create(ctx, &rec); err != nil {
		return domain.Scenario{}, fmt.Errorf("save scenario: %w", err)
	}

	sc.ID = rec.ID + StoredIDOffset
	sc.CreatedAt = rec.CreatedAt
	return sc, nil
}

// Delete removes a saved scenario. Only its owner may delete it.
func (s *service) Delete(ctx context.Context, id int64, owner string) error {
	if id <= StoredIDOffset {
		if _, ok := s.catalog.Get(ctx, id); ok {
			return ErrReadOnly
		}
		return ErrNotFound
	}
	if s.store == nil {
		return ErrNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	txCtx := sqlite.WithTransaction(ctx, tx)
	rec, err := s.store.Get(txCtx, id-StoredIDOffset)
	if errors.Is(err, scenariostore.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get scenario %d: %w", id, err)
	}
	if rec.Owner == nil || *rec.Owner != owner {
		return ErrForbidden
	}

	if err := s.store.Delete(txCtx, rec.ID); err != nil {
		return fmt.Errorf("delete scenario %d: %w", id, err)
	}
	return tx.Commit()
}

func (s *service) Run(ctx context.Context, id int64) (domain.Scenario, domain.SimulationResult, error) {
	sc, err := s.Get(ctx, id)
	if err != nil {
		return domain.Scenario{}, domain.SimulationResult{}, err
	}
	return sc, s.projector.Project(sc.Input), nil
}
