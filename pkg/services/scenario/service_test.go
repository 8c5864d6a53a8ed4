package scenario

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/de-tools/decision-simulator/pkg/models/domain"
	"github.com/de-tools/decision-simulator/pkg/models/store"
	"github.com/de-tools/decision-simulator/pkg/services/catalog"
	"github.com/de-tools/decision-simulator/pkg/services/simulation"
	"github.com/de-tools/decision-simulator/pkg/store/sqlite"
	scenariostore "github.com/de-tools/decision-simulator/pkg/store/sqlite/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db      *sql.DB
	store   scenariostore.Store
	service Service
}

func setupFixture(t *testing.T) *fixture {
	db, err := sqlite.NewDB(context.Background(), sqlite.Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	st, err := scenariostore.NewStore(db)
	require.NoError(t, err)

	svc, err := NewService(db, catalog.Default(), st, simulation.NewEngine(simulation.DefaultConfig()))
	require.NoError(t, err)

	return &fixture{db: db, store: st, service: svc}
}

func TestNewService(t *testing.T) {
	engine := simulation.NewEngine(simulation.DefaultConfig())

	t.Run("catalog only", func(t *testing.T) {
		svc, err := NewService(nil, catalog.Default(), nil, engine)
		require.NoError(t, err)

		scenarios, err := svc.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, scenarios, 2)

		_, err = svc.Create(context.Background(), "x", domain.DefaultSimulationInput(), "a@b.c")
		assert.ErrorIs(t, err, ErrStorageDisabled)
	})

	t.Run("missing dependencies", func(t *testing.T) {
		_, err := NewService(nil, nil, nil, engine)
		assert.Error(t, err)

		_, err = NewService(nil, catalog.Default(), nil, nil)
		assert.Error(t, err)

		st, _ := scenariostore.NewStore(&sql.DB{})
		_, err = NewService(nil, catalog.Default(), st, engine)
		assert.Error(t, err)
	})
}

func TestService_CreateListGet(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	input := domain.DefaultSimulationInput()
	input.Price = 150

	created, err := f.service.Create(ctx, "  Premium  ", input, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, StoredIDOffset+1, created.ID)
	assert.Equal(t, "Premium", created.Name)
	assert.Equal(t, domain.ScenarioSourceStored, created.Source)

	scenarios, err := f.service.List(ctx)
	require.NoError(t, err)
	require.Len(t, scenarios, 3)
	assert.Equal(t, "Base case", scenarios[0].Name)
	assert.Equal(t, "Premium", scenarios[2].Name)

	got, err := f.service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, input, got.Input)
	assert.Equal(t, "ada@example.com", got.Owner)

	catalogEntry, err := f.service.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "High marketing", catalogEntry.Name)

	_, err = f.service.Get(ctx, 3)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.service.Get(ctx, StoredIDOffset+99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_ListSkipsUnreadableRows(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Create(ctx, &store.ScenarioRecord{
		Name:      "corrupt",
		Variables: json.RawMessage(`{"price":"abc"}`),
	}))

	scenarios, err := f.service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, scenarios, 2)
}

func TestService_Delete(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	created, err := f.service.Create(ctx, "Mine", domain.DefaultSimulationInput(), "ada@example.com")
	require.NoError(t, err)

	t.Run("catalog entries are read-only", func(t *testing.T) {
		assert.ErrorIs(t, f.service.Delete(ctx, 1, "ada@example.com"), ErrReadOnly)
	})

	t.Run("unknown id", func(t *testing.T) {
		assert.ErrorIs(t, f.service.Delete(ctx, 77, "ada@example.com"), ErrNotFound)
		assert.ErrorIs(t, f.service.Delete(ctx, StoredIDOffset+77, "ada@example.com"), ErrNotFound)
	})

	t.Run("other owner", func(t *testing.T) {
		assert.ErrorIs(t, f.service.Delete(ctx, created.ID, "eve@example.com"), ErrForbidden)
		_, err := f.service.Get(ctx, created.ID)
		assert.NoError(t, err)
	})

	t.Run("owner", func(t *testing.T) {
		require.NoError(t, f.service.Delete(ctx, created.ID, "ada@example.com"))
		_, err := f.service.Get(ctx, created.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestService_Run(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	sc, result, err := f.service.Run(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Base case", sc.Name)
	assert.Equal(t, 1168.0, result.MonthlyProfit)
	assert.Len(t, result.RevenueSeries, 12)

	_, _, err = f.service.Run(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}
