package scenario

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/decision-simulator/pkg/models/store"
	"github.com/de-tools/decision-simulator/pkg/store/sqlite"
)

var ErrNotFound = errors.New("scenario not found")

type Store interface {
	Create(ctx context.Context, record *store.ScenarioRecord) error
	Get(ctx context.Context, id int64) (*store.ScenarioRecord, error)
	List(ctx context.Context) ([]store.ScenarioRecord, error)
	Delete(ctx context.Context, id int64) error
}

type defaultStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &defaultStore{
		db:  db,
		now: time.Now,
	}, nil
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Create inserts record and fills in its ID and, when unset, CreatedAt.
func (s *defaultStore) Create(ctx context.Context, record *store.ScenarioRecord) error {
	if record == nil {
		return fmt.Errorf("scenario record is nil")
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = s.now()
	}

	res, err := sqlite.Conn(ctx, s.db).ExecContext(ctx,
		`INSERT INTO scenarios (name, variables, owner, created_at) VALUES (?, ?, ?, ?)`,
		record.Name,
		string(record.Variables),
		record.Owner,
		toMillis(record.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert scenario: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("read scenario id: %w", err)
	}
	record.ID = id
	record.CreatedAt = fromMillis(toMillis(record.CreatedAt))
	return nil
}

func (s *defaultStore) Get(ctx context.Context, id int64) (*store.ScenarioRecord, error) {
	row := sqlite.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT id, name, variables, owner, created_at FROM scenarios WHERE id = ?`, id)

	record, err := scanScenario(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query scenario %d: %w", id, err)
	}
	return record, nil
}

func (s *defaultStore) List(ctx context.Context) ([]store.ScenarioRecord, error) {
	rows, err := sqlite.Conn(ctx, s.db).QueryContext(ctx,
		`SELECT id, name, variables, owner, created_at FROM scenarios ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query scenarios: %w", err)
	}
	defer rows.Close()

	var records []store.ScenarioRecord
	for rows.Next() {
		record, err := scanScenario(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scenario: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scenarios: %w", err)
	}
	return records, nil
}

func (s *defaultStore) Delete(ctx context.Context, id int64) error {
	res, err := sqlite.Conn(ctx, s.db).ExecContext(ctx, `DELETE FROM scenarios WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete scenario %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete scenario %d: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanScenario(row scanner) (*store.ScenarioRecord, error) {
	var (
		record    store.ScenarioRecord
		variables string
		owner     sql.NullString
		createdAt int64
	)
	if err := row.Scan(&record.ID, &record.Name, &variables, &owner, &createdAt); err != nil {
		return nil, err
	}
	record.Variables = []byte(variables)
	if owner.Valid {
		o := owner.String
		record.Owner = &o
	}
	record.CreatedAt = fromMillis(createdAt)
	return &record, nil
}
