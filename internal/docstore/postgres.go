package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// Postgres stores documents as JSONB rows in the documents table.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps an existing pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// OpenSession starts a new unit of work.
func (p *Postgres) OpenSession() Session {
	return &pgSession{pool: p.pool, tracker: newTracker()}
}

// Ping verifies database connectivity.
func (p *Postgres) Ping(ctx context.Context) error {
	if p == nil || p.pool == nil {
		return errors.New("postgres pool not configured")
	}
	return p.pool.Ping(ctx)
}

type pgSession struct {
	pool *pgxpool.Pool
	tracker
}

func (s *pgSession) Load(ctx context.Context, collection, id string, dst any) error {
	const query = `SELECT data, version FROM documents WHERE collection=$1 AND id=$2`

	var data []byte
	var version int64
	if err := s.pool.QueryRow(ctx, query, collection, id).Scan(&data, &version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s/%s: %w", collection, id, err)
	}
	s.observe(collection, id, version)
	return nil
}

func (s *pgSession) Query(ctx context.Context, collection string, filter Filter, dst any) error {
	query, args := buildQuery(collection, filter)
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	var result []json.RawMessage
	for rows.Next() {
		var (
			id      string
			data    []byte
			version int64
		)
		if err := rows.Scan(&id, &data, &version); err != nil {
			return err
		}
		result = append(result, json.RawMessage(data))
		s.observe(collection, id, version)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return decodeRows(result, dst)
}

func (s *pgSession) SaveChanges(ctx context.Context) error {
	writes, err := s.drain()
	if err != nil {
		return err
	}
	if len(writes) == 0 {
		return nil
	}

	committed := make(map[docKey]int64, len(writes))
	err = pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		for _, w := range writes {
			version, err := applyWrite(ctx, tx, w)
			if err != nil {
				return err
			}
			committed[w.key] = version
		}
		return nil
	})
	if err != nil {
		return translate(err)
	}
	for key, version := range committed {
		s.observe(key.collection, key.id, version)
	}
	return nil
}

func applyWrite(ctx context.Context, tx pgx.Tx, w stagedWrite) (int64, error) {
	const upsert = `
        INSERT INTO documents (collection, id, data, version)
        VALUES ($1, $2, $3::jsonb, 1)
        ON CONFLICT (collection, id) DO UPDATE
            SET data=EXCLUDED.data, version=documents.version+1, updated_at=NOW()
        RETURNING version`
	const update = `
        UPDATE documents SET data=$3::jsonb, version=version+1, updated_at=NOW()
        WHERE collection=$1 AND id=$2 AND version=$4
        RETURNING version`

	var version int64
	if !w.checked {
		err := tx.QueryRow(ctx, upsert, w.key.collection, w.key.id, string(w.data)).Scan(&version)
		return version, err
	}
	err := tx.QueryRow(ctx, update, w.key.collection, w.key.id, string(w.data), w.expected).Scan(&version)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s/%s", ErrConcurrency, w.key.collection, w.key.id)
	}
	return version, err
}

func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrConflict, pgErr.ConstraintName)
	}
	return err
}

// buildQuery renders a filter as SQL over the JSONB data column.
func buildQuery(collection string, filter Filter) (string, []any) {
	clauses := []string{"collection=$1"}
	args := []any{collection}

	for _, cond := range filter.Conditions {
		args = append(args, cond.Field)
		field := fmt.Sprintf("data->>$%d", len(args))
		switch cond.op {
		case opIsNull:
			clauses = append(clauses, field+" IS NULL")
		case opEq:
			args = append(args, stringify(cond.Value))
			clauses = append(clauses, fmt.Sprintf("%s = $%d", field, len(args)))
		}
	}

	query := fmt.Sprintf(`SELECT id, data, version FROM documents WHERE %s ORDER BY created_at ASC, id ASC`,
		strings.Join(clauses, " AND "))
	return query, args
}
