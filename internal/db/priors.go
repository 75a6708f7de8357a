package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/jd-annotator/internal/types"
)

// FindPriorsRecord retrieves the learned priors record stored under the given
// fixed id. Returns (nil, nil) when no record exists yet.
func (db *DB) FindPriorsRecord(ctx context.Context, id string) (*types.PriorsRecord, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM learned_priors WHERE id = $1`,
		id,
	).Scan(&content)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get priors record: %w", err)
	}

	var record types.PriorsRecord
	if err := json.Unmarshal(content, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal priors record: %w", err)
	}
	if record.SkillPriors == nil {
		record.SkillPriors = make(map[string]*types.SkillPrior)
	}
	return &record, nil
}

// UpsertPriorsRecord stores the record under the given fixed id, replacing any
// existing content wholesale.
func (db *DB) UpsertPriorsRecord(ctx context.Context, id string, record *types.PriorsRecord) error {
	content, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal priors record: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO learned_priors (id, content, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (id) DO UPDATE SET content = $2, updated_at = NOW()`,
		id, content,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert priors record: %w", err)
	}
	return nil
}
