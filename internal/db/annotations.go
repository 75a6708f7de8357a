package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/jd-annotator/internal/types"
)

// ListAnnotations enumerates the entire historical annotation corpus, oldest
// first. Consumed by the rebuilder.
func (db *DB) ListAnnotations(ctx context.Context) ([]types.CorpusAnnotation, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT target_text, COALESCE(relevance, ''), COALESCE(requirement_type, ''),
		        COALESCE(passion, ''), COALESCE(identity, ''), COALESCE(job_id::text, '')
		 FROM annotations ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list annotations: %w", err)
	}
	defer rows.Close()

	var annotations []types.CorpusAnnotation
	for rows.Next() {
		var a types.CorpusAnnotation
		if err := rows.Scan(&a.Text, &a.Relevance, &a.Requirement, &a.Passion, &a.Identity, &a.JobID); err != nil {
			return nil, fmt.Errorf("failed to scan annotation: %w", err)
		}
		annotations = append(annotations, a)
	}
	return annotations, nil
}

// InsertAnnotation records an annotation in the corpus so future rebuilds can
// learn from it.
func (db *DB) InsertAnnotation(ctx context.Context, jobID uuid.UUID, a *types.Annotation) error {
	var job any
	if jobID != uuid.Nil {
		job = jobID
	}
	_, err := db.pool.Exec(ctx,
		`INSERT INTO annotations (id, job_id, target_text, section, relevance, requirement_type, passion, identity, source)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (id) DO UPDATE SET relevance = $5, requirement_type = $6, passion = $7, identity = $8`,
		a.ID, job, a.Target.Text, a.Target.Section, a.Relevance, a.RequirementType, a.Passion, a.Identity, a.Source,
	)
	if err != nil {
		return fmt.Errorf("failed to insert annotation: %w", err)
	}
	return nil
}

// CountAnnotations returns the size of the historical corpus.
func (db *DB) CountAnnotations(ctx context.Context) (int, error) {
	var count int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM annotations`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count annotations: %w", err)
	}
	return count, nil
}
