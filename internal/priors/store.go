// Package priors owns the learned priors record: loading and persisting the
// singleton, deciding when a full rebuild is due, rebuilding from the
// historical corpus, and folding user feedback into the skill priors.
package priors

import (
	"context"
	"time"

	"github.com/jonathan/jd-annotator/internal/types"
	"go.uber.org/zap"
)

// RecordID is the fixed id the singleton priors record is stored under.
const RecordID = "learned_annotation_priors"

// Repository is the persistence collaborator for the priors record.
// FindPriorsRecord returns (nil, nil) when no record exists yet.
type Repository interface {
	FindPriorsRecord(ctx context.Context, id string) (*types.PriorsRecord, error)
	UpsertPriorsRecord(ctx context.Context, id string, record *types.PriorsRecord) error
}

// Store loads and persists the singleton priors record. All persistence
// failures degrade to an empty record or a false return; downstream suggestion
// paths must keep working when learning state is unavailable.
type Store struct {
	repo Repository
	log  *zap.Logger
}

// NewStore creates a store over the given repository. A nil logger is
// replaced with a no-op logger.
func NewStore(repo Repository, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{repo: repo, log: log}
}

// Load fetches the singleton record, creating and persisting an empty one on
// first use. It never fails: repository errors are logged and an empty record
// is returned instead.
func (s *Store) Load(ctx context.Context) *types.PriorsRecord {
	record, err := s.repo.FindPriorsRecord(ctx, RecordID)
	if err != nil {
		s.log.Warn("failed to load priors record, starting empty", zap.Error(err))
		return types.NewEmptyRecord()
	}
	if record != nil {
		return record
	}

	record = types.NewEmptyRecord()
	if !s.Save(ctx, record) {
		s.log.Warn("failed to persist initial priors record")
	}
	return record
}

// Save stamps updated_at and replaces the stored record wholesale. Returns
// false (after logging) on repository errors rather than raising them.
func (s *Store) Save(ctx context.Context, record *types.PriorsRecord) bool {
	record.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpsertPriorsRecord(ctx, RecordID, record); err != nil {
		s.log.Error("failed to save priors record", zap.Error(err))
		return false
	}
	return true
}
