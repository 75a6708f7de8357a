package priors

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jonathan/jd-annotator/internal/types"
)

// MemoryRepository is an in-memory Repository, used by tests and by CLI runs
// that have no database configured. Records are deep-copied through JSON so
// callers cannot mutate stored state by accident.
type MemoryRepository struct {
	mu      sync.Mutex
	records map[string][]byte
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string][]byte)}
}

// FindPriorsRecord returns the stored record, or (nil, nil) when absent.
func (m *MemoryRepository) FindPriorsRecord(_ context.Context, id string) (*types.PriorsRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.records[id]
	if !ok {
		return nil, nil
	}

	var record types.PriorsRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	if record.SkillPriors == nil {
		record.SkillPriors = make(map[string]*types.SkillPrior)
	}
	return &record, nil
}

// UpsertPriorsRecord stores a snapshot of the record under the given id.
func (m *MemoryRepository) UpsertPriorsRecord(_ context.Context, id string, record *types.PriorsRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[id] = data
	return nil
}
