package store

import (
	"path/filepath"
	"sync"

	"dhlink/internal/domain"
)

const (
	outboxFile = "outbox.json"

	// DefaultOutboxCapacity is the number of records kept before the oldest
	// are dropped.
	DefaultOutboxCapacity = 500
)

// OutboxFileStore keeps the log of sent envelopes in a single JSON array,
// oldest first. Records hold ciphertext and a key fingerprint, never keys.
type OutboxFileStore struct {
	dir      string
	capacity int
	mu       sync.Mutex
}

// NewOutboxFileStore returns a store rooted at dir. The directory is created
// on first write.
func NewOutboxFileStore(dir string) *OutboxFileStore {
	return &OutboxFileStore{dir: dir, capacity: DefaultOutboxCapacity}
}

// WithCapacity sets how many records are retained. Values below one are
// ignored.
func (s *OutboxFileStore) WithCapacity(n int) *OutboxFileStore {
	if n > 0 {
		s.capacity = n
	}
	return s
}

// AppendOutbox adds a record and drops the oldest beyond capacity.
func (s *OutboxFileStore) AppendOutbox(record domain.OutboxRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ensureDir(s.dir); err != nil {
		return err
	}
	var records []domain.OutboxRecord
	if err := readJSON(s.path(), &records); err != nil {
		return err
	}
	records = append(records, record)
	if over := len(records) - s.capacity; over > 0 {
		records = records[over:]
	}
	return writeJSON(s.path(), records, 0o600)
}

// ListOutbox returns up to limit of the most recent records, oldest first.
// A limit of zero or less returns everything.
func (s *OutboxFileStore) ListOutbox(limit int) ([]domain.OutboxRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []domain.OutboxRecord
	if err := readJSON(s.path(), &records); err != nil {
		return nil, err
	}
	if limit > 0 && len(records) > limit {
		records = records[len(records)-limit:]
	}
	return records, nil
}

func (s *OutboxFileStore) path() string { return filepath.Join(s.dir, outboxFile) }

// Compile-time assertion that OutboxFileStore implements domain.OutboxStore.
var _ domain.OutboxStore = (*OutboxFileStore)(nil)
