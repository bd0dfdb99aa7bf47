package store

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/paveg/statdex/internal/logging"
)

// Snapshot is the complete derived state of one load: the raw records, the
// store built from them and the name index built from that store. A
// snapshot is never modified after Build returns.
type Snapshot struct {
	LoadID      uuid.UUID
	LoadedAt    time.Time
	Fingerprint uint64
	Stats       LoadStats

	raw   []string
	store *Store
	index *NameIndex
}

// Build parses raw into a new snapshot. On a structural failure the
// returned snapshot is empty and the error explains why.
func Build(raw []string, columns Columns) (*Snapshot, error) {
	st := New(columns)
	stats, err := st.Load(raw)

	index := NewNameIndex()
	index.Rebuild(st.entries)

	snap := &Snapshot{
		LoadID:   uuid.New(),
		LoadedAt: time.Now(),
		Stats:    stats,
		store:    st,
		index:    index,
	}
	if err != nil {
		return snap, err
	}

	snap.raw = raw
	snap.Fingerprint = Fingerprint(raw)
	return snap, nil
}

// Empty returns a snapshot with no data.
func Empty(columns Columns) *Snapshot {
	return &Snapshot{
		store: New(columns),
		index: NewNameIndex(),
	}
}

// Fingerprint hashes the raw records, so two loads of identical input share
// a fingerprint.
func Fingerprint(raw []string) uint64 {
	h := xxhash.New()
	for _, line := range raw {
		_, _ = h.WriteString(line)
		_, _ = h.Write([]byte{'\n'})
	}
	return h.Sum64()
}

// Store returns the record store of the snapshot.
func (s *Snapshot) Store() *Store { return s.store }

// Index returns the name index of the snapshot.
func (s *Snapshot) Index() *NameIndex { return s.index }

// Raw returns the raw records the snapshot was built from.
func (s *Snapshot) Raw() []string { return s.raw }

// Len returns the number of loaded characters.
func (s *Snapshot) Len() int { return s.store.Len() }

// Session owns the current snapshot. Reload is the only writer; it builds a
// complete snapshot first and then publishes it with one atomic store, so a
// reader always sees a store and an index from the same load.
type Session struct {
	columns Columns
	logger  *logging.Logger

	mu      sync.Mutex // serialises reloads
	current atomic.Pointer[Snapshot]
}

// NewSession creates a session holding an empty snapshot.
func NewSession(columns Columns, logger *logging.Logger) *Session {
	if logger == nil {
		logger = logging.NoopLogger()
	}
	s := &Session{columns: columns, logger: logger}
	s.current.Store(Empty(columns))
	return s
}

// Snapshot returns the current snapshot. It is never nil.
func (s *Session) Snapshot() *Snapshot {
	return s.current.Load()
}

// Reload replaces the current snapshot with one built from raw. When the load
// fails structurally the session is left empty and the error is returned.
func (s *Session) Reload(raw []string) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := Build(raw, s.columns)
	s.current.Store(snap)

	logger := s.logger.WithLoad(snap.LoadID.String())
	if err != nil {
		logger.Warn("dataset load failed", "error", err)
		return snap, err
	}

	for _, row := range snap.Stats.Skipped {
		logger.Debug("row skipped", "line", row.Line, "reason", row.Reason.String())
	}
	logger.Info("dataset loaded",
		"rows", snap.Stats.Rows,
		"accepted", snap.Stats.Accepted,
		"skipped", snap.Stats.SkippedCount(),
		"names", snap.index.Len(),
		"fingerprint", snap.Fingerprint,
	)
	return snap, nil
}
