package session

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartpick/smartpick/pkg/kv"
)

// HistoryKey is the key-value entry holding the serialized session collection
const HistoryKey = "chatHistory"

// Store owns the ordered collection of sessions and persists it through a
// key-value collaborator. Every mutation re-serializes the whole collection
// (write-through); write volume is one session-sized document per human turn,
// so correctness wins over throughput.
//
// The append target is always the last session in the collection, regardless
// of which session a caller is viewing.
type Store struct {
	mu       sync.Mutex
	kv       kv.Store
	sessions []Session
	lastID   int64
	log      zerolog.Logger
}

// NewStore creates a store and loads any persisted history. Absent or
// malformed data yields an empty collection, never an error.
func NewStore(store kv.Store, log zerolog.Logger) *Store {
	s := &Store{kv: store, log: log}
	s.load()
	return s
}

// load reads the persisted collection once at construction
func (s *Store) load() {
	data, ok, err := s.kv.Get(HistoryKey)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to read chat history, starting empty")
		return
	}
	if !ok {
		return
	}

	var sessions []Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		s.log.Warn().Err(err).Msg("malformed chat history, starting empty")
		return
	}

	s.sessions = sessions
	for _, sess := range sessions {
		if sess.ID > s.lastID {
			s.lastID = sess.ID
		}
	}
}

// persist writes the whole collection back to the key-value store.
// Persistence failures are logged, not surfaced; the in-memory collection
// stays authoritative for the rest of the process lifetime.
func (s *Store) persist() {
	data, err := json.Marshal(s.sessions)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to serialize chat history")
		return
	}
	if err := s.kv.Set(HistoryKey, data); err != nil {
		s.log.Error().Err(err).Msg("failed to persist chat history")
	}
}

// nextID returns a monotonic unix-millisecond id, bumping on collision
func (s *Store) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// CreateSession appends a new session seeded with its first message and
// persists immediately. Returns the new session id.
func (s *Store) CreateSession(first Message) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	sess := Session{
		ID:        s.nextID(now),
		CreatedAt: displayTimestamp(now),
		Messages:  []Message{first},
	}
	s.sessions = append(s.sessions, sess)
	s.persist()

	return sess.ID
}

// AppendToActiveSession appends a message to the last session in the
// collection. No-op when the collection is empty.
func (s *Store) AppendToActiveSession(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sessions) == 0 {
		return
	}

	last := len(s.sessions) - 1
	s.sessions[last].Messages = append(s.sessions[last].Messages, msg)
	s.persist()
}

// SelectForViewing returns a detached snapshot of the chosen session's
// messages. It never changes the append target. Out-of-range indexes
// return nil.
func (s *Store) SelectForViewing(index int) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.sessions) {
		return nil
	}

	messages := s.sessions[index].Messages
	out := make([]Message, len(messages))
	copy(out, messages)
	return out
}

// ActiveMessages returns a detached snapshot of the append target's messages
func (s *Store) ActiveMessages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sessions) == 0 {
		return nil
	}

	messages := s.sessions[len(s.sessions)-1].Messages
	out := make([]Message, len(messages))
	copy(out, messages)
	return out
}

// ActiveID returns the id of the append target, or 0 when empty
func (s *Store) ActiveID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sessions) == 0 {
		return 0
	}
	return s.sessions[len(s.sessions)-1].ID
}

// Sessions lists summaries of all sessions in creation order
func (s *Store) Sessions() []Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Summary, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, Summary{
			ID:        sess.ID,
			CreatedAt: sess.CreatedAt,
			Turns:     len(sess.Messages),
		})
	}
	return out
}

// Len returns the number of sessions
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Clear discards every session and removes the persisted entry
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = nil
	if err := s.kv.Remove(HistoryKey); err != nil {
		s.log.Error().Err(err).Msg("failed to clear chat history")
	}
}
