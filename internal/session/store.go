package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/rhyrak/go-timetable/pkg/model"
)

type Kind string

const (
	KindSingle Kind = "single"
	KindJoint  Kind = "joint"
)

// Session keeps the ranked results of one planning call so further pages and
// PDF exports can be served without searching again.
type Session struct {
	ID        string
	Kind      Kind
	CreatedAt time.Time
	Window    model.Window
	Generated int
	Truncated bool
	Common    []string
	Schedules []*model.Schedule
	Joint     []*model.JointSchedule
}

// Len returns the number of stored schedules of the session's kind.
func (s *Session) Len() int {
	if s.Kind == KindJoint {
		return len(s.Joint)
	}
	return len(s.Schedules)
}

// Store is an in-memory session store whose entries expire after a fixed TTL.
type Store struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	cleanup := 10 * time.Minute
	if ttl > 0 && ttl < cleanup {
		cleanup = ttl
	}
	return &Store{cache: cache.New(ttl, cleanup), ttl: ttl}
}

// Save stores s under a fresh id and returns the id.
func (st *Store) Save(s *Session) string {
	s.ID = uuid.NewString()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	st.cache.Set(s.ID, s, cache.DefaultExpiration)
	return s.ID
}

func (st *Store) Get(id string) (*Session, bool) {
	v, ok := st.cache.Get(id)
	if !ok {
		return nil, false
	}
	s, ok := v.(*Session)
	return s, ok
}

func (st *Store) Delete(id string) {
	st.cache.Delete(id)
}

func (st *Store) Len() int {
	return st.cache.ItemCount()
}

func (st *Store) TTL() time.Duration {
	return st.ttl
}
