package memory

import (
	"errors"
	"sync"
	"time"

	"doc-qna-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository keeps document sessions in process memory with a TTL.
// Nothing is persisted: an expired or deleted session is gone for good.
//
// The repository mutex is what makes the session state machine safe for
// programmatic callers: Update runs its whole read-modify-write under the
// lock, so a check-and-set on the pending-question flag is atomic.
type SessionRepository struct {
	cache *cache.Cache
	mu    sync.Mutex
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	// Purge expired sessions every 10 minutes.
	c := cache.New(ttl, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *store.DocumentSession) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.DocumentSession, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.DocumentSession), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

// View runs fn with the session held under the repository lock. Readers go
// through here rather than Get so they never observe a transition mid-apply;
// fn must copy out what it needs and not retain the pointer.
func (r *SessionRepository) View(sessionID string, fn func(*store.DocumentSession)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, found := r.Get(sessionID)
	if !found {
		return ErrSessionNotFound
	}
	fn(session)
	return nil
}

// Update applies fn to the stored session atomically. The fn error aborts the
// update and is returned as-is; state mutated by fn before the error is still
// visible because sessions are stored by pointer, so fn must only mutate
// after its guards pass.
func (r *SessionRepository) Update(sessionID string, fn func(*store.DocumentSession) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, found := r.Get(sessionID)
	if !found {
		return ErrSessionNotFound
	}
	if err := fn(session); err != nil {
		return err
	}
	r.Save(session)
	return nil
}
