package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

// Session is the active identity. Exactly one may be live per store; a second
// login overwrites the first.
type Session struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Store persists the signed-in identity to a JSON file and owns its
// lifecycle: Unauthenticated -> Authenticated -> Unauthenticated.
type Store struct {
	mu       sync.Mutex
	path     string
	current  *Session
	onLogout []func()
}

// NewStore creates a store persisting under dataPath.
func NewStore(dataPath string) *Store {
	return &Store{
		path: filepath.Join(dataPath, "session.json"),
	}
}

// Login persists the identity and transitions to Authenticated. The remote
// call that produced the identity already happened; this only records it.
func (s *Store) Login(userID, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &Session{UserID: userID, Email: email}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	s.current = sess
	log.Info().Str("user", userID).Msg("Session established")
	return nil
}

// Restore reads the persisted identity at startup. Both fields must be
// present to count; validity against the backend is not re-checked, a stale
// session simply fails on its first authenticated request.
func (s *Store) Restore() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Msg("Failed to read session file")
		}
		return nil
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		log.Warn().Err(err).Msg("Discarding unreadable session file")
		return nil
	}

	if sess.UserID == "" || sess.Email == "" {
		return nil
	}

	s.current = &sess
	log.Debug().Str("user", sess.UserID).Msg("Session restored")
	return &sess
}

// Current returns the active session, nil when unauthenticated.
func (s *Store) Current() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// OnLogout registers a hook run when the session is cleared. Used to cancel
// any active polling for the departing identity.
func (s *Store) OnLogout(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLogout = append(s.onLogout, fn)
}

// Logout clears the persisted identity, transitions to Unauthenticated and
// runs the registered hooks.
func (s *Store) Logout() error {
	s.mu.Lock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.mu.Unlock()
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.current = nil
	hooks := make([]func(), len(s.onLogout))
	copy(hooks, s.onLogout)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}

	log.Info().Msg("Session cleared")
	return nil
}
