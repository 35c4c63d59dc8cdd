package inmemstate

import (
	"sync"

	"github.com/shulehq/shulectl/core/session"
)

// Store keeps the session in memory. It backs tests and the TEST env, where a
// run must not touch the operator's real state dir.
type Store struct {
	sync.RWMutex
	sess session.Session
}

var _ session.Store = (*Store)(nil) // interface compliance check

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Write(sess session.Session) error {
	s.Lock()
	defer s.Unlock()

	sess.Role = session.NormalizeRole(string(sess.Role))
	if sess.Profile != nil {
		profile := *sess.Profile
		sess.Profile = &profile
	}
	s.sess = sess
	return nil
}

func (s *Store) Read() (session.Session, error) {
	s.RLock()
	defer s.RUnlock()

	sess := s.sess
	if sess.Profile != nil {
		profile := *sess.Profile
		sess.Profile = &profile
	}
	return sess, nil
}

func (s *Store) WriteProfile(profile session.Profile) error {
	s.Lock()
	defer s.Unlock()

	s.sess.Profile = &profile
	return nil
}

func (s *Store) Clear() error {
	s.Lock()
	defer s.Unlock()

	s.sess = session.Session{}
	return nil
}
