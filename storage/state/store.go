package state

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/shulehq/shulectl/core"
	"github.com/shulehq/shulectl/core/session"
)

// Session fields are persisted one file per key, mirroring the keys the web
// console keeps in browser-local storage. Individually-keyed files make
// partial corruption observable: Read returns whatever subset is present and
// callers treat a missing token as "no session".
const (
	tokenFile   = "token"
	roleFile    = "role"
	userIDFile  = "user_id"
	profileFile = "user.json"
)

// FileStore persists the session under a state directory (default ~/.shulectl).
// Values are stored in the clear; the token crosses the wire in the clear over
// TLS anyway, so the 0700/0600 permissions are the only protection applied.
type FileStore struct {
	dir string
}

var _ session.Store = (*FileStore)(nil)

func NewFileStore(conf *core.Config) (*FileStore, error) {
	if err := os.MkdirAll(conf.StateDir, 0o700); err != nil {
		return nil, errors.Wrapf(err, "creating state dir %s", conf.StateDir)
	}
	return &FileStore{dir: conf.StateDir}, nil
}

// Write persists the full session. The token is written last: login must be
// atomic from the guard's point of view, and any state missing the token file
// reads back as unauthenticated.
func (s *FileStore) Write(sess session.Session) error {
	if sess.Profile != nil {
		if err := s.WriteProfile(*sess.Profile); err != nil {
			return err
		}
	}
	if err := s.writeKey(roleFile, string(session.NormalizeRole(string(sess.Role)))); err != nil {
		return err
	}
	if err := s.writeKey(userIDFile, sess.UserID); err != nil {
		return err
	}
	return s.writeKey(tokenFile, sess.Token)
}

// Read reconstructs the session from whatever key files exist.
func (s *FileStore) Read() (session.Session, error) {
	var sess session.Session
	var err error

	if sess.Token, err = s.readKey(tokenFile); err != nil {
		return session.Session{}, err
	}
	role, err := s.readKey(roleFile)
	if err != nil {
		return session.Session{}, err
	}
	sess.Role = session.Role(role)
	if sess.UserID, err = s.readKey(userIDFile); err != nil {
		return session.Session{}, err
	}

	data, err := os.ReadFile(filepath.Join(s.dir, profileFile))
	if err != nil {
		if os.IsNotExist(err) {
			return sess, nil
		}
		return session.Session{}, errors.Wrap(err, "reading cached profile")
	}
	var profile session.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		// a corrupt cache is display data only; drop it rather than fail
		return sess, nil
	}
	sess.Profile = &profile
	return sess, nil
}

// WriteProfile refreshes the cached profile snapshot only.
func (s *FileStore) WriteProfile(profile session.Profile) error {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshalling profile")
	}
	if err := os.WriteFile(filepath.Join(s.dir, profileFile), data, 0o600); err != nil {
		return errors.Wrap(err, "writing cached profile")
	}
	return nil
}

// Clear removes every session field, token first so a partially cleared state
// still reads back as unauthenticated. Clearing twice is a no-op.
func (s *FileStore) Clear() error {
	for _, name := range []string{tokenFile, roleFile, userIDFile, profileFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "removing %s", name)
		}
	}
	return nil
}

func (s *FileStore) writeKey(name, value string) error {
	if value == "" {
		// absent fields are represented by absent files
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "removing %s", name)
		}
		return nil
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), []byte(value), 0o600); err != nil {
		return errors.Wrapf(err, "writing %s", name)
	}
	return nil
}

func (s *FileStore) readKey(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrapf(err, "reading %s", name)
	}
	return string(data), nil
}
