// Package session owns the persisted authentication state: the bearer token
// and the cached user record returned at login. The server is the only
// authority on token validity — nothing here checks expiry before use.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// User is the record cached alongside the token at login.
// Rol: "admin" | "cajero" | "inventario" | "invitado"
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Rol      string `json:"rol"`
}

// Session is the process-wide singleton state read by every resource client
// and by the route guard.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Store persists the current session. Implementations must treat an absent
// session as a normal, representable result — never an error.
type Store interface {
	Save(s Session) error
	Current() (Session, bool)
	Clear() error
	IsActive() bool
}

// FileStore keeps the session as a JSON file, the console's analog of
// browser localStorage. Written with 0600 since it holds a bearer token.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

var _ Store = (*FileStore)(nil)

func (fs *FileStore) Save(s Session) error {
	if err := os.MkdirAll(filepath.Dir(fs.path), 0o700); err != nil {
		return fmt.Errorf("session: crear directorio: %w", err)
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session: serializar: %w", err)
	}
	if err := os.WriteFile(fs.path, data, 0o600); err != nil {
		return fmt.Errorf("session: escribir %s: %w", fs.path, err)
	}
	return nil
}

// Current returns the persisted session. A missing, unreadable or corrupt
// file all read as absent; corruption is logged and left for Clear/Save to
// overwrite.
func (fs *FileStore) Current() (Session, bool) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		return Session{}, false
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		log.Warn().Str("path", fs.path).Err(err).Msg("archivo de sesion corrupto, se ignora")
		return Session{}, false
	}
	if s.Token == "" {
		return Session{}, false
	}
	return s, true
}

func (fs *FileStore) Clear() error {
	err := os.Remove(fs.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("session: eliminar %s: %w", fs.path, err)
	}
	return nil
}

// IsActive reports token presence only; it does not validate the token
// against the server.
func (fs *FileStore) IsActive() bool {
	_, ok := fs.Current()
	return ok
}
