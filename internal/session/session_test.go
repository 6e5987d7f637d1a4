package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "session.json"))
}

func TestSaveOverwritesAndCurrentReads(t *testing.T) {
	store := newTestStore(t)

	_, ok := store.Current()
	assert.False(t, ok, "fresh store must read as absent, not error")
	assert.False(t, store.IsActive())

	require.NoError(t, store.Save(Session{Token: "tok-1", User: User{ID: "u1", Username: "maria", Rol: "cajero"}}))
	s, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, "tok-1", s.Token)
	assert.Equal(t, "cajero", s.User.Rol)
	assert.True(t, store.IsActive())

	// Overwrite replaces the prior value entirely.
	require.NoError(t, store.Save(Session{Token: "tok-2", User: User{ID: "u2", Username: "jose", Rol: "admin"}}))
	s, ok = store.Current()
	require.True(t, ok)
	assert.Equal(t, "tok-2", s.Token)
	assert.Equal(t, "jose", s.User.Username)
}

func TestClearRemovesSession(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(Session{Token: "tok", User: User{ID: "u1"}}))

	require.NoError(t, store.Clear())
	_, ok := store.Current()
	assert.False(t, ok)

	// Clearing an absent session is not an error.
	require.NoError(t, store.Clear())
}

func TestCorruptFileReadsAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewFileStore(path)
	_, ok := store.Current()
	assert.False(t, ok)
	assert.False(t, store.IsActive())
}

func TestEmptyTokenReadsAsAbsent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(Session{Token: "", User: User{ID: "u1"}}))
	assert.False(t, store.IsActive())
}

func TestClaimsUnverifiedPeek(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &TokenClaims{
		UserID:   "u1",
		Username: "maria",
		Rol:      "cajero",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)),
		},
	})
	// The console never holds the signing secret; any key works for the test
	// because Claims does not verify.
	signed, err := token.SignedString([]byte("clave-que-la-consola-no-conoce"))
	require.NoError(t, err)

	claims, err := Claims(signed)
	require.NoError(t, err)
	assert.Equal(t, "maria", claims.Username)
	assert.Equal(t, "cajero", claims.Rol)
	assert.Equal(t, 2026, claims.ExpiresAt().Year())
}

func TestClaimsRejectsGarbage(t *testing.T) {
	_, err := Claims("no-es-un-jwt")
	assert.Error(t, err)
}
