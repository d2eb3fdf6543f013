package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktgktg/blogsmith/internal/domain"
	"github.com/ktgktg/blogsmith/internal/keyring"
	"github.com/ktgktg/blogsmith/internal/store"
)

const testSecret = "thisisasecretkeythatis32charslong!!"

func newTestStore(t *testing.T) (*CredentialStore, sqlmock.Sqlmock, *keyring.Sealer) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sealer, err := keyring.New(testSecret)
	require.NoError(t, err)

	s := NewCredentialStore(db, sealer)
	s.now = func() time.Time { return time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC) }
	return s, mock, sealer
}

func TestCredentialStoreGet(t *testing.T) {
	s, mock, sealer := newTestStore(t)
	sealed, err := sealer.Seal("sk-kim")
	require.NoError(t, err)

	mock.ExpectQuery("SELECT sealed_key FROM user_api_keys").
		WithArgs("kim", "openai").
		WillReturnRows(sqlmock.NewRows([]string{"sealed_key"}).AddRow(sealed))

	key, err := s.Get(context.Background(), "kim", domain.ProviderOpenAI)

	require.NoError(t, err)
	assert.Equal(t, "sk-kim", key)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentialStoreGetMissing(t *testing.T) {
	s, mock, _ := newTestStore(t)
	mock.ExpectQuery("SELECT sealed_key FROM user_api_keys").
		WithArgs("kim", "groq").
		WillReturnError(sql.ErrNoRows)

	_, err := s.Get(context.Background(), "kim", domain.ProviderGroq)

	assert.ErrorIs(t, err, store.ErrCredentialNotFound)
}

func TestCredentialStoreGetCorrupt(t *testing.T) {
	s, mock, _ := newTestStore(t)
	mock.ExpectQuery("SELECT sealed_key FROM user_api_keys").
		WillReturnRows(sqlmock.NewRows([]string{"sealed_key"}).AddRow("garbage"))

	_, err := s.Get(context.Background(), "kim", domain.ProviderGemini)

	assert.ErrorIs(t, err, keyring.ErrCorrupt)
}

func TestCredentialStorePutAll(t *testing.T) {
	s, mock, _ := newTestStore(t)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM user_api_keys").
		WithArgs("kim", "gemini").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO user_api_keys").
		WithArgs("kim", "openai", sqlmock.AnyArg(), s.now().UTC()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.PutAll(context.Background(), "kim", map[domain.Provider]string{
		domain.ProviderOpenAI: "sk-new",
		domain.ProviderGemini: "  ",
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentialStorePutAllRollsBack(t *testing.T) {
	s, mock, _ := newTestStore(t)
	dbErr := errors.New("connection reset")
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO user_api_keys").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO user_api_keys").WillReturnError(dbErr)
	mock.ExpectRollback()

	err := s.PutAll(context.Background(), "kim", map[domain.Provider]string{
		domain.ProviderGroq:   "gsk_a",
		domain.ProviderOpenAI: "sk-b",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentialStorePutAllValidation(t *testing.T) {
	s, mock, _ := newTestStore(t)

	err := s.PutAll(context.Background(), " ", map[domain.Provider]string{domain.ProviderOpenAI: "sk"})
	assert.ErrorIs(t, err, store.ErrInvalidEntity)

	err = s.PutAll(context.Background(), "kim", map[domain.Provider]string{"claude": "x"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedProvider)

	assert.NoError(t, mock.ExpectationsWereMet(), "invalid input never reaches the database")
}

func TestCredentialStoreList(t *testing.T) {
	s, mock, sealer := newTestStore(t)
	a, err := sealer.Seal("AIza-kim")
	require.NoError(t, err)
	b, err := sealer.Seal("sk-kim")
	require.NoError(t, err)
	updated := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT provider, sealed_key, updated_at FROM user_api_keys").
		WithArgs("kim").
		WillReturnRows(sqlmock.NewRows([]string{"provider", "sealed_key", "updated_at"}).
			AddRow("gemini", a, updated).
			AddRow("openai", b, updated))

	keys, err := s.List(context.Background(), "kim")

	require.NoError(t, err)
	require.Len(t, keys, 2)
	assert.Equal(t, store.ProviderKey{Owner: "kim", Provider: domain.ProviderGemini, Key: "AIza-kim", UpdatedAt: updated}, keys[0])
	assert.Equal(t, "sk-kim", keys[1].Key)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	raw, err := migrationsFS.ReadFile("migrations/" + entries[0].Name())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "-- +goose Up")
	assert.Contains(t, string(raw), "user_api_keys")
}
