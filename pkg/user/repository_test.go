package user

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/repocard/internal/test_utils"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var pgContainer *postgres.PostgresContainer
var openDb func() *pgxpool.Pool

func TestMain(m *testing.M) {
	pgContainer, openDb = test_utils.TestWithDB()
	code := m.Run()
	if err := testcontainers.TerminateContainer(pgContainer); err != nil {
		log.Errorf("failed to terminate container: %s", err)
	}
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, *RepositoryImpl) {
	ctx := context.Background()
	db := openDb()
	t.Cleanup(func() {
		db.Close()
		require.NoError(t, pgContainer.Restore(ctx))
	})
	return ctx, NewRepository(db)
}

func TestRepositoryImpl_CreateAndGetUser(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)

	// when
	created, err := repo.CreateUser(ctx, User{Uid: "uid-1", Username: "1egoman", DisplayName: "Ryan"})

	// then
	require.NoError(t, err)
	assert.NotZero(t, created.Id)
	assert.False(t, created.CreatedAt.IsZero())

	byId, err := repo.GetUser(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "1egoman", byId.Username)
	assert.Equal(t, "Ryan", byId.DisplayName)

	byUid, err := repo.GetUserByUid(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, created.Id, byUid.Id)
}

func TestRepositoryImpl_GetUser_NotFound(t *testing.T) {
	ctx, repo := setupTestRepository(t)

	_, err := repo.GetUser(ctx, 42)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = repo.GetUserByUid(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRepositoryImpl_CreateUser_DuplicateUsername(t *testing.T) {
	ctx, repo := setupTestRepository(t)
	_, err := repo.CreateUser(ctx, User{Uid: "uid-1", Username: "1egoman"})
	require.NoError(t, err)

	_, err = repo.CreateUser(ctx, User{Uid: "uid-2", Username: "1egoman"})

	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRepositoryImpl_IsUsernameAvailable(t *testing.T) {
	ctx, repo := setupTestRepository(t)
	_, err := repo.CreateUser(ctx, User{Uid: "uid-1", Username: "1egoman"})
	require.NoError(t, err)

	available, err := repo.IsUsernameAvailable(ctx, "1egoman")
	require.NoError(t, err)
	assert.False(t, available)

	available, err = repo.IsUsernameAvailable(ctx, "someone")
	require.NoError(t, err)
	assert.True(t, available)
}
