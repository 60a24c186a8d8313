package test_utils

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// InsertUser stores a user row directly and returns its id and uid.
func InsertUser(t *testing.T, ctx context.Context, db *pgxpool.Pool, username string) (int, string) {
	t.Helper()
	uid := uuid.NewString()
	var id int
	err := db.QueryRow(ctx,
		`INSERT INTO users (uid, username, display_name) VALUES ($1, $2, $2) RETURNING id`,
		uid, username,
	).Scan(&id)
	require.NoError(t, err)
	return id, uid
}
