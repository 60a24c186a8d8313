package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

const uniqueViolation = "23505"

type Repository interface {
	CreateUser(ctx context.Context, user User) (User, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	IsUsernameAvailable(ctx context.Context, username string) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) CreateUser(ctx context.Context, user User) (User, error) {
	query := `INSERT INTO users (uid, username, display_name) VALUES ($1, $2, $3) RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query, user.Uid, user.Username, user.DisplayName).Scan(&user.Id, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return User{}, ErrUsernameTaken
		}
		err := fmt.Errorf("could not create user: %w", err)
		log.Error(err)
		return User{}, err
	}
	return user, nil
}

func (r *RepositoryImpl) GetUser(ctx context.Context, id int) (User, error) {
	query := `SELECT id, uid, username, display_name, created_at FROM users WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *RepositoryImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	query := `SELECT id, uid, username, display_name, created_at FROM users WHERE uid = $1`
	return r.getOne(ctx, query, uid)
}

func (r *RepositoryImpl) getOne(ctx context.Context, query string, arg any) (User, error) {
	var user User
	err := r.db.QueryRow(ctx, query, arg).Scan(&user.Id, &user.Uid, &user.Username, &user.DisplayName, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		log.Debugf("user %v not found", arg)
		return User{}, ErrUserNotFound
	} else if err != nil {
		err := fmt.Errorf("could not get user: %w", err)
		log.Error(err)
		return User{}, err
	}
	return user, nil
}

func (r *RepositoryImpl) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE username = $1`, username).Scan(&count)
	if err != nil {
		err := fmt.Errorf("could not check username availability: %w", err)
		log.Error(err)
		return false, err
	}
	return count == 0, nil
}
