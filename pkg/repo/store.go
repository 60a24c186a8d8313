package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Store keeps the repositories each user has imported.
type Store interface {
	Store(ctx context.Context, userId int, repository Repository) (Repository, error)
	List(ctx context.Context, userId int) ([]Repository, error)
	Get(ctx context.Context, userId int, owner, name string) (Repository, error)
	SetHasTimecard(ctx context.Context, userId int, owner, name string, hasTimecard bool) error
}

type StoreImpl struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *StoreImpl {
	return &StoreImpl{db: db}
}

const selectRepository = `SELECT id, uid, owner, name, default_branch, has_timecard, imported_at FROM imported_repository`

func (s *StoreImpl) Store(ctx context.Context, userId int, repository Repository) (Repository, error) {
	query := `INSERT INTO imported_repository (uid, user_id, owner, name, default_branch, has_timecard, imported_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := s.db.QueryRow(ctx, query,
		repository.Uid,
		userId,
		repository.Owner,
		repository.Name,
		repository.DefaultBranch,
		repository.HasTimecard,
		repository.ImportedAt,
	).Scan(&repository.Id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Repository{}, ErrRepoAlreadyImported
		}
		err := fmt.Errorf("could not store repository: %w", err)
		log.Error(err)
		return Repository{}, err
	}
	return repository, nil
}

func (s *StoreImpl) List(ctx context.Context, userId int) ([]Repository, error) {
	rows, err := s.db.Query(ctx, selectRepository+` WHERE user_id = $1 ORDER BY imported_at DESC, id DESC`, userId)
	if err != nil {
		err := fmt.Errorf("could not query repositories: %w", err)
		log.Error(err)
		return nil, err
	}
	repositories, err := pgx.CollectRows(rows, scanRepository)
	if err != nil {
		err := fmt.Errorf("could not scan repositories: %w", err)
		log.Error(err)
		return nil, err
	}
	return repositories, nil
}

func (s *StoreImpl) Get(ctx context.Context, userId int, owner, name string) (Repository, error) {
	rows, err := s.db.Query(ctx, selectRepository+` WHERE user_id = $1 AND owner = $2 AND name = $3`, userId, owner, name)
	if err != nil {
		err := fmt.Errorf("could not query repository: %w", err)
		log.Error(err)
		return Repository{}, err
	}
	repository, err := pgx.CollectExactlyOneRow(rows, scanRepository)
	if errors.Is(err, pgx.ErrNoRows) {
		return Repository{}, ErrRepoNotFound
	} else if err != nil {
		err := fmt.Errorf("could not scan repository: %w", err)
		log.Error(err)
		return Repository{}, err
	}
	return repository, nil
}

func (s *StoreImpl) SetHasTimecard(ctx context.Context, userId int, owner, name string, hasTimecard bool) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE imported_repository SET has_timecard = $1 WHERE user_id = $2 AND owner = $3 AND name = $4`,
		hasTimecard, userId, owner, name)
	if err != nil {
		err := fmt.Errorf("could not update repository: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRepoNotFound
	}
	return nil
}

func scanRepository(row pgx.CollectableRow) (Repository, error) {
	var r Repository
	err := row.Scan(&r.Id, &r.Uid, &r.Owner, &r.Name, &r.DefaultBranch, &r.HasTimecard, &r.ImportedAt)
	return r, err
}
