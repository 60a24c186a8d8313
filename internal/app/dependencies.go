package app

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/repocard/internal/config"
	"github.com/klokku/repocard/internal/event_bus"
	"github.com/klokku/repocard/internal/utils"
	"github.com/klokku/repocard/pkg/github"
	"github.com/klokku/repocard/pkg/repo"
	"github.com/klokku/repocard/pkg/stats"
	"github.com/klokku/repocard/pkg/timeline"
	"github.com/klokku/repocard/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	GitHub *github.Client

	UserService user.Service
	UserHandler *user.Handler

	RepoStore   repo.Store
	RepoService *repo.ServiceImpl
	RepoHandler *repo.Handler

	StatsService     *stats.StatsServiceImpl
	CsvStatsRenderer *stats.CsvStatsRendererImpl
	StatsHandler     *stats.StatsHandler

	TimelineService *timeline.ServiceImpl
	TimelineHandler *timeline.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{
		EventBus: event_bus.NewEventBus(),
		Clock:    utils.SystemClock{},
	}

	gh, err := github.NewClient(cfg.GitHub)
	if err != nil {
		return nil, fmt.Errorf("failed to create github client: %w", err)
	}
	deps.GitHub = gh
	github.SubscribeTimecardWriter(deps.EventBus, deps.GitHub)

	deps.UserService = user.NewService(user.NewRepository(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.RepoStore = repo.NewStore(db)
	deps.RepoService = repo.NewService(deps.RepoStore, deps.GitHub, deps.EventBus, deps.Clock)
	deps.RepoHandler = repo.NewHandler(deps.RepoService)

	deps.StatsService = stats.NewStatsServiceImpl(deps.GitHub)
	deps.CsvStatsRenderer = stats.NewCsvStatsTransformer()
	deps.StatsHandler = stats.NewStatsHandler(deps.StatsService, deps.CsvStatsRenderer)

	deps.TimelineService = timeline.NewService(deps.GitHub)
	deps.TimelineHandler = timeline.NewHandler(deps.TimelineService)

	return deps, nil
}
