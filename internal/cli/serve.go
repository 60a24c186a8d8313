package cli

import (
	"os/signal"
	"syscall"

	"github.com/klokku/repocard/internal/app"
	"github.com/klokku/repocard/internal/config"
	"github.com/urfave/cli/v2"
)

func serve(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	application, err := app.NewApplication(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return application.Run(ctx)
}
