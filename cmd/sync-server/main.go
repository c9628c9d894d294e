package main

import (
	"fmt"
	"os"

	"Memehub/config"
	"Memehub/indexer"
	"Memehub/pkg/database"
	"Memehub/pkg/log"
	"Memehub/pkg/server"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	path := fmt.Sprintf("configs/config.%s.yaml", env)
	cfg := config.New(path)
	log.SetDebug(cfg.Debug())

	cliApp := &cli.App{
		Name: "sync-server",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "consume lifecycle events and drain the index outbox",
				Action: func(ctx *cli.Context) error {
					nodeID, err := server.InitNode(cfg.Server, cfg.Server.Metrics)
					if err != nil {
						return err
					}
					log.L.Info("snowflake node", zap.Int64("node_id", nodeID))
					app := InitIndexer(cfg)
					if err := database.MigrateOutbox(app.DB); err != nil {
						return err
					}
					return indexer.Run(ctx, app)
				},
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.L.Fatal("failed to start server", zap.Error(err))
	}
}
