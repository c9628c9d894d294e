package main

import (
	"fmt"
	"os"

	"Memehub/config"
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
		Name: "api-server",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start http server",
				Action: func(ctx *cli.Context) error {
					nodeID, err := server.InitNode(cfg.Server, cfg.Server.Http)
					if err != nil {
						return err
					}
					log.L.Info("snowflake node", zap.Int64("node_id", nodeID))
					appProvider := InitServer(cfg)
					if err := database.MigrateOutbox(appProvider.DB); err != nil {
						return err
					}
					return server.Run(ctx, appProvider)
				},
			},
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		log.L.Fatal("failed to start server", zap.Error(err))
	}
}
