package main

import (
	"fmt"
	"os"

	"Memehub/pkg/database"
	"Memehub/pkg/exporter"
	"Memehub/pkg/log"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	cliApp := &cli.App{
		Name:  "exporter",
		Usage: "dump a sqlite database to schema and data SQL files",
		Commands: []*cli.Command{
			{
				Name:  "export",
				Usage: "write schema.sql and the full dump",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "db", Value: "./data.db", Usage: "sqlite database file"},
					&cli.StringFlag{Name: "schema-out", Value: "schema.sql", Usage: "schema output file"},
					&cli.StringFlag{Name: "dump-out", Value: "directus_backup.sql", Usage: "schema and data output file"},
				},
				Action: export,
			},
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		log.L.Fatal("export failed", zap.Error(err))
	}
}

func export(ctx *cli.Context) error {
	path := ctx.String("db")
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	db, err := database.OpenSQLite(path)
	if err != nil {
		return err
	}
	ex := exporter.New(db)

	if err := writeFile(ctx.String("schema-out"), func(f *os.File) error {
		return ex.WriteSchema(ctx.Context, f)
	}); err != nil {
		return err
	}
	if err := writeFile(ctx.String("dump-out"), func(f *os.File) error {
		return ex.WriteDump(ctx.Context, f)
	}); err != nil {
		return err
	}

	log.L.Info("export finished",
		zap.String("schema", ctx.String("schema-out")),
		zap.String("dump", ctx.String("dump-out")),
	)
	return nil
}

func writeFile(name string, fn func(f *os.File) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
