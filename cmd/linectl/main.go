package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"github.com/xelth-com/linerecords/internal/buildinfo"
	"github.com/xelth-com/linerecords/internal/config"
	"github.com/xelth-com/linerecords/internal/database"
	"github.com/xelth-com/linerecords/internal/logs"
	"github.com/xelth-com/linerecords/internal/services/bom"
	"github.com/xelth-com/linerecords/internal/services/checklist"
	"github.com/xelth-com/linerecords/internal/services/equipment"
)

func main() {
	args := os.Args
	if len(args) == 1 {
		args = append(args, "--help")
	}

	root := &cli.Command{
		Name:    "linectl",
		Usage:   "Line records maintenance and export tool",
		Version: buildinfo.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db-path", Usage: "use this SQLite file instead of the configured database"},
			&cli.StringFlag{Name: "log-level", Value: "warn", Usage: "log level"},
		},
		Commands: []*cli.Command{
			seedCommand(),
			exportBOMCommand(),
			labelsCommand(),
			reportCommand(),
			progressCommand(),
			tokenCommand(),
		},
	}

	if err := root.Run(context.Background(), args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// env is an open database with the services built on it
type env struct {
	cfg       *config.Config
	db        *database.DB
	equipment *equipment.Service
	checklist *checklist.Service
	bom       *bom.Service
}

func (e *env) Close() error {
	return e.db.Close()
}

func openEnv(c *cli.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := logs.Init(logs.Options{Level: c.String("log-level"), Format: cfg.Log.Format}); err != nil {
		return nil, err
	}
	if p := c.String("db-path"); p != "" {
		cfg.Database.Driver = "sqlite"
		cfg.Database.SQLitePath = p
	}
	cfg.Database.Quiet = true

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	cl := checklist.NewService(db.DB)
	return &env{
		cfg:       cfg,
		db:        db,
		equipment: equipment.NewService(db.DB, cl),
		checklist: cl,
		bom:       bom.NewService(db.DB),
	}, nil
}

// withEnv runs fn against an open environment and closes it afterwards
func withEnv(fn func(ctx context.Context, c *cli.Command, e *env) error) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		e, err := openEnv(c)
		if err != nil {
			return err
		}
		defer e.Close()
		return fn(ctx, c, e)
	}
}
