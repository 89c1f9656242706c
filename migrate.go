package main

import (
	"github.com/urfave/cli"

	"github.com/grvbrk/vidshelf/internal/app"
	"github.com/grvbrk/vidshelf/internal/config"
	"github.com/grvbrk/vidshelf/internal/store"
	"github.com/grvbrk/vidshelf/migrations"
)

func makeMigrateCMD() cli.Command {
	migrateCmd := cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Migrates the library database",
	}
	configureMigrate(&migrateCmd)
	return migrateCmd
}

func configureMigrate(c *cli.Command) {
	commands := []struct {
		name, alias, usage string
	}{
		{"up", "u", "Runs all available migrations"},
		{"down", "d", "Reverts last migration"},
		{"reset", "r", "Reverts all migrations"},
		{"status", "s", "Prints migration status"},
		{"version", "v", "Prints current db version"},
	}
	for _, cmd := range commands {
		name := cmd.name
		c.Subcommands = append(c.Subcommands, cli.Command{
			Name:    name,
			Aliases: []string{cmd.alias},
			Usage:   cmd.usage,
			Flags:   config.RegisterStoreFlags(nil),
			Action: func(c *cli.Context) error {
				return migrate(c, name)
			},
		})
	}
}

func migrate(c *cli.Context, command string) error {
	cfg := config.FromContext(c)
	logger := app.NewLogger(cfg)

	db, err := store.Open(cfg.StoreFile)
	if err != nil {
		return err
	}
	defer db.Close()

	store.SetMigrationLogger(logger)
	return store.RunMigrationFS(db, migrations.FS, ".", command)
}
