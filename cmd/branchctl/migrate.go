package main

import (
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/bluehands/branchfinder/internal/infrastructure/clients/postgres"
	"github.com/bluehands/branchfinder/pkg/config"
	"github.com/spf13/cobra"
)

func openPostgres(ctx context.Context, cfg *config.Config) (*postgres.Client, error) {
	return postgres.NewClient(ctx, &cfg.Database)
}

// announcingMigrator publishes a migrated event after every successful run
type announcingMigrator struct {
	migrator
	announce func()
}

func (m announcingMigrator) Migrate() (uint, error) {
	return m.announced(m.migrator.Migrate())
}

func (m announcingMigrator) MigrateDown() (uint, error) {
	return m.announced(m.migrator.MigrateDown())
}

func (m announcingMigrator) announced(ver uint, err error) (uint, error) {
	if err == nil {
		m.announce()
	}
	return ver, err
}

func migrateCommand(d deps) *cobra.Command {
	var down bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "run branch database migrations",
		Args:  cobra.NoArgs,
		Example: heredoc.Doc(`
			$ branchctl migrate
			$ branchctl migrate --down
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, closeFn, err := d.migrator(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			run := m.Migrate
			if down {
				run = m.MigrateDown
			}
			ver, err := run()
			if err != nil {
				return fmt.Errorf("problem with migration: %w", err)
			}

			fmt.Fprintf(out(cmd), "schema at version %d\n", ver)
			return nil
		},
	}

	cmd.Flags().BoolVar(&down, "down", false, "roll back one migration")
	return cmd
}
