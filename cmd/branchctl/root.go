package main

import (
	"context"
	"io"

	"github.com/MakeNowJust/heredoc"
	"github.com/bluehands/branchfinder/internal/app"
	"github.com/bluehands/branchfinder/internal/application/services"
	"github.com/bluehands/branchfinder/internal/domain/entities"
	"github.com/bluehands/branchfinder/internal/infrastructure/observability"
	"github.com/bluehands/branchfinder/pkg/config"
	"github.com/spf13/cobra"
)

type branchSearcher interface {
	Search(ctx context.Context, req services.SearchRequest) *entities.SearchResult
	ListRegions(ctx context.Context) *entities.RegionList
}

type migrator interface {
	Migrate() (uint, error)
	MigrateDown() (uint, error)
}

// deps opens the backing services lazily so --help works offline
type deps struct {
	searcher func(ctx context.Context) (branchSearcher, func(), error)
	migrator func(ctx context.Context) (migrator, func(), error)
	importer func(ctx context.Context) (branchImporter, func(), error)
}

func defaultDeps() deps {
	return deps{
		searcher: func(ctx context.Context) (branchSearcher, func(), error) {
			cfg, err := loadConfig()
			if err != nil {
				return nil, nil, err
			}
			a := app.New(ctx, cfg, nil)
			return a.Search, func() { _ = a.Close() }, nil
		},
		migrator: func(ctx context.Context) (migrator, func(), error) {
			cfg, err := loadConfig()
			if err != nil {
				return nil, nil, err
			}
			client, err := openPostgres(ctx, cfg)
			if err != nil {
				return nil, nil, err
			}
			m := announcingMigrator{
				migrator: client,
				announce: func() {
					app.Announce(ctx, cfg, entities.BranchEventMigrated, "branchctl", 0)
				},
			}
			return m, func() { _ = client.Close() }, nil
		},
		importer: openImporter,
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	observability.InitLogger("branchctl", cfg.Server.Env, cfg.Log.Level)
	if _, err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newRootCommand(d deps) *cobra.Command {
	root := &cobra.Command{
		Use:           "branchctl <command> [flags]",
		Short:         "Search the service branch directory",
		Long:          "Search, page through and export automotive service branches.",
		SilenceErrors: true,
		SilenceUsage:  true,
		Example: heredoc.Doc(`
			$ branchctl regions
			$ branchctl search --region 서울 --capability is_ev
			$ branchctl export --region 부산 --out busan.xlsx
			$ branchctl migrate
			$ branchctl seed --reset
		`),
	}

	root.AddCommand(
		searchCommand(d),
		exportCommand(d),
		regionsCommand(d),
		migrateCommand(d),
		seedCommand(d),
	)
	return root
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
