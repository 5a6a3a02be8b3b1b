package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/bluehands/branchfinder/internal/adapters/database"
	"github.com/bluehands/branchfinder/internal/app"
	"github.com/bluehands/branchfinder/internal/application/services"
	"github.com/bluehands/branchfinder/internal/domain/entities"
	"github.com/spf13/cobra"
)

//go:embed seed/branches.json
var sampleBranches []byte

type branchImporter interface {
	Import(ctx context.Context, regions []string, branches []entities.BranchRecord, reset bool) (int, error)
}

type seedFile struct {
	Regions  []string     `json:"regions"`
	Branches []seedBranch `json:"branches"`
}

type seedBranch struct {
	Name         string   `json:"name"`
	Latitude     string   `json:"latitude"`
	Longitude    string   `json:"longitude"`
	Address      string   `json:"address"`
	Phone        string   `json:"phone"`
	TypeID       int      `json:"type_id"`
	Region       string   `json:"region"`
	Capabilities []string `json:"capabilities"`
}

func parseSeed(data []byte) (*seedFile, []entities.BranchRecord, error) {
	var f seedFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("invalid seed file: %w", err)
	}
	records := make([]entities.BranchRecord, 0, len(f.Branches))
	for _, b := range f.Branches {
		keys, err := services.ParseCapabilities(b.Capabilities)
		if err != nil {
			return nil, nil, fmt.Errorf("branch %q: %w", b.Name, err)
		}
		flags := entities.CapabilityFlags{}
		for _, k := range keys {
			flags[k] = true
		}
		records = append(records, entities.BranchRecord{
			Name:         b.Name,
			Coordinate:   entities.RawCoordinate{Latitude: b.Latitude, Longitude: b.Longitude},
			Address:      b.Address,
			Phone:        b.Phone,
			TypeID:       b.TypeID,
			Region:       b.Region,
			Capabilities: flags,
		})
	}
	return &f, records, nil
}

func seedCommand(d deps) *cobra.Command {
	var reset bool
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "load sample branches into the database",
		Long:  "Insert regions and branches from a JSON file, or the bundled sample set when no file is given.",
		Args:  cobra.NoArgs,
		Example: heredoc.Doc(`
			$ branchctl seed --reset
			$ branchctl seed --file branches.json
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			data := sampleBranches
			if file != "" {
				b, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				data = b
			}
			f, records, err := parseSeed(data)
			if err != nil {
				return err
			}

			imp, closeFn, err := d.importer(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			n, err := imp.Import(cmd.Context(), f.Regions, records, reset)
			if err != nil {
				return fmt.Errorf("problem seeding branches: %w", err)
			}
			fmt.Fprintf(out(cmd), "seeded %d branches\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "truncate branches and regions first")
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file with regions and branches")
	return cmd
}

// announcingImporter publishes a seeded event once the import commits
type announcingImporter struct {
	*database.BranchAdapter
	announce func(ctx context.Context, n int)
}

func (a announcingImporter) Import(ctx context.Context, regions []string, branches []entities.BranchRecord, reset bool) (int, error) {
	n, err := a.BranchAdapter.Import(ctx, regions, branches, reset)
	if err == nil {
		a.announce(ctx, n)
	}
	return n, err
}

func openImporter(ctx context.Context) (branchImporter, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	client, err := openPostgres(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	imp := announcingImporter{
		BranchAdapter: database.NewBranchAdapter(client),
		announce: func(ctx context.Context, n int) {
			app.Announce(ctx, cfg, entities.BranchEventSeeded, "branchctl", n)
		},
	}
	return imp, func() { _ = client.Close() }, nil
}
