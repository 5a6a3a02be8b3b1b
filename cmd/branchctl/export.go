package main

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/bluehands/branchfinder/internal/adapters/export"
	"github.com/bluehands/branchfinder/internal/domain/entities"
	"github.com/spf13/cobra"
)

func exportCommand(d deps) *cobra.Command {
	var flags searchFlags
	var path string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "write every matching branch to an Excel workbook",
		Args:  cobra.NoArgs,
		Example: heredoc.Doc(`
			$ branchctl export --region 서울 --out seoul.xlsx
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request()
			if err != nil {
				return err
			}

			searcher, closeFn, err := d.searcher(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			result := searcher.Search(cmd.Context(), req)
			if result.Status != entities.SearchStatusOK {
				return printResult(out(cmd), result)
			}

			f, err := os.Create(path)
			if err != nil {
				return err
			}
			if err := export.NewExcelExporter().Write(f, result.Results); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			fmt.Fprintf(out(cmd), "wrote %d branches to %s\n", len(result.Results), path)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&path, "out", "o", "branches.xlsx", "output file")
	return cmd
}
