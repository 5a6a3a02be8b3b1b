package main

import (
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
)

func regionsCommand(d deps) *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "list the regions branches can be filtered by",
		Args:  cobra.NoArgs,
		Example: heredoc.Doc(`
			$ branchctl regions
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			searcher, closeFn, err := d.searcher(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			list := searcher.ListRegions(cmd.Context())
			if list.Warning != "" {
				fmt.Fprintln(out(cmd), list.Warning)
			}
			fmt.Fprintln(out(cmd), list.All)
			for _, r := range list.Regions {
				fmt.Fprintln(out(cmd), r)
			}
			return nil
		},
	}
}
