package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/bluehands/branchfinder/internal/application/services"
	"github.com/bluehands/branchfinder/internal/domain/entities"
	"github.com/spf13/cobra"
)

type searchFlags struct {
	term         string
	capabilities []string
	region       string
	lat          string
	lng          string
	page         int
}

func (f *searchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.term, "query", "q", "", "match branch name or address")
	cmd.Flags().StringSliceVarP(&f.capabilities, "capability", "c", nil, "required capability, repeatable (is_ev, is_hydrogen, is_frame, is_cs_excellent, is_n_line)")
	cmd.Flags().StringVarP(&f.region, "region", "r", "", "region name, or (all)")
	cmd.Flags().StringVar(&f.lat, "lat", "", "your latitude")
	cmd.Flags().StringVar(&f.lng, "lng", "", "your longitude")
}

func (f *searchFlags) request() (services.SearchRequest, error) {
	caps, err := services.ParseCapabilities(f.capabilities)
	if err != nil {
		return services.SearchRequest{}, err
	}

	req := services.SearchRequest{
		Criteria: entities.SearchCriteria{
			Term:         f.term,
			Capabilities: caps,
			Region:       f.region,
		},
	}
	if f.lat != "" || f.lng != "" {
		loc, ok := (entities.RawCoordinate{Latitude: f.lat, Longitude: f.lng}).Parse()
		if !ok {
			return services.SearchRequest{}, fmt.Errorf("--lat and --lng must both be valid coordinates")
		}
		req.UserLocation = &loc
	}
	if f.page > 0 {
		req.Navigation = entities.GoToPage(f.page)
	}
	return req, nil
}

func searchCommand(d deps) *cobra.Command {
	var flags searchFlags

	cmd := &cobra.Command{
		Use:   "search",
		Short: "search branches and print one page of results",
		Args:  cobra.NoArgs,
		Example: heredoc.Doc(`
			$ branchctl search --region 서울
			$ branchctl search -q 강남 -c is_ev -c is_frame --lat 37.4979 --lng 127.0276
			$ branchctl search --region 경기 --page 3
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
			return printResult(out(cmd), result)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&flags.page, "page", "p", 1, "page to show")
	return cmd
}

func printResult(w io.Writer, result *entities.SearchResult) error {
	if result.Message != "" {
		fmt.Fprintln(w, result.Message)
	}
	if result.Warning != "" {
		fmt.Fprintln(w, result.Warning)
	}
	if result.Status != entities.SearchStatusOK {
		if result.Status == entities.SearchStatusInvalidCriteria {
			return fmt.Errorf("invalid search criteria")
		}
		return nil
	}

	rows := [][]string{{"ID", "NAME", "REGION", "DISTANCE", "PHONE", "SERVICES"}}
	for _, b := range result.Page.Items {
		rows = append(rows, []string{
			strconv.FormatInt(b.ID, 10), b.Name, b.Region, b.DistanceLabel, b.Phone, strings.Join(b.Badges, " "),
		})
	}
	printTable(w, rows)

	fmt.Fprintf(w, "page %d of %d (%d branches)\n", result.Page.PageIndex, result.Page.TotalPages, result.Page.TotalItems)
	return nil
}
