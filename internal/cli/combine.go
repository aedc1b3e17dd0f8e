package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/arnavshah/planning-view-go/pkg/client"
	"github.com/arnavshah/planning-view-go/pkg/models"
	"github.com/arnavshah/planning-view-go/pkg/planview"
)

func newCombineCmd() *cobra.Command {
	var file string
	var sessionID int64
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "combine",
		Short: "Print the per-date, per-team plan of optimization results (--file, or --session from the planning API)",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFrom(cmd.Context())

			var results []models.OptimizationResult
			switch {
			case file != "":
				if err := readJSONFile(file, &results); err != nil {
					return err
				}
				if sessionID != 0 {
					results = filterSession(results, sessionID)
				}
			case sessionID != 0:
				var err error
				results, err = client.FromConfig(e.cfg.Planning).ResultsForSession(cmd.Context(), sessionID)
				if err != nil {
					return err
				}
			default:
				return errors.New("--file or --session is required")
			}

			agg := planview.NewAggregator(e.log)
			combined := agg.Combine(results)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), combined)
			}
			printPlan(cmd.OutOrStdout(), agg, combined)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "JSON file with a list of optimization results")
	cmd.Flags().Int64Var(&sessionID, "session", 0, "Only results of this production session")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the combined groups as JSON")
	return cmd
}

func filterSession(results []models.OptimizationResult, sessionID int64) []models.OptimizationResult {
	out := make([]models.OptimizationResult, 0, len(results))
	for _, r := range results {
		if r.ProductionSession != nil && r.ProductionSession.ID == sessionID {
			out = append(out, r)
		}
	}
	return out
}

func printPlan(w io.Writer, agg *planview.Aggregator, combined []models.OptimizationCombined) {
	if len(combined) == 0 {
		_, _ = fmt.Fprintln(w, "No optimization results.")
		return
	}
	for _, day := range combined {
		_, _ = fmt.Fprintf(w, "%s  hours %.2f  quantity %.2f  balance %.1f%%\n",
			day.WorkDate, day.TotalHours, day.TotalQuantity, agg.LoadBalance(day))
		for _, tdw := range day.TeamsDayWork {
			stats := agg.TeamStats(tdw)
			_, _ = fmt.Fprintf(w, "  %-24s hours %.2f  quantity %.2f  products %d\n",
				tdw.Team.Name, stats.TotalHours, stats.TotalQuantity, agg.UniqueProductCount(tdw))
		}
		for _, order := range day.SessionOrders {
			shares := agg.TeamsWorkingOnOrder(day, order)
			if len(shares) == 0 || order.Product == nil {
				continue
			}
			_, _ = fmt.Fprintf(w, "  order %d (%s):", order.ID, order.Product.Name)
			for _, s := range shares {
				_, _ = fmt.Fprintf(w, " %s=%.2f", s.Team.Name, s.TotalQuantity)
			}
			_, _ = fmt.Fprintln(w)
		}
	}
}
