package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/arnavshah/planning-view-go/pkg/models"
	"github.com/arnavshah/planning-view-go/pkg/planview"
	"github.com/arnavshah/planning-view-go/pkg/query"
)

func newQueryCmd() *cobra.Command {
	var file string
	var kind string
	var filters []string
	var sorts []string
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Filter and sort a JSON list of teams, employees, products or results",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("--file is required")
			}
			fs, err := query.ParseFilters(filters)
			if err != nil {
				return err
			}
			lang := language.Make(envFrom(cmd.Context()).cfg.App.CollationLanguage)

			switch kind {
			case "teams":
				var items []models.Team
				if err := readJSONFile(file, &items); err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), runQuery(planview.TeamFields, items, fs, sorts, lang))
			case "employees":
				var items []models.Employee
				if err := readJSONFile(file, &items); err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), runQuery(planview.EmployeeFields, items, fs, sorts, lang))
			case "products":
				var items []models.Product
				if err := readJSONFile(file, &items); err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), runQuery(planview.ProductFields, items, fs, sorts, lang))
			case "results":
				var items []models.OptimizationResult
				if err := readJSONFile(file, &items); err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), runQuery(planview.ResultFields, items, fs, sorts, lang))
			}
			return fmt.Errorf("unknown --kind %q (teams, employees, products, results)", kind)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "JSON file with the list")
	cmd.Flags().StringVar(&kind, "kind", "teams", "List kind: teams, employees, products or results")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "Allowed value as field:value; repeatable")
	cmd.Flags().StringArrayVar(&sorts, "sort", nil, "Sort toggle on a field; repeat to reach descending")
	return cmd
}

func runQuery[T query.Record](fields query.Fields[T], items []T, filters query.FilterState, sorts []string, lang language.Tag) []T {
	engine := query.New(fields, query.WithLanguage(lang))
	engine.Initialize(items, filters)
	for _, s := range sorts {
		engine.ToggleSort(s)
	}
	return engine.Items()
}
