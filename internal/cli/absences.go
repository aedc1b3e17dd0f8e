package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arnavshah/planning-view-go/pkg/client"
	"github.com/arnavshah/planning-view-go/pkg/models"
	"github.com/arnavshah/planning-view-go/pkg/planview"
)

func newAbsencesCmd() *cobra.Command {
	var file string
	var runID int64
	var absent []string
	var submit bool
	cmd := &cobra.Command{
		Use:   "absences",
		Short: "Build the optimize request of a run from employee absences (--absent employeeId:STATUS)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if runID == 0 {
				return errors.New("--run is required")
			}
			e := envFrom(cmd.Context())
			api := client.FromConfig(e.cfg.Planning)

			var employees []models.Employee
			if file != "" {
				if err := readJSONFile(file, &employees); err != nil {
					return err
				}
			} else {
				var err error
				employees, err = api.ListEmployees(cmd.Context())
				if err != nil {
					return err
				}
			}

			draft := planview.NewAbsenceDraft(runID, employees)
			for _, a := range absent {
				id, status, err := parseAbsence(a)
				if err != nil {
					return err
				}
				if !draft.SetStatus(id, status) {
					return fmt.Errorf("employee %d is not assigned to a team", id)
				}
			}

			req := draft.Request()
			if !submit {
				return writeJSON(cmd.OutOrStdout(), req)
			}

			results, err := api.Optimize(cmd.Context(), req)
			if err != nil {
				return err
			}
			agg := planview.NewAggregator(e.log)
			printPlan(cmd.OutOrStdout(), agg, agg.Combine(results))
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "JSON file with a list of employees (default: fetch from the planning API)")
	cmd.Flags().Int64Var(&runID, "run", 0, "Optimization run id")
	cmd.Flags().StringArrayVar(&absent, "absent", nil, "Employee status as id:STATUS (DAY_OFF, SICK, WORKING); repeatable")
	cmd.Flags().BoolVar(&submit, "submit", false, "Send the request to the planning API and print the resulting plan")
	return cmd
}

func parseAbsence(s string) (int64, models.AvailabilityStatus, error) {
	rawID, rawStatus, ok := strings.Cut(s, ":")
	if !ok {
		return 0, "", fmt.Errorf("invalid absence %q, expected id:STATUS", s)
	}
	id, err := strconv.ParseInt(strings.TrimSpace(rawID), 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("invalid employee id in %q", s)
	}
	status := models.AvailabilityStatus(strings.ToUpper(strings.TrimSpace(rawStatus)))
	if !status.Valid() {
		return 0, "", fmt.Errorf("unknown status %q", rawStatus)
	}
	return id, status, nil
}
