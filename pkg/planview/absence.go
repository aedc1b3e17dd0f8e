package planview

import (
	"slices"

	"github.com/arnavshah/planning-view-go/pkg/models"
)

// GroupEmployeesByTeam returns one entry per distinct team in first-seen
// order. Employees without a team are skipped and everyone starts WORKING.
func GroupEmployeesByTeam(employees []models.Employee) []models.TeamWithEmployees {
	teams := []models.TeamWithEmployees{}
	index := make(map[int64]int)

	for _, emp := range employees {
		if emp.Team == nil {
			continue
		}
		entry := models.EmployeeAvailability{Employee: emp, Status: models.StatusWorking}
		if idx, ok := index[emp.Team.ID]; ok {
			teams[idx].Employees = append(teams[idx].Employees, entry)
			continue
		}
		index[emp.Team.ID] = len(teams)
		teams = append(teams, models.TeamWithEmployees{
			Team:      *emp.Team,
			Employees: []models.EmployeeAvailability{entry},
		})
	}
	return teams
}

// BuildAbsenceMap counts the employees of each team who are not working.
// Teams without absences are left out. An empty status counts as WORKING.
func BuildAbsenceMap(teams []models.TeamWithEmployees) map[int64]int {
	absences := make(map[int64]int)
	for _, t := range teams {
		count := 0
		for _, e := range t.Employees {
			if isAbsent(e.Status) {
				count++
			}
		}
		if count > 0 {
			absences[t.Team.ID] += count
		}
	}
	return absences
}

// NewOptimizeRequest builds the optimize payload for one run
func NewOptimizeRequest(runID int64, teams []models.TeamWithEmployees) models.OptimizeRequest {
	return models.OptimizeRequest{
		OptimizationRunID:  runID,
		AbsenceCountByTeam: BuildAbsenceMap(teams),
	}
}

func isAbsent(s models.AvailabilityStatus) bool {
	return s != "" && s != models.StatusWorking
}

// AbsenceDraft is the absence entry for one optimization run. Several drafts
// can be open at once; each carries its own run id.
type AbsenceDraft struct {
	runID int64
	teams []models.TeamWithEmployees
}

// NewAbsenceDraft seeds a draft for runID with every employee WORKING
func NewAbsenceDraft(runID int64, employees []models.Employee) *AbsenceDraft {
	return &AbsenceDraft{
		runID: runID,
		teams: GroupEmployeesByTeam(employees),
	}
}

// RunID returns the optimization run the draft belongs to
func (d *AbsenceDraft) RunID() int64 {
	return d.runID
}

// SetStatus changes the status of one employee. It reports false when the
// employee is not part of the draft or the status is unknown.
func (d *AbsenceDraft) SetStatus(employeeID int64, status models.AvailabilityStatus) bool {
	if !status.Valid() {
		return false
	}
	for ti := range d.teams {
		for ei := range d.teams[ti].Employees {
			if d.teams[ti].Employees[ei].Employee.ID == employeeID {
				d.teams[ti].Employees[ei].Status = status
				return true
			}
		}
	}
	return false
}

// Teams returns a copy of the draft's team entries
func (d *AbsenceDraft) Teams() []models.TeamWithEmployees {
	out := make([]models.TeamWithEmployees, len(d.teams))
	for i, t := range d.teams {
		out[i] = models.TeamWithEmployees{
			Team:      t.Team,
			Employees: slices.Clone(t.Employees),
		}
	}
	return out
}

// Request builds the optimize payload from the current statuses
func (d *AbsenceDraft) Request() models.OptimizeRequest {
	return NewOptimizeRequest(d.runID, d.teams)
}
