package planview

import (
	"github.com/arnavshah/planning-view-go/pkg/models"
	"github.com/arnavshah/planning-view-go/pkg/query"
)

// Field registries for the list views.

var TeamFields = query.Fields[models.Team]{
	"id":            query.Number(func(t models.Team) float64 { return float64(t.ID) }),
	"name":          query.Text(func(t models.Team) string { return t.Name }),
	"teamType":      query.Text(func(t models.Team) string { return string(t.TeamType) }),
	"employeeCount": query.Number(func(t models.Team) float64 { return float64(t.EmployeeCount) }),
	"monthlyHours":  query.Number(func(t models.Team) float64 { return t.MonthlyHours }),
	"maxDailyHours": query.Number(func(t models.Team) float64 { return t.MaxDailyHours }),
	"active":        query.Bool(func(t models.Team) bool { return t.Active }),
}

var EmployeeFields = query.Fields[models.Employee]{
	"id":            query.Number(func(e models.Employee) float64 { return float64(e.ID) }),
	"fullName":      query.Text(func(e models.Employee) string { return e.FullName }),
	"position":      query.Text(func(e models.Employee) string { return e.Position }),
	"qualification": query.Number(func(e models.Employee) float64 { return e.Qualification }),
	"active":        query.Bool(func(e models.Employee) bool { return e.Active }),
	"team": query.Number(func(e models.Employee) float64 {
		if e.Team == nil {
			return 0
		}
		return float64(e.Team.ID)
	}),
	"teamName": query.Text(func(e models.Employee) string {
		if e.Team == nil {
			return ""
		}
		return e.Team.Name
	}),
}

var ProductFields = query.Fields[models.Product]{
	"id":            query.Number(func(p models.Product) float64 { return float64(p.ID) }),
	"name":          query.Text(func(p models.Product) string { return p.Name }),
	"serialPlan":    query.Number(func(p models.Product) float64 { return deref(p.SerialPlan) }),
	"nonSerialPlan": query.Number(func(p models.Product) float64 { return deref(p.NonSerialPlan) }),
	"assemblyRate":  query.Number(func(p models.Product) float64 { return deref(p.AssemblyRate) }),
	"active":        query.Bool(func(p models.Product) bool { return p.Active }),
}

var ResultFields = query.Fields[models.OptimizationResult]{
	"id":              query.Number(func(r models.OptimizationResult) float64 { return float64(r.ID) }),
	"workDate":        query.Text(func(r models.OptimizationResult) string { return r.WorkDate }),
	"dayIndex":        query.Number(func(r models.OptimizationResult) float64 { return float64(r.DayIndex) }),
	"productionType":  query.Text(func(r models.OptimizationResult) string { return r.ProductionType }),
	"plannedHours":    query.Number(func(r models.OptimizationResult) float64 { return r.PlannedHours }),
	"plannedQuantity": query.Number(func(r models.OptimizationResult) float64 { return r.PlannedQuantity }),
	"team": query.Number(func(r models.OptimizationResult) float64 {
		if r.Team == nil {
			return 0
		}
		return float64(r.Team.ID)
	}),
	"product": query.Number(func(r models.OptimizationResult) float64 {
		if r.Product == nil {
			return 0
		}
		return float64(r.Product.ID)
	}),
}

var SessionFields = query.Fields[models.ProductionSession]{
	"id":         query.Number(func(s models.ProductionSession) float64 { return float64(s.ID) }),
	"name":       query.Text(func(s models.ProductionSession) string { return s.Name }),
	"startDate":  query.Text(func(s models.ProductionSession) string { return s.StartDate }),
	"status":     query.Text(func(s models.ProductionSession) string { return s.Status }),
	"orderCount": query.Number(func(s models.ProductionSession) float64 { return float64(len(s.SessionOrders)) }),
}

var SessionOrderFields = query.Fields[models.SessionOrder]{
	"id":             query.Number(func(o models.SessionOrder) float64 { return float64(o.ID) }),
	"quantity":       query.Number(func(o models.SessionOrder) float64 { return o.Quantity }),
	"productionType": query.Text(func(o models.SessionOrder) string { return o.ProductionType }),
	"deadlineDate":   query.Text(func(o models.SessionOrder) string { return o.DeadlineDate }),
	"source":         query.Text(func(o models.SessionOrder) string { return o.Source }),
	"product": query.Number(func(o models.SessionOrder) float64 {
		if o.Product == nil {
			return 0
		}
		return float64(o.Product.ID)
	}),
	"productName": query.Text(func(o models.SessionOrder) string {
		if o.Product == nil {
			return ""
		}
		return o.Product.Name
	}),
}

var RunFields = query.Fields[models.OptimizationRun]{
	"id":           query.Number(func(r models.OptimizationRun) float64 { return float64(r.ID) }),
	"runTimestamp": query.Text(func(r models.OptimizationRun) string { return r.RunTimestamp }),
	"modelVersion": query.Text(func(r models.OptimizationRun) string { return r.ModelVersion }),
	"kTardy":       query.Number(func(r models.OptimizationRun) float64 { return r.KTardyDefault }),
	"kUnder":       query.Number(func(r models.OptimizationRun) float64 { return r.KUnder }),
	"kOver":        query.Number(func(r models.OptimizationRun) float64 { return r.KOver }),
}

var ProductivityFields = query.Fields[models.TeamProductivity]{
	"id":             query.Number(func(p models.TeamProductivity) float64 { return float64(p.ID) }),
	"productionType": query.Text(func(p models.TeamProductivity) string { return p.ProductionType }),
	"qualification":  query.Number(func(p models.TeamProductivity) float64 { return p.Qualification }),
	"productivity":   query.Number(func(p models.TeamProductivity) float64 { return p.Productivity }),
	"active":         query.Bool(func(p models.TeamProductivity) bool { return p.Active }),
	"team": query.Number(func(p models.TeamProductivity) float64 {
		if p.Team == nil {
			return 0
		}
		return float64(p.Team.ID)
	}),
	"product": query.Number(func(p models.TeamProductivity) float64 {
		if p.Product == nil {
			return 0
		}
		return float64(p.Product.ID)
	}),
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
