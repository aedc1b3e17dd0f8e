package models

// TeamType distinguishes production brigades from assembly teams
type TeamType string

const (
	TeamProduction TeamType = "PRODUCTION"
	TeamAssembly   TeamType = "ASSEMBLY"
)

// Team is a production or assembly brigade
type Team struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	TeamType      TeamType `json:"teamType"`
	EmployeeCount int      `json:"employeeCount"`
	MonthlyHours  float64  `json:"monthlyHours"`
	MaxDailyHours float64  `json:"maxDailyHours"`
	Active        bool     `json:"active"`
	CreatedAt     string   `json:"createdAt,omitempty"`
}

func (t Team) GetID() int64 { return t.ID }

// Employee belongs to at most one team
type Employee struct {
	ID            int64   `json:"id"`
	FullName      string  `json:"fullName"`
	Team          *Team   `json:"team"`
	Position      string  `json:"position"`
	Qualification float64 `json:"qualification"`
	Active        bool    `json:"active"`
	CreatedAt     string  `json:"createdAt,omitempty"`
}

func (e Employee) GetID() int64 { return e.ID }

// Product is something a session order asks to be produced
type Product struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	SerialPlan    *float64 `json:"serialPlan"`
	NonSerialPlan *float64 `json:"nonSerialPlan"`
	AssemblyRate  *float64 `json:"assemblyRate"`
	Active        bool     `json:"active"`
	CreatedAt     string   `json:"createdAt,omitempty"`
}

func (p Product) GetID() int64 { return p.ID }

// SessionOrder is one customer order inside a production session
type SessionOrder struct {
	ID             int64    `json:"id"`
	Product        *Product `json:"product"`
	Quantity       float64  `json:"quantity"`
	ProductionType string   `json:"productionType"`
	DeadlineDate   string   `json:"deadlineDate"`
	Source         string   `json:"source"`
	CreatedAt      string   `json:"createdAt,omitempty"`
}

func (o SessionOrder) GetID() int64 { return o.ID }

// ProductionSession is a named, dated batch of customer orders
type ProductionSession struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	StartDate     string         `json:"startDate"`
	EndDate       *string        `json:"endDate"`
	Status        string         `json:"status"`
	CreatedAt     string         `json:"createdAt,omitempty"`
	SessionOrders []SessionOrder `json:"sessionOrders"`
}

func (s ProductionSession) GetID() int64 { return s.ID }

// OptimizationRun holds the cost coefficients of one planning computation
type OptimizationRun struct {
	ID                int64              `json:"id"`
	RunTimestamp      string             `json:"runTimestamp"`
	ModelVersion      string             `json:"modelVersion"`
	KTardyDefault     float64            `json:"kTardyDefault"`
	KUnder            float64            `json:"kUnder"`
	KOver             float64            `json:"kOver"`
	Alpha             float64            `json:"alpha"`
	Beta              float64            `json:"beta"`
	DeltaBuffer       float64            `json:"deltaBuffer"`
	Comment           string             `json:"comment"`
	ProductionSession *ProductionSession `json:"productionSession"`
}

func (r OptimizationRun) GetID() int64 { return r.ID }

// TeamProductivity is the rate at which a team produces a product
type TeamProductivity struct {
	ID             int64    `json:"id"`
	Team           *Team    `json:"team"`
	Product        *Product `json:"product"`
	ProductionType string   `json:"productionType"`
	Qualification  float64  `json:"qualification"`
	Productivity   float64  `json:"productivity"`
	Active         bool     `json:"active"`
	CreatedAt      string   `json:"createdAt,omitempty"`
}

func (p TeamProductivity) GetID() int64 { return p.ID }

// OptimizationResult is one planned (team, product, date) assignment
type OptimizationResult struct {
	ID                int64              `json:"id"`
	DayIndex          int                `json:"dayIndex"`
	WorkDate          string             `json:"workDate"`
	ProductionType    string             `json:"productionType"`
	PlannedHours      float64            `json:"plannedHours"`
	PlannedQuantity   float64            `json:"plannedQuantity"`
	CreatedAt         string             `json:"createdAt,omitempty"`
	OptimizationRun   *OptimizationRun   `json:"optimizationRun,omitempty"`
	ProductionSession *ProductionSession `json:"productionSession"`
	Team              *Team              `json:"team"`
	Product           *Product           `json:"product"`
}

func (r OptimizationResult) GetID() int64 { return r.ID }

// OrderWork is the work one team does on one product on one day
type OrderWork struct {
	Product         *Product `json:"product"`
	PlannedHours    float64  `json:"plannedHours"`
	PlannedQuantity float64  `json:"plannedQuantity"`
	WorkDate        string   `json:"workDate"`
	ProductionType  string   `json:"productionType"`
	DayIndex        int      `json:"dayIndex"`
}

// TeamDayWork collects the order work of one team within a work date
type TeamDayWork struct {
	Team       *Team       `json:"team"`
	OrdersWork []OrderWork `json:"ordersWork"`
}

// OptimizationCombined is every team's work for one work date
type OptimizationCombined struct {
	SessionOrders []SessionOrder `json:"sessionOrders"`
	TeamsDayWork  []TeamDayWork  `json:"teamsDayWork"`
	WorkDate      string         `json:"workDate"`
	TotalQuantity float64        `json:"totalQuantity"`
	TotalHours    float64        `json:"totalHours"`
}

// TeamStats are the summed hours and quantity of a TeamDayWork
type TeamStats struct {
	TotalHours    float64 `json:"totalHours"`
	TotalQuantity float64 `json:"totalQuantity"`
}

// TeamOrderShare is how much of one order a team produces within a work date
type TeamOrderShare struct {
	Team          *Team   `json:"team"`
	TotalQuantity float64 `json:"totalQuantity"`
}

// AvailabilityStatus marks whether an employee works on the planning date
type AvailabilityStatus string

const (
	StatusWorking AvailabilityStatus = "WORKING"
	StatusDayOff  AvailabilityStatus = "DAY_OFF"
	StatusSick    AvailabilityStatus = "SICK"
)

// Valid reports whether s is one of the known statuses
func (s AvailabilityStatus) Valid() bool {
	switch s {
	case StatusWorking, StatusDayOff, StatusSick:
		return true
	}
	return false
}

// EmployeeAvailability pairs an employee with their status for the planning date
type EmployeeAvailability struct {
	Employee Employee           `json:"employee"`
	Status   AvailabilityStatus `json:"status"`
}

// TeamWithEmployees seeds the absence entry form for one team
type TeamWithEmployees struct {
	Team      Team                   `json:"team"`
	Employees []EmployeeAvailability `json:"employees"`
}

// OptimizeRequest is what the upstream optimize call consumes
type OptimizeRequest struct {
	OptimizationRunID  int64         `json:"optimizationRunId"`
	AbsenceCountByTeam map[int64]int `json:"absenceCountByTeam"`
}
