// Package hierarchy builds the advisor coverage structure over a customer
// population: client advisors fan out over customers, team leaders over
// advisors, super team leaders over team leaders, all by ceiling division.
// It is deterministic for a given rng and customer list, like the samplers.
package hierarchy

import (
	"fmt"
	"math/rand"
	"time"
)

// Fan-out capacities. The structure scales with the customer count.
const (
	CustomersPerAdvisor   = 200
	AdvisorsPerLeader     = 10
	LeadersPerSuperLeader = 10
)

// Role is an employee's position level.
type Role string

const (
	RoleAdvisor     Role = "CLIENT_ADVISOR"
	RoleLeader      Role = "TEAM_LEADER"
	RoleSuperLeader Role = "SUPER_TEAM_LEADER"
)

// Employee is one row of the employee hierarchy.
type Employee struct {
	EmployeeID string
	FirstName  string
	FamilyName string
	Role       Role
	ManagerID  string // empty at the top of the hierarchy
	Region     string
	Office     string
	HireDate   time.Time
}

// Assignment links a customer to their current client advisor.
type Assignment struct {
	AssignmentID string
	CustomerID   string
	AdvisorID    string
	StartDate    time.Time
	Current      bool
}

type region struct {
	name   string
	office string
}

var regions = []region{
	{"NORDIC", "Stockholm"},
	{"CENTRAL_EUROPE", "Zurich"},
	{"WESTERN_EUROPE", "Paris"},
	{"SOUTHERN_EUROPE", "Milan"},
}

var firstNames = []string{
	"Anna", "Lukas", "Marie", "Jonas", "Sofia", "David", "Elena", "Marco",
	"Ingrid", "Pierre", "Clara", "Stefan", "Nora", "Felix", "Julia", "Thomas",
}

var familyNames = []string{
	"Keller", "Meier", "Dubois", "Rossi", "Lindqvist", "Weber", "Moreau",
	"Bianchi", "Andersson", "Huber", "Lefevre", "Conti", "Berg", "Schneider",
}

// Build creates the complete hierarchy and customer assignments for a
// population. Employees are numbered top-down (super leaders first) so
// manager ids always refer to an earlier row.
func Build(asOf time.Time, customerIDs []string, rng *rand.Rand) ([]Employee, []Assignment) {
	numAdvisors := ceilDiv(len(customerIDs), CustomersPerAdvisor)
	numLeaders := ceilDiv(numAdvisors, AdvisorsPerLeader)
	numSupers := ceilDiv(numLeaders, LeadersPerSuperLeader)

	employees := make([]Employee, 0, numSupers+numLeaders+numAdvisors)
	seq := 0
	next := func(role Role, managerID string) Employee {
		seq++
		reg := regions[rng.Intn(len(regions))]
		// Tenure between one and twenty years.
		hired := asOf.AddDate(0, 0, -(365 + rng.Intn(6935)))
		return Employee{
			EmployeeID: fmt.Sprintf("EMP-%05d", seq),
			FirstName:  firstNames[rng.Intn(len(firstNames))],
			FamilyName: familyNames[rng.Intn(len(familyNames))],
			Role:       role,
			ManagerID:  managerID,
			Region:     reg.name,
			Office:     reg.office,
			HireDate:   hired,
		}
	}

	supers := make([]Employee, 0, numSupers)
	for i := 0; i < numSupers; i++ {
		supers = append(supers, next(RoleSuperLeader, ""))
	}
	leaders := make([]Employee, 0, numLeaders)
	for i := 0; i < numLeaders; i++ {
		manager := ""
		if numSupers > 0 {
			manager = supers[i/LeadersPerSuperLeader].EmployeeID
		}
		leaders = append(leaders, next(RoleLeader, manager))
	}
	advisors := make([]Employee, 0, numAdvisors)
	for i := 0; i < numAdvisors; i++ {
		manager := ""
		if numLeaders > 0 {
			manager = leaders[i/AdvisorsPerLeader].EmployeeID
		}
		advisors = append(advisors, next(RoleAdvisor, manager))
	}

	employees = append(employees, supers...)
	employees = append(employees, leaders...)
	employees = append(employees, advisors...)

	assignments := make([]Assignment, 0, len(customerIDs))
	for i, customerID := range customerIDs {
		advisor := advisors[i/CustomersPerAdvisor]
		assignments = append(assignments, Assignment{
			AssignmentID: fmt.Sprintf("ASG-%06d", i+1),
			CustomerID:   customerID,
			AdvisorID:    advisor.EmployeeID,
			StartDate:    advisor.HireDate,
			Current:      true,
		})
	}

	return employees, assignments
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
