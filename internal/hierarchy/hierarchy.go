// Package hierarchy answers reporting-line questions over a snapshot of all employees.
// Functions here never touch storage; callers load the snapshot once and pass it in.
package hierarchy

import (
	"errors"

	"employee-management-api/internal/models"
)

// ErrCycle is returned when the supervisor graph reachable from the requested employee loops.
var ErrCycle = errors.New("supervisor hierarchy contains a cycle")

// CountSubordinates returns the number of employees that report to employeeID directly or
// through any chain of supervisors. Unknown ids and leaves yield zero.
func CountSubordinates(employeeID uint, snapshot []models.Employee) (int, error) {
	children := indexBySupervisor(snapshot)

	visited := map[uint]bool{employeeID: true}
	stack := append([]uint(nil), children[employeeID]...)
	count := 0

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[current] {
			return 0, ErrCycle
		}
		visited[current] = true
		count++

		stack = append(stack, children[current]...)
	}

	return count, nil
}

// WouldCreateCycle reports whether making newSupervisorID the supervisor of employeeID
// would close a loop, walking the supervisor chain upward from the proposed supervisor.
func WouldCreateCycle(employeeID uint, newSupervisorID uint, snapshot []models.Employee) bool {
	supervisorOf := make(map[uint]*uint, len(snapshot))
	for i := range snapshot {
		supervisorOf[snapshot[i].ID] = snapshot[i].SupervisorID
	}

	seen := make(map[uint]bool)
	currentID := &newSupervisorID
	for currentID != nil {
		if *currentID == employeeID {
			return true
		}
		// the chain closes on itself without passing through employeeID
		if seen[*currentID] {
			return false
		}
		seen[*currentID] = true
		currentID = supervisorOf[*currentID]
	}

	return false
}

func indexBySupervisor(snapshot []models.Employee) map[uint][]uint {
	children := make(map[uint][]uint)
	for _, employee := range snapshot {
		if employee.SupervisorID == nil {
			continue
		}
		children[*employee.SupervisorID] = append(children[*employee.SupervisorID], employee.ID)
	}
	return children
}
