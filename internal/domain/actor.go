package domain

import "github.com/google/uuid"

// Actor is the fully resolved caller identity: the authenticated user, its
// role, its employee profile when one exists, and for managers the set of
// departments they manage. Workflow services receive an Actor explicitly
// instead of reading ambient request state.
type Actor struct {
	UserID             uuid.UUID
	Role               Role
	EmployeeID         *uuid.UUID
	ManagedDepartments []uuid.UUID
}

// SubjectID returns the identifier under which this actor's own records
// (attendance, leave) are filed. Users with an employee profile use the
// profile id. An AdminHR without a profile is aliased to its own user id so
// it can still check in or request leave. Any other user without a profile
// has no subject.
func (a Actor) SubjectID() (uuid.UUID, bool) {
	if a.EmployeeID != nil {
		return *a.EmployeeID, true
	}
	if a.Role == RoleAdminHR {
		return a.UserID, true
	}
	return uuid.Nil, false
}

func (a Actor) Manages(departmentID uuid.UUID) bool {
	for _, id := range a.ManagedDepartments {
		if id == departmentID {
			return true
		}
	}
	return false
}

// Subject describes the person a workflow action is aimed at: the user
// behind an employee profile (or an aliased profile-less AdminHR) together
// with its role and department. DepartmentID is uuid.Nil when the subject
// has no department.
type Subject struct {
	UserID       uuid.UUID
	Role         Role
	DepartmentID uuid.UUID
}
