package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"hris-backend/internal/domain"
)

func adminActor(id uuid.UUID) domain.Actor {
	return domain.Actor{UserID: id, Role: domain.RoleAdminHR}
}

func managerActor(id uuid.UUID, depts ...uuid.UUID) domain.Actor {
	return domain.Actor{UserID: id, Role: domain.RoleManager, ManagedDepartments: depts}
}

func TestCanReviewLeave(t *testing.T) {
	admin := uuid.New()
	otherAdmin := uuid.New()
	manager := uuid.New()
	dept := uuid.New()
	otherDept := uuid.New()
	worker := uuid.New()

	tests := []struct {
		name    string
		actor   domain.Actor
		subject domain.Subject
		allowed bool
		reason  Reason
	}{
		{
			name:    "admin reviewing own leave is forbidden",
			actor:   adminActor(admin),
			subject: domain.Subject{UserID: admin, Role: domain.RoleAdminHR},
			allowed: false,
			reason:  ReasonSelfReview,
		},
		{
			name:    "admin reviewing another admin is forbidden",
			actor:   adminActor(admin),
			subject: domain.Subject{UserID: otherAdmin, Role: domain.RoleAdminHR},
			allowed: false,
			reason:  ReasonAdminPeer,
		},
		{
			name:    "manager reviewing an admin is allowed",
			actor:   managerActor(manager, dept),
			subject: domain.Subject{UserID: otherAdmin, Role: domain.RoleAdminHR},
			allowed: true,
			reason:  ReasonAllowed,
		},
		{
			name:    "manager reviewing employee in managed department",
			actor:   managerActor(manager, dept),
			subject: domain.Subject{UserID: worker, Role: domain.RoleEmployee, DepartmentID: dept},
			allowed: true,
			reason:  ReasonAllowed,
		},
		{
			name:    "manager reviewing employee outside managed department",
			actor:   managerActor(manager, dept),
			subject: domain.Subject{UserID: worker, Role: domain.RoleEmployee, DepartmentID: otherDept},
			allowed: false,
			reason:  ReasonOutsideDepartment,
		},
		{
			name:    "manager reviewing employee with no department",
			actor:   managerActor(manager, dept),
			subject: domain.Subject{UserID: worker, Role: domain.RoleEmployee},
			allowed: false,
			reason:  ReasonOutsideDepartment,
		},
		{
			name:    "admin reviewing ordinary employee",
			actor:   adminActor(admin),
			subject: domain.Subject{UserID: worker, Role: domain.RoleEmployee, DepartmentID: dept},
			allowed: true,
			reason:  ReasonAllowed,
		},
		{
			name:    "employee role may not review at all",
			actor:   domain.Actor{UserID: worker, Role: domain.RoleEmployee},
			subject: domain.Subject{UserID: otherAdmin, Role: domain.RoleEmployee, DepartmentID: dept},
			allowed: false,
			reason:  ReasonRoleNotPermitted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CanReviewLeave(tt.actor, tt.subject)
			assert.Equal(t, tt.allowed, d.Allowed)
			assert.Equal(t, tt.reason, d.Reason)
		})
	}
}

func TestCanUpdateReview_ManagerMustBeAuthor(t *testing.T) {
	manager := uuid.New()
	peerManager := uuid.New()
	dept := uuid.New()
	subject := domain.Subject{UserID: uuid.New(), Role: domain.RoleEmployee, DepartmentID: dept}

	// Manager manages the department but did not author the review.
	d := CanUpdateReview(managerActor(manager, dept), subject, peerManager)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonNotAuthor, d.Reason)

	d = CanUpdateReview(managerActor(manager, dept), subject, manager)
	assert.True(t, d.Allowed)
}

func TestCanUpdateReview_AdminIgnoresAuthor(t *testing.T) {
	admin := uuid.New()
	subject := domain.Subject{UserID: uuid.New(), Role: domain.RoleEmployee, DepartmentID: uuid.New()}

	d := CanUpdateReview(adminActor(admin), subject, uuid.New())
	assert.True(t, d.Allowed)
}

func TestCanDeleteReview(t *testing.T) {
	admin := uuid.New()
	manager := uuid.New()
	author := uuid.New()

	assert.True(t, CanDeleteReview(adminActor(admin), author).Allowed)

	d := CanDeleteReview(managerActor(manager), author)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonNotAuthor, d.Reason)

	assert.True(t, CanDeleteReview(managerActor(manager), manager).Allowed)

	d = CanDeleteReview(domain.Actor{UserID: author, Role: domain.RoleEmployee}, author)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonRoleNotPermitted, d.Reason)
}
