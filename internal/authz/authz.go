// Package authz holds the approval predicates for the leave and performance
// review workflows. Every rule is a pure function over (actor, subject) so
// the precedence order lives in exactly one place and is testable without a
// database or HTTP stack.
package authz

import (
	"github.com/google/uuid"

	"hris-backend/internal/domain"
)

type Reason string

const (
	ReasonAllowed           Reason = "allowed"
	ReasonRoleNotPermitted  Reason = "role_not_permitted"
	ReasonSelfReview        Reason = "self_review"
	ReasonAdminPeer         Reason = "admin_peer"
	ReasonOutsideDepartment Reason = "outside_department"
	ReasonNotAuthor         Reason = "not_author"
)

type Decision struct {
	Allowed bool
	Reason  Reason
}

func allow() Decision {
	return Decision{Allowed: true, Reason: ReasonAllowed}
}

func deny(reason Reason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// CanReviewLeave decides whether actor may approve or reject a leave request
// filed by subject. The precedence order matters:
//
//  1. AdminHR never reviews its own request.
//  2. A request filed by an AdminHR-role user may only be reviewed by a
//     Manager, never by another AdminHR.
//  3. A Manager reviewing an ordinary employee must manage that employee's
//     department.
//  4. AdminHR reviews any ordinary employee.
func CanReviewLeave(actor domain.Actor, subject domain.Subject) Decision {
	if actor.Role != domain.RoleAdminHR && actor.Role != domain.RoleManager {
		return deny(ReasonRoleNotPermitted)
	}

	if actor.Role == domain.RoleAdminHR && subject.UserID == actor.UserID {
		return deny(ReasonSelfReview)
	}

	if subject.Role == domain.RoleAdminHR {
		if actor.Role == domain.RoleManager {
			return allow()
		}
		return deny(ReasonAdminPeer)
	}

	if actor.Role == domain.RoleManager {
		if subject.DepartmentID == uuid.Nil || !actor.Manages(subject.DepartmentID) {
			return deny(ReasonOutsideDepartment)
		}
		return allow()
	}

	return allow()
}

// CanManageReview gates performance review creation. It shares the leave
// precedence exactly: the three-tier rule is one predicate, not two copies.
func CanManageReview(actor domain.Actor, subject domain.Subject) Decision {
	return CanReviewLeave(actor, subject)
}

// CanUpdateReview is evaluated against the existing review's subject, not a
// caller-supplied target. A Manager may only touch reviews they authored,
// even when they manage the subject's department.
func CanUpdateReview(actor domain.Actor, subject domain.Subject, reviewerID uuid.UUID) Decision {
	d := CanManageReview(actor, subject)
	if !d.Allowed {
		return d
	}
	if actor.Role == domain.RoleManager && reviewerID != actor.UserID {
		return deny(ReasonNotAuthor)
	}
	return d
}

// CanDeleteReview: AdminHR unconditionally, Manager only for reviews they
// authored themselves.
func CanDeleteReview(actor domain.Actor, reviewerID uuid.UUID) Decision {
	switch actor.Role {
	case domain.RoleAdminHR:
		return allow()
	case domain.RoleManager:
		if reviewerID == actor.UserID {
			return allow()
		}
		return deny(ReasonNotAuthor)
	default:
		return deny(ReasonRoleNotPermitted)
	}
}
