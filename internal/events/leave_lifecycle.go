// Package events holds the payloads published through the transactional
// outbox. Every event carries an EventID so consumers can deduplicate.
package events

import (
	"time"

	"github.com/google/uuid"
)

const LeaveLifecycleTopic = "hris.leave.lifecycle"

const (
	TypeLeaveSubmitted = "leave.submitted"
	TypeLeaveReviewed  = "leave.reviewed"
)

// LeaveSubmittedEvent is emitted when a leave request enters the queue.
// ManagerUserID may be empty when the requester's department has no manager.
type LeaveSubmittedEvent struct {
	EventID       uuid.UUID `json:"event_id"`
	LeaveID       uuid.UUID `json:"leave_id"`
	RequesterID   uuid.UUID `json:"requester_id"`
	RequesterName string    `json:"requester_name"`
	ManagerUserID string    `json:"manager_user_id,omitempty"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// LeaveReviewedEvent is emitted when a reviewer approves or rejects a request.
type LeaveReviewedEvent struct {
	EventID         uuid.UUID `json:"event_id"`
	LeaveID         uuid.UUID `json:"leave_id"`
	RequesterUserID uuid.UUID `json:"requester_user_id"`
	Status          string    `json:"status"`
	ReviewerNote    string    `json:"reviewer_note,omitempty"`
	ReviewedAt      time.Time `json:"reviewed_at"`
}
