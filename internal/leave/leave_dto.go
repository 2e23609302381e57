package leave

type SubmitLeaveRequest struct {
	StartDate string `json:"start_date" form:"start_date" binding:"required"`
	EndDate   string `json:"end_date" form:"end_date" binding:"required"`
	Reason    string `json:"reason" form:"reason" binding:"required"`
}

type UpdateLeaveRequest struct {
	StartDate string `json:"start_date" form:"start_date" binding:"required"`
	EndDate   string `json:"end_date" form:"end_date" binding:"required"`
	Reason    string `json:"reason" form:"reason" binding:"required"`
}

type ReviewLeaveRequest struct {
	Status string `json:"status" binding:"required,oneof=APPROVED REJECTED"`
	Note   string `json:"note"`
}

// PhotoUpload carries a decoded multipart attachment into the service.
type PhotoUpload struct {
	Data []byte
	Ext  string
}

type ListLeaveQuery struct {
	Status       string `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
	DepartmentID string `form:"department_id" binding:"omitempty,uuid"`
	Search       string `form:"search"`
	StartDate    string `form:"start_date"`
	EndDate      string `form:"end_date"`
	MinDays      int    `form:"min_days" binding:"omitempty,min=1"`
	MaxDays      int    `form:"max_days" binding:"omitempty,min=1"`
	SortBy       string `form:"sort_by"`
	SortDir      string `form:"sort_dir" binding:"omitempty,oneof=asc desc"`
}

// LeaveResponse is the detail shape returned to the requester.
type LeaveResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	DurationDays int     `json:"duration_days"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	ReviewedBy   *string `json:"reviewed_by,omitempty"`
	ReviewedAt   *string `json:"reviewed_at,omitempty"`
	ReviewerNote *string `json:"reviewer_note,omitempty"`
	Photo        *string `json:"photo,omitempty"`
}

// LeaveListItem is the privileged index shape: requester identity comes from
// the join, internal foreign keys stay hidden.
type LeaveListItem struct {
	ID             string `json:"id"`
	RequesterName  string `json:"requester_name"`
	RequesterEmail string `json:"requester_email"`
	EmployeeCode   string `json:"employee_code,omitempty"`
	Position       string `json:"position,omitempty"`
	DepartmentName string `json:"department_name,omitempty"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	DurationDays   int    `json:"duration_days"`
	Reason         string `json:"reason"`
	Status         string `json:"status"`
}
