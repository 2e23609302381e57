package employee

type CreateEmployeeRequest struct {
	Name             string `json:"name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"omitempty,min=6"`
	EmployeeCode     string `json:"employee_code"`
	Position         string `json:"position" binding:"required"`
	DepartmentID     string `json:"department_id" binding:"required,uuid"`
	JoinDate         string `json:"join_date" binding:"required"`
	EmploymentStatus string `json:"employment_status" binding:"required,oneof=permanent contract intern resigned"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
}

type UpdateEmployeeRequest struct {
	Name             string `json:"name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Position         string `json:"position" binding:"required"`
	DepartmentID     string `json:"department_id" binding:"required,uuid"`
	JoinDate         string `json:"join_date" binding:"required"`
	EmploymentStatus string `json:"employment_status" binding:"required,oneof=permanent contract intern resigned"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
}

// EmployeeListItem is the index shape: internal foreign keys stay hidden.
type EmployeeListItem struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	EmployeeCode     string `json:"employee_code"`
	Position         string `json:"position"`
	DepartmentName   string `json:"department_name,omitempty"`
	EmploymentStatus string `json:"employment_status"`
}

// EmployeeResponse is the detail shape.
type EmployeeResponse struct {
	ID               string `json:"id"`
	UserID           string `json:"user_id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	EmployeeCode     string `json:"employee_code"`
	Position         string `json:"position"`
	DepartmentID     string `json:"department_id"`
	DepartmentName   string `json:"department_name,omitempty"`
	JoinDate         string `json:"join_date"`
	EmploymentStatus string `json:"employment_status"`
	Phone            string `json:"phone,omitempty"`
	Address          string `json:"address,omitempty"`
}
