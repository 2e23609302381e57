package salary

type CreateSalaryRequest struct {
	EmployeeID  string  `json:"employee_id" binding:"required,uuid"`
	Period      string  `json:"period" binding:"required,max=20"`
	BasicSalary float64 `json:"basic_salary" binding:"required,gt=0"`
	Allowance   float64 `json:"allowance" binding:"omitempty,gte=0"`
	Deduction   float64 `json:"deduction" binding:"omitempty,gte=0"`
	Remarks     string  `json:"remarks"`
}

type UpdateSalaryRequest struct {
	Period      string  `json:"period" binding:"required,max=20"`
	BasicSalary float64 `json:"basic_salary" binding:"required,gt=0"`
	Allowance   float64 `json:"allowance" binding:"omitempty,gte=0"`
	Deduction   float64 `json:"deduction" binding:"omitempty,gte=0"`
	Remarks     string  `json:"remarks"`
}

type ListSalaryQuery struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Period     string `form:"period"`
	Search     string `form:"search"`
}

type SalaryResponse struct {
	ID          string  `json:"id"`
	EmployeeID  string  `json:"employee_id"`
	CreatedBy   string  `json:"created_by"`
	Period      string  `json:"period"`
	BasicSalary float64 `json:"basic_salary"`
	Allowance   float64 `json:"allowance"`
	Deduction   float64 `json:"deduction"`
	Total       float64 `json:"total"`
	Remarks     string  `json:"remarks,omitempty"`
}

// SalarySelfItem hides who issued the slip and the subject's own id.
type SalarySelfItem struct {
	ID          string  `json:"id"`
	Period      string  `json:"period"`
	BasicSalary float64 `json:"basic_salary"`
	Allowance   float64 `json:"allowance"`
	Deduction   float64 `json:"deduction"`
	Total       float64 `json:"total"`
	Remarks     string  `json:"remarks,omitempty"`
}

type SalaryListItem struct {
	ID           string  `json:"id"`
	EmployeeName string  `json:"employee_name"`
	EmployeeCode string  `json:"employee_code,omitempty"`
	Period       string  `json:"period"`
	Total        float64 `json:"total"`
}
