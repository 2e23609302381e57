package attendance

type ListAttendanceQuery struct {
	Date         string `form:"date"`
	DepartmentID string `form:"department_id" binding:"omitempty,uuid"`
	Search       string `form:"search"`
	SortBy       string `form:"sort_by"`
	SortDir      string `form:"sort_dir" binding:"omitempty,oneof=asc desc"`
}

type AttendanceResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	CheckIn    *string `json:"check_in,omitempty"`
	CheckOut   *string `json:"check_out,omitempty"`
	WorkHour   float64 `json:"work_hour"`
}

type AttendanceListItem struct {
	ID             string  `json:"id"`
	EmployeeName   string  `json:"employee_name"`
	EmployeeCode   string  `json:"employee_code,omitempty"`
	DepartmentName string  `json:"department_name,omitempty"`
	Date           string  `json:"date"`
	CheckIn        *string `json:"check_in,omitempty"`
	CheckOut       *string `json:"check_out,omitempty"`
	WorkHour       float64 `json:"work_hour"`
}
