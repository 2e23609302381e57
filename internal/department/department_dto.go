package department

type CreateDepartmentRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	ManagerID   *string `json:"manager_id" binding:"omitempty,uuid"`
}

type UpdateDepartmentRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	ManagerID   *string `json:"manager_id" binding:"omitempty,uuid"`
}

type DepartmentResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	ManagerID   *string `json:"manager_id,omitempty"`
	ManagerName string  `json:"manager_name,omitempty"`
}
