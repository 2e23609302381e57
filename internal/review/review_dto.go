package review

type CreateReviewRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Period     string `json:"period" binding:"required,max=20"`
	Rating     int    `json:"rating" binding:"required,min=1,max=10"`
	Review     string `json:"review"`
}

type UpdateReviewRequest struct {
	Period string `json:"period" binding:"required,max=20"`
	Rating int    `json:"rating" binding:"required,min=1,max=10"`
	Review string `json:"review"`
}

type ReviewResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	ReviewerID string `json:"reviewer_id"`
	Period     string `json:"period"`
	Rating     int    `json:"rating"`
	Review     string `json:"review"`
	CreatedAt  string `json:"created_at"`
}

// ReviewListItem is the self-view shape: the subject already knows who they
// are, so only the reviewer side is echoed.
type ReviewListItem struct {
	ID         string `json:"id"`
	Period     string `json:"period"`
	Rating     int    `json:"rating"`
	Review     string `json:"review"`
	ReviewerID string `json:"reviewer_id"`
	CreatedAt  string `json:"created_at"`
}

type StatisticsResponse struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Min     int     `json:"min"`
	Max     int     `json:"max"`
	Band    string  `json:"band"`
}

type ChartPoint struct {
	Month   string  `json:"month"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type TrendResponse struct {
	Trend    string  `json:"trend"`
	Latest   float64 `json:"latest"`
	Baseline float64 `json:"baseline"`
	Samples  int     `json:"samples"`
}
