package employee

// RegisterInput is what the identity layer hands over after hashing the
// password.
type RegisterInput struct {
	Name         string
	Email        string
	PasswordHash string
	Department   string
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=employee manager admin"`
}

type LeaveBalanceResponse struct {
	Casual int `json:"casual"`
	Sick   int `json:"sick"`
	Annual int `json:"annual"`
}

type EmployeeResponse struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Email        string               `json:"email"`
	Role         string               `json:"role"`
	Department   string               `json:"department"`
	LeaveBalance LeaveBalanceResponse `json:"leave_balance"`
	CreatedAt    string               `json:"created_at"`
}

// SummaryResponse is the short form embedded in request payloads for the
// owner and the reviewer.
type SummaryResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
}

func ToSummary(e *Employee) *SummaryResponse {
	if e == nil {
		return nil
	}
	return &SummaryResponse{
		ID:         e.ID.String(),
		Name:       e.Name,
		Email:      e.Email,
		Role:       e.Role.String(),
		Department: e.Department,
	}
}
