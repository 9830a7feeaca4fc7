package balance

type EntryResponse struct {
	ID        string  `json:"id"`
	LeaveType string  `json:"leave_type"`
	Delta     int     `json:"delta"`
	SourceID  *string `json:"source_id,omitempty"`
	CreatedAt string  `json:"created_at"`
}

type BalanceResponse struct {
	EmployeeID string          `json:"employee_id"`
	Balance    Balance         `json:"balance"`
	History    []EntryResponse `json:"history"`
}
