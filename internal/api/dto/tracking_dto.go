package dto

import (
	"time"

	"github.com/spec-kit/ops-console/internal/domain"
)

// CheckInRequest payload. A blank location means Remote.
type CheckInRequest struct {
	Location string `json:"location" validate:"max=120"`
}

// EmployeeLogResponse is one presence session.
type EmployeeLogResponse struct {
	ID           string                `json:"id"`
	UserID       string                `json:"userId"`
	EmployeeName string                `json:"employeeName"`
	Location     string                `json:"location"`
	CheckIn      time.Time             `json:"checkIn"`
	CheckOut     *time.Time            `json:"checkOut"`
	Status       domain.PresenceStatus `json:"status"`
}

// CurrentSessionResponse pairs the open session with its elapsed time.
type CurrentSessionResponse struct {
	Log            EmployeeLogResponse `json:"log"`
	ElapsedSeconds int64               `json:"elapsedSeconds"`
}

// FromEmployeeLog maps a domain log.
func FromEmployeeLog(l *domain.EmployeeLog) EmployeeLogResponse {
	return EmployeeLogResponse{
		ID:           l.ID,
		UserID:       l.UserID,
		EmployeeName: l.EmployeeName,
		Location:     l.Location,
		CheckIn:      l.CheckIn,
		CheckOut:     l.CheckOut,
		Status:       l.Status,
	}
}

// FromEmployeeLogs maps a list, never returning nil.
func FromEmployeeLogs(logs []domain.EmployeeLog) []EmployeeLogResponse {
	out := make([]EmployeeLogResponse, len(logs))
	for i := range logs {
		out[i] = FromEmployeeLog(&logs[i])
	}
	return out
}
