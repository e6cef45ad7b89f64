package domain

import "time"

// PresenceStatus is the lifecycle state of an EmployeeLog.
type PresenceStatus string

const (
	PresenceActive  PresenceStatus = "Active"
	PresenceOffline PresenceStatus = "Offline"
)

// Valid reports whether s is a known presence status.
func (s PresenceStatus) Valid() bool {
	return s == PresenceActive || s == PresenceOffline
}

// DefaultLocation is used when a check-in names no zone.
const DefaultLocation = "Remote"

// EmployeeLog records one check-in/check-out presence window.
//
// A log is created Active with a nil CheckOut and moves to Offline exactly once.
// At most one Active log exists per UserID.
type EmployeeLog struct {
	ID           string
	UserID       string
	EmployeeName string
	Location     string
	CheckIn      time.Time
	CheckOut     *time.Time
	Status       PresenceStatus
}

// IsActive reports whether the session is still open.
func (l *EmployeeLog) IsActive() bool {
	return l != nil && l.Status == PresenceActive
}

// Elapsed returns the session duration as seen at now. Open sessions count up
// from CheckIn, closed sessions are fixed at CheckOut-CheckIn and a nil log is zero.
func (l *EmployeeLog) Elapsed(now time.Time) time.Duration {
	if l == nil {
		return 0
	}
	end := now
	if l.CheckOut != nil {
		end = *l.CheckOut
	}
	if end.Before(l.CheckIn) {
		return 0
	}
	return end.Sub(l.CheckIn)
}
