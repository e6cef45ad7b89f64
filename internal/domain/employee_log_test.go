package domain

import (
	"testing"
	"time"
)

func TestEmployeeLogElapsed(t *testing.T) {
	checkIn := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)
	checkOut := checkIn.Add(8 * time.Hour)
	now := checkIn.Add(2 * time.Hour)

	cases := []struct {
		name string
		log  *EmployeeLog
		want time.Duration
	}{
		{"no session", nil, 0},
		{"active", &EmployeeLog{CheckIn: checkIn, Status: PresenceActive}, 2 * time.Hour},
		{"offline uses checkout", &EmployeeLog{CheckIn: checkIn, CheckOut: &checkOut, Status: PresenceOffline}, 8 * time.Hour},
		{"clock behind check-in", &EmployeeLog{CheckIn: now.Add(time.Minute), Status: PresenceActive}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.log.Elapsed(now); got != tc.want {
				t.Fatalf("Elapsed = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestStatusAndRoleValidity(t *testing.T) {
	if !PresenceActive.Valid() || !PresenceOffline.Valid() || PresenceStatus("Away").Valid() {
		t.Fatal("unexpected presence status validity")
	}
	if !RoleManager.Valid() || Role("Owner").Valid() {
		t.Fatal("unexpected role validity")
	}
	var none *EmployeeLog
	if none.IsActive() {
		t.Fatal("nil log cannot be active")
	}
}
