package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/spec-kit/ops-console/internal/domain"
	"github.com/spec-kit/ops-console/internal/events"
	"github.com/spec-kit/ops-console/internal/repository"
	"github.com/spec-kit/ops-console/internal/repository/repotest"
	apperrors "github.com/spec-kit/ops-console/pkg/util/errorutil"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type presenceFixture struct {
	svc        *PresenceService
	logs       *repotest.EmployeeLogs
	clock      *fakeClock
	dispatched []events.EventType
}

func newPresenceFixture(t *testing.T) *presenceFixture {
	t.Helper()
	f := &presenceFixture{
		logs:  repotest.NewEmployeeLogs(),
		clock: &fakeClock{now: time.Date(2026, 2, 3, 9, 0, 0, 0, time.UTC)},
	}
	dispatcher := events.NewInMemoryDispatcher()
	for _, et := range []events.EventType{events.EventPresenceCheckedIn, events.EventPresenceCheckedOut} {
		dispatcher.Subscribe(et, func(_ context.Context, e events.Event) error {
			f.dispatched = append(f.dispatched, e.Type)
			return nil
		})
	}
	f.svc = NewPresenceService(PresenceDependencies{
		LogRepo:    f.logs,
		Dispatcher: dispatcher,
		Now:        f.clock.Now,
	})
	return f
}

var (
	alice = domain.Identity{ID: "u-alice", Role: domain.RoleEmployee, Name: "Alice"}
	bob   = domain.Identity{ID: "u-bob", Role: domain.RoleManager, Name: "Bob"}
)

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	var de *apperrors.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("err = %v, want DomainError with status %d", err, status)
	}
	if de.HTTPStatus != status {
		t.Fatalf("status = %d (%s), want %d", de.HTTPStatus, de.Message, status)
	}
}

func activeCount(t *testing.T, logs *repotest.EmployeeLogs, userID string) int {
	t.Helper()
	all, err := logs.List(context.Background(), repository.EmployeeLogFilter{})
	if err != nil {
		t.Fatal(err)
	}
	n := 0
	for _, l := range all {
		if l.UserID == userID && l.Status == domain.PresenceActive {
			n++
		}
	}
	return n
}

func TestCheckInCreatesActiveLog(t *testing.T) {
	f := newPresenceFixture(t)
	ctx := context.Background()

	log, err := f.svc.CheckIn(ctx, alice, "Main Office")
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if log.ID == "" || log.UserID != alice.ID || log.EmployeeName != "Alice" {
		t.Fatalf("unexpected log %+v", log)
	}
	if log.Status != domain.PresenceActive || log.CheckOut != nil {
		t.Fatalf("log not active: %+v", log)
	}
	if log.Location != "Main Office" || !log.CheckIn.Equal(f.clock.Now()) {
		t.Fatalf("location/checkIn = %q/%v", log.Location, log.CheckIn)
	}

	all, err := f.svc.List(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || all[0].ID != log.ID {
		t.Fatalf("list after check-in = %+v", all)
	}
	if len(f.dispatched) != 1 || f.dispatched[0] != events.EventPresenceCheckedIn {
		t.Fatalf("events = %v", f.dispatched)
	}
}

func TestCheckInDefaultsLocation(t *testing.T) {
	f := newPresenceFixture(t)
	log, err := f.svc.CheckIn(context.Background(), alice, "   ")
	if err != nil {
		t.Fatal(err)
	}
	if log.Location != domain.DefaultLocation {
		t.Fatalf("location = %q, want %q", log.Location, domain.DefaultLocation)
	}
}

func TestCheckInRequiresIdentity(t *testing.T) {
	f := newPresenceFixture(t)
	_, err := f.svc.CheckIn(context.Background(), domain.Identity{}, "x")
	assertStatus(t, err, http.StatusUnauthorized)
	_, err = f.svc.CheckOut(context.Background(), domain.Identity{})
	assertStatus(t, err, http.StatusUnauthorized)
}

func TestDuplicateCheckInConflicts(t *testing.T) {
	f := newPresenceFixture(t)
	ctx := context.Background()

	if _, err := f.svc.CheckIn(ctx, alice, "Main Office"); err != nil {
		t.Fatal(err)
	}
	_, err := f.svc.CheckIn(ctx, alice, "Warehouse")
	assertStatus(t, err, http.StatusConflict)

	if n := activeCount(t, f.logs, alice.ID); n != 1 {
		t.Fatalf("active rows = %d, want 1", n)
	}
}

func TestCheckOutClosesActiveLog(t *testing.T) {
	f := newPresenceFixture(t)
	ctx := context.Background()

	in, err := f.svc.CheckIn(ctx, alice, "Main Office")
	if err != nil {
		t.Fatal(err)
	}
	f.clock.Advance(90 * time.Minute)

	out, err := f.svc.CheckOut(ctx, alice)
	if err != nil {
		t.Fatalf("CheckOut: %v", err)
	}
	if out.ID != in.ID || out.Status != domain.PresenceOffline || out.CheckOut == nil {
		t.Fatalf("unexpected checkout result %+v", out)
	}
	if out.CheckOut.Before(out.CheckIn) {
		t.Fatalf("checkOut %v before checkIn %v", out.CheckOut, out.CheckIn)
	}
	if got := out.Elapsed(f.clock.Now().Add(time.Hour)); got != 90*time.Minute {
		t.Fatalf("elapsed = %v, want 90m", got)
	}
	if n := activeCount(t, f.logs, alice.ID); n != 0 {
		t.Fatalf("active rows = %d, want 0", n)
	}
	if len(f.dispatched) != 2 || f.dispatched[1] != events.EventPresenceCheckedOut {
		t.Fatalf("events = %v", f.dispatched)
	}
}

func TestCheckOutNeverBeforeCheckIn(t *testing.T) {
	f := newPresenceFixture(t)
	ctx := context.Background()

	if _, err := f.svc.CheckIn(ctx, alice, ""); err != nil {
		t.Fatal(err)
	}
	f.clock.Advance(-time.Minute)

	out, err := f.svc.CheckOut(ctx, alice)
	if err != nil {
		t.Fatal(err)
	}
	if !out.CheckOut.Equal(out.CheckIn) {
		t.Fatalf("checkOut = %v, want clamped to checkIn %v", out.CheckOut, out.CheckIn)
	}
}

func TestSecondCheckOutIsNotFoundWithoutMutation(t *testing.T) {
	f := newPresenceFixture(t)
	ctx := context.Background()

	if _, err := f.svc.CheckIn(ctx, alice, "Main Office"); err != nil {
		t.Fatal(err)
	}
	first, err := f.svc.CheckOut(ctx, alice)
	if err != nil {
		t.Fatal(err)
	}
	before, _ := f.svc.List(ctx, "")

	f.clock.Advance(time.Hour)
	_, err = f.svc.CheckOut(ctx, alice)
	assertStatus(t, err, http.StatusNotFound)
	var de *apperrors.DomainError
	errors.As(err, &de)
	if de.Message != MessageNoActiveSession {
		t.Fatalf("message = %q", de.Message)
	}

	after, _ := f.svc.List(ctx, "")
	if len(after) != len(before) || !after[0].CheckOut.Equal(*first.CheckOut) || after[0].Status != domain.PresenceOffline {
		t.Fatalf("log mutated: before %+v after %+v", before, after)
	}
}

func TestCheckOutWithoutSessionIsNotFound(t *testing.T) {
	f := newPresenceFixture(t)
	_, err := f.svc.CheckOut(context.Background(), bob)
	assertStatus(t, err, http.StatusNotFound)
}

func TestCheckOutPicksLatestActiveRow(t *testing.T) {
	f := newPresenceFixture(t)
	ctx := context.Background()
	base := f.clock.Now()

	// Two Active rows can only exist in legacy data; the newest one closes.
	f.logs.Seed(domain.EmployeeLog{ID: "old", UserID: alice.ID, EmployeeName: "Alice", Location: "A", CheckIn: base.Add(-2 * time.Hour), Status: domain.PresenceActive})
	f.logs.Seed(domain.EmployeeLog{ID: "new", UserID: alice.ID, EmployeeName: "Alice", Location: "B", CheckIn: base.Add(-time.Hour), Status: domain.PresenceActive})

	out, err := f.svc.CheckOut(ctx, alice)
	if err != nil {
		t.Fatal(err)
	}
	if out.ID != "new" {
		t.Fatalf("closed %q, want newest row", out.ID)
	}
	if n := activeCount(t, f.logs, alice.ID); n != 1 {
		t.Fatalf("active rows = %d, want exactly one row affected", n)
	}
}

func TestListOrderingAndStatusFilter(t *testing.T) {
	f := newPresenceFixture(t)
	ctx := context.Background()

	if _, err := f.svc.CheckIn(ctx, alice, "Main Office"); err != nil {
		t.Fatal(err)
	}
	f.clock.Advance(time.Minute)
	if _, err := f.svc.CheckIn(ctx, bob, "Remote"); err != nil {
		t.Fatal(err)
	}
	f.clock.Advance(time.Minute)
	if _, err := f.svc.CheckOut(ctx, alice); err != nil {
		t.Fatal(err)
	}

	all, err := f.svc.List(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].UserID != bob.ID || all[1].UserID != alice.ID {
		t.Fatalf("order = %+v, want bob then alice", all)
	}
	for i := 1; i < len(all); i++ {
		if all[i].CheckIn.After(all[i-1].CheckIn) {
			t.Fatalf("list not ordered by checkIn desc: %+v", all)
		}
	}

	tests := []struct {
		status string
		want   string
	}{
		{"Active", bob.ID},
		{"Offline", alice.ID},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			logs, err := f.svc.List(ctx, tt.status)
			if err != nil {
				t.Fatal(err)
			}
			if len(logs) != 1 || logs[0].UserID != tt.want {
				t.Fatalf("filtered = %+v, want only %s", logs, tt.want)
			}
		})
	}

	_, err = f.svc.List(ctx, "Sleeping")
	assertStatus(t, err, http.StatusBadRequest)
}

func TestMainOfficeScenario(t *testing.T) {
	f := newPresenceFixture(t)
	ctx := context.Background()

	in, err := f.svc.CheckIn(ctx, alice, "Main Office")
	if err != nil {
		t.Fatal(err)
	}
	f.clock.Advance(8 * time.Hour)
	out, err := f.svc.CheckOut(ctx, alice)
	if err != nil {
		t.Fatal(err)
	}

	logs, err := f.svc.List(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 {
		t.Fatalf("logs = %+v", logs)
	}
	got := logs[0]
	if got.ID != in.ID || got.Location != "Main Office" || got.Status != domain.PresenceOffline {
		t.Fatalf("unexpected log %+v", got)
	}
	if !got.CheckOut.Equal(*out.CheckOut) || got.CheckOut.Sub(got.CheckIn) != 8*time.Hour {
		t.Fatalf("window = %v..%v", got.CheckIn, got.CheckOut)
	}
}

func TestConcurrentCheckInsYieldOneSuccess(t *testing.T) {
	f := newPresenceFixture(t)
	ctx := context.Background()

	const attempts = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.CheckIn(ctx, alice, "Main Office")
			mu.Lock()
			defer mu.Unlock()
			var de *apperrors.DomainError
			switch {
			case err == nil:
				successes++
			case errors.As(err, &de) && de.HTTPStatus == http.StatusConflict:
				conflicts++
			}
		}()
	}
	wg.Wait()

	if successes != 1 || conflicts != attempts-1 {
		t.Fatalf("successes=%d conflicts=%d", successes, conflicts)
	}
	if n := activeCount(t, f.logs, alice.ID); n != 1 {
		t.Fatalf("active rows = %d, want 1", n)
	}
}

func TestCurrent(t *testing.T) {
	f := newPresenceFixture(t)
	ctx := context.Background()

	_, _, err := f.svc.Current(ctx, alice)
	assertStatus(t, err, http.StatusNotFound)

	in, err := f.svc.CheckIn(ctx, alice, "Main Office")
	if err != nil {
		t.Fatal(err)
	}
	f.clock.Advance(25 * time.Minute)

	log, elapsed, err := f.svc.Current(ctx, alice)
	if err != nil {
		t.Fatal(err)
	}
	if log.ID != in.ID || elapsed != 25*time.Minute {
		t.Fatalf("current = %s elapsed %v", log.ID, elapsed)
	}
}
