package jobs

import (
	"context"
	"os"
	"testing"
	"time"

	"helpdesk/internal/db"
	"helpdesk/internal/models"
	"helpdesk/internal/testutil"
)

func setupSweeperTest(t *testing.T) (*TimeoutSweeper, *db.DB, func()) {
	t.Helper()
	if os.Getenv("TEST_DATABASE_URL") == "" && os.Getenv("RUN_INTEGRATION_TESTS") == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	database, cleanup := testutil.TestDB(t)
	testutil.CleanTables(context.Background(), database.Pool)

	return NewTimeoutSweeper(database, time.Minute), database, cleanup
}

// An overdue pending request is marked unresolved by a single sweep. The
// expiry stamps resolved_at but records no answer.
func TestSweep_ExpiresOverduePending(t *testing.T) {
	sweeper, database, cleanup := setupSweeperTest(t)
	defer cleanup()

	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, database, "+1234567890", "John Doe")

	// Negative timeout puts the deadline in the past.
	overdue := testutil.CreateTestRequest(t, database, customer, "Do you accept walk-ins?", -time.Minute)

	sweeper.sweep(ctx)

	got, err := database.GetRequestByID(ctx, overdue.ID)
	if err != nil {
		t.Fatalf("GetRequestByID() error = %v", err)
	}
	if got.Status != models.StatusUnresolved {
		t.Errorf("sweep left status %q, want %q", got.Status, models.StatusUnresolved)
	}
	if got.ResolvedAt == nil {
		t.Error("sweep did not stamp resolved_at")
	}
	if got.SupervisorAnswer != nil {
		t.Errorf("sweep recorded an answer %q, want none", *got.SupervisorAnswer)
	}
}

// A pending request whose deadline has not passed is left alone.
func TestSweep_LeavesNotYetDue(t *testing.T) {
	sweeper, database, cleanup := setupSweeperTest(t)
	defer cleanup()

	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, database, "+1234567890", "John Doe")
	request := testutil.CreateTestRequest(t, database, customer, "Do you accept walk-ins?", 5*time.Minute)

	sweeper.sweep(ctx)

	got, err := database.GetRequestByID(ctx, request.ID)
	if err != nil {
		t.Fatalf("GetRequestByID() error = %v", err)
	}
	if got.Status != models.StatusPending {
		t.Errorf("sweep changed status to %q, want %q", got.Status, models.StatusPending)
	}
}

// A request resolved before the sweep runs is never expired, even when its
// deadline has passed.
func TestSweep_SkipsResolved(t *testing.T) {
	sweeper, database, cleanup := setupSweeperTest(t)
	defer cleanup()

	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, database, "+1234567890", "John Doe")
	request := testutil.CreateTestRequest(t, database, customer, "Do you accept walk-ins?", -time.Minute)

	if _, err := database.ResolveRequest(ctx, request.ID, "Yes.", "supervisor-1"); err != nil {
		t.Fatalf("ResolveRequest() error = %v", err)
	}

	sweeper.sweep(ctx)

	got, err := database.GetRequestByID(ctx, request.ID)
	if err != nil {
		t.Fatalf("GetRequestByID() error = %v", err)
	}
	if got.Status != models.StatusResolved {
		t.Errorf("sweep changed status to %q, want %q", got.Status, models.StatusResolved)
	}
	if got.SupervisorAnswer == nil || *got.SupervisorAnswer != "Yes." {
		t.Error("sweep clobbered the supervisor answer")
	}
}

// One sweep handles a mix of overdue and live requests in a single pass.
func TestSweep_MixedBatch(t *testing.T) {
	sweeper, database, cleanup := setupSweeperTest(t)
	defer cleanup()

	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, database, "+1234567890", "John Doe")

	first := testutil.CreateTestRequest(t, database, customer, "First question?", -2*time.Minute)
	second := testutil.CreateTestRequest(t, database, customer, "Second question?", -time.Minute)
	live := testutil.CreateTestRequest(t, database, customer, "Third question?", 5*time.Minute)

	sweeper.sweep(ctx)

	pending, err := database.GetPendingRequests(ctx)
	if err != nil {
		t.Fatalf("GetPendingRequests() error = %v", err)
	}
	if len(pending) != 1 || pending[0].ID != live.ID {
		t.Fatalf("sweep left %d pending requests, want only the live one", len(pending))
	}

	for _, expired := range []*models.HelpRequest{first, second} {
		got, err := database.GetRequestByID(ctx, expired.ID)
		if err != nil {
			t.Fatalf("GetRequestByID() error = %v", err)
		}
		if got.Status != models.StatusUnresolved {
			t.Errorf("request %s status = %q, want %q", got.ID, got.Status, models.StatusUnresolved)
		}
	}
}

// Start honors context cancellation.
func TestStart_StopsOnCancel(t *testing.T) {
	sweeper, _, cleanup := setupSweeperTest(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		sweeper.Start(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("sweeper did not stop after context cancellation")
	}
}
