package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"helpdesk/internal/models"
)

func TestCreateRequest(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	customer := mustCustomer(t, db, "+1555100001", "Ana Ivanov")

	request, err := db.CreateRequest(ctx, customer, "Do you accept walk-ins?", 5*time.Minute)
	if err != nil {
		t.Fatalf("CreateRequest() error = %v", err)
	}

	if request.Status != models.StatusPending {
		t.Errorf("CreateRequest() status = %q, want %q", request.Status, models.StatusPending)
	}
	if request.ResolvedAt != nil || request.SupervisorAnswer != nil || request.SupervisorID != nil {
		t.Error("CreateRequest() set resolution fields on a new request")
	}
	if got := request.TimeoutAt.Sub(request.CreatedAt); got != 5*time.Minute {
		t.Errorf("CreateRequest() deadline offset = %v, want exactly 5m", got)
	}
	if request.CustomerPhone != customer.Phone || request.CustomerName != customer.Name {
		t.Error("CreateRequest() did not denormalize customer phone/name")
	}
}

func TestGetPendingRequests_OldestFirst(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	customer := mustCustomer(t, db, "+1555100002", "Bo Chen")

	first, err := db.CreateRequest(ctx, customer, "first question", time.Minute)
	if err != nil {
		t.Fatalf("CreateRequest() error = %v", err)
	}
	second, err := db.CreateRequest(ctx, customer, "second question", time.Minute)
	if err != nil {
		t.Fatalf("CreateRequest() error = %v", err)
	}

	// A resolved request must not appear in the pending list.
	if _, err := db.ResolveRequest(ctx, second.ID, "answered", "supervisor-1"); err != nil {
		t.Fatalf("ResolveRequest() error = %v", err)
	}
	third, err := db.CreateRequest(ctx, customer, "third question", time.Minute)
	if err != nil {
		t.Fatalf("CreateRequest() error = %v", err)
	}

	pending, err := db.GetPendingRequests(ctx)
	if err != nil {
		t.Fatalf("GetPendingRequests() error = %v", err)
	}

	if len(pending) != 2 {
		t.Fatalf("GetPendingRequests() returned %d requests, want 2", len(pending))
	}
	if pending[0].ID != first.ID || pending[1].ID != third.ID {
		t.Error("GetPendingRequests() is not ordered oldest first")
	}
}

func TestGetAllRequests_NewestFirstWithLimit(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	customer := mustCustomer(t, db, "+1555100003", "Cy Okafor")

	var last *models.HelpRequest
	for i := 0; i < 3; i++ {
		var err error
		last, err = db.CreateRequest(ctx, customer, "question", time.Minute)
		if err != nil {
			t.Fatalf("CreateRequest() error = %v", err)
		}
	}

	all, err := db.GetAllRequests(ctx, 2)
	if err != nil {
		t.Fatalf("GetAllRequests() error = %v", err)
	}

	if len(all) != 2 {
		t.Fatalf("GetAllRequests(2) returned %d requests, want 2", len(all))
	}
	if all[0].ID != last.ID {
		t.Error("GetAllRequests() is not ordered newest first")
	}
}

func TestResolveRequest(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	customer := mustCustomer(t, db, "+1555100004", "Di Patel")
	request, err := db.CreateRequest(ctx, customer, "Do you accept walk-ins?", time.Minute)
	if err != nil {
		t.Fatalf("CreateRequest() error = %v", err)
	}

	resolved, err := db.ResolveRequest(ctx, request.ID, "Yes, walk-ins are welcome on weekdays.", "supervisor-1")
	if err != nil {
		t.Fatalf("ResolveRequest() error = %v", err)
	}

	if resolved.Status != models.StatusResolved {
		t.Errorf("ResolveRequest() status = %q, want %q", resolved.Status, models.StatusResolved)
	}
	if resolved.ResolvedAt == nil {
		t.Error("ResolveRequest() did not stamp ResolvedAt")
	}
	if resolved.SupervisorAnswer == nil || *resolved.SupervisorAnswer != "Yes, walk-ins are welcome on weekdays." {
		t.Error("ResolveRequest() did not record the supervisor answer")
	}
	if resolved.SupervisorID == nil || *resolved.SupervisorID != "supervisor-1" {
		t.Error("ResolveRequest() did not record the supervisor id")
	}
}

// Resolving twice overwrites the previous answer. The ledger does not guard
// terminal states; this is current behavior, kept deliberately.
func TestResolveRequest_DoubleResolveOverwrites(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	customer := mustCustomer(t, db, "+1555100005", "Ed Szabo")
	request, err := db.CreateRequest(ctx, customer, "question", time.Minute)
	if err != nil {
		t.Fatalf("CreateRequest() error = %v", err)
	}

	if _, err := db.ResolveRequest(ctx, request.ID, "first answer", "supervisor-1"); err != nil {
		t.Fatalf("ResolveRequest() first call error = %v", err)
	}

	resolved, err := db.ResolveRequest(ctx, request.ID, "second answer", "supervisor-2")
	if err != nil {
		t.Fatalf("ResolveRequest() second call error = %v", err)
	}

	if *resolved.SupervisorAnswer != "second answer" || *resolved.SupervisorID != "supervisor-2" {
		t.Error("ResolveRequest() did not overwrite the previous resolution")
	}
}

func TestResolveRequest_NotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := db.ResolveRequest(context.Background(), uuid.New(), "answer", "supervisor-1")
	if !errors.Is(err, ErrRequestNotFound) {
		t.Errorf("ResolveRequest() error = %v, want ErrRequestNotFound", err)
	}
}

func TestMarkRequestUnresolved(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	customer := mustCustomer(t, db, "+1555100006", "Fay Ruiz")
	request, err := db.CreateRequest(ctx, customer, "question", time.Minute)
	if err != nil {
		t.Fatalf("CreateRequest() error = %v", err)
	}

	expired, err := db.MarkRequestUnresolved(ctx, request.ID)
	if err != nil {
		t.Fatalf("MarkRequestUnresolved() error = %v", err)
	}

	if expired.Status != models.StatusUnresolved {
		t.Errorf("MarkRequestUnresolved() status = %q, want %q", expired.Status, models.StatusUnresolved)
	}
	if expired.ResolvedAt == nil {
		t.Error("MarkRequestUnresolved() did not stamp ResolvedAt")
	}
	if expired.SupervisorAnswer != nil {
		t.Error("MarkRequestUnresolved() recorded a supervisor answer")
	}

	if _, err := db.MarkRequestUnresolved(ctx, uuid.New()); !errors.Is(err, ErrRequestNotFound) {
		t.Errorf("MarkRequestUnresolved() error = %v, want ErrRequestNotFound", err)
	}
}
