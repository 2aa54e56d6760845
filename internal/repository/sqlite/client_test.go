package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tlind/coachdesk/internal/apperror"
	"github.com/tlind/coachdesk/internal/model"
	"github.com/tlind/coachdesk/internal/repository"
)

// newTestDB opens an in-memory database, migrated and ready.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("opening in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestCoach(t *testing.T, db *DB, email string) *model.Coach {
	t.Helper()
	coach := &model.Coach{
		Email:              email,
		Name:               "Coach",
		SubscriptionStatus: model.SubscriptionActive,
		Branding:           model.DefaultBranding(),
	}
	if err := db.CreateCoach(context.Background(), coach); err != nil {
		t.Fatalf("creating coach: %v", err)
	}
	return coach
}

func createTestClient(t *testing.T, db *DB, coachID, name string) *model.Client {
	t.Helper()
	client := &model.Client{CoachID: coachID, Name: name, Email: "a@b.com"}
	if err := db.CreateClient(context.Background(), client); err != nil {
		t.Fatalf("creating client: %v", err)
	}
	return client
}

func TestCreateClient_AssignsID(t *testing.T) {
	db := newTestDB(t)
	coach := createTestCoach(t, db, "c@x.com")

	client := createTestClient(t, db, coach.ID, "Jane Doe")
	if client.ID == 0 {
		t.Error("expected client to have a non-zero id")
	}

	found, err := db.GetClientByID(context.Background(), client.ID)
	if err != nil {
		t.Fatalf("GetClientByID() error = %v", err)
	}
	if found.Name != "Jane Doe" {
		t.Errorf("Name = %q, want %q", found.Name, "Jane Doe")
	}
	if found.MealPlanURL != "" || found.MealPlanGeneratedAt != nil {
		t.Error("new client should have no meal plan pointer")
	}
}

func TestSetPlanPointer_WritesPointerAndTimestamps(t *testing.T) {
	db := newTestDB(t)
	coach := createTestCoach(t, db, "c@x.com")
	client := createTestClient(t, db, coach.ID, "Jane")

	generatedAt := time.Now().Truncate(time.Second)
	url := "http://store/plans/training-plan-1.pdf"

	if err := db.SetPlanPointer(context.Background(), client.ID, model.PlanTraining, url, generatedAt); err != nil {
		t.Fatalf("SetPlanPointer() error = %v", err)
	}

	found, err := db.GetClientByID(context.Background(), client.ID)
	if err != nil {
		t.Fatalf("GetClientByID() error = %v", err)
	}

	if found.TrainingPlanURL != url {
		t.Errorf("TrainingPlanURL = %q, want %q", found.TrainingPlanURL, url)
	}
	if found.TrainingPlanGeneratedAt == nil || !found.TrainingPlanGeneratedAt.Equal(generatedAt) {
		t.Errorf("TrainingPlanGeneratedAt = %v, want %v", found.TrainingPlanGeneratedAt, generatedAt)
	}
	if !found.UpdatedAt.Equal(generatedAt) {
		t.Errorf("UpdatedAt = %v, want advanced to %v", found.UpdatedAt, generatedAt)
	}

	// The other kind's pointer is untouched.
	if found.MealPlanURL != "" || found.MealPlanGeneratedAt != nil {
		t.Error("meal plan pointer should be unaffected by a training plan write")
	}
}

func TestSetPlanPointer_OverwritesInPlace(t *testing.T) {
	db := newTestDB(t)
	coach := createTestCoach(t, db, "c@x.com")
	client := createTestClient(t, db, coach.ID, "Jane")
	ctx := context.Background()

	url := "http://store/plans/meal-plan-1.pdf"
	first := time.Now().Add(-time.Hour).Truncate(time.Second)
	second := time.Now().Truncate(time.Second)

	if err := db.SetPlanPointer(ctx, client.ID, model.PlanMeal, url, first); err != nil {
		t.Fatalf("first SetPlanPointer() error = %v", err)
	}
	if err := db.SetPlanPointer(ctx, client.ID, model.PlanMeal, url, second); err != nil {
		t.Fatalf("second SetPlanPointer() error = %v", err)
	}

	found, _ := db.GetClientByID(ctx, client.ID)
	if found.MealPlanURL != url {
		t.Errorf("MealPlanURL = %q, want stable %q", found.MealPlanURL, url)
	}
	if !found.MealPlanGeneratedAt.Equal(second) {
		t.Errorf("MealPlanGeneratedAt = %v, want %v", found.MealPlanGeneratedAt, second)
	}
}

func TestUpdateClient_DoesNotTouchPointers(t *testing.T) {
	db := newTestDB(t)
	coach := createTestCoach(t, db, "c@x.com")
	client := createTestClient(t, db, coach.ID, "Jane")
	ctx := context.Background()

	generatedAt := time.Now().Truncate(time.Second)
	url := "http://store/plans/meal-plan-1.pdf"
	if err := db.SetPlanPointer(ctx, client.ID, model.PlanMeal, url, generatedAt); err != nil {
		t.Fatalf("SetPlanPointer() error = %v", err)
	}

	client.Name = "Jane Renamed"
	if err := db.UpdateClient(ctx, client); err != nil {
		t.Fatalf("UpdateClient() error = %v", err)
	}

	found, _ := db.GetClientByID(ctx, client.ID)
	if found.Name != "Jane Renamed" {
		t.Errorf("Name = %q, want %q", found.Name, "Jane Renamed")
	}
	if found.MealPlanURL != url || !found.MealPlanGeneratedAt.Equal(generatedAt) {
		t.Error("profile edit must not touch the plan pointer")
	}
}

func TestSoftDeleteClient_HidesRecord(t *testing.T) {
	db := newTestDB(t)
	coach := createTestCoach(t, db, "c@x.com")
	client := createTestClient(t, db, coach.ID, "Jane")
	ctx := context.Background()

	if err := db.SoftDeleteClient(ctx, client.ID); err != nil {
		t.Fatalf("SoftDeleteClient() error = %v", err)
	}

	_, err := db.GetClientByID(ctx, client.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("after soft delete: error = %v, want ErrNotFound", err)
	}

	// A pointer write against a deleted client must also miss.
	err = db.SetPlanPointer(ctx, client.ID, model.PlanMeal, "http://x", time.Now())
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("SetPlanPointer on deleted client: error = %v, want ErrNotFound", err)
	}

	clients, err := db.ListClients(ctx, coach.ID, repository.ListOptions{})
	if err != nil {
		t.Fatalf("ListClients() error = %v", err)
	}
	if len(clients) != 0 {
		t.Errorf("ListClients() returned %d rows, want 0 after soft delete", len(clients))
	}
}

func TestListClients_ScopedToCoach(t *testing.T) {
	db := newTestDB(t)
	coachA := createTestCoach(t, db, "a@x.com")
	coachB := createTestCoach(t, db, "b@x.com")
	createTestClient(t, db, coachA.ID, "Mine")
	createTestClient(t, db, coachB.ID, "Theirs")

	clients, err := db.ListClients(context.Background(), coachA.ID, repository.ListOptions{})
	if err != nil {
		t.Fatalf("ListClients() error = %v", err)
	}
	if len(clients) != 1 || clients[0].Name != "Mine" {
		t.Errorf("ListClients() = %+v, want only coach A's client", clients)
	}
}
