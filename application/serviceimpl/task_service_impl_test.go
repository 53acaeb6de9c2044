package serviceimpl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard/domain/apperrors"
	"taskboard/domain/dto"
	"taskboard/domain/models"
	"taskboard/domain/ports"
	"taskboard/domain/services"
	"taskboard/infrastructure/postgres"
)

func setupTaskService(t *testing.T) (*gorm.DB, *fakePublisher, services.TaskService) {
	t.Helper()

	db := setupTestDB(t)
	events := &fakePublisher{}
	svc := NewTaskService(postgres.NewTaskRepository(db), events)
	return db, events, svc
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{ID: uuid.New(), Email: email, CreatedAt: time.Now()}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", email, err)
	}
	return user
}

// Two users share a board: the owner keeps full control while the grantee
// only ever reads.
func TestTaskServiceSharingLifecycle(t *testing.T) {
	db, events, svc := setupTaskService(t)
	ctx := context.Background()

	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")

	task, err := svc.CreateTask(ctx, alice.ID, &dto.CreateTaskRequest{Title: "write report", Description: "quarterly numbers"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if task.Status != models.StatusPending {
		t.Errorf("expected new task to be pending, got %s", task.Status)
	}

	// Invisible to bob until shared.
	visible, err := svc.ListTasks(ctx, bob.ID, models.FilterAll)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(visible) != 0 {
		t.Fatalf("expected no tasks for bob before sharing, got %d", len(visible))
	}

	if err := svc.ShareTask(ctx, task.ID, alice.ID, bob.Email); err != nil {
		t.Fatalf("ShareTask failed: %v", err)
	}

	visible, err = svc.ListTasks(ctx, bob.ID, models.FilterShared)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(visible) != 1 || visible[0].ID != task.ID {
		t.Fatalf("expected bob to see the shared task, got %d tasks", len(visible))
	}

	// Visibility never grants mutation.
	title := "bob was here"
	if _, err := svc.UpdateTask(ctx, task.ID, bob.ID, models.TaskUpdate{Title: &title}); !errors.Is(err, apperrors.ErrNotFoundOrUnauthorized) {
		t.Errorf("expected ErrNotFoundOrUnauthorized for grantee update, got %v", err)
	}
	if err := svc.DeleteTask(ctx, task.ID, bob.ID); !errors.Is(err, apperrors.ErrNotFoundOrUnauthorized) {
		t.Errorf("expected ErrNotFoundOrUnauthorized for grantee delete, got %v", err)
	}

	status := models.StatusInProgress
	updated, err := svc.UpdateTask(ctx, task.ID, alice.ID, models.TaskUpdate{Status: &status})
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Status != models.StatusInProgress {
		t.Errorf("expected in_progress, got %s", updated.Status)
	}
	if updated.Title != "write report" {
		t.Errorf("partial update clobbered title: %q", updated.Title)
	}

	if err := svc.DeleteTask(ctx, task.ID, alice.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	visible, err = svc.ListTasks(ctx, bob.ID, models.FilterAll)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(visible) != 0 {
		t.Errorf("expected the grant to vanish with the task, got %d tasks", len(visible))
	}

	want := []string{ports.TaskCreated, ports.TaskShared, ports.TaskUpdated, ports.TaskDeleted}
	got := events.types()
	if len(got) != len(want) {
		t.Fatalf("expected events %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestTaskServiceShareUnknownEmail(t *testing.T) {
	db, events, svc := setupTaskService(t)
	ctx := context.Background()

	alice := seedUser(t, db, "alice@example.com")
	task, err := svc.CreateTask(ctx, alice.ID, &dto.CreateTaskRequest{Title: "solo task"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	if err := svc.ShareTask(ctx, task.ID, alice.ID, "nobody@example.com"); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}

	for _, typ := range events.types() {
		if typ == ports.TaskShared {
			t.Error("failed share still published an event")
		}
	}
}

func TestTaskServiceNilPublisher(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTaskService(postgres.NewTaskRepository(db), nil)
	ctx := context.Background()

	alice := seedUser(t, db, "alice@example.com")
	if _, err := svc.CreateTask(ctx, alice.ID, &dto.CreateTaskRequest{Title: "quiet task"}); err != nil {
		t.Fatalf("CreateTask without a publisher failed: %v", err)
	}
}
