package postgres

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"taskboard/domain/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		ID:        uuid.New(),
		Email:     email,
		CreatedAt: time.Now(),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user %s: %v", email, err)
	}
	return user
}

func createTestTask(t *testing.T, db *gorm.DB, owner *models.User, title string, createdAt time.Time) *models.Task {
	t.Helper()

	task := &models.Task{
		ID:          uuid.New(),
		Title:       title,
		Description: "test description",
		Status:      models.StatusPending,
		OwnerID:     owner.ID,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	if err := db.Omit("Owner").Create(task).Error; err != nil {
		t.Fatalf("failed to create test task %s: %v", title, err)
	}
	return task
}

func shareTestTask(t *testing.T, db *gorm.DB, task *models.Task, user *models.User) {
	t.Helper()

	share := &models.TaskShare{
		ID:        uuid.New(),
		TaskID:    task.ID,
		UserID:    user.ID,
		CreatedAt: time.Now(),
	}
	if err := db.Create(share).Error; err != nil {
		t.Fatalf("failed to create test share: %v", err)
	}
}

func countShares(t *testing.T, db *gorm.DB, taskID uuid.UUID) int64 {
	t.Helper()

	var count int64
	if err := db.Model(&models.TaskShare{}).Where("task_id = ?", taskID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count shares: %v", err)
	}
	return count
}
