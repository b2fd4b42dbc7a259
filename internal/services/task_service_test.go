package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tasknest/tasknest-backend/internal/apperrors"
	"github.com/tasknest/tasknest-backend/internal/dto"
	"github.com/tasknest/tasknest-backend/internal/models"
	"github.com/tasknest/tasknest-backend/internal/storage"
)

func newTaskEnv(t *testing.T) (*gorm.DB, *TaskService, *fakeBlobStore) {
	t.Helper()
	db := setupTestDB(t)
	blobs := newFakeBlobStore()
	return db, NewTaskService(db, blobs), blobs
}

func dateStr(offsetDays int) *string {
	s := time.Now().UTC().AddDate(0, 0, offsetDays).Format("2006-01-02")
	return &s
}

func strPtr(s string) *string { return &s }

func idsPtr(ids ...uuid.UUID) *[]uuid.UUID { return &ids }

func TestCreateTaskDefaults(t *testing.T) {
	db, svc, _ := newTaskEnv(t)
	actor := createTestUser(t, db, "alice")

	task, err := svc.Create(&dto.CreateTaskRequest{
		Title:       "Write report",
		Description: "Quarterly summary",
	}, nil, actor.ID)
	require.NoError(t, err)

	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.Equal(t, models.StatusPending, task.Status)
	require.NotNil(t, task.CreatedByID)
	assert.Equal(t, actor.ID, *task.CreatedByID)
	assert.Empty(t, task.AssignedUsers)
	assert.Nil(t, task.DueDate)
}

func TestCreateTaskDueYesterdayFails(t *testing.T) {
	db, svc, _ := newTaskEnv(t)
	actor := createTestUser(t, db, "alice")

	_, err := svc.Create(&dto.CreateTaskRequest{
		Title:   "Too late",
		DueDate: dateStr(-1),
	}, nil, actor.ID)

	var v *apperrors.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "Due date cannot be in the past.", v.Fields[apperrors.NonFieldKey])

	var count int64
	db.Model(&models.Task{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestCreateTaskDueTodayOrLaterSucceeds(t *testing.T) {
	db, svc, _ := newTaskEnv(t)
	actor := createTestUser(t, db, "alice")

	for _, offset := range []int{0, 1, 30} {
		task, err := svc.Create(&dto.CreateTaskRequest{
			Title:   "On time",
			DueDate: dateStr(offset),
		}, nil, actor.ID)
		require.NoError(t, err)
		require.NotNil(t, task.DueDate)
		assert.False(t, task.IsOverdue(time.Now()))
	}
}

func TestCreateTaskInvalidFieldsCollected(t *testing.T) {
	db, svc, _ := newTaskEnv(t)
	actor := createTestUser(t, db, "alice")
	bogus := uuid.New()

	_, err := svc.Create(&dto.CreateTaskRequest{
		Priority:        "urgent",
		Status:          "archived",
		DueDate:         strPtr("not-a-date"),
		CategoryID:      &bogus,
		AssignedUserIDs: idsPtr(uuid.New()),
	}, nil, actor.ID)

	var v *apperrors.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Contains(t, v.Fields, "title")
	assert.Contains(t, v.Fields, "priority")
	assert.Contains(t, v.Fields, "status")
	assert.Contains(t, v.Fields, "due_date")
	assert.Contains(t, v.Fields, "category")
	assert.Contains(t, v.Fields, "assigned_users")
}

func TestCreateTaskWithCategoryAndAssignees(t *testing.T) {
	db, svc, _ := newTaskEnv(t)
	actor := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	category := models.Category{ID: uuid.New(), Name: "Development"}
	require.NoError(t, db.Create(&category).Error)

	task, err := svc.Create(&dto.CreateTaskRequest{
		Title:           "Pair task",
		CategoryID:      &category.ID,
		AssignedUserIDs: idsPtr(actor.ID, bob.ID),
	}, nil, actor.ID)
	require.NoError(t, err)

	require.NotNil(t, task.Category)
	assert.Equal(t, "Development", task.Category.Name)
	assert.Len(t, task.AssignedUsers, 2)
	assert.True(t, task.IsAssignedTo(actor.ID))
	assert.True(t, task.IsAssignedTo(bob.ID))
}

func TestUpdateAssignmentOmittedVsEmpty(t *testing.T) {
	db, svc, _ := newTaskEnv(t)
	actor := createTestUser(t, db, "alice")

	task, err := svc.Create(&dto.CreateTaskRequest{
		Title:           "Mine",
		AssignedUserIDs: idsPtr(actor.ID),
	}, nil, actor.ID)
	require.NoError(t, err)

	// Omitted set: assignment untouched.
	task, err = svc.Update(task, &dto.UpdateTaskRequest{Title: strPtr("Still mine")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Still mine", task.Title)
	assert.Len(t, task.AssignedUsers, 1)

	// Explicit empty set: assignment cleared.
	task, err = svc.Update(task, &dto.UpdateTaskRequest{AssignedUserIDs: idsPtr()}, nil)
	require.NoError(t, err)
	assert.Empty(t, task.AssignedUsers)
}

func TestUpdateDueDateInPastFails(t *testing.T) {
	db, svc, _ := newTaskEnv(t)
	actor := createTestUser(t, db, "alice")

	task, err := svc.Create(&dto.CreateTaskRequest{Title: "Flexible"}, nil, actor.ID)
	require.NoError(t, err)

	_, err = svc.Update(task, &dto.UpdateTaskRequest{DueDate: dateStr(-2)}, nil)
	var v *apperrors.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "Due date cannot be in the past.", v.Fields[apperrors.NonFieldKey])
}

func TestUpdateLeavesStoredPastDueDateAlone(t *testing.T) {
	db, svc, _ := newTaskEnv(t)

	// A task can legitimately hold a past due date (it became overdue after
	// being written). Only writes that modify the due date are checked.
	past := time.Now().UTC().AddDate(0, 0, -5).Truncate(24 * time.Hour)
	stale := models.Task{
		ID:       uuid.New(),
		Title:    "Old",
		DueDate:  &past,
		Priority: models.PriorityLow,
		Status:   models.StatusPending,
	}
	require.NoError(t, db.Create(&stale).Error)

	loaded, err := svc.Get(stale.ID)
	require.NoError(t, err)
	require.True(t, loaded.IsOverdue(time.Now()))

	updated, err := svc.Update(loaded, &dto.UpdateTaskRequest{Title: strPtr("Old but renamed")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Old but renamed", updated.Title)
	require.NotNil(t, updated.DueDate)
	assert.True(t, updated.IsOverdue(time.Now()))
}

func TestCreateTaskWithAttachments(t *testing.T) {
	db, svc, blobs := newTaskEnv(t)
	actor := createTestUser(t, db, "alice")

	files := []storage.FileBlob{
		{Name: "brief.pdf", Data: []byte("pdf bytes")},
		{Name: "mockup.png", Data: []byte("png bytes")},
	}

	task, err := svc.Create(&dto.CreateTaskRequest{Title: "With files"}, files, actor.ID)
	require.NoError(t, err)

	require.Len(t, task.Attachments, 2)
	assert.Equal(t, "brief.pdf", task.Attachments[0].FileName)
	assert.Equal(t, "mockup.png", task.Attachments[1].FileName)
	assert.Equal(t, blobs.uploads[0], task.Attachments[0].FileURL)
	assert.Equal(t, blobs.uploads[1], task.Attachments[1].FileURL)
}

func TestCreateTaskUploadFailureRollsBack(t *testing.T) {
	db, svc, blobs := newTaskEnv(t)
	actor := createTestUser(t, db, "alice")
	blobs.failAfter = 1

	files := []storage.FileBlob{
		{Name: "ok.txt", Data: []byte("fine")},
		{Name: "doomed.txt", Data: []byte("nope")},
	}

	_, err := svc.Create(&dto.CreateTaskRequest{Title: "Half uploaded"}, files, actor.ID)

	var up *apperrors.UploadError
	require.ErrorAs(t, err, &up)
	assert.Equal(t, "doomed.txt", up.FileName)

	// The transaction rolled back: no task and no attachment rows survive.
	var taskCount, attCount int64
	db.Model(&models.Task{}).Count(&taskCount)
	db.Model(&models.Attachment{}).Count(&attCount)
	assert.EqualValues(t, 0, taskCount)
	assert.EqualValues(t, 0, attCount)
}

func TestUpdateAppendsAttachments(t *testing.T) {
	db, svc, _ := newTaskEnv(t)
	actor := createTestUser(t, db, "alice")

	task, err := svc.Create(&dto.CreateTaskRequest{Title: "Growing"},
		[]storage.FileBlob{{Name: "first.txt", Data: []byte("1")}}, actor.ID)
	require.NoError(t, err)

	task, err = svc.Update(task, &dto.UpdateTaskRequest{},
		[]storage.FileBlob{{Name: "second.txt", Data: []byte("2")}})
	require.NoError(t, err)

	require.Len(t, task.Attachments, 2)
	names := []string{task.Attachments[0].FileName, task.Attachments[1].FileName}
	assert.Contains(t, names, "first.txt")
	assert.Contains(t, names, "second.txt")
}

func TestDeleteTaskCascadesAttachments(t *testing.T) {
	db, svc, _ := newTaskEnv(t)
	actor := createTestUser(t, db, "alice")

	task, err := svc.Create(&dto.CreateTaskRequest{
		Title:           "Doomed",
		AssignedUserIDs: idsPtr(actor.ID),
	}, []storage.FileBlob{{Name: "file.txt", Data: []byte("x")}}, actor.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(task))

	_, err = svc.Get(task.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	var attCount int64
	db.Model(&models.Attachment{}).Count(&attCount)
	assert.EqualValues(t, 0, attCount)

	// The assigned user survives the task.
	var userCount int64
	db.Model(&models.User{}).Where("id = ?", actor.ID).Count(&userCount)
	assert.EqualValues(t, 1, userCount)
}

func TestGetUnknownTask(t *testing.T) {
	_, svc, _ := newTaskEnv(t)
	_, err := svc.Get(uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
