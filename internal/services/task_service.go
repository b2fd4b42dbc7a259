package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tasknest/tasknest-backend/internal/apperrors"
	"github.com/tasknest/tasknest-backend/internal/dto"
	"github.com/tasknest/tasknest-backend/internal/models"
	"github.com/tasknest/tasknest-backend/internal/storage"
)

const dueDateLayout = "2006-01-02"

// attachmentFolder is the blob store folder for task uploads.
const attachmentFolder = "task_files"

// TaskService owns the task mutation lifecycle: write-time validation,
// assignment-set reconciliation and attachment creation. Object-level
// permission checks happen in the caller before any mutating method runs.
type TaskService struct {
	db    *gorm.DB
	blobs storage.BlobStore
}

func NewTaskService(db *gorm.DB, blobs storage.BlobStore) *TaskService {
	return &TaskService{db: db, blobs: blobs}
}

// List returns all tasks with their category preloaded, ordered by due date.
func (s *TaskService) List() ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.Preload("Category").
		Order("due_date ASC, created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

// Get loads a task with the full detail shape: category, assigned users and
// attachments.
func (s *TaskService) Get(id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := s.db.Preload("Category").
		Preload("AssignedUsers").
		Preload("Attachments").
		First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

// Create validates and persists a new task with creator = actorID. The task
// row, its assignment rows and its attachment rows are written in one
// transaction; any blob upload failure aborts the whole create with an
// UploadError and rolls the transaction back. Already-uploaded blobs are not
// reclaimed (the blob store is outside the transaction).
func (s *TaskService) Create(req *dto.CreateTaskRequest, files []storage.FileBlob, actorID uuid.UUID) (*models.Task, error) {
	v := apperrors.NewValidation()

	if req.Title == "" {
		v.AddField("title", "Title is required.")
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	} else if !models.ValidPriority(priority) {
		v.AddField("priority", "Priority must be one of: low, medium, high.")
	}

	status := req.Status
	if status == "" {
		status = models.StatusPending
	} else if !models.ValidStatus(status) {
		v.AddField("status", "Status must be one of: pending, in_progress, done.")
	}

	dueDate := s.validateDueDate(req.DueDate, v)
	categoryID := s.validateCategory(req.CategoryID, v)

	var assignees []models.User
	if req.AssignedUserIDs != nil {
		assignees = s.validateAssignees(*req.AssignedUserIDs, v)
	}

	if err := v.ErrOrNil(); err != nil {
		return nil, err
	}

	task := models.Task{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		Priority:    priority,
		Status:      status,
		CategoryID:  categoryID,
		CreatedByID: &actorID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&task).Error; err != nil {
			return err
		}
		if len(assignees) > 0 {
			if err := tx.Model(&task).Association("AssignedUsers").Append(assignees); err != nil {
				return err
			}
		}
		return s.createAttachments(tx, task.ID, files)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(task.ID)
}

// Update merges the provided fields over the stored task. The due-date
// invariant is checked only when the due date itself is being modified. The
// assignment set is reconciled only when AssignedUserIDs is present: nil
// preserves the current set, an explicit empty list clears it. New
// attachments are appended; existing ones are never removed here.
func (s *TaskService) Update(task *models.Task, req *dto.UpdateTaskRequest, files []storage.FileBlob) (*models.Task, error) {
	v := apperrors.NewValidation()

	if req.Title != nil {
		if *req.Title == "" {
			v.AddField("title", "Title is required.")
		} else {
			task.Title = *req.Title
		}
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		if !models.ValidPriority(*req.Priority) {
			v.AddField("priority", "Priority must be one of: low, medium, high.")
		} else {
			task.Priority = *req.Priority
		}
	}
	if req.Status != nil {
		if !models.ValidStatus(*req.Status) {
			v.AddField("status", "Status must be one of: pending, in_progress, done.")
		} else {
			task.Status = *req.Status
		}
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			task.DueDate = nil
		} else if due := s.validateDueDate(req.DueDate, v); due != nil {
			task.DueDate = due
		}
	}
	if req.CategoryID != nil {
		task.CategoryID = s.validateCategory(req.CategoryID, v)
	}

	var assignees []models.User
	reconcile := req.AssignedUserIDs != nil
	if reconcile {
		assignees = s.validateAssignees(*req.AssignedUserIDs, v)
	}

	if err := v.ErrOrNil(); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(task).Error; err != nil {
			return err
		}
		if reconcile {
			if err := tx.Model(task).Association("AssignedUsers").Replace(assignees); err != nil {
				return err
			}
		}
		return s.createAttachments(tx, task.ID, files)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(task.ID)
}

// Delete removes the task and its attachment records. Assignment rows go with
// it; the assigned users themselves are untouched.
func (s *TaskService) Delete(task *models.Task) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", task.ID).Delete(&models.Attachment{}).Error; err != nil {
			return err
		}
		if err := tx.Model(task).Association("AssignedUsers").Clear(); err != nil {
			return err
		}
		return tx.Delete(task).Error
	})
}

// createAttachments uploads each blob in input order and records an
// Attachment row per upload. The first failed upload aborts everything.
func (s *TaskService) createAttachments(tx *gorm.DB, taskID uuid.UUID, files []storage.FileBlob) error {
	for _, blob := range files {
		url, err := s.blobs.Upload(blob.Data, attachmentFolder)
		if err != nil {
			return &apperrors.UploadError{FileName: blob.Name, Err: err}
		}
		att := models.Attachment{
			ID:       uuid.New(),
			TaskID:   taskID,
			FileName: blob.Name,
			FileURL:  url,
		}
		if err := tx.Create(&att).Error; err != nil {
			return err
		}
	}
	return nil
}

// validateDueDate parses and checks the write-time invariant: a provided due
// date must not be strictly before today (UTC). The check applies only at
// write time; stored past dates are untouched.
func (s *TaskService) validateDueDate(raw *string, v *apperrors.ValidationError) *time.Time {
	if raw == nil || *raw == "" {
		return nil
	}
	due, err := time.Parse(dueDateLayout, *raw)
	if err != nil {
		v.AddField("due_date", "Due date must be in YYYY-MM-DD format.")
		return nil
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if due.Before(today) {
		v.AddObject("Due date cannot be in the past.")
		return nil
	}
	return &due
}

func (s *TaskService) validateCategory(id *uuid.UUID, v *apperrors.ValidationError) *uuid.UUID {
	if id == nil {
		return nil
	}
	var count int64
	s.db.Model(&models.Category{}).Where("id = ?", *id).Count(&count)
	if count == 0 {
		v.AddField("category", "Invalid category.")
		return nil
	}
	return id
}

func (s *TaskService) validateAssignees(ids []uuid.UUID, v *apperrors.ValidationError) []models.User {
	if len(ids) == 0 {
		return nil
	}

	unique := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}

	var users []models.User
	s.db.Where("id IN ?", ids).Find(&users)
	if len(users) != len(unique) {
		v.AddField("assigned_users", "One or more assigned users do not exist.")
		return nil
	}
	return users
}
