package handlers

import (
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/tasknest/tasknest-backend/internal/dto"
	"github.com/tasknest/tasknest-backend/internal/middleware"
	"github.com/tasknest/tasknest-backend/internal/permissions"
	"github.com/tasknest/tasknest-backend/internal/services"
	"github.com/tasknest/tasknest-backend/internal/storage"
)

// uploadFilesField is the multipart field name for task attachments.
const uploadFilesField = "upload_files"

type TaskHandler struct {
	taskService *services.TaskService
	policy      permissions.Policy
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		policy:      permissions.AssigneeOrReadOnly{},
	}
}

func (h *TaskHandler) List(c *fiber.Ctx) error {
	tasks, err := h.taskService.List()
	if err != nil {
		return respondError(c, err)
	}

	now := time.Now()
	resp := make([]dto.TaskListItem, 0, len(tasks))
	for i := range tasks {
		resp = append(resp, dto.NewTaskListItem(&tasks[i], now))
	}
	return c.JSON(resp)
}

func (h *TaskHandler) Get(c *fiber.Ctx) error {
	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid task ID")
	}

	task, err := h.taskService.Get(taskID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.NewTaskDetail(task, time.Now()))
}

func (h *TaskHandler) Create(c *fiber.Ctx) error {
	actorID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateTaskRequest
	var files []storage.FileBlob

	if isMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			return badRequest(c, "Invalid multipart form")
		}
		update, parseErr := taskFormFields(form)
		if parseErr != "" {
			return badRequest(c, parseErr)
		}
		req = createFromUpdate(update)
		if files, err = readUploads(form); err != nil {
			return badRequest(c, "Could not read uploaded files")
		}
	} else if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	task, err := h.taskService.Create(&req, files, actorID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewTaskDetail(task, time.Now()))
}

func (h *TaskHandler) Update(c *fiber.Ctx) error {
	actorID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid task ID")
	}

	task, err := h.taskService.Get(taskID)
	if err != nil {
		return respondError(c, err)
	}

	if !h.policy.Allows(actorID, permissions.ActionWrite, task) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Only assigned users may modify this task",
		})
	}

	var req dto.UpdateTaskRequest
	var files []storage.FileBlob

	if isMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			return badRequest(c, "Invalid multipart form")
		}
		parsed, parseErr := taskFormFields(form)
		if parseErr != "" {
			return badRequest(c, parseErr)
		}
		req = parsed
		if files, err = readUploads(form); err != nil {
			return badRequest(c, "Could not read uploaded files")
		}
	} else if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	updated, err := h.taskService.Update(task, &req, files)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.NewTaskDetail(updated, time.Now()))
}

func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	actorID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid task ID")
	}

	task, err := h.taskService.Get(taskID)
	if err != nil {
		return respondError(c, err)
	}

	if !h.policy.Allows(actorID, permissions.ActionWrite, task) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Only assigned users may delete this task",
		})
	}

	if err := h.taskService.Delete(task); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm)
}

// taskFormFields maps multipart form values onto the pointer-based update
// shape, preserving the omitted/provided distinction: a field pointer is set
// only when the form carries that key. Returns a non-empty message on parse
// failure.
func taskFormFields(form *multipart.Form) (dto.UpdateTaskRequest, string) {
	var req dto.UpdateTaskRequest

	if vals, ok := form.Value["title"]; ok && len(vals) > 0 {
		req.Title = &vals[0]
	}
	if vals, ok := form.Value["description"]; ok && len(vals) > 0 {
		req.Description = &vals[0]
	}
	if vals, ok := form.Value["due_date"]; ok && len(vals) > 0 {
		req.DueDate = &vals[0]
	}
	if vals, ok := form.Value["priority"]; ok && len(vals) > 0 {
		req.Priority = &vals[0]
	}
	if vals, ok := form.Value["status"]; ok && len(vals) > 0 {
		req.Status = &vals[0]
	}
	if vals, ok := form.Value["category_id"]; ok && len(vals) > 0 {
		id, err := uuid.Parse(vals[0])
		if err != nil {
			return req, "Invalid category ID"
		}
		req.CategoryID = &id
	}
	if vals, ok := form.Value["assigned_user_ids"]; ok {
		ids := make([]uuid.UUID, 0, len(vals))
		for _, raw := range vals {
			if raw == "" {
				continue
			}
			id, err := uuid.Parse(raw)
			if err != nil {
				return req, "Invalid assigned user ID"
			}
			ids = append(ids, id)
		}
		req.AssignedUserIDs = &ids
	}

	return req, ""
}

func createFromUpdate(u dto.UpdateTaskRequest) dto.CreateTaskRequest {
	req := dto.CreateTaskRequest{
		DueDate:         u.DueDate,
		CategoryID:      u.CategoryID,
		AssignedUserIDs: u.AssignedUserIDs,
	}
	if u.Title != nil {
		req.Title = *u.Title
	}
	if u.Description != nil {
		req.Description = *u.Description
	}
	if u.Priority != nil {
		req.Priority = *u.Priority
	}
	if u.Status != nil {
		req.Status = *u.Status
	}
	return req
}

// readUploads drains the upload_files parts in their submitted order.
func readUploads(form *multipart.Form) ([]storage.FileBlob, error) {
	headers := form.File[uploadFilesField]
	blobs := make([]storage.FileBlob, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		blobs = append(blobs, storage.FileBlob{Name: header.Filename, Data: data})
	}
	return blobs, nil
}
