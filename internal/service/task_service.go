package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskboard-api/internal/authz"
	"taskboard-api/internal/domain"
	"taskboard-api/internal/dto"
	"taskboard-api/internal/metrics"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/response"
)

// TaskService defines the interface for task and assignment business logic
type TaskService interface {
	GetTasks(ctx context.Context, userID, boardID, cardID uuid.UUID) ([]*dto.TaskResponse, error)
	CreateTask(ctx context.Context, userID, boardID, cardID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	GetTask(ctx context.Context, userID, boardID, cardID, taskID uuid.UUID) (*dto.TaskResponse, error)
	UpdateTask(ctx context.Context, userID, boardID, cardID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	DeleteTask(ctx context.Context, userID, boardID, cardID, taskID uuid.UUID) error
	MoveTask(ctx context.Context, userID, boardID, cardID, taskID uuid.UUID, req *dto.MoveTaskRequest) (*dto.MoveTaskResponse, error)
	AssignTask(ctx context.Context, userID, boardID, cardID, taskID uuid.UUID, req *dto.AssignTaskRequest) (*dto.AssignmentResponse, error)
	GetAssignments(ctx context.Context, userID, boardID, cardID, taskID uuid.UUID) ([]*dto.AssignmentResponse, error)
	UnassignTask(ctx context.Context, userID, boardID, cardID, taskID, memberID uuid.UUID) error
}

type taskServiceImpl struct {
	taskRepo repository.TaskRepository
	guard    authz.Guard
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewTaskService creates a new instance of TaskService
func NewTaskService(taskRepo repository.TaskRepository, guard authz.Guard, m *metrics.Metrics, logger *zap.Logger) TaskService {
	return &taskServiceImpl{
		taskRepo: taskRepo,
		guard:    guard,
		metrics:  m,
		logger:   logger,
	}
}

func (s *taskServiceImpl) GetTasks(ctx context.Context, userID, boardID, cardID uuid.UUID) ([]*dto.TaskResponse, error) {
	if _, err := s.guard.Authorize(ctx, userID, authz.Resource{BoardID: boardID, CardID: cardID}, authz.ReadCard); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.FindByCardID(ctx, cardID)
	if err != nil {
		return nil, internalError("Failed to fetch tasks", err)
	}

	responses := make([]*dto.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		responses = append(responses, toTaskResponse(t))
	}
	return responses, nil
}

// CreateTask adds a task to the card; assignedMembers must already belong to the board
func (s *taskServiceImpl) CreateTask(ctx context.Context, userID, boardID, cardID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	snap, err := s.guard.Authorize(ctx, userID, authz.Resource{BoardID: boardID, CardID: cardID}, authz.CreateTask)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, response.NewAppError(response.ErrCodeValidation, "Task title is required", "")
	}

	status := domain.TaskStatusIcebox
	if req.Status != "" {
		status = domain.TaskStatus(req.Status)
		if !status.IsValid() {
			return nil, response.NewAppError(response.ErrCodeValidation, "Invalid task status", req.Status)
		}
	}
	priority := domain.TaskPriorityMedium
	if req.Priority != "" {
		priority = domain.TaskPriority(req.Priority)
		if !priority.IsValid() {
			return nil, response.NewAppError(response.ErrCodeValidation, "Invalid task priority", req.Priority)
		}
	}

	task := &domain.Task{
		CardID:      cardID,
		BoardID:     boardID,
		Title:       title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		Deadline:    req.Deadline,
		OwnerID:     userID,
	}
	for _, memberID := range dedupeIDs(req.AssignedMembers) {
		if !snap.Board.HasMember(memberID) {
			return nil, response.NewAppError(response.ErrCodeValidation, "Assigned member is not part of this board", memberID.String())
		}
		task.Assignees = append(task.Assignees, domain.TaskAssignee{UserID: memberID})
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, internalError("Failed to create task", err)
	}

	if s.metrics != nil {
		s.metrics.IncrementTaskCreated()
	}
	return toTaskResponse(task), nil
}

func (s *taskServiceImpl) GetTask(ctx context.Context, userID, boardID, cardID, taskID uuid.UUID) (*dto.TaskResponse, error) {
	snap, err := s.guard.Authorize(ctx, userID, taskResource(boardID, cardID, taskID), authz.ReadTask)
	if err != nil {
		return nil, err
	}
	return toTaskResponse(snap.Task), nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, userID, boardID, cardID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	snap, err := s.guard.Authorize(ctx, userID, taskResource(boardID, cardID, taskID), authz.UpdateTask)
	if err != nil {
		return nil, err
	}

	task := snap.Task
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, response.NewAppError(response.ErrCodeValidation, "Task title cannot be empty", "")
		}
		task.Title = title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		if !status.IsValid() {
			return nil, response.NewAppError(response.ErrCodeValidation, "Invalid task status", *req.Status)
		}
		task.Status = status
	}
	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		if !priority.IsValid() {
			return nil, response.NewAppError(response.ErrCodeValidation, "Invalid task priority", *req.Priority)
		}
		task.Priority = priority
	}
	if req.Deadline.Set {
		task.Deadline = req.Deadline.Value
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, internalError("Failed to update task", err)
	}
	return toTaskResponse(task), nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, userID, boardID, cardID, taskID uuid.UUID) error {
	snap, err := s.guard.Authorize(ctx, userID, taskResource(boardID, cardID, taskID), authz.DeleteTask)
	if err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, snap.Task); err != nil {
		return lookupError(err, "Task not found", "Failed to delete task")
	}
	return nil
}

// MoveTask changes only the status. Any status may move to any other.
func (s *taskServiceImpl) MoveTask(ctx context.Context, userID, boardID, cardID, taskID uuid.UUID, req *dto.MoveTaskRequest) (*dto.MoveTaskResponse, error) {
	to := domain.TaskStatus(req.Status)
	if !to.IsValid() {
		return nil, response.NewAppError(response.ErrCodeValidation, "Invalid task status", req.Status)
	}

	snap, err := s.guard.Authorize(ctx, userID, taskResource(boardID, cardID, taskID), authz.MoveTask)
	if err != nil {
		return nil, err
	}

	task := snap.Task
	from := task.Status
	if err := s.taskRepo.UpdateStatus(ctx, task.ID, to); err != nil {
		return nil, lookupError(err, "Task not found", "Failed to move task")
	}
	task.Status = to

	if s.metrics != nil {
		s.metrics.RecordTaskMoved(string(to))
	}
	s.logger.Debug("Task moved",
		zap.String("task_id", task.ID.String()),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)

	return &dto.MoveTaskResponse{
		Task:       toTaskResponse(task),
		FromStatus: string(from),
		ToStatus:   string(to),
	}, nil
}

// AssignTask adds a board member to the task. Assigning twice is a no-op.
func (s *taskServiceImpl) AssignTask(ctx context.Context, userID, boardID, cardID, taskID uuid.UUID, req *dto.AssignTaskRequest) (*dto.AssignmentResponse, error) {
	res := taskResource(boardID, cardID, taskID)
	res.MemberID = req.MemberID
	if _, err := s.guard.Authorize(ctx, userID, res, authz.AssignTask); err != nil {
		return nil, err
	}

	if err := s.taskRepo.AddAssignee(ctx, taskID, req.MemberID); err != nil {
		return nil, internalError("Failed to assign member", err)
	}
	return &dto.AssignmentResponse{TaskID: taskID, MemberID: req.MemberID}, nil
}

func (s *taskServiceImpl) GetAssignments(ctx context.Context, userID, boardID, cardID, taskID uuid.UUID) ([]*dto.AssignmentResponse, error) {
	if _, err := s.guard.Authorize(ctx, userID, taskResource(boardID, cardID, taskID), authz.ReadTask); err != nil {
		return nil, err
	}

	assignees, err := s.taskRepo.FindAssignees(ctx, taskID)
	if err != nil {
		return nil, internalError("Failed to fetch assignments", err)
	}

	responses := make([]*dto.AssignmentResponse, 0, len(assignees))
	for _, a := range assignees {
		responses = append(responses, &dto.AssignmentResponse{TaskID: a.TaskID, MemberID: a.UserID})
	}
	return responses, nil
}

// UnassignTask removes memberID from the task. Removing an absent assignee succeeds.
func (s *taskServiceImpl) UnassignTask(ctx context.Context, userID, boardID, cardID, taskID, memberID uuid.UUID) error {
	if _, err := s.guard.Authorize(ctx, userID, taskResource(boardID, cardID, taskID), authz.ReadTask); err != nil {
		return err
	}

	if err := s.taskRepo.RemoveAssignee(ctx, taskID, memberID); err != nil {
		return internalError("Failed to unassign member", err)
	}
	return nil
}

func taskResource(boardID, cardID, taskID uuid.UUID) authz.Resource {
	return authz.Resource{BoardID: boardID, CardID: cardID, TaskID: taskID}
}
