package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskboard-api/internal/dto"
	"taskboard-api/internal/response"
	"taskboard-api/internal/service"
)

type TaskHandler struct {
	taskService service.TaskService
	logger      *zap.Logger
}

func NewTaskHandler(taskService service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

var (
	boardParam = [2]string{"boardId", "board"}
	cardParam  = [2]string{"cardId", "card"}
	taskParam  = [2]string{"taskId", "task"}
)

// taskPath resolves user, board and card, plus the task when withTask is set
func taskPath(c *gin.Context, withTask bool) (userID uuid.UUID, ids []uuid.UUID, ok bool) {
	userID, ok = currentUserID(c)
	if !ok {
		return uuid.Nil, nil, false
	}
	pairs := [][2]string{boardParam, cardParam}
	if withTask {
		pairs = append(pairs, taskParam)
	}
	ids, ok = uuidParams(c, pairs...)
	return userID, ids, ok
}

// GetTasks godoc
// @Summary      Task 목록
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Param        cardId path string true "Card ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.TaskResponse}
// @Failure      403 {object} response.ErrorResponse "멤버가 아님"
// @Router       /boards/{boardId}/cards/{cardId}/tasks [get]
func (h *TaskHandler) GetTasks(c *gin.Context) {
	userID, ids, ok := taskPath(c, false)
	if !ok {
		return
	}

	tasks, err := h.taskService.GetTasks(c.Request.Context(), userID, ids[0], ids[1])
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, tasks)
}

// CreateTask godoc
// @Summary      Task 생성
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Param        cardId path string true "Card ID (UUID)"
// @Param        request body dto.CreateTaskRequest true "Task 생성 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.TaskResponse}
// @Failure      400 {object} response.ErrorResponse "잘못된 상태, 우선순위 또는 담당자"
// @Failure      403 {object} response.ErrorResponse "멤버가 아님"
// @Router       /boards/{boardId}/cards/{cardId}/tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ids, ok := taskPath(c, false)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), userID, ids[0], ids[1], &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, task)
}

// GetTask godoc
// @Summary      Task 조회
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Param        cardId path string true "Card ID (UUID)"
// @Param        taskId path string true "Task ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.TaskResponse}
// @Failure      400 {object} response.ErrorResponse "경로 불일치"
// @Failure      404 {object} response.ErrorResponse "Task를 찾을 수 없음"
// @Router       /boards/{boardId}/cards/{cardId}/tasks/{taskId} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, ids, ok := taskPath(c, true)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), userID, ids[0], ids[1], ids[2])
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, task)
}

// UpdateTask godoc
// @Summary      Task 수정
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Param        cardId path string true "Card ID (UUID)"
// @Param        taskId path string true "Task ID (UUID)"
// @Param        request body dto.UpdateTaskRequest true "수정할 필드"
// @Success      200 {object} response.SuccessResponse{data=dto.TaskResponse}
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Router       /boards/{boardId}/cards/{cardId}/tasks/{taskId} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ids, ok := taskPath(c, true)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), userID, ids[0], ids[1], ids[2], &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, task)
}

// DeleteTask godoc
// @Summary      Task 삭제
// @Tags         tasks
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Param        cardId path string true "Card ID (UUID)"
// @Param        taskId path string true "Task ID (UUID)"
// @Success      204 "삭제 성공"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Router       /boards/{boardId}/cards/{cardId}/tasks/{taskId} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ids, ok := taskPath(c, true)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), userID, ids[0], ids[1], ids[2]); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// MoveTask godoc
// @Summary      Task 상태 이동
// @Description  어떤 상태에서든 다른 상태로 이동할 수 있습니다
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Param        cardId path string true "Card ID (UUID)"
// @Param        taskId path string true "Task ID (UUID)"
// @Param        request body dto.MoveTaskRequest true "이동할 상태"
// @Success      200 {object} response.SuccessResponse{data=dto.MoveTaskResponse}
// @Failure      400 {object} response.ErrorResponse "잘못된 상태"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Router       /boards/{boardId}/cards/{cardId}/tasks/{taskId}/move [put]
func (h *TaskHandler) MoveTask(c *gin.Context) {
	userID, ids, ok := taskPath(c, true)
	if !ok {
		return
	}

	var req dto.MoveTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.taskService.MoveTask(c.Request.Context(), userID, ids[0], ids[1], ids[2], &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// AssignTask godoc
// @Summary      Task 담당자 지정
// @Description  이미 지정된 담당자를 다시 지정해도 성공합니다
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Param        cardId path string true "Card ID (UUID)"
// @Param        taskId path string true "Task ID (UUID)"
// @Param        request body dto.AssignTaskRequest true "담당자"
// @Success      201 {object} response.SuccessResponse{data=dto.AssignmentResponse}
// @Failure      400 {object} response.ErrorResponse "Board 멤버가 아님"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Router       /boards/{boardId}/cards/{cardId}/tasks/{taskId}/assign [post]
func (h *TaskHandler) AssignTask(c *gin.Context) {
	userID, ids, ok := taskPath(c, true)
	if !ok {
		return
	}

	var req dto.AssignTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	assignment, err := h.taskService.AssignTask(c.Request.Context(), userID, ids[0], ids[1], ids[2], &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, assignment)
}

// GetAssignments godoc
// @Summary      Task 담당자 목록
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Param        cardId path string true "Card ID (UUID)"
// @Param        taskId path string true "Task ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.AssignmentResponse}
// @Router       /boards/{boardId}/cards/{cardId}/tasks/{taskId}/assign [get]
func (h *TaskHandler) GetAssignments(c *gin.Context) {
	userID, ids, ok := taskPath(c, true)
	if !ok {
		return
	}

	assignments, err := h.taskService.GetAssignments(c.Request.Context(), userID, ids[0], ids[1], ids[2])
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, assignments)
}

// UnassignTask godoc
// @Summary      Task 담당자 해제
// @Tags         tasks
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Param        cardId path string true "Card ID (UUID)"
// @Param        taskId path string true "Task ID (UUID)"
// @Param        memberId path string true "Member ID (UUID)"
// @Success      204 "해제 성공"
// @Router       /boards/{boardId}/cards/{cardId}/tasks/{taskId}/assign/{memberId} [delete]
func (h *TaskHandler) UnassignTask(c *gin.Context) {
	userID, ids, ok := taskPath(c, true)
	if !ok {
		return
	}
	memberID, ok := uuidParam(c, "memberId", "member")
	if !ok {
		return
	}

	if err := h.taskService.UnassignTask(c.Request.Context(), userID, ids[0], ids[1], ids[2], memberID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
