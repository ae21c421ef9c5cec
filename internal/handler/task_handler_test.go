package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard-api/internal/dto"
	"taskboard-api/internal/response"
)

func setupTaskRouter(userID uuid.UUID, svc *MockTaskService) http.Handler {
	h := NewTaskHandler(svc, nopLogger())
	router := newTestRouter(userID)
	tasks := router.Group("/boards/:boardId/cards/:cardId/tasks")
	tasks.GET("", h.GetTasks)
	tasks.POST("", h.CreateTask)
	tasks.GET("/:taskId", h.GetTask)
	tasks.PUT("/:taskId", h.UpdateTask)
	tasks.DELETE("/:taskId", h.DeleteTask)
	tasks.PUT("/:taskId/move", h.MoveTask)
	tasks.POST("/:taskId/assign", h.AssignTask)
	tasks.GET("/:taskId/assign", h.GetAssignments)
	tasks.DELETE("/:taskId/assign/:memberId", h.UnassignTask)
	return router
}

type taskIDs struct {
	board, card, task uuid.UUID
}

func newTaskIDs() taskIDs {
	return taskIDs{board: uuid.New(), card: uuid.New(), task: uuid.New()}
}

func (ids taskIDs) base() string {
	return fmt.Sprintf("/boards/%s/cards/%s/tasks", ids.board, ids.card)
}

func (ids taskIDs) taskPath(suffix string) string {
	return ids.base() + "/" + ids.task.String() + suffix
}

func TestTaskHandler_CreateTask(t *testing.T) {
	userID := uuid.New()
	ids := newTaskIDs()

	t.Run("성공: 경로 ID가 서비스로 전달됨", func(t *testing.T) {
		svc := &MockTaskService{
			CreateTaskFunc: func(ctx context.Context, uid, bid, cid uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
				assert.Equal(t, userID, uid)
				assert.Equal(t, ids.board, bid)
				assert.Equal(t, ids.card, cid)
				return &dto.TaskResponse{ID: ids.task, Title: req.Title, Status: "icebox"}, nil
			},
		}

		w := performRequest(setupTaskRouter(userID, svc), http.MethodPost, ids.base(), dto.CreateTaskRequest{Title: "Write API"})

		require.Equal(t, http.StatusCreated, w.Code)
		var task dto.TaskResponse
		decodeData(t, w, &task)
		assert.Equal(t, "Write API", task.Title)
	})

	t.Run("실패: 제목 누락", func(t *testing.T) {
		w := performRequest(setupTaskRouter(userID, &MockTaskService{}), http.MethodPost, ids.base(), map[string]string{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("실패: 잘못된 Card ID", func(t *testing.T) {
		path := fmt.Sprintf("/boards/%s/cards/nope/tasks", ids.board)
		w := performRequest(setupTaskRouter(userID, &MockTaskService{}), http.MethodPost, path, dto.CreateTaskRequest{Title: "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("실패: 서비스 검증 오류", func(t *testing.T) {
		svc := &MockTaskService{
			CreateTaskFunc: func(ctx context.Context, uid, bid, cid uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
				return nil, response.NewAppError(response.ErrCodeValidation, "Invalid status", "")
			},
		}
		w := performRequest(setupTaskRouter(userID, svc), http.MethodPost, ids.base(), dto.CreateTaskRequest{Title: "x", Status: "nope"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTaskHandler_MoveTask(t *testing.T) {
	userID := uuid.New()
	ids := newTaskIDs()

	tests := []struct {
		name       string
		body       interface{}
		err        error
		wantStatus int
	}{
		{"성공: 상태 이동", dto.MoveTaskRequest{Status: "ongoing"}, nil, http.StatusOK},
		{"실패: 상태 누락", map[string]string{}, nil, http.StatusBadRequest},
		{"실패: 권한 없음", dto.MoveTaskRequest{Status: "done"},
			response.NewAppError(response.ErrCodeForbidden, "Not allowed", ""), http.StatusForbidden},
		{"실패: 경로 불일치", dto.MoveTaskRequest{Status: "done"},
			response.NewAppError(response.ErrCodeValidation, "Task does not belong to card", ""), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockTaskService{
				MoveTaskFunc: func(ctx context.Context, uid, bid, cid, tid uuid.UUID, req *dto.MoveTaskRequest) (*dto.MoveTaskResponse, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					return &dto.MoveTaskResponse{Task: &dto.TaskResponse{ID: tid, Status: req.Status}, FromStatus: "icebox", ToStatus: req.Status}, nil
				},
			}

			w := performRequest(setupTaskRouter(userID, svc), http.MethodPut, ids.taskPath("/move"), tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				var moved dto.MoveTaskResponse
				decodeData(t, w, &moved)
				assert.Equal(t, "icebox", moved.FromStatus)
				assert.Equal(t, "ongoing", moved.ToStatus)
			}
		})
	}
}

func TestTaskHandler_Assignments(t *testing.T) {
	userID := uuid.New()
	memberID := uuid.New()
	ids := newTaskIDs()

	t.Run("성공: 담당자 지정은 201", func(t *testing.T) {
		w := performRequest(setupTaskRouter(userID, &MockTaskService{}), http.MethodPost, ids.taskPath("/assign"),
			dto.AssignTaskRequest{MemberID: memberID})

		require.Equal(t, http.StatusCreated, w.Code)
		var a dto.AssignmentResponse
		decodeData(t, w, &a)
		assert.Equal(t, ids.task, a.TaskID)
		assert.Equal(t, memberID, a.MemberID)
	})

	t.Run("실패: memberId 누락", func(t *testing.T) {
		w := performRequest(setupTaskRouter(userID, &MockTaskService{}), http.MethodPost, ids.taskPath("/assign"), map[string]string{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("성공: 담당자 목록", func(t *testing.T) {
		svc := &MockTaskService{
			GetAssignmentsFunc: func(ctx context.Context, uid, bid, cid, tid uuid.UUID) ([]*dto.AssignmentResponse, error) {
				return []*dto.AssignmentResponse{{TaskID: tid, MemberID: memberID}}, nil
			},
		}
		w := performRequest(setupTaskRouter(userID, svc), http.MethodGet, ids.taskPath("/assign"), nil)

		require.Equal(t, http.StatusOK, w.Code)
		var list []dto.AssignmentResponse
		decodeData(t, w, &list)
		assert.Len(t, list, 1)
	})

	t.Run("성공: 담당자 해제는 204", func(t *testing.T) {
		var gotMember uuid.UUID
		svc := &MockTaskService{
			UnassignTaskFunc: func(ctx context.Context, uid, bid, cid, tid, mid uuid.UUID) error {
				gotMember = mid
				return nil
			},
		}
		w := performRequest(setupTaskRouter(userID, svc), http.MethodDelete, ids.taskPath("/assign/"+memberID.String()), nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, memberID, gotMember)
	})
}

func TestTaskHandler_CRUD(t *testing.T) {
	userID := uuid.New()
	ids := newTaskIDs()
	router := setupTaskRouter(userID, &MockTaskService{})

	tests := []struct {
		name       string
		method     string
		path       string
		body       interface{}
		wantStatus int
	}{
		{"성공: 목록", http.MethodGet, ids.base(), nil, http.StatusOK},
		{"성공: 조회", http.MethodGet, ids.taskPath(""), nil, http.StatusOK},
		{"성공: 수정", http.MethodPut, ids.taskPath(""), map[string]string{"priority": "high"}, http.StatusOK},
		{"성공: 삭제", http.MethodDelete, ids.taskPath(""), nil, http.StatusNoContent},
		{"실패: 잘못된 Task ID", http.MethodGet, ids.base() + "/xyz", nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
