package handler

import (
	"context"

	"github.com/google/uuid"

	"taskboard-api/internal/authz"
	"taskboard-api/internal/dto"
)

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	SignupFunc        func(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error)
	SigninFunc        func(ctx context.Context, req *dto.SigninRequest) (*dto.SigninResponse, error)
	ResendCodeFunc    func(ctx context.Context, req *dto.ResendCodeRequest) error
	GetUserFunc       func(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	UpdateProfileFunc func(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
}

func (m *MockAuthService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error) {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, req)
	}
	return &dto.UserResponse{}, nil
}

func (m *MockAuthService) Signin(ctx context.Context, req *dto.SigninRequest) (*dto.SigninResponse, error) {
	if m.SigninFunc != nil {
		return m.SigninFunc(ctx, req)
	}
	return &dto.SigninResponse{}, nil
}

func (m *MockAuthService) ResendCode(ctx context.Context, req *dto.ResendCodeRequest) error {
	if m.ResendCodeFunc != nil {
		return m.ResendCodeFunc(ctx, req)
	}
	return nil
}

func (m *MockAuthService) GetUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, userID)
	}
	return &dto.UserResponse{ID: userID}, nil
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, userID, req)
	}
	return &dto.UserResponse{ID: userID}, nil
}

// MockBoardService is a mock implementation of BoardService
type MockBoardService struct {
	GetBoardsFunc    func(ctx context.Context, userID uuid.UUID) ([]*dto.BoardResponse, error)
	CreateBoardFunc  func(ctx context.Context, userID uuid.UUID, req *dto.CreateBoardRequest) (*dto.BoardResponse, error)
	GetBoardFunc     func(ctx context.Context, userID, boardID uuid.UUID) (*dto.BoardResponse, error)
	UpdateBoardFunc  func(ctx context.Context, userID, boardID uuid.UUID, req *dto.UpdateBoardRequest) (*dto.BoardResponse, error)
	DeleteBoardFunc  func(ctx context.Context, userID, boardID uuid.UUID) error
	RemoveMemberFunc func(ctx context.Context, userID, boardID, memberID uuid.UUID) error
}

func (m *MockBoardService) GetBoards(ctx context.Context, userID uuid.UUID) ([]*dto.BoardResponse, error) {
	if m.GetBoardsFunc != nil {
		return m.GetBoardsFunc(ctx, userID)
	}
	return []*dto.BoardResponse{}, nil
}

func (m *MockBoardService) CreateBoard(ctx context.Context, userID uuid.UUID, req *dto.CreateBoardRequest) (*dto.BoardResponse, error) {
	if m.CreateBoardFunc != nil {
		return m.CreateBoardFunc(ctx, userID, req)
	}
	return &dto.BoardResponse{}, nil
}

func (m *MockBoardService) GetBoard(ctx context.Context, userID, boardID uuid.UUID) (*dto.BoardResponse, error) {
	if m.GetBoardFunc != nil {
		return m.GetBoardFunc(ctx, userID, boardID)
	}
	return &dto.BoardResponse{ID: boardID}, nil
}

func (m *MockBoardService) UpdateBoard(ctx context.Context, userID, boardID uuid.UUID, req *dto.UpdateBoardRequest) (*dto.BoardResponse, error) {
	if m.UpdateBoardFunc != nil {
		return m.UpdateBoardFunc(ctx, userID, boardID, req)
	}
	return &dto.BoardResponse{ID: boardID}, nil
}

func (m *MockBoardService) DeleteBoard(ctx context.Context, userID, boardID uuid.UUID) error {
	if m.DeleteBoardFunc != nil {
		return m.DeleteBoardFunc(ctx, userID, boardID)
	}
	return nil
}

func (m *MockBoardService) RemoveMember(ctx context.Context, userID, boardID, memberID uuid.UUID) error {
	if m.RemoveMemberFunc != nil {
		return m.RemoveMemberFunc(ctx, userID, boardID, memberID)
	}
	return nil
}

// MockCardService is a mock implementation of CardService
type MockCardService struct {
	GetCardsFunc        func(ctx context.Context, userID, boardID uuid.UUID) ([]*dto.CardResponse, error)
	GetCardsByOwnerFunc func(ctx context.Context, userID, boardID, ownerID uuid.UUID) ([]*dto.CardResponse, error)
	CreateCardFunc      func(ctx context.Context, userID, boardID uuid.UUID, req *dto.CreateCardRequest) (*dto.CardResponse, error)
	GetCardFunc         func(ctx context.Context, userID, boardID, cardID uuid.UUID) (*dto.CardResponse, error)
	UpdateCardFunc      func(ctx context.Context, userID, boardID, cardID uuid.UUID, req *dto.UpdateCardRequest) (*dto.CardResponse, error)
	DeleteCardFunc      func(ctx context.Context, userID, boardID, cardID uuid.UUID) error
}

func (m *MockCardService) GetCards(ctx context.Context, userID, boardID uuid.UUID) ([]*dto.CardResponse, error) {
	if m.GetCardsFunc != nil {
		return m.GetCardsFunc(ctx, userID, boardID)
	}
	return []*dto.CardResponse{}, nil
}

func (m *MockCardService) GetCardsByOwner(ctx context.Context, userID, boardID, ownerID uuid.UUID) ([]*dto.CardResponse, error) {
	if m.GetCardsByOwnerFunc != nil {
		return m.GetCardsByOwnerFunc(ctx, userID, boardID, ownerID)
	}
	return []*dto.CardResponse{}, nil
}

func (m *MockCardService) CreateCard(ctx context.Context, userID, boardID uuid.UUID, req *dto.CreateCardRequest) (*dto.CardResponse, error) {
	if m.CreateCardFunc != nil {
		return m.CreateCardFunc(ctx, userID, boardID, req)
	}
	return &dto.CardResponse{}, nil
}

func (m *MockCardService) GetCard(ctx context.Context, userID, boardID, cardID uuid.UUID) (*dto.CardResponse, error) {
	if m.GetCardFunc != nil {
		return m.GetCardFunc(ctx, userID, boardID, cardID)
	}
	return &dto.CardResponse{ID: cardID}, nil
}

func (m *MockCardService) UpdateCard(ctx context.Context, userID, boardID, cardID uuid.UUID, req *dto.UpdateCardRequest) (*dto.CardResponse, error) {
	if m.UpdateCardFunc != nil {
		return m.UpdateCardFunc(ctx, userID, boardID, cardID, req)
	}
	return &dto.CardResponse{ID: cardID}, nil
}

func (m *MockCardService) DeleteCard(ctx context.Context, userID, boardID, cardID uuid.UUID) error {
	if m.DeleteCardFunc != nil {
		return m.DeleteCardFunc(ctx, userID, boardID, cardID)
	}
	return nil
}

// MockTaskService is a mock implementation of TaskService
type MockTaskService struct {
	GetTasksFunc       func(ctx context.Context, userID, boardID, cardID uuid.UUID) ([]*dto.TaskResponse, error)
	CreateTaskFunc     func(ctx context.Context, userID, boardID, cardID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	GetTaskFunc        func(ctx context.Context, userID, boardID, cardID, taskID uuid.UUID) (*dto.TaskResponse, error)
	UpdateTaskFunc     func(ctx context.Context, userID, boardID, cardID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	DeleteTaskFunc     func(ctx context.Context, userID, boardID, cardID, taskID uuid.UUID) error
	MoveTaskFunc       func(ctx context.Context, userID, boardID, cardID, taskID uuid.UUID, req *dto.MoveTaskRequest) (*dto.MoveTaskResponse, error)
	AssignTaskFunc     func(ctx context.Context, userID, boardID, cardID, taskID uuid.UUID, req *dto.AssignTaskRequest) (*dto.AssignmentResponse, error)
	GetAssignmentsFunc func(ctx context.Context, userID, boardID, cardID, taskID uuid.UUID) ([]*dto.AssignmentResponse, error)
	UnassignTaskFunc   func(ctx context.Context, userID, boardID, cardID, taskID, memberID uuid.UUID) error
}

func (m *MockTaskService) GetTasks(ctx context.Context, userID, boardID, cardID uuid.UUID) ([]*dto.TaskResponse, error) {
	if m.GetTasksFunc != nil {
		return m.GetTasksFunc(ctx, userID, boardID, cardID)
	}
	return []*dto.TaskResponse{}, nil
}

func (m *MockTaskService) CreateTask(ctx context.Context, userID, boardID, cardID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if m.CreateTaskFunc != nil {
		return m.CreateTaskFunc(ctx, userID, boardID, cardID, req)
	}
	return &dto.TaskResponse{}, nil
}

func (m *MockTaskService) GetTask(ctx context.Context, userID, boardID, cardID, taskID uuid.UUID) (*dto.TaskResponse, error) {
	if m.GetTaskFunc != nil {
		return m.GetTaskFunc(ctx, userID, boardID, cardID, taskID)
	}
	return &dto.TaskResponse{ID: taskID}, nil
}

func (m *MockTaskService) UpdateTask(ctx context.Context, userID, boardID, cardID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	if m.UpdateTaskFunc != nil {
		return m.UpdateTaskFunc(ctx, userID, boardID, cardID, taskID, req)
	}
	return &dto.TaskResponse{ID: taskID}, nil
}

func (m *MockTaskService) DeleteTask(ctx context.Context, userID, boardID, cardID, taskID uuid.UUID) error {
	if m.DeleteTaskFunc != nil {
		return m.DeleteTaskFunc(ctx, userID, boardID, cardID, taskID)
	}
	return nil
}

func (m *MockTaskService) MoveTask(ctx context.Context, userID, boardID, cardID, taskID uuid.UUID, req *dto.MoveTaskRequest) (*dto.MoveTaskResponse, error) {
	if m.MoveTaskFunc != nil {
		return m.MoveTaskFunc(ctx, userID, boardID, cardID, taskID, req)
	}
	return &dto.MoveTaskResponse{}, nil
}

func (m *MockTaskService) AssignTask(ctx context.Context, userID, boardID, cardID, taskID uuid.UUID, req *dto.AssignTaskRequest) (*dto.AssignmentResponse, error) {
	if m.AssignTaskFunc != nil {
		return m.AssignTaskFunc(ctx, userID, boardID, cardID, taskID, req)
	}
	return &dto.AssignmentResponse{TaskID: taskID, MemberID: req.MemberID}, nil
}

func (m *MockTaskService) GetAssignments(ctx context.Context, userID, boardID, cardID, taskID uuid.UUID) ([]*dto.AssignmentResponse, error) {
	if m.GetAssignmentsFunc != nil {
		return m.GetAssignmentsFunc(ctx, userID, boardID, cardID, taskID)
	}
	return []*dto.AssignmentResponse{}, nil
}

func (m *MockTaskService) UnassignTask(ctx context.Context, userID, boardID, cardID, taskID, memberID uuid.UUID) error {
	if m.UnassignTaskFunc != nil {
		return m.UnassignTaskFunc(ctx, userID, boardID, cardID, taskID, memberID)
	}
	return nil
}

// MockInvitationService is a mock implementation of InvitationService
type MockInvitationService struct {
	InviteFunc             func(ctx context.Context, userID, boardID uuid.UUID, req *dto.InviteRequest) (*dto.InvitationResponse, error)
	RespondFunc            func(ctx context.Context, userID, boardID uuid.UUID, req *dto.RespondInvitationRequest) (*dto.InvitationResponse, error)
	ListPendingForUserFunc func(ctx context.Context, userID uuid.UUID) ([]*dto.InvitationResponse, error)
	ListSentByOwnerFunc    func(ctx context.Context, ownerID uuid.UUID) ([]*dto.InvitationResponse, error)
}

func (m *MockInvitationService) Invite(ctx context.Context, userID, boardID uuid.UUID, req *dto.InviteRequest) (*dto.InvitationResponse, error) {
	if m.InviteFunc != nil {
		return m.InviteFunc(ctx, userID, boardID, req)
	}
	return &dto.InvitationResponse{BoardID: boardID}, nil
}

func (m *MockInvitationService) Respond(ctx context.Context, userID, boardID uuid.UUID, req *dto.RespondInvitationRequest) (*dto.InvitationResponse, error) {
	if m.RespondFunc != nil {
		return m.RespondFunc(ctx, userID, boardID, req)
	}
	return &dto.InvitationResponse{ID: req.InviteID, Status: req.Status}, nil
}

func (m *MockInvitationService) ListPendingForUser(ctx context.Context, userID uuid.UUID) ([]*dto.InvitationResponse, error) {
	if m.ListPendingForUserFunc != nil {
		return m.ListPendingForUserFunc(ctx, userID)
	}
	return []*dto.InvitationResponse{}, nil
}

func (m *MockInvitationService) ListSentByOwner(ctx context.Context, ownerID uuid.UUID) ([]*dto.InvitationResponse, error) {
	if m.ListSentByOwnerFunc != nil {
		return m.ListSentByOwnerFunc(ctx, ownerID)
	}
	return []*dto.InvitationResponse{}, nil
}

// MockGitHubService is a mock implementation of GitHubService
type MockGitHubService struct {
	ConnectFunc           func(ctx context.Context, userID uuid.UUID, code string) (*dto.GitHubConnectionResponse, error)
	CheckConnectionFunc   func(ctx context.Context, userID uuid.UUID) (*dto.GitHubConnectionResponse, error)
	DisconnectFunc        func(ctx context.Context, userID uuid.UUID) error
	ListRepositoriesFunc  func(ctx context.Context, userID uuid.UUID) ([]*dto.GitHubRepositoryResponse, error)
	GetRepositoryInfoFunc func(ctx context.Context, userID, repositoryID uuid.UUID) (*dto.GitHubRepositoryInfoResponse, error)
	AttachFunc            func(ctx context.Context, userID uuid.UUID, res authz.Resource, req *dto.GitHubAttachRequest) (*dto.GitHubAttachmentResponse, error)
	ListAttachmentsFunc   func(ctx context.Context, userID uuid.UUID, res authz.Resource) ([]*dto.GitHubAttachmentResponse, error)
	DeleteAttachmentFunc  func(ctx context.Context, userID uuid.UUID, res authz.Resource, attachmentID uuid.UUID) error
}

func (m *MockGitHubService) Connect(ctx context.Context, userID uuid.UUID, code string) (*dto.GitHubConnectionResponse, error) {
	if m.ConnectFunc != nil {
		return m.ConnectFunc(ctx, userID, code)
	}
	return &dto.GitHubConnectionResponse{Connected: true}, nil
}

func (m *MockGitHubService) CheckConnection(ctx context.Context, userID uuid.UUID) (*dto.GitHubConnectionResponse, error) {
	if m.CheckConnectionFunc != nil {
		return m.CheckConnectionFunc(ctx, userID)
	}
	return &dto.GitHubConnectionResponse{}, nil
}

func (m *MockGitHubService) Disconnect(ctx context.Context, userID uuid.UUID) error {
	if m.DisconnectFunc != nil {
		return m.DisconnectFunc(ctx, userID)
	}
	return nil
}

func (m *MockGitHubService) ListRepositories(ctx context.Context, userID uuid.UUID) ([]*dto.GitHubRepositoryResponse, error) {
	if m.ListRepositoriesFunc != nil {
		return m.ListRepositoriesFunc(ctx, userID)
	}
	return []*dto.GitHubRepositoryResponse{}, nil
}

func (m *MockGitHubService) GetRepositoryInfo(ctx context.Context, userID, repositoryID uuid.UUID) (*dto.GitHubRepositoryInfoResponse, error) {
	if m.GetRepositoryInfoFunc != nil {
		return m.GetRepositoryInfoFunc(ctx, userID, repositoryID)
	}
	return &dto.GitHubRepositoryInfoResponse{}, nil
}

func (m *MockGitHubService) Attach(ctx context.Context, userID uuid.UUID, res authz.Resource, req *dto.GitHubAttachRequest) (*dto.GitHubAttachmentResponse, error) {
	if m.AttachFunc != nil {
		return m.AttachFunc(ctx, userID, res, req)
	}
	return &dto.GitHubAttachmentResponse{}, nil
}

func (m *MockGitHubService) ListAttachments(ctx context.Context, userID uuid.UUID, res authz.Resource) ([]*dto.GitHubAttachmentResponse, error) {
	if m.ListAttachmentsFunc != nil {
		return m.ListAttachmentsFunc(ctx, userID, res)
	}
	return []*dto.GitHubAttachmentResponse{}, nil
}

func (m *MockGitHubService) DeleteAttachment(ctx context.Context, userID uuid.UUID, res authz.Resource, attachmentID uuid.UUID) error {
	if m.DeleteAttachmentFunc != nil {
		return m.DeleteAttachmentFunc(ctx, userID, res, attachmentID)
	}
	return nil
}
