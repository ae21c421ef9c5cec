package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard-api/internal/authz"
	"taskboard-api/internal/client"
	"taskboard-api/internal/domain"
	"taskboard-api/internal/response"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	CreateFunc       func(ctx context.Context, user *domain.User) error
	FindByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByEmailFunc  func(ctx context.Context, email string) (*domain.User, error)
	FindByIDsFunc    func(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error)
	UpdateFieldsFunc func(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error) {
	if m.FindByIDsFunc != nil {
		return m.FindByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *MockUserRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, id, fields)
	}
	return nil
}

// MockBoardRepository is a mock implementation of BoardRepository
type MockBoardRepository struct {
	CreateWithOwnerFunc func(ctx context.Context, board *domain.Board) error
	FindByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	FindByUserFunc      func(ctx context.Context, userID uuid.UUID) ([]*domain.Board, error)
	UpdateFunc          func(ctx context.Context, board *domain.Board) error
	AddMemberFunc       func(ctx context.Context, boardID, userID uuid.UUID) error
	RemoveMemberFunc    func(ctx context.Context, boardID, userID uuid.UUID) error
	DeleteCascadeFunc   func(ctx context.Context, boardID uuid.UUID) error
}

func (m *MockBoardRepository) CreateWithOwner(ctx context.Context, board *domain.Board) error {
	if m.CreateWithOwnerFunc != nil {
		return m.CreateWithOwnerFunc(ctx, board)
	}
	return nil
}

func (m *MockBoardRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockBoardRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Board, error) {
	if m.FindByUserFunc != nil {
		return m.FindByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockBoardRepository) Update(ctx context.Context, board *domain.Board) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, board)
	}
	return nil
}

func (m *MockBoardRepository) AddMember(ctx context.Context, boardID, userID uuid.UUID) error {
	if m.AddMemberFunc != nil {
		return m.AddMemberFunc(ctx, boardID, userID)
	}
	return nil
}

func (m *MockBoardRepository) RemoveMember(ctx context.Context, boardID, userID uuid.UUID) error {
	if m.RemoveMemberFunc != nil {
		return m.RemoveMemberFunc(ctx, boardID, userID)
	}
	return nil
}

func (m *MockBoardRepository) DeleteCascade(ctx context.Context, boardID uuid.UUID) error {
	if m.DeleteCascadeFunc != nil {
		return m.DeleteCascadeFunc(ctx, boardID)
	}
	return nil
}

// MockCardRepository is a mock implementation of CardRepository
type MockCardRepository struct {
	CreateFunc              func(ctx context.Context, card *domain.Card) error
	FindByIDFunc            func(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	FindByBoardIDFunc       func(ctx context.Context, boardID uuid.UUID) ([]*domain.Card, error)
	FindByBoardAndOwnerFunc func(ctx context.Context, boardID, ownerID uuid.UUID) ([]*domain.Card, error)
	UpdateFunc              func(ctx context.Context, card *domain.Card) error
	DeleteCascadeFunc       func(ctx context.Context, cardID uuid.UUID) error
}

func (m *MockCardRepository) Create(ctx context.Context, card *domain.Card) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, card)
	}
	return nil
}

func (m *MockCardRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockCardRepository) FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.Card, error) {
	if m.FindByBoardIDFunc != nil {
		return m.FindByBoardIDFunc(ctx, boardID)
	}
	return nil, nil
}

func (m *MockCardRepository) FindByBoardAndOwner(ctx context.Context, boardID, ownerID uuid.UUID) ([]*domain.Card, error) {
	if m.FindByBoardAndOwnerFunc != nil {
		return m.FindByBoardAndOwnerFunc(ctx, boardID, ownerID)
	}
	return nil, nil
}

func (m *MockCardRepository) Update(ctx context.Context, card *domain.Card) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, card)
	}
	return nil
}

func (m *MockCardRepository) DeleteCascade(ctx context.Context, cardID uuid.UUID) error {
	if m.DeleteCascadeFunc != nil {
		return m.DeleteCascadeFunc(ctx, cardID)
	}
	return nil
}

// MockTaskRepository is a mock implementation of TaskRepository
type MockTaskRepository struct {
	CreateFunc         func(ctx context.Context, task *domain.Task) error
	FindByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	FindByCardIDFunc   func(ctx context.Context, cardID uuid.UUID) ([]*domain.Task, error)
	UpdateFunc         func(ctx context.Context, task *domain.Task) error
	UpdateStatusFunc   func(ctx context.Context, id uuid.UUID, status domain.TaskStatus) error
	DeleteFunc         func(ctx context.Context, task *domain.Task) error
	AddAssigneeFunc    func(ctx context.Context, taskID, userID uuid.UUID) error
	RemoveAssigneeFunc func(ctx context.Context, taskID, userID uuid.UUID) error
	FindAssigneesFunc  func(ctx context.Context, taskID uuid.UUID) ([]domain.TaskAssignee, error)
}

func (m *MockTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, task)
	}
	return nil
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockTaskRepository) FindByCardID(ctx context.Context, cardID uuid.UUID) ([]*domain.Task, error) {
	if m.FindByCardIDFunc != nil {
		return m.FindByCardIDFunc(ctx, cardID)
	}
	return nil, nil
}

func (m *MockTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, task)
	}
	return nil
}

func (m *MockTaskRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TaskStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *MockTaskRepository) Delete(ctx context.Context, task *domain.Task) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, task)
	}
	return nil
}

func (m *MockTaskRepository) AddAssignee(ctx context.Context, taskID, userID uuid.UUID) error {
	if m.AddAssigneeFunc != nil {
		return m.AddAssigneeFunc(ctx, taskID, userID)
	}
	return nil
}

func (m *MockTaskRepository) RemoveAssignee(ctx context.Context, taskID, userID uuid.UUID) error {
	if m.RemoveAssigneeFunc != nil {
		return m.RemoveAssigneeFunc(ctx, taskID, userID)
	}
	return nil
}

func (m *MockTaskRepository) FindAssignees(ctx context.Context, taskID uuid.UUID) ([]domain.TaskAssignee, error) {
	if m.FindAssigneesFunc != nil {
		return m.FindAssigneesFunc(ctx, taskID)
	}
	return nil, nil
}

// MockInvitationRepository is a mock implementation of InvitationRepository
type MockInvitationRepository struct {
	CreateFunc               func(ctx context.Context, invitation *domain.Invitation) error
	FindByIDFunc             func(ctx context.Context, id uuid.UUID) (*domain.Invitation, error)
	FindPendingFunc          func(ctx context.Context, boardID, inviteeID uuid.UUID) (*domain.Invitation, error)
	FindPendingByInviteeFunc func(ctx context.Context, inviteeID uuid.UUID) ([]*domain.Invitation, error)
	FindByInviterFunc        func(ctx context.Context, inviterID uuid.UUID) ([]*domain.Invitation, error)
	ResolveFunc              func(ctx context.Context, invitation *domain.Invitation, status domain.InvitationStatus) error
}

func (m *MockInvitationRepository) Create(ctx context.Context, invitation *domain.Invitation) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, invitation)
	}
	return nil
}

func (m *MockInvitationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Invitation, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockInvitationRepository) FindPending(ctx context.Context, boardID, inviteeID uuid.UUID) (*domain.Invitation, error) {
	if m.FindPendingFunc != nil {
		return m.FindPendingFunc(ctx, boardID, inviteeID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockInvitationRepository) FindPendingByInvitee(ctx context.Context, inviteeID uuid.UUID) ([]*domain.Invitation, error) {
	if m.FindPendingByInviteeFunc != nil {
		return m.FindPendingByInviteeFunc(ctx, inviteeID)
	}
	return nil, nil
}

func (m *MockInvitationRepository) FindByInviter(ctx context.Context, inviterID uuid.UUID) ([]*domain.Invitation, error) {
	if m.FindByInviterFunc != nil {
		return m.FindByInviterFunc(ctx, inviterID)
	}
	return nil, nil
}

func (m *MockInvitationRepository) Resolve(ctx context.Context, invitation *domain.Invitation, status domain.InvitationStatus) error {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, invitation, status)
	}
	invitation.Status = status
	return nil
}

// MockGitHubAttachmentRepository is a mock implementation of GitHubAttachmentRepository
type MockGitHubAttachmentRepository struct {
	CreateFunc       func(ctx context.Context, attachment *domain.GitHubAttachment) error
	FindByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.GitHubAttachment, error)
	FindByTaskIDFunc func(ctx context.Context, taskID uuid.UUID) ([]*domain.GitHubAttachment, error)
	DeleteFunc       func(ctx context.Context, id uuid.UUID) error
}

func (m *MockGitHubAttachmentRepository) Create(ctx context.Context, attachment *domain.GitHubAttachment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, attachment)
	}
	return nil
}

func (m *MockGitHubAttachmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.GitHubAttachment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockGitHubAttachmentRepository) FindByTaskID(ctx context.Context, taskID uuid.UUID) ([]*domain.GitHubAttachment, error) {
	if m.FindByTaskIDFunc != nil {
		return m.FindByTaskIDFunc(ctx, taskID)
	}
	return nil, nil
}

func (m *MockGitHubAttachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockGitHubRepoRepository is a mock implementation of GitHubRepoRepository
type MockGitHubRepoRepository struct {
	UpsertForUserFunc func(ctx context.Context, repos []*domain.GitHubRepository) error
	FindByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.GitHubRepository, error)
	FindByUserFunc    func(ctx context.Context, userID uuid.UUID) ([]*domain.GitHubRepository, error)
}

func (m *MockGitHubRepoRepository) UpsertForUser(ctx context.Context, repos []*domain.GitHubRepository) error {
	if m.UpsertForUserFunc != nil {
		return m.UpsertForUserFunc(ctx, repos)
	}
	return nil
}

func (m *MockGitHubRepoRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.GitHubRepository, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockGitHubRepoRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*domain.GitHubRepository, error) {
	if m.FindByUserFunc != nil {
		return m.FindByUserFunc(ctx, userID)
	}
	return nil, nil
}

// MockGuard is a mock implementation of authz.Guard
type MockGuard struct {
	AuthorizeFunc func(ctx context.Context, userID uuid.UUID, res authz.Resource, action authz.Action) (*authz.Snapshot, error)
}

func (m *MockGuard) Authorize(ctx context.Context, userID uuid.UUID, res authz.Resource, action authz.Action) (*authz.Snapshot, error) {
	if m.AuthorizeFunc != nil {
		return m.AuthorizeFunc(ctx, userID, res, action)
	}
	return &authz.Snapshot{}, nil
}

// MockEmailClient records every message it is asked to send
type MockEmailClient struct {
	mu       sync.Mutex
	Sent     []client.EmailMessage
	SendFunc func(ctx context.Context, msg client.EmailMessage) error
}

func (m *MockEmailClient) Send(ctx context.Context, msg client.EmailMessage) error {
	m.mu.Lock()
	m.Sent = append(m.Sent, msg)
	m.mu.Unlock()
	if m.SendFunc != nil {
		return m.SendFunc(ctx, msg)
	}
	return nil
}

func (m *MockEmailClient) SentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}

// MockGitHubClient is a mock implementation of client.GitHubClient
type MockGitHubClient struct {
	ExchangeCodeFunc     func(ctx context.Context, code string) (string, error)
	GetUserFunc          func(ctx context.Context, token string) (*client.GitHubUser, error)
	ListRepositoriesFunc func(ctx context.Context, token string) ([]client.GitHubRepo, error)
	ListBranchesFunc     func(ctx context.Context, token, owner, repo string) ([]client.GitHubBranch, error)
	ListPullsFunc        func(ctx context.Context, token, owner, repo string) ([]client.GitHubPull, error)
	ListIssuesFunc       func(ctx context.Context, token, owner, repo string) ([]client.GitHubIssue, error)
	ListCommitsFunc      func(ctx context.Context, token, owner, repo string, limit int) ([]client.GitHubCommit, error)
}

func (m *MockGitHubClient) ExchangeCode(ctx context.Context, code string) (string, error) {
	if m.ExchangeCodeFunc != nil {
		return m.ExchangeCodeFunc(ctx, code)
	}
	return "", nil
}

func (m *MockGitHubClient) GetUser(ctx context.Context, token string) (*client.GitHubUser, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, token)
	}
	return &client.GitHubUser{}, nil
}

func (m *MockGitHubClient) ListRepositories(ctx context.Context, token string) ([]client.GitHubRepo, error) {
	if m.ListRepositoriesFunc != nil {
		return m.ListRepositoriesFunc(ctx, token)
	}
	return nil, nil
}

func (m *MockGitHubClient) ListBranches(ctx context.Context, token, owner, repo string) ([]client.GitHubBranch, error) {
	if m.ListBranchesFunc != nil {
		return m.ListBranchesFunc(ctx, token, owner, repo)
	}
	return nil, nil
}

func (m *MockGitHubClient) ListPulls(ctx context.Context, token, owner, repo string) ([]client.GitHubPull, error) {
	if m.ListPullsFunc != nil {
		return m.ListPullsFunc(ctx, token, owner, repo)
	}
	return nil, nil
}

func (m *MockGitHubClient) ListIssues(ctx context.Context, token, owner, repo string) ([]client.GitHubIssue, error) {
	if m.ListIssuesFunc != nil {
		return m.ListIssuesFunc(ctx, token, owner, repo)
	}
	return nil, nil
}

func (m *MockGitHubClient) ListCommits(ctx context.Context, token, owner, repo string, limit int) ([]client.GitHubCommit, error) {
	if m.ListCommitsFunc != nil {
		return m.ListCommitsFunc(ctx, token, owner, repo, limit)
	}
	return nil, nil
}

// syncRunner runs background tasks inline so tests can observe their effects
func syncRunner(task func()) { task() }

// errCode extracts the AppError code, or "" when err is not an AppError
func errCode(err error) string {
	if appErr, ok := err.(*response.AppError); ok {
		return appErr.Code
	}
	return ""
}
