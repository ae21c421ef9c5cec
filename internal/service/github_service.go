package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"taskboard-api/internal/authz"
	"taskboard-api/internal/client"
	"taskboard-api/internal/domain"
	"taskboard-api/internal/dto"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/response"
)

const maxRecentCommits = 10

// GitHubService defines the interface for linking GitHub accounts and entities
type GitHubService interface {
	Connect(ctx context.Context, userID uuid.UUID, code string) (*dto.GitHubConnectionResponse, error)
	CheckConnection(ctx context.Context, userID uuid.UUID) (*dto.GitHubConnectionResponse, error)
	Disconnect(ctx context.Context, userID uuid.UUID) error
	ListRepositories(ctx context.Context, userID uuid.UUID) ([]*dto.GitHubRepositoryResponse, error)
	GetRepositoryInfo(ctx context.Context, userID, repositoryID uuid.UUID) (*dto.GitHubRepositoryInfoResponse, error)
	Attach(ctx context.Context, userID uuid.UUID, res authz.Resource, req *dto.GitHubAttachRequest) (*dto.GitHubAttachmentResponse, error)
	ListAttachments(ctx context.Context, userID uuid.UUID, res authz.Resource) ([]*dto.GitHubAttachmentResponse, error)
	DeleteAttachment(ctx context.Context, userID uuid.UUID, res authz.Resource, attachmentID uuid.UUID) error
}

type gitHubServiceImpl struct {
	userRepo       repository.UserRepository
	repoCache      repository.GitHubRepoRepository
	attachmentRepo repository.GitHubAttachmentRepository
	guard          authz.Guard
	github         client.GitHubClient
	logger         *zap.Logger
	now            func() time.Time
}

// NewGitHubService creates a new instance of GitHubService
func NewGitHubService(
	userRepo repository.UserRepository,
	repoCache repository.GitHubRepoRepository,
	attachmentRepo repository.GitHubAttachmentRepository,
	guard authz.Guard,
	github client.GitHubClient,
	logger *zap.Logger,
) GitHubService {
	return &gitHubServiceImpl{
		userRepo:       userRepo,
		repoCache:      repoCache,
		attachmentRepo: attachmentRepo,
		guard:          guard,
		github:         github,
		logger:         logger,
		now:            time.Now,
	}
}

// Connect exchanges an OAuth code and stores the token with the GitHub profile on the user
func (s *gitHubServiceImpl) Connect(ctx context.Context, userID uuid.UUID, code string) (*dto.GitHubConnectionResponse, error) {
	if strings.TrimSpace(code) == "" {
		return nil, response.NewAppError(response.ErrCodeValidation, "Authorization code is required", "")
	}

	token, err := s.github.ExchangeCode(ctx, code)
	if err != nil {
		return nil, githubError("Failed to exchange authorization code", err)
	}
	ghUser, err := s.github.GetUser(ctx, token)
	if err != nil {
		return nil, githubError("Failed to fetch GitHub profile", err)
	}

	connectedAt := s.now()
	fields := map[string]interface{}{
		"github_access_token": token,
		"github_username":     ghUser.Login,
		"github_id":           ghUser.ID,
		"github_avatar_url":   ghUser.AvatarURL,
		"github_connected_at": connectedAt,
	}
	if err := s.userRepo.UpdateFields(ctx, userID, fields); err != nil {
		return nil, lookupError(err, "User not found", "Failed to store GitHub connection")
	}

	s.logger.Info("GitHub account connected",
		zap.String("user_id", userID.String()),
		zap.String("github_username", ghUser.Login),
	)

	return &dto.GitHubConnectionResponse{
		Connected:       true,
		GitHubUsername:  &ghUser.Login,
		GitHubAvatarURL: &ghUser.AvatarURL,
		ConnectedAt:     &connectedAt,
	}, nil
}

func (s *gitHubServiceImpl) CheckConnection(ctx context.Context, userID uuid.UUID) (*dto.GitHubConnectionResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "User not found", "Failed to fetch user")
	}
	if !user.HasGitHub() {
		return &dto.GitHubConnectionResponse{Connected: false}, nil
	}
	return &dto.GitHubConnectionResponse{
		Connected:       true,
		GitHubUsername:  user.GitHubUsername,
		GitHubAvatarURL: user.GitHubAvatarURL,
		ConnectedAt:     user.GitHubConnectedAt,
	}, nil
}

func (s *gitHubServiceImpl) Disconnect(ctx context.Context, userID uuid.UUID) error {
	fields := map[string]interface{}{
		"github_access_token": nil,
		"github_username":     nil,
		"github_id":           nil,
		"github_avatar_url":   nil,
		"github_connected_at": nil,
	}
	if err := s.userRepo.UpdateFields(ctx, userID, fields); err != nil {
		return lookupError(err, "User not found", "Failed to disconnect GitHub")
	}
	return nil
}

// ListRepositories fetches the user's repositories from GitHub and refreshes the local cache
func (s *gitHubServiceImpl) ListRepositories(ctx context.Context, userID uuid.UUID) ([]*dto.GitHubRepositoryResponse, error) {
	user, token, err := s.connectedUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	remote, err := s.github.ListRepositories(ctx, token)
	if err != nil {
		return nil, githubError("Failed to list repositories", err)
	}

	repos := make([]*domain.GitHubRepository, 0, len(remote))
	for _, r := range remote {
		repos = append(repos, &domain.GitHubRepository{
			UserID:      user.ID,
			GitHubID:    r.ID,
			FullName:    r.FullName,
			Name:        r.Name,
			Owner:       r.Owner.Login,
			Private:     r.Private,
			URL:         r.HTMLURL,
			Description: r.Description,
			Language:    r.Language,
			Stars:       r.Stars,
			Forks:       r.Forks,
		})
	}
	if err := s.repoCache.UpsertForUser(ctx, repos); err != nil {
		return nil, internalError("Failed to cache repositories", err)
	}

	responses := make([]*dto.GitHubRepositoryResponse, 0, len(repos))
	for _, r := range repos {
		responses = append(responses, toRepositoryResponse(r))
	}
	return responses, nil
}

// GetRepositoryInfo loads branches, pulls, issues and recent commits of a cached repository concurrently
func (s *gitHubServiceImpl) GetRepositoryInfo(ctx context.Context, userID, repositoryID uuid.UUID) (*dto.GitHubRepositoryInfoResponse, error) {
	repo, err := s.repoCache.FindByID(ctx, repositoryID)
	if err != nil {
		return nil, lookupError(err, "Repository not found", "Failed to fetch repository")
	}
	if repo.UserID != userID {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Repository belongs to another user", "")
	}

	_, token, err := s.connectedUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var (
		branches []client.GitHubBranch
		pulls    []client.GitHubPull
		issues   []client.GitHubIssue
		commits  []client.GitHubCommit
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		branches, err = s.github.ListBranches(gctx, token, repo.Owner, repo.Name)
		return err
	})
	g.Go(func() (err error) {
		pulls, err = s.github.ListPulls(gctx, token, repo.Owner, repo.Name)
		return err
	})
	g.Go(func() (err error) {
		issues, err = s.github.ListIssues(gctx, token, repo.Owner, repo.Name)
		return err
	})
	g.Go(func() (err error) {
		commits, err = s.github.ListCommits(gctx, token, repo.Owner, repo.Name, maxRecentCommits)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, githubError("Failed to fetch repository info", err)
	}

	info := &dto.GitHubRepositoryInfoResponse{
		Repository: toRepositoryResponse(repo),
		Branches:   make([]dto.GitHubBranchInfo, 0, len(branches)),
		Pulls:      make([]dto.GitHubPullInfo, 0, len(pulls)),
		Issues:     make([]dto.GitHubIssueInfo, 0, len(issues)),
		Commits:    make([]dto.GitHubCommitInfo, 0, len(commits)),
	}
	for _, b := range branches {
		info.Branches = append(info.Branches, dto.GitHubBranchInfo{Name: b.Name, LastCommitSHA: b.Commit.SHA})
	}
	for _, p := range pulls {
		info.Pulls = append(info.Pulls, dto.GitHubPullInfo{Title: p.Title, PullNumber: p.Number})
	}
	for _, i := range issues {
		// GitHub lists pull requests among issues
		if i.PullRequest != nil {
			continue
		}
		info.Issues = append(info.Issues, dto.GitHubIssueInfo{Title: i.Title, IssueNumber: i.Number})
	}
	for n, c := range commits {
		if n == maxRecentCommits {
			break
		}
		info.Commits = append(info.Commits, dto.GitHubCommitInfo{SHA: c.SHA, Message: c.Commit.Message})
	}
	return info, nil
}

// Attach links a pull request, issue or commit to a task
func (s *gitHubServiceImpl) Attach(ctx context.Context, userID uuid.UUID, res authz.Resource, req *dto.GitHubAttachRequest) (*dto.GitHubAttachmentResponse, error) {
	kind := domain.GitHubAttachmentKind(req.Type)
	if !kind.IsValid() {
		return nil, response.NewAppError(response.ErrCodeValidation, "type must be pull_request, commit or issue", req.Type)
	}

	attachment := &domain.GitHubAttachment{
		TaskID:    res.TaskID,
		CardID:    res.CardID,
		BoardID:   res.BoardID,
		Kind:      kind,
		CreatedBy: userID,
	}
	switch kind {
	case domain.GitHubAttachmentCommit:
		if req.SHA == nil || strings.TrimSpace(*req.SHA) == "" {
			return nil, response.NewAppError(response.ErrCodeValidation, "sha is required for commits", "")
		}
		sha := strings.ToLower(strings.TrimSpace(*req.SHA))
		attachment.SHA = &sha
	default:
		if req.Number == nil || *req.Number <= 0 {
			return nil, response.NewAppError(response.ErrCodeValidation, "number is required for pull requests and issues", "")
		}
		number := *req.Number
		attachment.Number = &number
	}

	if _, err := s.guard.Authorize(ctx, userID, res, authz.ReadTask); err != nil {
		return nil, err
	}

	if err := s.attachmentRepo.Create(ctx, attachment); err != nil {
		return nil, internalError("Failed to attach GitHub entity", err)
	}
	return toAttachmentResponse(attachment), nil
}

func (s *gitHubServiceImpl) ListAttachments(ctx context.Context, userID uuid.UUID, res authz.Resource) ([]*dto.GitHubAttachmentResponse, error) {
	if _, err := s.guard.Authorize(ctx, userID, res, authz.ReadTask); err != nil {
		return nil, err
	}

	attachments, err := s.attachmentRepo.FindByTaskID(ctx, res.TaskID)
	if err != nil {
		return nil, internalError("Failed to fetch attachments", err)
	}

	responses := make([]*dto.GitHubAttachmentResponse, 0, len(attachments))
	for _, a := range attachments {
		responses = append(responses, toAttachmentResponse(a))
	}
	return responses, nil
}

// DeleteAttachment removes an attachment of the task; only its creator may do so
func (s *gitHubServiceImpl) DeleteAttachment(ctx context.Context, userID uuid.UUID, res authz.Resource, attachmentID uuid.UUID) error {
	if _, err := s.guard.Authorize(ctx, userID, res, authz.ReadTask); err != nil {
		return err
	}

	attachment, err := s.attachmentRepo.FindByID(ctx, attachmentID)
	if err != nil {
		return lookupError(err, "Attachment not found", "Failed to fetch attachment")
	}
	if attachment.TaskID != res.TaskID {
		return response.NewAppError(response.ErrCodeNotFound, "Attachment not found", "")
	}
	if attachment.CreatedBy != userID {
		return response.NewAppError(response.ErrCodeForbidden, "Only the creator can remove this attachment", "")
	}

	if err := s.attachmentRepo.Delete(ctx, attachmentID); err != nil {
		return lookupError(err, "Attachment not found", "Failed to delete attachment")
	}
	return nil
}

func (s *gitHubServiceImpl) connectedUser(ctx context.Context, userID uuid.UUID) (*domain.User, string, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, "", lookupError(err, "User not found", "Failed to fetch user")
	}
	if !user.HasGitHub() {
		return nil, "", response.NewAppError(response.ErrCodeUnauthorized, "GitHub account is not connected", "")
	}
	return user, *user.GitHubAccessToken, nil
}

// githubError maps GitHub API failures: 401 → Unauthorized, 404 → NotFound, anything else → Internal
func githubError(msg string, err error) error {
	var apiErr *client.GitHubAPIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized:
			return response.NewAppError(response.ErrCodeUnauthorized, msg, apiErr.Message)
		case http.StatusNotFound:
			return response.NewAppError(response.ErrCodeNotFound, msg, apiErr.Message)
		}
	}
	return internalError(msg, err)
}
