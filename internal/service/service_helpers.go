package service

import (
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskboard-api/internal/domain"
	"taskboard-api/internal/dto"
	"taskboard-api/internal/response"
)

// AsyncRunner starts a detached background task. Production code passes GoAsync;
// tests pass a synchronous runner.
type AsyncRunner func(task func())

// GoAsync runs task in a new goroutine and logs a panic instead of crashing the process
func GoAsync(logger *zap.Logger) AsyncRunner {
	return func(task func()) {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("Panic in background task", zap.Any("panic", r))
				}
			}()
			task()
		}()
	}
}

func internalError(msg string, err error) error {
	return response.NewAppError(response.ErrCodeInternal, msg, err.Error())
}

// lookupError maps a repository lookup failure to NotFound or Internal
func lookupError(err error, notFoundMsg, internalMsg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NewAppError(response.ErrCodeNotFound, notFoundMsg, "")
	}
	return internalError(internalMsg, err)
}

func toUserResponse(u *domain.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:                u.ID,
		Email:             u.Email,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Verified:          u.Verified,
		LastLogin:         u.LastLogin,
		GitHubUsername:    u.GitHubUsername,
		GitHubAvatarURL:   u.GitHubAvatarURL,
		GitHubConnectedAt: u.GitHubConnectedAt,
		CreatedAt:         u.CreatedAt,
	}
}

func toBoardResponse(b *domain.Board) *dto.BoardResponse {
	members := b.MemberIDs()
	if !containsID(members, b.OwnerID) {
		members = append([]uuid.UUID{b.OwnerID}, members...)
	}
	return &dto.BoardResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		OwnerID:     b.OwnerID,
		Members:     members,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toCardResponse(c *domain.Card) *dto.CardResponse {
	listMember := []uuid.UUID(c.ListMember)
	if listMember == nil {
		listMember = []uuid.UUID{}
	}
	return &dto.CardResponse{
		ID:          c.ID,
		BoardID:     c.BoardID,
		Name:        c.Name,
		Description: c.Description,
		OwnerID:     c.OwnerID,
		ListMember:  listMember,
		TasksCount:  c.TasksCount,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toTaskResponse(t *domain.Task) *dto.TaskResponse {
	return &dto.TaskResponse{
		ID:              t.ID,
		CardID:          t.CardID,
		BoardID:         t.BoardID,
		Title:           t.Title,
		Description:     t.Description,
		Status:          string(t.Status),
		Priority:        string(t.Priority),
		Deadline:        t.Deadline,
		OwnerID:         t.OwnerID,
		AssignedMembers: t.AssigneeIDs(),
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func toInvitationResponse(i *domain.Invitation) *dto.InvitationResponse {
	return &dto.InvitationResponse{
		ID:           i.ID,
		BoardID:      i.BoardID,
		BoardOwnerID: i.InviterID,
		SentBy:       i.SentByID,
		MemberID:     i.InviteeID,
		EmailMember:  i.InviteeEmail,
		Status:       string(i.Status),
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

func toAttachmentResponse(a *domain.GitHubAttachment) *dto.GitHubAttachmentResponse {
	return &dto.GitHubAttachmentResponse{
		TaskID:       a.TaskID,
		AttachmentID: a.ID,
		Type:         string(a.Kind),
		Number:       a.Number,
		SHA:          a.SHA,
		CreatedBy:    a.CreatedBy,
		CreatedAt:    a.CreatedAt,
	}
}

func toRepositoryResponse(r *domain.GitHubRepository) *dto.GitHubRepositoryResponse {
	return &dto.GitHubRepositoryResponse{
		ID:          r.ID,
		GitHubID:    r.GitHubID,
		FullName:    r.FullName,
		Name:        r.Name,
		Owner:       r.Owner,
		Private:     r.Private,
		URL:         r.URL,
		Description: r.Description,
		Language:    r.Language,
		Stars:       r.Stars,
		Forks:       r.Forks,
	}
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
