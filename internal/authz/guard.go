package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard-api/internal/domain"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/response"
)

// Action is an operation a user attempts on a resource
type Action string

const (
	ReadBoard         Action = "board:read"
	UpdateBoard       Action = "board:update"
	DeleteBoard       Action = "board:delete"
	ManageMembers     Action = "board:manage_members"
	Invite            Action = "board:invite"
	CreateCard        Action = "card:create"
	ReadCard          Action = "card:read"
	UpdateCard        Action = "card:update"
	DeleteCard        Action = "card:delete"
	CreateTask        Action = "task:create"
	ReadTask          Action = "task:read"
	UpdateTask        Action = "task:update"
	DeleteTask        Action = "task:delete"
	MoveTask          Action = "task:move"
	AssignTask        Action = "task:assign"
	RespondInvitation Action = "invitation:respond"
)

type level int

const (
	levelBoard level = iota
	levelCard
	levelTask
)

type rule int

const (
	ruleMember rule = iota
	ruleBoardOwner
	ruleResourceOwner
)

type policy struct {
	level level
	rule  rule
}

var policies = map[Action]policy{
	ReadBoard:     {levelBoard, ruleMember},
	Invite:        {levelBoard, ruleMember},
	CreateCard:    {levelBoard, ruleMember},
	UpdateBoard:   {levelBoard, ruleBoardOwner},
	DeleteBoard:   {levelBoard, ruleBoardOwner},
	ManageMembers: {levelBoard, ruleBoardOwner},
	ReadCard:      {levelCard, ruleMember},
	CreateTask:    {levelCard, ruleMember},
	UpdateCard:    {levelCard, ruleResourceOwner},
	DeleteCard:    {levelCard, ruleResourceOwner},
	ReadTask:      {levelTask, ruleMember},
	AssignTask:    {levelTask, ruleMember},
	UpdateTask:    {levelTask, ruleResourceOwner},
	DeleteTask:    {levelTask, ruleResourceOwner},
	MoveTask:      {levelTask, ruleResourceOwner},
}

// Resource identifies the target of an action by the IDs found in the route.
// MemberID is only read for AssignTask, InvitationID only for RespondInvitation.
type Resource struct {
	BoardID      uuid.UUID
	CardID       uuid.UUID
	TaskID       uuid.UUID
	InvitationID uuid.UUID
	MemberID     uuid.UUID
}

// Snapshot carries the records loaded while deciding, so callers need not read them again
type Snapshot struct {
	Board      *domain.Board
	Card       *domain.Card
	Task       *domain.Task
	Invitation *domain.Invitation
}

// Guard decides whether a user may perform an action. It never writes.
type Guard interface {
	Authorize(ctx context.Context, userID uuid.UUID, res Resource, action Action) (*Snapshot, error)
}

type guardImpl struct {
	boardRepo      repository.BoardRepository
	cardRepo       repository.CardRepository
	taskRepo       repository.TaskRepository
	invitationRepo repository.InvitationRepository
}

// NewGuard creates a new Guard over the given repositories
func NewGuard(
	boardRepo repository.BoardRepository,
	cardRepo repository.CardRepository,
	taskRepo repository.TaskRepository,
	invitationRepo repository.InvitationRepository,
) Guard {
	return &guardImpl{
		boardRepo:      boardRepo,
		cardRepo:       cardRepo,
		taskRepo:       taskRepo,
		invitationRepo: invitationRepo,
	}
}

// Authorize resolves existence first, then parent binding, then membership, then ownership
func (g *guardImpl) Authorize(ctx context.Context, userID uuid.UUID, res Resource, action Action) (*Snapshot, error) {
	if action == RespondInvitation {
		return g.authorizeInvitation(ctx, userID, res)
	}

	p, ok := policies[action]
	if !ok {
		return nil, response.NewAppError(response.ErrCodeInternal, "Unknown action", string(action))
	}

	snap := &Snapshot{}

	board, err := g.boardRepo.FindByID(ctx, res.BoardID)
	if err != nil {
		return nil, lookupError(err, "Board not found")
	}
	snap.Board = board

	if p.level >= levelCard {
		card, err := g.cardRepo.FindByID(ctx, res.CardID)
		if err != nil {
			return nil, lookupError(err, "Card not found")
		}
		snap.Card = card
	}
	if p.level >= levelTask {
		task, err := g.taskRepo.FindByID(ctx, res.TaskID)
		if err != nil {
			return nil, lookupError(err, "Task not found")
		}
		snap.Task = task
	}

	if snap.Card != nil && snap.Card.BoardID != board.ID {
		return nil, response.NewAppError(response.ErrCodeValidation, "Card does not belong to this board", "")
	}
	if snap.Task != nil && snap.Task.CardID != snap.Card.ID {
		return nil, response.NewAppError(response.ErrCodeValidation, "Task does not belong to this card", "")
	}

	if !board.HasMember(userID) {
		return nil, response.NewAppError(response.ErrCodeForbidden, "You are not a member of this board", "")
	}

	switch p.rule {
	case ruleBoardOwner:
		if board.OwnerID != userID {
			return nil, response.NewAppError(response.ErrCodeForbidden, "Only the board owner can perform this action", "")
		}
	case ruleResourceOwner:
		owner := snap.Card.OwnerID
		if snap.Task != nil {
			owner = snap.Task.OwnerID
		}
		if owner != userID && board.OwnerID != userID {
			return nil, response.NewAppError(response.ErrCodeForbidden, "Only the creator or the board owner can perform this action", "")
		}
	}

	if action == AssignTask && !board.HasMember(res.MemberID) {
		return nil, response.NewAppError(response.ErrCodeValidation, "Member is not part of this board", "")
	}

	return snap, nil
}

// authorizeInvitation admits only the invitee, and only through the invitation's own board
func (g *guardImpl) authorizeInvitation(ctx context.Context, userID uuid.UUID, res Resource) (*Snapshot, error) {
	invitation, err := g.invitationRepo.FindByID(ctx, res.InvitationID)
	if err != nil {
		return nil, lookupError(err, "Invitation not found")
	}
	if invitation.InviteeID != userID {
		return nil, response.NewAppError(response.ErrCodeForbidden, "This invitation is not addressed to you", "")
	}
	if invitation.BoardID != res.BoardID {
		return nil, response.NewAppError(response.ErrCodeValidation, "Invitation does not belong to this board", "")
	}
	return &Snapshot{Invitation: invitation}, nil
}

func lookupError(err error, notFoundMsg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NewAppError(response.ErrCodeNotFound, notFoundMsg, "")
	}
	return response.NewAppError(response.ErrCodeInternal, "Failed to load resource", fmt.Sprint(err))
}
