package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskboard-api/internal/authz"
	"taskboard-api/internal/client"
	"taskboard-api/internal/domain"
	"taskboard-api/internal/dto"
	"taskboard-api/internal/metrics"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/response"
)

const invitationEmailTimeout = 30 * time.Second

// InvitationService defines the interface for the invitation lifecycle
type InvitationService interface {
	Invite(ctx context.Context, userID, boardID uuid.UUID, req *dto.InviteRequest) (*dto.InvitationResponse, error)
	Respond(ctx context.Context, userID, boardID uuid.UUID, req *dto.RespondInvitationRequest) (*dto.InvitationResponse, error)
	ListPendingForUser(ctx context.Context, userID uuid.UUID) ([]*dto.InvitationResponse, error)
	ListSentByOwner(ctx context.Context, ownerID uuid.UUID) ([]*dto.InvitationResponse, error)
}

type invitationServiceImpl struct {
	invitationRepo repository.InvitationRepository
	userRepo       repository.UserRepository
	guard          authz.Guard
	email          client.EmailClient
	frontendURL    string
	async          AsyncRunner
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

// NewInvitationService creates a new instance of InvitationService
func NewInvitationService(
	invitationRepo repository.InvitationRepository,
	userRepo repository.UserRepository,
	guard authz.Guard,
	email client.EmailClient,
	frontendURL string,
	async AsyncRunner,
	m *metrics.Metrics,
	logger *zap.Logger,
) InvitationService {
	return &invitationServiceImpl{
		invitationRepo: invitationRepo,
		userRepo:       userRepo,
		guard:          guard,
		email:          email,
		frontendURL:    frontendURL,
		async:          async,
		metrics:        m,
		logger:         logger,
	}
}

// Invite creates a pending invitation for the registered user with the given email
func (s *invitationServiceImpl) Invite(ctx context.Context, userID, boardID uuid.UUID, req *dto.InviteRequest) (*dto.InvitationResponse, error) {
	snap, err := s.guard.Authorize(ctx, userID, authz.Resource{BoardID: boardID}, authz.Invite)
	if err != nil {
		return nil, err
	}
	board := snap.Board

	email := strings.ToLower(strings.TrimSpace(req.EmailMember))
	invitee, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, lookupError(err, "No registered user with this email", "Failed to look up invitee")
	}

	if board.HasMember(invitee.ID) {
		return nil, response.NewAppError(response.ErrCodeValidation, "User is already a member of this board", "")
	}

	if _, err := s.invitationRepo.FindPending(ctx, boardID, invitee.ID); err == nil {
		return nil, response.NewAppError(response.ErrCodeConflict, "A pending invitation already exists for this user", "")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internalError("Failed to check existing invitations", err)
	}

	invitation := &domain.Invitation{
		BoardID:      boardID,
		InviterID:    board.OwnerID,
		SentByID:     userID,
		InviteeID:    invitee.ID,
		InviteeEmail: invitee.Email,
		Status:       domain.InvitationStatusPending,
	}
	if err := s.invitationRepo.Create(ctx, invitation); err != nil {
		return nil, internalError("Failed to create invitation", err)
	}

	if s.metrics != nil {
		s.metrics.RecordInvitationEvent("sent")
	}

	boardName := board.Name
	s.async(func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), invitationEmailTimeout)
		defer cancel()
		s.sendInvitation(sendCtx, invitee.Email, boardName)
	})

	return toInvitationResponse(invitation), nil
}

// Respond accepts or declines an invitation. Only a pending invitation can be answered.
func (s *invitationServiceImpl) Respond(ctx context.Context, userID, boardID uuid.UUID, req *dto.RespondInvitationRequest) (*dto.InvitationResponse, error) {
	decision := domain.InvitationStatus(req.Status)
	if decision != domain.InvitationStatusAccepted && decision != domain.InvitationStatusDeclined {
		return nil, response.NewAppError(response.ErrCodeValidation, "status must be accepted or declined", req.Status)
	}

	snap, err := s.guard.Authorize(ctx, userID, authz.Resource{BoardID: boardID, InvitationID: req.InviteID}, authz.RespondInvitation)
	if err != nil {
		return nil, err
	}

	invitation := snap.Invitation
	if invitation.Status.IsTerminal() {
		return nil, response.NewAppError(response.ErrCodeConflict, "Invitation has already been answered", string(invitation.Status))
	}

	if err := s.invitationRepo.Resolve(ctx, invitation, decision); err != nil {
		if errors.Is(err, repository.ErrInvitationNotPending) {
			return nil, response.NewAppError(response.ErrCodeConflict, "Invitation has already been answered", "")
		}
		return nil, internalError("Failed to update invitation", err)
	}

	if s.metrics != nil {
		s.metrics.RecordInvitationEvent(string(decision))
	}
	s.logger.Info("Invitation answered",
		zap.String("invitation_id", invitation.ID.String()),
		zap.String("board_id", boardID.String()),
		zap.String("status", string(decision)),
	)

	return toInvitationResponse(invitation), nil
}

func (s *invitationServiceImpl) ListPendingForUser(ctx context.Context, userID uuid.UUID) ([]*dto.InvitationResponse, error) {
	invitations, err := s.invitationRepo.FindPendingByInvitee(ctx, userID)
	if err != nil {
		return nil, internalError("Failed to fetch invitations", err)
	}
	return toInvitationResponses(invitations), nil
}

func (s *invitationServiceImpl) ListSentByOwner(ctx context.Context, ownerID uuid.UUID) ([]*dto.InvitationResponse, error) {
	invitations, err := s.invitationRepo.FindByInviter(ctx, ownerID)
	if err != nil {
		return nil, internalError("Failed to fetch invitations", err)
	}
	return toInvitationResponses(invitations), nil
}

func (s *invitationServiceImpl) sendInvitation(ctx context.Context, to, boardName string) {
	msg, err := client.InvitationEmail(to, boardName, s.frontendURL)
	if err != nil {
		s.logger.Error("Failed to render invitation email", zap.Error(err))
		return
	}
	if err := s.email.Send(ctx, msg); err != nil {
		s.logger.Warn("Failed to send invitation email", zap.String("to", to), zap.Error(err))
	}
}

func toInvitationResponses(invitations []*domain.Invitation) []*dto.InvitationResponse {
	responses := make([]*dto.InvitationResponse, 0, len(invitations))
	for _, inv := range invitations {
		responses = append(responses, toInvitationResponse(inv))
	}
	return responses
}
