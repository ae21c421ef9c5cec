package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard-api/internal/domain"
)

// ErrInvitationNotPending is returned when responding to an invitation that already reached a terminal state
var ErrInvitationNotPending = errors.New("invitation is no longer pending")

// InvitationRepository defines the interface for invitation data access
type InvitationRepository interface {
	Create(ctx context.Context, invitation *domain.Invitation) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Invitation, error)
	FindPending(ctx context.Context, boardID, inviteeID uuid.UUID) (*domain.Invitation, error)
	FindPendingByInvitee(ctx context.Context, inviteeID uuid.UUID) ([]*domain.Invitation, error)
	FindByInviter(ctx context.Context, inviterID uuid.UUID) ([]*domain.Invitation, error)
	Resolve(ctx context.Context, invitation *domain.Invitation, status domain.InvitationStatus) error
}

type invitationRepositoryImpl struct {
	db *gorm.DB
}

// NewInvitationRepository creates a new instance of InvitationRepository
func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &invitationRepositoryImpl{db: db}
}

func (r *invitationRepositoryImpl) Create(ctx context.Context, invitation *domain.Invitation) error {
	return r.db.WithContext(ctx).Create(invitation).Error
}

func (r *invitationRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Invitation, error) {
	var invitation domain.Invitation
	if err := r.db.WithContext(ctx).First(&invitation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *invitationRepositoryImpl) FindPending(ctx context.Context, boardID, inviteeID uuid.UUID) (*domain.Invitation, error) {
	var invitation domain.Invitation
	if err := r.db.WithContext(ctx).
		Where("board_id = ? AND invitee_id = ? AND status = ?", boardID, inviteeID, domain.InvitationStatusPending).
		First(&invitation).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *invitationRepositoryImpl) FindPendingByInvitee(ctx context.Context, inviteeID uuid.UUID) ([]*domain.Invitation, error) {
	var invitations []*domain.Invitation
	if err := r.db.WithContext(ctx).
		Where("invitee_id = ? AND status = ?", inviteeID, domain.InvitationStatusPending).
		Order("created_at DESC").
		Find(&invitations).Error; err != nil {
		return nil, err
	}
	return invitations, nil
}

// FindByInviter returns every invitation sent for boards owned by inviterID, most recent first
func (r *invitationRepositoryImpl) FindByInviter(ctx context.Context, inviterID uuid.UUID) ([]*domain.Invitation, error) {
	var invitations []*domain.Invitation
	if err := r.db.WithContext(ctx).
		Where("inviter_id = ?", inviterID).
		Order("created_at DESC").
		Find(&invitations).Error; err != nil {
		return nil, err
	}
	return invitations, nil
}

// Resolve moves a pending invitation to status and, on acceptance, adds the invitee to the board.
// Both writes share one transaction. The status update is conditional on the row still being
// pending, so of two concurrent responses only the first wins.
func (r *invitationRepositoryImpl) Resolve(ctx context.Context, invitation *domain.Invitation, status domain.InvitationStatus) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.Invitation{}).
			Where("id = ? AND status = ?", invitation.ID, domain.InvitationStatusPending).
			Updates(map[string]interface{}{"status": status, "updated_at": tx.NowFunc()})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInvitationNotPending
		}

		if status == domain.InvitationStatusAccepted {
			if err := addMember(tx, invitation.BoardID, invitation.InviteeID); err != nil {
				return err
			}
		}

		invitation.Status = status
		return nil
	})
}
