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

// CardService defines the interface for card business logic
type CardService interface {
	GetCards(ctx context.Context, userID, boardID uuid.UUID) ([]*dto.CardResponse, error)
	GetCardsByOwner(ctx context.Context, userID, boardID, ownerID uuid.UUID) ([]*dto.CardResponse, error)
	CreateCard(ctx context.Context, userID, boardID uuid.UUID, req *dto.CreateCardRequest) (*dto.CardResponse, error)
	GetCard(ctx context.Context, userID, boardID, cardID uuid.UUID) (*dto.CardResponse, error)
	UpdateCard(ctx context.Context, userID, boardID, cardID uuid.UUID, req *dto.UpdateCardRequest) (*dto.CardResponse, error)
	DeleteCard(ctx context.Context, userID, boardID, cardID uuid.UUID) error
}

type cardServiceImpl struct {
	cardRepo repository.CardRepository
	guard    authz.Guard
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewCardService creates a new instance of CardService
func NewCardService(cardRepo repository.CardRepository, guard authz.Guard, m *metrics.Metrics, logger *zap.Logger) CardService {
	return &cardServiceImpl{
		cardRepo: cardRepo,
		guard:    guard,
		metrics:  m,
		logger:   logger,
	}
}

func (s *cardServiceImpl) GetCards(ctx context.Context, userID, boardID uuid.UUID) ([]*dto.CardResponse, error) {
	if _, err := s.guard.Authorize(ctx, userID, authz.Resource{BoardID: boardID}, authz.ReadBoard); err != nil {
		return nil, err
	}

	cards, err := s.cardRepo.FindByBoardID(ctx, boardID)
	if err != nil {
		return nil, internalError("Failed to fetch cards", err)
	}
	return toCardResponses(cards), nil
}

// GetCardsByOwner returns the cards of the board created by ownerID
func (s *cardServiceImpl) GetCardsByOwner(ctx context.Context, userID, boardID, ownerID uuid.UUID) ([]*dto.CardResponse, error) {
	if _, err := s.guard.Authorize(ctx, userID, authz.Resource{BoardID: boardID}, authz.ReadBoard); err != nil {
		return nil, err
	}

	cards, err := s.cardRepo.FindByBoardAndOwner(ctx, boardID, ownerID)
	if err != nil {
		return nil, internalError("Failed to fetch cards", err)
	}
	return toCardResponses(cards), nil
}

func (s *cardServiceImpl) CreateCard(ctx context.Context, userID, boardID uuid.UUID, req *dto.CreateCardRequest) (*dto.CardResponse, error) {
	if _, err := s.guard.Authorize(ctx, userID, authz.Resource{BoardID: boardID}, authz.CreateCard); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, response.NewAppError(response.ErrCodeValidation, "Card name is required", "")
	}

	card := &domain.Card{
		BoardID:     boardID,
		Name:        name,
		Description: req.Description,
		OwnerID:     userID,
		ListMember:  []uuid.UUID{userID},
	}
	if err := s.cardRepo.Create(ctx, card); err != nil {
		return nil, internalError("Failed to create card", err)
	}

	if s.metrics != nil {
		s.metrics.IncrementCardCreated()
	}
	return toCardResponse(card), nil
}

func (s *cardServiceImpl) GetCard(ctx context.Context, userID, boardID, cardID uuid.UUID) (*dto.CardResponse, error) {
	snap, err := s.guard.Authorize(ctx, userID, authz.Resource{BoardID: boardID, CardID: cardID}, authz.ReadCard)
	if err != nil {
		return nil, err
	}
	return toCardResponse(snap.Card), nil
}

// UpdateCard changes name, description or list_member. Listed users must be board members.
func (s *cardServiceImpl) UpdateCard(ctx context.Context, userID, boardID, cardID uuid.UUID, req *dto.UpdateCardRequest) (*dto.CardResponse, error) {
	snap, err := s.guard.Authorize(ctx, userID, authz.Resource{BoardID: boardID, CardID: cardID}, authz.UpdateCard)
	if err != nil {
		return nil, err
	}

	card := snap.Card
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, response.NewAppError(response.ErrCodeValidation, "Card name cannot be empty", "")
		}
		card.Name = name
	}
	if req.Description != nil {
		card.Description = *req.Description
	}
	if req.ListMember != nil {
		for _, id := range *req.ListMember {
			if !snap.Board.HasMember(id) {
				return nil, response.NewAppError(response.ErrCodeValidation, "list_member contains a user who is not a board member", id.String())
			}
		}
		card.ListMember = dedupeIDs(*req.ListMember)
	}

	if err := s.cardRepo.Update(ctx, card); err != nil {
		return nil, internalError("Failed to update card", err)
	}
	return toCardResponse(card), nil
}

// DeleteCard removes the card together with its tasks
func (s *cardServiceImpl) DeleteCard(ctx context.Context, userID, boardID, cardID uuid.UUID) error {
	if _, err := s.guard.Authorize(ctx, userID, authz.Resource{BoardID: boardID, CardID: cardID}, authz.DeleteCard); err != nil {
		return err
	}

	if err := s.cardRepo.DeleteCascade(ctx, cardID); err != nil {
		return lookupError(err, "Card not found", "Failed to delete card")
	}
	return nil
}

func toCardResponses(cards []*domain.Card) []*dto.CardResponse {
	responses := make([]*dto.CardResponse, 0, len(cards))
	for _, c := range cards {
		responses = append(responses, toCardResponse(c))
	}
	return responses
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
