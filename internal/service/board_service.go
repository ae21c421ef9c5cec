package service

import (
	"context"
	"errors"
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

// BoardService defines the interface for board business logic
type BoardService interface {
	GetBoards(ctx context.Context, userID uuid.UUID) ([]*dto.BoardResponse, error)
	CreateBoard(ctx context.Context, userID uuid.UUID, req *dto.CreateBoardRequest) (*dto.BoardResponse, error)
	GetBoard(ctx context.Context, userID, boardID uuid.UUID) (*dto.BoardResponse, error)
	UpdateBoard(ctx context.Context, userID, boardID uuid.UUID, req *dto.UpdateBoardRequest) (*dto.BoardResponse, error)
	DeleteBoard(ctx context.Context, userID, boardID uuid.UUID) error
	RemoveMember(ctx context.Context, userID, boardID, memberID uuid.UUID) error
}

type boardServiceImpl struct {
	boardRepo repository.BoardRepository
	guard     authz.Guard
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewBoardService creates a new instance of BoardService
func NewBoardService(
	boardRepo repository.BoardRepository,
	guard authz.Guard,
	m *metrics.Metrics,
	logger *zap.Logger,
) BoardService {
	return &boardServiceImpl{
		boardRepo: boardRepo,
		guard:     guard,
		metrics:   m,
		logger:    logger,
	}
}

// GetBoards returns boards the user owns or belongs to, newest first
func (s *boardServiceImpl) GetBoards(ctx context.Context, userID uuid.UUID) ([]*dto.BoardResponse, error) {
	boards, err := s.boardRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, internalError("Failed to fetch boards", err)
	}

	responses := make([]*dto.BoardResponse, 0, len(boards))
	for _, b := range boards {
		responses = append(responses, toBoardResponse(b))
	}
	return responses, nil
}

// CreateBoard creates a board owned by userID; the owner joins the member set in the same transaction
func (s *boardServiceImpl) CreateBoard(ctx context.Context, userID uuid.UUID, req *dto.CreateBoardRequest) (*dto.BoardResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, response.NewAppError(response.ErrCodeValidation, "Board name is required", "")
	}

	board := &domain.Board{
		Name:        name,
		Description: req.Description,
		OwnerID:     userID,
	}
	if err := s.boardRepo.CreateWithOwner(ctx, board); err != nil {
		return nil, internalError("Failed to create board", err)
	}

	if s.metrics != nil {
		s.metrics.IncrementBoardCreated()
	}
	s.logger.Info("Board created",
		zap.String("board_id", board.ID.String()),
		zap.String("owner_id", userID.String()),
	)

	return toBoardResponse(board), nil
}

func (s *boardServiceImpl) GetBoard(ctx context.Context, userID, boardID uuid.UUID) (*dto.BoardResponse, error) {
	snap, err := s.guard.Authorize(ctx, userID, authz.Resource{BoardID: boardID}, authz.ReadBoard)
	if err != nil {
		return nil, err
	}
	return toBoardResponse(snap.Board), nil
}

func (s *boardServiceImpl) UpdateBoard(ctx context.Context, userID, boardID uuid.UUID, req *dto.UpdateBoardRequest) (*dto.BoardResponse, error) {
	snap, err := s.guard.Authorize(ctx, userID, authz.Resource{BoardID: boardID}, authz.UpdateBoard)
	if err != nil {
		return nil, err
	}

	board := snap.Board
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, response.NewAppError(response.ErrCodeValidation, "Board name cannot be empty", "")
		}
		board.Name = name
	}
	if req.Description != nil {
		board.Description = *req.Description
	}

	if err := s.boardRepo.Update(ctx, board); err != nil {
		return nil, internalError("Failed to update board", err)
	}
	return toBoardResponse(board), nil
}

// DeleteBoard removes the board with its cards, tasks, members and invitations
func (s *boardServiceImpl) DeleteBoard(ctx context.Context, userID, boardID uuid.UUID) error {
	if _, err := s.guard.Authorize(ctx, userID, authz.Resource{BoardID: boardID}, authz.DeleteBoard); err != nil {
		return err
	}

	if err := s.boardRepo.DeleteCascade(ctx, boardID); err != nil {
		return lookupError(err, "Board not found", "Failed to delete board")
	}

	s.logger.Info("Board deleted",
		zap.String("board_id", boardID.String()),
		zap.String("user_id", userID.String()),
	)
	return nil
}

// RemoveMember drops memberID from the board; the owner cannot be removed
func (s *boardServiceImpl) RemoveMember(ctx context.Context, userID, boardID, memberID uuid.UUID) error {
	if _, err := s.guard.Authorize(ctx, userID, authz.Resource{BoardID: boardID}, authz.ManageMembers); err != nil {
		return err
	}

	if err := s.boardRepo.RemoveMember(ctx, boardID, memberID); err != nil {
		if errors.Is(err, repository.ErrOwnerMembership) {
			return response.NewAppError(response.ErrCodeValidation, "The board owner cannot be removed", "")
		}
		return lookupError(err, "Member not found", "Failed to remove member")
	}
	return nil
}
