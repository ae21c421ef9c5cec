package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard-api/internal/dto"
	"taskboard-api/internal/response"
	"taskboard-api/internal/service"
)

type CardHandler struct {
	cardService service.CardService
	logger      *zap.Logger
}

func NewCardHandler(cardService service.CardService, logger *zap.Logger) *CardHandler {
	return &CardHandler{
		cardService: cardService,
		logger:      logger,
	}
}

// GetCards godoc
// @Summary      Card 목록
// @Tags         cards
// @Produce      json
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.CardResponse}
// @Failure      403 {object} response.ErrorResponse "멤버가 아님"
// @Failure      404 {object} response.ErrorResponse "Board를 찾을 수 없음"
// @Router       /boards/{boardId}/cards [get]
func (h *CardHandler) GetCards(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := uuidParam(c, "boardId", "board")
	if !ok {
		return
	}

	cards, err := h.cardService.GetCards(c.Request.Context(), userID, boardID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, cards)
}

// GetCardsByOwner godoc
// @Summary      사용자가 만든 Card 목록
// @Tags         cards
// @Produce      json
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Param        userId path string true "Owner ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.CardResponse}
// @Failure      403 {object} response.ErrorResponse "멤버가 아님"
// @Router       /boards/{boardId}/cards/user/{userId} [get]
func (h *CardHandler) GetCardsByOwner(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ids, ok := uuidParams(c, [2]string{"boardId", "board"}, [2]string{"userId", "user"})
	if !ok {
		return
	}

	cards, err := h.cardService.GetCardsByOwner(c.Request.Context(), userID, ids[0], ids[1])
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, cards)
}

// CreateCard godoc
// @Summary      Card 생성
// @Tags         cards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Param        request body dto.CreateCardRequest true "Card 생성 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.CardResponse}
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      403 {object} response.ErrorResponse "멤버가 아님"
// @Router       /boards/{boardId}/cards [post]
func (h *CardHandler) CreateCard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := uuidParam(c, "boardId", "board")
	if !ok {
		return
	}

	var req dto.CreateCardRequest
	if !bindJSON(c, &req) {
		return
	}

	card, err := h.cardService.CreateCard(c.Request.Context(), userID, boardID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, card)
}

// GetCard godoc
// @Summary      Card 조회
// @Tags         cards
// @Produce      json
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Param        cardId path string true "Card ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.CardResponse}
// @Failure      400 {object} response.ErrorResponse "Card가 Board에 속하지 않음"
// @Failure      404 {object} response.ErrorResponse "Card를 찾을 수 없음"
// @Router       /boards/{boardId}/cards/{cardId} [get]
func (h *CardHandler) GetCard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ids, ok := uuidParams(c, [2]string{"boardId", "board"}, [2]string{"cardId", "card"})
	if !ok {
		return
	}

	card, err := h.cardService.GetCard(c.Request.Context(), userID, ids[0], ids[1])
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, card)
}

// UpdateCard godoc
// @Summary      Card 수정
// @Description  Card 소유자 또는 Board 소유자가 수정할 수 있습니다
// @Tags         cards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Param        cardId path string true "Card ID (UUID)"
// @Param        request body dto.UpdateCardRequest true "수정할 필드"
// @Success      200 {object} response.SuccessResponse{data=dto.CardResponse}
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Router       /boards/{boardId}/cards/{cardId} [put]
func (h *CardHandler) UpdateCard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ids, ok := uuidParams(c, [2]string{"boardId", "board"}, [2]string{"cardId", "card"})
	if !ok {
		return
	}

	var req dto.UpdateCardRequest
	if !bindJSON(c, &req) {
		return
	}

	card, err := h.cardService.UpdateCard(c.Request.Context(), userID, ids[0], ids[1], &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, card)
}

// DeleteCard godoc
// @Summary      Card 삭제
// @Description  Card와 하위 Task가 함께 삭제됩니다
// @Tags         cards
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Param        cardId path string true "Card ID (UUID)"
// @Success      204 "삭제 성공"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Router       /boards/{boardId}/cards/{cardId} [delete]
func (h *CardHandler) DeleteCard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ids, ok := uuidParams(c, [2]string{"boardId", "board"}, [2]string{"cardId", "card"})
	if !ok {
		return
	}

	if err := h.cardService.DeleteCard(c.Request.Context(), userID, ids[0], ids[1]); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
