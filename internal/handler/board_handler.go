package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard-api/internal/dto"
	"taskboard-api/internal/response"
	"taskboard-api/internal/service"
)

type BoardHandler struct {
	boardService service.BoardService
	logger       *zap.Logger
}

func NewBoardHandler(boardService service.BoardService, logger *zap.Logger) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
		logger:       logger,
	}
}

// GetBoards godoc
// @Summary      내 Board 목록
// @Description  소유하거나 멤버로 참여한 Board를 최신순으로 조회합니다
// @Tags         boards
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse{data=[]dto.BoardResponse}
// @Failure      401 {object} response.ErrorResponse "인증 필요"
// @Router       /boards [get]
func (h *BoardHandler) GetBoards(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boards, err := h.boardService.GetBoards(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, boards)
}

// CreateBoard godoc
// @Summary      Board 생성
// @Description  요청자를 소유자이자 첫 멤버로 Board를 만듭니다
// @Tags         boards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBoardRequest true "Board 생성 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.BoardResponse}
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Router       /boards [post]
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBoardRequest
	if !bindJSON(c, &req) {
		return
	}

	board, err := h.boardService.CreateBoard(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, board)
}

// GetBoard godoc
// @Summary      Board 조회
// @Tags         boards
// @Produce      json
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.BoardResponse}
// @Failure      403 {object} response.ErrorResponse "멤버가 아님"
// @Failure      404 {object} response.ErrorResponse "Board를 찾을 수 없음"
// @Router       /boards/{boardId} [get]
func (h *BoardHandler) GetBoard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := uuidParam(c, "boardId", "board")
	if !ok {
		return
	}

	board, err := h.boardService.GetBoard(c.Request.Context(), userID, boardID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, board)
}

// UpdateBoard godoc
// @Summary      Board 수정
// @Description  소유자만 이름과 설명을 수정할 수 있습니다
// @Tags         boards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Param        request body dto.UpdateBoardRequest true "수정할 필드"
// @Success      200 {object} response.SuccessResponse{data=dto.BoardResponse}
// @Failure      403 {object} response.ErrorResponse "소유자가 아님"
// @Failure      404 {object} response.ErrorResponse "Board를 찾을 수 없음"
// @Router       /boards/{boardId} [put]
func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := uuidParam(c, "boardId", "board")
	if !ok {
		return
	}

	var req dto.UpdateBoardRequest
	if !bindJSON(c, &req) {
		return
	}

	board, err := h.boardService.UpdateBoard(c.Request.Context(), userID, boardID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, board)
}

// DeleteBoard godoc
// @Summary      Board 삭제
// @Description  소유자만 삭제할 수 있으며 멤버, 초대, 카드, 태스크가 함께 삭제됩니다
// @Tags         boards
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Success      204 "삭제 성공"
// @Failure      403 {object} response.ErrorResponse "소유자가 아님"
// @Failure      404 {object} response.ErrorResponse "Board를 찾을 수 없음"
// @Router       /boards/{boardId} [delete]
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := uuidParam(c, "boardId", "board")
	if !ok {
		return
	}

	if err := h.boardService.DeleteBoard(c.Request.Context(), userID, boardID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RemoveMember godoc
// @Summary      Board 멤버 제거
// @Tags         boards
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Param        memberId path string true "Member ID (UUID)"
// @Success      204 "제거 성공"
// @Failure      400 {object} response.ErrorResponse "소유자는 제거할 수 없음"
// @Failure      403 {object} response.ErrorResponse "소유자가 아님"
// @Failure      404 {object} response.ErrorResponse "Board 또는 멤버를 찾을 수 없음"
// @Router       /boards/{boardId}/members/{memberId} [delete]
func (h *BoardHandler) RemoveMember(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ids, ok := uuidParams(c, [2]string{"boardId", "board"}, [2]string{"memberId", "member"})
	if !ok {
		return
	}

	if err := h.boardService.RemoveMember(c.Request.Context(), userID, ids[0], ids[1]); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
