package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard-api/internal/dto"
	"taskboard-api/internal/response"
	"taskboard-api/internal/service"
)

type InvitationHandler struct {
	invitationService service.InvitationService
	logger            *zap.Logger
}

func NewInvitationHandler(invitationService service.InvitationService, logger *zap.Logger) *InvitationHandler {
	return &InvitationHandler{
		invitationService: invitationService,
		logger:            logger,
	}
}

// ListPending godoc
// @Summary      받은 초대 목록
// @Description  나에게 온 대기 중인 초대를 조회합니다
// @Tags         invitations
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse{data=[]dto.InvitationResponse}
// @Router       /boards/invites [get]
func (h *InvitationHandler) ListPending(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	invitations, err := h.invitationService.ListPendingForUser(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, invitations)
}

// ListSent godoc
// @Summary      보낸 초대 목록
// @Description  내가 소유한 Board에서 보낸 초대를 모든 상태로 조회합니다
// @Tags         invitations
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse{data=[]dto.InvitationResponse}
// @Router       /boards/sent-invites [get]
func (h *InvitationHandler) ListSent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	invitations, err := h.invitationService.ListSentByOwner(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, invitations)
}

// Invite godoc
// @Summary      Board 초대
// @Description  가입된 사용자를 이메일로 초대합니다
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Param        request body dto.InviteRequest true "초대 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.InvitationResponse}
// @Failure      400 {object} response.ErrorResponse "이미 멤버"
// @Failure      403 {object} response.ErrorResponse "멤버가 아님"
// @Failure      404 {object} response.ErrorResponse "사용자 또는 Board를 찾을 수 없음"
// @Failure      409 {object} response.ErrorResponse "대기 중인 초대가 있음"
// @Router       /boards/{boardId}/invite [post]
func (h *InvitationHandler) Invite(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := uuidParam(c, "boardId", "board")
	if !ok {
		return
	}

	var req dto.InviteRequest
	if !bindJSON(c, &req) {
		return
	}

	invitation, err := h.invitationService.Invite(c.Request.Context(), userID, boardID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, invitation)
}

// Respond godoc
// @Summary      초대 응답
// @Description  초대받은 사용자가 수락 또는 거절합니다
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Param        request body dto.RespondInvitationRequest true "응답 (accepted | declined)"
// @Success      200 {object} response.SuccessResponse{data=dto.InvitationResponse}
// @Failure      400 {object} response.ErrorResponse "잘못된 상태 또는 Board 불일치"
// @Failure      403 {object} response.ErrorResponse "초대 대상이 아님"
// @Failure      404 {object} response.ErrorResponse "초대를 찾을 수 없음"
// @Failure      409 {object} response.ErrorResponse "이미 처리된 초대"
// @Router       /boards/{boardId}/invite/accept [post]
func (h *InvitationHandler) Respond(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := uuidParam(c, "boardId", "board")
	if !ok {
		return
	}

	var req dto.RespondInvitationRequest
	if !bindJSON(c, &req) {
		return
	}

	invitation, err := h.invitationService.Respond(c.Request.Context(), userID, boardID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, invitation)
}
