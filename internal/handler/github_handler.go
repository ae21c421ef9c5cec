package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard-api/internal/authz"
	"taskboard-api/internal/dto"
	"taskboard-api/internal/response"
	"taskboard-api/internal/service"
)

type GitHubHandler struct {
	githubService service.GitHubService
	logger        *zap.Logger
}

func NewGitHubHandler(githubService service.GitHubService, logger *zap.Logger) *GitHubHandler {
	return &GitHubHandler{
		githubService: githubService,
		logger:        logger,
	}
}

// Callback godoc
// @Summary      GitHub 연결
// @Description  OAuth 코드를 액세스 토큰으로 교환해 계정에 저장합니다
// @Tags         github
// @Produce      json
// @Security     BearerAuth
// @Param        code query string true "OAuth code"
// @Success      200 {object} response.SuccessResponse{data=dto.GitHubConnectionResponse}
// @Failure      400 {object} response.ErrorResponse "code 누락"
// @Failure      401 {object} response.ErrorResponse "GitHub 인증 실패"
// @Router       /github/callback [get]
func (h *GitHubHandler) Callback(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.githubService.Connect(c.Request.Context(), userID, c.Query("code"))
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// CheckConnection godoc
// @Summary      GitHub 연결 상태
// @Tags         github
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse{data=dto.GitHubConnectionResponse}
// @Router       /github/check-connection [get]
func (h *GitHubHandler) CheckConnection(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.githubService.CheckConnection(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// Disconnect godoc
// @Summary      GitHub 연결 해제
// @Tags         github
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse "해제 성공"
// @Router       /github/disconnect [post]
func (h *GitHubHandler) Disconnect(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.githubService.Disconnect(c.Request.Context(), userID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccessWithMessage(c, http.StatusOK, nil, "GitHub disconnected")
}

// ListRepositories godoc
// @Summary      GitHub 저장소 목록
// @Tags         github
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse{data=[]dto.GitHubRepositoryResponse}
// @Failure      401 {object} response.ErrorResponse "GitHub 미연결"
// @Router       /github/repositories [get]
func (h *GitHubHandler) ListRepositories(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	repos, err := h.githubService.ListRepositories(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, repos)
}

// GetRepositoryInfo godoc
// @Summary      저장소 상세
// @Description  브랜치, PR, 이슈, 최근 커밋 10개를 조회합니다
// @Tags         github
// @Produce      json
// @Security     BearerAuth
// @Param        repositoryId path string true "Repository ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.GitHubRepositoryInfoResponse}
// @Failure      403 {object} response.ErrorResponse "다른 사용자의 저장소"
// @Failure      404 {object} response.ErrorResponse "저장소를 찾을 수 없음"
// @Router       /github/repositories/{repositoryId}/github-info [get]
func (h *GitHubHandler) GetRepositoryInfo(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	repositoryID, ok := uuidParam(c, "repositoryId", "repository")
	if !ok {
		return
	}

	info, err := h.githubService.GetRepositoryInfo(c.Request.Context(), userID, repositoryID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, info)
}

func attachmentResource(c *gin.Context) (authz.Resource, bool) {
	ids, ok := uuidParams(c, boardParam, cardParam, taskParam)
	if !ok {
		return authz.Resource{}, false
	}
	return authz.Resource{BoardID: ids[0], CardID: ids[1], TaskID: ids[2]}, true
}

// Attach godoc
// @Summary      Task에 GitHub 항목 연결
// @Tags         github
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Param        cardId path string true "Card ID (UUID)"
// @Param        taskId path string true "Task ID (UUID)"
// @Param        request body dto.GitHubAttachRequest true "pull_request | issue | commit"
// @Success      201 {object} response.SuccessResponse{data=dto.GitHubAttachmentResponse}
// @Failure      400 {object} response.ErrorResponse "잘못된 유형 또는 번호"
// @Failure      403 {object} response.ErrorResponse "멤버가 아님"
// @Router       /github/boards/{boardId}/cards/{cardId}/tasks/{taskId}/github-attach [post]
func (h *GitHubHandler) Attach(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	res, ok := attachmentResource(c)
	if !ok {
		return
	}

	var req dto.GitHubAttachRequest
	if !bindJSON(c, &req) {
		return
	}

	attachment, err := h.githubService.Attach(c.Request.Context(), userID, res, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, attachment)
}

// ListAttachments godoc
// @Summary      Task의 GitHub 연결 목록
// @Tags         github
// @Produce      json
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Param        cardId path string true "Card ID (UUID)"
// @Param        taskId path string true "Task ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.GitHubAttachmentResponse}
// @Router       /github/boards/{boardId}/cards/{cardId}/tasks/{taskId}/github-attachments [get]
func (h *GitHubHandler) ListAttachments(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	res, ok := attachmentResource(c)
	if !ok {
		return
	}

	attachments, err := h.githubService.ListAttachments(c.Request.Context(), userID, res)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, attachments)
}

// DeleteAttachment godoc
// @Summary      GitHub 연결 삭제
// @Description  연결을 만든 사용자만 삭제할 수 있습니다
// @Tags         github
// @Security     BearerAuth
// @Param        boardId path string true "Board ID (UUID)"
// @Param        cardId path string true "Card ID (UUID)"
// @Param        taskId path string true "Task ID (UUID)"
// @Param        attachmentId path string true "Attachment ID (UUID)"
// @Success      204 "삭제 성공"
// @Failure      403 {object} response.ErrorResponse "만든 사용자가 아님"
// @Failure      404 {object} response.ErrorResponse "연결을 찾을 수 없음"
// @Router       /github/boards/{boardId}/cards/{cardId}/tasks/{taskId}/github-attachments/{attachmentId} [delete]
func (h *GitHubHandler) DeleteAttachment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	res, ok := attachmentResource(c)
	if !ok {
		return
	}
	attachmentID, ok := uuidParam(c, "attachmentId", "attachment")
	if !ok {
		return
	}

	if err := h.githubService.DeleteAttachment(c.Request.Context(), userID, res, attachmentID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

