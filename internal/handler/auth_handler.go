package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard-api/internal/dto"
	"taskboard-api/internal/response"
	"taskboard-api/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Signup godoc
// @Summary      회원가입
// @Description  이메일로 계정을 만들고 6자리 인증 코드를 메일로 보냅니다
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.SignupRequest true "회원가입 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.UserResponse} "가입 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      409 {object} response.ErrorResponse "이미 가입된 이메일"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccessWithMessage(c, http.StatusCreated, user, "Verification code sent")
}

// Signin godoc
// @Summary      로그인
// @Description  이메일과 인증 코드로 로그인하고 액세스 토큰을 발급합니다
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.SigninRequest true "로그인 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.SigninResponse} "로그인 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      401 {object} response.ErrorResponse "코드 불일치 또는 만료"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /auth/signin [post]
func (h *AuthHandler) Signin(c *gin.Context) {
	var req dto.SigninRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Signin(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// ResendCode godoc
// @Summary      인증 코드 재발송
// @Description  10분 동안 유효한 새 인증 코드를 발송합니다
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.ResendCodeRequest true "재발송 요청"
// @Success      200 {object} response.SuccessResponse "재발송 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      404 {object} response.ErrorResponse "사용자를 찾을 수 없음"
// @Router       /auth/resend-code [post]
func (h *AuthHandler) ResendCode(c *gin.Context) {
	var req dto.ResendCodeRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.ResendCode(c.Request.Context(), &req); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccessWithMessage(c, http.StatusOK, nil, "Verification code sent")
}

// Me godoc
// @Summary      내 정보 조회
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse{data=dto.UserResponse}
// @Failure      401 {object} response.ErrorResponse "인증 필요"
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary      프로필 수정
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.UpdateProfileRequest true "수정할 필드"
// @Success      200 {object} response.SuccessResponse{data=dto.UserResponse}
// @Failure      400 {object} response.ErrorResponse "수정할 내용 없음"
// @Failure      401 {object} response.ErrorResponse "인증 필요"
// @Router       /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, user)
}

// GetUser godoc
// @Summary      사용자 조회
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Param        userId path string true "User ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.UserResponse}
// @Failure      400 {object} response.ErrorResponse "잘못된 User ID"
// @Failure      404 {object} response.ErrorResponse "사용자를 찾을 수 없음"
// @Router       /auth/{userId} [get]
func (h *AuthHandler) GetUser(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	userID, ok := uuidParam(c, "userId", "user")
	if !ok {
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, user)
}
