package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yuheng2/reader_go_server/internal/api/middleware"
	"github.com/yuheng2/reader_go_server/internal/model/dto"
	"github.com/yuheng2/reader_go_server/internal/pkg/oauth"
	"github.com/yuheng2/reader_go_server/internal/pkg/response"
	"github.com/yuheng2/reader_go_server/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	stateStore  *oauth.StateStore
}

func NewAuthHandler(authService *service.AuthService, stateStore *oauth.StateStore) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		stateStore:  stateStore,
	}
}

// Register 用户注册
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, err.Error())
		return
	}

	resp, err := h.authService.Register(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailExists):
			response.Validation(c, gin.H{"email": err.Error()})
		case errors.Is(err, service.ErrUsernameExists):
			response.Validation(c, gin.H{"username": err.Error()})
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Created(c, resp)
}

// Login 用户登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, err.Error())
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.AuthError(c, err.Error())
		case errors.Is(err, service.ErrEmailNotVerified):
			response.AuthError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.OK(c, resp)
}

// VerifyEmail 验证邮箱
// POST /api/v1/auth/verify-email
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, err.Error())
		return
	}

	resp, err := h.authService.VerifyEmail(req.Code)
	if err != nil {
		if errors.Is(err, service.ErrInvalidVerifyCode) {
			response.BadRequest(c, response.CodeValidationFailed, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.OK(c, resp)
}

// Refresh 刷新 token
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	resp, err := h.authService.RefreshToken(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.AuthError(c, "")
			return
		}
		response.ServerError(c, "")
		return
	}

	response.OK(c, resp)
}

// GithubAuth 跳转 GitHub 授权页
// GET /api/v1/auth/github
func (h *AuthHandler) GithubAuth(c *gin.Context) {
	redirectURI := c.Query("redirect_uri")

	state, err := h.stateStore.GenerateState(c.Request.Context(), redirectURI)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, h.authService.GetGithubAuthURL(state))
}

// GithubCallback GitHub OAuth 回调
// GET /api/v1/auth/github/callback
func (h *AuthHandler) GithubCallback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if code == "" {
		response.BadRequest(c, response.CodeValidationFailed, "缺少授权码")
		return
	}

	// state 一次性校验，防 CSRF
	if _, err := h.stateStore.ValidateState(c.Request.Context(), state); err != nil {
		response.BadRequest(c, response.CodeValidationFailed, "state 无效或已过期")
		return
	}

	resp, err := h.authService.GithubCallback(c.Request.Context(), code)
	if err != nil {
		response.ServerError(c, "GitHub 登录失败")
		return
	}

	response.OK(c, resp)
}
