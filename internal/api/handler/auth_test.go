package handler

import (
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuheng2/reader_go_server/config"
	"github.com/yuheng2/reader_go_server/internal/model"
	"github.com/yuheng2/reader_go_server/internal/model/dto"
	"github.com/yuheng2/reader_go_server/internal/pkg/oauth"
	"github.com/yuheng2/reader_go_server/internal/repository"
	"github.com/yuheng2/reader_go_server/internal/service"
	"github.com/yuheng2/reader_go_server/internal/testutil"
)

func setupAuthHandler(t *testing.T) (*AuthHandler, *testContext, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	userRepo := repository.NewUserRepository(db)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := &config.Config{
		Server: config.ServerConfig{
			Mode: "debug", // 注册即验证，跳过邮件
		},
		JWT: config.JWTConfig{
			Secret:      "test-secret-key-for-testing",
			ExpireHours: 24,
		},
		OAuth: config.OAuthConfig{
			Github: config.GithubOAuthConfig{
				ClientID:     "test-client-id",
				ClientSecret: "test-client-secret",
				RedirectURI:  "http://localhost:8080/callback",
			},
		},
	}

	authService := service.NewAuthService(userRepo, cfg, nil)
	stateStore := oauth.NewStateStore(rdb)
	handler := NewAuthHandler(authService, stateStore)

	ctx := &testContext{DB: db}

	cleanup := func() {
		rdb.Close()
		testutil.CleanupTestDB(t, db)
	}

	return handler, ctx, cleanup
}

func TestAuthHandler_Register_Success(t *testing.T) {
	handler, _, cleanup := setupAuthHandler(t)
	defer cleanup()

	router := gin.New()
	router.POST("/auth/register", handler.Register)

	req := dto.RegisterRequest{
		Username: "newreader",
		Email:    "newreader@example.com",
		Password: "password123",
	}

	w := performRequest(router, "POST", "/auth/register", req)
	assert.Equal(t, http.StatusCreated, w.Code)

	body := parseBody(t, w)
	assert.NotZero(t, body["user_id"])
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	handler, ctx, cleanup := setupAuthHandler(t)
	defer cleanup()

	existing := testutil.TestUser(t, ctx.DB)

	router := gin.New()
	router.POST("/auth/register", handler.Register)

	req := dto.RegisterRequest{
		Username: "someoneelse",
		Email:    *existing.Email,
		Password: "password123",
	}

	w := performRequest(router, "POST", "/auth/register", req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	handler, _, cleanup := setupAuthHandler(t)
	defer cleanup()

	router := gin.New()
	router.POST("/auth/register", handler.Register)

	// 密码太短
	req := dto.RegisterRequest{
		Username: "shortpw",
		Email:    "shortpw@example.com",
		Password: "short",
	}

	w := performRequest(router, "POST", "/auth/register", req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	handler, _, cleanup := setupAuthHandler(t)
	defer cleanup()

	router := gin.New()
	router.POST("/auth/register", handler.Register)
	router.POST("/auth/login", handler.Login)

	w := performRequest(router, "POST", "/auth/register", dto.RegisterRequest{
		Username: "loginuser",
		Email:    "loginuser@example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(router, "POST", "/auth/login", dto.LoginRequest{
		Email:    "loginuser@example.com",
		Password: "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	body := parseBody(t, w)
	assert.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "loginuser", user["username"])
	assert.Equal(t, string(model.RoleMember), user["role"])
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	handler, _, cleanup := setupAuthHandler(t)
	defer cleanup()

	router := gin.New()
	router.POST("/auth/register", handler.Register)
	router.POST("/auth/login", handler.Login)

	w := performRequest(router, "POST", "/auth/register", dto.RegisterRequest{
		Username: "wrongpw",
		Email:    "wrongpw@example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(router, "POST", "/auth/login", dto.LoginRequest{
		Email:    "wrongpw@example.com",
		Password: "not-the-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_VerifyEmail_InvalidCode(t *testing.T) {
	handler, _, cleanup := setupAuthHandler(t)
	defer cleanup()

	router := gin.New()
	router.POST("/auth/verify-email", handler.VerifyEmail)

	w := performRequest(router, "POST", "/auth/verify-email", gin.H{"code": "bogus-code"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Refresh_Success(t *testing.T) {
	handler, ctx, cleanup := setupAuthHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)

	router := gin.New()
	router.Use(mockAuth(user.ID, user.Role))
	router.POST("/auth/refresh", handler.Refresh)

	w := performRequest(router, "POST", "/auth/refresh", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	body := parseBody(t, w)
	assert.NotEmpty(t, body["token"])
}

func TestAuthHandler_Refresh_UserGone(t *testing.T) {
	handler, _, cleanup := setupAuthHandler(t)
	defer cleanup()

	router := gin.New()
	router.Use(mockAuth(99999, model.RoleMember))
	router.POST("/auth/refresh", handler.Refresh)

	w := performRequest(router, "POST", "/auth/refresh", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_GithubAuth_RedirectsWithState(t *testing.T) {
	handler, _, cleanup := setupAuthHandler(t)
	defer cleanup()

	router := gin.New()
	router.GET("/auth/github", handler.GithubAuth)

	w := performRequest(router, "GET", "/auth/github", nil)
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)

	location := w.Header().Get("Location")
	assert.Contains(t, location, "github.com/login/oauth/authorize")
	assert.Contains(t, location, "state=")
}

func TestAuthHandler_GithubCallback_MissingCode(t *testing.T) {
	handler, _, cleanup := setupAuthHandler(t)
	defer cleanup()

	router := gin.New()
	router.GET("/auth/github/callback", handler.GithubCallback)

	w := performRequest(router, "GET", "/auth/github/callback?state=whatever", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_GithubCallback_InvalidState(t *testing.T) {
	handler, _, cleanup := setupAuthHandler(t)
	defer cleanup()

	router := gin.New()
	router.GET("/auth/github/callback", handler.GithubCallback)

	w := performRequest(router, "GET", "/auth/github/callback?code=abc&state=forged", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
