package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/yuheng2/reader_go_server/config"
	"github.com/yuheng2/reader_go_server/internal/model"
	"github.com/yuheng2/reader_go_server/internal/model/dto"
	"github.com/yuheng2/reader_go_server/internal/repository"
	"github.com/yuheng2/reader_go_server/internal/service"
	"github.com/yuheng2/reader_go_server/internal/testutil"
)

func setupUserHandler(t *testing.T) (*UserHandler, *testContext, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	userRepo := repository.NewUserRepository(db)

	cfg := &config.Config{}
	userService := service.NewUserService(userRepo, nil, cfg)
	handler := NewUserHandler(userService)

	ctx := &testContext{DB: db}

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return handler, ctx, cleanup
}

func TestUserHandler_GetProfile_Success(t *testing.T) {
	handler, ctx, cleanup := setupUserHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)

	router := gin.New()
	router.Use(mockAuth(user.ID, user.Role))
	router.GET("/user/profile", handler.GetProfile)

	w := performRequest(router, "GET", "/user/profile", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	body := parseBody(t, w)
	assert.Equal(t, user.Username, body["username"])
}

func TestUserHandler_GetProfile_UserGone(t *testing.T) {
	handler, _, cleanup := setupUserHandler(t)
	defer cleanup()

	router := gin.New()
	router.Use(mockAuth(99999, model.RoleMember))
	router.GET("/user/profile", handler.GetProfile)

	w := performRequest(router, "GET", "/user/profile", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserHandler_UpdateProfile_Success(t *testing.T) {
	handler, ctx, cleanup := setupUserHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)

	router := gin.New()
	router.Use(mockAuth(user.ID, user.Role))
	router.PUT("/user/profile", handler.UpdateProfile)

	newName := "renamed_reader"
	w := performRequest(router, "PUT", "/user/profile", dto.UpdateProfileRequest{Username: &newName})
	assert.Equal(t, http.StatusOK, w.Code)

	body := parseBody(t, w)
	assert.Equal(t, "renamed_reader", body["username"])
}

func TestUserHandler_UpdateProfile_UsernameTaken(t *testing.T) {
	handler, ctx, cleanup := setupUserHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)
	other := testutil.TestUser(t, ctx.DB)

	router := gin.New()
	router.Use(mockAuth(user.ID, user.Role))
	router.PUT("/user/profile", handler.UpdateProfile)

	w := performRequest(router, "PUT", "/user/profile", dto.UpdateProfileRequest{Username: &other.Username})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
