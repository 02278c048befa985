package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuheng2/reader_go_server/config"
	"github.com/yuheng2/reader_go_server/internal/model"
	"github.com/yuheng2/reader_go_server/internal/model/dto"
	"github.com/yuheng2/reader_go_server/internal/repository"
	"github.com/yuheng2/reader_go_server/internal/testutil"
)

func TestUserService_GetProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := NewUserService(repository.NewUserRepository(db), nil, &config.Config{})

	user := testutil.TestUser(t, db, testutil.WithRole(model.RoleAdmin))

	info, err := service.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, info.Username)
	assert.Equal(t, string(model.RoleAdmin), info.Role)
}

func TestUserService_GetProfile_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := NewUserService(repository.NewUserRepository(db), nil, &config.Config{})

	_, err := service.GetProfile(99999)
	assert.Equal(t, ErrUserNotFound, err)
}

func TestUserService_UpdateProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := NewUserService(repository.NewUserRepository(db), nil, &config.Config{})

	user := testutil.TestUser(t, db)

	info, err := service.UpdateProfile(user.ID, &dto.UpdateProfileRequest{
		Username: strPtr("renamed_user"),
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed_user", info.Username)
}

func TestUserService_UpdateProfile_UsernameTaken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := NewUserService(repository.NewUserRepository(db), nil, &config.Config{})

	testutil.TestUser(t, db, testutil.WithUsername("occupied"))
	user := testutil.TestUser(t, db)

	_, err := service.UpdateProfile(user.ID, &dto.UpdateProfileRequest{
		Username: strPtr("occupied"),
	})
	assert.Equal(t, ErrUsernameExists, err)
}

func TestUserService_UpdateAvatar(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	userRepo := repository.NewUserRepository(db)
	service := NewUserService(userRepo, nil, &config.Config{})

	user := testutil.TestUser(t, db)

	require.NoError(t, service.UpdateAvatar(user.ID, "https://cdn.example.com/a.png"))

	found, err := userRepo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a.png", found.AvatarURL)
}
