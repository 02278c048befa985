package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yuheng2/reader_go_server/config"
	"github.com/yuheng2/reader_go_server/internal/model"
	"github.com/yuheng2/reader_go_server/internal/model/dto"
	"github.com/yuheng2/reader_go_server/internal/pkg/email"
	"github.com/yuheng2/reader_go_server/internal/pkg/jwt"
	"github.com/yuheng2/reader_go_server/internal/pkg/oauth"
	"github.com/yuheng2/reader_go_server/internal/repository"
)

var (
	ErrEmailExists        = errors.New("邮箱已被注册")
	ErrUsernameExists     = errors.New("用户名已被使用")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrEmailNotVerified   = errors.New("邮箱尚未验证")
	ErrInvalidVerifyCode  = errors.New("验证码无效或已过期")
	ErrUserNotFound       = errors.New("用户不存在")
)

type AuthService struct {
	userRepo *repository.UserRepository
	cfg      *config.Config
	github   *oauth.GithubClient
	emailSvc *email.Service
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config, emailSvc *email.Service) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
		emailSvc: emailSvc,
		github: oauth.NewGithubClient(
			cfg.OAuth.Github.ClientID,
			cfg.OAuth.Github.ClientSecret,
			cfg.OAuth.Github.RedirectURI,
		),
	}
}

// Register 用户注册
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	// 检查邮箱是否存在
	exists, err := s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	// 检查用户名是否存在
	exists, err = s.userRepo.ExistsByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameExists
	}

	// 加密密码
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// 生成验证码
	verifyCode, err := generateRandomCode(32)
	if err != nil {
		return nil, err
	}

	passwordStr := string(hashedPassword)
	expiresAt := time.Now().Add(24 * time.Hour)

	user := &model.User{
		Username:              req.Username,
		Email:                 &req.Email,
		PasswordHash:          &passwordStr,
		Role:                  model.RoleMember,
		VerificationCode:      &verifyCode,
		VerificationExpiresAt: &expiresAt,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	if s.cfg.Server.Mode == "debug" {
		// 开发环境跳过邮件流程，自动验证
		user.EmailVerified = true
		if err := s.userRepo.Update(user); err != nil {
			return nil, err
		}
	} else if s.emailSvc != nil {
		// 邮件发送失败不阻塞注册，用户可以重新请求验证码
		if err := s.emailSvc.SendVerificationCode(req.Email, verifyCode); err != nil {
			log.Printf("Failed to send verification email to %s: %v", req.Email, err)
		}
	}

	return &dto.RegisterResponse{
		UserID: user.ID,
	}, nil
}

// Login 用户登录
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 检查邮箱是否验证（生产环境强制要求，开发环境跳过）
	if !user.EmailVerified && s.cfg.Server.Mode != "debug" {
		return nil, ErrEmailNotVerified
	}

	// 验证密码
	if user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user.ID, string(user.Role), s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User:  buildUserInfo(user),
	}, nil
}

// VerifyEmail 验证邮箱
func (s *AuthService) VerifyEmail(code string) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByVerificationCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidVerifyCode
		}
		return nil, err
	}

	// 检查验证码是否过期
	if user.VerificationExpiresAt == nil || time.Now().After(*user.VerificationExpiresAt) {
		return nil, ErrInvalidVerifyCode
	}

	// 更新用户状态
	user.EmailVerified = true
	user.VerificationCode = nil
	user.VerificationExpiresAt = nil
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	if s.emailSvc != nil {
		if err := s.emailSvc.SendWelcome(emailOrEmpty(user), user.Username); err != nil {
			log.Printf("Failed to send welcome email: %v", err)
		}
	}

	token, err := jwt.GenerateToken(user.ID, string(user.Role), s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User:  buildUserInfo(user),
	}, nil
}

// RefreshToken 用当前身份换发新 token，角色以数据库为准
func (s *AuthService) RefreshToken(userID int64) (*dto.RefreshResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	token, err := jwt.GenerateToken(user.ID, string(user.Role), s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, err
	}

	return &dto.RefreshResponse{Token: token}, nil
}

// GetUserByID 根据 ID 获取用户
func (s *AuthService) GetUserByID(id int64) (*model.User, error) {
	return s.userRepo.GetByID(id)
}

// GetGithubAuthURL 获取 GitHub 授权 URL
func (s *AuthService) GetGithubAuthURL(state string) string {
	return s.github.AuthURL(state)
}

// GithubCallback 处理 GitHub OAuth 回调
func (s *AuthService) GithubCallback(ctx context.Context, code string) (*dto.LoginResponse, error) {
	// 用 code 换取 token
	token, err := s.github.ExchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	// 获取 GitHub 用户信息
	githubUser, err := s.github.FetchUser(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get github user: %w", err)
	}

	githubIDStr := fmt.Sprintf("%d", githubUser.ID)

	// 检查用户是否已存在
	user, err := s.userRepo.GetByGithubID(githubIDStr)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if user == nil {
		// 创建新用户
		user = &model.User{
			Username:      githubUser.Login,
			GithubID:      &githubIDStr,
			AvatarURL:     githubUser.AvatarURL,
			Role:          model.RoleMember,
			EmailVerified: true, // OAuth 用户默认已验证
		}

		// 如果有邮箱，设置邮箱
		if githubUser.Email != "" {
			user.Email = &githubUser.Email
		}

		// 确保用户名唯一
		exists, _ := s.userRepo.ExistsByUsername(user.Username)
		if exists {
			user.Username = fmt.Sprintf("%s_%d", githubUser.Login, githubUser.ID)
		}

		if err := s.userRepo.Create(user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	}

	jwtToken, err := jwt.GenerateToken(user.ID, string(user.Role), s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: jwtToken,
		User:  buildUserInfo(user),
	}, nil
}

func emailOrEmpty(user *model.User) string {
	if user.Email != nil {
		return *user.Email
	}
	return ""
}

func generateRandomCode(length int) (string, error) {
	bytes := make([]byte, length/2)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
