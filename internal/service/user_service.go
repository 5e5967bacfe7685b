package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/MoSmeha/UniAssist-FYP/internal/dto"
	"github.com/MoSmeha/UniAssist-FYP/internal/repository"
)

// UserService 用户目录业务接口
type UserService interface {
	// List 用户目录，role 为空时返回全部用户
	List(ctx context.Context, role string) ([]dto.UserResponse, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) List(ctx context.Context, role string) ([]dto.UserResponse, error) {
	users, err := s.repo.User.List(ctx, role)
	if err != nil {
		s.logger.Error("查询用户列表失败", zap.String("role", role), zap.Error(err))
		return nil, err
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out, nil
}
