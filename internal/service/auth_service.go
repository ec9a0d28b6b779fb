package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"school-portal/backend/config"
	"school-portal/backend/internal/dto"
	"school-portal/backend/internal/model"
	"school-portal/backend/internal/repository"
	"school-portal/backend/pkg/jwt"
	"school-portal/backend/pkg/redis"
)

// ── 认证模块业务错误 ──

var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrEmailExists        = errors.New("邮箱已被注册")
	ErrPersonNotFound     = errors.New("用户不存在")
	ErrRoleNotFound       = errors.New("角色不存在")
	ErrInvalidRefresh     = errors.New("refresh token 无效")
	ErrWrongOldPassword   = errors.New("原密码错误")
)

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	// Logout 把当前 Access Token 的 JTI 加入黑名单，Redis 不可用时降级为空操作
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	GetCurrentUser(ctx context.Context, userID string) (*dto.PersonDetailResponse, error)
	ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 查询用户
	person, err := s.repo.Person.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(person.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.buildTokenResponse(person)
}

// ────────────────────── Register ──────────────────────

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	// 检查邮箱唯一性
	if _, err := s.repo.Person.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 自助注册默认为学生角色
	role, err := s.repo.Role.GetByName(ctx, model.RoleStudent)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		s.logger.Error("查询角色失败", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	person := &model.Person{
		Name:         req.Name,
		Email:        req.Email,
		Mobile:       req.Mobile,
		PasswordHash: string(hash),
		RoleID:       role.RoleID,
	}

	if err := s.repo.Person.Create(ctx, person); err != nil {
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	return &dto.RegisterResponse{
		ID:    person.PersonID,
		Name:  person.Name,
		Email: person.Email,
	}, nil
}

// ────────────────────── RefreshToken ──────────────────────

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefresh
	}
	if claims.TokenType != "refresh" {
		return nil, ErrInvalidRefresh
	}

	// 已登出的 refresh token 不再可用
	if s.rdb != nil {
		blacklisted, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err == nil && blacklisted {
			return nil, ErrInvalidRefresh
		}
	}

	person, err := s.repo.Person.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonNotFound
		}
		return nil, err
	}

	return s.buildTokenResponse(person)
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.rdb == nil {
		s.logger.Warn("Redis 不可用，登出降级为空操作")
		return nil
	}
	return s.rdb.BlacklistToken(ctx, jti, time.Until(expiresAt))
}

// ────────────────────── GetCurrentUser ──────────────────────

func (s *authService) GetCurrentUser(ctx context.Context, userID string) (*dto.PersonDetailResponse, error) {
	person, err := s.repo.Person.GetWithCourses(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", userID), zap.Error(err))
		return nil, err
	}

	courses := make([]dto.CourseResponse, 0, len(person.Courses))
	for i := range person.Courses {
		courses = append(courses, dto.CourseResponse{
			ID:   person.Courses[i].CourseID,
			Name: person.Courses[i].Name,
			Fee:  person.Courses[i].Fee,
		})
	}

	return &dto.PersonDetailResponse{
		ID:        person.PersonID,
		Name:      person.Name,
		Email:     person.Email,
		Mobile:    person.Mobile,
		Role:      roleName(person),
		Class:     classResponse(person),
		Courses:   courses,
		CreatedAt: person.CreatedAt.Format(time.RFC3339),
	}, nil
}

// ────────────────────── ChangePassword ──────────────────────

func (s *authService) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	person, err := s.repo.Person.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPersonNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(person.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrWrongOldPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return err
	}

	person.PasswordHash = string(hash)
	person.UpdatedBy = &userID

	if err := s.repo.Person.Update(ctx, person); err != nil {
		s.logger.Error("更新密码失败", zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 辅助 ──────────────────────

func (s *authService) buildTokenResponse(person *model.Person) (*dto.TokenResponse, error) {
	role := roleName(person)

	accessToken, err := s.jwtMgr.GenerateAccessToken(person.PersonID, role)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	refreshToken, err := s.jwtMgr.GenerateRefreshToken(person.PersonID, role)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		User: dto.PersonResponse{
			ID:     person.PersonID,
			Name:   person.Name,
			Email:  person.Email,
			Mobile: person.Mobile,
			Role:   role,
			Class:  classResponse(person),
		},
	}, nil
}

// roleName 提取已预加载的角色名
func roleName(person *model.Person) string {
	if person.Role != nil {
		return person.Role.RoleName
	}
	return ""
}

// classResponse 提取已预加载的班级简要信息
func classResponse(person *model.Person) *dto.ClassResponse {
	if person.Class == nil {
		return nil
	}
	return &dto.ClassResponse{
		ID:   person.Class.ClassID,
		Name: person.Class.Name,
	}
}
