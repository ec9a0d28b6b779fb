package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"school-portal/backend/internal/dto"
	"school-portal/backend/internal/model"
	"school-portal/backend/internal/repository"
)

// ── 留言模块业务错误 ──

var ErrContactNotFound = errors.New("留言不存在")

// ContactService 留言业务接口
type ContactService interface {
	// Save 保存公开提交的留言，状态强制为 OPEN
	Save(ctx context.Context, req *dto.SaveContactRequest) (*dto.ContactResponse, error)
	// ListByStatus 按状态分页查询（默认 OPEN）
	ListByStatus(ctx context.Context, req *dto.ContactListRequest) ([]dto.ContactResponse, int64, error)
	// Close 把留言置为 CLOSE 并记录操作人；重复关闭为幂等操作
	Close(ctx context.Context, id string, actorID string) (*dto.ContactResponse, error)
	Delete(ctx context.Context, id string) error
}

type contactService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewContactService 创建 ContactService 实例
func NewContactService(repo *repository.Repository, logger *zap.Logger) ContactService {
	return &contactService{repo: repo, logger: logger}
}

// ────────────────────── Save ──────────────────────

func (s *contactService) Save(ctx context.Context, req *dto.SaveContactRequest) (*dto.ContactResponse, error) {
	contact := &model.Contact{
		Name:    req.Name,
		Mobile:  req.Mobile,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
		Status:  model.StatusOpen,
	}
	// 匿名提交：创建时间由审计字段填充，不记录 created_by

	if err := s.repo.Contact.Create(ctx, contact); err != nil {
		s.logger.Error("保存留言失败", zap.Error(err))
		return nil, err
	}

	return toContactResponse(contact), nil
}

// ────────────────────── ListByStatus ──────────────────────

func (s *contactService) ListByStatus(ctx context.Context, req *dto.ContactListRequest) ([]dto.ContactResponse, int64, error) {
	status := req.Status
	if status == "" {
		status = model.StatusOpen
	}

	contacts, total, err := s.repo.Contact.ListByStatus(ctx, status, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询留言失败", zap.String("status", status), zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ContactResponse, 0, len(contacts))
	for i := range contacts {
		result = append(result, *toContactResponse(&contacts[i]))
	}
	return result, total, nil
}

// ────────────────────── Close ──────────────────────

func (s *contactService) Close(ctx context.Context, id string, actorID string) (*dto.ContactResponse, error) {
	contact, err := s.repo.Contact.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		s.logger.Error("查询留言失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// 已关闭的留言直接返回，不再覆盖关闭人与时间
	if contact.Status == model.StatusClose {
		return toContactResponse(contact), nil
	}

	contact.Status = model.StatusClose
	contact.UpdatedBy = &actorID
	contact.UpdatedAt = time.Now()

	if err := s.repo.Contact.Update(ctx, contact); err != nil {
		s.logger.Error("关闭留言失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toContactResponse(contact), nil
}

// ────────────────────── Delete ──────────────────────

func (s *contactService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Contact.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContactNotFound
		}
		return err
	}

	if err := s.repo.Contact.Delete(ctx, id); err != nil {
		s.logger.Error("删除留言失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 辅助 ──────────────────────

func toContactResponse(c *model.Contact) *dto.ContactResponse {
	resp := &dto.ContactResponse{
		ID:        c.ContactID,
		Name:      c.Name,
		Mobile:    c.Mobile,
		Email:     c.Email,
		Subject:   c.Subject,
		Message:   c.Message,
		Status:    c.Status,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
	if c.UpdatedBy != nil {
		resp.UpdatedBy = *c.UpdatedBy
	}
	return resp
}
