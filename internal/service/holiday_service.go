package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"school-portal/backend/internal/dto"
	"school-portal/backend/internal/model"
	"school-portal/backend/internal/repository"
)

// ── 假日模块业务错误 ──

var (
	ErrHolidayNotFound = errors.New("假日不存在")
	ErrHolidayBadDay   = errors.New("日期格式无效")
)

// HolidayService 假日业务接口
type HolidayService interface {
	Create(ctx context.Context, req *dto.CreateHolidayRequest, callerID string) (*dto.HolidayResponse, error)
	// ListGrouped 按类型（FESTIVAL / FEDERAL）分组返回全部假日
	ListGrouped(ctx context.Context) (*dto.HolidayGroupResponse, error)
	Delete(ctx context.Context, id string) error
	// ExportICS 生成 iCalendar (RFC 5545) 假日订阅源
	ExportICS(ctx context.Context) (string, error)
}

type holidayService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewHolidayService 创建 HolidayService 实例
func NewHolidayService(repo *repository.Repository, logger *zap.Logger) HolidayService {
	return &holidayService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *holidayService) Create(ctx context.Context, req *dto.CreateHolidayRequest, callerID string) (*dto.HolidayResponse, error) {
	day, err := time.Parse("2006-01-02", req.Day)
	if err != nil {
		return nil, ErrHolidayBadDay
	}

	holiday := &model.Holiday{
		Day:    day,
		Reason: req.Reason,
		Type:   req.Type,
	}
	holiday.CreatedBy = &callerID
	holiday.UpdatedBy = &callerID

	if err := s.repo.Holiday.Create(ctx, holiday); err != nil {
		s.logger.Error("创建假日失败", zap.Error(err))
		return nil, err
	}

	return toHolidayResponse(holiday), nil
}

// ────────────────────── ListGrouped ──────────────────────

func (s *holidayService) ListGrouped(ctx context.Context) (*dto.HolidayGroupResponse, error) {
	holidays, err := s.repo.Holiday.List(ctx)
	if err != nil {
		s.logger.Error("列出假日失败", zap.Error(err))
		return nil, err
	}

	group := &dto.HolidayGroupResponse{
		Festival: []dto.HolidayResponse{},
		Federal:  []dto.HolidayResponse{},
	}
	for i := range holidays {
		resp := *toHolidayResponse(&holidays[i])
		switch holidays[i].Type {
		case model.HolidayFestival:
			group.Festival = append(group.Festival, resp)
		case model.HolidayFederal:
			group.Federal = append(group.Federal, resp)
		}
	}
	return group, nil
}

// ────────────────────── Delete ──────────────────────

func (s *holidayService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Holiday.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHolidayNotFound
		}
		return err
	}

	if err := s.repo.Holiday.Delete(ctx, id); err != nil {
		s.logger.Error("删除假日失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── ExportICS ──────────────────────

// ExportICS 每个假日生成一个全天 VEVENT，UID 取假日主键保证订阅端去重
func (s *holidayService) ExportICS(ctx context.Context) (string, error) {
	holidays, err := s.repo.Holiday.List(ctx)
	if err != nil {
		s.logger.Error("列出假日失败", zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//school-portal//holidays//EN")

	for i := range holidays {
		h := &holidays[i]
		event := cal.AddEvent(h.HolidayID)
		event.SetAllDayStartAt(h.Day)
		event.SetAllDayEndAt(h.Day.AddDate(0, 0, 1))
		event.SetSummary(h.Reason)
		event.SetDescription(fmt.Sprintf("%s holiday", h.Type))
		event.SetDtStampTime(h.CreatedAt)
	}

	return cal.Serialize(), nil
}

// ────────────────────── 辅助 ──────────────────────

func toHolidayResponse(h *model.Holiday) *dto.HolidayResponse {
	return &dto.HolidayResponse{
		ID:     h.HolidayID,
		Day:    h.Day.Format("2006-01-02"),
		Reason: h.Reason,
		Type:   h.Type,
	}
}
