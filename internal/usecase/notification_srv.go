package usecase

import (
	"context"
	"fmt"

	"healthcare-booking/internal/data/entity"
	"healthcare-booking/internal/data/repository"
	"healthcare-booking/internal/dto/request"
	"healthcare-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NotificationService interface {
	List(ctx context.Context, userID uuid.UUID, req *request.NotificationListRequest) (*response.NotificationListResponse, error)
	MarkRead(ctx context.Context, userID uuid.UUID, id string) (*response.NotificationResponse, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, userID uuid.UUID, id string) error
}

type notificationService struct {
	repo repository.NotificationRepository
	log  *zap.Logger
}

func NewNotificationService(repo repository.NotificationRepository, log *zap.Logger) NotificationService {
	return &notificationService{
		repo: repo,
		log:  log.With(zap.String("service", "notification")),
	}
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID, req *request.NotificationListRequest) (*response.NotificationListResponse, error) {
	items, err := s.repo.FindByUserID(ctx, userID, req.UnreadOnly, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list notifications", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find notifications: %w", err)
	}

	total, err := s.repo.CountByUserID(ctx, userID, req.UnreadOnly)
	if err != nil {
		s.log.Error("Failed to count notifications", zap.Error(err))
		return nil, fmt.Errorf("count notifications: %w", err)
	}

	unread := total
	if !req.UnreadOnly {
		if unread, err = s.repo.CountByUserID(ctx, userID, true); err != nil {
			s.log.Error("Failed to count unread notifications", zap.Error(err))
			return nil, fmt.Errorf("count unread notifications: %w", err)
		}
	}

	return &response.NotificationListResponse{
		Notifications: response.NotificationsToResponse(items),
		UnreadCount:   unread,
		Pagination:    response.NewPaginationMeta(req.Page, req.Limit(), total),
	}, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID uuid.UUID, id string) (*response.NotificationResponse, error) {
	n, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if !n.IsRead {
		if err := s.repo.MarkRead(ctx, n.ID); err != nil {
			s.log.Error("Failed to mark notification read", zap.Error(err), zap.String("notification_id", id))
			return nil, fromRepository(err, "mark read")
		}
		// Re-read to pick up read_at.
		reloaded, err := s.repo.FindByID(ctx, n.ID)
		if err != nil {
			return nil, fmt.Errorf("reload notification: %w", err)
		}
		if reloaded != nil {
			n = reloaded
		}
	}

	resp := response.NotificationToResponse(n)
	return &resp, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		s.log.Error("Failed to mark all notifications read", zap.Error(err), zap.String("user_id", userID.String()))
		return 0, fmt.Errorf("mark all read: %w", err)
	}
	return count, nil
}

func (s *notificationService) Delete(ctx context.Context, userID uuid.UUID, id string) error {
	n, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, n.ID); err != nil {
		s.log.Error("Failed to delete notification", zap.Error(err), zap.String("notification_id", id))
		return fromRepository(err, "delete notification")
	}
	return nil
}

func (s *notificationService) findOwned(ctx context.Context, userID uuid.UUID, id string) (*entity.Notification, error) {
	notificationID, err := parseID(id, "notification")
	if err != nil {
		return nil, err
	}

	n, err := s.repo.FindByID(ctx, notificationID)
	if err != nil {
		s.log.Error("Failed to find notification", zap.Error(err), zap.String("notification_id", id))
		return nil, fmt.Errorf("find notification: %w", err)
	}
	if n == nil {
		return nil, newError(ErrNotFound, "notification not found")
	}
	if n.UserID != userID {
		return nil, newError(ErrForbidden, "you do not have access to this notification")
	}
	return n, nil
}
