package service

import (
	"context"
	"errors"
	"fmt"

	"dailydash/internal/models"
	"dailydash/internal/storage"

	"github.com/google/uuid"
)

// Notifications возвращает уведомления пользователя, created_at DESC.
func (s *Service) Notifications(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	const op = "service.notifications.Notifications"

	output, err := s.storage.ListNotifications(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return output, nil
}

// MarkNotificationRead помечает уведомление пользователя прочитанным.
//
// Ошибки:
//   - ErrNotFound — уведомления нет или оно принадлежит другому пользователю.
func (s *Service) MarkNotificationRead(ctx context.Context, id, userID uuid.UUID) error {
	const op = "service.notifications.MarkNotificationRead"

	if err := s.storage.MarkNotificationRead(ctx, id, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
