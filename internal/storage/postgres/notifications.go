package postgres

import (
	"context"
	"fmt"

	"dailydash/internal/models"
	"dailydash/internal/storage"

	"github.com/google/uuid"
)

// SaveNotification создаёт уведомление.
func (s *Storage) SaveNotification(ctx context.Context, n *models.Notification) error {
	const op = "storage.postgres.SaveNotification"

	q := `
	INSERT INTO notifications (id, user_id, message, is_read, created_at)
	VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.db.Exec(ctx, q,
		n.ID,
		n.UserID,
		n.Message,
		n.IsRead,
		n.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ListNotifications возвращает уведомления пользователя, created_at DESC.
func (s *Storage) ListNotifications(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	const op = "storage.postgres.ListNotifications"

	q := `
	SELECT id, user_id, message, is_read, created_at
	FROM notifications
	WHERE user_id = $1
	ORDER BY created_at DESC
	`

	rows, err := s.db.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var output []models.Notification
	for rows.Next() {
		var n models.Notification
		if scanErr := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.IsRead, &n.CreatedAt); scanErr != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, scanErr)
		}

		n.CreatedAt = n.CreatedAt.UTC()
		output = append(output, n)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	return output, nil
}

// MarkNotificationRead помечает уведомление пользователя прочитанным.
// Если уведомления нет или оно принадлежит другому пользователю — storage.ErrNotFound.
func (s *Storage) MarkNotificationRead(ctx context.Context, id, userID uuid.UUID) error {
	const op = "storage.postgres.MarkNotificationRead"

	tag, err := s.db.Exec(ctx, `
	UPDATE notifications SET is_read = TRUE
	WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}
