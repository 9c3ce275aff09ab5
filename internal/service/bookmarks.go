package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"dailydash/internal/models"
	"dailydash/internal/storage"
	"dailydash/pkg/log"

	"github.com/google/uuid"
)

// ToggleBookmark переключает закладку пары (user, article):
// есть — удаляет, нет — создаёт. Идемпотентность по отсутствию:
// гонка двух переключений схлопывается в конечное состояние без ошибки.
//
// Возвращает итоговое состояние: true — закладка стоит.
//
// Ошибки:
//   - ErrNotFound — статьи не существует;
//   - прочие ошибки стораджа — обёрнутые и прокинутые наверх.
func (s *Service) ToggleBookmark(ctx context.Context, userID, articleID uuid.UUID) (bool, error) {
	const op = "service.bookmarks.ToggleBookmark"

	lg := log.From(ctx)

	article, err := s.storage.ArticleByID(ctx, articleID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return false, fmt.Errorf("%s: %w", op, err)
	}

	existing, err := s.storage.BookmarkByUserAndArticle(ctx, userID, articleID)

	switch {
	case err == nil:
		if delErr := s.storage.DeleteBookmark(ctx, existing.ID); delErr != nil {
			// Параллельное удаление — желаемое состояние уже достигнуто.
			if errors.Is(delErr, storage.ErrNotFound) {
				return false, nil
			}

			return false, fmt.Errorf("%s: %w", op, delErr)
		}

		return false, nil

	case errors.Is(err, storage.ErrNotFound):
		bookmark := models.Bookmark{
			ID:        uuid.New(),
			UserID:    userID,
			ArticleID: articleID,
			SavedAt:   time.Now().UTC(),
		}

		if saveErr := s.storage.SaveBookmark(ctx, &bookmark); saveErr != nil {
			// Параллельное создание — закладка уже стоит.
			if errors.Is(saveErr, storage.ErrAlreadyExists) {
				return true, nil
			}

			return false, fmt.Errorf("%s: %w", op, saveErr)
		}

		// Уведомление — best effort, выдачу не блокирует.
		notification := models.Notification{
			ID:        uuid.New(),
			UserID:    userID,
			Message:   fmt.Sprintf("Saved %q to your bookmarks", article.Title),
			CreatedAt: time.Now().UTC(),
		}
		if nErr := s.storage.SaveNotification(ctx, &notification); nErr != nil {
			lg.Warn("notification_save_failed",
				slog.String("op", op),
				slog.String("err", nErr.Error()),
			)
		}

		return true, nil

	default:
		return false, fmt.Errorf("%s: %w", op, err)
	}
}

// Bookmarks возвращает закладки пользователя со статьями, saved_at DESC.
func (s *Service) Bookmarks(ctx context.Context, userID uuid.UUID) ([]models.HeadlineItem, error) {
	const op = "service.bookmarks.Bookmarks"

	items, err := s.storage.ListBookmarkedArticles(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now()

	output := make([]models.HeadlineItem, 0, len(items))
	for _, item := range items {
		output = append(output, models.HeadlineItem{
			Article:      item.Article,
			DisplayDate:  displayDate(item.Article.FetchedAt, now),
			IsBookmarked: true,
		})
	}

	return output, nil
}
