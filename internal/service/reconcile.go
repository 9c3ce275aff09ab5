package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"dailydash/internal/models"
	"dailydash/internal/storage"
	"dailydash/pkg/log"

	"github.com/google/uuid"
)

// reconcile вливает свежие записи в хранилище.
//
// Для каждого элемента с непустыми title и url:
//   - существующая строка по точному url — обновление title/image_url/
//     fetched_at (остальные поля не трогаются);
//   - строки нет — вставка с категорией элемента (CategoryHint), иначе
//     с категорией запроса; fetched_at := now.
//
// Элементы без title или url молча отбрасываются. Ошибка записи одного
// элемента изолируется: логируется, обработка остальных продолжается.
// Возвращает счётчики вставленных и обновлённых строк.
func (s *Service) reconcile(ctx context.Context, items []models.NormalizedArticle, category models.Category, now time.Time) (created, updated int) {
	const op = "service.reconcile"

	lg := log.From(ctx)
	nowUTC := now.UTC()

	for _, item := range items {
		title := strings.TrimSpace(item.Title)
		url := strings.TrimSpace(item.URL)

		if title == "" || url == "" {
			continue
		}

		existing, err := s.storage.ArticleByURL(ctx, url)

		switch {
		case err == nil:
			existing.Title = title
			existing.ImageURL = item.ImageURL
			existing.FetchedAt = nowUTC

			if upErr := s.storage.UpsertArticle(ctx, existing); upErr != nil {
				lg.Warn("article_update_failed",
					slog.String("op", op),
					slog.String("url", url),
					slog.String("err", upErr.Error()),
				)
				continue
			}

			updated++

		case errors.Is(err, storage.ErrNotFound):
			saveCategory := item.CategoryHint
			if saveCategory == "" {
				saveCategory = string(category)
			}

			article := models.Article{
				ID:          uuid.New(),
				Title:       title,
				URL:         url,
				ImageURL:    item.ImageURL,
				SourceName:  item.SourceName,
				Description: item.Description,
				PublishedAt: item.PublishedAt,
				Category:    saveCategory,
				FetchedAt:   nowUTC,
			}

			if upErr := s.storage.UpsertArticle(ctx, &article); upErr != nil {
				lg.Warn("article_insert_failed",
					slog.String("op", op),
					slog.String("url", url),
					slog.String("err", upErr.Error()),
				)
				continue
			}

			created++

		default:
			lg.Warn("article_lookup_failed",
				slog.String("op", op),
				slog.String("url", url),
				slog.String("err", err.Error()),
			)
		}
	}

	return created, updated
}
