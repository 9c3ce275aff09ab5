package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dailydash/internal/models"
	"dailydash/pkg/log"

	"github.com/google/uuid"
)

// HeadlinesQuery — параметры запроса заголовков.
type HeadlinesQuery struct {
	// Category — категория из закрытого перечисления; пустая — без фильтра.
	Category string
	// Region — local или international.
	Region models.Region
	// Source — id издания, "all" или пустая строка.
	Source string
	// Date — "YYYY-MM-DD"; пустая или нераспознанная — без фильтра по дате.
	Date string
	// UserID — для аннотации закладок; uuid.Nil — аноним.
	UserID uuid.UUID
}

// Headlines — основной сценарий выдачи.
//
// Поток: сборка цепочки фильтров -> решение о рефреше -> при
// необходимости фетч нужной стратегией и реконсиляция -> повторная
// выборка из хранилища -> аннотация датой и закладками.
//
// Отказ фетча/реконсиляции никогда не виден пользователю: худший
// случай — устаревшие или неполные данные из хранилища.
func (s *Service) Headlines(ctx context.Context, query HeadlinesQuery) ([]models.HeadlineItem, error) {
	const op = "service.headlines.Headlines"

	lg := log.From(ctx)

	if query.Category != "" && !models.ValidCategory(query.Category) {
		return nil, fmt.Errorf("%s: category %q: %w", op, query.Category, ErrInvalidArgument)
	}

	now := time.Now()

	q := BuildArticleQuery(
		DateStage(query.Date),
		SourceStage(query.Region, query.Source),
		CategoryStage(query.Category),
	)

	if s.refreshDue(ctx, q, query.Date, now) {
		lg.Info("refresh_start",
			slog.String("op", op),
			slog.String("category", query.Category),
			slog.String("region", string(query.Region)),
			slog.String("source", query.Source),
		)

		fetcher := s.international
		if query.Region == models.RegionLocal {
			fetcher = s.local
		}

		items, err := fetcher.Fetch(ctx, models.Category(query.Category), query.Source)
		if err != nil {
			// Деградация: отдаём то, что есть в хранилище.
			lg.Warn("refresh_fetch_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
		}

		if len(items) > 0 {
			created, updated := s.reconcile(ctx, items, models.Category(query.Category), now)
			lg.Info("refresh_done",
				slog.String("op", op),
				slog.Int("fetched", len(items)),
				slog.Int("created", created),
				slog.Int("updated", updated),
			)
		}
	}

	articles, err := s.storage.ListArticles(ctx, q, s.cfg.Limits.Headlines)
	if err != nil {
		return nil, fmt.Errorf("%s: list_articles: %w", op, err)
	}

	bookmarked := map[uuid.UUID]bool{}
	if query.UserID != uuid.Nil {
		ids, idsErr := s.storage.BookmarkedArticleIDs(ctx, query.UserID)
		if idsErr != nil {
			// Аннотация закладок необязательна для выдачи.
			lg.Warn("bookmark_ids_failed",
				slog.String("op", op),
				slog.String("err", idsErr.Error()),
			)
		}

		for _, id := range ids {
			bookmarked[id] = true
		}
	}

	output := make([]models.HeadlineItem, 0, len(articles))
	for _, article := range articles {
		output = append(output, models.HeadlineItem{
			Article:      article,
			DisplayDate:  displayDate(article.FetchedAt, now),
			IsBookmarked: bookmarked[article.ID],
		})
	}

	return output, nil
}

// displayDate — человекочитаемая дата по fetched_at:
// "Today"/"Yesterday" в серверной зоне, иначе "02 January, 2006".
func displayDate(fetchedAt, now time.Time) string {
	local := fetchedAt.In(now.Location())

	if sameDay(local, now) {
		return "Today"
	}

	if sameDay(local, now.AddDate(0, 0, -1)) {
		return "Yesterday"
	}

	return local.Format("02 January, 2006")
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
