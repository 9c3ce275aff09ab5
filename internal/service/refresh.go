package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dailydash/internal/storage"
	"dailydash/pkg/log"
)

// isTodaySearch — эффективная дата поиска «сегодня»: дата не задана
// или равна сегодняшней в серверной зоне.
func isTodaySearch(searchDate string, now time.Time) bool {
	return searchDate == "" || searchDate == now.Format("2006-01-02")
}

// shouldRefresh — чистое правило свежести.
//
// Рефреш рассматривается только для «сегодняшних» запросов: прошлое
// новыми фетчами не меняется, исторические выборки всегда отдаются из
// хранилища. Для сегодняшних — рефреш нужен, если подходящих строк нет
// вовсе или самая свежая старше окна staleAfter.
func shouldRefresh(searchDate string, latest time.Time, haveLatest bool, staleAfter time.Duration, now time.Time) bool {
	if !isTodaySearch(searchDate, now) {
		return false
	}

	if !haveLatest {
		return true
	}

	return now.Sub(latest) > staleAfter
}

// refreshDue — решение о рефреше для конкретной комбинации фильтров.
//
// Свежесть проверяется по-комбинационно, не глобально: разные
// (категория, регион, источник) протухают и обновляются независимо.
// Ошибка хранилища деградирует в «не рефрешить» — отдадим то, что есть.
//
// Гонки не закрыты сознательно: два конкурентных запроса одной протухшей
// комбинации могут оба уйти за свежими данными; реконсиляция по URL
// делает повтор идемпотентным.
func (s *Service) refreshDue(ctx context.Context, q storage.ArticleQuery, searchDate string, now time.Time) bool {
	const op = "service.refresh.refreshDue"

	if !isTodaySearch(searchDate, now) {
		return false
	}

	latest, err := s.storage.LatestFetchedAt(ctx, q)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return true
		}

		log.From(ctx).Error("latest_fetched_at_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)

		return false
	}

	return shouldRefresh(searchDate, latest, true, s.cfg.News.StaleAfter, now)
}
