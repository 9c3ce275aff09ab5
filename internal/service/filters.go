package service

import (
	"time"

	"dailydash/internal/models"
	"dailydash/internal/storage"
)

// Стадии фильтра. Каждая стадия — замыкание, сужающее критерии выборки
// независимо от остальных; цепочка собирается свёрткой над нулевым
// storage.ArticleQuery в фиксированном порядке (дата -> источник/регион ->
// категория). Порядок влияет только на читаемость: стадии коммутируют.

// QueryStage — одна стадия фильтра.
type QueryStage func(storage.ArticleQuery) storage.ArticleQuery

// BuildArticleQuery сворачивает стадии над пустыми критериями.
func BuildArticleQuery(stages ...QueryStage) storage.ArticleQuery {
	var q storage.ArticleQuery
	for _, stage := range stages {
		q = stage(q)
	}

	return q
}

// DateStage ограничивает fetched_at сутками [date 00:00, date+1 00:00)
// в серверной зоне. Нераспознанная дата — отсутствие фильтра, не ошибка.
func DateStage(searchDate string) QueryStage {
	return func(q storage.ArticleQuery) storage.ArticleQuery {
		if searchDate == "" {
			return q
		}

		day, err := time.ParseInLocation("2006-01-02", searchDate, time.Local)
		if err != nil {
			return q
		}

		from := day
		to := day.AddDate(0, 0, 1)
		q.FetchedFrom = &from
		q.FetchedTo = &to

		return q
	}
}

// SourceStage ограничивает выборку по региону и источнику.
//
// Регион local: известный id издания — точное совпадение по его
// отображаемому имени; "all" или нераспознанный id — весь локальный
// набор. Иначе — международная часть: всё, что НЕ помечено локальными
// именами (явного allow-list у международных источников нет).
func SourceStage(region models.Region, source string) QueryStage {
	return func(q storage.ArticleQuery) storage.ArticleQuery {
		if region == models.RegionLocal {
			if outlet, ok := models.OutletByID(source); ok {
				q.SourceNames = []string{outlet.DisplayName()}
				return q
			}

			q.SourceNames = models.LocalSourceNames()
			return q
		}

		q.ExcludeSourceNames = models.LocalSourceNames()
		return q
	}
}

// CategoryStage ограничивает выборку точным совпадением категории.
// Пустая категория — стадия ничего не делает.
func CategoryStage(category string) QueryStage {
	return func(q storage.ArticleQuery) storage.ArticleQuery {
		if category != "" {
			q.Category = category
		}

		return q
	}
}
