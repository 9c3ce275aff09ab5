package service

import (
	"testing"
	"time"

	"dailydash/internal/models"
	"dailydash/internal/storage"

	"github.com/stretchr/testify/require"
)

// Файл unit-тестов цепочки фильтров (filters.go).
//
// Покрываем:
//  - независимость стадий: каждая сужает только свои поля;
//  - композицию: полная цепочка даёт объединение критериев;
//  - DateStage: полуинтервал суток, нераспознанная дата — no-op;
//  - SourceStage: точный источник / весь локальный набор / международное
//    исключение локальных имён;
//  - CategoryStage: пустая категория — no-op.

func TestBuildArticleQuery_EmptyChain(t *testing.T) {
	t.Parallel()

	q := BuildArticleQuery()
	require.Equal(t, storage.ArticleQuery{}, q)
}

func TestDateStage(t *testing.T) {
	t.Parallel()

	t.Run("valid_date_halfopen_day", func(t *testing.T) {
		t.Parallel()

		q := BuildArticleQuery(DateStage("2026-08-28"))

		require.NotNil(t, q.FetchedFrom)
		require.NotNil(t, q.FetchedTo)

		wantFrom := time.Date(2026, 8, 28, 0, 0, 0, 0, time.Local)
		require.True(t, q.FetchedFrom.Equal(wantFrom))
		require.True(t, q.FetchedTo.Equal(wantFrom.AddDate(0, 0, 1)))

		// Остальные поля не тронуты.
		require.Empty(t, q.SourceNames)
		require.Empty(t, q.ExcludeSourceNames)
		require.Empty(t, q.Category)
	})

	t.Run("empty_date_noop", func(t *testing.T) {
		t.Parallel()

		q := BuildArticleQuery(DateStage(""))
		require.Equal(t, storage.ArticleQuery{}, q)
	})

	t.Run("garbage_date_noop", func(t *testing.T) {
		t.Parallel()

		q := BuildArticleQuery(DateStage("28/08/2026"))
		require.Equal(t, storage.ArticleQuery{}, q)
	})
}

func TestSourceStage(t *testing.T) {
	t.Parallel()

	t.Run("local_known_outlet", func(t *testing.T) {
		t.Parallel()

		q := BuildArticleQuery(SourceStage(models.RegionLocal, "daily_star"))
		require.Equal(t, []string{"The Daily Star"}, q.SourceNames)
		require.Empty(t, q.ExcludeSourceNames)
	})

	t.Run("local_all", func(t *testing.T) {
		t.Parallel()

		q := BuildArticleQuery(SourceStage(models.RegionLocal, models.SourceAll))
		require.Equal(t, models.LocalSourceNames(), q.SourceNames)
	})

	t.Run("local_unknown_falls_back_to_all", func(t *testing.T) {
		t.Parallel()

		q := BuildArticleQuery(SourceStage(models.RegionLocal, "does-not-exist"))
		require.Equal(t, models.LocalSourceNames(), q.SourceNames)
	})

	t.Run("international_excludes_local_names", func(t *testing.T) {
		t.Parallel()

		q := BuildArticleQuery(SourceStage(models.RegionInternational, models.SourceAll))
		require.Empty(t, q.SourceNames)
		require.Equal(t, models.LocalSourceNames(), q.ExcludeSourceNames)
	})
}

func TestCategoryStage(t *testing.T) {
	t.Parallel()

	t.Run("set", func(t *testing.T) {
		t.Parallel()

		q := BuildArticleQuery(CategoryStage("sports"))
		require.Equal(t, "sports", q.Category)
	})

	t.Run("empty_noop", func(t *testing.T) {
		t.Parallel()

		q := BuildArticleQuery(CategoryStage(""))
		require.Equal(t, storage.ArticleQuery{}, q)
	})
}

func TestBuildArticleQuery_FullChain(t *testing.T) {
	t.Parallel()

	q := BuildArticleQuery(
		DateStage("2026-08-28"),
		SourceStage(models.RegionLocal, "prothom_alo"),
		CategoryStage("technology"),
	)

	require.NotNil(t, q.FetchedFrom)
	require.NotNil(t, q.FetchedTo)
	require.Equal(t, []string{"Prothom Alo"}, q.SourceNames)
	require.Empty(t, q.ExcludeSourceNames)
	require.Equal(t, "technology", q.Category)
}

// Стадии коммутируют: порядок применения не меняет результата.
func TestBuildArticleQuery_StagesCommute(t *testing.T) {
	t.Parallel()

	a := BuildArticleQuery(
		DateStage("2026-08-28"),
		SourceStage(models.RegionInternational, models.SourceAll),
		CategoryStage("business"),
	)
	b := BuildArticleQuery(
		CategoryStage("business"),
		SourceStage(models.RegionInternational, models.SourceAll),
		DateStage("2026-08-28"),
	)

	require.Equal(t, a.Category, b.Category)
	require.Equal(t, a.SourceNames, b.SourceNames)
	require.Equal(t, a.ExcludeSourceNames, b.ExcludeSourceNames)
	require.True(t, a.FetchedFrom.Equal(*b.FetchedFrom))
	require.True(t, a.FetchedTo.Equal(*b.FetchedTo))
}
