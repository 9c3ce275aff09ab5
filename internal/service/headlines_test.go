package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"dailydash/internal/models"
	"dailydash/internal/storage"
	"dailydash/mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Файл unit-тестов основного сценария выдачи (headlines.go).
//
// Покрываем:
//  - валидацию категории (ErrInvalidArgument);
//  - протухший кэш -> фетч нужной стратегией (local/international) и реконсиляция;
//  - свежий кэш и историческая дата -> фетча нет;
//  - деградацию при отказе фетчера (выдача из хранилища без ошибки);
//  - аннотацию закладок и display_date.

// stubFetcher — управляемая реализация Fetcher.
type stubFetcher struct {
	items []models.NormalizedArticle
	err   error
	calls int
}

func (s *stubFetcher) Fetch(_ context.Context, _ models.Category, _ string) ([]models.NormalizedArticle, error) {
	s.calls++
	return s.items, s.err
}

func TestHeadlines_InvalidCategory(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := newSvcForTest(t, mocks.NewMockStorage(ctrl), nil, nil)

	_, err := svc.Headlines(context.Background(), HeadlinesQuery{
		Category: "astrology",
		Region:   models.RegionLocal,
	})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestHeadlines_StaleTriggersLocalFetch(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSt := mocks.NewMockStorage(ctrl)

	// Кэш протух: последняя строка старше окна.
	mockSt.EXPECT().
		LatestFetchedAt(gomock.Any(), gomock.Any()).
		Return(time.Now().Add(-10*time.Hour), nil)

	// Реконсиляция одного свежего элемента.
	mockSt.EXPECT().
		ArticleByURL(gomock.Any(), "https://example.com/fresh").
		Return(nil, storage.ErrNotFound)
	mockSt.EXPECT().
		UpsertArticle(gomock.Any(), gomock.Any()).
		Return(nil)

	stored := models.Article{
		ID:         uuid.New(),
		Title:      "Fresh",
		URL:        "https://example.com/fresh",
		SourceName: "Prothom Alo",
		Category:   "general",
		FetchedAt:  time.Now().UTC(),
	}
	mockSt.EXPECT().
		ListArticles(gomock.Any(), gomock.Any(), int32(150)).
		Return([]models.Article{stored}, nil)

	local := &stubFetcher{items: []models.NormalizedArticle{
		{Title: "Fresh", URL: "https://example.com/fresh", SourceName: "Prothom Alo"},
	}}
	international := &stubFetcher{}

	svc := newSvcForTest(t, mockSt, local, international)

	got, err := svc.Headlines(context.Background(), HeadlinesQuery{
		Category: "general",
		Region:   models.RegionLocal,
		Source:   models.SourceAll,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)

	require.Equal(t, 1, local.calls)
	require.Equal(t, 0, international.calls, "локальный регион не трогает международный фетчер")

	require.Equal(t, "Fresh", got[0].Title)
	require.Equal(t, "Today", got[0].DisplayDate)
	require.False(t, got[0].IsBookmarked)
}

func TestHeadlines_InternationalRegionUsesAPIFetcher(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSt := mocks.NewMockStorage(ctrl)

	mockSt.EXPECT().
		LatestFetchedAt(gomock.Any(), gomock.Any()).
		Return(time.Time{}, storage.ErrNotFound)
	mockSt.EXPECT().
		ListArticles(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil)

	local := &stubFetcher{}
	international := &stubFetcher{}

	svc := newSvcForTest(t, mockSt, local, international)

	_, err := svc.Headlines(context.Background(), HeadlinesQuery{
		Category: "business",
		Region:   models.RegionInternational,
		Source:   models.SourceAll,
	})
	require.NoError(t, err)

	require.Equal(t, 0, local.calls)
	require.Equal(t, 1, international.calls)
}

func TestHeadlines_FreshCacheSkipsFetch(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSt := mocks.NewMockStorage(ctrl)

	mockSt.EXPECT().
		LatestFetchedAt(gomock.Any(), gomock.Any()).
		Return(time.Now().Add(-1*time.Hour), nil)
	mockSt.EXPECT().
		ListArticles(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil)

	local := &stubFetcher{}

	svc := newSvcForTest(t, mockSt, local, &stubFetcher{})

	_, err := svc.Headlines(context.Background(), HeadlinesQuery{
		Category: "general",
		Region:   models.RegionLocal,
		Source:   models.SourceAll,
	})
	require.NoError(t, err)
	require.Equal(t, 0, local.calls)
}

func TestHeadlines_HistoricalDateSkipsFetch(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSt := mocks.NewMockStorage(ctrl)

	// Историческая дата: LatestFetchedAt и фетч не вызываются вовсе.
	mockSt.EXPECT().
		ListArticles(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil)

	local := &stubFetcher{}

	svc := newSvcForTest(t, mockSt, local, &stubFetcher{})

	_, err := svc.Headlines(context.Background(), HeadlinesQuery{
		Category: "general",
		Region:   models.RegionLocal,
		Source:   models.SourceAll,
		Date:     "2020-01-01",
	})
	require.NoError(t, err)
	require.Equal(t, 0, local.calls)
}

func TestHeadlines_FetchFailureDegrades(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSt := mocks.NewMockStorage(ctrl)

	mockSt.EXPECT().
		LatestFetchedAt(gomock.Any(), gomock.Any()).
		Return(time.Time{}, storage.ErrNotFound)

	stale := models.Article{
		ID:         uuid.New(),
		Title:      "Stale but present",
		URL:        "https://example.com/stale",
		SourceName: "Prothom Alo",
		FetchedAt:  time.Now().Add(-48 * time.Hour),
	}
	mockSt.EXPECT().
		ListArticles(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]models.Article{stale}, nil)

	local := &stubFetcher{err: errors.New("network down")}

	svc := newSvcForTest(t, mockSt, local, &stubFetcher{})

	got, err := svc.Headlines(context.Background(), HeadlinesQuery{
		Category: "general",
		Region:   models.RegionLocal,
		Source:   models.SourceAll,
	})
	require.NoError(t, err, "отказ фетча не виден пользователю")
	require.Len(t, got, 1)
	require.Equal(t, "Stale but present", got[0].Title)
}

func TestHeadlines_BookmarkAnnotation(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSt := mocks.NewMockStorage(ctrl)

	userID := uuid.New()
	markedID := uuid.New()
	plainID := uuid.New()

	mockSt.EXPECT().
		LatestFetchedAt(gomock.Any(), gomock.Any()).
		Return(time.Now(), nil)
	mockSt.EXPECT().
		ListArticles(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]models.Article{
			{ID: markedID, Title: "A", FetchedAt: time.Now()},
			{ID: plainID, Title: "B", FetchedAt: time.Now()},
		}, nil)
	mockSt.EXPECT().
		BookmarkedArticleIDs(gomock.Any(), userID).
		Return([]uuid.UUID{markedID}, nil)

	svc := newSvcForTest(t, mockSt, &stubFetcher{}, &stubFetcher{})

	got, err := svc.Headlines(context.Background(), HeadlinesQuery{
		Category: "general",
		Region:   models.RegionLocal,
		Source:   models.SourceAll,
		UserID:   userID,
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.True(t, got[0].IsBookmarked)
	require.False(t, got[1].IsBookmarked)
}

func TestHeadlines_ListFailurePropagates(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSt := mocks.NewMockStorage(ctrl)

	mockSt.EXPECT().
		LatestFetchedAt(gomock.Any(), gomock.Any()).
		Return(time.Now(), nil)
	mockSt.EXPECT().
		ListArticles(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection reset"))

	svc := newSvcForTest(t, mockSt, &stubFetcher{}, &stubFetcher{})

	_, err := svc.Headlines(context.Background(), HeadlinesQuery{
		Category: "general",
		Region:   models.RegionLocal,
		Source:   models.SourceAll,
	})
	require.Error(t, err)
}

func TestDisplayDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)

	require.Equal(t, "Today", displayDate(now.Add(-2*time.Hour), now))
	require.Equal(t, "Yesterday", displayDate(now.AddDate(0, 0, -1), now))
	require.Equal(t, "20 August, 2026", displayDate(time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC), now))
}
