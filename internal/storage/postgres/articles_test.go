package postgres

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"dailydash/internal/models"
	"dailydash/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Интеграционные тесты хранилища dailydash:
// — поднимают реальный PostgreSQL через testcontainers-go (postgres:16-alpine);
// — применяют миграции из ./migrations;
// — проверяют:
//    UpsertArticle: insert и политику конфликта по url (обновляются только
//    title/image_url/fetched_at);
//    ArticleByID/ArticleByURL: happy-path и ErrNotFound;
//    ListArticles: фильтры ArticleQuery, сортировка fetched_at DESC, limit;
//    LatestFetchedAt: по-комбинационная свежесть и ErrNotFound;
//    закладки: уникальность пары, выборка JOIN-ом, удаление;
//    уведомления: владение при пометке прочитанным.

// Запуск локально:
//   GO_TEST_INTEGRATION=1 go test ./internal/storage/postgres -v -race -count=1

// repoRootFromThisFile — корень репозитория относительно текущего файла тестов.
func repoRootFromThisFile() string {
	// internal/storage/postgres/... -> подняться на 3 уровня до корня.
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", "..", ".."))
}

// readMigration — читает SQL-миграцию из подкаталога ./migrations.
func readMigration(t *testing.T, name string) string {
	t.Helper()
	root := repoRootFromThisFile()
	path := filepath.Join(root, "migrations", name)
	b, err := os.ReadFile(path)
	require.NoError(t, err, "read migration %s", path)
	return string(b)
}

// startPostgres поднимает PostgreSQL, применяет миграции и возвращает
// инициализированное хранилище с функцией очистки. Без GO_TEST_INTEGRATION
// тест пропускается.
func startPostgres(t *testing.T) (*Storage, func()) {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		Env:          map[string]string{"POSTGRES_USER": "user", "POSTGRES_PASSWORD": "pass", "POSTGRES_DB": "db"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "5432/tcp")
	dsn := fmt.Sprintf("postgres://user:pass@%s:%s/db?sslmode=disable", host, port.Port())

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	_, err = pool.Exec(ctx, readMigration(t, "1_init_dailydash.up.sql"))
	require.NoError(t, err)

	st, err := New(ctx, dsn)
	require.NoError(t, err)

	cleanup := func() {
		st.Close()
		_ = c.Terminate(context.Background())
	}
	return st, cleanup
}

// mkArticle — заготовка статьи с уникальным url.
func mkArticle(source, category string, fetchedAt time.Time) models.Article {
	id := uuid.New()
	return models.Article{
		ID:          id,
		Title:       "title " + id.String()[:8],
		URL:         "https://example.com/" + id.String(),
		ImageURL:    "/static/img.png",
		SourceName:  source,
		Description: "desc",
		PublishedAt: "2026-08-28T10:00:00Z",
		Category:    category,
		FetchedAt:   fetchedAt,
	}
}

// mkUser — пользователь для FK закладок/уведомлений.
func mkUser(t *testing.T, st *Storage) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, st.SaveUser(context.Background(), &models.User{
		ID:           id,
		Username:     "u_" + id.String()[:8],
		Email:        id.String()[:8] + "@example.com",
		PasswordHash: "x",
		CreatedAt:    time.Now().UTC(),
	}))
	return id
}

func TestIntegration_UpsertArticle_ConflictPolicy(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	first := mkArticle("Prothom Alo", "general", now.Add(-time.Hour))
	require.NoError(t, st.UpsertArticle(ctx, &first))

	// Повтор по тому же url: другой id, обновлённые title/image_url/fetched_at,
	// намеренно другие description/category — они меняться не должны.
	second := first
	second.ID = uuid.New()
	second.Title = "updated title"
	second.ImageURL = "/static/new.png"
	second.Description = "should not overwrite"
	second.Category = "sports"
	second.FetchedAt = now
	require.NoError(t, st.UpsertArticle(ctx, &second))

	got, err := st.ArticleByURL(ctx, first.URL)
	require.NoError(t, err)

	require.Equal(t, first.ID, got.ID, "id существующей строки сохраняется")
	require.Equal(t, "updated title", got.Title)
	require.Equal(t, "/static/new.png", got.ImageURL)
	require.True(t, got.FetchedAt.Equal(now))
	require.Equal(t, "desc", got.Description)
	require.Equal(t, "general", got.Category)
}

func TestIntegration_ArticleByID_NotFound(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	_, err := st.ArticleByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, storage.ErrNotFound)

	_, err = st.ArticleByURL(context.Background(), "https://example.com/missing")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_ListArticles_FiltersAndOrder(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	older := mkArticle("Prothom Alo", "general", now.Add(-2*time.Hour))
	newer := mkArticle("Prothom Alo", "general", now.Add(-time.Hour))
	foreign := mkArticle("Example Times", "general", now.Add(-30*time.Minute))
	sports := mkArticle("The Daily Star", "sports", now.Add(-10*time.Minute))

	for _, a := range []models.Article{older, newer, foreign, sports} {
		a := a
		require.NoError(t, st.UpsertArticle(ctx, &a))
	}

	t.Run("order_desc_and_limit", func(t *testing.T) {
		got, err := st.ListArticles(ctx, storage.ArticleQuery{}, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, sports.ID, got[0].ID)
		require.Equal(t, foreign.ID, got[1].ID)
	})

	t.Run("source_names", func(t *testing.T) {
		got, err := st.ListArticles(ctx, storage.ArticleQuery{
			SourceNames: []string{"Prothom Alo"},
		}, 10)
		require.NoError(t, err)
		require.Len(t, got, 2)
	})

	t.Run("exclude_source_names", func(t *testing.T) {
		got, err := st.ListArticles(ctx, storage.ArticleQuery{
			ExcludeSourceNames: []string{"Prothom Alo", "The Daily Star", "BBC Bengali"},
		}, 10)
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, foreign.ID, got[0].ID)
	})

	t.Run("category", func(t *testing.T) {
		got, err := st.ListArticles(ctx, storage.ArticleQuery{Category: "sports"}, 10)
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, sports.ID, got[0].ID)
	})

	t.Run("fetched_window", func(t *testing.T) {
		from := now.Add(-90 * time.Minute)
		to := now.Add(-20 * time.Minute)
		got, err := st.ListArticles(ctx, storage.ArticleQuery{
			FetchedFrom: &from,
			FetchedTo:   &to,
		}, 10)
		require.NoError(t, err)
		require.Len(t, got, 2) // newer и foreign.
	})
}

func TestIntegration_LatestFetchedAt(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()

	_, err := st.LatestFetchedAt(ctx, storage.ArticleQuery{Category: "health"})
	require.ErrorIs(t, err, storage.ErrNotFound)

	now := time.Now().UTC().Truncate(time.Second)
	a := mkArticle("Prothom Alo", "health", now)
	require.NoError(t, st.UpsertArticle(ctx, &a))

	got, err := st.LatestFetchedAt(ctx, storage.ArticleQuery{Category: "health"})
	require.NoError(t, err)
	require.True(t, got.Equal(now))

	// Другая комбинация фильтров протухшей не становится.
	_, err = st.LatestFetchedAt(ctx, storage.ArticleQuery{Category: "business"})
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_Bookmarks_Lifecycle(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	userID := mkUser(t, st)
	article := mkArticle("Prothom Alo", "general", now)
	require.NoError(t, st.UpsertArticle(ctx, &article))

	bookmark := models.Bookmark{
		ID:        uuid.New(),
		UserID:    userID,
		ArticleID: article.ID,
		SavedAt:   now,
	}
	require.NoError(t, st.SaveBookmark(ctx, &bookmark))

	// Повтор пары -> ErrAlreadyExists.
	dup := models.Bookmark{ID: uuid.New(), UserID: userID, ArticleID: article.ID, SavedAt: now}
	require.ErrorIs(t, st.SaveBookmark(ctx, &dup), storage.ErrAlreadyExists)

	got, err := st.BookmarkByUserAndArticle(ctx, userID, article.ID)
	require.NoError(t, err)
	require.Equal(t, bookmark.ID, got.ID)

	list, err := st.ListBookmarkedArticles(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, article.ID, list[0].Article.ID)

	ids, err := st.BookmarkedArticleIDs(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{article.ID}, ids)

	require.NoError(t, st.DeleteBookmark(ctx, bookmark.ID))
	require.ErrorIs(t, st.DeleteBookmark(ctx, bookmark.ID), storage.ErrNotFound)

	_, err = st.BookmarkByUserAndArticle(ctx, userID, article.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_Notifications_Ownership(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()

	owner := mkUser(t, st)
	stranger := mkUser(t, st)

	n := models.Notification{
		ID:        uuid.New(),
		UserID:    owner,
		Message:   "Saved to your bookmarks",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, st.SaveNotification(ctx, &n))

	list, err := st.ListNotifications(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.False(t, list[0].IsRead)

	// Чужое уведомление пометить нельзя.
	require.ErrorIs(t, st.MarkNotificationRead(ctx, n.ID, stranger), storage.ErrNotFound)

	require.NoError(t, st.MarkNotificationRead(ctx, n.ID, owner))

	list, err = st.ListNotifications(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.True(t, list[0].IsRead)
}
