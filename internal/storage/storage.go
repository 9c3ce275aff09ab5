// storage определяет контракты доступа к БД для dailydash.
package storage

import (
	"context"
	"errors"
	"time"

	"dailydash/internal/models"

	"github.com/google/uuid"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — конфликт уникальности (url статьи, пара user+article и т.п.).
	ErrAlreadyExists = errors.New("already exists")
)

// ArticleQuery — критерии выборки статей.
//
// Нулевое значение — «все строки». Каждое поле сужает выборку независимо
// от остальных; сервисный слой собирает критерии композицией стадий
// (см. service: дата -> источник/регион -> категория).
type ArticleQuery struct {
	// FetchedFrom/FetchedTo — полуинтервал [from, to) по fetched_at.
	FetchedFrom *time.Time
	FetchedTo   *time.Time
	// SourceNames — ограничить строками с source_name из списка.
	SourceNames []string
	// ExcludeSourceNames — ограничить строками с source_name НЕ из списка.
	// Международная часть определяется именно так, без явного allow-list.
	ExcludeSourceNames []string
	// Category — точное совпадение категории; пустая строка — без фильтра.
	Category string
}

// BookmarkedArticle — статья вместе с моментом сохранения закладки.
type BookmarkedArticle struct {
	Article models.Article
	SavedAt time.Time
}

// ArticleStorage описывает операции над сущностью models.Article.
type ArticleStorage interface {
	// UpsertArticle сохраняет статью с upsert по url:
	// при конфликте обновляются только title, image_url и fetched_at.
	UpsertArticle(ctx context.Context, article *models.Article) error
	// ArticleByID возвращает статью по идентификатору; ErrNotFound, если её нет.
	ArticleByID(ctx context.Context, id uuid.UUID) (*models.Article, error)
	// ArticleByURL возвращает статью по канонической ссылке; ErrNotFound, если её нет.
	ArticleByURL(ctx context.Context, url string) (*models.Article, error)
	// ListArticles возвращает статьи по критериям, отсортированные по fetched_at DESC.
	ListArticles(ctx context.Context, q ArticleQuery, limit int32) ([]models.Article, error)
	// LatestFetchedAt возвращает fetched_at самой свежей строки под критериями.
	// Если подходящих строк нет — ErrNotFound.
	LatestFetchedAt(ctx context.Context, q ArticleQuery) (time.Time, error)
}

// BookmarkStorage описывает операции над закладками.
type BookmarkStorage interface {
	// BookmarkByUserAndArticle возвращает закладку пары (user, article); ErrNotFound, если её нет.
	BookmarkByUserAndArticle(ctx context.Context, userID, articleID uuid.UUID) (*models.Bookmark, error)
	// SaveBookmark создаёт закладку; ErrAlreadyExists при повторе пары.
	SaveBookmark(ctx context.Context, bookmark *models.Bookmark) error
	// DeleteBookmark удаляет закладку по id; ErrNotFound, если её нет.
	DeleteBookmark(ctx context.Context, id uuid.UUID) error
	// ListBookmarkedArticles возвращает статьи пользователя по закладкам,
	// отсортированные по saved_at DESC.
	ListBookmarkedArticles(ctx context.Context, userID uuid.UUID) ([]BookmarkedArticle, error)
	// BookmarkedArticleIDs возвращает id статей, закладки на которые есть у пользователя.
	BookmarkedArticleIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// UserStorage — минимальный контракт пользовательского стора.
// Аутентификация живёт снаружи; здесь только чтение для аннотаций
// и создание записей внешним слоем.
type UserStorage interface {
	SaveUser(ctx context.Context, user *models.User) error
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UserByUsername(ctx context.Context, username string) (*models.User, error)
}

// NotificationStorage описывает операции над уведомлениями.
type NotificationStorage interface {
	SaveNotification(ctx context.Context, n *models.Notification) error
	// ListNotifications возвращает уведомления пользователя, created_at DESC.
	ListNotifications(ctx context.Context, userID uuid.UUID) ([]models.Notification, error)
	// MarkNotificationRead помечает уведомление пользователя прочитанным;
	// ErrNotFound, если уведомления нет или оно чужое.
	MarkNotificationRead(ctx context.Context, id, userID uuid.UUID) error
}

// Storage задаёт контракт доступа к хранилищу dailydash.
type Storage interface {
	ArticleStorage
	BookmarkStorage
	UserStorage
	NotificationStorage
	Close()
}
