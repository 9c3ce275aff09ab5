package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dailydash/internal/models"
	"dailydash/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// articleColumns — единый список колонок таблицы articles,
// используемый в SELECT, чтобы гарантировать одинаковый порядок сканирования.
const articleColumns = `
id, title, url, image_url, source_name, description, published_at, category, fetched_at
`

// scanArticle сканирует одну строку статьи в доменную модель.
func scanArticle(row pgx.Row) (*models.Article, error) {
	var article models.Article

	if err := row.Scan(
		&article.ID,
		&article.Title,
		&article.URL,
		&article.ImageURL,
		&article.SourceName,
		&article.Description,
		&article.PublishedAt,
		&article.Category,
		&article.FetchedAt,
	); err != nil {
		return nil, err
	}

	article.FetchedAt = article.FetchedAt.UTC()

	return &article, nil
}

// whereArticles собирает WHERE по критериям поверх уже накопленных args.
// Возвращает фрагмент SQL (пустой — критериев нет) и дополненные args.
func whereArticles(q storage.ArticleQuery, args []any) (string, []any) {
	var conds []string

	if q.FetchedFrom != nil {
		args = append(args, q.FetchedFrom.UTC())
		conds = append(conds, fmt.Sprintf("fetched_at >= $%d", len(args)))
	}

	if q.FetchedTo != nil {
		args = append(args, q.FetchedTo.UTC())
		conds = append(conds, fmt.Sprintf("fetched_at < $%d", len(args)))
	}

	if len(q.SourceNames) > 0 {
		args = append(args, q.SourceNames)
		conds = append(conds, fmt.Sprintf("source_name = ANY($%d)", len(args)))
	}

	if len(q.ExcludeSourceNames) > 0 {
		args = append(args, q.ExcludeSourceNames)
		conds = append(conds, fmt.Sprintf("NOT (source_name = ANY($%d))", len(args)))
	}

	if q.Category != "" {
		args = append(args, q.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

// UpsertArticle сохраняет статью с upsert по url.
//
// Политика обновления при конфликте:
//   - title — перезаписывается;
//   - image_url — перезаписывается;
//   - fetched_at — обновляется всегда;
//   - source_name/description/published_at/category — не меняются.
func (s *Storage) UpsertArticle(ctx context.Context, article *models.Article) error {
	const op = "storage.postgres.UpsertArticle"

	q := `
	INSERT INTO articles (id, title, url, image_url, source_name, description, published_at, category, fetched_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (url) DO UPDATE
	SET
	title = EXCLUDED.title,
	image_url = EXCLUDED.image_url,
	fetched_at = EXCLUDED.fetched_at
	`

	_, err := s.db.Exec(ctx, q,
		article.ID,
		article.Title,
		article.URL,
		article.ImageURL,
		article.SourceName,
		article.Description,
		article.PublishedAt,
		article.Category,
		article.FetchedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ArticleByID возвращает статью по идентификатору.
// Если запись не найдена — storage.ErrNotFound.
func (s *Storage) ArticleByID(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	const op = "storage.postgres.ArticleByID"

	q := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`

	article, err := scanArticle(s.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return article, nil
}

// ArticleByURL возвращает статью по канонической ссылке.
// Если запись не найдена — storage.ErrNotFound.
func (s *Storage) ArticleByURL(ctx context.Context, url string) (*models.Article, error) {
	const op = "storage.postgres.ArticleByURL"

	q := `SELECT ` + articleColumns + ` FROM articles WHERE url = $1`

	article, err := scanArticle(s.db.QueryRow(ctx, q, url))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return article, nil
}

// ListArticles возвращает статьи по критериям.
// Сортировка фиксирована: fetched_at DESC, id DESC (тай-брейк для стабильности).
func (s *Storage) ListArticles(ctx context.Context, q storage.ArticleQuery, limit int32) ([]models.Article, error) {
	const op = "storage.postgres.ListArticles"

	if limit <= 0 {
		// Защита от нуля/отрицательного значения.
		limit = 1
	}

	where, args := whereArticles(q, nil)

	args = append(args, limit)
	sql := `SELECT ` + articleColumns + ` FROM articles` + where +
		fmt.Sprintf(` ORDER BY fetched_at DESC, id DESC LIMIT $%d`, len(args))

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var output []models.Article
	for rows.Next() {
		article, scanErr := scanArticle(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, scanErr)
		}

		output = append(output, *article)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	return output, nil
}

// LatestFetchedAt возвращает fetched_at самой свежей строки под критериями.
// Если подходящих строк нет — storage.ErrNotFound.
func (s *Storage) LatestFetchedAt(ctx context.Context, q storage.ArticleQuery) (time.Time, error) {
	const op = "storage.postgres.LatestFetchedAt"

	where, args := whereArticles(q, nil)

	sql := `SELECT fetched_at FROM articles` + where + ` ORDER BY fetched_at DESC LIMIT 1`

	var fetchedAt time.Time
	if err := s.db.QueryRow(ctx, sql, args...).Scan(&fetchedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return time.Time{}, fmt.Errorf("%s: %w", op, err)
	}

	return fetchedAt.UTC(), nil
}
