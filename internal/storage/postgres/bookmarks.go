package postgres

import (
	"context"
	"errors"
	"fmt"

	"dailydash/internal/models"
	"dailydash/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// BookmarkByUserAndArticle возвращает закладку пары (user, article).
// Если запись не найдена — storage.ErrNotFound.
func (s *Storage) BookmarkByUserAndArticle(ctx context.Context, userID, articleID uuid.UUID) (*models.Bookmark, error) {
	const op = "storage.postgres.BookmarkByUserAndArticle"

	q := `
	SELECT id, user_id, article_id, saved_at
	FROM bookmarks
	WHERE user_id = $1 AND article_id = $2
	`

	var bookmark models.Bookmark
	err := s.db.QueryRow(ctx, q, userID, articleID).Scan(
		&bookmark.ID,
		&bookmark.UserID,
		&bookmark.ArticleID,
		&bookmark.SavedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	bookmark.SavedAt = bookmark.SavedAt.UTC()

	return &bookmark, nil
}

// SaveBookmark создаёт закладку.
// Ошибки: storage.ErrAlreadyExists при повторе пары (user_id, article_id).
func (s *Storage) SaveBookmark(ctx context.Context, bookmark *models.Bookmark) error {
	const op = "storage.postgres.SaveBookmark"

	q := `
	INSERT INTO bookmarks (id, user_id, article_id, saved_at)
	VALUES ($1, $2, $3, $4)
	`

	_, err := s.db.Exec(ctx, q,
		bookmark.ID,
		bookmark.UserID,
		bookmark.ArticleID,
		bookmark.SavedAt.UTC(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DeleteBookmark удаляет закладку по id.
// Если записи нет — storage.ErrNotFound.
func (s *Storage) DeleteBookmark(ctx context.Context, id uuid.UUID) error {
	const op = "storage.postgres.DeleteBookmark"

	tag, err := s.db.Exec(ctx, `DELETE FROM bookmarks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// ListBookmarkedArticles возвращает статьи пользователя по закладкам,
// отсортированные по saved_at DESC.
func (s *Storage) ListBookmarkedArticles(ctx context.Context, userID uuid.UUID) ([]storage.BookmarkedArticle, error) {
	const op = "storage.postgres.ListBookmarkedArticles"

	q := `
	SELECT a.id, a.title, a.url, a.image_url, a.source_name, a.description, a.published_at, a.category, a.fetched_at,
	       b.saved_at
	FROM bookmarks b
	JOIN articles a ON a.id = b.article_id
	WHERE b.user_id = $1
	ORDER BY b.saved_at DESC
	`

	rows, err := s.db.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var output []storage.BookmarkedArticle
	for rows.Next() {
		var item storage.BookmarkedArticle
		if scanErr := rows.Scan(
			&item.Article.ID,
			&item.Article.Title,
			&item.Article.URL,
			&item.Article.ImageURL,
			&item.Article.SourceName,
			&item.Article.Description,
			&item.Article.PublishedAt,
			&item.Article.Category,
			&item.Article.FetchedAt,
			&item.SavedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, scanErr)
		}

		item.Article.FetchedAt = item.Article.FetchedAt.UTC()
		item.SavedAt = item.SavedAt.UTC()

		output = append(output, item)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	return output, nil
}

// BookmarkedArticleIDs возвращает id статей, на которые у пользователя есть закладки.
func (s *Storage) BookmarkedArticleIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	const op = "storage.postgres.BookmarkedArticleIDs"

	rows, err := s.db.Query(ctx, `SELECT article_id FROM bookmarks WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var output []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if scanErr := rows.Scan(&id); scanErr != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, scanErr)
		}

		output = append(output, id)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	return output, nil
}
