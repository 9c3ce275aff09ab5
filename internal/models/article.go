// models содержит доменные сущности dailydash.
// Эти типы используются слоями бизнес-логики, хранилища и транспорта.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Article — сохранённая новость.
//
// Особенности:
//   - ID — UUIDv4;
//   - URL — каноническая ссылка, ключ дедупликации (UNIQUE в БД);
//   - PublishedAt — строка «как пришла от источника», не парсится;
//   - FetchedAt — момент последней записи (UTC), он же ключ свежести
//     кэша и сортировки по давности.
type Article struct {
	// ID — уникальный идентификатор новости.
	ID uuid.UUID
	// Title — заголовок, непустой.
	Title string
	// URL — ссылка на материал; два фетча с одинаковым URL
	// обновляют одну и ту же строку, а не плодят дубликаты.
	URL string
	// ImageURL — обложка; при отсутствии у источника — заглушка издания.
	ImageURL string
	// SourceName — отображаемое имя источника или "Unknown".
	SourceName string
	// Description — plain text, HTML-теги вырезаны.
	Description string
	// PublishedAt — дата публикации у источника, непрозрачная строка.
	PublishedAt string
	// Category — категория из закрытого перечисления.
	Category string
	// FetchedAt — время последней записи в БД (UTC).
	FetchedAt time.Time
}

// NormalizedArticle — транзиентная запись после нормализации фетчером.
// Производится FeedParser/фетчерами, потребляется реконсиляцией,
// напрямую не сохраняется.
type NormalizedArticle struct {
	Title       string
	URL         string
	ImageURL    string
	Description string
	SourceName  string
	PublishedAt string
	// CategoryHint — категория, под которой элемент был запрошен.
	// При вставке имеет приоритет над категорией текущего запроса.
	CategoryHint string
}

// HeadlineItem — новость, подготовленная к выдаче:
// с человекочитаемой датой и флагом закладки для конкретного пользователя.
type HeadlineItem struct {
	Article
	// DisplayDate — "Today"/"Yesterday"/"02 January, 2006" по FetchedAt.
	DisplayDate string
	// IsBookmarked — есть ли закладка у запрашивающего пользователя.
	IsBookmarked bool
}
