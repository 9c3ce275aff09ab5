package models

import (
	"time"

	"github.com/google/uuid"
)

// User — учётная запись.
//
// Аутентификация и работа с паролем живут во внешнем слое;
// здесь пользователь нужен только для аннотации закладок.
type User struct {
	ID uuid.UUID
	// Username — уникальное имя пользователя.
	Username string
	// Email — уникальный адрес.
	Email string
	// PasswordHash — хэш пароля; сервис его не вычисляет и не проверяет.
	PasswordHash string
	CreatedAt    time.Time
}

// Bookmark — закладка пользователя на новость.
// Инвариант: не более одной закладки на пару (UserID, ArticleID).
type Bookmark struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ArticleID uuid.UUID
	// SavedAt — момент создания закладки (UTC).
	SavedAt time.Time
}

// Notification — уведомление пользователя.
type Notification struct {
	ID      uuid.UUID
	UserID  uuid.UUID
	Message string
	IsRead  bool
	// CreatedAt — момент создания (UTC).
	CreatedAt time.Time
}
