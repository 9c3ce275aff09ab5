package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type ctxUserKey struct{}

// UserID извлекает идентификатор пользователя из X-User-Id и кладёт
// его в контекст. Заголовок проставляет внешний аутентифицирующий
// слой (обратный прокси/гейтвей); сам сервис токены не проверяет.
// Отсутствующий или битый заголовок — анонимный запрос, не ошибка.
func UserID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if raw := r.Header.Get("X-User-Id"); raw != "" {
				if id, err := uuid.Parse(raw); err == nil {
					ctx := context.WithValue(r.Context(), ctxUserKey{}, id)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserFrom достаёт идентификатор пользователя из контекста.
// ok=false — запрос анонимный.
func UserFrom(ctx context.Context) (uuid.UUID, bool) {
	if v := ctx.Value(ctxUserKey{}); v != nil {
		if id, ok := v.(uuid.UUID); ok && id != uuid.Nil {
			return id, true
		}
	}

	return uuid.Nil, false
}
