package handlers

import (
	"fmt"
	"net/http"

	apierrors "dailydash/internal/errors"
	"dailydash/internal/http/middleware"
	"dailydash/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ToggleBookmark — POST /articles/{id}/bookmark.
// Требует идентифицированного пользователя. Ответ — итоговое состояние закладки.
func (h *Handlers) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, apierrors.ErrUnauthenticated)
		return
	}

	articleID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, fmt.Errorf("parse article id: %w", service.ErrInvalidArgument))
		return
	}

	bookmarked, err := h.Svc.ToggleBookmark(r.Context(), userID, articleID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, bookmarkToggleResponse{Bookmarked: bookmarked})
}

// Bookmarks — GET /bookmarks. Закладки пользователя, свежие первыми.
func (h *Handlers) Bookmarks(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, apierrors.ErrUnauthenticated)
		return
	}

	items, err := h.Svc.Bookmarks(r.Context(), userID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, headlinesToResponse(items))
}
