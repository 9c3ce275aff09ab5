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

// Notifications — GET /notifications. Уведомления пользователя, новые первыми.
func (h *Handlers) Notifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, apierrors.ErrUnauthenticated)
		return
	}

	items, err := h.Svc.Notifications(r.Context(), userID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, notificationsToResponse(items))
}

// MarkNotificationRead — POST /notifications/{id}/read.
// Чужое или несуществующее уведомление — 404 без различения причин.
func (h *Handlers) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, apierrors.ErrUnauthenticated)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, fmt.Errorf("parse notification id: %w", service.ErrInvalidArgument))
		return
	}

	if err := h.Svc.MarkNotificationRead(r.Context(), id, userID); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Read bool `json:"read"`
	}{Read: true})
}
