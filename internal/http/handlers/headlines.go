package handlers

import (
	"net/http"

	apierrors "dailydash/internal/errors"
	"dailydash/internal/http/middleware"
	"dailydash/internal/models"
	"dailydash/internal/service"
)

// Headlines — GET /headlines.
//
// Query-параметры:
//   - category — из закрытого перечисления, по умолчанию general;
//     неизвестная категория откатывается на general, а не в 400 —
//     фронт шлёт категорию из своего меню, рассинхронизация не должна
//     ломать выдачу;
//   - region — local|international, по умолчанию local;
//   - source — id издания или all, по умолчанию all;
//   - date — YYYY-MM-DD, опционально.
//
// Идентификация опциональна: аноним получает выдачу без аннотации закладок.
func (h *Handlers) Headlines(w http.ResponseWriter, r *http.Request) {
	query := service.HeadlinesQuery{
		Category: r.URL.Query().Get("category"),
		Source:   r.URL.Query().Get("source"),
		Date:     r.URL.Query().Get("date"),
	}

	if query.Category == "" || !models.ValidCategory(query.Category) {
		query.Category = string(models.CategoryGeneral)
	}

	switch r.URL.Query().Get("region") {
	case string(models.RegionInternational):
		query.Region = models.RegionInternational
	default:
		query.Region = models.RegionLocal
	}

	if query.Source == "" {
		query.Source = models.SourceAll
	}

	if userID, ok := middleware.UserFrom(r.Context()); ok {
		query.UserID = userID
	}

	items, err := h.Svc.Headlines(r.Context(), query)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, headlinesToResponse(items))
}
