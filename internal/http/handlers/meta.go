package handlers

import (
	"net/http"

	"dailydash/internal/models"
)

// Categories — GET /categories. Закрытое перечисление для меню фронта.
func (h *Handlers) Categories(w http.ResponseWriter, r *http.Request) {
	categories := models.Categories()

	output := categoryListResponse{Categories: make([]string, 0, len(categories))}
	for _, c := range categories {
		output.Categories = append(output.Categories, string(c))
	}

	writeJSON(w, http.StatusOK, output)
}

// Sources — GET /sources. Локальные издания плюс псевдоисточник "all".
func (h *Handlers) Sources(w http.ResponseWriter, r *http.Request) {
	outlets := models.LocalOutlets()

	output := sourceListResponse{Sources: make([]sourceOption, 0, len(outlets)+1)}
	output.Sources = append(output.Sources, sourceOption{ID: models.SourceAll, Name: "All Sources"})
	for _, outlet := range outlets {
		output.Sources = append(output.Sources, sourceOption{
			ID:   string(outlet),
			Name: outlet.DisplayName(),
		})
	}

	writeJSON(w, http.StatusOK, output)
}
