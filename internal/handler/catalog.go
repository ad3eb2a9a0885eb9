package handler

import (
	"net/http"

	"github.com/yash113gadia/CampusQuest/internal/catalog"
)

type templatesResponse struct {
	Categories     []catalog.Category `json:"categories"`
	Templates      []catalog.Template `json:"templates"`
	DailyMaxPoints float64            `json:"dailyMaxPoints"`
}

// CatalogTemplates lists quest templates, optionally filtered by ?category=.
func CatalogTemplates(w http.ResponseWriter, r *http.Request) {
	templates := catalog.Templates()
	if c := r.URL.Query().Get("category"); c != "" {
		templates = catalog.TemplatesByCategory(c)
	}
	if templates == nil {
		templates = []catalog.Template{}
	}
	writeJSON(w, http.StatusOK, templatesResponse{
		Categories:     catalog.Categories(),
		Templates:      templates,
		DailyMaxPoints: catalog.DailyMaxPoints(),
	})
}

func CatalogShop(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.ShopItems())
}

func CatalogFocus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.FocusPresets())
}
