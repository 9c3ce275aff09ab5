package feeds

import "dailydash/internal/models"

// Outlet — локальное издание с таблицей лент по категориям.
type Outlet struct {
	ID models.LocalOutlet
	// Feeds — URL ленты по категории. Пустая строка — категория
	// объявлена «без ленты», издание для неё молча пропускается.
	// Отсутствующий ключ — откат на ленту general.
	Feeds map[models.Category]string
}

// Name — отображаемое имя издания (оно же Article.SourceName).
func (o Outlet) Name() string { return o.ID.DisplayName() }

// Placeholder — заглушка обложки издания.
func (o Outlet) Placeholder() string { return o.ID.PlaceholderImage() }

// FeedURL возвращает URL ленты издания для категории.
// ok=false — у издания нет ленты для этой категории (объявлено пустым).
func (o Outlet) FeedURL(category models.Category) (string, bool) {
	if url, declared := o.Feeds[category]; declared {
		if url == "" {
			return "", false
		}
		return url, true
	}

	url, declared := o.Feeds[models.CategoryGeneral]
	if !declared || url == "" {
		return "", false
	}

	return url, true
}

// Outlets — статический реестр локальных изданий.
func Outlets() []Outlet {
	return []Outlet{
		{
			ID: models.OutletProthomAlo,
			Feeds: map[models.Category]string{
				models.CategoryGeneral:       "https://www.prothomalo.com/feed",
				models.CategoryTechnology:    "https://www.prothomalo.com/feed/technology",
				models.CategoryBusiness:      "https://www.prothomalo.com/feed/business",
				models.CategorySports:        "https://www.prothomalo.com/feed/sports",
				models.CategoryEntertainment: "https://www.prothomalo.com/feed/entertainment",
				// Выделенной научной ленты нет, ближайшая — технологии.
				models.CategoryScience: "https://www.prothomalo.com/feed/technology",
				models.CategoryHealth:  "https://www.prothomalo.com/feed/lifestyle",
			},
		},
		{
			ID: models.OutletDailyStar,
			Feeds: map[models.Category]string{
				models.CategoryGeneral:       "https://www.thedailystar.net/frontpage/rss.xml",
				models.CategoryBusiness:      "https://www.thedailystar.net/business/rss.xml",
				models.CategorySports:        "https://www.thedailystar.net/sports/rss.xml",
				models.CategoryEntertainment: "https://www.thedailystar.net/entertainment/rss.xml",
				models.CategoryTechnology:    "https://www.thedailystar.net/tech-startup/rss.xml",
				models.CategoryScience:       "https://www.thedailystar.net/tech-startup/rss.xml",
				models.CategoryHealth:        "https://www.thedailystar.net/health/rss.xml",
			},
		},
		{
			ID: models.OutletBBCBengali,
			Feeds: map[models.Category]string{
				models.CategoryGeneral:    "https://feeds.bbci.co.uk/bengali/rss.xml",
				models.CategoryTechnology: "https://rss.app/feeds/HOKMtLfRVRY5iAs7.xml",
				models.CategoryBusiness:   "https://rss.app/feeds/dxITeBMenpk04Tyk.xml",
				models.CategorySports:     "https://rss.app/feeds/pe7vU2O2oslhNHqa.xml",
				// Этих лент у BBC Bengali нет; издание пропускается.
				models.CategoryEntertainment: "",
				models.CategoryScience:       "",
				models.CategoryHealth:        "",
			},
		},
	}
}
