package handlers

import (
	"time"

	"dailydash/internal/models"
)

// Формат выдачи совместим с исходным фронтом: source — объект с name,
// ключ обложки — urlToImage.

type sourceResponse struct {
	Name string `json:"name"`
}

type articleResponse struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	URL          string         `json:"url"`
	URLToImage   string         `json:"urlToImage"`
	Description  string         `json:"description"`
	Source       sourceResponse `json:"source"`
	PublishedAt  string         `json:"publishedAt"`
	Category     string         `json:"category"`
	DisplayDate  string         `json:"display_date,omitempty"`
	IsBookmarked bool           `json:"is_bookmarked"`
}

type articleListResponse struct {
	Articles []articleResponse `json:"articles"`
}

func headlineToResponse(item models.HeadlineItem) articleResponse {
	return articleResponse{
		ID:           item.ID.String(),
		Title:        item.Title,
		URL:          item.URL,
		URLToImage:   item.ImageURL,
		Description:  item.Description,
		Source:       sourceResponse{Name: item.SourceName},
		PublishedAt:  item.PublishedAt,
		Category:     item.Category,
		DisplayDate:  item.DisplayDate,
		IsBookmarked: item.IsBookmarked,
	}
}

func headlinesToResponse(items []models.HeadlineItem) articleListResponse {
	output := articleListResponse{Articles: make([]articleResponse, 0, len(items))}
	for _, item := range items {
		output.Articles = append(output.Articles, headlineToResponse(item))
	}

	return output
}

type bookmarkToggleResponse struct {
	Bookmarked bool `json:"bookmarked"`
}

type notificationResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type notificationListResponse struct {
	Notifications []notificationResponse `json:"notifications"`
}

func notificationsToResponse(items []models.Notification) notificationListResponse {
	output := notificationListResponse{Notifications: make([]notificationResponse, 0, len(items))}
	for _, n := range items {
		output.Notifications = append(output.Notifications, notificationResponse{
			ID:        n.ID.String(),
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}

	return output
}

type categoryListResponse struct {
	Categories []string `json:"categories"`
}

type sourceOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type sourceListResponse struct {
	Sources []sourceOption `json:"sources"`
}
