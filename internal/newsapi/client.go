// newsapi — клиент стороннего top-headlines API для международных новостей.
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"dailydash/internal/models"
)

// statusOK — единственное значение поля status, при котором ответ принимается.
const statusOK = "ok"

// Client — HTTP-клиент top-headlines.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	country    string
}

// New создаёт клиент. nil httpClient — клиент с таймаутом по умолчанию:
// в отличие от исходной системы запрос к API не может висеть бесконечно.
func New(httpClient *http.Client, baseURL, apiKey, country string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		country:    country,
	}
}

// response — тело ответа top-headlines.
type response struct {
	Status   string        `json:"status"`
	Articles []articleJSON `json:"articles"`
}

type articleJSON struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	Description string `json:"description"`
	PublishedAt string `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}

// TopHeadlines выполняет один GET к /v2/top-headlines для категории.
// Ответ со status != "ok" — пустой результат без ошибки (деградация).
func (c *Client) TopHeadlines(ctx context.Context, category models.Category) ([]models.NormalizedArticle, error) {
	const op = "newsapi.TopHeadlines"

	query := url.Values{}
	query.Set("country", c.country)
	query.Set("category", string(category))
	query.Set("apiKey", c.apiKey)

	endpoint := c.baseURL + "/v2/top-headlines?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: new_request: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: do: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%s: status=%d", op, resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	if body.Status != statusOK {
		return nil, nil
	}

	output := make([]models.NormalizedArticle, 0, len(body.Articles))
	for _, art := range body.Articles {
		sourceName := art.Source.Name
		if sourceName == "" {
			sourceName = "Unknown"
		}

		output = append(output, models.NormalizedArticle{
			Title:        art.Title,
			URL:          art.URL,
			ImageURL:     art.URLToImage,
			Description:  art.Description,
			SourceName:   sourceName,
			PublishedAt:  art.PublishedAt,
			CategoryHint: string(category),
		})
	}

	return output, nil
}

// Fetch реализует service.Fetcher для международного региона.
// Параметр source игнорируется: у апстрима нет выбора по изданию —
// асимметрия с локальным фетчером зафиксирована контрактом.
func (c *Client) Fetch(ctx context.Context, category models.Category, _ string) ([]models.NormalizedArticle, error) {
	return c.TopHeadlines(ctx, category)
}
