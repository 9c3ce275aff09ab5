package feeds

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"dailydash/internal/models"
	"dailydash/pkg/log"
)

// Заголовки «как у браузера»: часть изданий отдаёт 403 на дефолтный UA.
const (
	feedUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	feedAccept    = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8"
	feedReferer   = "https://www.google.com/"
)

// maxFeedBody — предохранитель от неограниченных ответов.
const maxFeedBody = 8 << 20

// Fetcher загружает локальные издания по RSS/Atom.
//
// Издания опрашиваются конкурентно с ограничением семафором; отказ
// одного издания (сеть, битый XML) не мешает остальным внести свои
// элементы в результат.
type Fetcher struct {
	client  *http.Client
	outlets []Outlet
	maxConc int
}

// NewFetcher создаёт фетчер локальных изданий.
//
// Проверка TLS-сертификата отключена: у части лент битые цепочки,
// это принятый операционный компромисс, унаследованный от исходной
// системы. Включение проверки отрежет такие издания.
func NewFetcher(timeout time.Duration, maxConcurrent int) *Fetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}

	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}

	return &Fetcher{client: client, outlets: Outlets(), maxConc: maxConcurrent}
}

// fetchResult — результат опроса одного издания.
type fetchResult struct {
	outlet string
	items  []models.NormalizedArticle
	err    error
}

// Fetch реализует service.Fetcher для локального региона.
//
// source == "all" агрегирует все издания, у которых есть лента для
// категории; конкретный id — только это издание; неизвестный id —
// пустой результат. Ошибки отдельных изданий логируются и не
// прерывают агрегацию.
func (f *Fetcher) Fetch(ctx context.Context, category models.Category, source string) ([]models.NormalizedArticle, error) {
	const op = "feeds.Fetch"

	lg := log.From(ctx)

	var selected []Outlet
	if source == models.SourceAll {
		selected = f.outlets
	} else if id, ok := models.OutletByID(source); ok {
		for _, o := range f.outlets {
			if o.ID == id {
				selected = append(selected, o)
			}
		}
	}

	if len(selected) == 0 {
		return nil, nil
	}

	results := make(chan fetchResult)
	sem := make(chan struct{}, f.maxConc)
	pending := 0

	for _, o := range selected {
		url, ok := o.FeedURL(category)
		if !ok {
			// Лента для категории не объявлена — издание молча пропускается.
			continue
		}

		outlet := o
		feedURL := url
		pending++

		go func() {
			sem <- struct{}{}
			defer func() { <-sem }()

			items, err := f.fetchOne(ctx, feedURL, outlet, category)
			results <- fetchResult{outlet: outlet.Name(), items: items, err: err}
		}()
	}

	var output []models.NormalizedArticle
	for i := 0; i < pending; i++ {
		result := <-results
		if result.err != nil {
			lg.Warn("outlet_fetch_failed",
				slog.String("op", op),
				slog.String("outlet", result.outlet),
				slog.String("err", result.err.Error()),
			)
			continue
		}

		output = append(output, result.items...)
	}

	if err := ctx.Err(); err != nil {
		return output, fmt.Errorf("%s: %w", op, err)
	}

	return output, nil
}

// fetchOne загружает и разбирает одну ленту.
func (f *Fetcher) fetchOne(ctx context.Context, url string, outlet Outlet, category models.Category) ([]models.NormalizedArticle, error) {
	const op = "feeds.fetchOne"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: new_request: %w", op, err)
	}

	req.Header.Set("User-Agent", feedUserAgent)
	req.Header.Set("Accept", feedAccept)
	req.Header.Set("Referer", feedReferer)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: do: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%s: status=%d", op, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBody))
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", op, err)
	}

	items := ParseFeed(ctx, body, ItemMeta{
		SourceName:       outlet.Name(),
		PlaceholderImage: outlet.Placeholder(),
		Category:         string(category),
	})

	return items, nil
}
