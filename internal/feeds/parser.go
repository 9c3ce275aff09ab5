// feeds реализует разбор RSS/Atom-лент и загрузку локальных изданий.
//
// Ленты изданий расходятся по диалектам (RSS 2.0, Atom, нестандартные
// namespace-префиксы), поэтому вместо фиксированных структур документ
// разбирается в обобщённое дерево элементов, а поля ищутся по суффиксу
// локального имени тега.
package feeds

import (
	"bytes"
	"context"
	"encoding/xml"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"dailydash/internal/models"
	"dailydash/pkg/log"
)

// Сентинелы отсутствующих полей. Элементы, у которых заголовок
// остался сентинелом, считаются неразбираемыми и отбрасываются.
const (
	noTitle = "No Title"
	noLink  = "#"
)

// ItemMeta — метаданные, которыми помечается каждый элемент ленты:
// под какой категорией он запрошен и от какого издания пришёл.
type ItemMeta struct {
	// SourceName — отображаемое имя издания.
	SourceName string
	// PlaceholderImage — заглушка обложки, если у элемента нет своей.
	PlaceholderImage string
	// Category — категория, под которой лента была запрошена
	// (не выводится из содержимого).
	Category string
}

// xmlNode — обобщённый элемент XML-дерева.
type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []xmlNode  `xml:",any"`
}

// ParseFeed разбирает сырые байты RSS/Atom-документа в нормализованные записи.
//
// Контракт: ошибок наружу не отдаёт — неразбираемый документ означает
// ноль элементов для этого источника, загрузка остальных продолжается.
// Сначала строгий разбор; при неудаче — повтор с выброшенными
// некорректными UTF-8 последовательностями.
func ParseFeed(ctx context.Context, data []byte, meta ItemMeta) []models.NormalizedArticle {
	const op = "feeds.ParseFeed"

	root, err := parseTree(data)
	if err != nil {
		log.From(ctx).Warn("feed_parse_failed",
			slog.String("op", op),
			slog.String("source", meta.SourceName),
			slog.String("err", err.Error()),
		)
		return nil
	}

	var output []models.NormalizedArticle
	walk(root, func(n *xmlNode) {
		if !isItem(n) {
			return
		}

		if item, ok := parseItem(n, meta); ok {
			output = append(output, item)
		}
	})

	return output
}

// parseTree — строгий разбор с одним повтором на битом UTF-8.
func parseTree(data []byte) (*xmlNode, error) {
	var root xmlNode
	if err := xml.Unmarshal(data, &root); err == nil {
		return &root, nil
	}

	root = xmlNode{}
	if err := xml.Unmarshal(bytes.ToValidUTF8(data, nil), &root); err != nil {
		return nil, err
	}

	return &root, nil
}

// walk обходит дерево в глубину, включая сам узел.
func walk(n *xmlNode, fn func(*xmlNode)) {
	fn(n)
	for i := range n.Children {
		walk(&n.Children[i], fn)
	}
}

// isItem — элемент новости: локальное имя кончается на item (RSS)
// или entry (Atom), namespace-префикс не важен.
func isItem(n *xmlNode) bool {
	return strings.HasSuffix(n.XMLName.Local, "item") || strings.HasSuffix(n.XMLName.Local, "entry")
}

// parseItem извлекает поля одного элемента; ok=false — элемент отбрасывается.
func parseItem(item *xmlNode, meta ItemMeta) (models.NormalizedArticle, bool) {
	title := firstChildText(item, "title")
	if title == "" {
		title = noTitle
	}

	link := firstChildText(item, "link")
	if link == "" {
		link = noLink
	}

	// Atom-ссылка: <link href="..."/> без текста.
	if link == noLink {
		for i := range item.Children {
			child := &item.Children[i]
			if strings.HasSuffix(child.XMLName.Local, "link") {
				if href := attrValue(child, "href"); href != "" {
					link = href
					break
				}
			}
		}
	}

	description := firstChildText(item, "description")
	if description == "" {
		description = firstChildText(item, "summary")
	}

	imageURL := pickImageURL(item, description, meta.PlaceholderImage)

	if description != "" {
		description = stripTags(description)
	}

	if title == noTitle {
		return models.NormalizedArticle{}, false
	}

	publishedAt := firstChildText(item, "pubDate")
	if publishedAt == "" {
		publishedAt = firstChildText(item, "published")
	}
	if publishedAt == "" {
		publishedAt = firstChildText(item, "updated")
	}
	if publishedAt == "" {
		publishedAt = time.Now().UTC().Format("2006-01-02T15:04:05Z")
	}

	return models.NormalizedArticle{
		Title:        title,
		URL:          link,
		ImageURL:     imageURL,
		Description:  description,
		SourceName:   meta.SourceName,
		PublishedAt:  publishedAt,
		CategoryHint: meta.Category,
	}, true
}

// firstChildText — первый непустой текст среди прямых детей,
// чьё локальное имя кончается на suffix.
func firstChildText(n *xmlNode, suffix string) string {
	for i := range n.Children {
		child := &n.Children[i]
		if strings.HasSuffix(child.XMLName.Local, suffix) {
			if text := strings.TrimSpace(child.Text); text != "" {
				return text
			}
		}
	}

	return ""
}

// attrValue — значение атрибута по локальному имени.
func attrValue(n *xmlNode, name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return strings.TrimSpace(a.Value)
		}
	}

	return ""
}

var reSrc = regexp.MustCompile(`src=["']([^"']+)["']`)

// reTags — вырезание разметки span-ами угловых скобок. Сознательно
// не полноценный HTML-парсер: выдача нужна только как plain text.
var reTags = regexp.MustCompile(`<[^<]+?>`)

// pickImageURL выбирает обложку в порядке приоритетов:
//  1. первый src="..." внутри сырой разметки description;
//  2. первый потомок, чьё имя содержит content/enclosure/thumbnail
//     и несёт атрибут url;
//  3. заглушка издания.
func pickImageURL(item *xmlNode, rawDescription, placeholder string) string {
	if rawDescription != "" {
		if m := reSrc.FindStringSubmatch(rawDescription); len(m) >= 2 {
			return m[1]
		}
	}

	var found string
	walk(item, func(n *xmlNode) {
		if found != "" {
			return
		}

		local := n.XMLName.Local
		if strings.Contains(local, "content") || strings.Contains(local, "enclosure") || strings.Contains(local, "thumbnail") {
			if u := attrValue(n, "url"); u != "" {
				found = u
			}
		}
	})

	if found != "" {
		return found
	}

	return placeholder
}

// stripTags убирает разметку и схлопывает краевые пробелы.
func stripTags(s string) string {
	return strings.TrimSpace(reTags.ReplaceAllString(s, ""))
}
