package feed

import (
	"cmp"
	"encoding/json"
	"fmt"
	"time"

	"github.com/polysend/notifeed/app/database"
)

const jsonFeedVersion = "https://jsonfeed.org/version/1.1"

type jsonFeed struct {
	Version     string         `json:"version"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	HomePageURL string         `json:"home_page_url,omitempty"`
	FeedURL     string         `json:"feed_url,omitempty"`
	Language    string         `json:"language,omitempty"`
	Items       []jsonFeedItem `json:"items"`
}

type jsonFeedAuthor struct {
	Name string `json:"name"`
}

type jsonFeedItem struct {
	ID            string           `json:"id"`
	URL           string           `json:"url,omitempty"`
	Title         string           `json:"title"`
	ContentHTML   string           `json:"content_html,omitempty"`
	DatePublished string           `json:"date_published"`
	DateModified  string           `json:"date_modified,omitempty"`
	Authors       []jsonFeedAuthor `json:"authors,omitempty"`
	Tags          []string         `json:"tags,omitempty"`
}

// JSONFeed renders the channel and items as a JSON Feed 1.1 document.
func (g *Generator) JSONFeed(settings database.Settings, items []database.Item) ([]byte, error) {
	doc := jsonFeed{
		Version:     jsonFeedVersion,
		Title:       settings.Title,
		Description: settings.Description,
		HomePageURL: settings.Link,
		FeedURL:     g.baseURL + "/feed.json",
		Language:    settings.Language,
		Items:       make([]jsonFeedItem, 0, len(items)),
	}

	for _, item := range items {
		entry := jsonFeedItem{
			ID:            itemGUID(item),
			URL:           item.Link,
			Title:         item.Title,
			ContentHTML:   cmp.Or(item.Content, item.Description),
			DatePublished: item.PubDate.UTC().Format(time.RFC3339),
		}

		if item.UpdatedAt.After(item.CreatedAt) {
			entry.DateModified = item.UpdatedAt.UTC().Format(time.RFC3339)
		}
		if item.Author != "" {
			entry.Authors = []jsonFeedAuthor{{Name: item.Author}}
		}
		if item.Category != "" {
			entry.Tags = []string{item.Category}
		}

		doc.Items = append(doc.Items, entry)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON feed: %w", err)
	}

	return data, nil
}
