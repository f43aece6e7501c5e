// Package linkpreview resolves a page title for external links shown in the
// console, such as the Telegram video attached to a grammar topic.
package linkpreview

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const fetchTimeout = 5 * time.Second

var client = &http.Client{Timeout: fetchTimeout}

type Meta struct {
	Title    string
	SiteName string
}

// Fetch scrapes Open Graph metadata from the given URL, falling back to the
// document title. Failures are expected (private channels, dead links) and
// callers should render without the preview.
func Fetch(ctx context.Context, rawURL string) (*Meta, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; linguadmin/1.0)")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: status %d", rawURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	meta := &Meta{
		Title:    metaContent(doc, "og:title"),
		SiteName: metaContent(doc, "og:site_name"),
	}
	if meta.Title == "" {
		meta.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if meta.Title == "" {
		return nil, fmt.Errorf("no title found at %s", rawURL)
	}
	return meta, nil
}

func metaContent(doc *goquery.Document, property string) string {
	content, _ := doc.Find(fmt.Sprintf(`meta[property=%q]`, property)).First().Attr("content")
	return strings.TrimSpace(content)
}
