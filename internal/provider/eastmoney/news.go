package eastmoney

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/lp452254117/alpha-predator/internal/contracts"
)

// FetchNews scrapes the finance news list page for recent headlines.
// Rows missing a parsable timestamp keep a zero time rather than being
// dropped, so the headline still reaches the report.
func (c *Client) FetchNews(ctx context.Context, limit int) ([]contracts.NewsItem, error) {
	resp, err := c.httpClient.Get(ctx, c.newsBaseURL)
	if err != nil {
		return nil, fmt.Errorf("eastmoney news request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("eastmoney news: unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("eastmoney news: parse HTML failed: %w", err)
	}

	var items []contracts.NewsItem
	doc.Find("ul#newsListContent li").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		title := strings.TrimSpace(s.Find("p.title a").Text())
		if title == "" {
			return true
		}

		item := contracts.NewsItem{Title: title}
		if ts := strings.TrimSpace(s.Find("p.time").Text()); ts != "" {
			if parsed, err := parseNewsTime(ts); err == nil {
				item.Time = parsed
			}
		}

		items = append(items, item)
		return limit <= 0 || len(items) < limit
	})

	c.logger.WithField("count", len(items)).Debug("Fetched news headlines")
	return items, nil
}

// parseNewsTime handles the portal's "01月02日 09:15" style timestamps,
// anchoring them to the current year
func parseNewsTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	parsed, err := time.Parse("01月02日 15:04", s)
	if err != nil {
		return time.Time{}, err
	}
	now := time.Now()
	return time.Date(now.Year(), parsed.Month(), parsed.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, time.Local), nil
}
