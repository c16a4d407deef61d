package source

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/ytget/yt-monitor/internal/model"
)

// HTTP client constants
const (
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36"
	TitleSuffix      = " - YouTube"
	// consent cookies skip the EU cookie wall
	consentCookie = "CONSENT"
	consentValue  = "YES+cb"
	socsCookie    = "SOCS"
	socsValue     = "CAI"
)

// YouTube fetches readings from youtube.com watch pages
type YouTube struct {
	client *resty.Client
	logger zerolog.Logger
}

// NewYouTube creates a fetcher sending Accept-Language for locale
func NewYouTube(locale string, logger zerolog.Logger) *YouTube {
	client := resty.New().
		SetHeader("User-Agent", DefaultUserAgent).
		SetHeader("Accept-Language", AcceptLanguage(locale)).
		SetCookies([]*http.Cookie{
			{Name: consentCookie, Value: consentValue, Path: "/"},
			{Name: socsCookie, Value: socsValue, Path: "/"},
		})

	return &YouTube{
		client: client,
		logger: logger.With().Str("component", "source").Logger(),
	}
}

// Fetch downloads the page at url and extracts title, views and subscribers.
// Cancellation and deadlines come from ctx.
func (y *YouTube) Fetch(ctx context.Context, url string) (model.Reading, error) {
	res, err := y.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return model.Reading{}, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if res.StatusCode() != http.StatusOK {
		return model.Reading{}, fmt.Errorf("%w: %d for %s", ErrStatus, res.StatusCode(), url)
	}

	reading, err := ParsePage(res.Body())
	if err != nil {
		return model.Reading{}, fmt.Errorf("%s: %w", url, err)
	}

	y.logger.Debug().
		Str("url", url).
		Str("title", reading.Title).
		Int64("views", reading.Views).
		Bool("subscribers", reading.HasSubscribers()).
		Msg("Page parsed")
	return reading, nil
}

// ParsePage extracts a reading from a watch page body
func ParsePage(body []byte) (model.Reading, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return model.Reading{}, fmt.Errorf("%w: %v", ErrParse, err)
	}

	player, ok := findPayload(doc, playerResponseVar, func(p playerResponse) bool {
		return p.VideoDetails.ViewCount != ""
	})
	if !ok {
		return model.Reading{}, fmt.Errorf("%w: %s not found", ErrParse, playerResponseVar)
	}

	views, err := player.VideoDetails.views()
	if err != nil {
		return model.Reading{}, fmt.Errorf("%w: %v", ErrParse, err)
	}

	title := strings.TrimSpace(player.VideoDetails.Title)
	if title == "" {
		title = strings.TrimSpace(strings.TrimSuffix(doc.Find("title").First().Text(), TitleSuffix))
	}
	if title == "" {
		return model.Reading{}, fmt.Errorf("%w: missing title", ErrParse)
	}

	reading := model.Reading{Title: title, Views: views}

	data, ok := findPayload(doc, initialDataVar, func(d initialData) bool {
		_, ok := d.subscribers()
		return ok
	})
	if ok {
		reading.Subscribers, _ = data.subscribers()
	}
	return reading, nil
}

// AcceptLanguage builds the header value for a locale, English as fallback
func AcceptLanguage(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil || tag == language.Und {
		return "en-US,en;q=0.9"
	}
	base, _ := tag.Base()
	if base.String() == "en" {
		return "en-US,en;q=0.9"
	}
	if tag.String() == base.String() {
		return fmt.Sprintf("%s,en;q=0.8", base.String())
	}
	return fmt.Sprintf("%s,%s;q=0.9,en;q=0.8", tag.String(), base.String())
}
