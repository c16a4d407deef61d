package source

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	playerResponseVar = "ytInitialPlayerResponse"
	initialDataVar    = "ytInitialData"
)

// subscriberWords are stripped from the subscriber label
var subscriberWords = []string{"subscribers", "subscriber", "iscritti", "iscritto"}

type playerResponse struct {
	VideoDetails videoDetails `json:"videoDetails"`
}

type videoDetails struct {
	Title     string `json:"title"`
	ViewCount string `json:"viewCount"`
}

func (d videoDetails) views() (int64, error) {
	if d.ViewCount == "" {
		return 0, fmt.Errorf("missing viewCount")
	}
	views, err := strconv.ParseInt(d.ViewCount, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid viewCount %q", d.ViewCount)
	}
	if views < 0 {
		return 0, fmt.Errorf("negative viewCount %d", views)
	}
	return views, nil
}

type initialData struct {
	Contents struct {
		TwoColumnWatchNextResults struct {
			Results struct {
				Results struct {
					Contents []watchContent `json:"contents"`
				} `json:"results"`
			} `json:"results"`
		} `json:"twoColumnWatchNextResults"`
	} `json:"contents"`
}

type watchContent struct {
	VideoSecondaryInfoRenderer *struct {
		Owner struct {
			VideoOwnerRenderer struct {
				SubscriberCountText subscriberText `json:"subscriberCountText"`
			} `json:"videoOwnerRenderer"`
		} `json:"owner"`
	} `json:"videoSecondaryInfoRenderer"`
}

type subscriberText struct {
	SimpleText    string `json:"simpleText"`
	Accessibility struct {
		AccessibilityData struct {
			Label string `json:"label"`
		} `json:"accessibilityData"`
	} `json:"accessibility"`
}

// subscribers returns the channel subscriber text, ok=false when the page
// does not expose it in either the simple or the accessibility form
func (d initialData) subscribers() (string, bool) {
	for _, c := range d.Contents.TwoColumnWatchNextResults.Results.Results.Contents {
		if c.VideoSecondaryInfoRenderer == nil {
			continue
		}
		text := c.VideoSecondaryInfoRenderer.Owner.VideoOwnerRenderer.SubscriberCountText
		raw := text.SimpleText
		if raw == "" {
			raw = text.Accessibility.AccessibilityData.Label
		}
		if cleaned := cleanSubscribers(raw); cleaned != "" {
			return cleaned, true
		}
		return "", false
	}
	return "", false
}

func cleanSubscribers(raw string) string {
	out := raw
	for _, word := range subscriberWords {
		out = strings.ReplaceAll(out, word, "")
	}
	return strings.TrimSpace(out)
}

// findPayload decodes every `<name> = {...}` assignment found in the page's
// script tags and returns the first one accepted by accept. Mentions of name
// that are not assignments are skipped, as is trailing script text after the
// object.
func findPayload[T any](doc *goquery.Document, name string, accept func(T) bool) (T, bool) {
	var (
		result T
		found  bool
	)
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		for {
			idx := strings.Index(text, name)
			if idx < 0 {
				return true
			}
			text = text[idx+len(name):]

			obj, ok := assignedObject(text)
			if !ok {
				continue
			}
			var candidate T
			if err := json.NewDecoder(strings.NewReader(obj)).Decode(&candidate); err != nil {
				continue
			}
			if accept(candidate) {
				result, found = candidate, true
				return false
			}
		}
	})
	return result, found
}

// assignedObject returns the text starting at the object literal when rest
// begins with an assignment, allowing a closing bracket index as in
// window["name"] = {...}
func assignedObject(rest string) (string, bool) {
	rest = strings.TrimPrefix(rest, `"]`)
	rest = strings.TrimPrefix(rest, `']`)
	rest = strings.TrimLeft(rest, " \t\r\n")
	if !strings.HasPrefix(rest, "=") || strings.HasPrefix(rest, "==") {
		return "", false
	}
	rest = strings.TrimLeft(rest[1:], " \t\r\n")
	if !strings.HasPrefix(rest, "{") {
		return "", false
	}
	return rest, true
}
