package platform

import (
	"fmt"
	"net/url"
	"strings"
)

// URL markers for the supported address shapes
const (
	ShortLinkMarker = "youtu.be/"
	ShortsMarker    = "shorts/"
	VideoQueryParam = "v"
	ListQueryParam  = "list"
	PlaylistParam   = "list="
)

// URL templates
const (
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// idTerminators end a video id embedded in a path
const idTerminators = "?&#/"

// ExtractVideoID returns the video id from a short-link, shorts or watch URL,
// or an empty string when none of the shapes match.
func ExtractVideoID(rawURL string) string {
	raw := strings.TrimSpace(rawURL)

	if _, after, found := strings.Cut(raw, ShortLinkMarker); found {
		return cutID(after)
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if _, after, found := strings.Cut(parsed.Path, "/"+ShortsMarker); found {
		return cutID(after)
	}
	return parsed.Query().Get(VideoQueryParam)
}

// NormalizeURL converts any supported address shape into the canonical watch
// URL, dropping tracking and timestamp parameters. Unknown shapes are returned
// unmodified.
func NormalizeURL(rawURL string) string {
	id := ExtractVideoID(rawURL)
	if id == "" {
		return rawURL
	}
	return CanonicalVideoURL(id)
}

// CanonicalVideoURL builds the watch URL for a video id
func CanonicalVideoURL(videoID string) string {
	return fmt.Sprintf(YouTubeVideoURLTemplate, url.QueryEscape(videoID))
}

// IsPlaylistURL reports whether the URL names a playlist and no single video
func IsPlaylistURL(rawURL string) bool {
	return strings.Contains(rawURL, PlaylistParam) && ExtractVideoID(rawURL) == ""
}

// ExtractPlaylistID extracts the playlist id from the list= parameter
func ExtractPlaylistID(rawURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("parse playlist URL: %w", err)
	}
	id := parsed.Query().Get(ListQueryParam)
	if id == "" {
		return "", fmt.Errorf("URL does not contain playlist parameter: %s", rawURL)
	}
	return id, nil
}

func cutID(s string) string {
	if i := strings.IndexAny(s, idTerminators); i >= 0 {
		return s[:i]
	}
	return s
}
