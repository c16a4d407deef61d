package source

// Package source fetches live video statistics. The YouTube implementation
// downloads the watch page and reads the JSON payloads the page embeds for
// its own player, so it does not depend on the rendered layout.
