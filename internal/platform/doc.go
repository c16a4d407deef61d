package platform

// Package platform contains OS/platform integration and external tooling glue:
// YouTube URL normalization, playlist expansion via the ytdlp library, and
// filesystem helpers for crash-safe writes.
