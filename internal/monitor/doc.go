package monitor

// Package monitor implements the polling worker: it sweeps the configured
// targets through a source.Fetcher with bounded retries, records readings in
// the history store, persists after every sweep and sleeps a jittered
// interval. A failing target never stops the loop.
