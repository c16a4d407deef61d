package history

// Package history owns the rolling per-video series. Readers get an immutable
// *model.Snapshot through an atomic pointer; every mutation builds a new
// snapshot under a writer mutex and publishes it in one step.
