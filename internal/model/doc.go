package model

// Package model defines domain data structures shared across the app: tracked
// videos, the history snapshot, fetch readings, and worker status enums.
// Values are treated as immutable once published so the UI can read them
// without locks.
