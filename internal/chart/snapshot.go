package chart

import "github.com/ytget/yt-monitor/internal/model"

// FromSnapshot returns titles and histories for targets in display order
func FromSnapshot(snap *model.Snapshot, targets []string) (names []string, histories [][]int64) {
	names = make([]string, len(targets))
	for i, key := range targets {
		names[i] = snap.VideoOrPlaceholder(key).DisplayTitle()
	}
	return names, snap.Histories(targets)
}
