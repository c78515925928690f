package markov

import (
	"log/slog"
)

// Prune removes every successor record whose count is less than or equal to
// minCount. Windows left without successors are forgotten, and the surviving
// lists are renormalized. It returns the number of records removed.
//
// This is useful for stripping rare, and often noisy, transitions out of a
// model trained on a large corpus.
func (m *Model) Prune(minCount int) int {
	var removed, windowsRemoved int
	var rare []rune
	for window, list := range m.chains {
		rare = rare[:0]
		for rec := range list.All() {
			if rec.Count <= minCount {
				rare = append(rare, rec.Char)
			}
		}
		for _, c := range rare {
			if list.Remove(c) {
				removed++
			}
		}
		if list.Len() == 0 {
			delete(m.chains, window)
			windowsRemoved++
			continue
		}
		if len(rare) > 0 {
			list.Normalize()
		}
	}

	m.logger.Info("Model pruned",
		slog.Int("window_length", m.windowLength),
		slog.Int("min_count", minCount),
		slog.Int("links_removed", removed),
		slog.Int("windows_removed", windowsRemoved),
	)
	return removed
}
