package markov

// Stats holds aggregated statistics for a trained Model.
type Stats struct {
	WindowLength int // The number of characters in each window
	Windows      int // The number of distinct windows
	Links        int // The number of unique window->character links
	Transitions  int // The sum of all counts; the number of trained transitions
	Vocabulary   int // The number of distinct characters seen in windows or as successors
}

// Stats returns a snapshot of statistics for the model.
func (m *Model) Stats() Stats {
	vocab := make(map[rune]struct{})
	stats := Stats{
		WindowLength: m.windowLength,
		Windows:      len(m.chains),
	}
	for window, list := range m.chains {
		for _, c := range window {
			vocab[c] = struct{}{}
		}
		for i := range list.records {
			vocab[list.records[i].Char] = struct{}{}
			stats.Transitions += list.records[i].Count
		}
		stats.Links += list.Len()
	}
	stats.Vocabulary = len(vocab)
	return stats
}
