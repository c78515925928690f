package markov

import (
	"log/slog"
)

// Generate extends seed by up to count characters sampled from the model and
// returns the result.
//
// If seed is shorter than the window length it is returned unchanged. The
// output is shorter than len(seed)+count when the trailing window of the text
// was never seen during training; that is a normal end of generation, not an
// error. Lengths are counted in characters.
func (m *Model) Generate(seed string, count int) string {
	text := []rune(seed)
	if len(text) < m.windowLength {
		return seed
	}

	seedLength := len(text)
	target := seedLength + count
	for len(text) < target {
		window := string(text[len(text)-m.windowLength:])
		list, ok := m.chains[window]
		if !ok || list.Len() == 0 {
			m.logger.Debug("Generation terminated due to unknown window",
				slog.String("window", window),
				slog.Int("generated_length", len(text)-seedLength),
				slog.Int("requested_length", count),
			)
			break
		}
		text = append(text, m.sample(list))
	}

	if len(text) == seedLength {
		return seed
	}
	return seed + string(text[seedLength:])
}

// sample draws one character from list using the model's random source.
func (m *Model) sample(list *FrequencyList) rune {
	return list.Sample(m.rng.Float64())
}
