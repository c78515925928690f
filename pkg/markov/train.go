package markov

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Train counts, for every window of the corpus, the character that follows
// it, then renormalizes every successor list of the model.
//
// Repeated calls accumulate: counts from earlier corpora are kept and the new
// observations are added to them. Use Reset to start over. A corpus no longer
// than the window length contributes nothing.
func (m *Model) Train(corpus string) {
	m.TrainDocuments(corpus)
}

// TrainDocuments trains on each document separately, so no window spans the
// boundary between two of them, and renormalizes the model once at the end.
func (m *Model) TrainDocuments(docs ...string) {
	var runes, transitions int
	for _, doc := range docs {
		text := []rune(doc)
		runes += len(text)
		transitions += m.scan(text)
	}

	for _, list := range m.chains {
		list.Normalize()
	}

	m.logger.Info("Training completed",
		slog.Int("window_length", m.windowLength),
		slog.Int("documents", len(docs)),
		slog.Int("corpus_length", runes),
		slog.Int("transitions_processed", transitions),
		slog.Int("windows", len(m.chains)),
	)
}

// scan records the transitions of text without normalizing.
func (m *Model) scan(text []rune) int {
	var transitions int
	for i := 0; i+m.windowLength < len(text); i++ {
		window := string(text[i : i+m.windowLength])
		list, ok := m.chains[window]
		if !ok {
			list = &FrequencyList{}
			m.chains[window] = list
		}
		list.Update(text[i+m.windowLength])
		transitions++
	}
	return transitions
}

// TrainReader reads the whole of r and trains on it. If reading fails, or ctx
// is done by the time the corpus has been read, the model is left unchanged
// and the error is returned.
func (m *Model) TrainReader(ctx context.Context, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("could not read corpus: %w", err)
	}
	if err = ctx.Err(); err != nil {
		return err
	}
	m.Train(string(data))
	return nil
}
