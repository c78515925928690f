package corpus

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/CTAG07/charkov/pkg/markov"
)

// TrainModel trains m on every document of the named corpus. Counts
// accumulate across documents but no window spans two of them. All documents are loaded before training starts; if loading fails the
// model is left unchanged.
func (s *Store) TrainModel(ctx context.Context, m *markov.Model, name string) error {
	docs, err := s.Documents(ctx, name)
	if err != nil {
		return fmt.Errorf("could not load corpus for training: %w", err)
	}

	texts := make([]string, len(docs))
	var bytes int
	for i, doc := range docs {
		texts[i] = doc.Content
		bytes += len(doc.Content)
	}
	m.TrainDocuments(texts...)

	s.logger.InfoContext(ctx, "Model trained from corpus",
		slog.String("corpus_name", name),
		slog.Int("documents_processed", len(docs)),
		slog.Int("bytes_processed", bytes),
		slog.Int("windows", m.Len()),
	)
	return nil
}
