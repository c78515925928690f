package markov

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"sort"
	"strings"
)

// ErrInvalidWindowLength is returned by New when the window length is not positive.
var ErrInvalidWindowLength = errors.New("window length must be positive")

// Source is the random source a Model samples from. Float64 must return
// values in [0,1). *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
}

// Model is a character-level Markov language model of a fixed order, the
// window length. It maps every window seen during training to the list of
// characters that followed it.
//
// A Model is not safe for concurrent use.
type Model struct {
	windowLength int
	chains       map[string]*FrequencyList
	rng          Source
	logger       *slog.Logger
}

// Option configures a Model at construction time.
type Option func(*Model)

// WithSeed makes sampling deterministic: two models built with the same seed
// and trained on the same corpus generate the same text.
func WithSeed(seed uint64) Option {
	return func(m *Model) {
		m.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithRandom sets the random source used for sampling. A nil source is ignored.
func WithRandom(src Source) Option {
	return func(m *Model) {
		if src != nil {
			m.rng = src
		}
	}
}

// New creates an empty Model with the given window length. Without WithSeed
// or WithRandom the model draws from a freshly seeded source.
func New(windowLength int, opts ...Option) (*Model, error) {
	if windowLength <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWindowLength, windowLength)
	}
	m := &Model{
		windowLength: windowLength,
		chains:       make(map[string]*FrequencyList),
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return m, nil
}

// SetLogger sets the logger for the Model. By default, all logs are discarded.
func (m *Model) SetLogger(logger *slog.Logger) {
	if logger != nil {
		m.logger = logger
	}
}

// WindowLength returns the number of characters in every window of the model.
func (m *Model) WindowLength() int {
	return m.windowLength
}

// Len returns the number of distinct windows the model knows.
func (m *Model) Len() int {
	return len(m.chains)
}

// Reset forgets everything learned so far. The window length and random
// source are kept.
func (m *Model) Reset() {
	clear(m.chains)
}

// Successors returns a snapshot of the successor records for window and
// whether the window is known.
func (m *Model) Successors(window string) ([]Record, bool) {
	list, ok := m.chains[window]
	if !ok {
		return nil, false
	}
	return list.ToSlice(), true
}

// Windows returns every known window in sorted order.
func (m *Model) Windows() []string {
	windows := make([]string, 0, len(m.chains))
	for w := range m.chains {
		windows = append(windows, w)
	}
	sort.Strings(windows)
	return windows
}

// String renders one "window : (records...)" line per window, sorted by window.
func (m *Model) String() string {
	var sb strings.Builder
	for _, w := range m.Windows() {
		sb.WriteString(w)
		sb.WriteString(" : ")
		sb.WriteString(m.chains[w].String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
