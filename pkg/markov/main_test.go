package markov

import (
	"go/build"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// constSource is a Source that always returns the same draw.
type constSource float64

func (s constSource) Float64() float64 { return float64(s) }

// newTestModel creates a Model and fails the test if construction fails.
func newTestModel(t testing.TB, windowLength int, opts ...Option) *Model {
	t.Helper()
	m, err := New(windowLength, opts...)
	if err != nil {
		t.Fatalf("New(%d) error = %v", windowLength, err)
	}
	return m
}

// newTrainedModel is a convenience helper that also trains the model on corpus.
func newTrainedModel(t testing.TB, windowLength int, corpus string, opts ...Option) *Model {
	t.Helper()
	m := newTestModel(t, windowLength, opts...)
	m.Train(corpus)
	return m
}

var (
	benchmarkCorpus string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus reads Go source files to create a corpus for benchmarking.
func createBenchmarkCorpus() string {
	corpusOnce.Do(func() {
		var sb strings.Builder
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
			filepath.Join(goRoot, "src/encoding/json/encode.go"),
		}

		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				benchmarkCorpus = strings.Repeat("this is a fallback corpus for benchmarking. it is not very long but will prevent a crash. ", 50)
				return
			}
			sb.Write(content)
			sb.WriteString("\n")
		}
		benchmarkCorpus = sb.String()
	})
	return benchmarkCorpus
}
