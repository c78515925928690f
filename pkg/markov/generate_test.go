package markov

import (
	"fmt"
	"testing"
)

func TestGenerate(t *testing.T) {
	testCases := []struct {
		name         string
		corpus       string
		windowLength int
		seed         string
		count        int
		expected     string
	}{
		{
			name:         "Successful generation from seed",
			corpus:       "abcabcabc",
			windowLength: 3,
			seed:         "abc",
			count:        3,
			expected:     "abcabc",
		},
		{
			name:         "Cycles through known windows",
			corpus:       "abcabcabc",
			windowLength: 3,
			seed:         "abc",
			count:        10,
			expected:     "abcabcabcabca",
		},
		{
			name:         "Seed longer than window",
			corpus:       "abcabcabc",
			windowLength: 3,
			seed:         "zzabc",
			count:        2,
			expected:     "zzabcab",
		},
		{
			name:         "Early end at unknown window",
			corpus:       "abcd",
			windowLength: 2,
			seed:         "ab",
			count:        5,
			expected:     "abcd",
		},
		{
			name:         "Unknown seed window",
			corpus:       "abcabcabc",
			windowLength: 3,
			seed:         "xyz",
			count:        5,
			expected:     "xyz",
		},
		{
			name:         "Seed shorter than window",
			corpus:       "abcabcabc",
			windowLength: 3,
			seed:         "ab",
			count:        10,
			expected:     "ab",
		},
		{
			name:         "Empty seed",
			corpus:       "abcabcabc",
			windowLength: 3,
			seed:         "",
			count:        10,
			expected:     "",
		},
		{
			name:         "Zero count",
			corpus:       "abcabcabc",
			windowLength: 3,
			seed:         "abc",
			count:        0,
			expected:     "abc",
		},
		{
			name:         "Negative count",
			corpus:       "abcabcabc",
			windowLength: 3,
			seed:         "abc",
			count:        -4,
			expected:     "abc",
		},
		{
			name:         "Counts characters, not bytes",
			corpus:       "ñañaña",
			windowLength: 1,
			seed:         "ñ",
			count:        3,
			expected:     "ñaña",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := newTrainedModel(t, tc.windowLength, tc.corpus, WithRandom(constSource(0)))
			if got := m.Generate(tc.seed, tc.count); got != tc.expected {
				t.Errorf("Generate(%q, %d) = %q, want %q", tc.seed, tc.count, got, tc.expected)
			}
		})
	}
}

func TestGenerateTieBreak(t *testing.T) {
	// 'a' is followed once by 'b' and once by 'c', giving cumulative bounds 0.5 and 1.
	corpus := "abac"

	testCases := []struct {
		draw     float64
		expected string
	}{
		{draw: 0, expected: "ab"},
		{draw: 0.5, expected: "ab"},
		{draw: 0.5000001, expected: "ac"},
		{draw: 0.99, expected: "ac"},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("Draw%v", tc.draw), func(t *testing.T) {
			m := newTrainedModel(t, 1, corpus, WithRandom(constSource(tc.draw)))
			if got := m.Generate("a", 1); got != tc.expected {
				t.Errorf("Generate() = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	corpus := createBenchmarkCorpus()

	m1 := newTrainedModel(t, 3, corpus, WithSeed(20))
	m2 := newTrainedModel(t, 3, corpus, WithSeed(20))

	seed := corpus[:3]
	out1 := m1.Generate(seed, 500)
	out2 := m2.Generate(seed, 500)
	if out1 != out2 {
		t.Errorf("models with the same seed diverged:\n%q\n%q", out1, out2)
	}
}

func TestGenerateFollowsTrainedTransitions(t *testing.T) {
	corpus := "one fish two fish. red fish blue fish. this one has a little star."
	m := newTrainedModel(t, 2, corpus, WithSeed(7))

	out := []rune(m.Generate("fi", 200))
	for i := 2; i < len(out); i++ {
		window := string(out[i-2 : i])
		records, ok := m.Successors(window)
		if !ok {
			t.Fatalf("generated text used unknown window %q", window)
		}
		found := false
		for _, rec := range records {
			if rec.Char == out[i] {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("%q never followed %q in the corpus", out[i], window)
		}
	}
}

func BenchmarkGenerate(b *testing.B) {
	corpus := createBenchmarkCorpus()

	for _, windowLength := range []int{2, 4, 8} {
		b.Run(fmt.Sprintf("Window%d", windowLength), func(b *testing.B) {
			m := newTrainedModel(b, windowLength, corpus, WithSeed(1))
			seed := corpus[:windowLength]
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				s := m.Generate(seed, 200)
				b.SetBytes(int64(len(s)))
			}
		})
	}
}
