package markov

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// ErrIndexOutOfRange is returned by FrequencyList.Get when the index does not
// address a record in the list.
var ErrIndexOutOfRange = errors.New("index out of range")

// Record holds the observations for one successor character of a window.
// Probability and Cumulative are only meaningful after the owning list has
// been normalized.
type Record struct {
	Char        rune
	Count       int
	Probability float64
	Cumulative  float64
}

// String renders the record as (char count probability cumulative).
func (r Record) String() string {
	return fmt.Sprintf("(%c %d %g %g)", r.Char, r.Count, r.Probability, r.Cumulative)
}

// FrequencyList is an ordered set of Records keyed by character. Records keep
// the order in which their characters were first observed, and that order is
// used both for accumulating cumulative probabilities and for sampling.
//
// The zero value is an empty list ready to use.
type FrequencyList struct {
	records []Record
}

// Len returns the number of distinct characters in the list.
func (l *FrequencyList) Len() int {
	return len(l.records)
}

// Total returns the sum of all record counts.
func (l *FrequencyList) Total() int {
	total := 0
	for i := range l.records {
		total += l.records[i].Count
	}
	return total
}

// Update increments the count of c, inserting a new record with a count of
// one if c has not been seen before.
func (l *FrequencyList) Update(c rune) {
	if i := l.IndexOf(c); i >= 0 {
		l.records[i].Count++
		return
	}
	l.records = append(l.records, Record{Char: c, Count: 1})
}

// IndexOf returns the position of the record for c, or -1 if there is none.
func (l *FrequencyList) IndexOf(c rune) int {
	for i := range l.records {
		if l.records[i].Char == c {
			return i
		}
	}
	return -1
}

// Get returns a copy of the record at index i. An error wrapping
// ErrIndexOutOfRange is returned if i is negative or not less than Len.
func (l *FrequencyList) Get(i int) (Record, error) {
	if i < 0 || i >= len(l.records) {
		return Record{}, fmt.Errorf("%w: index %d, size %d", ErrIndexOutOfRange, i, len(l.records))
	}
	return l.records[i], nil
}

// Remove deletes the record for c and reports whether one was present.
// The relative order of the remaining records is unchanged.
func (l *FrequencyList) Remove(c rune) bool {
	i := l.IndexOf(c)
	if i < 0 {
		return false
	}
	l.records = append(l.records[:i], l.records[i+1:]...)
	return true
}

// ToSlice returns a snapshot of the records in iteration order.
func (l *FrequencyList) ToSlice() []Record {
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// All returns an iterator over the records in list order. The iterator may be
// ranged over any number of times.
func (l *FrequencyList) All() iter.Seq[Record] {
	return l.AllFrom(0)
}

// AllFrom returns an iterator over the records starting at index start.
// A start outside the list yields nothing.
func (l *FrequencyList) AllFrom(start int) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		if start < 0 {
			return
		}
		for i := start; i < len(l.records); i++ {
			if !yield(l.records[i]) {
				return
			}
		}
	}
}

// Normalize recomputes Probability and Cumulative for every record from the
// current counts. The last record's Cumulative is pinned to exactly 1 so that
// any draw in [0,1) is matched by Sample. An empty list is left untouched.
func (l *FrequencyList) Normalize() {
	total := l.Total()
	if total == 0 {
		return
	}
	cumulative := 0.0
	for i := range l.records {
		p := float64(l.records[i].Count) / float64(total)
		cumulative += p
		l.records[i].Probability = p
		l.records[i].Cumulative = cumulative
	}
	l.records[len(l.records)-1].Cumulative = 1.0
}

// Sample maps a uniform draw r in [0,1) to a character by returning the first
// record, in list order, whose Cumulative is at least r. If no record
// qualifies the last record's character is returned. Sample on an empty list
// returns 0.
func (l *FrequencyList) Sample(r float64) rune {
	if len(l.records) == 0 {
		return 0
	}
	for i := range l.records {
		if l.records[i].Cumulative >= r {
			return l.records[i].Char
		}
	}
	return l.records[len(l.records)-1].Char
}

// String renders the list as a parenthesised, space separated sequence of
// records.
func (l *FrequencyList) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i := range l.records {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(l.records[i].String())
	}
	sb.WriteByte(')')
	return sb.String()
}
