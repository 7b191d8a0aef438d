package analysis

import (
	"sort"
	"strings"

	"github.com/SeamusWaldron/cubegrid/internal/storage"
)

// NGram represents a repeated move sequence.
type NGram struct {
	N           int               `json:"n"`
	Sequence    []string          `json:"sequence"`
	Tokens      []uint8           `json:"-"`
	Count       int               `json:"count"`
	Occurrences []NGramOccurrence `json:"occurrences,omitempty"`
}

// NGramOccurrence represents where an n-gram was found.
type NGramOccurrence struct {
	InstanceID string `json:"instance_id,omitempty"`
	StartIndex int    `json:"start_index"`
	TsMs       int64  `json:"ts_ms"`
}

// NGramReport contains the results of n-gram mining.
type NGramReport struct {
	TopNGrams map[int][]NGram `json:"top_ngrams"` // Keyed by n
}

const maxOccurrences = 10

// RollingHash implements Rabin-Karp rolling hash for efficient n-gram detection.
type RollingHash struct {
	base   uint64
	hash   uint64
	pow    uint64 // base^(n-1) for removal
	window []uint8
	n      int
}

// NewRollingHash creates a new rolling hash for window size n.
func NewRollingHash(n int) *RollingHash {
	rh := &RollingHash{
		base:   37, // Prime above the token range
		n:      n,
		window: make([]uint8, 0, n),
	}

	rh.pow = 1
	for i := 0; i < n-1; i++ {
		rh.pow *= rh.base
	}

	return rh
}

// Roll adds a token, dropping the oldest once the window is full.
func (rh *RollingHash) Roll(token uint8) {
	if len(rh.window) < rh.n {
		rh.window = append(rh.window, token)
		rh.hash = rh.hash*rh.base + uint64(token)
		return
	}

	old := rh.window[0]
	rh.hash = (rh.hash-uint64(old)*rh.pow)*rh.base + uint64(token)

	copy(rh.window, rh.window[1:])
	rh.window[rh.n-1] = token
}

// Hash returns the current hash value.
func (rh *RollingHash) Hash() uint64 {
	return rh.hash
}

// Window returns a copy of the current window.
func (rh *RollingHash) Window() []uint8 {
	result := make([]uint8, len(rh.window))
	copy(result, rh.window)
	return result
}

// Ready returns true if the window is full.
func (rh *RollingHash) Ready() bool {
	return len(rh.window) == rh.n
}

type ngramEntry struct {
	tokens      []uint8
	count       int
	occurrences []NGramOccurrence
}

// MineNGrams finds the top-K most frequent n-grams for each n in
// [minN, maxN]. Each instance's move stream is mined separately, so
// sequences never span two cubes, and the counts are then merged.
func MineNGrams(records []storage.MoveRecord, minN, maxN, topK int) *NGramReport {
	report := &NGramReport{TopNGrams: make(map[int][]NGram)}

	streams := ByInstance(records)
	for n := minN; n <= maxN; n++ {
		merged := make(map[string]*ngramEntry)
		for _, id := range sortedKeys(streams) {
			for _, entry := range countNGrams(streams[id], n) {
				key := ngramKey(entry.tokens)
				existing, ok := merged[key]
				if !ok {
					merged[key] = entry
					continue
				}
				existing.count += entry.count
				for _, occ := range entry.occurrences {
					if len(existing.occurrences) < maxOccurrences {
						existing.occurrences = append(existing.occurrences, occ)
					}
				}
			}
		}
		if ngrams := topNGrams(merged, n, topK); len(ngrams) > 0 {
			report.TopNGrams[n] = ngrams
		}
	}

	return report
}

// countNGrams counts the n-grams of one instance's moves by rolling hash.
func countNGrams(moves []storage.MoveRecord, n int) map[uint64]*ngramEntry {
	counts := make(map[uint64]*ngramEntry)
	if n <= 0 || len(moves) < n {
		return counts
	}

	rh := NewRollingHash(n)
	for i, m := range moves {
		rh.Roll(moveToken(m.Move()))
		if !rh.Ready() {
			continue
		}

		start := i - n + 1
		occ := NGramOccurrence{InstanceID: m.InstanceID, StartIndex: start, TsMs: moves[start].TsMs}

		entry, exists := counts[rh.Hash()]
		if !exists {
			counts[rh.Hash()] = &ngramEntry{
				tokens:      rh.Window(),
				count:       1,
				occurrences: []NGramOccurrence{occ},
			}
			continue
		}
		// Verify it's actually the same sequence (handle hash collisions)
		if ngramKey(entry.tokens) != ngramKey(rh.Window()) {
			continue
		}
		entry.count++
		if len(entry.occurrences) < maxOccurrences {
			entry.occurrences = append(entry.occurrences, occ)
		}
	}
	return counts
}

func topNGrams(counts map[string]*ngramEntry, n, topK int) []NGram {
	keys := make([]string, 0, len(counts))
	for key, entry := range counts {
		// Only include n-grams that appear more than once
		if entry.count >= 2 {
			keys = append(keys, key)
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		ci, cj := counts[keys[i]].count, counts[keys[j]].count
		if ci != cj {
			return ci > cj
		}
		return keys[i] < keys[j]
	})

	if len(keys) > topK {
		keys = keys[:topK]
	}

	result := make([]NGram, len(keys))
	for i, key := range keys {
		entry := counts[key]
		sequence := make([]string, len(entry.tokens))
		for j, token := range entry.tokens {
			sequence[j] = moveFromToken(token).Notation()
		}
		result[i] = NGram{
			N:           n,
			Sequence:    sequence,
			Tokens:      entry.tokens,
			Count:       entry.count,
			Occurrences: entry.occurrences,
		}
	}

	return result
}

// String renders the sequence in notation.
func (g NGram) String() string {
	return strings.Join(g.Sequence, " ")
}

// ngramKey creates a string key for an n-gram token sequence.
func ngramKey(tokens []uint8) string {
	result := make([]byte, len(tokens))
	for i, t := range tokens {
		result[i] = t + '0' // Make printable
	}
	return string(result)
}
