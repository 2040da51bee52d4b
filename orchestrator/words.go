package orchestrator

import (
	"fmt"
	"regexp"

	"github.com/maastricht-university/ami-topics/corpus"
)

// channelPrefix matches the "<meeting>.<speaker>.words" part of a word id.
var channelPrefix = regexp.MustCompile(`[a-zA-Z0-9]+\.[A-Z]\.words`)

// BuildStats describes what BuildWordIndex did besides copying words.
type BuildStats struct {
	Words        int
	Placeholders int
	Skipped      int
}

// wordOrder extracts the integer order from a word id. ok is false for ids
// that follow another numbering scheme (e.g. "IS1000a.A.wordsx3").
func wordOrder(id string) (int, bool) {
	rest := channelPrefix.ReplaceAllString(id, "")
	if rest == "" || len(rest) > 9 {
		return 0, false
	}
	n := 0
	for _, c := range rest {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// BuildWordIndex turns one channel's elements into a dense index covering
// orders 0..max. Gaps are filled with empty placeholder words. A duplicate or
// decreasing id is reported as ErrWordOrder.
func BuildWordIndex(elems []corpus.WordElement) (WordIndex, BuildStats, error) {
	var st BuildStats
	idx := make(WordIndex, 0, len(elems))
	for _, el := range elems {
		n, ok := wordOrder(el.ID)
		if !ok {
			st.Skipped++
			continue
		}
		for len(idx) < n {
			idx = append(idx, Word{Order: len(idx)})
			st.Placeholders++
		}
		if len(idx) != n {
			return nil, st, fmt.Errorf("%w: id %s has order %d but %d words are already indexed",
				ErrWordOrder, el.ID, n, len(idx))
		}
		idx = append(idx, newWord(el, n))
	}
	st.Words = len(idx)
	return idx, st, nil
}

func newWord(el corpus.WordElement, order int) Word {
	w := Word{
		Order:         order,
		StartTime:     el.StartTime,
		EndTime:       el.EndTime,
		IsPunctuation: el.Punc,
	}
	if w.EndTime == nil {
		w.EndTime = w.StartTime
	}
	if el.Lexical() {
		w.Text = el.Text
	} else {
		w.Text = "[" + el.Name + "]"
	}
	return w
}
