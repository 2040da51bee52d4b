package orchestrator

import (
	"fmt"
	"regexp"
	"strconv"
)

// spanRef is the reference grammar used by <nite:child> hrefs:
//
//	ES2002a.B.words.xml#id(ES2002a.B.words12)..id(ES2002a.B.words20)
//
// The second id clause is optional.
var spanRef = regexp.MustCompile(
	`^([a-zA-Z0-9]+\.[A-Z]\.words\.xml)#id\([a-zA-Z0-9]+\.[A-Z]\.words([0-9]+)\)(?:\.\.id\([a-zA-Z0-9]+\.[A-Z]\.words([0-9]+)\))?$`)

// ParseSpanRef parses a word range reference. A reference without a second id
// clause covers a single word.
func ParseSpanRef(ref string) (SentenceSpan, error) {
	m := spanRef.FindStringSubmatch(ref)
	if m == nil {
		return SentenceSpan{}, fmt.Errorf("%w: %q", ErrMalformedRef, ref)
	}
	start, err := strconv.Atoi(m[2])
	if err != nil {
		return SentenceSpan{}, fmt.Errorf("%w: %q: %v", ErrMalformedRef, ref, err)
	}
	end := start
	if m[3] != "" {
		if end, err = strconv.Atoi(m[3]); err != nil {
			return SentenceSpan{}, fmt.Errorf("%w: %q: %v", ErrMalformedRef, ref, err)
		}
	}
	if end < start {
		return SentenceSpan{}, fmt.Errorf("%w: %q: end word %d precedes start word %d", ErrMalformedRef, ref, end, start)
	}
	return SentenceSpan{Filename: m[1], StartWord: start, EndWord: end}, nil
}
