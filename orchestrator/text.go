package orchestrator

import (
	"fmt"
	"strings"
)

// ResolveText returns a copy of forest in which every sentence span carries
// the space-joined text of its words. Placeholder words contribute an empty
// token, so a gap shows up as a double space. forest itself is not modified.
func ResolveText(forest []Topic, indices map[string]WordIndex) ([]Topic, error) {
	out := make([]Topic, len(forest))
	for i, t := range forest {
		r, err := resolveTopic(t, indices)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

func resolveTopic(t Topic, indices map[string]WordIndex) (Topic, error) {
	r := Topic{
		ID:               t.ID,
		DisplayName:      t.DisplayName,
		OtherDescription: t.OtherDescription,
		Sentences:        make([]SentenceSpan, len(t.Sentences)),
	}
	for i, s := range t.Sentences {
		text, err := spanText(s, indices)
		if err != nil {
			return Topic{}, &spanError{span: s, err: fmt.Errorf("topic %s: %w", t.ID, err)}
		}
		s.Text = &text
		r.Sentences[i] = s
	}
	subs, err := ResolveText(t.SubTopics, indices)
	if err != nil {
		return Topic{}, err
	}
	r.SubTopics = subs
	return r, nil
}

func spanText(s SentenceSpan, indices map[string]WordIndex) (string, error) {
	idx, ok := indices[s.Filename]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownChannel, s.Filename)
	}
	if s.StartWord < 0 || s.EndWord >= len(idx) || s.StartWord > s.EndWord {
		return "", fmt.Errorf("%w: words %d..%d of %s (index has %d words)",
			ErrSpanOutOfRange, s.StartWord, s.EndWord, s.Filename, len(idx))
	}
	parts := make([]string, 0, s.EndWord-s.StartWord+1)
	for i := s.StartWord; i <= s.EndWord; i++ {
		parts = append(parts, idx[i].Text)
	}
	return strings.Join(parts, " "), nil
}
