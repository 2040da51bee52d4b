package orchestrator

import (
	"fmt"
	"regexp"

	"github.com/maastricht-university/ami-topics/corpus"
)

// typeRef extracts the ontology id from a pointer href such as
// "default-topics.xml#id(top.11)".
var typeRef = regexp.MustCompile(`#id\(([^()]+)\)`)

// ParseStats counts how topic types were resolved.
type ParseStats struct {
	Topics        int
	Spans         int
	Typed         int
	NameMatched   int
	FallbackOther int
}

// ParseTopics builds the unresolved topic forest of one segmentation file.
// Sentence spans carry no text yet; see ResolveText.
func ParseTopics(elems []corpus.TopicElement, tax Taxonomy, otherID string) ([]Topic, ParseStats, error) {
	p := topicParser{tax: tax, otherID: otherID}
	forest, err := p.parseAll(elems)
	return forest, p.stats, err
}

type topicParser struct {
	tax     Taxonomy
	otherID string
	stats   ParseStats
}

func (p *topicParser) parseAll(elems []corpus.TopicElement) ([]Topic, error) {
	out := make([]Topic, 0, len(elems))
	for _, el := range elems {
		t, err := p.parse(el)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (p *topicParser) parse(el corpus.TopicElement) (Topic, error) {
	t, err := p.topicType(el)
	if err != nil {
		return Topic{}, fmt.Errorf("topic %s: %w", el.ID, err)
	}
	p.stats.Topics++

	t.Sentences = make([]SentenceSpan, 0, len(el.Children))
	for _, c := range el.Children {
		span, err := ParseSpanRef(c.Href)
		if err != nil {
			return Topic{}, &spanError{ref: c.Href, err: fmt.Errorf("topic %s: %w", el.ID, err)}
		}
		t.Sentences = append(t.Sentences, span)
	}
	p.stats.Spans += len(t.Sentences)

	if t.SubTopics, err = p.parseAll(el.Topics); err != nil {
		return Topic{}, err
	}
	return t, nil
}

// topicType fills ID, DisplayName and OtherDescription. A typed pointer always
// wins; the description is only matched against the taxonomy when there is none.
func (p *topicParser) topicType(el corpus.TopicElement) (Topic, error) {
	if ptr, ok := el.TypePointer(); ok {
		m := typeRef.FindStringSubmatch(ptr.Href)
		if m == nil {
			return Topic{}, fmt.Errorf("%w: pointer %q", ErrMalformedRef, ptr.Href)
		}
		name, ok := p.tax.Name(m[1])
		if !ok {
			return Topic{}, fmt.Errorf("%w: %s", ErrUnknownTopicType, m[1])
		}
		p.stats.Typed++
		return Topic{ID: m[1], DisplayName: name, OtherDescription: el.OtherDescription}, nil
	}

	if el.Description != nil {
		if id, ok := p.tax.FindByName(*el.Description); ok {
			p.stats.NameMatched++
			name, _ := p.tax.Name(id)
			return Topic{ID: id, DisplayName: name}, nil
		}
	}

	name, ok := p.tax.Name(p.otherID)
	if !ok {
		return Topic{}, fmt.Errorf("%w: fallback %s", ErrUnknownTopicType, p.otherID)
	}
	p.stats.FallbackOther++
	return Topic{ID: p.otherID, DisplayName: name, OtherDescription: el.Description}, nil
}
