package corpus

import (
	"fmt"
	"io"
)

// TopicTypeRole is the pointer role linking a topic to its ontology entry.
const TopicTypeRole = "scenario_topic_type"

// Pointer is a <nite:pointer> into another file, e.g.
// href="default-topics.xml#id(top.11)".
type Pointer struct {
	Role string `xml:"role,attr"`
	Href string `xml:"href,attr"`
}

// Child is a <nite:child> referencing a word range in a channel file.
type Child struct {
	Href string `xml:"href,attr"`
}

// TopicElement is one <topic> element of a segmentation file with its direct
// children. Description and OtherDescription are nil when the attribute is absent.
type TopicElement struct {
	ID               string         `xml:"id,attr"`
	Description      *string        `xml:"description,attr"`
	OtherDescription *string        `xml:"other_description,attr"`
	Pointers         []Pointer      `xml:"pointer"`
	Children         []Child        `xml:"child"`
	Topics           []TopicElement `xml:"topic"`
}

// TypePointer returns the pointer carrying the topic type, preferring the
// scenario_topic_type role. ok is false when the element has no pointer at all.
func (t TopicElement) TypePointer() (Pointer, bool) {
	for _, ptr := range t.Pointers {
		if ptr.Role == TopicTypeRole {
			return ptr, true
		}
	}
	if len(t.Pointers) > 0 {
		return t.Pointers[0], true
	}
	return Pointer{}, false
}

type topicFile struct {
	Topics []TopicElement `xml:"topic"`
}

// ReadTopics decodes the top-level topics of a segmentation file.
func ReadTopics(r io.Reader) ([]TopicElement, error) {
	var f topicFile
	if err := newDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("topics decode: %w", err)
	}
	return f.Topics, nil
}

// ReadTopicsFile opens path and decodes it with ReadTopics.
func ReadTopicsFile(path string) ([]TopicElement, error) {
	return readFile(path, ReadTopics)
}
