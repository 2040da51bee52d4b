package orchestrator

import (
	"errors"
	"fmt"
	"strings"
)

// Corpus integrity errors. All of them abort the meeting being processed.
var (
	// ErrWordOrder indicates a duplicate or decreasing word id in a channel file.
	ErrWordOrder = errors.New("word order violation")

	// ErrMalformedRef indicates a span reference that does not match the
	// <file>#id(<id>)[..id(<id>)] grammar.
	ErrMalformedRef = errors.New("malformed span reference")

	// ErrSpanOutOfRange indicates a span reaching past the end of its channel.
	ErrSpanOutOfRange = errors.New("span out of range")

	// ErrUnknownChannel indicates a span naming a channel file that was not loaded.
	ErrUnknownChannel = errors.New("unknown channel")

	// ErrUnknownTopicType indicates a topic type id missing from the taxonomy.
	ErrUnknownTopicType = errors.New("unknown topic type")
)

// Stage names used in MeetingError.
const (
	StageWords   = "words"
	StageTopics  = "topics"
	StageResolve = "resolve"
)

// MeetingError is a failure while processing one meeting. It carries enough
// context to locate the defect in the corpus.
type MeetingError struct {
	MeetingID string
	Stage     string
	Channel   string
	Ref       string
	Err       error
}

func (e *MeetingError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "meeting %s", e.MeetingID)
	if e.Stage != "" {
		fmt.Fprintf(&b, ": %s", e.Stage)
	}
	if e.Channel != "" {
		fmt.Fprintf(&b, ": channel %s", e.Channel)
	}
	if e.Ref != "" {
		fmt.Fprintf(&b, ": ref %q", e.Ref)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *MeetingError) Unwrap() error { return e.Err }

// spanError decorates a resolution error with the span it came from.
type spanError struct {
	span SentenceSpan
	ref  string
	err  error
}

func (e *spanError) Error() string { return e.err.Error() }
func (e *spanError) Unwrap() error { return e.err }
