package orchestrator

// Word is one entry of a channel's word index.
type Word struct {
	Text          string
	Order         int
	StartTime     *float64 // sec
	EndTime       *float64 // sec
	IsPunctuation *bool
}

// WordIndex holds a channel's words such that index i is the word with Order i.
type WordIndex []Word

// SentenceSpan references words StartWord..EndWord (inclusive) of a channel file.
// Text is nil until the span has been resolved.
type SentenceSpan struct {
	Filename  string  `json:"filename" yaml:"filename"`
	StartWord int     `json:"start_word" yaml:"start_word"`
	EndWord   int     `json:"end_word" yaml:"end_word"`
	Text      *string `json:"text,omitempty" yaml:"text,omitempty"`
}

// Topic is a node of a meeting's topic segmentation tree.
type Topic struct {
	ID               string         `json:"topic_idx" yaml:"topic_idx"`
	DisplayName      string         `json:"topic_type" yaml:"topic_type"`
	OtherDescription *string        `json:"other_description" yaml:"other_description"`
	Sentences        []SentenceSpan `json:"sentences" yaml:"sentences"`
	SubTopics        []Topic        `json:"sub_topics" yaml:"sub_topics"`
}
