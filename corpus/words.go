package corpus

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// LexicalElement is the element name of a transcribed token.
const LexicalElement = "w"

// WordElement is one child of a channel file's root element. It is either a
// lexical token (<w>) carrying literal text, or a non-lexical event such as
// <disfmarker/> or <vocalsound/> identified only by its element name.
type WordElement struct {
	ID        string
	Name      string
	Text      string
	StartTime *float64
	EndTime   *float64
	Punc      *bool
}

// Lexical reports whether the element is a transcribed token.
func (e WordElement) Lexical() bool { return e.Name == LexicalElement }

type rawWord struct {
	ID        string  `xml:"id,attr"`
	StartTime *string `xml:"starttime,attr"`
	EndTime   *string `xml:"endtime,attr"`
	Punc      *string `xml:"punc,attr"`
	Text      string  `xml:",chardata"`
}

func (r rawWord) element(name string) (WordElement, error) {
	el := WordElement{ID: r.ID, Name: name}
	if name == LexicalElement {
		el.Text = r.Text
	}
	var err error
	if el.StartTime, err = parseTime(r.StartTime); err != nil {
		return el, fmt.Errorf("%s: starttime: %w", r.ID, err)
	}
	if el.EndTime, err = parseTime(r.EndTime); err != nil {
		return el, fmt.Errorf("%s: endtime: %w", r.ID, err)
	}
	if r.Punc != nil {
		p := *r.Punc == "true"
		el.Punc = &p
	}
	return el, nil
}

func parseTime(s *string) (*float64, error) {
	if s == nil {
		return nil, nil
	}
	f, err := strconv.ParseFloat(*s, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// ReadChannel decodes the direct children of a words file's root element in
// document order.
func ReadChannel(r io.Reader) ([]WordElement, error) {
	d := newDecoder(r)
	var out []WordElement
	inRoot := false
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("words decode: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if !inRoot {
				inRoot = true
				continue
			}
			var raw rawWord
			if err := d.DecodeElement(&raw, &t); err != nil {
				return nil, fmt.Errorf("words decode: %w", err)
			}
			el, err := raw.element(t.Name.Local)
			if err != nil {
				return nil, fmt.Errorf("words decode: %w", err)
			}
			out = append(out, el)
		case xml.EndElement:
			inRoot = false
		}
	}
	return out, nil
}

// ReadChannelFile opens path and decodes it with ReadChannel.
func ReadChannelFile(path string) ([]WordElement, error) {
	return readFile(path, ReadChannel)
}
