package orchestrator

import "github.com/maastricht-university/ami-topics/corpus"

// DefaultOtherTopicID is the ontology id of the catch-all "other" topic type.
const DefaultOtherTopicID = "top.4"

// Taxonomy maps topic type ids to display names. The zero value is empty and
// a Taxonomy is never modified after construction.
type Taxonomy struct {
	names map[string]string
	order []string
}

// NewTaxonomy builds a Taxonomy from flattened entries. A later duplicate id
// replaces the display name but keeps the first position.
func NewTaxonomy(entries []corpus.TaxonomyEntry) Taxonomy {
	t := Taxonomy{names: make(map[string]string, len(entries))}
	for _, e := range entries {
		if _, seen := t.names[e.ID]; !seen {
			t.order = append(t.order, e.ID)
		}
		t.names[e.ID] = e.Name
	}
	return t
}

// Name returns the display name of id.
func (t Taxonomy) Name(id string) (string, bool) {
	n, ok := t.names[id]
	return n, ok
}

// FindByName returns the first id, in ontology order, whose display name is
// exactly name.
func (t Taxonomy) FindByName(name string) (string, bool) {
	for _, id := range t.order {
		if t.names[id] == name {
			return id, true
		}
	}
	return "", false
}

// Len returns the number of entries.
func (t Taxonomy) Len() int { return len(t.order) }

// Entries returns the entries in ontology order.
func (t Taxonomy) Entries() []corpus.TaxonomyEntry {
	out := make([]corpus.TaxonomyEntry, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, corpus.TaxonomyEntry{ID: id, Name: t.names[id]})
	}
	return out
}
