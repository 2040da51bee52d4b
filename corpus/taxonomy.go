package corpus

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// TaxonomyEntry is one flattened ontology entry.
type TaxonomyEntry struct {
	ID   string
	Name string
}

type topicName struct {
	ID       string      `xml:"id,attr"`
	Name     string      `xml:"name,attr"`
	Children []topicName `xml:"topicname"`
}

type ontologyFile struct {
	Names []topicName `xml:"topicname"`
}

// ReadTaxonomy flattens the nested <topicname> tree of default-topics.xml
// into entries, parents before children, in document order.
func ReadTaxonomy(r io.Reader) ([]TaxonomyEntry, error) {
	var f ontologyFile
	if err := newDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("ontology decode: %w", err)
	}
	var out []TaxonomyEntry
	var walk func(ns []topicName)
	walk = func(ns []topicName) {
		for _, n := range ns {
			out = append(out, TaxonomyEntry{ID: n.ID, Name: n.Name})
			walk(n.Children)
		}
	}
	walk(f.Names)
	return out, nil
}

// ReadTaxonomyFile opens path and decodes it with ReadTaxonomy.
func ReadTaxonomyFile(path string) ([]TaxonomyEntry, error) {
	return readFile(path, ReadTaxonomy)
}

// ReadTaxonomyMap reads a pre-flattened taxonomy written as a YAML (or JSON)
// mapping of id to display name. Key order is kept.
func ReadTaxonomyMap(r io.Reader) ([]TaxonomyEntry, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("taxonomy map decode: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	m := doc.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("taxonomy map decode: line %d: expected a mapping", m.Line)
	}
	out := make([]TaxonomyEntry, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		k, v := m.Content[i], m.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("taxonomy map decode: line %d: %s: expected a string", v.Line, k.Value)
		}
		out = append(out, TaxonomyEntry{ID: k.Value, Name: v.Value})
	}
	return out, nil
}

// ReadTaxonomyMapFile opens path and decodes it with ReadTaxonomyMap.
func ReadTaxonomyMapFile(path string) ([]TaxonomyEntry, error) {
	return readFile(path, ReadTaxonomyMap)
}

// WriteTaxonomyMap writes entries as a YAML mapping that ReadTaxonomyMap
// reads back in the same order.
func WriteTaxonomyMap(w io.Writer, entries []TaxonomyEntry) error {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range entries {
		m.Content = append(m.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.ID},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Name},
		)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return err
	}
	return enc.Close()
}
