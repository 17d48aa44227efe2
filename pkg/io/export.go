package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/microtosca/pkg/errors"
	"github.com/matzehuels/microtosca/pkg/observability"
	"github.com/matzehuels/microtosca/pkg/topology"
)

// Export converts g into its interchange document.
//
// Nodes and links follow the graph's insertion order. Only services,
// databases and communication patterns are exported as nodes; squads and
// links touching them are left out, and every external user becomes one
// edge group named after its GroupName whose members are its outbound
// neighbors.
//
// Names are the only identity in the document, so Export returns an
// ErrCodeDuplicateName error when two exported nodes share a name. Names
// that [Import] would reject (see [errors.ValidateName]) fail with
// ErrCodeInvalidInput, so every exported document can be imported again.
func Export(g *topology.Graph) (Document, error) {
	doc, err := export(g)
	observability.Serialization().OnExport(g.Name(), len(doc.Nodes), len(doc.Links), len(doc.Groups), err)
	return doc, err
}

func export(g *topology.Graph) (Document, error) {
	if err := errors.ValidateGraphName(g.Name()); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "graph name")
	}

	view := g.Business()
	doc := Document{
		Name:   g.Name(),
		Nodes:  make([]Node, 0, len(view.Nodes)),
		Links:  make([]Link, 0, len(view.Links)),
		Groups: []Group{},
	}

	exported := make(map[topology.ID]bool, len(view.Nodes))
	seen := make(map[string]bool, len(view.Nodes))
	for _, n := range view.Nodes {
		typ, ok := kindToType[n.Kind]
		if !ok {
			continue
		}
		if err := errors.ValidateName(n.Name); err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "node %d", len(doc.Nodes))
		}
		if seen[n.Name] {
			return Document{}, errors.New(errors.ErrCodeDuplicateName, "node name %q is used more than once", n.Name)
		}
		seen[n.Name] = true
		exported[n.ID] = true
		doc.Nodes = append(doc.Nodes, Node{Name: n.Name, Type: typ, Subtype: n.Subtype})
	}

	for _, l := range view.Links {
		if !exported[l.Source] || !exported[l.Target] {
			continue
		}
		src, dst := g.Endpoints(l)
		doc.Links = append(doc.Links, Link{
			Source: src.Name,
			Target: dst.Name,
			Type:   linkKindToType[l.Kind],
		})
	}

	for _, u := range g.ExternalUsers() {
		name := u.GroupName
		if name == "" {
			name = u.Name
		}
		if err := errors.ValidateName(name); err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "edge group %d", len(doc.Groups))
		}
		neighbors := g.OutboundNeighbors(u)
		members := make([]string, len(neighbors))
		for i, n := range neighbors {
			members[i] = n.Name
		}
		doc.Groups = append(doc.Groups, Group{Name: name, Type: TypeEdgeGroup, Members: members})
	}

	return doc, nil
}

// MarshalJSON exports g and encodes it as indented JSON.
func MarshalJSON(g *topology.Graph) ([]byte, error) {
	doc, err := Export(g)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, "", "  ")
}

// WriteJSON exports g and writes it as indented JSON to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(g *topology.Graph, w io.Writer) error {
	doc, err := Export(g)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes g to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
// Nothing is written when the export itself fails.
func ExportJSON(g *topology.Graph, path string) error {
	data, err := MarshalJSON(g)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
