package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/microtosca/pkg/errors"
	"github.com/matzehuels/microtosca/pkg/observability"
	"github.com/matzehuels/microtosca/pkg/topology"
)

// requiredKeys must be present (and non-null) in every document.
var requiredKeys = []string{"name", "nodes", "links"}

// Options configures an import.
type Options struct {
	// Logger receives a warning for every node or group skipped because of
	// an unknown type. Nil disables those warnings.
	Logger *log.Logger
}

func (o Options) warnf(format string, args ...any) {
	if o.Logger != nil {
		o.Logger.Warnf(format, args...)
	}
}

// Import replaces the contents of g with the topology described by doc.
//
// The document is built into a fresh graph first and only swapped into g
// once every step has succeeded, so a failing import leaves g untouched.
// The steps are:
//
//  1. Nodes are created by type. Unknown node types are skipped, whatever
//     their name, so that documents written by newer tools still load.
//  2. Links are resolved by name among the business nodes. An unresolved
//     endpoint fails with ErrCodeInvalidReference; an unknown link type
//     fails with ErrCodeMalformedDocument.
//  3. Every "edgegroup" group becomes an external user named after the
//     group, with a runtime link to each member. Members resolve like link
//     endpoints. Groups of other types are skipped.
//
// Node names must be unique (ErrCodeDuplicateName) and pass
// [errors.ValidateName] (ErrCodeMalformedDocument).
func Import(g *topology.Graph, doc Document, opts Options) error {
	staged, err := build(doc, opts)
	observability.Serialization().OnImport(doc.Name, staged.NodeCount(), staged.LinkCount(), err)
	if err != nil {
		return err
	}
	g.Replace(staged)
	return nil
}

func build(doc Document, opts Options) (*topology.Graph, error) {
	staged := topology.New(doc.Name)
	if err := errors.ValidateGraphName(doc.Name); err != nil {
		return staged, errors.Wrap(errors.ErrCodeMalformedDocument, err, "graph name")
	}
	if err := addNodes(staged, doc.Nodes, opts); err != nil {
		return staged, err
	}
	if err := addLinks(staged, doc.Links); err != nil {
		return staged, err
	}
	if err := addGroups(staged, doc.Groups, opts); err != nil {
		return staged, err
	}
	return staged, nil
}

func addNodes(g *topology.Graph, nodes []Node, opts Options) error {
	seen := make(map[string]bool, len(nodes))
	for i, n := range nodes {
		switch n.Type {
		case TypeService, TypeDatabase, TypeCommunicationPattern:
		default:
			opts.warnf("skipping node %q with unknown type %q", n.Name, n.Type)
			continue
		}
		if err := errors.ValidateName(n.Name); err != nil {
			return errors.Wrap(errors.ErrCodeMalformedDocument, err, "nodes[%d]", i)
		}
		if seen[n.Name] {
			return errors.New(errors.ErrCodeDuplicateName, "node name %q is used more than once", n.Name)
		}
		seen[n.Name] = true

		switch n.Type {
		case TypeService:
			g.AddService(n.Name)
		case TypeDatabase:
			g.AddDatabase(n.Name)
		case TypeCommunicationPattern:
			g.AddCommunicationPattern(n.Name, n.Subtype)
		}
	}
	return nil
}

func addLinks(g *topology.Graph, links []Link) error {
	for i, l := range links {
		var add func(src, dst *topology.Node) (*topology.Link, error)
		switch l.Type {
		case TypeRunTime:
			add = g.AddRunTimeInteraction
		case TypeDeploymentTime:
			add = g.AddDeploymentTimeInteraction
		default:
			return errors.New(errors.ErrCodeMalformedDocument, "links[%d]: unknown link type %q", i, l.Type)
		}

		src, err := resolve(g, l.Source)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidReference, err, "links[%d] source", i)
		}
		dst, err := resolve(g, l.Target)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidReference, err, "links[%d] target", i)
		}
		if _, err := add(src, dst); err != nil {
			return err
		}
	}
	return nil
}

func addGroups(g *topology.Graph, groups []Group, opts Options) error {
	for i, grp := range groups {
		if grp.Type != TypeEdgeGroup {
			opts.warnf("skipping group %q with unknown type %q", grp.Name, grp.Type)
			continue
		}
		if err := errors.ValidateName(grp.Name); err != nil {
			return errors.Wrap(errors.ErrCodeMalformedDocument, err, "groups[%d]", i)
		}

		members := make([]*topology.Node, len(grp.Members))
		for j, name := range grp.Members {
			n, err := resolve(g, name)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidReference, err, "groups[%d] member %d", i, j)
			}
			members[j] = n
		}

		user := g.AddExternalUser(grp.Name)
		for _, m := range members {
			if _, err := g.AddRunTimeInteraction(user, m); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolve looks up a business node by name. External users are never link
// targets in a document, so they are excluded from resolution.
func resolve(g *topology.Graph, name string) (*topology.Node, error) {
	return g.BusinessNode(name)
}

// ParseDocument decodes data into a Document.
//
// Returns an ErrCodeMalformedDocument error if data is not a JSON object, if
// any of "name", "nodes" or "links" is missing or null, or if a field has
// the wrong JSON type. "groups" is optional.
func ParseDocument(data []byte) (Document, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeMalformedDocument, err, "decode")
	}
	for _, key := range requiredKeys {
		v, ok := raw[key]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return Document{}, errors.New(errors.ErrCodeMalformedDocument, "missing required field %q", key)
		}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeMalformedDocument, err, "decode")
	}
	return doc, nil
}

// ReadJSON decodes a JSON document from r and imports it into g.
//
// The document is fully parsed and validated before g is modified; see
// [ParseDocument] and [Import] for the failure modes. ReadJSON does not
// close r.
func ReadJSON(g *topology.Graph, r io.Reader, opts Options) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(errors.ErrCodeMalformedDocument, err, "read")
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return err
	}
	return Import(g, doc, opts)
}

// ImportJSON reads the JSON file at path and imports it into g.
//
// A missing file fails with ErrCodeFileNotFound. Otherwise ImportJSON
// returns the same errors as [ReadJSON].
func ImportJSON(g *topology.Graph, path string, opts Options) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(g, f, opts)
}
