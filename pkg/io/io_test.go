package io

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/microtosca/pkg/errors"
	"github.com/matzehuels/microtosca/pkg/topology"
)

func link(t *testing.T) func(*topology.Link, error) *topology.Link {
	return func(l *topology.Link, err error) *topology.Link {
		t.Helper()
		if err != nil {
			t.Fatalf("add link: %v", err)
		}
		return l
	}
}

func TestExport(t *testing.T) {
	must := link(t)
	g := topology.New("shop")
	orders := g.AddService("orders")
	db := g.AddDatabase("orders-db")
	must(g.AddRunTimeInteraction(orders, db))

	doc, err := Export(g)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	want := Document{
		Name: "shop",
		Nodes: []Node{
			{Name: "orders", Type: TypeService},
			{Name: "orders-db", Type: TypeDatabase},
		},
		Links:  []Link{{Source: "orders", Target: "orders-db", Type: TypeRunTime}},
		Groups: []Group{},
	}
	if !reflect.DeepEqual(doc, want) {
		t.Errorf("Export() = %+v, want %+v", doc, want)
	}
}

func TestExportEdgeGroups(t *testing.T) {
	must := link(t)
	g := topology.New("shop")
	user := g.AddExternalUser("U")
	user.GroupName = "G1"
	a := g.AddService("A")
	b := g.AddService("B")
	must(g.AddRunTimeInteraction(user, a))
	must(g.AddRunTimeInteraction(user, b))
	must(g.AddRunTimeInteraction(a, b))

	doc, err := Export(g)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	if len(doc.Nodes) != 2 {
		t.Errorf("nodes = %d, want 2 (external user excluded)", len(doc.Nodes))
	}
	if len(doc.Links) != 1 {
		t.Errorf("links = %d, want 1 (external user links excluded)", len(doc.Links))
	}
	want := []Group{{Name: "G1", Type: TypeEdgeGroup, Members: []string{"A", "B"}}}
	if !reflect.DeepEqual(doc.Groups, want) {
		t.Errorf("groups = %+v, want %+v", doc.Groups, want)
	}

	data, err := json.Marshal(doc.Groups[0])
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != `{"name":"G1","type":"edgegroup","members":["A","B"]}` {
		t.Errorf("group JSON = %s", got)
	}
}

func TestExportSkipsSquads(t *testing.T) {
	must := link(t)
	g := topology.New("shop")
	team := g.AddSquadGroup("team")
	svc := g.AddService("svc")
	bus := g.AddCommunicationPattern("bus", "message-broker")
	must(g.AddRunTimeInteraction(team, svc))
	must(g.AddDeploymentTimeInteraction(svc, bus))

	doc, err := Export(g)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	wantNodes := []Node{
		{Name: "svc", Type: TypeService},
		{Name: "bus", Type: TypeCommunicationPattern, Subtype: "message-broker"},
	}
	if !reflect.DeepEqual(doc.Nodes, wantNodes) {
		t.Errorf("nodes = %+v, want %+v", doc.Nodes, wantNodes)
	}
	wantLinks := []Link{{Source: "svc", Target: "bus", Type: TypeDeploymentTime}}
	if !reflect.DeepEqual(doc.Links, wantLinks) {
		t.Errorf("links = %+v, want %+v", doc.Links, wantLinks)
	}
}

func TestExportDuplicateNames(t *testing.T) {
	g := topology.New("shop")
	g.AddService("dup")
	g.AddDatabase("dup")

	_, err := Export(g)
	if !errors.Is(err, errors.ErrCodeDuplicateName) {
		t.Errorf("Export() error = %v, want %s", err, errors.ErrCodeDuplicateName)
	}
}

func TestExportRejectsNamesImportWouldReject(t *testing.T) {
	long := strings.Repeat("x", 300)
	tests := []struct {
		name  string
		build func(g *topology.Graph)
	}{
		{"empty node name", func(g *topology.Graph) { g.AddService("") }},
		{"control characters", func(g *topology.Graph) { g.AddService("line\nbreak") }},
		{"too long", func(g *topology.Graph) { g.AddDatabase(long) }},
		{"edge group name", func(g *topology.Graph) { g.AddExternalUser("tab\there") }},
		{"graph name", func(g *topology.Graph) { g.Replace(topology.New("bad\x00name")) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := topology.New("shop")
			tt.build(g)
			_, err := Export(g)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Export() error = %v, want %s", err, errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestRoundTripEdgeCaseNames(t *testing.T) {
	for _, name := range []string{"é-service", "with space", strings.Repeat("a", errors.MaxNameLength)} {
		t.Run(name[:min(len(name), 16)], func(t *testing.T) {
			must := link(t)
			g := topology.New("shop")
			svc := g.AddService(name)
			db := g.AddDatabase("db")
			must(g.AddRunTimeInteraction(svc, db))

			doc, err := Export(g)
			if err != nil {
				t.Fatalf("Export: %v", err)
			}
			out := topology.New("")
			if err := Import(out, doc, Options{}); err != nil {
				t.Fatalf("Import: %v", err)
			}
			if _, err := out.Node(name); err != nil {
				t.Errorf("Node(%q): %v", name, err)
			}
		})
	}
}

func TestExportEmptyArraysAreNotNull(t *testing.T) {
	data, err := MarshalJSON(topology.New("empty"))
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	for _, key := range []string{`"nodes": []`, `"links": []`, `"groups": []`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("output missing %s:\n%s", key, data)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	must := link(t)
	g := topology.New("sock-shop")
	front := g.AddService("front-end")
	orders := g.AddService("orders")
	db := g.AddDatabase("orders-db")
	queue := g.AddCommunicationPattern("rabbitmq", "message-broker")
	user := g.AddExternalUser("user")
	must(g.AddRunTimeInteraction(front, orders))
	must(g.AddRunTimeInteraction(orders, db))
	must(g.AddRunTimeInteraction(orders, queue))
	must(g.AddDeploymentTimeInteraction(queue, orders))
	must(g.AddRunTimeInteraction(user, front))

	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	first := buf.String()

	out := topology.New("")
	if err := ReadJSON(out, strings.NewReader(first), Options{}); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	if out.Name() != "sock-shop" {
		t.Errorf("Name() = %q", out.Name())
	}
	if len(out.Services()) != 2 || len(out.Databases()) != 1 || len(out.CommunicationPatterns()) != 1 {
		t.Errorf("kinds = %d/%d/%d, want 2/1/1",
			len(out.Services()), len(out.Databases()), len(out.CommunicationPatterns()))
	}
	n, err := out.Node("rabbitmq")
	if err != nil {
		t.Fatal(err)
	}
	if n.Subtype != "message-broker" {
		t.Errorf("Subtype = %q, want message-broker", n.Subtype)
	}
	users := out.ExternalUsers()
	if len(users) != 1 || users[0].GroupName != "user" {
		t.Fatalf("external users = %v", users)
	}
	if got := out.OutboundNeighbors(users[0]); len(got) != 1 || got[0].Name != "front-end" {
		t.Errorf("external user neighbors = %v", got)
	}

	buf.Reset()
	if err := WriteJSON(out, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if buf.String() != first {
		t.Errorf("second export differs:\n%s\nwant:\n%s", buf.String(), first)
	}
}

func TestImportReplacesExistingState(t *testing.T) {
	g := topology.New("old")
	g.AddService("stale")

	doc := Document{
		Name:  "new",
		Nodes: []Node{{Name: "fresh", Type: TypeService}},
		Links: []Link{},
	}
	if err := Import(g, doc, Options{}); err != nil {
		t.Fatalf("Import: %v", err)
	}
	if g.Name() != "new" {
		t.Errorf("Name() = %q, want new", g.Name())
	}
	if _, err := g.Node("stale"); err == nil {
		t.Error("previous nodes should be removed")
	}
	if _, err := g.Node("fresh"); err != nil {
		t.Errorf("Node(fresh): %v", err)
	}
}

func TestImportUnknownNodeTypeSkipped(t *testing.T) {
	var logs bytes.Buffer
	logger := log.New(&logs)

	doc := Document{
		Name: "shop",
		Nodes: []Node{
			{Name: "a", Type: TypeService},
			{Name: "gw", Type: "apigateway"},
			{Name: "", Type: "future"},
			{Name: "bad\nname", Type: "future"},
		},
		Links: []Link{},
	}
	g := topology.New("")
	if err := Import(g, doc, Options{Logger: logger}); err != nil {
		t.Fatalf("Import: %v", err)
	}
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1", g.NodeCount())
	}
	if !strings.Contains(logs.String(), "apigateway") {
		t.Errorf("expected a warning naming the skipped type, got %q", logs.String())
	}
}

func TestImportErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		code errors.Code
	}{
		{
			name: "UnknownSource",
			doc: Document{
				Nodes: []Node{{Name: "b", Type: TypeService}},
				Links: []Link{{Source: "ghost", Target: "b", Type: TypeRunTime}},
			},
			code: errors.ErrCodeInvalidReference,
		},
		{
			name: "UnknownTarget",
			doc: Document{
				Nodes: []Node{{Name: "a", Type: TypeService}},
				Links: []Link{{Source: "a", Target: "ghost", Type: TypeDeploymentTime}},
			},
			code: errors.ErrCodeInvalidReference,
		},
		{
			name: "LinkToSkippedNode",
			doc: Document{
				Nodes: []Node{{Name: "a", Type: TypeService}, {Name: "x", Type: "future"}},
				Links: []Link{{Source: "a", Target: "x", Type: TypeRunTime}},
			},
			code: errors.ErrCodeInvalidReference,
		},
		{
			name: "UnknownLinkType",
			doc: Document{
				Nodes: []Node{{Name: "a", Type: TypeService}, {Name: "b", Type: TypeService}},
				Links: []Link{{Source: "a", Target: "b", Type: "compiletime"}},
			},
			code: errors.ErrCodeMalformedDocument,
		},
		{
			name: "DuplicateNodeName",
			doc: Document{
				Nodes: []Node{{Name: "a", Type: TypeService}, {Name: "a", Type: TypeDatabase}},
			},
			code: errors.ErrCodeDuplicateName,
		},
		{
			name: "EmptyNodeName",
			doc: Document{
				Nodes: []Node{{Name: "", Type: TypeService}},
			},
			code: errors.ErrCodeMalformedDocument,
		},
		{
			name: "UnknownGroupMember",
			doc: Document{
				Nodes:  []Node{{Name: "a", Type: TypeService}},
				Groups: []Group{{Name: "edge", Type: TypeEdgeGroup, Members: []string{"a", "ghost"}}},
			},
			code: errors.ErrCodeInvalidReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := topology.New("live")
			keep := g.AddService("keep")

			err := Import(g, tt.doc, Options{})
			if !errors.Is(err, tt.code) {
				t.Fatalf("Import() error = %v, want %s", err, tt.code)
			}

			// A failed import must not touch the live graph.
			if g.Name() != "live" || g.NodeCount() != 1 || g.LinkCount() != 0 {
				t.Errorf("graph modified: name=%q nodes=%d links=%d", g.Name(), g.NodeCount(), g.LinkCount())
			}
			if n, _ := g.Node("keep"); n != keep {
				t.Error("original node replaced")
			}
		})
	}
}

func TestImportGroups(t *testing.T) {
	doc := Document{
		Name: "shop",
		Nodes: []Node{
			{Name: "a", Type: TypeService},
			{Name: "b", Type: TypeService},
		},
		Links: []Link{},
		Groups: []Group{
			{Name: "edge", Type: TypeEdgeGroup, Members: []string{"a", "b"}},
			{Name: "legacy", Type: "squadgroup", Members: []string{"a"}},
		},
	}
	g := topology.New("")
	if err := Import(g, doc, Options{}); err != nil {
		t.Fatalf("Import: %v", err)
	}

	users := g.ExternalUsers()
	if len(users) != 1 {
		t.Fatalf("external users = %d, want 1", len(users))
	}
	if users[0].Name != "edge" || users[0].GroupName != "edge" {
		t.Errorf("external user = %q/%q", users[0].Name, users[0].GroupName)
	}
	if len(g.Links()) != 0 {
		t.Errorf("business links = %d, want 0", len(g.Links()))
	}
	if len(g.AllLinks()) != 2 {
		t.Errorf("all links = %d, want 2", len(g.AllLinks()))
	}
}

func TestParseDocument(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Valid", `{"name":"x","nodes":[],"links":[],"groups":[]}`, false},
		{"GroupsOptional", `{"name":"x","nodes":[],"links":[]}`, false},
		{"EmptyName", `{"name":"","nodes":[],"links":[]}`, false},
		{"MissingName", `{"nodes":[],"links":[]}`, true},
		{"MissingNodes", `{"name":"x","links":[]}`, true},
		{"MissingLinks", `{"name":"x","nodes":[]}`, true},
		{"NullNodes", `{"name":"x","nodes":null,"links":[]}`, true},
		{"WrongType", `{"name":"x","nodes":{},"links":[]}`, true},
		{"NotJSON", `{invalid json}`, true},
		{"Array", `[]`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDocument() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeMalformedDocument) {
				t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeMalformedDocument)
			}
		})
	}
}

func TestReadJSONMalformedLeavesGraph(t *testing.T) {
	g := topology.New("live")
	g.AddService("keep")

	err := ReadJSON(g, strings.NewReader(`{"nodes":[]}`), Options{})
	if !errors.Is(err, errors.ErrCodeMalformedDocument) {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1", g.NodeCount())
	}
}

func TestExportImportFile(t *testing.T) {
	g := topology.New("shop")
	g.AddService("a")

	path := filepath.Join(t.TempDir(), "graph.json")
	if err := ExportJSON(g, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	out := topology.New("")
	if err := ImportJSON(out, path, Options{}); err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if out.NodeCount() != 1 || out.Name() != "shop" {
		t.Errorf("imported name=%q nodes=%d", out.Name(), out.NodeCount())
	}
}

func TestImportJSONNotFound(t *testing.T) {
	err := ImportJSON(topology.New(""), filepath.Join(t.TempDir(), "missing.json"), Options{})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportJSON() error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestExportJSONDuplicateWritesNothing(t *testing.T) {
	g := topology.New("shop")
	g.AddService("dup")
	g.AddService("dup")

	path := filepath.Join(t.TempDir(), "graph.json")
	if err := ExportJSON(g, path); err == nil {
		t.Fatal("expected error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file should not exist, stat error = %v", err)
	}
}
