package layout

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/microtosca/pkg/cache"
	"github.com/matzehuels/microtosca/pkg/errors"
	"github.com/matzehuels/microtosca/pkg/topology"
)

// recordingEngine places every node at a fixed offset and records the
// parameters it was called with.
type recordingEngine struct {
	calls  int
	params Params
	seen   int
}

func (e *recordingEngine) Layout(_ context.Context, g *topology.Graph, p Params) error {
	e.calls++
	e.params = p
	for i, n := range g.Elements() {
		e.seen++
		n.Position = topology.Point{X: p.MarginX + float64(i)*10, Y: p.MarginY}
	}
	return nil
}

func sampleGraph(t *testing.T) *topology.Graph {
	t.Helper()
	g := topology.New("shop")
	user := g.AddExternalUser("user")
	gateway := g.AddService("gateway")
	orders := g.AddService("orders")
	db := g.AddDatabase("orders-db")
	g.AddSquadGroup("team")
	for _, pair := range [][2]*topology.Node{{user, gateway}, {gateway, orders}, {orders, db}} {
		if _, err := g.AddRunTimeInteraction(pair[0], pair[1]); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestApplyPassesFixedParams(t *testing.T) {
	for _, dir := range []string{"TB", "BT", "LR", "RL"} {
		t.Run(dir, func(t *testing.T) {
			g := sampleGraph(t)
			e := &recordingEngine{}
			if err := Apply(context.Background(), g, dir, e); err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if e.calls != 1 {
				t.Fatalf("engine calls = %d, want 1", e.calls)
			}
			want := Params{
				NodeSep: 50, EdgeSep: 50, RankSep: 50,
				RankDir:     RankDir(dir),
				SetVertices: true,
				Ranker:      "longest-path",
				MarginX:     100, MarginY: 100,
			}
			if e.params != want {
				t.Errorf("params = %+v, want %+v", e.params, want)
			}
		})
	}
}

func TestApplyIncludesAllElements(t *testing.T) {
	g := sampleGraph(t)
	e := &recordingEngine{}
	if err := Apply(context.Background(), g, "TB", e); err != nil {
		t.Fatal(err)
	}
	if e.seen != g.NodeCount() {
		t.Errorf("engine saw %d nodes, want %d (external users and squads included)", e.seen, g.NodeCount())
	}
	user, _ := g.Node("user")
	if user.Position.X != 100 || user.Position.Y != 100 {
		t.Errorf("user position = %+v, want {100 100}", user.Position)
	}
}

func TestApplyUnknownDirectionIsNoop(t *testing.T) {
	for _, dir := range []string{"", "tb", "XY", "left-to-right", " TB"} {
		t.Run(dir, func(t *testing.T) {
			g := sampleGraph(t)
			e := &recordingEngine{}
			if err := Apply(context.Background(), g, dir, e); err != nil {
				t.Fatalf("Apply(%q) = %v, want nil", dir, err)
			}
			if e.calls != 0 {
				t.Errorf("engine invoked for %q", dir)
			}
			for _, n := range g.Elements() {
				if n.Position != (topology.Point{}) {
					t.Errorf("%s moved to %+v", n.Name, n.Position)
				}
			}
		})
	}
}

func TestParseRankDir(t *testing.T) {
	tests := []struct {
		in      string
		want    RankDir
		wantErr bool
	}{
		{"TB", TopToBottom, false},
		{"bt", BottomToTop, false},
		{"Left-To-Right", LeftToRight, false},
		{" rl ", RightToLeft, false},
		{"diagonal", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseRankDir(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRankDir(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidRankDir) {
			t.Errorf("ParseRankDir(%q) code = %v, want ErrCodeInvalidRankDir", tt.in, errors.GetCode(err))
		}
		if got != tt.want {
			t.Errorf("ParseRankDir(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLongestPathRanks(t *testing.T) {
	g := topology.New("")
	a := g.AddService("a")
	b := g.AddService("b")
	c := g.AddService("c")
	d := g.AddDatabase("d")
	link := func(x, y *topology.Node) {
		if _, err := g.AddRunTimeInteraction(x, y); err != nil {
			t.Fatal(err)
		}
	}
	link(a, b)
	link(b, c)
	link(a, c)
	link(c, d)
	link(d, a) // closes a cycle
	link(b, b) // self loop

	ranks := longestPathRanks(g)
	want := map[string]int{"a": 0, "b": 1, "c": 2, "d": 3}
	for _, n := range g.Elements() {
		if ranks[n.ID] != want[n.Name] {
			t.Errorf("rank(%s) = %d, want %d", n.Name, ranks[n.ID], want[n.Name])
		}
	}
}

func TestToDOT(t *testing.T) {
	g := sampleGraph(t)
	dot, err := ToDOT(g, LeftToRight)
	if err != nil {
		t.Fatalf("ToDOT: %v", err)
	}
	for _, want := range []string{
		"digraph topology",
		"rankdir=LR",
		"rank=same",
		`label="orders-db"`,
		"fixedsize=true",
		"n1->n2",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}

	if _, err := ToDOT(g, "up"); !errors.Is(err, errors.ErrCodeInvalidRankDir) {
		t.Errorf("ToDOT(up) error = %v, want ErrCodeInvalidRankDir", err)
	}
}

func TestToDOTLabels(t *testing.T) {
	g := topology.New("")
	g.AddService("café")
	g.AddService(`say "hi"`)
	g.AddService(`C:\svc`)
	dot, err := ToDOT(g, TopToBottom)
	if err != nil {
		t.Fatalf("ToDOT: %v", err)
	}
	for _, want := range []string{`label="café"`, `label="say \"hi\""`, `label="C:\\svc"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, `\u00e9`) {
		t.Errorf("label uses Go escapes:\n%s", dot)
	}
}

func TestParseSpline(t *testing.T) {
	pts, err := parseSpline(`"e,27,72.1 27,143.7 27,135.98\
 27,126.71 27,118.11"`)
	if err != nil {
		t.Fatal(err)
	}
	want := []topology.Point{{X: 27, Y: 143.7}, {X: 27, Y: 135.98}, {X: 27, Y: 126.71}, {X: 27, Y: 118.11}}
	if len(pts) != len(want) {
		t.Fatalf("got %d points, want %d", len(pts), len(want))
	}
	for i := range want {
		if pts[i] != want[i] {
			t.Errorf("point %d = %+v, want %+v", i, pts[i], want[i])
		}
	}
	if got := interior(pts); len(got) != 2 || got[0] != want[1] {
		t.Errorf("interior = %+v", got)
	}
}

func TestTransform(t *testing.T) {
	box, err := parseBox(`"0,0,200,300"`)
	if err != nil {
		t.Fatal(err)
	}
	tr := transform{minX: box[0], maxY: box[3], marginX: 100, marginY: 100}
	got := tr.topLeft(topology.Point{X: 50, Y: 270}, topology.Size{Width: 100, Height: 60})
	if want := (topology.Point{X: 100, Y: 100}); got != want {
		t.Errorf("topLeft = %+v, want %+v", got, want)
	}
}

func TestGraphvizLayout(t *testing.T) {
	g := sampleGraph(t)
	if err := Apply(context.Background(), g, "TB", Graphviz{}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	gateway, _ := g.Node("gateway")
	orders, _ := g.Node("orders")
	if gateway.Position.Y >= orders.Position.Y {
		t.Errorf("gateway (y=%v) should be above orders (y=%v)", gateway.Position.Y, orders.Position.Y)
	}
	for _, n := range g.Elements() {
		if n.Position.X < 100 || n.Position.Y < 100 {
			t.Errorf("%s at %+v is inside the margin", n.Name, n.Position)
		}
	}
	for _, l := range g.AllLinks() {
		if len(l.Vertices) == 0 {
			src, dst := g.Endpoints(l)
			t.Errorf("link %s->%s has no vertices", src.Name, dst.Name)
		}
	}
}

func TestGraphvizEmptyGraph(t *testing.T) {
	if err := (Graphviz{}).Layout(context.Background(), topology.New(""), DefaultParams(TopToBottom)); err != nil {
		t.Errorf("Layout(empty) = %v", err)
	}
}

func TestWriteSnapshot(t *testing.T) {
	g := sampleGraph(t)
	if err := Apply(context.Background(), g, "LR", &recordingEngine{}); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteSnapshot(g, LeftToRight, &buf); err != nil {
		t.Fatal(err)
	}

	var snap Snapshot
	if err := json.Unmarshal(buf.Bytes(), &snap); err != nil {
		t.Fatalf("snapshot is not JSON: %v", err)
	}
	if snap.RankDir != LeftToRight {
		t.Errorf("rankdir = %q", snap.RankDir)
	}
	if len(snap.Nodes) != 5 || len(snap.Links) != 3 {
		t.Fatalf("snapshot has %d nodes, %d links", len(snap.Nodes), len(snap.Links))
	}
	if n := snap.Nodes[0]; n.Name != "user" || n.Type != "externaluser" || n.X != 100 {
		t.Errorf("first node = %+v", n)
	}
	if l := snap.Links[0]; l.Source != "user" || l.Target != "gateway" || l.Vertices == nil {
		t.Errorf("first link = %+v", l)
	}
}

func TestCachedEngine(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	inner := &recordingEngine{}
	e := &Cached{Engine: inner, Cache: fc}

	g := sampleGraph(t)
	if err := Apply(ctx, g, "TB", e); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 1 || e.Hit() {
		t.Fatalf("first run: calls=%d hit=%v", inner.calls, e.Hit())
	}
	want := make([]topology.Point, 0, g.NodeCount())
	for _, n := range g.Elements() {
		want = append(want, n.Position)
		n.Position = topology.Point{}
	}

	if err := Apply(ctx, g, "TB", e); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 1 || !e.Hit() {
		t.Fatalf("second run: calls=%d hit=%v, want cache hit", inner.calls, e.Hit())
	}
	for i, n := range g.Elements() {
		if n.Position != want[i] {
			t.Errorf("%s restored at %+v, want %+v", n.Name, n.Position, want[i])
		}
	}

	if err := Apply(ctx, g, "LR", e); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 2 || e.Hit() {
		t.Errorf("new direction: calls=%d hit=%v, want miss", inner.calls, e.Hit())
	}
}

func TestCachedEngineNullCache(t *testing.T) {
	inner := &recordingEngine{}
	e := &Cached{Engine: inner, Cache: cache.NullCache{}}
	g := sampleGraph(t)
	for range 2 {
		if err := Apply(context.Background(), g, "TB", e); err != nil {
			t.Fatal(err)
		}
	}
	if inner.calls != 2 {
		t.Errorf("calls = %d, want 2 with caching disabled", inner.calls)
	}
}
