package layout

import (
	"strings"

	"github.com/matzehuels/microtosca/pkg/errors"
)

// RankDir is the orientation of the layered layout.
type RankDir string

// Supported rank directions.
const (
	TopToBottom RankDir = "TB"
	BottomToTop RankDir = "BT"
	LeftToRight RankDir = "LR"
	RightToLeft RankDir = "RL"
)

var rankDirAliases = map[string]RankDir{
	"tb":            TopToBottom,
	"top-to-bottom": TopToBottom,
	"bt":            BottomToTop,
	"bottom-to-top": BottomToTop,
	"lr":            LeftToRight,
	"left-to-right": LeftToRight,
	"rl":            RightToLeft,
	"right-to-left": RightToLeft,
}

// ParseRankDir parses a rank direction. Short ("LR") and long
// ("left-to-right") forms are accepted in any case.
// Returns an ErrCodeInvalidRankDir error for anything else.
func ParseRankDir(s string) (RankDir, error) {
	if d, ok := rankDirAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return d, nil
	}
	return "", errors.New(errors.ErrCodeInvalidRankDir, "unknown rank direction %q (want TB, BT, LR or RL)", s)
}

// Valid reports whether d is one of the four supported directions.
func (d RankDir) Valid() bool {
	switch d {
	case TopToBottom, BottomToTop, LeftToRight, RightToLeft:
		return true
	}
	return false
}

// Horizontal reports whether ranks advance along the x axis.
func (d RankDir) Horizontal() bool { return d == LeftToRight || d == RightToLeft }

// RankerLongestPath is the only ranking strategy the invoker requests.
const RankerLongestPath = "longest-path"

// Params is the configuration bundle handed to an [Engine].
// Distances are in diagram units (pixels).
type Params struct {
	NodeSep     float64
	EdgeSep     float64
	RankSep     float64
	RankDir     RankDir
	SetVertices bool
	Ranker      string
	MarginX     float64
	MarginY     float64
}

// Fixed layout parameters used for every invocation.
const (
	defaultNodeSep = 50
	defaultEdgeSep = 50
	defaultRankSep = 50
	defaultMargin  = 100
)

// DefaultParams returns the parameter bundle used by [Apply] for direction d.
func DefaultParams(d RankDir) Params {
	return Params{
		NodeSep:     defaultNodeSep,
		EdgeSep:     defaultEdgeSep,
		RankSep:     defaultRankSep,
		RankDir:     d,
		SetVertices: true,
		Ranker:      RankerLongestPath,
		MarginX:     defaultMargin,
		MarginY:     defaultMargin,
	}
}
