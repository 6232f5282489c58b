package plot

// Kind classifies an incoming point descriptor.
type Kind string

// Supported annotation kinds.
const (
	KindScatter    Kind = "scatter"
	KindLine       Kind = "line"
	KindMarker     Kind = "marker"
	KindText       Kind = "text"
	KindMarkerText Kind = "marker_text"
)

// ValidKinds is the set of kinds a request may carry; anything else is
// rejected before plotting starts.
var ValidKinds = map[Kind]bool{
	KindScatter:    true,
	KindLine:       true,
	KindMarker:     true,
	KindText:       true,
	KindMarkerText: true,
}

// PointDesc is one point of an incoming annotation stream.
type PointDesc struct {
	Lat   float64
	Lng   float64
	Color string
	Size  float64
	Kind  Kind
	Text  string
}

// Group is a maximal run of consecutive point descriptors sharing kind,
// size, and color. The rendering backend draws one batched primitive per
// group instead of one per point.
type Group struct {
	Kind    Kind
	Size    float64
	Color   string
	Members []PointDesc

	// open flips to false the first time a point is tested against this
	// group and rejected. A closed group never accepts again, even if a
	// later point would match.
	open bool
}

// newGroup starts a group with first as its sole member.
func newGroup(first PointDesc) *Group {
	return &Group{
		Kind:    first.Kind,
		Size:    first.Size,
		Color:   first.Color,
		Members: []PointDesc{first},
		open:    true,
	}
}

// Add appends p if it matches the group's kind, size, and color and the
// group is still accepting members. Any rejection permanently closes the
// group.
func (g *Group) Add(p PointDesc) bool {
	if p.Kind == g.Kind && p.Size == g.Size && p.Color == g.Color && g.open {
		g.Members = append(g.Members, p)
		return true
	}
	g.open = false
	return false
}

// Open reports whether the group is still accepting members.
func (g *Group) Open() bool {
	return g.open
}

// GroupPoints partitions an ordered point stream into maximal runs of
// matching (kind, size, color).
//
// Each point is offered to every existing group in order; the first group
// that accepts it wins, and every group that rejects it is closed for good.
// When no group accepts, the point starts a new group. Closing on rejection
// is what makes the runs maximal-contiguous: a later point whose style
// matches an earlier run starts a fresh group rather than rejoining it.
// Concatenating the groups' members reproduces the input exactly.
func GroupPoints(points []PointDesc) []*Group {
	var groups []*Group
	for _, p := range points {
		added := false
		for _, g := range groups {
			if g.Add(p) {
				added = true
			}
		}
		if !added {
			groups = append(groups, newGroup(p))
		}
	}
	return groups
}
