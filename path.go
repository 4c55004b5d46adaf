package animir

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// PathID is a dense, non-negative integer assigned by [PathRegistry] upon
// first registration of a given vector path. Equal inputs produce equal IDs
// within one registry.
type PathID int

// Vertex is one Bézier vertex: an anchor point plus matching in/out tangent
// handles, stored as offsets from Point (the Lottie "i"/"o" convention).
type Vertex struct {
	Point      Vec2D
	InTangent  Vec2D
	OutTangent Vec2D
}

// BezierPath is an ordered sequence of vertices with matching in/out tangent
// vectors, a closed flag, and a lazily-computed axis-aligned bounding box.
// Vertex count equals tangent-array count by construction — there is no
// separate tangent slice.
type BezierPath struct {
	Vertices []Vertex
	Closed   bool

	bbox      RectD
	bboxValid bool
}

// NewBezierPath constructs a path from vertices. Ownership of vertices
// transfers to the returned path.
func NewBezierPath(vertices []Vertex, closed bool) BezierPath {
	return BezierPath{Vertices: vertices, Closed: closed}
}

// Bounds returns the path's axis-aligned bounding box over anchor points and
// tangent handles, computing and caching it on first access.
func (p *BezierPath) Bounds() RectD {
	if p.bboxValid {
		return p.bbox
	}
	if len(p.Vertices) == 0 {
		p.bbox = RectD{}
		p.bboxValid = true
		return p.bbox
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	grow := func(x, y float64) {
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}
	for _, v := range p.Vertices {
		grow(v.Point.X, v.Point.Y)
		grow(v.Point.X+v.InTangent.X, v.Point.Y+v.InTangent.Y)
		grow(v.Point.X+v.OutTangent.X, v.Point.Y+v.OutTangent.Y)
	}
	p.bbox = RectD{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
	p.bboxValid = true
	return p.bbox
}

// pathTolerance is the fixed numeric tolerance used for structural path
// equivalence in [PathRegistry.Register].
const pathTolerance = 1e-6

// quantize rounds x to the registry's comparison tolerance so that
// structurally-equal paths produce identical canonical keys regardless of
// floating point noise.
func quantize(x float64) int64 {
	return int64(math.Round(x / pathTolerance))
}

// canonicalKey builds a deterministic, structural key for p: vertices,
// tangents, and the closed flag, quantized to pathTolerance. Two paths that
// are equivalent under the registry's tolerance produce the same key.
func canonicalKey(p BezierPath) string {
	var b strings.Builder
	if p.Closed {
		b.WriteByte('1')
	} else {
		b.WriteByte('0')
	}
	for _, v := range p.Vertices {
		b.WriteByte('|')
		writeQ(&b, v.Point.X)
		b.WriteByte(',')
		writeQ(&b, v.Point.Y)
		b.WriteByte(',')
		writeQ(&b, v.InTangent.X)
		b.WriteByte(',')
		writeQ(&b, v.InTangent.Y)
		b.WriteByte(',')
		writeQ(&b, v.OutTangent.X)
		b.WriteByte(',')
		writeQ(&b, v.OutTangent.Y)
	}
	return b.String()
}

func writeQ(b *strings.Builder, x float64) {
	b.WriteString(strconv.FormatInt(quantize(x), 36))
}

// PathRegistry assigns dense, deterministic integer IDs to vector paths,
// deduplicating structurally-equal paths under a fixed numeric tolerance.
// Shared across an entire scene compilation so identical subpaths register
// once. The zero value is ready to use.
type PathRegistry struct {
	index map[string]PathID
	paths []BezierPath
}

// Register returns the existing ID if an equivalent path was already
// registered, else assigns and returns the next sequential ID.
func (r *PathRegistry) Register(path BezierPath) PathID {
	if r.index == nil {
		r.index = make(map[string]PathID)
	}
	key := canonicalKey(path)
	if id, ok := r.index[key]; ok {
		return id
	}
	id := PathID(len(r.paths))
	r.index[key] = id
	r.paths = append(r.paths, path)
	Metrics().recordPathRegistered()
	return id
}

// Count returns the number of distinct registered paths.
func (r *PathRegistry) Count() int {
	return len(r.paths)
}

// Lookup returns the path registered under id, or false if id is out of range.
func (r *PathRegistry) Lookup(id PathID) (BezierPath, bool) {
	if id < 0 || int(id) >= len(r.paths) {
		return BezierPath{}, false
	}
	return r.paths[id], true
}

// String implements fmt.Stringer for debugging.
func (id PathID) String() string {
	return fmt.Sprintf("path#%d", int(id))
}
