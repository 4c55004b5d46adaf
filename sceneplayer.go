package animir

import (
	"fmt"
	"sort"
)

// CompiledPackage is a set of compiled animations keyed by the name a
// [Scene]'s MediaBlocks reference them by. Building one and compiling it
// once lets a caller reuse the same asset/path registries across every
// scene instance drawn from it.
type CompiledPackage struct {
	Anims map[string]*AnimIR
}

// NewCompiledPackage builds an empty package ready for [CompiledPackage.Add].
func NewCompiledPackage() *CompiledPackage {
	return &CompiledPackage{Anims: map[string]*AnimIR{}}
}

// Add registers a compiled animation under key.
func (p *CompiledPackage) Add(key string, ir *AnimIR) {
	p.Anims[key] = ir
}

// CompiledBlock is one [MediaBlock] bound to its resolved animation,
// carrying the per-instance user-transform and user-media-presence state a
// [ScenePlayer] lets a caller mutate between frames.
type CompiledBlock struct {
	Block MediaBlock
	Anim  *AnimIR

	userTransform    Matrix2D
	hasUserTransform bool
	userMediaPresent map[string]bool
}

// CompiledScene is a [Scene] resolved against a [CompiledPackage] and ready
// to sample frame by frame.
type CompiledScene struct {
	Scene  Scene
	Blocks []*CompiledBlock
}

// ScenePlayer compiles scene templates against a shared [CompiledPackage]
// and samples a [CompiledScene]'s render-command stream.
type ScenePlayer struct {
	pkg *CompiledPackage
}

// NewScenePlayer builds a player bound to pkg.
func NewScenePlayer(pkg *CompiledPackage) *ScenePlayer {
	return &ScenePlayer{pkg: pkg}
}

// Compile resolves every block in scene against the player's package,
// sorting blocks by (zIndex, declaration index) for deterministic draw
// order, and returns a [CompiledScene] ready for [ScenePlayer.RenderCommands].
func (p *ScenePlayer) Compile(scene Scene) (*CompiledScene, error) {
	blocks := make([]*CompiledBlock, 0, len(scene.Blocks))
	for i, b := range scene.Blocks {
		anim, ok := p.pkg.Anims[b.AnimKey]
		if !ok {
			return nil, fmt.Errorf("animir: scene %q block[%d]: unknown animation key %q", scene.ID, i, b.AnimKey)
		}
		blocks = append(blocks, &CompiledBlock{Block: b, Anim: anim, userTransform: IdentityMatrix, userMediaPresent: map[string]bool{}})
	}
	sort.SliceStable(blocks, func(i, j int) bool {
		if blocks[i].Block.ZIndex != blocks[j].Block.ZIndex {
			return blocks[i].Block.ZIndex < blocks[j].Block.ZIndex
		}
		return i < j // declaration order, stable for equal z
	})
	return &CompiledScene{Scene: scene, Blocks: blocks}, nil
}

// SetUserTransform sets a per-instance extra transform applied on top of a
// block's binding layer: that layer's effective matrix becomes
// animMatrix · userTransform. The block's other layers are not affected.
func (cs *CompiledScene) SetUserTransform(blockID string, m Matrix2D) {
	if b := cs.block(blockID); b != nil {
		b.userTransform = m
		b.hasUserTransform = true
	}
}

// UserTransform returns a block's current user transform, or the identity
// matrix if none was set.
func (cs *CompiledScene) UserTransform(blockID string) Matrix2D {
	if b := cs.block(blockID); b != nil {
		return b.userTransform
	}
	return IdentityMatrix
}

// ResetAllUserTransforms clears every block's user transform back to
// identity.
func (cs *CompiledScene) ResetAllUserTransforms() {
	for _, b := range cs.Blocks {
		b.userTransform = IdentityMatrix
		b.hasUserTransform = false
	}
}

// SetUserMediaPresent records whether a binding key's mediaInput slot has
// real user media attached, for [EditMode]/[PreviewMode] resolution.
func (cs *CompiledScene) SetUserMediaPresent(blockID, bindingKey string, present bool) {
	if b := cs.block(blockID); b != nil {
		b.userMediaPresent[bindingKey] = present
	}
}

// IsUserMediaPresent reports whether a binding key's mediaInput slot has
// user media attached.
func (cs *CompiledScene) IsUserMediaPresent(blockID, bindingKey string) bool {
	if b := cs.block(blockID); b != nil {
		return b.userMediaPresent[bindingKey]
	}
	return false
}

func (cs *CompiledScene) block(id string) *CompiledBlock {
	for _, b := range cs.Blocks {
		if b.Block.ID == id {
			return b
		}
	}
	return nil
}

// RenderCommands samples every block of the scene at sceneFrameIndex (a
// scene-local frame counter, mapped into each block's own [LoopRange]) and
// concatenates their render-command streams in z-order, each wrapped in a
// beginGroup/endGroup keyed by the block's ID. A block's userTransform is
// not wrapped around its whole output: it is handed down to [AnimIR.RenderCommands],
// which scopes it to the binding layer's own draw transform only, so
// decorative layers around the binding never move with it. In [EditMode]
// every block samples its own canonical frame 0 and shows its binding
// layer regardless of attached user media, since the editor is previewing
// template structure, not a live composite.
func (p *ScenePlayer) RenderCommands(cs *CompiledScene, sceneFrameIndex float64, mode TemplateMode) []RenderCommand {
	var cmds []RenderCommand
	cmds = append(cmds, beginGroup("scene:"+cs.Scene.ID))
	for _, b := range cs.Blocks {
		frame := mapLoopFrame(sceneFrameIndex, b.Block.Timing.Range)
		cmds = append(cmds, beginGroup("block:"+b.Block.ID))
		cmds = append(cmds, b.Anim.RenderCommands(frame, b.userTransform, b.bindingLayerVisible(mode), mode)...)
		cmds = append(cmds, endGroup())
	}
	cmds = append(cmds, endGroup())
	return cmds
}

// bindingLayerVisible reports whether this block's bound mediaInput content
// should draw: always true in [EditMode] (previewing template structure),
// otherwise only once the caller has attached real user media via
// [CompiledScene.SetUserMediaPresent].
func (b *CompiledBlock) bindingLayerVisible(mode TemplateMode) bool {
	if mode == EditMode {
		return true
	}
	if b.Anim.Binding == nil {
		return true
	}
	return b.userMediaPresent[b.Anim.Binding.BindingKey]
}

// mapLoopFrame maps a scene-local frame counter into a block's loop range.
func mapLoopFrame(sceneFrame float64, r LoopRange) float64 {
	span := r.End - r.Start
	if span <= 0 {
		return r.Start
	}
	if !r.Loop {
		f := r.Start + sceneFrame
		if f > r.End {
			return r.End
		}
		return f
	}
	offset := sceneFrame
	for offset >= span {
		offset -= span
	}
	for offset < 0 {
		offset += span
	}
	return r.Start + offset
}
