// Package animir compiles declarative vector-animation documents (a
// Lottie-shaped JSON) together with a scene-template descriptor into a
// compact, frame-addressable intermediate representation, and from that IR
// produces deterministic, language-neutral render-command streams that a
// downstream rasterizer can execute.
//
// # Compile
//
// [CompileAnim] walks a Lottie document and produces an [AnimIR]: layers,
// compositions, transforms, masks, matte links, binding info, and mediaInput
// input geometry. Multiple documents share one [PathRegistry] so identical
// vector paths are interned once across a whole scene.
//
//	var registry animir.PathRegistry
//	ir, err := animir.CompileAnim(doc, "hero", "media", assets, &registry)
//
// # Render
//
// [AnimIR.RenderCommands] samples the IR at a frame and produces a flat,
// balanced stream of tagged [RenderCommand] values:
//
//	cmds := ir.RenderCommands(frame, animir.IdentityMatrix, true, animir.PreviewMode)
//
// # Compose
//
// [ScenePlayer] wraps multiple compiled animations into one scene, threading
// per-block user transforms and user-media presence through to each block's
// evaluator call:
//
//	player := animir.NewScenePlayer(pkg)
//	compiled, err := player.Compile(scene)
//	cmds := player.RenderCommands(compiled, sceneFrame, animir.PreviewMode)
//
// # Validation
//
// [AnimValidator.ValidateAnim] and [SceneValidator.ValidateScene] check a
// compiled animation or a scene descriptor for structural problems before
// they reach the runtime. [RenderCommandValidator.ValidateRenderCommands]
// checks that an emitted command stream is correctly scope-balanced.
//
// Rasterization, filesystem package loading, JSON deserialization plumbing
// beyond this package's own input structs, and asset binary I/O are treated
// as external collaborators — see the sibling preview/ module for a reference
// consumer that actually draws a command stream with Ebitengine.
package animir
