package animir

// CommandType tags a [RenderCommand]'s variant.
type CommandType int

const (
	CommandBeginGroup CommandType = iota + 1
	CommandEndGroup
	CommandPushTransform
	CommandPopTransform
	CommandPushClipRect
	CommandPopClipRect
	CommandBeginMask
	CommandEndMask
	CommandBeginMatte
	CommandEndMatte
	CommandDrawImage
	CommandDrawShape
	CommandDrawStroke
)

// RenderCommand is one entry of the frame-addressable, language-neutral
// render-command stream an [AnimIR] or [ScenePlayer] emits. Exactly one of
// its fields is meaningful per Type; the rest are left at their zero value.
// Scope-opening and scope-closing commands always nest in a balanced way —
// every pushX has a matching popX, every beginX an endX, within the same
// emitting call.
type RenderCommand struct {
	Type CommandType

	// CommandBeginGroup / CommandEndGroup
	GroupName string

	// CommandPushTransform
	Matrix Matrix2D

	// CommandPushClipRect
	ClipRect RectD

	// CommandBeginMask / CommandEndMask
	MaskMode     MaskMode
	MaskInverted bool
	MaskPathID   PathID
	MaskOpacity  float64

	// CommandBeginMatte / CommandEndMatte
	MatteMode MatteMode

	// CommandDrawImage
	AssetID string

	// CommandDrawShape / CommandDrawStroke
	PathID  PathID
	Fill    *FillPaint
	Stroke  *StrokeStyle
	Opacity float64
}

func beginGroup(name string) RenderCommand { return RenderCommand{Type: CommandBeginGroup, GroupName: name} }
func endGroup() RenderCommand               { return RenderCommand{Type: CommandEndGroup} }
func pushTransform(m Matrix2D) RenderCommand {
	return RenderCommand{Type: CommandPushTransform, Matrix: m}
}
func popTransform() RenderCommand { return RenderCommand{Type: CommandPopTransform} }
func pushClipRect(r RectD) RenderCommand {
	return RenderCommand{Type: CommandPushClipRect, ClipRect: r}
}
func popClipRect() RenderCommand { return RenderCommand{Type: CommandPopClipRect} }

func beginMask(mode MaskMode, inverted bool, pathID PathID, opacity float64) RenderCommand {
	return RenderCommand{Type: CommandBeginMask, MaskMode: mode, MaskInverted: inverted, MaskPathID: pathID, MaskOpacity: opacity}
}
func endMask() RenderCommand { return RenderCommand{Type: CommandEndMask} }

func beginMatte(mode MatteMode) RenderCommand {
	return RenderCommand{Type: CommandBeginMatte, MatteMode: mode}
}
func endMatte() RenderCommand { return RenderCommand{Type: CommandEndMatte} }

func drawImage(assetID string, opacity float64) RenderCommand {
	return RenderCommand{Type: CommandDrawImage, AssetID: assetID, Opacity: opacity}
}
func drawShape(pathID PathID, fill *FillPaint, opacity float64) RenderCommand {
	return RenderCommand{Type: CommandDrawShape, PathID: pathID, Fill: fill, Opacity: opacity}
}
func drawStroke(pathID PathID, stroke *StrokeStyle, opacity float64) RenderCommand {
	return RenderCommand{Type: CommandDrawStroke, PathID: pathID, Stroke: stroke, Opacity: opacity}
}
