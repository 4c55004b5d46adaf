package animir

import "testing"

func TestValidateRenderCommandsAcceptsBalancedStream(t *testing.T) {
	cmds := []RenderCommand{
		beginGroup("root"),
		pushTransform(IdentityMatrix),
		beginMask(MaskModeAdd, false, 0, 1),
		drawShape(0, &FillPaint{Color: Color{R: 1}, Opacity: 1}, 1),
		endMask(),
		popTransform(),
		endGroup(),
	}
	if err := (RenderCommandValidator{}).ValidateRenderCommands(cmds); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateRenderCommandsRejectsUnclosedScope(t *testing.T) {
	cmds := []RenderCommand{beginGroup("root"), pushTransform(IdentityMatrix)}
	if err := (RenderCommandValidator{}).ValidateRenderCommands(cmds); err == nil {
		t.Error("expected error for unclosed scopes")
	}
}

func TestValidateRenderCommandsRejectsMismatchedClose(t *testing.T) {
	cmds := []RenderCommand{beginGroup("root"), pushTransform(IdentityMatrix), endGroup(), popTransform()}
	if err := (RenderCommandValidator{}).ValidateRenderCommands(cmds); err == nil {
		t.Error("expected error for mismatched close order")
	}
}

func TestValidateRenderCommandsRejectsSpuriousClose(t *testing.T) {
	cmds := []RenderCommand{endGroup()}
	if err := (RenderCommandValidator{}).ValidateRenderCommands(cmds); err == nil {
		t.Error("expected error for closing a scope that was never opened")
	}
}
