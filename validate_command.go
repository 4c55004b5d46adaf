package animir

import "fmt"

// RenderCommandValidator checks that a render-command stream's scopes are
// balanced: every pushTransform/pushClipRect/beginMask/beginMatte/beginGroup
// has a matching pop/end in the right order, and the stream never closes a
// scope it didn't open.
type RenderCommandValidator struct{}

// ValidateRenderCommands returns an error describing the first imbalance
// found, or nil if the stream is well-formed.
func (RenderCommandValidator) ValidateRenderCommands(cmds []RenderCommand) error {
	var stack []CommandType
	for i, c := range cmds {
		switch c.Type {
		case CommandBeginGroup, CommandPushTransform, CommandPushClipRect, CommandBeginMask, CommandBeginMatte:
			stack = append(stack, closingOf(c.Type))
		case CommandEndGroup, CommandPopTransform, CommandPopClipRect, CommandEndMask, CommandEndMatte:
			if len(stack) == 0 {
				return fmt.Errorf("animir: command[%d]: unmatched %v with no open scope", i, c.Type)
			}
			top := stack[len(stack)-1]
			if top != c.Type {
				return fmt.Errorf("animir: command[%d]: expected %v to close innermost scope, got %v", i, top, c.Type)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) != 0 {
		return fmt.Errorf("animir: stream ends with %d unclosed scope(s)", len(stack))
	}
	return isBalanced(cmds)
}

// closingOf returns the CommandType that must close a given opening type.
func closingOf(open CommandType) CommandType {
	switch open {
	case CommandBeginGroup:
		return CommandEndGroup
	case CommandPushTransform:
		return CommandPopTransform
	case CommandPushClipRect:
		return CommandPopClipRect
	case CommandBeginMask:
		return CommandEndMask
	case CommandBeginMatte:
		return CommandEndMatte
	default:
		return 0
	}
}

// isBalanced simulates the scope stack a second time with simple counters,
// as a cheap independent cross-check of the stack-based walk above (two
// different implementations of the same invariant catch more bugs than
// one implementation run twice).
func isBalanced(cmds []RenderCommand) error {
	groups, transforms, clips, masks, mattes := 0, 0, 0, 0, 0
	for _, c := range cmds {
		switch c.Type {
		case CommandBeginGroup:
			groups++
		case CommandEndGroup:
			groups--
		case CommandPushTransform:
			transforms++
		case CommandPopTransform:
			transforms--
		case CommandPushClipRect:
			clips++
		case CommandPopClipRect:
			clips--
		case CommandBeginMask:
			masks++
		case CommandEndMask:
			masks--
		case CommandBeginMatte:
			mattes++
		case CommandEndMatte:
			mattes--
		}
		if groups < 0 || transforms < 0 || clips < 0 || masks < 0 || mattes < 0 {
			return fmt.Errorf("animir: command stream closes a scope that was never opened")
		}
	}
	if groups != 0 || transforms != 0 || clips != 0 || masks != 0 || mattes != 0 {
		return fmt.Errorf("animir: command stream has unbalanced scopes: groups=%d transforms=%d clips=%d masks=%d mattes=%d", groups, transforms, clips, masks, mattes)
	}
	return nil
}
