package animir

import "fmt"

// ErrorCode identifies a fatal compile error. Each carries a code, a human
// message, and a JSON-path-like pointer to the offending node.
type ErrorCode string

// Fatal compile error codes. Compilation of the offending
// animation aborts — there is no best-effort compile.
const (
	ErrMatteTargetNotFound     ErrorCode = "matteTargetNotFound"
	ErrMatteTargetInvalidOrder ErrorCode = "matteTargetInvalidOrder"
	ErrMediaInputNotInSameComp ErrorCode = "mediaInputNotInSameComp"
	ErrUnsupportedMaskMode     ErrorCode = "unsupportedMaskMode"
	ErrUnsupportedShapeFeature ErrorCode = "unsupportedShapeFeature"
	ErrInvalidKeyframe         ErrorCode = "invalidKeyframe"
)

// CompileError is a fatal error raised while compiling a single animation.
// It satisfies the error interface and carries enough context (a code and a
// JSONPath-like Path) for a caller to locate the offending document node.
type CompileError struct {
	Code    ErrorCode
	Message string
	Path    string // e.g. "layers[3].shapes[0]"
}

func (e *CompileError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("animir: %s: %s (at %s)", e.Code, e.Message, e.Path)
	}
	return fmt.Sprintf("animir: %s: %s", e.Code, e.Message)
}

// newCompileError builds a CompileError with a path.
func newCompileError(code ErrorCode, path, format string, args ...any) *CompileError {
	return &CompileError{Code: code, Message: fmt.Sprintf(format, args...), Path: path}
}
