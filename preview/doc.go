// Package preview is a reference ebiten renderer for the render-command
// stream produced by github.com/vectorframe/animir. It exists to prove the
// wire contract is actually drawable without making rasterization a hard
// dependency of the core package: nothing under animir/ imports ebiten, and
// nothing here reaches back into animir's unexported internals.
package preview
