//go:build !windows

package edit

// POSIX terminals interpret SGR and cursor-movement escapes natively, so
// wrapOutputForPlatform is left nil and wrapOutput is a no-op.
