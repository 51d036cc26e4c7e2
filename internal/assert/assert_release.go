//go:build release

package assert

// That is a no-op in release builds. Callers must not rely on side effects
// of the condition expression; assert.That never evaluates lazily on either
// build, only the panic is compiled out here.
func That(cond bool, format string, args ...any) {}
