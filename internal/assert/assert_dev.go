//go:build !release

package assert

import "fmt"

// That panics with the formatted message when cond is false. This is the
// single choke point for every fatal, programmer-error condition in the ecs
// package: invalid entities, duplicate/missing components, deferred-free
// overflow, and oversized views all thread through here so the panic message
// always identifies which invariant fired.
func That(cond bool, format string, args ...any) { //nolint:goprintffuncname // it's ok
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
