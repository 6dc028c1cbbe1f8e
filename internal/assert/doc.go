// Package assert provides invariant checks that are compiled in only for
// builds tagged "debug". Release builds get no-op stubs.
//
// Run the checks with:
//
//	go test -tags debug ./...
package assert
