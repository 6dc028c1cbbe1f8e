//go:build debug

package assert

import "fmt"

// Invariant panics when ok is false. Use it for postconditions the code
// itself establishes (contiguous replica indices, sorted output), never to
// validate binding content.
func Invariant(ok bool, msg string) {
	if !ok {
		panic("invariant violated: " + msg)
	}
}

// Invariantf is Invariant with a formatted message. Arguments are only
// formatted on failure.
func Invariantf(ok bool, format string, args ...any) {
	if !ok {
		panic("invariant violated: " + fmt.Sprintf(format, args...))
	}
}
