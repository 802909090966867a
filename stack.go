// stack.go — stack capture for errors that print a trace.
//
// Uses runtime.Callers + runtime.CallersFrames so inlined frames resolve
// correctly. Capture is opt-in (WithStack) except for assertion failures,
// which always record where the broken contract was detected.
package xgxsuppress

import (
	"runtime"
)

// Frame is a single call site in a stack trace.
type Frame struct {
	PC       uintptr
	File     string
	Line     int
	Function string
}

// Stack is a slice of Frames from the most recent call outward.
type Stack []Frame

const defaultMaxDepth = 64

// captureStackDefault captures a stack skipping 'skip' frames beyond its
// caller, bounded by defaultMaxDepth.
func captureStackDefault(skip int) Stack {
	return captureStack(skip, defaultMaxDepth)
}

// captureStack records up to maxDepth frames. The +3 skips runtime.Callers,
// captureStack and captureStackDefault: with skip 0 the first frame is the
// function that called captureStackDefault.
func captureStack(skip, maxDepth int) Stack {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	pc := make([]uintptr, maxDepth)
	n := runtime.Callers(skip+3, pc)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pc[:n])
	out := make(Stack, 0, n)
	for {
		fr, more := frames.Next()
		out = append(out, Frame{PC: fr.PC, File: fr.File, Line: fr.Line, Function: fr.Function})
		if !more {
			break
		}
	}
	return out
}
