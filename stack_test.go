// stack_test.go — stack capture depth, skipping and frame metadata.
package xgxsuppress

import (
	"strings"
	"testing"
)

func stackGrab(skipExtra int) Stack {
	return captureStackDefault(skipExtra + 1)
}

func stackTestLevel2(skipExtra int) Stack {
	return stackGrab(skipExtra)
}

func stackTestLevel1(skipExtra int) Stack {
	return stackTestLevel2(skipExtra)
}

func TestCaptureStack_UsesDefaultWhenMaxDepthZero(t *testing.T) {
	t.Parallel()

	s := captureStack(0, 0)
	if len(s) == 0 {
		t.Fatalf("expected non-empty stack when maxDepth=0, got 0")
	}
	if len(s) > defaultMaxDepth {
		t.Fatalf("stack length exceeds defaultMaxDepth: len=%d default=%d", len(s), defaultMaxDepth)
	}
}

func TestCaptureStack_RespectsMaxDepthLimit(t *testing.T) {
	t.Parallel()

	const limit = 3
	s := captureStack(0, limit)
	if len(s) == 0 || len(s) > limit {
		t.Fatalf("expected 1..%d frames; got %d", limit, len(s))
	}
}

func TestCaptureStack_SkipExtraSkipsCorrectFrames(t *testing.T) {
	t.Parallel()

	s0 := stackTestLevel1(0)
	if len(s0) == 0 || !strings.HasSuffix(s0[0].Function, "stackTestLevel2") {
		t.Fatalf("expected first frame stackTestLevel2; got %v", s0)
	}

	s1 := stackTestLevel1(1)
	if len(s1) == 0 || !strings.HasSuffix(s1[0].Function, "stackTestLevel1") {
		t.Fatalf("expected first frame stackTestLevel1; got %v", s1)
	}
}

func TestCaptureStack_ReturnsNilWhenNoFramesCaptured(t *testing.T) {
	t.Parallel()

	if s := captureStack(1<<20, 16); s != nil {
		t.Fatalf("expected nil stack for an absurd skip; got len=%d", len(s))
	}
}

func TestStack_MetadataPresence(t *testing.T) {
	t.Parallel()

	s := stackTestLevel1(0)
	for i := 0; i < len(s) && i < 5; i++ {
		fr := s[i]
		if fr.PC == 0 || fr.Function == "" || fr.File == "" || fr.Line <= 0 {
			t.Fatalf("frame %d is missing metadata: %+v", i, fr)
		}
	}
}

func assertionFromHelper() Error {
	return Assertion("helper", nil)
}

func TestAssertion_StackStartsAtCaller(t *testing.T) {
	t.Parallel()

	err := assertionFromHelper().(*assertionErr)
	if len(err.stk) == 0 {
		t.Fatalf("assertion failures must always carry a stack")
	}
	if !strings.HasSuffix(err.stk[0].Function, "assertionFromHelper") {
		t.Fatalf("expected first frame assertionFromHelper; got %q", err.stk[0].Function)
	}
}

func TestInternal_StackStartsAtCaller(t *testing.T) {
	t.Parallel()

	err := Internal(nil).(*failureErr)
	if len(err.stk) == 0 {
		t.Fatalf("Internal must capture a stack")
	}
	if !strings.HasSuffix(err.stk[0].Function, "TestInternal_StackStartsAtCaller") {
		t.Fatalf("expected first frame to be the test; got %q", err.stk[0].Function)
	}
}
