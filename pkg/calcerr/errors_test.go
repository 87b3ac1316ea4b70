package calcerr

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{Newf(Lexing, "unexpected characters: '%s'", "@"), "LexingError: unexpected characters: '@'"},
		{At(Parsing, 4, "expected ')'"), "ParsingError: expected ')' at column 4"},
		{Newf(Runtime, "division by zero"), "RuntimeError: division by zero"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestErrorsIs(t *testing.T) {
	wrapped := fmt.Errorf("evaluating %q: %w", "5/0", Newf(Runtime, "division by zero"))

	if !errors.Is(wrapped, ErrRuntime) {
		t.Errorf("expected wrapped runtime error to match ErrRuntime")
	}
	if errors.Is(wrapped, ErrParse) {
		t.Errorf("runtime error must not match ErrParse")
	}

	kind, ok := KindOf(wrapped)
	if !ok || kind != Runtime {
		t.Errorf("KindOf = (%v, %t), want (RuntimeError, true)", kind, ok)
	}

	if _, ok := KindOf(errors.New("plain")); ok {
		t.Errorf("KindOf on a plain error should report ok=false")
	}
}

func TestKindString(t *testing.T) {
	if got := Kind(42).String(); got != "Kind(42)" {
		t.Errorf("unknown kind String() = %q", got)
	}
}
