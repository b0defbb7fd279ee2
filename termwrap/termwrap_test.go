package termwrap

import "testing"

func TestWrapShortString(t *testing.T) {
	got := Wrap("12345", 80)
	if got != "12345" {
		t.Errorf("got %q, want unchanged string", got)
	}
}

func TestWrapLongString(t *testing.T) {
	got := Wrap("123456789", 4)
	want := "1234\n5678\n9"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWrapZeroWidth(t *testing.T) {
	got := Wrap("12345", 0)
	if got != "12345" {
		t.Errorf("width<=0 should be a no-op, got %q", got)
	}
}

func TestWidthFallsBackWhenNotATerminal(t *testing.T) {
	// fd 999 is never a valid terminal descriptor in a test process.
	if got := Width(999); got != DefaultWidth {
		t.Errorf("Width(999) = %d, want fallback %d", got, DefaultWidth)
	}
}
