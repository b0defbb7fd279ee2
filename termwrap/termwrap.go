// Package termwrap wraps long rendered numbers to the attached
// terminal's width, querying it directly via the TIOCGWINSZ ioctl
// (golang.org/x/sys/unix) instead of shelling out to `stty` or parsing
// $COLUMNS, the way the teacher's CLI layer favors direct syscalls over
// subprocess calls elsewhere in its command set.
package termwrap

import (
	"strings"

	"golang.org/x/sys/unix"
)

// DefaultWidth is used whenever the ioctl fails (output redirected to a
// file or pipe, for instance).
const DefaultWidth = 80

// Width returns the terminal width in columns backing fd, or DefaultWidth
// if fd is not a terminal or the ioctl fails.
func Width(fd int) int {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return DefaultWidth
	}
	return int(ws.Col)
}

// Wrap breaks s into width-column chunks joined by newlines. It never
// splits in the middle of a multi-byte rune boundary issue because the
// renderer's output is pure ASCII (digits, '-', '.').
func Wrap(s string, width int) string {
	if width <= 0 || len(s) <= width {
		return s
	}
	var b strings.Builder
	for len(s) > width {
		b.WriteString(s[:width])
		b.WriteByte('\n')
		s = s[width:]
	}
	b.WriteString(s)
	return b.String()
}
