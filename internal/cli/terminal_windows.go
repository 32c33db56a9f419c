//go:build windows

package cli

import "golang.org/x/sys/windows"

// IsTerminal reports whether the file descriptor is attached to a
// console. Diagnostics use this to decide whether to emit ANSI color.
func IsTerminal(fd uintptr) bool {
	var mode uint32
	return windows.GetConsoleMode(windows.Handle(fd), &mode) == nil
}
