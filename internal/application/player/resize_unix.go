//go:build unix

package player

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// notifyResize reports terminal size changes
func notifyResize() (<-chan os.Signal, func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, unix.SIGWINCH)
	return ch, func() { signal.Stop(ch) }
}
