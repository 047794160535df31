//go:build !linux && !freebsd && !darwin

package stream

import "os"

// fdatasync performs file descriptor sync through the portable fallback.
func fdatasync(f *os.File) error {
	return f.Sync()
}
