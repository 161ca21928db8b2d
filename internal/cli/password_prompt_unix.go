//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package cli

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// readPasswordNoEcho clears ECHO on the terminal for the duration of one line.
func readPasswordNoEcho(stdin *os.File) ([]byte, error) {
	if stdin == nil {
		return nil, errors.New("stdin unavailable")
	}

	fd := int(stdin.Fd())
	state, err := unix.IoctlGetTermios(fd, termiosReadRequest)
	if err != nil {
		return nil, err
	}
	restore := *state
	silent := restore
	silent.Lflag &^= unix.ECHO
	if err := unix.IoctlSetTermios(fd, termiosWriteRequest, &silent); err != nil {
		return nil, err
	}
	defer func() {
		_ = unix.IoctlSetTermios(fd, termiosWriteRequest, &restore)
	}()

	return readSecretLine(stdin)
}
