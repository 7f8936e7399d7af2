//go:build unix

package attach

import (
	"os"

	"golang.org/x/sys/unix"
)

// execve replaces the current process image with argv, using the POSIX
// execve(2) primitive directly so there is no intermediate parent
// process left to own signal delivery or window resizing.
func execve(argv []string) error {
	path, err := lookPath(argv[0])
	if err != nil {
		return err
	}
	return unix.Exec(path, argv, os.Environ())
}
