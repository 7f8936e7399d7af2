//go:build !unix

package attach

import (
	"os"
	"os/exec"
)

// execve has no native process-replacement primitive on this platform.
// It spawns the child with inherited stdio instead and blocks the
// parent until the child exits, accepting a one-process-deep stack
// rather than a true exec.
func execve(argv []string) error {
	path, err := lookPath(argv[0])
	if err != nil {
		return err
	}

	cmd := exec.Command(path, argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
