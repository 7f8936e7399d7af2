package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListArgv_TargetsNexusSocket(t *testing.T) {
	argv := ListArgv()
	assert.Equal(t, []string{multiplexerBin, "-L", Socket, "list-sessions", "-F", FormatString}, argv)
}

func TestNewArgv_BareSessionName(t *testing.T) {
	argv := NewArgv("build", "", nil)
	assert.Equal(t, []string{multiplexerBin, "-L", Socket, "new-session", "-d", "-s", "build"}, argv)
}

func TestNewArgv_WithWorkingDirAndCommand(t *testing.T) {
	argv := NewArgv("build", "/home/dev", []string{"make", "test"})
	assert.Equal(t, []string{
		multiplexerBin, "-L", Socket, "new-session", "-d", "-s", "build",
		"-c", "/home/dev", "make", "test",
	}, argv)
}

func TestCaptureArgv_VisiblePaneOnly(t *testing.T) {
	argv := CaptureArgv("build", 0)
	assert.Equal(t, []string{multiplexerBin, "-L", Socket, "capture-pane", "-p", "-t", "build"}, argv)
}

func TestCaptureArgv_FullScrollback(t *testing.T) {
	argv := CaptureArgv("build", -1)
	assert.Equal(t, []string{multiplexerBin, "-L", Socket, "capture-pane", "-p", "-t", "build", "-S", "-"}, argv)
}

func TestCaptureArgv_NLines(t *testing.T) {
	argv := CaptureArgv("build", 100)
	assert.Equal(t, []string{multiplexerBin, "-L", Socket, "capture-pane", "-p", "-t", "build", "-S", "-100"}, argv)
}

func TestSendArgv_AppendsEnterByDefault(t *testing.T) {
	argv := SendArgv("build", false, "echo hi")
	assert.Equal(t, []string{multiplexerBin, "-L", Socket, "send-keys", "-t", "build", "echo hi", EnterKey}, argv)
}

func TestSendArgv_RawOmitsEnter(t *testing.T) {
	argv := SendArgv("build", true, "C-c")
	assert.Equal(t, []string{multiplexerBin, "-L", Socket, "send-keys", "-t", "build", "C-c"}, argv)
}

func TestKillArgv(t *testing.T) {
	argv := KillArgv("build")
	assert.Equal(t, []string{multiplexerBin, "-L", Socket, "kill-session", "-t", "build"}, argv)
}

func TestSwitchArgv(t *testing.T) {
	argv := SwitchArgv("build")
	assert.Equal(t, []string{multiplexerBin, "-L", Socket, "switch-client", "-t", "build"}, argv)
}

func TestNewWindowArgv_TargetsGivenSocket(t *testing.T) {
	argv := NewWindowArgv("nx_dash", "pane0", "nexus attach gpu/build")
	assert.Equal(t, []string{multiplexerBin, "-L", "nx_dash", "new-window", "-n", "pane0", "nexus attach gpu/build"}, argv)
}

func TestBindKeyArgv(t *testing.T) {
	argv := BindKeyArgv("nx_dash", "Enter", "nexus-dash-enter-shim.sh")
	assert.Equal(t, []string{
		multiplexerBin, "-L", "nx_dash", "bind-key", "-T", "prefix", "Enter", "run-shell", "nexus-dash-enter-shim.sh",
	}, argv)
}

func TestReadOnlyAttachArgv(t *testing.T) {
	argv := ReadOnlyAttachArgv("nx_dash", "build")
	assert.Equal(t, []string{multiplexerBin, "-L", "nx_dash", "attach-session", "-r", "-t", "build"}, argv)
}
