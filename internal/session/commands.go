package session

import "strconv"

// Socket is the dedicated multiplexer control socket nexus uses for
// fleet-managed sessions -- distinct from a user's personal multiplexer
// namespace.
const Socket = "nexus"

// multiplexerBin is the multiplexer client binary name.
const multiplexerBin = "multiplexer"

// EnterKey is appended to a send-keys argv in non-raw mode.
const EnterKey = "Enter"

func withSocket(socket string, rest ...string) []string {
	argv := []string{multiplexerBin, "-L", socket}
	return append(argv, rest...)
}

// ListArgv builds the argv for the "list" operation against the nexus
// socket, formatted with the pinned FormatString.
func ListArgv() []string {
	return withSocket(Socket, "list-sessions", "-F", FormatString)
}

// NewArgv builds the argv for the "new" operation. workingDir and
// command are optional; when command is non-empty it is appended as the
// session's initial command argv.
func NewArgv(name, workingDir string, command []string) []string {
	argv := withSocket(Socket, "new-session", "-d", "-s", name)
	if workingDir != "" {
		argv = append(argv, "-c", workingDir)
	}
	argv = append(argv, command...)
	return argv
}

// CaptureArgv builds the argv for the "capture" operation. lines < 0
// requests full scrollback; lines == 0 requests the visible pane only;
// lines > 0 requests that many lines from the bottom.
func CaptureArgv(target string, lines int) []string {
	argv := withSocket(Socket, "capture-pane", "-p", "-t", target)
	switch {
	case lines < 0:
		argv = append(argv, "-S", "-")
	case lines > 0:
		argv = append(argv, "-S", "-"+strconv.Itoa(lines))
	}
	return argv
}

// SendArgv builds the argv for the "send" operation. In non-raw mode the
// literal Enter token is appended after the caller's keys.
func SendArgv(target string, raw bool, keys ...string) []string {
	argv := withSocket(Socket, "send-keys", "-t", target)
	argv = append(argv, keys...)
	if !raw {
		argv = append(argv, EnterKey)
	}
	return argv
}

// KillArgv builds the argv for the "kill" operation.
func KillArgv(target string) []string {
	return withSocket(Socket, "kill-session", "-t", target)
}

// SwitchArgv builds the argv for the "switch" operation (attach
// scenario B-local only).
func SwitchArgv(target string) []string {
	return withSocket(Socket, "switch-client", "-t", target)
}

// NewWindowArgv builds the argv for the "new-window" operation on the
// given socket, running shellCmd in the new window. remainOnExit is
// always left at its default (off), so a finished window disappears
// instead of lingering as a dead pane.
func NewWindowArgv(socket, windowName, shellCmd string) []string {
	return withSocket(socket, "new-window", "-n", windowName, shellCmd)
}

// SetPaneOptionArgv builds the argv for tagging a pane with a user
// option (used by the dashboard composer to stamp @nx_target).
func SetPaneOptionArgv(socket, target, option, value string) []string {
	return withSocket(socket, "set-option", "-p", "-t", target, option, value)
}

// SetEnvArgv builds the argv for setting a session environment variable
// (used by the dashboard composer to stamp NX_BIN).
func SetEnvArgv(socket, session, name, value string) []string {
	return withSocket(socket, "set-environment", "-t", session, name, value)
}

// BindKeyArgv builds the argv for binding a key to a shell command
// within the given socket (used by the dashboard composer's Enter shim).
func BindKeyArgv(socket, key, shellCmd string) []string {
	return withSocket(socket, "bind-key", "-T", "prefix", key, "run-shell", shellCmd)
}

// AttachArgv builds the argv for attaching to a session on a socket.
func AttachArgv(socket, target string) []string {
	return withSocket(socket, "attach-session", "-t", target)
}

// ReadOnlyAttachArgv builds the argv for a read-only attach (the
// dashboard's per-pane panes): forbids input and bypasses client-driven
// resize negotiation.
func ReadOnlyAttachArgv(socket, target string) []string {
	return withSocket(socket, "attach-session", "-r", "-t", target)
}

// SplitWindowArgv builds the argv for splitting a new pane in the given
// session/window, running shellCmd.
func SplitWindowArgv(socket, target, shellCmd string) []string {
	return withSocket(socket, "split-window", "-t", target, shellCmd)
}

// SelectLayoutArgv builds the argv applying a tiled layout to a session.
func SelectLayoutArgv(socket, target, layout string) []string {
	return withSocket(socket, "select-layout", "-t", target, layout)
}

// DisplayMessageArgv builds the argv capturing a pane's user option (used
// by the Enter shim to read @nx_target).
func DisplayMessageArgv(socket, option string) []string {
	return withSocket(socket, "display-message", "-p", "#{"+option+"}")
}

// ShowEnvironmentArgv builds the argv reading back a session environment
// variable (used by the Enter shim to read NX_BIN).
func ShowEnvironmentArgv(socket, session, name string) []string {
	return withSocket(socket, "show-environment", "-t", session, name)
}

// DetachClientArgv builds the argv detaching the current client from a
// session.
func DetachClientArgv(socket string) []string {
	return withSocket(socket, "detach-client")
}
