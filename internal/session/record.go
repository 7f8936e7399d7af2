// Package session defines the pinned delimited record format read from
// the multiplexer's "list" operation, its total parser, and the
// command-builder surface for every multiplexer sub-operation the core
// uses.
package session

import (
	"strconv"
	"strings"

	"github.com/nexuscli/nexus/internal/nexuserrors"
)

// Delimiter separates fields within one record line.
const Delimiter = "|"

// fieldCount is the fixed, non-negotiable number of fields per record.
const fieldCount = 8

// FormatString is the multiplexer format string that produces the pinned
// layout, one field per #{...} token in fixed order.
const FormatString = "#{session_name}|#{session_windows}|#{session_attached}|" +
	"#{pane_current_path}|#{pane_current_command}|#{pane_pid}|#{session_dead}|#{session_exit}"

// Record is one row of live state on a node.
type Record struct {
	Name             string
	Windows          int
	Attached         int
	WorkingDirectory string
	Command          string
	PID              int
	IsDead           bool
	ExitStatus       *int
}

// ParseListOutput parses the raw output of the "list" operation into a
// slice of Record, in input order. Empty input yields an empty,
// non-nil-error slice. Any line that does not split into exactly
// fieldCount fields, or whose numeric fields fail to parse, or whose
// is_dead/exit_status pairing is inconsistent, is a fatal
// FormatParseError -- the whole call fails, it does not silently skip
// the bad line.
func ParseListOutput(raw string) ([]Record, error) {
	lines := splitNonEmptyLines(raw)
	records := make([]Record, 0, len(lines))

	for _, line := range lines {
		rec, err := parseLine(line)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func splitNonEmptyLines(raw string) []string {
	all := strings.Split(raw, "\n")
	lines := make([]string, 0, len(all))
	for _, l := range all {
		if l == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

func parseLine(line string) (Record, error) {
	fields := strings.Split(line, Delimiter)
	if len(fields) != fieldCount {
		return Record{}, nexuserrors.NewFormatParseError(
			"session record does not have exactly "+strconv.Itoa(fieldCount)+" fields: "+line, nil)
	}

	name := fields[0]
	if name == "" {
		return Record{}, nexuserrors.NewFormatParseError("session record has empty name: "+line, nil)
	}

	windows, err := parseInt(fields[1])
	if err != nil {
		return Record{}, nexuserrors.NewFormatParseError("invalid windows field: "+line, err)
	}

	attached, err := parseInt(fields[2])
	if err != nil {
		return Record{}, nexuserrors.NewFormatParseError("invalid attached field: "+line, err)
	}

	workingDirectory := fields[3]

	command := fields[4]

	pid, err := parseInt(fields[5])
	if err != nil {
		return Record{}, nexuserrors.NewFormatParseError("invalid pid field: "+line, err)
	}

	isDead, err := parseBool01(fields[6])
	if err != nil {
		return Record{}, nexuserrors.NewFormatParseError("invalid is_dead field: "+line, err)
	}

	var exitStatus *int
	if isDead {
		if fields[7] == "" {
			return Record{}, nexuserrors.NewFormatParseError(
				"session record is dead but has no exit_status: "+line, nil)
		}
		status, err := parseInt(fields[7])
		if err != nil {
			return Record{}, nexuserrors.NewFormatParseError("invalid exit_status field: "+line, err)
		}
		exitStatus = &status
	} else if fields[7] != "" {
		return Record{}, nexuserrors.NewFormatParseError(
			"session record is alive but has an exit_status: "+line, nil)
	}

	return Record{
		Name:             name,
		Windows:          windows,
		Attached:         attached,
		WorkingDirectory: workingDirectory,
		Command:          command,
		PID:              pid,
		IsDead:           isDead,
		ExitStatus:       exitStatus,
	}, nil
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(s)
}

func parseBool01(s string) (bool, error) {
	switch s {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, strconv.ErrSyntax
	}
}
