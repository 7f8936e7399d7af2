package nexuserrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "with cause",
			err:  &Error{Type: TypeAmbiguousSession, Message: "multiple matches", Cause: errors.New("picker cancelled")},
			want: "ambiguous_session: multiple matches: picker cancelled",
		},
		{
			name: "without cause",
			err:  &Error{Type: TypeSessionNotFound, Message: "no such session"},
			want: "session_not_found: no such session",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := New(TypeInternal, "test", cause)
	assert.Equal(t, cause, err.Unwrap())

	noCause := New(TypeInternal, "test", nil)
	assert.Nil(t, noCause.Unwrap())
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		t    Type
		want int
	}{
		{TypeSessionNotFound, 1},
		{TypeAmbiguousSession, 1},
		{TypeUnknownNode, 1},
		{TypeMissingDependency, 1},
		{TypeDuplicateSession, 1},
		{TypeFormatParseError, 2},
		{TypeInternal, 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExitCode(tt.t), "type %s", tt.t)
	}
}

func TestConstructors(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")
	tests := []struct {
		name string
		err  *Error
		want Type
	}{
		{"SessionNotFound", NewSessionNotFound("m", cause), TypeSessionNotFound},
		{"AmbiguousSession", NewAmbiguousSession("m", cause), TypeAmbiguousSession},
		{"UnknownNode", NewUnknownNode("m", cause), TypeUnknownNode},
		{"MissingDependency", NewMissingDependency("m", cause), TypeMissingDependency},
		{"DuplicateSession", NewDuplicateSession("m", cause), TypeDuplicateSession},
		{"FormatParseError", NewFormatParseError("m", cause), TypeFormatParseError},
		{"Internal", NewInternal("m", cause), TypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Type)
			assert.Equal(t, "m", tt.err.Message)
			assert.Equal(t, cause, tt.err.Cause)
		})
	}
}
