package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSessionID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		errMsg  string
		wantErr bool
	}{
		{
			name:    "valid - short id",
			id:      "abc123",
			wantErr: false,
		},
		{
			name:    "valid - uuid",
			id:      "b692f5c0-2d88-4aa1-a9e1-13aa6e4976d5",
			wantErr: false,
		},
		{
			name:    "valid - underscore",
			id:      "team_a_1",
			wantErr: false,
		},
		{
			name:    "valid - max length",
			id:      strings.Repeat("a", 64),
			wantErr: false,
		},
		{
			name:    "invalid - empty",
			id:      "",
			wantErr: true,
			errMsg:  "session id cannot be empty",
		},
		{
			name:    "invalid - too short",
			id:      "ab",
			wantErr: true,
			errMsg:  "at least 3 characters",
		},
		{
			name:    "invalid - too long",
			id:      strings.Repeat("a", 65),
			wantErr: true,
			errMsg:  "must not exceed 64 characters",
		},
		{
			name:    "invalid - slash",
			id:      "abc/123",
			wantErr: true,
			errMsg:  "can only contain",
		},
		{
			name:    "invalid - space",
			id:      "abc 123",
			wantErr: true,
			errMsg:  "can only contain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSessionID(tt.id)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateCallID(t *testing.T) {
	assert.NoError(t, ValidateCallID(99))
	assert.Error(t, ValidateCallID(0))
	assert.Error(t, ValidateCallID(-5))
}

func TestTopic(t *testing.T) {
	assert.Equal(t, "shared_evaluation_abc123", Topic("abc123"))

	id, err := SessionIDFromTopic("shared_evaluation_abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)

	_, err = SessionIDFromTopic("other_abc123")
	assert.Error(t, err)

	_, err = SessionIDFromTopic("shared_evaluation_")
	assert.Error(t, err)
}
