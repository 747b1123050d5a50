package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"local with leading zero", "0821110001", "+27821110001"},
		{"already normalized", "+27821110001", "+27821110001"},
		{"with spaces", "082 111 0001", "+27821110001"},
		{"with hyphens", "082-111-0001", "+27821110001"},
		{"surrounding whitespace", "  0821110001  ", "+27821110001"},
		{"no leading zero", "821110001", "+27821110001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizePhoneInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"too short", "+2782111"},
		{"too long", "+278211100012345"},
		{"short local", "08211"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizePhone(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "12 characters")
		})
	}
}
