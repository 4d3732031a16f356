package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "checksummed address lowercases",
			input: "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
			want:  "0x70997970c51812dc3a010c7d01b50e0d17dc79c8",
		},
		{
			name:  "lowercase passes through",
			input: "0x3c44cdddb6a900fa2b585dd299e03d12fa4293bc",
			want:  "0x3c44cdddb6a900fa2b585dd299e03d12fa4293bc",
		},
		{
			name:    "too short",
			input:   "0x1234",
			wantErr: true,
		},
		{
			name:    "not hex",
			input:   "0xZZ997970c51812dc3a010c7d01b50e0d17dc79c8",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeAddress(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAddress)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
