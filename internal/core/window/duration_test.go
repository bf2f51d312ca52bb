package window

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMillis(t *testing.T) {
	tests := []struct {
		name    string
		input   time.Duration
		want    int64
		wantErr bool
	}{
		{
			name:  "zero",
			input: 0,
			want:  0,
		},
		{
			name:  "whole milliseconds",
			input: 5 * time.Millisecond,
			want:  5,
		},
		{
			name:  "whole seconds",
			input: 30 * time.Second,
			want:  30000,
		},
		{
			name:  "negative whole milliseconds",
			input: -5 * time.Millisecond,
			want:  -5,
		},
		{
			name:    "sub-millisecond remainder",
			input:   time.Millisecond + time.Microsecond,
			wantErr: true,
		},
		{
			name:    "microseconds only",
			input:   500 * time.Microsecond,
			wantErr: true,
		},
		{
			name:    "single nanosecond",
			input:   time.Nanosecond,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms, err := toMillis(tt.input, "param")
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ms)
		})
	}
}

func TestValidatePositiveMillis(t *testing.T) {
	ms, err := validatePositiveMillis(time.Millisecond, "gap")
	require.NoError(t, err)
	assert.Equal(t, int64(1), ms)

	for _, d := range []time.Duration{0, -time.Millisecond} {
		_, err := validatePositiveMillis(d, "gap")
		require.Error(t, err)

		var invalid *InvalidArgumentError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "gap", invalid.Param)
	}
}

func TestValidateNonNegativeMillis(t *testing.T) {
	ms, err := validateNonNegativeMillis(0, "grace")
	require.NoError(t, err)
	assert.Equal(t, int64(0), ms)

	_, err = validateNonNegativeMillis(-time.Millisecond, "grace")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
