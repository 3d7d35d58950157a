package numberutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToIntInRange(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "empty uses default", input: "", want: 0},
		{name: "in range", input: "2", want: 2},
		{name: "upper bound", input: "15", want: 15},
		{name: "negative", input: "-1", wantErr: true},
		{name: "above range", input: "16", wantErr: true},
		{name: "not a number", input: "two", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToIntInRange(tt.input, 0, 0, 15)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 1.23, RoundTo(1.2345, 2))
	assert.Equal(t, 0.13, RoundTo(0.125, 2))
	assert.Equal(t, 22, RoundToInt(21.5))
	assert.Equal(t, -3, RoundToInt(-2.5))
}

func TestToOptionalFloat(t *testing.T) {
	got, err := ToOptionalFloat("")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = ToOptionalFloat("-27.10")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.InDelta(t, -27.10, *got, 1e-9)

	_, err = ToOptionalFloat("abc")
	assert.Error(t, err)

	_, err = ToOptionalFloat("NaN")
	assert.Error(t, err)
}
