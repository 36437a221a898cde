package sensors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMillidegrees(t *testing.T) {
	tests := []struct {
		input    string
		expected Temperature
	}{
		{"45000\n", 45},
		{"45999", 45},
		{"  38500  \n", 38},
		{"0", 0},
		{"999", 0},
		{"-500", -1},
		{"-2000", -2},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseMillidegrees(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseMillidegrees_NotANumber(t *testing.T) {
	// WHEN
	_, err := ParseMillidegrees("N/A\n")

	// THEN
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "N/A\n", parseErr.Input)
}

func TestParseDegrees_NoConversion(t *testing.T) {
	// WHEN
	result, err := ParseDegrees("62\n")

	// THEN
	require.NoError(t, err)
	assert.Equal(t, Temperature(62), result)
}

func TestParseDegrees_Empty(t *testing.T) {
	// WHEN
	_, err := ParseDegrees("")

	// THEN
	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "C: 45 °C", FormatCPU(45))
	assert.Equal(t, "G: 62 °C", FormatGPU(62))
}

func TestParseAndFormatCPU(t *testing.T) {
	// GIVEN
	raw := "45000\n"

	// WHEN
	value, err := ParseMillidegrees(raw)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, "C: 45 °C", FormatCPU(value))
}
