package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	// Message path: no trailing zeros
	assert.Equal(t, "900", FormatAmount(900))
	assert.Equal(t, "150.5", FormatAmount(150.5))
	assert.Equal(t, "0", FormatAmount(0))
}

func TestFormatAmount2(t *testing.T) {
	// Printable path: always two decimals
	assert.Equal(t, "900.00", FormatAmount2(900))
	assert.Equal(t, "150.50", FormatAmount2(150.5))
	assert.Equal(t, "0.00", FormatAmount2(0))
}
