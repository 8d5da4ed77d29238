package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.56, Round2(10.555))
	assert.Equal(t, 10.55, Round2(10.554))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, -2.35, Round2(-2.345))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$49.99", FormatPrice(49.99))
	assert.Equal(t, "$1,234.56", FormatPrice(1234.555))
	assert.Equal(t, "$0.00", FormatPrice(0))
}
