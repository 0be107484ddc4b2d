package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateRange(t *testing.T) {
	from, to := DateRange(30)

	fromDate, err := time.Parse(DateLayout, from)
	require.NoError(t, err)
	toDate, err := time.Parse(DateLayout, to)
	require.NoError(t, err)

	assert.Equal(t, time.Now().Format(DateLayout), to)
	assert.Equal(t, 30*24*time.Hour, toDate.Sub(fromDate))
}

func TestDateRangeZeroDays(t *testing.T) {
	from, to := DateRange(0)
	assert.Equal(t, from, to)
}
