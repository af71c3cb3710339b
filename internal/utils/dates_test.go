package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2026-09-15"))
	assert.False(t, ValidDate("15/09/2026"))
	assert.False(t, ValidDate(""))
	assert.False(t, ValidDate("2026-13-40"))
}

func TestBlockedDatesWindowSpans180Days(t *testing.T) {
	from, to := BlockedDatesWindow()

	start, err := time.Parse(DateLayout, from)
	assert.NoError(t, err)
	end, err := time.Parse(DateLayout, to)
	assert.NoError(t, err)

	assert.Equal(t, start.AddDate(0, 0, 180), end)
}
