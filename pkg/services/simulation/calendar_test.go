package simulation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthLabels(t *testing.T) {
	t.Run("starts at january", func(t *testing.T) {
		assert.Equal(t, []string{"Jan", "Feb", "Mar"}, MonthLabels(time.January, 3))
	})

	t.Run("wraps after december", func(t *testing.T) {
		labels := MonthLabels(time.November, 4)
		assert.Equal(t, []string{"Nov", "Dec", "Jan", "Feb"}, labels)
	})

	t.Run("invalid start falls back to january", func(t *testing.T) {
		assert.Equal(t, "Jan", MonthLabels(time.Month(0), 1)[0])
		assert.Equal(t, "Jan", MonthLabels(time.Month(13), 1)[0])
	})

	t.Run("empty horizon", func(t *testing.T) {
		assert.Empty(t, MonthLabels(time.January, 0))
	})
}
