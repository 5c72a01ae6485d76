package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClock(t *testing.T) {
	var c Clock = RealClock{}
	start := c.Now()
	assert.GreaterOrEqual(t, c.Since(start), time.Duration(0))
}

func TestMockClock(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("steps on every reading", func(t *testing.T) {
		c := NewMockClock(base, time.Second)
		start := c.Now()
		assert.Equal(t, base, start)
		assert.Equal(t, time.Second, c.Since(start))
		assert.Equal(t, base.Add(2*time.Second), c.Now())
	})

	t.Run("advance", func(t *testing.T) {
		c := NewMockClock(base, 0)
		c.Advance(time.Minute)
		assert.Equal(t, base.Add(time.Minute), c.Now())
		assert.Equal(t, time.Duration(0), c.Since(base.Add(time.Minute)))
	})
}
