package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestVirtualAfterFunc(t *testing.T) {
	clock := NewVirtual()
	var fired []string

	clock.AfterFunc(2*time.Second, func() { fired = append(fired, "b") })
	clock.AfterFunc(1*time.Second, func() { fired = append(fired, "a") })
	clock.AfterFunc(2*time.Second, func() { fired = append(fired, "c") })

	clock.Advance(1500 * time.Millisecond)
	assert.Equal(t, []string{"a"}, fired)

	clock.Advance(500 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, fired)
	assert.Equal(t, 0, clock.Pending())
}

func TestVirtualEvery(t *testing.T) {
	clock := NewVirtual()
	ticks := 0
	timer := clock.Every(time.Second, func() { ticks++ })

	clock.Advance(3 * time.Second)
	assert.Equal(t, 3, ticks)

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())

	clock.Advance(5 * time.Second)
	assert.Equal(t, 3, ticks)
}

func TestVirtualCallbackSchedulesWithinWindow(t *testing.T) {
	clock := NewVirtual()
	var order []int

	clock.AfterFunc(time.Second, func() {
		order = append(order, 1)
		clock.AfterFunc(time.Second, func() { order = append(order, 2) })
	})

	clock.Advance(2 * time.Second)
	assert.Equal(t, []int{1, 2}, order)
}

func TestVirtualStopInsideCallback(t *testing.T) {
	clock := NewVirtual()
	ticks := 0
	var timer Timer
	timer = clock.Every(time.Second, func() {
		ticks++
		if ticks == 2 {
			timer.Stop()
		}
	})

	clock.Advance(10 * time.Second)
	assert.Equal(t, 2, ticks)
	assert.Equal(t, 0, clock.Pending())
}

func TestVirtualNowAdvances(t *testing.T) {
	clock := NewVirtual()
	start := clock.Now()
	clock.Advance(90 * time.Second)
	assert.Equal(t, 90*time.Second, clock.Now().Sub(start))
}

func TestRealEveryStopsWithoutLeaking(t *testing.T) {
	defer goleak.VerifyNone(t)

	var ticks atomic.Int32
	timer := NewReal().Every(5*time.Millisecond, func() { ticks.Add(1) })

	assert.Eventually(t, func() bool { return ticks.Load() >= 2 }, time.Second, 5*time.Millisecond)
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
}

func TestRealTickerDropsBufferedTickAfterStop(t *testing.T) {
	for i := 0; i < 100; i++ {
		c := make(chan time.Time, 1)
		c <- time.Now()
		tk := &ticker{ticker: time.NewTicker(time.Hour), done: make(chan struct{})}
		tk.Stop()

		fired := false
		tk.loop(c, func() { fired = true })
		assert.False(t, fired, "iteration %d", i)
	}
}
