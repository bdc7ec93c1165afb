package timer_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medcare-web/medcare/pkg/timer"
)

var epoch = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

func TestManualClock(t *testing.T) {
	t.Parallel()

	t.Run("fires due timers in order", func(t *testing.T) {
		clock := timer.NewManualClock(epoch)
		var order []string
		clock.AfterFunc(2*time.Second, func() { order = append(order, "b") })
		clock.AfterFunc(1*time.Second, func() { order = append(order, "a") })
		clock.AfterFunc(5*time.Second, func() { order = append(order, "c") })

		clock.Advance(2 * time.Second)
		assert.Equal(t, []string{"a", "b"}, order)
		assert.Equal(t, epoch.Add(2*time.Second), clock.Now())
		assert.Equal(t, 1, clock.Pending())
	})

	t.Run("stopped timer never fires", func(t *testing.T) {
		clock := timer.NewManualClock(epoch)
		fired := false
		tm := clock.AfterFunc(time.Second, func() { fired = true })

		assert.True(t, tm.Stop())
		assert.False(t, tm.Stop())
		clock.Advance(time.Minute)
		assert.False(t, fired)
	})

	t.Run("timer fires once", func(t *testing.T) {
		clock := timer.NewManualClock(epoch)
		count := 0
		tm := clock.AfterFunc(time.Second, func() { count++ })

		clock.Advance(time.Second)
		clock.Advance(time.Second)
		assert.Equal(t, 1, count)
		assert.False(t, tm.Stop())
	})

	t.Run("callbacks scheduled while advancing fire if due", func(t *testing.T) {
		clock := timer.NewManualClock(epoch)
		var at []time.Time
		clock.AfterFunc(time.Second, func() {
			at = append(at, clock.Now())
			clock.AfterFunc(time.Second, func() { at = append(at, clock.Now()) })
		})

		clock.Advance(3 * time.Second)
		assert.Equal(t, []time.Time{epoch.Add(time.Second), epoch.Add(2 * time.Second)}, at)
		assert.Equal(t, epoch.Add(3*time.Second), clock.Now())
	})
}

func TestRealClock(t *testing.T) {
	t.Parallel()

	clock := timer.Real()
	done := make(chan struct{})
	clock.AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("real clock timer did not fire")
	}
	assert.WithinDuration(t, time.Now(), clock.Now(), time.Second)
}

func TestDebouncer(t *testing.T) {
	t.Parallel()

	t.Run("fires once after quiet period", func(t *testing.T) {
		clock := timer.NewManualClock(epoch)
		d := timer.NewDebouncer(300*time.Millisecond, timer.WithClock(clock))

		var got []string
		for _, term := range []string{"c", "ca", "car"} {
			d.Trigger(func() { got = append(got, term) })
			clock.Advance(100 * time.Millisecond)
		}
		assert.Empty(t, got)
		assert.True(t, d.Pending())

		clock.Advance(200 * time.Millisecond)
		assert.Equal(t, []string{"car"}, got)
		assert.False(t, d.Pending())

		clock.Advance(time.Second)
		assert.Equal(t, []string{"car"}, got)
	})

	t.Run("cancel drops pending callback", func(t *testing.T) {
		clock := timer.NewManualClock(epoch)
		d := timer.NewDebouncer(300*time.Millisecond, timer.WithClock(clock))

		fired := false
		d.Trigger(func() { fired = true })
		assert.True(t, d.Cancel())
		assert.False(t, d.Cancel())

		clock.Advance(time.Second)
		assert.False(t, fired)
	})

	t.Run("works with the real clock", func(t *testing.T) {
		d := timer.NewDebouncer(5 * time.Millisecond)
		var count atomic.Int32
		done := make(chan struct{})
		d.Trigger(func() { count.Add(1) })
		d.Trigger(func() { count.Add(1); close(done) })

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("debounced callback did not fire")
		}
		time.Sleep(20 * time.Millisecond)
		assert.Equal(t, int32(1), count.Load())
	})
}

func TestInterval(t *testing.T) {
	t.Parallel()

	t.Run("ticks every period while running", func(t *testing.T) {
		clock := timer.NewManualClock(epoch)
		ticks := 0
		iv := timer.NewInterval(5*time.Second, func() { ticks++ }, timer.WithClock(clock))

		clock.Advance(10 * time.Second)
		assert.Equal(t, 0, ticks, "not started")

		iv.Start()
		iv.Start()
		require.True(t, iv.Running())
		clock.Advance(15 * time.Second)
		assert.Equal(t, 3, ticks)
	})

	t.Run("restart resets the period", func(t *testing.T) {
		clock := timer.NewManualClock(epoch)
		ticks := 0
		iv := timer.NewInterval(5*time.Second, func() { ticks++ }, timer.WithClock(clock))
		iv.Start()

		clock.Advance(4 * time.Second)
		iv.Restart()
		clock.Advance(4 * time.Second)
		assert.Equal(t, 0, ticks)

		clock.Advance(time.Second)
		assert.Equal(t, 1, ticks)
	})

	t.Run("stop cancels pending tick", func(t *testing.T) {
		clock := timer.NewManualClock(epoch)
		ticks := 0
		iv := timer.NewInterval(5*time.Second, func() { ticks++ }, timer.WithClock(clock))
		iv.Start()

		assert.True(t, iv.Stop())
		assert.False(t, iv.Stop())
		clock.Advance(time.Minute)
		assert.Equal(t, 0, ticks)
		assert.Equal(t, 0, clock.Pending())
	})
}
