package pager

import (
	"math"
	"time"
)

const (
	// EaseDuration is the length of the spring-back animation
	EaseDuration = 300 * time.Millisecond
	// EaseTick is the animation frame interval (60Hz)
	EaseTick = 16 * time.Millisecond
)

// EaseOut eases from b towards b+c over d: c*((t/d-1)^5 + 1) + b.
// EaseOut(0, b, c, d) == b and EaseOut(d, b, c, d) == b+c
func EaseOut(t, b, c, d float64) float64 {
	u := t/d - 1
	return c*(u*u*u*u*u+1) + b
}

// Logistic compresses x into the open interval (-0.5, 0.5)
func Logistic(x float64) float64 {
	y := 1/(1+math.Exp(-x)) - 0.5
	// float64 saturates to exactly ±0.5 for |x| > ~37; keep the bound open
	return math.Max(-maxLogistic, math.Min(y, maxLogistic))
}

var maxLogistic = math.Nextafter(0.5, 0)

// startEasing begins a spring-back from the current percentage to zero
func (c *Controller) startEasing() {
	c.cancelEasing()
	if c.closed {
		return
	}
	c.accumulated = 0
	c.easeStart = c.sched.Now()
	c.easeOrigin = c.percentage
	c.easing = true
	c.log.WithField("origin", c.easeOrigin).Debug("pager: easing started")
	c.easeTimer = c.sched.AfterFunc(EaseTick, c.easeTick)
}

// cancelEasing stops the animation timer and reports whether a session was
// in progress
func (c *Controller) cancelEasing() bool {
	if c.easeTimer != nil {
		c.easeTimer.Stop()
		c.easeTimer = nil
	}
	was := c.easing
	c.easing = false
	return was
}

func (c *Controller) easeTick() {
	c.easeTimer = nil
	elapsed := c.sched.Now().Sub(c.easeStart)
	if elapsed < 0 {
		elapsed = 0
	}
	done := elapsed >= EaseDuration
	if done {
		elapsed = EaseDuration
	}

	c.percentage = EaseOut(float64(elapsed), c.easeOrigin, -c.easeOrigin, float64(EaseDuration))
	c.opts.OnScroll(c.percentage, c.page)

	// OnScroll may have cancelled or restarted the session
	if !c.easing || c.easeTimer != nil {
		return
	}
	if !done {
		c.easeTimer = c.sched.AfterFunc(EaseTick, c.easeTick)
		return
	}

	c.easing = false
	c.log.Debug("pager: easing finished")
	c.finishScroll()
}
