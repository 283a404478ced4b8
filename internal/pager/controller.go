package pager

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	// ErrInvalidOptions is returned by New for out-of-range options
	ErrInvalidOptions = errors.New("invalid pager options")
	// ErrPageOutOfRange is returned by Reposition for an index outside the deck
	ErrPageOutOfRange = errors.New("page out of range")
)

// Default option values applied to zero-valued fields
const (
	DefaultPageHeight      = 100.0
	DefaultDeltaField      = "deltaY"
	DefaultScrollStopDelay = 150 * time.Millisecond
)

// ScrollFunc receives the travel percentage and the current page
type ScrollFunc func(percentage float64, page int)

// PageChangeFunc receives the page left and the page entered
type PageChangeFunc func(previous, current int)

// Options configures a Controller. Zero-valued fields take the defaults
type Options struct {
	TotalPages      int
	PageHeight      float64
	DeltaField      string
	StopAtPage      bool
	Momentum        bool
	EaseBack        bool
	ScrollStopDelay time.Duration

	OnScrollStart ScrollFunc
	OnScroll      ScrollFunc
	OnScrollStop  ScrollFunc
	OnPageChange  PageChangeFunc

	Logger logrus.FieldLogger
}

// withDefaults fills zero values and validates the rest
func (o Options) withDefaults() (Options, error) {
	if o.TotalPages < 0 {
		return o, fmt.Errorf("%w: total pages %d is negative", ErrInvalidOptions, o.TotalPages)
	}
	if math.IsNaN(o.PageHeight) || math.IsInf(o.PageHeight, 0) || o.PageHeight < 0 {
		return o, fmt.Errorf("%w: page height %v must be a positive number", ErrInvalidOptions, o.PageHeight)
	}
	if o.ScrollStopDelay < 0 {
		return o, fmt.Errorf("%w: scroll stop delay %v is negative", ErrInvalidOptions, o.ScrollStopDelay)
	}

	if o.PageHeight == 0 {
		o.PageHeight = DefaultPageHeight
	}
	if o.DeltaField == "" {
		o.DeltaField = DefaultDeltaField
	}
	if o.ScrollStopDelay == 0 {
		o.ScrollStopDelay = DefaultScrollStopDelay
	}
	if o.OnScrollStart == nil {
		o.OnScrollStart = func(float64, int) {}
	}
	if o.OnScroll == nil {
		o.OnScroll = func(float64, int) {}
	}
	if o.OnScrollStop == nil {
		o.OnScrollStop = func(float64, int) {}
	}
	if o.OnPageChange == nil {
		o.OnPageChange = func(int, int) {}
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	return o, nil
}

// Result tells the caller what HandleScroll did with an event
type Result int

const (
	// Handled means the event was reduced into the controller state
	Handled Result = iota
	// Disabled means the controller is disabled and ignored the event
	Disabled
	// PageLocked means the page lock swallowed the event
	PageLocked
	// NoDelta means the event did not carry a finite value in the
	// configured delta field
	NoDelta
	// Closed means Close was called and the event was ignored
	Closed
)

func (r Result) String() string {
	switch r {
	case Handled:
		return "handled"
	case Disabled:
		return "disabled"
	case PageLocked:
		return "page-locked"
	case NoDelta:
		return "no-delta"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

type guardState int

const (
	guardNone guardState = iota
	guardActive
	guardConsumed
)

// Controller reduces wheel deltas into a page index. It is not safe for
// concurrent use; all calls and scheduler callbacks must be serial
type Controller struct {
	opts  Options
	sched Scheduler
	log   logrus.FieldLogger

	page        int
	accumulated float64
	percentage  float64
	scrolling   bool
	disabled    bool
	closed      bool
	guard       guardState

	stop *Debouncer

	easing     bool
	easeStart  time.Time
	easeOrigin float64
	easeTimer  Timer
}

// New creates a controller on page 0
func New(opts Options, sched Scheduler) (*Controller, error) {
	if sched == nil {
		return nil, fmt.Errorf("%w: scheduler is nil", ErrInvalidOptions)
	}
	merged, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	c := &Controller{
		opts:  merged,
		sched: sched,
		log:   merged.Logger,
	}
	c.stop = NewDebouncer(sched, merged.ScrollStopDelay, c.scrollStopped)
	return c, nil
}

// Enable accepts input again
func (c *Controller) Enable() {
	c.disabled = false
}

// Disable ignores all input until Enable. In-flight easing keeps running
func (c *Controller) Disable() {
	c.disabled = true
}

// Enabled reports whether input is accepted
func (c *Controller) Enabled() bool { return !c.disabled }

// Page returns the current page index
func (c *Controller) Page() int { return c.page }

// Percentage returns the travel fraction within the current page
func (c *Controller) Percentage() float64 { return c.percentage }

// IsScrolling reports whether a scroll session is open
func (c *Controller) IsScrolling() bool { return c.scrolling }

// Easing reports whether a spring-back animation is running
func (c *Controller) Easing() bool { return c.easing }

// TotalPages returns the configured page count
func (c *Controller) TotalPages() int { return c.opts.TotalPages }

// Options returns the merged options
func (c *Controller) Options() Options { return c.opts }

// HandleScroll reduces a single normalized wheel event
func (c *Controller) HandleScroll(ev Event) Result {
	if c.closed {
		return Closed
	}
	if c.disabled {
		return Disabled
	}
	delta, ok := ev.Delta(c.opts.DeltaField)
	if !ok || math.IsNaN(delta) || math.IsInf(delta, 0) {
		return NoDelta
	}

	c.stop.Reset()

	if c.opts.StopAtPage && c.guard == guardActive {
		return PageLocked
	}

	if c.cancelEasing() {
		c.log.Debug("pager: easing interrupted by input")
	}

	if !c.scrolling {
		c.scrolling = true
		c.accumulated = 0
		c.opts.OnScrollStart(c.percentage, c.page)
	}

	c.accumulated += delta
	c.percentage = c.accumulated / c.opts.PageHeight

	if c.opts.Momentum && c.atBoundary() {
		c.percentage = Logistic(c.percentage)
	}

	last := c.opts.TotalPages - 1
	if c.percentage >= 1 && c.page < last {
		c.changePage(c.page + 1)
	} else if c.percentage <= -1 && c.page > 0 {
		c.changePage(c.page - 1)
	}

	c.opts.OnScroll(c.percentage, c.page)
	return Handled
}

// atBoundary reports whether travel heads past the first or last page
func (c *Controller) atBoundary() bool {
	return (c.page == c.opts.TotalPages-1 && c.percentage > 0) ||
		(c.page == 0 && c.percentage < 0)
}

func (c *Controller) changePage(target int) {
	previous := c.page
	c.page = target
	c.opts.OnPageChange(previous, c.page)
	c.percentage = 0
	c.accumulated = 0
	c.guard = guardActive
	c.log.WithFields(logrus.Fields{"from": previous, "to": target}).Debug("pager: page changed")
}

// scrollStopped runs once input has been quiet for the stop delay
func (c *Controller) scrollStopped() {
	if c.guard == guardActive {
		c.guard = guardConsumed
		c.log.Debug("pager: page lock released")
	}
	if c.opts.EaseBack {
		c.startEasing()
		return
	}
	c.finishScroll()
}

func (c *Controller) finishScroll() {
	c.opts.OnScrollStop(c.percentage, c.page)
	c.accumulated = 0
	c.scrolling = false
}

// Reposition moves to page directly. It resets travel like a wheel-driven
// page change but does not arm the page lock
func (c *Controller) Reposition(page int) error {
	if page < 0 || page >= c.opts.TotalPages {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrPageOutOfRange, page, c.opts.TotalPages)
	}

	wasEasing := c.cancelEasing()
	previous := c.page
	c.page = page
	c.percentage = 0
	c.accumulated = 0
	if previous != page {
		c.opts.OnPageChange(previous, page)
		c.log.WithFields(logrus.Fields{"from": previous, "to": page}).Debug("pager: repositioned")
	}
	if wasEasing {
		c.finishScroll()
	}
	return nil
}

// Close cancels pending timers. Later wheel input is ignored and nothing
// is scheduled again
func (c *Controller) Close() {
	c.closed = true
	c.stop.Cancel()
	c.cancelEasing()
}

// Closed reports whether Close was called
func (c *Controller) Closed() bool { return c.closed }
