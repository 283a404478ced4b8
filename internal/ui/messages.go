package ui

// timerFiredMsg carries an expired pager timer onto the update loop
type timerFiredMsg struct {
	run func()
}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// pageViewerMsg contains the result of viewing a page in the pager
type pageViewerMsg struct {
	page int
	err  error
}

// clearStatusMsg clears the status message
type clearStatusMsg struct{}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
