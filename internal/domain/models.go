package domain

// Page represents one screen of content
type Page struct {
	Title string
	Body  string // full text, title line included
}

// Deck is the ordered set of pages being browsed
type Deck struct {
	Source string // file or directory the pages came from, "" for the sample deck
	Pages  []Page
}

// Len returns the number of pages
func (d *Deck) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Pages)
}

// Page returns the page at index i, or nil when out of range
func (d *Deck) Page(i int) *Page {
	if d == nil || i < 0 || i >= len(d.Pages) {
		return nil
	}
	return &d.Pages[i]
}

// ScrollState is a snapshot of the pager for rendering
type ScrollState struct {
	Page       int
	Percentage float64
	Scrolling  bool
	Easing     bool
	Enabled    bool
}
