package content

import "wheelpage/internal/domain"

const sampleText = `# wheelpage

Scroll the mouse wheel to travel between pages.

Each notch adds to the travel gauge at the bottom of the screen.
A full page of travel moves you to the next page.
---
# Momentum

On the first and the last page the wheel meets resistance.
Travel past the edge is compressed by a logistic curve,
so the page leans out and never falls off.

Toggle with  m
---
# Stop at page

After landing on a page, further wheel input is ignored
until the wheel has been still for a moment.
One flick, one page.

Toggle with  s
---
# Ease back

When the wheel stops short of a full page, the view springs
back into place over 300ms instead of snapping.

Toggle with  e
---
# Controls

  g        jump to a page
  t        enable or disable wheel input
  o        read the current page in a pager
  ?        help
  q        quit

Settings persist to .wheelpage.toml in the working directory.`

// Sample returns the built-in deck
func Sample() *domain.Deck {
	return &domain.Deck{Pages: Split(sampleText)}
}
