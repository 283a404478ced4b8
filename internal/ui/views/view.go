package views

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wheelpage/internal/domain"
)

// footerLines is the status, gauge/prompt and help rows below the window
const footerLines = 3

// Flag is one on/off indicator in the status bar
type Flag struct {
	Name string
	On   bool
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Deck          *domain.Deck
	Scroll        domain.ScrollState
	Flags         []Flag
	StatusMessage string
	StatusIsError bool
	Prompt        string // rendered jump prompt, empty when not prompting
	Progress      string // rendered travel gauge
	HelpView      string
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Styles exposes the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// BodyHeight returns the rows available to the page window
func BodyHeight(height int) int {
	if h := height - footerLines; h > 1 {
		return h
	}
	return 1
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	bodyHeight := BodyHeight(state.Height)
	window := r.Window(state.Deck, state.Scroll.Page, state.Scroll.Percentage, state.Width, bodyHeight)

	content := &strings.Builder{}
	content.WriteString(strings.Join(window, "\n"))
	content.WriteString("\n")
	content.WriteString(r.statusLine(state))
	content.WriteString("\n")

	switch {
	case state.Prompt != "":
		content.WriteString(r.styles.Prompt.Render(state.Prompt))
	case state.StatusMessage != "" && state.StatusIsError:
		content.WriteString(r.styles.StatusError.Render(state.StatusMessage))
	case state.StatusMessage != "":
		content.WriteString(r.styles.StatusSuccess.Render(state.StatusMessage))
	default:
		content.WriteString(state.Progress)
	}
	content.WriteString("\n")
	content.WriteString(r.styles.Help.Render(state.HelpView))

	return content.String()
}

func (r *Renderer) statusLine(state ViewState) string {
	total := state.Deck.Len()
	page := r.styles.StatusPage.Render(fmt.Sprintf("Page %d/%d", state.Scroll.Page+1, total))

	title := ""
	if p := state.Deck.Page(state.Scroll.Page); p != nil {
		title = p.Title
	}

	flags := make([]string, 0, len(state.Flags))
	for _, f := range state.Flags {
		if f.On {
			flags = append(flags, r.styles.FlagOn.Render("●"+f.Name))
		} else {
			flags = append(flags, r.styles.FlagOff.Render("○"+f.Name))
		}
	}

	left := page + "  " + r.styles.Status.Render(title)
	right := strings.Join(flags, " ")
	gap := state.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// Window returns exactly height rows: the current page shifted by
// percentage of a window, with the neighbouring page sliding in.
func (r *Renderer) Window(deck *domain.Deck, page int, percentage float64, width, height int) []string {
	offset := int(math.Round(percentage * float64(height)))
	if offset > height {
		offset = height
	}
	if offset < -height {
		offset = -height
	}

	current := r.pageBlock(deck.Page(page), width, height)
	if offset >= 0 {
		next := r.pageBlock(deck.Page(page+1), width, height)
		return append(current, next...)[offset : offset+height]
	}
	prev := r.pageBlock(deck.Page(page-1), width, height)
	return append(prev, current...)[height+offset : 2*height+offset]
}

// pageBlock lays a page out as height rows, the last being the page edge.
// A nil page is blank space.
func (r *Renderer) pageBlock(p *domain.Page, width, height int) []string {
	rows := make([]string, height)
	if p == nil {
		return rows
	}
	if width < 1 {
		width = 1
	}

	clip := lipgloss.NewStyle().MaxWidth(width)
	lines := strings.Split(p.Body, "\n")
	room := height - 1
	if len(lines) > room && room > 0 {
		lines = lines[:room-1]
		lines = append(lines, r.styles.Dim.Render("… press o to read the whole page"))
	}

	titled := false
	for i := 0; i < room && i < len(lines); i++ {
		line := lines[i]
		if !titled && strings.TrimSpace(line) != "" {
			rows[i] = clip.Render(r.styles.Title.Render(line))
			titled = true
			continue
		}
		rows[i] = clip.Render(r.styles.PageBody.Render(line))
	}
	rows[height-1] = r.styles.PageEdge.Render(strings.Repeat("─", width))
	return rows
}
