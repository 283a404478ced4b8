package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wheelpage/internal/config"
)

// renderHelpContent generates help content with colors for the pager
func renderHelpContent(k keyMap, cfg *config.Config) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(8)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("wheelpage Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Scrolling"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s%s\n", keyStyle.Render("wheel"), descStyle.Render("Travel towards the next or previous page")))
	help.WriteString(fmt.Sprintf("  %s%s\n", keyStyle.Render("tilt"), descStyle.Render("Same, when delta_field = \"deltaX\"")))
	help.WriteString("\n")

	sections := []string{"Pages", "Behaviour", "Other"}
	for i, group := range k.FullHelp() {
		help.WriteString(sectionStyle.Render(sections[i]))
		help.WriteString("\n")
		for _, b := range group {
			h := b.Help()
			help.WriteString(fmt.Sprintf("  %s%s\n", keyStyle.Render(h.Key), descStyle.Render(h.Desc)))
		}
	}
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Settings"))
	help.WriteString("\n")
	settings := [][2]string{
		{"page_height", fmt.Sprintf("%g", cfg.Pager.PageHeight)},
		{"wheel_step", fmt.Sprintf("%g", cfg.UISettings.WheelStep)},
		{"delta_field", cfg.Pager.DeltaField},
		{"stop_at_page", fmt.Sprintf("%t", cfg.Pager.StopAtPage)},
		{"momentum", fmt.Sprintf("%t", cfg.Pager.Momentum)},
		{"ease_back", fmt.Sprintf("%t", cfg.Pager.EaseBack)},
		{"scroll_stop_delay_ms", fmt.Sprintf("%d", cfg.Pager.ScrollStopDelayMs)},
	}
	for _, s := range settings {
		help.WriteString(fmt.Sprintf("  %-22s %s\n", s[0], descStyle.Render(s[1])))
	}

	return help.String()
}
