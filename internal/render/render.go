// package render turns the resolver's view model into styled terminal
// output with [lipgloss].
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/moodify-app/moodify/internal/recommend"
)

// Theme selects a display palette.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme resolves a theme name, defaulting to dark.
func ParseTheme(name string) Theme {
	if Theme(name) == ThemeLight {
		return ThemeLight
	}
	return ThemeDark
}

// Palette is a simple stylesheet built with named [lipgloss.Style] fields.
type Palette struct {
	header lipgloss.Style
	card   lipgloss.Style
	name   lipgloss.Style
	sub    lipgloss.Style
	link   lipgloss.Style
}

func darkPalette() Palette {
	return Palette{
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1DB954")).MarginBottom(1),
		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1),
		name: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EEEEEE")),
		sub:  lipgloss.NewStyle().Foreground(lipgloss.Color("#BBBBBB")),
		link: lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")).Italic(true),
	}
}

func lightPalette() Palette {
	return Palette{
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1DB954")).MarginBottom(1),
		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#DDDDDD")).
			Padding(0, 1),
		name: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#000000")),
		sub:  lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")),
		link: lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Italic(true),
	}
}

// Renderer renders recommendation results for a fixed theme.
type Renderer struct {
	theme   Theme
	palette Palette
}

// New creates a Renderer for the given theme.
func New(theme Theme) *Renderer {
	p := darkPalette()
	if theme == ThemeLight {
		p = lightPalette()
	}
	return &Renderer{theme: theme, palette: p}
}

// Render produces the full result view: header, playlist attribution,
// and one card per track.
func (r *Renderer) Render(res *recommend.Result) string {
	var b strings.Builder

	header := fmt.Sprintf("Top %d %s Songs (%s)", len(res.Tracks), res.Mood.Title(), res.Language)
	b.WriteString(r.palette.header.Render(header))
	b.WriteString("\n")

	if res.Playlist.Name != "" {
		attribution := fmt.Sprintf("from playlist %q", res.Playlist.Name)
		if res.Playlist.URL != "" {
			attribution += " · " + res.Playlist.URL
		}
		b.WriteString(r.palette.link.Render(attribution))
		b.WriteString("\n\n")
	}

	for i, track := range res.Tracks {
		b.WriteString(r.renderCard(i+1, track))
		b.WriteString("\n")
	}

	return b.String()
}

func (r *Renderer) renderCard(position int, track recommend.TrackView) string {
	var lines []string

	lines = append(lines, r.palette.name.Render(fmt.Sprintf("%d. %s", position, track.Name)))
	if track.Artists != "" {
		lines = append(lines, r.palette.sub.Render(track.Artists))
	}

	meta := track.Duration
	if track.Album != "" {
		meta = track.Album + " • " + meta
	}
	lines = append(lines, r.palette.sub.Render(meta))

	if track.URL != "" {
		lines = append(lines, r.palette.link.Render(track.URL))
	}

	return r.palette.card.Render(strings.Join(lines, "\n"))
}
