package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the renderer.
type Styles struct {
	Header    lipgloss.Style
	Subheader lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style
	Key       lipgloss.Style
}

// Colors
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#5fd75f"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#d70000", Dark: "#ff5f5f"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#af8700", Dark: "#ffd75f"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "#6c6c6c", Dark: "#8a8a8a"}
	colorAccent = lipgloss.AdaptiveColor{Light: "#005faf", Dark: "#5fafff"}
)

// NewStyles creates the styles bound to a lipgloss renderer.
func NewStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Header:    r.NewStyle().Bold(true).Foreground(colorAccent).Underline(true),
		Subheader: r.NewStyle().Bold(true),
		Success:   r.NewStyle().Bold(true).Foreground(colorGreen),
		Warning:   r.NewStyle().Foreground(colorYellow),
		Error:     r.NewStyle().Bold(true).Foreground(colorRed),
		Muted:     r.NewStyle().Foreground(colorMuted),
		Key:       r.NewStyle().Bold(true),
	}
}
