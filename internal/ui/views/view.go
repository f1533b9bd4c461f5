package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"genshinbook/internal/domain"
)

// AppTitle is shown on the first line of every screen
const AppTitle = "Genshin Book"

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	Breadcrumb string
	CanGoBack  bool

	Loaded  bool // at least one fetch has been applied
	Loading bool
	Spinner string
	Kind    domain.Kind

	Entries       []string
	SelectedIndex int
	WindowStart   int
	WindowEnd     int
	Above         int
	Below         int

	Leaf string // leaf content, already windowed by the viewport

	Status        string
	StatusIsError bool

	ShowHelp bool
	HelpText string // short help when ShowHelp is false, full help otherwise
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	entryRender *EntryRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(styles *Styles) *Renderer {
	return &Renderer{
		styles:      styles,
		entryRender: NewEntryRenderer(styles),
	}
}

// Styles returns the styles the renderer uses
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitle(state))
	content.WriteString("\n")
	content.WriteString(r.renderBreadcrumb(state))
	content.WriteString("\n\n")

	switch {
	case state.ShowHelp:
		content.WriteString(state.HelpText)
	case !state.Loaded && state.Loading:
		content.WriteString(r.styles.Dim.Render("Loading..."))
	case !state.Loaded:
		content.WriteString(r.styles.Dim.Render("No data. Press r to retry."))
	case state.Kind == domain.KindList:
		content.WriteString(r.entryRender.RenderList(state))
	default:
		content.WriteString(state.Leaf)
	}

	footer := []string{}
	if state.Status != "" {
		style := r.styles.StatusInfo
		if state.StatusIsError {
			style = r.styles.StatusError
		}
		footer = append(footer, style.Render(state.Status))
	}
	if !state.ShowHelp && state.HelpText != "" {
		footer = append(footer, r.styles.Help.Render(state.HelpText))
	}

	if len(footer) > 0 {
		// Push the footer to the bottom of the screen
		currentLines := strings.Count(content.String(), "\n") + 1

		// Account for container padding (1 top, 1 bottom from Padding(1, 2))
		availableLines := state.Height - 2
		if availableLines <= 0 {
			availableLines = 22 // Default terminal height minus padding
		}

		paddingNeeded := availableLines - currentLines - len(footer)
		if paddingNeeded > 0 {
			content.WriteString(strings.Repeat("\n", paddingNeeded))
		}
		for _, line := range footer {
			content.WriteString("\n")
			content.WriteString(line)
		}
	}

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	return mainStyle.Render(content.String())
}

// renderTitle renders the title with a right-aligned loading indicator
func (r *Renderer) renderTitle(state ViewState) string {
	logo := r.styles.Title.Render(AppTitle)
	if !state.Loading {
		return logo
	}

	indicator := r.styles.Spinner.Render(fmt.Sprintf("%s Loading", state.Spinner))

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80 // Default terminal width
	}
	availableWidth := termWidth - 4 // Account for main container padding
	paddingWidth := availableWidth - lipgloss.Width(AppTitle) - lipgloss.Width(indicator)

	// Title carries a bottom margin; place the indicator on its first line
	lines := strings.SplitN(logo, "\n", 2)
	if paddingWidth > 0 {
		lines[0] = lines[0] + strings.Repeat(" ", paddingWidth) + indicator
	} else {
		lines[0] = lines[0] + "  " + indicator
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderBreadcrumb(state ViewState) string {
	crumb := r.styles.Breadcrumb.Render(state.Breadcrumb)
	if !state.CanGoBack {
		return crumb
	}
	return r.styles.Back.Render("← back") + "  " + crumb
}
