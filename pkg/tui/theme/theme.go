package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the catalog UI.
type Theme struct {
	Header HeaderTheme
	Card   CardTheme
	Popup  PopupTheme
	Footer FooterTheme
}

// HeaderTheme styles the profile rank, filter nav and sort bar.
type HeaderTheme struct {
	Rank       lipgloss.Style
	Nav        lipgloss.Style
	NavActive  lipgloss.Style
	NavCount   lipgloss.Style
	Sort       lipgloss.Style
	SortActive lipgloss.Style
}

// CardTheme styles a film card in the list.
type CardTheme struct {
	Frame         lipgloss.Style
	// Focused draws the cursor marker beside the focused card.
	Focused       lipgloss.Style
	Aborting      lipgloss.Style
	Title         lipgloss.Style
	Rating        lipgloss.Style
	Meta          lipgloss.Style
	Description   lipgloss.Style
	Control       lipgloss.Style
	ControlActive lipgloss.Style
}

// PopupTheme styles the film details overlay.
type PopupTheme struct {
	Frame         lipgloss.Style
	Aborting      lipgloss.Style
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Term          lipgloss.Style
	Cell          lipgloss.Style
	Control       lipgloss.Style
	ControlActive lipgloss.Style
	Comment       lipgloss.Style
	CommentMeta   lipgloss.Style
	Selected      lipgloss.Style
	Input         lipgloss.Style
	InputActive   lipgloss.Style
	Hint          lipgloss.Style
	Error         lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Busy   lipgloss.Style
	Button lipgloss.Style
	Empty  lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	control := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	controlActive := lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return Theme{
		Header: HeaderTheme{
			Rank:       lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
			Nav:        lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
			NavActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true).Underline(true),
			NavCount:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Sort:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			SortActive: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		},
		Card: CardTheme{
			Frame:         frame,
			Focused:       lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
			Aborting:      frame.BorderForeground(lipgloss.Color("196")),
			Title:         lipgloss.NewStyle().Bold(true),
			Rating:        lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Meta:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Description:   lipgloss.NewStyle(),
			Control:       control,
			ControlActive: controlActive,
		},
		Popup: PopupTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(lipgloss.Color("63")).
				Padding(0, 2),
			Aborting: lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(lipgloss.Color("196")).
				Padding(0, 2),
			Title:         lipgloss.NewStyle().Bold(true),
			Subtitle:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Term:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14),
			Cell:          lipgloss.NewStyle(),
			Control:       control,
			ControlActive: controlActive,
			Comment:       lipgloss.NewStyle(),
			CommentMeta:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Selected:      lipgloss.NewStyle().Reverse(true),
			Input:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			InputActive:   lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
			Hint:          lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
			Error:         lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Busy:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
			Button: lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 2),
			Empty:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Padding(1, 2),
		},
	}
}
