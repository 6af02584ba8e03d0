// Package theme holds the palette and shared styles. Screens compose
// these rather than defining colours of their own.
package theme

import "charm.land/lipgloss/v2"

// Palette: calm study colours with a warm highlight for the blank being
// edited.
var (
	Primary   = lipgloss.Color("#6366F1") // indigo
	Secondary = lipgloss.Color("#14B8A6") // teal
	Accent    = lipgloss.Color("#F59E0B") // amber
	Highlight = lipgloss.Color("#FACC15") // yellow
	Success   = lipgloss.Color("#22C55E") // green
	Error     = lipgloss.Color("#F43F5E") // rose
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

// Text styles.
var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(Primary).Align(lipgloss.Center)
	Body  = lipgloss.NewStyle().Foreground(Text)
	Hint  = lipgloss.NewStyle().Foreground(TextDim).Italic(true)

	// Label is the left column of the exercise form.
	Label = lipgloss.NewStyle().Foreground(TextDim).Width(22)

	ErrorText = lipgloss.NewStyle().Foreground(Error)
)

// Lists and choices.
var (
	Selected   = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Unselected = lipgloss.NewStyle().Foreground(Text)
)

// Quiz blanks. The focused blank is the one receiving keystrokes.
var (
	Slot        = lipgloss.NewStyle().Foreground(Secondary).Underline(true)
	SlotFocused = lipgloss.NewStyle().Foreground(Highlight).Bold(true).Underline(true)
)

// Answer review on the results screen.
var (
	Correct   = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect = lipgloss.NewStyle().Foreground(Error).Bold(true)

	// WrongAnswer marks what the player typed for a missed blank.
	WrongAnswer = lipgloss.NewStyle().Foreground(Error).Strikethrough(true)
)

// Buttons.
var (
	ButtonActive   = lipgloss.NewStyle().Background(Primary).Foreground(Text).Bold(true).Padding(0, 2)
	ButtonInactive = lipgloss.NewStyle().Background(BgCard).Foreground(Text).Padding(0, 2)
	ButtonDisabled = lipgloss.NewStyle().Background(BgCard).Foreground(TextDim).Padding(0, 2)
)
