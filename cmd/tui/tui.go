package main

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

type TUI struct {
	app   *tview.Application
	pages *tview.Pages

	builder *filterBuilder

	stopOnce sync.Once

	// Set by the builder's output action before stopping the app.
	output string
}

// configureStyles sets the tview global styles for the TUI.
// Note: This modifies global state in tview.Styles.
func configureStyles() {
	tview.Styles.PrimitiveBackgroundColor = tcell.ColorBlack
	tview.Styles.ContrastBackgroundColor = tcell.ColorDarkSlateGray
	tview.Styles.MoreContrastBackgroundColor = tcell.ColorGreen
	tview.Styles.BorderColor = tcell.ColorWhite
	tview.Styles.TitleColor = tcell.ColorWhite
	tview.Styles.GraphicsColor = tcell.ColorWhite
	tview.Styles.PrimaryTextColor = tcell.ColorWhite
	tview.Styles.SecondaryTextColor = tcell.ColorYellow
	tview.Styles.TertiaryTextColor = tcell.ColorGreen
	tview.Styles.InverseTextColor = tcell.ColorBlue
	tview.Styles.ContrastSecondaryTextColor = tcell.ColorNavy
}

// NewTUI creates a new TUI instance with the filter builder page in front.
func NewTUI() *TUI {
	configureStyles()

	tui := &TUI{
		app:   tview.NewApplication(),
		pages: tview.NewPages(),
	}

	tui.builder = newFilterBuilder(tui)
	tui.builder.setup()
	tui.builder.show()

	return tui
}

// Run starts the TUI event loop. It blocks until the application exits
// and returns any error that occurred.
func (t *TUI) Run() error {
	return t.app.SetRoot(t.pages, true).Run()
}

func (t *TUI) Stop() {
	t.stopOnce.Do(func() {
		t.app.Stop()
	})
}

// Output returns the text the user chose to emit, if any.
func (t *TUI) Output() string {
	return t.output
}

func (t *TUI) showError(message string) {
	modal := tview.NewModal().
		SetText(message).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			t.pages.HidePage("error")
		})
	t.pages.RemovePage("error")
	t.pages.AddPage("error", modal, false, true)
	t.pages.ShowPage("error")
}

// makeHelpText renders a bordered one-line control legend.
func makeHelpText(text string) *tview.TextView {
	view := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetTextAlign(tview.AlignCenter).
		SetText(text)
	view.SetBorder(true).SetTitle("Controls")
	return view
}
