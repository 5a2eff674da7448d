package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/robert-malhotra/go-cql-filter/pkg/cql"
)

const (
	pageFilterBuilder = "filterBuilder"
	pageDatePicker    = "datePicker"
)

// Combination choices for multi-condition filters.
var logicalOps = []string{"and", "or"}

// valueKind decides how the raw value text is parsed before it reaches a
// constructor.
type valueKind int

const (
	kindScalar valueKind = iota
	kindPattern
	kindNone
	kindRange
	kindGeometry
	kindTemporal
)

// operatorSpec ties a dropdown label to the constructor behind it and the
// kind of value the input field expects.
type operatorSpec struct {
	label string
	kind  valueKind
	build func(attribute string, value any) cql.Condition
}

var operatorSpecs = []operatorSpec{
	{"=", kindScalar, func(a string, v any) cql.Condition { return cql.Eq(a, v) }},
	{"<>", kindScalar, func(a string, v any) cql.Condition { return cql.Ne(a, v) }},
	{"<", kindScalar, func(a string, v any) cql.Condition { return cql.Lt(a, v) }},
	{"<=", kindScalar, func(a string, v any) cql.Condition { return cql.Lte(a, v) }},
	{">", kindScalar, func(a string, v any) cql.Condition { return cql.Gt(a, v) }},
	{">=", kindScalar, func(a string, v any) cql.Condition { return cql.Gte(a, v) }},
	{"between", kindRange, func(a string, v any) cql.Condition {
		bounds := v.([]any)
		return cql.Between(a, bounds[0], bounds[1])
	}},
	{"like", kindPattern, func(a string, v any) cql.Condition { return cql.Like(a, v) }},
	{"contains", kindPattern, func(a string, v any) cql.Condition { return cql.Contains(a, v) }},
	{"is null", kindNone, func(a string, v any) cql.Condition { return cql.IsNull(a) }},
	{"is not null", kindNone, func(a string, v any) cql.Condition { return cql.IsNotNull(a) }},
	{"intersects", kindGeometry, func(a string, v any) cql.Condition { return cql.Intersects(a, v) }},
	{"disjoint", kindGeometry, func(a string, v any) cql.Condition { return cql.Disjoint(a, v) }},
	{"within", kindGeometry, func(a string, v any) cql.Condition { return cql.Within(a, v) }},
	{"touches", kindGeometry, func(a string, v any) cql.Condition { return cql.Touches(a, v) }},
	{"overlaps", kindGeometry, func(a string, v any) cql.Condition { return cql.Overlaps(a, v) }},
	{"crosses", kindGeometry, func(a string, v any) cql.Condition { return cql.Crosses(a, v) }},
	{"s-contains", kindGeometry, func(a string, v any) cql.Condition { return cql.SpatialContains(a, v) }},
	{"s-equals", kindGeometry, func(a string, v any) cql.Condition { return cql.SpatialEquals(a, v) }},
	{"anyinteracts", kindTemporal, func(a string, v any) cql.Condition { return cql.AnyInteracts(a, v) }},
	{"after", kindTemporal, func(a string, v any) cql.Condition { return cql.After(a, v) }},
	{"before", kindTemporal, func(a string, v any) cql.Condition { return cql.Before(a, v) }},
	{"begins", kindTemporal, func(a string, v any) cql.Condition { return cql.Begins(a, v) }},
	{"begunby", kindTemporal, func(a string, v any) cql.Condition { return cql.BegunBy(a, v) }},
	{"tcontains", kindTemporal, func(a string, v any) cql.Condition { return cql.TContains(a, v) }},
	{"during", kindTemporal, func(a string, v any) cql.Condition { return cql.During(a, v) }},
	{"endedby", kindTemporal, func(a string, v any) cql.Condition { return cql.EndedBy(a, v) }},
	{"ends", kindTemporal, func(a string, v any) cql.Condition { return cql.Ends(a, v) }},
	{"tequals", kindTemporal, func(a string, v any) cql.Condition { return cql.TEquals(a, v) }},
	{"meets", kindTemporal, func(a string, v any) cql.Condition { return cql.Meets(a, v) }},
	{"metby", kindTemporal, func(a string, v any) cql.Condition { return cql.MetBy(a, v) }},
	{"toverlaps", kindTemporal, func(a string, v any) cql.Condition { return cql.TOverlaps(a, v) }},
	{"overlappedby", kindTemporal, func(a string, v any) cql.Condition { return cql.OverlappedBy(a, v) }},
	{"tintersects", kindTemporal, func(a string, v any) cql.Condition { return cql.TIntersects(a, v) }},
}

// filterBuilder manages the condition building UI
type filterBuilder struct {
	tui *TUI

	// UI components
	attributeInput    *tview.InputField
	operatorDropdown  *tview.DropDown
	valueInput        *tview.InputField
	logicalOpDropdown *tview.DropDown
	conditionsList    *tview.List
	previewText       *tview.TextView

	// State
	conditions []cql.Condition
	logicalOp  string
}

// newFilterBuilder creates a new filter builder instance
func newFilterBuilder(t *TUI) *filterBuilder {
	return &filterBuilder{
		tui:       t,
		logicalOp: "and",
	}
}

// setup creates all the UI components for the filter builder
func (fb *filterBuilder) setup() {
	// Attribute input
	fb.attributeInput = tview.NewInputField().
		SetLabel("Attribute: ").
		SetFieldWidth(30).
		SetPlaceholder("e.g. properties.cloud_cover")

	// Value input - create before the operator dropdown so its selection
	// callback can set the placeholder
	fb.valueInput = tview.NewInputField().
		SetLabel("Value: ").
		SetFieldWidth(40)

	// Preview text - create first so callbacks can use it
	fb.previewText = tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true)
	fb.previewText.SetBorder(true).SetTitle("CQL Preview")
	fb.previewText.SetText("[gray]No conditions added yet[white]")

	// Operator dropdown
	labels := make([]string, len(operatorSpecs))
	for i, spec := range operatorSpecs {
		labels[i] = spec.label
	}
	fb.operatorDropdown = tview.NewDropDown().
		SetLabel("Operator: ").
		SetFieldWidth(15).
		SetOptions(labels, func(text string, index int) {
			fb.onOperatorSelected(index)
		})
	fb.operatorDropdown.SetCurrentOption(0)

	// Logical operator dropdown
	fb.logicalOpDropdown = tview.NewDropDown().
		SetLabel("Combine with: ").
		SetFieldWidth(10).
		SetOptions(logicalOps, func(text string, index int) {
			fb.logicalOp = text
			fb.updatePreview()
		})
	fb.logicalOpDropdown.SetCurrentOption(0)

	// Conditions list
	fb.conditionsList = tview.NewList()
	fb.conditionsList.SetBorder(true).SetTitle("Conditions (0)")
	fb.conditionsList.ShowSecondaryText(false)
	fb.conditionsList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		fb.removeCondition(index)
	})

	// Build the layout
	fb.buildLayout()
}

// buildLayout creates the page layout
func (fb *filterBuilder) buildLayout() {
	// Left panel: condition form
	conditionForm := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(fb.attributeInput, 1, 0, true).
		AddItem(fb.operatorDropdown, 1, 0, false).
		AddItem(fb.valueInput, 1, 0, false).
		AddItem(fb.logicalOpDropdown, 1, 0, false)
	conditionForm.SetBorder(true).SetTitle("Add Condition")

	// Right panel: conditions + preview
	rightPanel := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(fb.conditionsList, 0, 1, false).
		AddItem(fb.previewText, 8, 0, false)

	// Main content
	mainContent := tview.NewFlex().
		AddItem(conditionForm, 0, 1, true).
		AddItem(rightPanel, 0, 1, false)

	// Buttons
	addBtn := tview.NewButton("Add Condition").SetSelectedFunc(func() {
		fb.addCondition()
	})
	clearBtn := tview.NewButton("Clear All").SetSelectedFunc(func() {
		fb.clearConditions()
	})
	datesBtn := tview.NewButton("Pick Dates").SetSelectedFunc(func() {
		fb.openDatePicker()
	})
	outputBtn := tview.NewButton("Output CQL").SetSelectedFunc(func() {
		fb.output()
	})
	quitBtn := tview.NewButton("Quit").SetSelectedFunc(func() {
		fb.tui.Stop()
	})

	buttonFlex := tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(addBtn, 16, 0, false).
		AddItem(nil, 2, 0, false).
		AddItem(clearBtn, 12, 0, false).
		AddItem(nil, 2, 0, false).
		AddItem(datesBtn, 12, 0, false).
		AddItem(nil, 2, 0, false).
		AddItem(outputBtn, 14, 0, false).
		AddItem(nil, 2, 0, false).
		AddItem(quitBtn, 8, 0, false).
		AddItem(nil, 0, 1, false)

	// Help text
	help := makeHelpText("[yellow]Tab[white] switch focus  [yellow]Enter[white] add  [yellow]a[white] add  [yellow]c[white] clear  [yellow]d[white] dates  [yellow]o[white] output  [yellow]q[white] quit")

	// Full page
	page := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(mainContent, 0, 1, true).
		AddItem(buttonFlex, 1, 0, false).
		AddItem(help, 3, 0, false)

	page.SetInputCapture(fb.handleInput)

	fb.tui.pages.AddPage(pageFilterBuilder, page, true, false)
}

// handleInput handles key events for the filter builder
func (fb *filterBuilder) handleInput(event *tcell.EventKey) *tcell.EventKey {
	// Don't intercept keys when a dropdown is focused - let it handle its own input
	if fb.operatorDropdown.HasFocus() || fb.logicalOpDropdown.HasFocus() {
		if event.Key() == tcell.KeyEscape {
			fb.tui.Stop()
			return nil
		}
		return event
	}

	// Don't intercept runes while typing in the text inputs
	if fb.attributeInput.HasFocus() || fb.valueInput.HasFocus() {
		switch event.Key() {
		case tcell.KeyEscape:
			fb.tui.Stop()
			return nil
		case tcell.KeyTab:
			fb.cycleFocus(1)
			return nil
		case tcell.KeyBacktab:
			fb.cycleFocus(-1)
			return nil
		case tcell.KeyEnter:
			fb.addCondition()
			return nil
		}
		return event
	}

	switch event.Key() {
	case tcell.KeyEscape:
		fb.tui.Stop()
		return nil
	case tcell.KeyTab:
		fb.cycleFocus(1)
		return nil
	case tcell.KeyBacktab:
		fb.cycleFocus(-1)
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case 'a', 'A':
			fb.addCondition()
			return nil
		case 'c', 'C':
			fb.clearConditions()
			return nil
		case 'd', 'D':
			fb.openDatePicker()
			return nil
		case 'o', 'O':
			fb.output()
			return nil
		case 'q', 'Q':
			fb.tui.Stop()
			return nil
		}
	}
	return event
}

// cycleFocus cycles through focusable elements
func (fb *filterBuilder) cycleFocus(direction int) {
	focusables := []tview.Primitive{
		fb.attributeInput,
		fb.operatorDropdown,
		fb.valueInput,
		fb.logicalOpDropdown,
		fb.conditionsList,
	}

	current := -1
	for i, p := range focusables {
		if p.HasFocus() {
			current = i
			break
		}
	}

	if current == -1 {
		fb.tui.app.SetFocus(focusables[0])
		return
	}

	next := (current + direction + len(focusables)) % len(focusables)
	fb.tui.app.SetFocus(focusables[next])
}

// show displays the filter builder with a clean slate
func (fb *filterBuilder) show() {
	fb.conditions = nil

	fb.updateConditionsList()
	fb.updatePreview()

	fb.tui.pages.ShowPage(pageFilterBuilder)
	fb.tui.app.SetFocus(fb.attributeInput)
}

// onOperatorSelected handles operator selection
func (fb *filterBuilder) onOperatorSelected(index int) {
	if index < 0 || index >= len(operatorSpecs) {
		return
	}
	fb.updateValuePlaceholder(operatorSpecs[index])
}

// updateValuePlaceholder sets appropriate placeholder for the value input
func (fb *filterBuilder) updateValuePlaceholder(spec operatorSpec) {
	var placeholder string

	switch spec.kind {
	case kindScalar:
		placeholder = "number, true/false, null or text"
	case kindPattern:
		placeholder = "text, wildcards as given"
	case kindNone:
		placeholder = "(no value needed)"
	case kindRange:
		placeholder = "low, high"
	case kindGeometry:
		placeholder = `{"type":"Point","coordinates":[0,0]}`
	case kindTemporal:
		placeholder = "instant or start/end"
	}

	fb.valueInput.SetPlaceholder(placeholder)
}

// addCondition adds a new filter condition
func (fb *filterBuilder) addCondition() {
	attribute := strings.TrimSpace(fb.attributeInput.GetText())
	if attribute == "" {
		fb.tui.showError("Please enter an attribute first")
		return
	}

	opIndex, _ := fb.operatorDropdown.GetCurrentOption()
	if opIndex < 0 || opIndex >= len(operatorSpecs) {
		opIndex = 0
	}
	spec := operatorSpecs[opIndex]

	value := strings.TrimSpace(fb.valueInput.GetText())
	if spec.kind != kindNone && value == "" {
		fb.tui.showError("Please enter a value")
		return
	}

	condition, err := buildCondition(attribute, spec, value)
	if err != nil {
		fb.tui.showError(err.Error())
		return
	}

	fb.conditions = append(fb.conditions, condition)
	fb.valueInput.SetText("")

	fb.updateConditionsList()
	fb.updatePreview()
}

// buildCondition parses the raw value according to the operator's kind and
// hands it to the constructor.
func buildCondition(attribute string, spec operatorSpec, raw string) (cql.Condition, error) {
	switch spec.kind {
	case kindNone:
		return spec.build(attribute, nil), nil
	case kindScalar:
		return spec.build(attribute, parseScalar(raw)), nil
	case kindRange:
		low, high, ok := strings.Cut(raw, ",")
		if !ok {
			return nil, fmt.Errorf("between wants low, high")
		}
		bounds := []any{parseScalar(strings.TrimSpace(low)), parseScalar(strings.TrimSpace(high))}
		return spec.build(attribute, bounds), nil
	case kindTemporal:
		return spec.build(attribute, parseTemporal(raw)), nil
	default:
		return spec.build(attribute, raw), nil
	}
}

// parseScalar turns input text into the Go type the renderer quotes it as.
func parseScalar(value string) any {
	switch strings.ToLower(value) {
	case "null":
		return nil
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}

// parseTemporal builds an interval from start/end values; anything without a
// slash passes through as an instant.
func parseTemporal(value string) any {
	if start, end, ok := strings.Cut(value, "/"); ok {
		return cql.Interval{Start: start, End: end}
	}
	return value
}

// removeCondition removes a condition by index
func (fb *filterBuilder) removeCondition(index int) {
	if index < 0 || index >= len(fb.conditions) {
		return
	}

	fb.conditions = append(fb.conditions[:index], fb.conditions[index+1:]...)
	fb.updateConditionsList()
	fb.updatePreview()
}

// clearConditions removes all conditions
func (fb *filterBuilder) clearConditions() {
	fb.conditions = nil
	fb.updateConditionsList()
	fb.updatePreview()
}

// updateConditionsList updates the conditions list display
func (fb *filterBuilder) updateConditionsList() {
	fb.conditionsList.Clear()
	fb.conditionsList.SetTitle(fmt.Sprintf("Conditions (%d)", len(fb.conditions)))

	if len(fb.conditions) == 0 {
		fb.conditionsList.AddItem("[gray](no conditions - fill the form and add)[white]", "", 0, nil)
		return
	}

	for i, condition := range fb.conditions {
		display, err := cql.Render(condition, nil)
		if err != nil {
			display = fmt.Sprintf("(invalid: %v)", err)
		}
		fb.conditionsList.AddItem(fmt.Sprintf("%d. %s", i+1, display), "", 0, nil)
	}

	fb.conditionsList.AddItem("[dim](select to remove)[white]", "", 0, nil)
}

// updatePreview renders the combined conditions into the preview pane
func (fb *filterBuilder) updatePreview() {
	root := fb.root()
	if root == nil {
		fb.previewText.SetText("[gray]No conditions added yet[white]")
		return
	}

	text, err := cql.Render(root, nil)
	if err != nil {
		fb.previewText.SetText(fmt.Sprintf("[red]%v[white]", err))
		return
	}

	fb.previewText.SetText("[green]" + text + "[white]")
}

// root combines the current conditions the way the combine dropdown says.
func (fb *filterBuilder) root() cql.Condition {
	builder := cql.NewBuilder()
	if fb.logicalOp == "or" {
		builder.Or(fb.conditions...)
	} else {
		builder.And(fb.conditions...)
	}
	return builder.Build()
}

// openDatePicker overlays the calendar and writes the chosen date or range
// into the value input.
func (fb *filterBuilder) openDatePicker() {
	picker := newDatePicker()
	picker.SetFromValue(strings.TrimSpace(fb.valueInput.GetText()))
	picker.SetDoneFunc(func(confirmed bool, value string) {
		fb.tui.pages.RemovePage(pageDatePicker)
		if confirmed && value != "" {
			fb.valueInput.SetText(value)
		}
		fb.tui.app.SetFocus(fb.valueInput)
	})

	centered := tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(picker, 20, 0, true).
			AddItem(nil, 0, 1, false), 46, 0, true).
		AddItem(nil, 0, 1, false)

	fb.tui.pages.AddPage(pageDatePicker, centered, true, true)
	fb.tui.app.SetFocus(picker.FocusTarget())
}

// output renders the final filter, stores it for main to print, and exits.
func (fb *filterBuilder) output() {
	root := fb.root()
	if root == nil {
		fb.tui.showError("Add at least one condition first")
		return
	}

	query := cql.NewQuery().Filter(root)

	text, err := query.ToCQL()
	if err != nil {
		fb.tui.showError(err.Error())
		return
	}
	encoded, err := query.ToCQLURLSafe()
	if err != nil {
		fb.tui.showError(err.Error())
		return
	}

	fb.tui.output = text + "\n" + encoded
	fb.tui.Stop()
}
