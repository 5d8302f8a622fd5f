// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package viewer

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/bureau-foundation/dynview/lib/adapter"
	"github.com/bureau-foundation/dynview/lib/termview"
)

// Events fired by the viewer's click keys.
const (
	EventClick     = "onClick"
	EventLongClick = "onLongClick"
)

// Options configures a Model. Zero values pick defaults.
type Options struct {
	// Columns is the number of grid columns. Default 1.
	Columns int

	// Width fixes the render width; 0 follows the terminal.
	Width int

	// PageSize is the number of grid rows PageUp/PageDown move;
	// 0 moves by the number of rows on screen.
	PageSize int

	Theme *Theme
	Keys  *KeyMap

	// Output and Profile configure color output. The zero Profile is
	// termenv.TrueColor.
	Output  io.Writer
	Profile termenv.Profile

	Logger *slog.Logger
}

// DataMsg replaces the adapter's rows.
type DataMsg struct {
	Rows []any
}

// holderPool holds the recycled cells. Slot k is the k-th cell on
// screen; it is rebound whenever the row under it changes.
type holderPool struct {
	holders  []*adapter.Holder
	versions []int
}

// Model is the bubbletea model of the grid viewer.
type Model struct {
	adapter  *adapter.GridAdapter
	renderer *termview.Renderer
	lip      *lipgloss.Renderer
	theme    Theme
	keys     KeyMap
	logger   *slog.Logger

	columns    int
	pageSize   int
	fixedWidth int
	width      int
	height     int

	// layout[row] lists the item positions on one grid row; rowOf
	// maps an item position back to its grid row.
	layout [][]int
	rowOf  []int

	selected    int
	offset      int
	visibleRows int
	lines       string
	slotOf      map[int]int

	pool        *holderPool
	dataVersion int

	// source is every row; the adapter holds the filtered subset.
	source []any
	filter filterModel

	status           string
	statusLevel      slog.Level
	statusGeneration int
}

// NewModel creates a viewer over gridAdapter, which must inflate
// through a termview host.
func NewModel(gridAdapter *adapter.GridAdapter, options Options) Model {
	if options.Columns < 1 {
		options.Columns = 1
	}
	if options.Output == nil {
		options.Output = io.Discard
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.DiscardHandler)
	}
	theme := DefaultTheme
	if options.Theme != nil {
		theme = *options.Theme
	}
	keys := DefaultKeyMap
	if options.Keys != nil {
		keys = *options.Keys
	}

	lip := lipgloss.NewRenderer(options.Output, termenv.WithProfile(options.Profile))
	lip.SetColorProfile(options.Profile)

	model := Model{
		adapter:    gridAdapter,
		renderer:   termview.NewRenderer(options.Output, options.Profile),
		lip:        lip,
		theme:      theme,
		keys:       keys,
		logger:     options.Logger,
		columns:    options.Columns,
		pageSize:   options.PageSize,
		fixedWidth: options.Width,
		width:      defaultWidth,
		height:     defaultHeight,
		pool:       &holderPool{},
		source:     gridAdapter.Rows(),
	}
	if options.Width > 0 {
		model.width = options.Width
	}
	model.relayout()
	model.refresh()
	return model
}

// Size used until the first tea.WindowSizeMsg arrives.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return nil
}

// Selected returns the selected item position, or -1 when empty.
func (model Model) Selected() int {
	if len(model.rowOf) == 0 {
		return -1
	}
	return model.selected
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		if model.filter.active {
			return model.handleFilterKeys(message)
		}
		switch {
		case key.Matches(message, model.keys.Quit):
			return model, tea.Quit
		case key.Matches(message, model.keys.Click):
			model.fire(EventClick)
		case key.Matches(message, model.keys.LongClick):
			model.fire(EventLongClick)
		case key.Matches(message, model.keys.Up):
			model.moveRows(-1)
		case key.Matches(message, model.keys.Down):
			model.moveRows(1)
		case key.Matches(message, model.keys.Left):
			model.moveItems(-1)
		case key.Matches(message, model.keys.Right):
			model.moveItems(1)
		case key.Matches(message, model.keys.PageUp):
			model.moveRows(-model.page())
		case key.Matches(message, model.keys.PageDown):
			model.moveRows(model.page())
		case key.Matches(message, model.keys.Home):
			model.selected = 0
		case key.Matches(message, model.keys.End):
			model.selected = max(len(model.rowOf)-1, 0)
		case key.Matches(message, model.keys.FilterActivate):
			model.filter.active = true
		case key.Matches(message, model.keys.FilterClear):
			if model.filter.input != "" {
				model.filter.clear()
				model.applyFilter()
			}
		}
		model.refresh()

	case tea.WindowSizeMsg:
		if model.fixedWidth == 0 {
			model.width = message.Width
		}
		model.height = message.Height
		model.refresh()

	case DataMsg:
		model.source = message.Rows
		model.applyFilter()

	case statusMsg:
		model.status = message.Summary
		model.statusLevel = message.Level
		model.statusGeneration++
		generation := model.statusGeneration
		return model, tea.Tick(statusFadeDelay, func(time.Time) tea.Msg {
			return statusFadeMsg{Generation: generation}
		})

	case statusFadeMsg:
		if message.Generation == model.statusGeneration {
			model.status = ""
		}
	}
	return model, nil
}

// View implements tea.Model.
func (model Model) View() string {
	contentWidth := model.contentWidth()
	contentHeight := model.contentHeight()

	content := model.lines
	if len(model.layout) == 0 {
		content = model.lip.NewStyle().Foreground(model.theme.HelpText).Render("no rows")
	}
	block := model.lip.NewStyle().
		Width(contentWidth).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)
	scrollbar := renderScrollbar(model.lip, model.theme, contentHeight, len(model.layout), model.visibleRows, model.offset)
	body := lipgloss.JoinHorizontal(lipgloss.Top, block, scrollbar)
	return body + "\n" + model.statusLine()
}

func (model *Model) statusLine() string {
	width := max(model.width, 1)
	if model.status != "" {
		color := model.theme.WarnText
		if model.statusLevel >= slog.LevelError {
			color = model.theme.ErrorText
		}
		return model.lip.NewStyle().Foreground(color).Render(ansi.Truncate(model.status, width, "…"))
	}
	if bar := model.filter.view(model.lip, model.theme); bar != "" {
		return ansi.Truncate(bar, width, "…")
	}
	help := model.keys.helpLine()
	if count := len(model.rowOf); count > 0 {
		help = fmt.Sprintf("%d/%d  %s", model.selected+1, count, help)
	}
	return model.lip.NewStyle().Foreground(model.theme.HelpText).Render(ansi.Truncate(help, width, "…"))
}

// handleFilterKeys routes keystrokes to the filter input while it
// has focus. Every edit re-filters immediately.
func (model Model) handleFilterKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyCtrlC:
		return model, tea.Quit
	case tea.KeyEsc:
		if model.filter.input == "" {
			model.filter.active = false
			return model, nil
		}
		model.filter.clear()
	case tea.KeyEnter:
		model.filter.active = false
		return model, nil
	case tea.KeyBackspace:
		if !model.filter.handleBackspace() {
			return model, nil
		}
	case tea.KeyRunes, tea.KeySpace:
		for _, character := range message.Runes {
			model.filter.handleRune(character)
		}
	default:
		return model, nil
	}
	model.applyFilter()
	return model, nil
}

// applyFilter hands the adapter the rows matching the filter and
// rebinds every cell.
func (model *Model) applyFilter() {
	model.adapter.SetDataSource(model.filter.apply(model.source))
	model.dataVersion++
	model.relayout()
	model.refresh()
}

func (model *Model) contentWidth() int {
	return max(model.width-1, 1)
}

func (model *Model) contentHeight() int {
	return max(model.height-1, 1)
}

func (model *Model) page() int {
	if model.pageSize > 0 {
		return model.pageSize
	}
	return max(model.visibleRows, 1)
}

// relayout packs items into grid rows. An item whose span does not
// fit in the current row starts a new one; spans wider than the grid
// are clamped.
func (model *Model) relayout() {
	count := model.adapter.ItemCount()
	model.layout = nil
	model.rowOf = make([]int, count)
	used := model.columns
	for position := range count {
		span := min(model.adapter.SpanSize(position), model.columns)
		if used+span > model.columns {
			model.layout = append(model.layout, nil)
			used = 0
		}
		last := len(model.layout) - 1
		model.layout[last] = append(model.layout[last], position)
		model.rowOf[position] = last
		used += span
	}
	model.selected = max(min(model.selected, count-1), 0)
	model.offset = max(min(model.offset, len(model.layout)-1), 0)
}

func (model *Model) moveItems(delta int) {
	if len(model.rowOf) == 0 {
		return
	}
	model.selected = max(min(model.selected+delta, len(model.rowOf)-1), 0)
}

// moveRows moves the selection delta grid rows, keeping the column
// index within the row where possible.
func (model *Model) moveRows(delta int) {
	if len(model.rowOf) == 0 {
		return
	}
	row := model.rowOf[model.selected]
	column := slices.Index(model.layout[row], model.selected)
	target := max(min(row+delta, len(model.layout)-1), 0)
	items := model.layout[target]
	model.selected = items[min(column, len(items)-1)]
}

// refresh scrolls the selection into view and renders the visible
// grid rows, rebinding recycled holders as needed.
func (model *Model) refresh() {
	if len(model.layout) == 0 {
		model.lines = ""
		model.visibleRows = 0
		model.offset = 0
		return
	}
	selectedRow := model.rowOf[model.selected]
	if selectedRow < model.offset {
		model.offset = selectedRow
	}
	for {
		model.renderFrom(model.offset)
		if selectedRow < model.offset+model.visibleRows || model.offset >= selectedRow {
			return
		}
		model.offset++
	}
}

// renderFrom renders grid rows starting at first until the content
// height is used. At least one row is always rendered.
func (model *Model) renderFrom(first int) {
	budget := model.contentHeight()
	cellWidth := max(model.contentWidth()/model.columns, 2)
	slot := 0
	used := 0
	var rows []string
	model.slotOf = make(map[int]int)

	for row := first; row < len(model.layout); row++ {
		var cells []string
		for _, position := range model.layout[row] {
			span := min(model.adapter.SpanSize(position), model.columns)
			cells = append(cells, model.renderCell(slot, position, cellWidth*span))
			model.slotOf[position] = slot
			slot++
		}
		rendered := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
		height := lipgloss.Height(rendered)
		if len(rows) > 0 && used+height > budget {
			break
		}
		rows = append(rows, rendered)
		used += height
	}
	model.visibleRows = len(rows)
	model.lines = strings.Join(rows, "\n")
}

func (model *Model) renderCell(slot, position, width int) string {
	holder := model.holder(slot, position)
	body := ""
	if holder != nil {
		if root, ok := holder.Root().(*termview.View); ok {
			body = model.renderer.Render(root, width-1)
		}
	}
	if body == "" {
		body = " "
	}
	marker := " "
	if position == model.selected {
		marker = model.lip.NewStyle().Foreground(model.theme.SelectedMarker).Render("▌")
	}
	markers := strings.TrimSuffix(strings.Repeat(marker+"\n", lipgloss.Height(body)), "\n")
	cell := lipgloss.JoinHorizontal(lipgloss.Top, markers, body)
	return model.lip.NewStyle().Width(width).MaxWidth(width).Render(cell)
}

// holder returns the holder in slot, creating it on first use and
// rebinding it when it last showed a different row or older data.
func (model *Model) holder(slot, position int) *adapter.Holder {
	pool := model.pool
	for len(pool.holders) <= slot {
		pool.holders = append(pool.holders, nil)
		pool.versions = append(pool.versions, -1)
	}
	holder := pool.holders[slot]
	if holder == nil {
		holder = model.adapter.CreateHolder()
		if holder == nil {
			return nil
		}
		pool.holders[slot] = holder
	}
	if holder.Position() != position || pool.versions[slot] != model.dataVersion {
		model.adapter.BindHolder(holder, position)
		pool.versions[slot] = model.dataVersion
	}
	return holder
}

// Holders returns the number of inflated holders.
func (model Model) Holders() int {
	count := 0
	for _, holder := range model.pool.holders {
		if holder != nil {
			count++
		}
	}
	return count
}

// fire delivers event to the selected cell: the first view in the
// cell, in document order, with a handler for it.
func (model *Model) fire(event string) {
	slot, ok := model.slotOf[model.selected]
	if !ok || slot >= len(model.pool.holders) || model.pool.holders[slot] == nil {
		return
	}
	root, ok := model.pool.holders[slot].Root().(*termview.View)
	if !ok {
		return
	}
	target := findHandler(root, event)
	if target == nil {
		model.logger.Info("no handler for event", "event", event, "row", model.selected)
		return
	}
	target.Fire(event)
}

func findHandler(view *termview.View, event string) *termview.View {
	if slices.Contains(view.Events(), event) {
		return view
	}
	for _, child := range view.Children() {
		if found := findHandler(child, event); found != nil {
			return found
		}
	}
	return nil
}
