// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package variantui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/util"

	"github.com/varscope/varscope/lib/distance"
	"github.com/varscope/varscope/lib/render"
	"github.com/varscope/varscope/lib/termstage"
	"github.com/varscope/varscope/lib/tui"
	"github.com/varscope/varscope/lib/variant"
	"github.com/varscope/varscope/lib/viewer"
)

// FocusRegion identifies which pane owns keyboard navigation.
type FocusRegion int

const (
	// FocusList routes navigation keys to the variant list.
	FocusList FocusRegion = iota

	// FocusDetail routes navigation keys to the detail pane body.
	FocusDetail
)

// phase is the session lifecycle: loading until the structure load
// command returns, then ready or failed for the rest of the session.
type phase int

const (
	phaseLoading phase = iota
	phaseReady
	phaseFailed
)

// structureLoadedMsg is the result of the one asynchronous operation:
// the structure load command fired from Init.
type structureLoadedMsg struct {
	err error
}

// Camera step sizes per keypress.
const (
	rotateStep  = 0.15
	zoomInStep  = 1.15
	zoomOutStep = 1.0 / 1.15
)

// opacityStep is the opacity change per +/- keypress.
const opacityStep = 0.05

// Config collects everything a session needs. All fields are
// required.
type Config struct {
	// Viewer owns the structure and overlay slots.
	Viewer *viewer.Viewer

	// Stage is the terminal stage the viewer renders through; the
	// model drives its camera directly for rotate and zoom.
	Stage *termstage.Stage

	// Manager holds the representation settings.
	Manager *render.Manager

	// Calculator computes variant distances once the structure is
	// loaded.
	Calculator *distance.Calculator

	// Dataset is the validated variant list.
	Dataset *variant.Dataset

	// StructureID is the archive identifier to load.
	StructureID string

	// Mode is the initial measurement mode.
	Mode distance.Mode

	// Theme styles every pane.
	Theme tui.Theme

	// Logger receives session events. Route it through a
	// StatusLogHandler fanout to surface warnings in the UI.
	Logger *slog.Logger
}

// Model is the bubbletea model for one viewer session.
type Model struct {
	viewer     *viewer.Viewer
	stage      *termstage.Stage
	manager    *render.Manager
	calculator *distance.Calculator
	dataset    *variant.Dataset
	logger     *slog.Logger
	theme      tui.Theme
	keys       KeyMap

	structureID string
	mode        distance.Mode

	phase   phase
	loadErr error

	// ready flips on the first WindowSizeMsg; nothing renders before
	// the terminal size is known.
	ready  bool
	width  int
	height int

	focus        FocusRegion
	cursor       int
	scrollOffset int

	sortMode       SortMode
	distanceFilter DistanceFilter
	filter         FilterModel
	slab           *util.Slab

	// results is the outcome of the latest computation pass, nil
	// until the structure loads.
	results distance.Results

	rows   []row
	detail *DetailPane

	// status is the latest log record shown above the help bar;
	// statusSeq matches fade ticks to the record they were scheduled
	// for.
	status    statusLogMsg
	statusSeq int
	hasStatus bool
}

// New builds a session model. The structure load starts when
// bubbletea calls Init.
func New(cfg Config) *Model {
	model := &Model{
		viewer:      cfg.Viewer,
		stage:       cfg.Stage,
		manager:     cfg.Manager,
		calculator:  cfg.Calculator,
		dataset:     cfg.Dataset,
		logger:      cfg.Logger,
		theme:       cfg.Theme,
		keys:        DefaultKeyMap,
		structureID: cfg.StructureID,
		mode:        cfg.Mode,
		slab:        tui.NewSlab(),
		detail:      NewDetailPane(cfg.Theme),
	}
	model.rebuildRows()
	return model
}

// Init fires the structure load command.
func (model *Model) Init() tea.Cmd {
	return model.loadStructure()
}

func (model *Model) loadStructure() tea.Cmd {
	return func() tea.Msg {
		return structureLoadedMsg{err: model.viewer.Load(context.Background(), model.structureID)}
	}
}

// Update routes one message. All state mutation happens here, on the
// UI goroutine.
func (model *Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := message.(type) {
	case tea.WindowSizeMsg:
		model.width = msg.Width
		model.height = msg.Height
		model.ready = true
		model.detail.SetSize(model.detailWidth(), model.detailHeight())
		model.updateDetail()
		model.ensureCursorVisible()
		return model, nil

	case structureLoadedMsg:
		return model.handleStructureLoaded(msg)

	case statusLogMsg:
		model.status = msg
		model.hasStatus = true
		model.statusSeq++
		seq := model.statusSeq
		return model, tea.Tick(statusLogFadeDelay, func(time.Time) tea.Msg {
			return statusLogFadeMsg{seq: seq}
		})

	case statusLogFadeMsg:
		if msg.seq == model.statusSeq {
			model.hasStatus = false
		}
		return model, nil

	case tea.MouseMsg:
		model.handleMouse(msg)
		return model, nil

	case tea.KeyMsg:
		return model.handleKey(msg)
	}

	return model, nil
}

func (model *Model) handleStructureLoaded(msg structureLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		model.phase = phaseFailed
		model.loadErr = msg.err
		return model, nil
	}

	model.phase = phaseReady
	if !model.calculator.Initialize(model.viewer.Structure()) {
		model.logger.Warn("no reference polymer found",
			"structure", model.structureID)
	}
	model.computeDistances()
	model.rebuildRows()
	return model, nil
}

// computeDistances runs one whole-dataset computation pass under the
// current measurement mode.
func (model *Model) computeDistances() {
	model.results = model.calculator.ComputeAll(
		model.dataset.Positions(), model.viewer.Chain(), model.mode)
}

func (model *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if model.filter.Active {
		return model.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(msg, model.keys.FilterActivate):
		model.filter.Active = true
		model.cursor = 0
		model.scrollOffset = 0
		return model, nil

	case key.Matches(msg, model.keys.FilterClear):
		if model.filter.Input != "" {
			model.filter.Clear()
			model.rebuildRows()
		}
		return model, nil

	case key.Matches(msg, model.keys.FocusToggle):
		if model.focus == FocusList {
			model.focus = FocusDetail
		} else {
			model.focus = FocusList
		}
		return model, nil

	case key.Matches(msg, model.keys.Up):
		model.navigate(func() { model.moveCursor(-1) }, model.detail.ScrollUp)
	case key.Matches(msg, model.keys.Down):
		model.navigate(func() { model.moveCursor(1) }, model.detail.ScrollDown)
	case key.Matches(msg, model.keys.PageUp):
		model.navigate(func() { model.moveCursor(-model.visibleRows() / 2) }, model.detail.PageUp)
	case key.Matches(msg, model.keys.PageDown):
		model.navigate(func() { model.moveCursor(model.visibleRows() / 2) }, model.detail.PageDown)
	case key.Matches(msg, model.keys.Home):
		model.navigate(func() { model.setCursor(0) }, model.detail.GotoTop)
	case key.Matches(msg, model.keys.End):
		model.navigate(func() { model.setCursor(len(model.rows) - 1) }, model.detail.GotoBottom)

	case key.Matches(msg, model.keys.CycleSort):
		model.sortMode = model.sortMode.next()
		model.cursor = 0
		model.scrollOffset = 0
		model.rebuildRows()

	case key.Matches(msg, model.keys.CycleDistanceFilter):
		model.distanceFilter = model.distanceFilter.next()
		model.cursor = 0
		model.scrollOffset = 0
		model.rebuildRows()

	default:
		model.handleStructuralKey(msg)
	}

	return model, nil
}

// navigate routes a navigation key to the list or the detail body
// depending on focus.
func (model *Model) navigate(list func(), detail func()) {
	if model.focus == FocusDetail {
		detail()
		return
	}
	list()
}

// handleStructuralKey handles keys that act on the loaded structure.
// Before the load completes every one of them is inert.
func (model *Model) handleStructuralKey(msg tea.KeyMsg) {
	if model.phase != phaseReady {
		return
	}

	switch {
	case key.Matches(msg, model.keys.Select):
		model.selectCurrent()

	case key.Matches(msg, model.keys.Reset):
		model.viewer.ResetView()
		model.viewer.ClearDistanceLines()

	case key.Matches(msg, model.keys.ToggleAllDistances):
		model.viewer.ToggleAllDistanceLines(model.dataset.Variants, model.results)

	case key.Matches(msg, model.keys.ReferencePolymer):
		model.viewer.ToggleReferencePolymerDisplay(!model.viewer.ReferencePolymerShown())

	case key.Matches(msg, model.keys.CycleGeometry):
		model.viewer.ChangeRepresentation(cycleGeometry(model.manager.Settings().Geometry))

	case key.Matches(msg, model.keys.CycleColorScheme):
		model.viewer.UpdateColorScheme(cycleScheme(model.manager.Settings().ColorScheme))

	case key.Matches(msg, model.keys.OpacityUp):
		model.adjustOpacity(opacityStep)
	case key.Matches(msg, model.keys.OpacityDown):
		model.adjustOpacity(-opacityStep)

	case key.Matches(msg, model.keys.Sidechains):
		settings := model.manager.Settings()
		if model.manager.SupportsSidechains(settings.Geometry) {
			model.viewer.ToggleSidechains(!settings.Sidechains)
		}

	case key.Matches(msg, model.keys.MeasurementMode):
		model.switchMeasurementMode()

	case key.Matches(msg, model.keys.RotateLeft):
		model.stage.Rotate(-rotateStep, 0)
	case key.Matches(msg, model.keys.RotateRight):
		model.stage.Rotate(rotateStep, 0)
	case key.Matches(msg, model.keys.RotateUp):
		model.stage.Rotate(0, rotateStep)
	case key.Matches(msg, model.keys.RotateDown):
		model.stage.Rotate(0, -rotateStep)
	case key.Matches(msg, model.keys.ZoomIn):
		model.stage.ZoomBy(zoomInStep)
	case key.Matches(msg, model.keys.ZoomOut):
		model.stage.ZoomBy(zoomOutStep)
	}
}

// selectCurrent focuses the camera on the cursor row and, when a
// measurement exists, shows its distance line. Disabled rows refuse
// structural selection.
func (model *Model) selectCurrent() {
	if model.cursor >= len(model.rows) {
		return
	}
	current := model.rows[model.cursor]
	if !current.enabled {
		return
	}

	model.viewer.FocusOnVariant(current.variant)
	if current.result != nil {
		model.viewer.ShowDistanceLine(current.variant, current.result)
	}
}

// cycleGeometry returns the geometry type after current in catalog
// order, wrapping at the end.
func cycleGeometry(current render.GeometryType) render.GeometryType {
	all := render.AllGeometryTypes()
	for index, geometry := range all {
		if geometry == current {
			return all[(index+1)%len(all)]
		}
	}
	return all[0]
}

// cycleScheme returns the color scheme after current, wrapping at the
// end.
func cycleScheme(current render.ColorScheme) render.ColorScheme {
	all := render.AllColorSchemes()
	for index, scheme := range all {
		if scheme == current {
			return all[(index+1)%len(all)]
		}
	}
	return all[0]
}

func (model *Model) adjustOpacity(delta float64) {
	settings := model.manager.Settings()
	if !model.manager.SupportsOpacity(settings.Geometry) {
		return
	}
	model.viewer.UpdateOpacity(settings.Opacity + delta)
}

// switchMeasurementMode toggles between closest-atom and
// backbone-only and recomputes every distance. Shown distance lines
// are rebuilt from the new results so overlays never mix modes.
func (model *Model) switchMeasurementMode() {
	if model.mode == distance.ModeClosestAtom {
		model.mode = distance.ModeBackboneOnly
	} else {
		model.mode = distance.ModeClosestAtom
	}

	showingAll := model.viewer.ShowingAllDistances()
	model.viewer.ClearDistanceLines()
	model.computeDistances()
	if showingAll {
		model.viewer.ToggleAllDistanceLines(model.dataset.Variants, model.results)
	}
	model.rebuildRows()
}

func (model *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return model, tea.Quit

	case key.Matches(msg, model.keys.FilterClear):
		model.filter.Clear()
		model.rebuildRows()

	case msg.Type == tea.KeyEnter:
		// Keep the residual filter, return keyboard to the list.
		model.filter.Active = false

	case msg.Type == tea.KeyBackspace:
		model.filter.HandleBackspace()
		model.cursor = 0
		model.scrollOffset = 0
		model.rebuildRows()

	case msg.Type == tea.KeyRunes:
		for _, r := range msg.Runes {
			model.filter.HandleRune(r)
		}
		model.cursor = 0
		model.scrollOffset = 0
		model.rebuildRows()
	}

	return model, nil
}

func (model *Model) handleMouse(msg tea.MouseMsg) {
	contentTop := 1
	inList := msg.X < model.listWidth() && msg.Y >= contentTop && msg.Y < contentTop+model.visibleRows()

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if inList {
			model.moveCursor(-1)
		} else {
			model.detail.ScrollUp()
		}
	case tea.MouseButtonWheelDown:
		if inList {
			model.moveCursor(1)
		} else {
			model.detail.ScrollDown()
		}
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress || !inList {
			return
		}
		index := model.scrollOffset + msg.Y - contentTop
		if index >= 0 && index < len(model.rows) {
			model.setCursor(index)
			if model.phase == phaseReady {
				model.selectCurrent()
			}
		}
	}
}

// rebuildRows derives the visible row slice from the dataset and the
// current sort mode, distance filter, and fuzzy filter. Cursor and
// scroll are clamped to the new length and the detail pane follows
// the cursor.
func (model *Model) rebuildRows() {
	resolved := model.viewer.ResolvedPositions()
	pattern := []rune(strings.ToLower(model.filter.Input))

	sorted := sortVariants(model.dataset.Variants, model.sortMode, model.results)
	rows := make([]row, 0, len(sorted))
	for _, item := range sorted {
		result, attempted := lookupResult(model.results, item.Position)
		if !model.distanceFilter.admits(result, attempted) {
			continue
		}

		var matches []int
		if len(pattern) > 0 {
			outcome := tui.FuzzyMatch(item.Name, pattern, model.slab)
			if outcome.Score <= 0 {
				continue
			}
			matches = outcome.Positions
		}

		rows = append(rows, row{
			variant:   item,
			result:    result,
			attempted: attempted,
			enabled:   resolved[item.Position],
			matches:   matches,
		})
	}

	model.rows = rows
	if model.cursor >= len(rows) {
		model.cursor = max(0, len(rows)-1)
	}
	model.ensureCursorVisible()
	model.updateDetail()
}

func lookupResult(results distance.Results, position int) (*distance.Result, bool) {
	if results == nil {
		return nil, false
	}
	result, attempted := results[position]
	return result, attempted
}

func (model *Model) moveCursor(delta int) {
	model.setCursor(model.cursor + delta)
}

func (model *Model) setCursor(index int) {
	if len(model.rows) == 0 {
		model.cursor = 0
		return
	}
	if index < 0 {
		index = 0
	}
	if index >= len(model.rows) {
		index = len(model.rows) - 1
	}
	model.cursor = index
	model.ensureCursorVisible()
	model.updateDetail()
}

func (model *Model) ensureCursorVisible() {
	visible := model.visibleRows()
	if visible <= 0 {
		return
	}
	maxOffset := max(0, len(model.rows)-visible)
	if model.scrollOffset > maxOffset {
		model.scrollOffset = maxOffset
	}
	if model.cursor < model.scrollOffset {
		model.scrollOffset = model.cursor
	}
	if model.cursor >= model.scrollOffset+visible {
		model.scrollOffset = model.cursor - visible + 1
	}
}

func (model *Model) updateDetail() {
	if len(model.rows) == 0 || model.cursor >= len(model.rows) {
		model.detail.Clear()
		return
	}
	model.detail.SetContent(model.rows[model.cursor], model.mode)
}

// Layout arithmetic. One header line, one separator above the help
// bar, one help line; the rest is content.

func (model *Model) contentHeight() int {
	return max(1, model.height-3)
}

func (model *Model) visibleRows() int {
	return model.contentHeight()
}

func (model *Model) listWidth() int {
	width := model.width * 2 / 5
	if width < 24 {
		width = min(24, model.width)
	}
	return width
}

func (model *Model) rightWidth() int {
	return max(1, model.width-model.listWidth()-1)
}

func (model *Model) structureHeight() int {
	return max(1, model.contentHeight()*3/5)
}

func (model *Model) detailWidth() int {
	return model.rightWidth()
}

func (model *Model) detailHeight() int {
	return max(1, model.contentHeight()-model.structureHeight()-1)
}

// View renders the full frame.
func (model *Model) View() string {
	if !model.ready {
		return "loading..."
	}
	if model.phase == phaseFailed {
		return model.renderFailure()
	}

	sections := []string{
		model.renderTopLine(),
		model.renderContent(),
		lipgloss.NewStyle().Foreground(model.theme.BorderColor).
			Render(strings.Repeat("─", model.width)),
		model.renderHelp(),
	}
	frame := strings.Join(sections, "\n")

	if model.hasStatus {
		frame = tui.SpliceOverlay(frame, []string{model.renderStatusLine()}, 0, model.height-2)
	}
	return frame
}

func (model *Model) renderFailure() string {
	message := lipgloss.NewStyle().Foreground(model.theme.ErrorText).
		Render("structure load failed")
	detail := lipgloss.NewStyle().Foreground(model.theme.NormalText).
		Render(truncateString(model.loadErr.Error(), model.width-4))
	hint := lipgloss.NewStyle().Foreground(model.theme.FaintText).
		Render("press q to quit")
	return lipgloss.Place(model.width, model.height, lipgloss.Center, lipgloss.Center,
		message+"\n\n"+detail+"\n\n"+hint)
}

// renderTopLine renders the header rule, or the filter bar while the
// fuzzy filter is active or holds residual input.
func (model *Model) renderTopLine() string {
	if bar := model.filter.View(model.theme, model.width); bar != "" {
		return bar
	}
	return model.renderHeader()
}

// renderHeader draws the btop-style header rule: dataset identity,
// computation stats, and the current sort, filter, and representation
// settings embedded in a horizontal line.
func (model *Model) renderHeader() string {
	rule := lipgloss.NewStyle().Foreground(model.theme.BorderColor)
	label := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground)
	dim := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	identity := model.structureID
	if model.dataset.Gene != "" {
		identity = model.dataset.Gene + " · " + identity
	}

	stats := fmt.Sprintf("%d variants", len(model.dataset.Variants))
	switch model.phase {
	case phaseLoading:
		stats += " · loading structure"
	case phaseReady:
		stats += fmt.Sprintf(" · %d computed", model.results.Computed())
	}

	settings := model.manager.Settings()
	controls := fmt.Sprintf("sort %s · filter %s · %s · %s/%s %s",
		model.sortMode, model.distanceFilter, model.mode,
		settings.Geometry, settings.ColorScheme,
		render.FormatOpacity(settings.Opacity))

	segments := rule.Render("─── ") + label.Render(identity) +
		rule.Render(" ── ") + dim.Render(stats) +
		rule.Render(" ── ") + dim.Render(controls) + rule.Render(" ")

	remaining := model.width - lipgloss.Width(segments)
	if remaining > 0 {
		segments += rule.Render(strings.Repeat("─", remaining))
	}
	return segments
}

func (model *Model) renderContent() string {
	list := model.renderListPane()
	divider := model.renderDivider()
	right := model.renderRightColumn()
	return lipgloss.JoinHorizontal(lipgloss.Top, list, divider, right)
}

func (model *Model) renderListPane() string {
	height := model.contentHeight()
	rowWidth := model.listWidth() - 1

	if len(model.rows) == 0 {
		empty := lipgloss.NewStyle().Foreground(model.theme.FaintText).
			Render("no variants match")
		return lipgloss.Place(model.listWidth(), height, lipgloss.Center, lipgloss.Center, empty)
	}

	renderer := NewListRenderer(model.theme, rowWidth)
	lines := make([]string, 0, height)
	for offset := 0; offset < height; offset++ {
		index := model.scrollOffset + offset
		if index >= len(model.rows) {
			lines = append(lines, strings.Repeat(" ", rowWidth))
			continue
		}
		lines = append(lines, renderer.RenderRow(
			model.rows[index], index == model.cursor, model.focus == FocusList))
	}

	scrollbar := tui.RenderScrollbar(model.theme, height,
		len(model.rows), height, model.scrollOffset, model.focus == FocusList)
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(lines, "\n"), scrollbar)
}

func (model *Model) renderDivider() string {
	divider := lipgloss.NewStyle().Foreground(model.theme.BorderColor).Render("│")
	lines := make([]string, model.contentHeight())
	for index := range lines {
		lines[index] = divider
	}
	return strings.Join(lines, "\n")
}

func (model *Model) renderRightColumn() string {
	width := model.rightWidth()
	structureHeight := model.structureHeight()

	var structurePane string
	switch model.phase {
	case phaseReady:
		structurePane = model.stage.View(width, structureHeight)
	default:
		waiting := lipgloss.NewStyle().Foreground(model.theme.FaintText).
			Render("loading " + model.structureID + "...")
		structurePane = lipgloss.Place(width, structureHeight, lipgloss.Center, lipgloss.Center, waiting)
	}

	rule := lipgloss.NewStyle().Foreground(model.theme.BorderColor).
		Render(strings.Repeat("─", width))

	return structurePane + "\n" + rule + "\n" + model.detail.View()
}

func (model *Model) renderHelp() string {
	focusLabel := "[LIST]"
	if model.focus == FocusDetail {
		focusLabel = "[DETAIL]"
	}

	distancesLabel := "show all dists"
	if model.phase == phaseReady && model.viewer.ShowingAllDistances() {
		distancesLabel = "hide all dists"
	}

	help := fmt.Sprintf(
		" %s ↑↓ move · enter focus · d %s · n reference · r reset · s/c/x/+/- display · o sort · f dist filter · m mode · / filter · q quit",
		focusLabel, distancesLabel)

	position := ""
	if len(model.rows) > 0 {
		position = fmt.Sprintf("%d/%d ", model.cursor+1, len(model.rows))
	}

	gap := model.width - lipgloss.Width(help) - lipgloss.Width(position)
	if gap < 1 {
		help = truncateString(help, max(0, model.width-lipgloss.Width(position)-1))
		gap = 1
	}

	return lipgloss.NewStyle().Foreground(model.theme.HelpText).Render(help) +
		strings.Repeat(" ", gap) +
		lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(position)
}

func (model *Model) renderStatusLine() string {
	style := lipgloss.NewStyle().Foreground(model.theme.WarningText)
	if model.status.Level >= slog.LevelError {
		style = lipgloss.NewStyle().Foreground(model.theme.ErrorText)
	}
	line := " " + truncateString(model.status.Summary, model.width-2)
	return style.Render(line)
}
