// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/liftstats/internal/lifts"
	"github.com/verte-zerg/liftstats/internal/model"
	"github.com/verte-zerg/liftstats/internal/stats"
	"github.com/verte-zerg/liftstats/internal/store"
)

const (
	tabOverview = iota
	tabLifts
	tabDays
)

const topLiftCount = 5

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#0E1FE9"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Width(24).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	cardMutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")).Italic(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	modalStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#0E1FE9")).
			Padding(1, 2)
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	store *store.Store
	cfg   model.StatsConfig
	clock stats.Clock

	report stats.Report
	errMsg string

	tabs       []string
	activeTab  int
	viewports  []viewport.Model
	liftTable  table.Model
	liftLayout tableLayout

	width  int
	height int

	lapMode  bool
	lapInput textinput.Model
	lapError string
}

type tableLayout struct {
	width    int
	height   int
	rowCount int
}

// NewModel constructs a stats UI model.
func NewModel(st *store.Store, cfg model.StatsConfig, clock stats.Clock) *Model {
	if clock == nil {
		clock = stats.SystemClock{Location: cfg.Location}
	}
	m := &Model{
		store: st,
		cfg:   cfg,
		clock: clock,
		tabs:  []string{"Overview", "Lifts", "Days"},
	}
	m.initLapInput()
	m.liftTable = buildLiftTable(nil, 0, 1)
	m.initViewports()
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.lapMode {
			return m.updateLapInput(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "r":
			m.refreshReport()
			m.updateLayout()
			return m, nil
		case "/":
			return m.startLapInput()
		case "g", "home":
			if m.activeTab == tabLifts {
				m.liftTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabLifts {
				m.liftTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabLifts {
				var cmd tea.Cmd
				m.liftTable, cmd = m.liftTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.lapMode {
		return fitLines(m.renderLapModal(), m.width, m.height)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) initLapInput() {
	input := textinput.New()
	input.Prompt = "Lift: "
	input.Placeholder = stats.DefaultLapLift
	input.CharLimit = 64
	input.Cursor.SetMode(cursor.CursorBlink)
	m.lapInput = input
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
	m.setLiftTableSize(m.width, vpHeight)
	promptWidth := lipgloss.Width(m.lapInput.Prompt)
	m.lapInput.Width = maxInt(10, modalInnerWidth(m.width)-promptWidth)
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabLifts {
		m.liftTable.Focus()
	} else {
		m.liftTable.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	settings := padLines(m.renderSettingsSummary(), m.width)
	return tabs + "\n" + settings
}

func (m *Model) renderSettingsSummary() string {
	season := m.cfg.Season
	if season == "" {
		season = "all"
	}
	lapLift := m.report.Config.LapLift
	if lapLift == "" {
		lapLift = stats.DefaultLapLift
	}
	zone := "local"
	if m.cfg.Location != nil {
		zone = m.cfg.Location.String()
	}
	summary := fmt.Sprintf("Settings: season=%s  lap-lift=%s  tz=%s  cutoff=%s  today=%s",
		season, lapLift, zone, formatCutoff(m.report.Config.StreakCutoff), stats.Today(m.clock))
	summary = truncateLine(summary, m.width)
	return headerStyle.Render(summary)
}

func formatCutoff(d time.Duration) string {
	total := int(d / time.Minute)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func (m *Model) renderHelp() string {
	help := "Nav: left/right  Scroll: up/down/pgup/pgdn  Lap lift: /  Reload: r  Quit: q"
	return headerStyle.Render(truncateLine(help, m.width))
}

func (m *Model) renderFooter() string {
	if m.errMsg != "" {
		return m.renderHelp() + "\n" + errorStyle.Render(m.errMsg)
	}
	return m.renderHelp()
}

func (m *Model) renderBody(height int) string {
	if m.activeTab == tabLifts {
		if len(m.report.LiftCounts) == 0 {
			return fitLines("No rides found.", m.width, height)
		}
		view := tableMutedStyle.Render(m.liftTable.View())
		return fitLines(view, m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.store, m.cfg, m.clock)
	if err != nil {
		m.errMsg = err.Error()
		for i := range m.viewports {
			m.viewports[i].SetContent("Failed to load stats.")
		}
		return
	}
	m.errMsg = ""
	m.report = report
	width := m.width
	if width <= 0 {
		width = 80
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.applyLiftTable(m.report.LiftCounts, width, bodyHeight)
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	if m.errMsg != "" {
		for i := range m.viewports {
			m.viewports[i].SetContent("Failed to load stats.")
		}
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.report, width))
	m.viewports[tabDays].SetContent(renderDays(m.report.Days))
}

func renderOverview(r stats.Report, width int) string {
	if len(r.Days) == 0 {
		return "No ski days found."
	}
	sections := []string{renderSummaryCards(r, width)}
	if top := renderTopLifts(r.LiftCounts); top != "" {
		sections = append(sections, top)
	}
	sections = append(sections, renderBars(r.Daily, width))
	return strings.TrimRight(strings.Join(sections, "\n\n"), "\n")
}

func renderSummaryCards(r stats.Report, width int) string {
	lines := stats.SummaryLines(r)
	cards := make([]string, 0, len(lines))
	for _, l := range lines {
		cards = append(cards, metricCard(l.Label, l.Value))
	}
	cardWidth := lipgloss.Width(cards[0])
	perRow := maxInt(1, width/maxInt(1, cardWidth))
	rows := make([]string, 0, len(cards)/perRow+1)
	for start := 0; start < len(cards); start += perRow {
		end := minInt(start+perRow, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[start:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func metricCard(label, value string) string {
	valueStyle := cardValueStyle
	if value == stats.NotEnoughData {
		valueStyle = cardMutedStyle
	}
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), valueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderTopLifts(counts []model.LiftCount) string {
	names := stats.TopLifts(counts, topLiftCount)
	if len(names) == 0 {
		return ""
	}
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, swatch(name)+" "+liftLabel(name))
	}
	return headerStyle.Render("Top lifts: ") + strings.Join(parts, "  ")
}

func renderBars(daily []model.DayVert, width int) string {
	var buf bytes.Buffer
	if err := stats.RenderDailyBars(&buf, daily, width, true); err != nil {
		return fmt.Sprintf("Failed to render daily vert: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func renderDays(days []model.DayRecord) string {
	var buf bytes.Buffer
	if err := stats.RenderDayTable(&buf, days); err != nil {
		return fmt.Sprintf("Failed to render days: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func swatch(lift string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(lifts.Color(lift))).Render("■")
}

func liftLabel(lift string) string {
	if lifts.IsSnowBirdLift(lift) {
		return lifts.SnowBirdLiftName(lift) + " (Snowbird)"
	}
	return lift
}

func buildLiftTable(counts []model.LiftCount, width, height int) table.Model {
	cols, rows := buildLiftTableData(counts)
	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(liftTableStyles())
	return t
}

func buildLiftTableData(counts []model.LiftCount) ([]table.Column, []table.Row) {
	columns := []table.Column{
		{Title: "Lift", Width: 24},
		{Title: "Rides", Width: 6},
		{Title: "Share", Width: 7},
		{Title: "Vert/Ride", Width: 10},
		{Title: "Color", Width: 8},
	}
	rows := make([]table.Row, 0, len(counts))
	total := 0
	for _, c := range counts {
		total += c.Rides
	}
	for _, c := range counts {
		share := 0.0
		if total > 0 {
			share = float64(c.Rides) / float64(total) * 100
		}
		vert := "-"
		if v := lifts.SnowBirdVert(c.Lift); v > 0 {
			vert = strconv.Itoa(v)
		}
		rows = append(rows, table.Row{
			liftLabel(c.Lift),
			strconv.Itoa(c.Rides),
			fmt.Sprintf("%.1f%%", share),
			vert,
			lifts.Color(c.Lift),
		})
	}
	return columns, rows
}

func (m *Model) applyLiftTable(counts []model.LiftCount, width, height int) {
	cols, rows := buildLiftTableData(counts)
	m.liftTable.SetColumns(cols)
	m.liftTable.SetRows(rows)
	m.liftLayout.rowCount = len(rows)
	m.liftLayout.width = 0
	m.setLiftTableSize(width, height)
}

func (m *Model) setLiftTableSize(width, height int) {
	viewportHeight := maxInt(1, height-1)
	if m.liftLayout.width == width && m.liftLayout.height == viewportHeight {
		return
	}
	m.liftLayout.width = width
	m.liftLayout.height = viewportHeight
	m.liftTable.SetWidth(width)
	m.liftTable.SetHeight(viewportHeight)
	viewportHeight = m.adjustLiftTableHeight(height)
	if m.liftLayout.height != viewportHeight {
		m.liftLayout.height = viewportHeight
		m.liftTable.SetHeight(viewportHeight)
	}
}

func (m *Model) adjustLiftTableHeight(bodyHeight int) int {
	target := maxInt(1, bodyHeight)
	height := m.liftTable.Height()
	viewHeight := lipgloss.Height(m.liftTable.View())
	if viewHeight == target {
		return height
	}
	height += target - viewHeight
	if height < 1 {
		height = 1
	}
	return height
}

func liftTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func (m *Model) startLapInput() (tea.Model, tea.Cmd) {
	m.lapMode = true
	m.lapError = ""
	m.lapInput.SetValue(m.report.Config.LapLift)
	m.lapInput.CursorEnd()
	return m, m.lapInput.Focus()
}

func (m *Model) updateLapInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.lapMode = false
		m.lapError = ""
		m.lapInput.Blur()
		return m, nil
	case tea.KeyEnter:
		if err := m.applyLapInput(); err != nil {
			m.lapError = err.Error()
			return m, nil
		}
		m.lapMode = false
		m.lapError = ""
		m.lapInput.Blur()
		m.refreshReport()
		return m, nil
	}
	var cmd tea.Cmd
	m.lapInput, cmd = m.lapInput.Update(msg)
	return m, cmd
}

func (m *Model) applyLapInput() error {
	lift := strings.TrimSpace(m.lapInput.Value())
	if lift == "" {
		m.cfg.LapLift = ""
		return nil
	}
	if _, ok := stats.RidesPerLift(m.report.Days)[lift]; !ok && len(m.report.Days) > 0 {
		return fmt.Errorf("no rides on %q this season", lift)
	}
	m.cfg.LapLift = lift
	return nil
}

func (m *Model) renderLapModal() string {
	title := cardValueStyle.Render("Fastest Lap Lift")
	body := []string{
		title,
		m.lapInput.View(),
		headerStyle.Render("Empty resets to " + stats.DefaultLapLift + "."),
		headerStyle.Render("Enter to apply / Esc to cancel"),
	}
	if m.lapError != "" {
		body = append(body, errorStyle.Render(m.lapError))
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func modalWidth(width int) int {
	return maxInt(40, minInt(width-4, 80))
}

func modalInnerWidth(width int) int {
	w := modalWidth(width)
	w -= 6 // 2 border + 4 padding
	if w < 10 {
		return 10
	}
	return w
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
