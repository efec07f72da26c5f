package stats

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/verte-zerg/liftstats/internal/model"
)

const (
	barChar             = "█"
	barSeparator        = " │ "
	minBarWidth         = 10
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

// Bar colors by day size, biggest threshold first.
var barColors = []struct {
	min  int
	code string
}{
	{min: 20000, code: "\x1b[35m"},
	{min: 10000, code: "\x1b[36m"},
	{min: 0, code: "\x1b[34m"},
}

// RenderDailyBars prints a horizontal bar per day scaled to the biggest day.
// A width of 0 uses the terminal width.
func RenderDailyBars(w io.Writer, daily []model.DayVert, width int, forceColor bool) error {
	if len(daily) == 0 {
		return nil
	}
	if width <= 0 {
		width = terminalWidth()
	}
	maxVert := 0
	valueWidth := 0
	for _, d := range daily {
		if d.Vert > maxVert {
			maxVert = d.Vert
		}
		if n := len(humanize.Comma(int64(d.Vert))); n > valueWidth {
			valueWidth = n
		}
	}
	barWidth := BarWidthFor(width, valueWidth)
	useColor := shouldUseColor(w, forceColor)

	if _, err := fmt.Fprintln(w, "Daily Vert"); err != nil {
		return err
	}
	for _, d := range daily {
		n := 0
		if maxVert > 0 {
			n = d.Vert * barWidth / maxVert
		}
		if n == 0 && d.Vert > 0 {
			n = 1
		}
		bar := strings.Repeat(barChar, n)
		if useColor && n > 0 {
			bar = barColor(d.Vert) + bar + colorReset
		}
		pad := strings.Repeat(" ", barWidth-n)
		line := fmt.Sprintf("%s%s%s%s %*s", d.Date, barSeparator, bar, pad, valueWidth, humanize.Comma(int64(d.Vert)))
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// BarWidthFor computes the bar area that fits within the total width next to
// the date label and a value column of valueWidth cells.
func BarWidthFor(totalWidth, valueWidth int) int {
	labelWidth := len(dateLayout) + displayWidth(barSeparator) + 1 + valueWidth
	barWidth := totalWidth - labelWidth
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}
	return barWidth
}

func barColor(vert int) string {
	for _, c := range barColors {
		if vert >= c.min {
			return c.code
		}
	}
	return barColors[len(barColors)-1].code
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
