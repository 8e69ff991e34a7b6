// Package tiling computes window boxes for arranging a set of windows over
// an output area.
package tiling

import (
	"fmt"
	"math"

	"github.com/1broseidon/wlkit/internal/geom"
)

// Mode selects the arrangement.
type Mode string

const (
	ModeGrid        Mode = "grid"
	ModeVertical    Mode = "vertical"
	ModeHorizontal  Mode = "horizontal"
	ModeMasterStack Mode = "master_stack"
)

// Modes lists the supported modes.
var Modes = []Mode{ModeGrid, ModeVertical, ModeHorizontal, ModeMasterStack}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	for _, known := range Modes {
		if m == known {
			return true
		}
	}
	return false
}

// Layout parameterizes an arrangement.
type Layout struct {
	Mode Mode
	Gap  int
	// FlexibleLastRow lets a partial last grid row span the full width.
	FlexibleLastRow bool

	// Master-stack parameters.
	MasterPercent int
	MaxStackRows  int
	MaxStackCols  int
}

// CalculateGrid determines the optimal grid dimensions for the given number of windows
func CalculateGrid(numWindows int) (rows, cols int) {
	if numWindows == 0 {
		return 0, 0
	}

	// Columns first (ceiling of square root)
	cols = int(math.Ceil(math.Sqrt(float64(numWindows))))
	rows = int(math.Ceil(float64(numWindows) / float64(cols)))

	return rows, cols
}

// Positions computes n window boxes inside area. It returns fewer boxes
// than n when the layout caps the number of windows; the remaining windows
// are left alone by callers.
func Positions(n int, area geom.Rect, layout Layout) ([]geom.Rect, error) {
	if n == 0 {
		return nil, nil
	}
	gap := layout.Gap

	var rows, cols int
	flexibleLastRow := layout.FlexibleLastRow

	switch layout.Mode {
	case ModeGrid:
		rows, cols = CalculateGrid(n)

	case ModeVertical:
		rows, cols = n, 1
		flexibleLastRow = false

	case ModeHorizontal:
		rows, cols = 1, n
		flexibleLastRow = false

	case ModeMasterStack:
		return masterStack(n, area, layout)

	default:
		return nil, fmt.Errorf("unsupported layout mode: %q", layout.Mode)
	}

	slotWidth := (area.Width - (cols+1)*gap) / cols
	slotHeight := (area.Height - (rows+1)*gap) / rows
	if slotWidth <= 0 || slotHeight <= 0 {
		return nil, fmt.Errorf(
			"insufficient space for layout: area=%dx%d rows=%d cols=%d gap=%d (slot=%dx%d)",
			area.Width, area.Height, rows, cols, gap, slotWidth, slotHeight,
		)
	}

	lastRow := rows - 1
	inLastRow := n - lastRow*cols
	lastRowWidth := slotWidth
	useFlexible := flexibleLastRow && inLastRow < cols
	if useFlexible {
		lastRowWidth = (area.Width - (inLastRow+1)*gap) / inLastRow
	}

	positions := make([]geom.Rect, n)
	for i := range n {
		row := i / cols
		col := i % cols
		width := slotWidth
		if useFlexible && row == lastRow {
			width = lastRowWidth
		}
		positions[i] = geom.Rect{
			X:      area.X + gap + col*(width+gap),
			Y:      area.Y + gap + row*(slotHeight+gap),
			Width:  width,
			Height: slotHeight,
		}
	}
	return positions, nil
}

func masterStack(n int, area geom.Rect, layout Layout) ([]geom.Rect, error) {
	gap := layout.Gap
	percent := layout.MasterPercent
	if percent <= 0 || percent >= 100 {
		percent = 60
	}
	maxRows := max(layout.MaxStackRows, 1)
	maxCols := max(layout.MaxStackCols, 1)

	masterWidth := area.Width*percent/100 - gap
	height := area.Height - 2*gap

	if n == 1 {
		if masterWidth <= 0 || height <= 0 {
			return nil, fmt.Errorf("insufficient space for master-stack layout: area=%dx%d gap=%d", area.Width, area.Height, gap)
		}
		return []geom.Rect{{X: area.X + gap, Y: area.Y + gap, Width: masterWidth, Height: height}}, nil
	}

	stackX := area.X + masterWidth + 2*gap
	stackWidth := area.Width - masterWidth - 3*gap
	stackCount := n - 1

	stackCols := min(int(math.Ceil(float64(stackCount)/float64(maxRows))), maxCols)
	stackCols = max(stackCols, 1)
	stackRows := min(int(math.Ceil(float64(stackCount)/float64(stackCols))), maxRows)

	stackCount = min(stackCount, stackRows*stackCols)

	cellWidth := (stackWidth - (stackCols-1)*gap) / stackCols
	cellHeight := (height - (stackRows-1)*gap) / stackRows
	if masterWidth <= 0 || cellWidth <= 0 || cellHeight <= 0 {
		return nil, fmt.Errorf(
			"insufficient space for master-stack layout: area=%dx%d masterWidth=%d cellWidth=%d cellHeight=%d gap=%d",
			area.Width, area.Height, masterWidth, cellWidth, cellHeight, gap,
		)
	}

	positions := make([]geom.Rect, stackCount+1)
	positions[0] = geom.Rect{X: area.X + gap, Y: area.Y + gap, Width: masterWidth, Height: height}
	for i := range stackCount {
		row := i / stackCols
		col := i % stackCols
		positions[i+1] = geom.Rect{
			X:      stackX + col*(cellWidth+gap),
			Y:      area.Y + gap + row*(cellHeight+gap),
			Width:  cellWidth,
			Height: cellHeight,
		}
	}
	return positions, nil
}
