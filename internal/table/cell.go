package table

import (
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"str2table/internal/cell"
	"str2table/internal/selector"
)

// Cell is one typed value with its output color.
type Cell struct {
	Value cell.Value
	Color selector.Color
}

func paint(attr color.Attribute) *color.Color {
	c := color.New(attr)
	c.EnableColor()
	return c
}

var palette = map[selector.Color]*color.Color{
	selector.Red:    paint(color.FgRed),
	selector.Green:  paint(color.FgGreen),
	selector.Blue:   paint(color.FgBlue),
	selector.Yellow: paint(color.FgYellow),
	selector.Grey:   paint(color.FgHiBlack),
	selector.White:  paint(color.FgWhite),
}

// Paint wraps s in the escape codes of c. Black leaves s unchanged.
func Paint(c selector.Color, s string) string {
	p, ok := palette[c]
	if !ok {
		return s
	}
	return p.Sprint(s)
}

func (c Cell) String() string { return c.Value.String() }

// Colored renders the value wrapped in the cell's color.
func (c Cell) Colored() string { return Paint(c.Color, c.String()) }

// Debug renders value, kind and color, e.g. "123<int><Black>".
func (c Cell) Debug() string {
	return c.Value.Debug() + "<" + c.Color.String() + ">"
}

// Width is the display width of the plain rendering.
func (c Cell) Width() int { return runewidth.StringWidth(c.String()) }
