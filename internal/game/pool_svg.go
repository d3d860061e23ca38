package game

import (
	"fmt"
	"strings"
)

const cushionThickness = 25

var ballColours = []string{
	"WHITE",
	"YELLOW",
	"BLUE",
	"RED",
	"PURPLE",
	"ORANGE",
	"GREEN",
	"BROWN",
	"BLACK",
	"LIGHTYELLOW",
	"LIGHTBLUE",
	"PINK",
	"MEDIUMPURPLE",
	"LIGHTSALMON",
	"LIGHTGREEN",
	"SANDYBROWN",
}

// BallColour returns the display colour of ball number n.
func BallColour(n uint8) string {
	return ballColours[int(n)%len(ballColours)]
}

// SVG renders t as a standalone SVG document, cushions drawn just outside
// the playing surface.
func (e *Engine) SVG(t *Table) string {
	w, l := e.c.TableWidth, e.c.TableLength
	pad := float64(cushionThickness)

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="no"?>` + "\n")
	b.WriteString(`<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN"` + "\n")
	b.WriteString(`"http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd">` + "\n")
	fmt.Fprintf(&b, `<svg width="%.0f" height="%.0f" viewBox="%.0f %.0f %.0f %.0f"`+"\n",
		(w+2*pad)/2, (l+2*pad)/2, -pad, -pad, w+2*pad, l+2*pad)
	b.WriteString(`xmlns="http://www.w3.org/2000/svg"` + "\n")
	b.WriteString(`xmlns:xlink="http://www.w3.org/1999/xlink">` + "\n")
	fmt.Fprintf(&b, `<rect width="%.0f" height="%.0f" x="0" y="0" fill="#C0D0C0" />`+"\n", w, l)

	for _, obj := range t.Objects() {
		switch o := obj.(type) {
		case *HorizontalCushion:
			y := o.Y
			if y <= 0 {
				y -= pad
			}
			fmt.Fprintf(&b, ` <rect width="%.0f" height="%.0f" x="%.0f" y="%.0f" fill="darkgreen" />`+"\n", w+2*pad, pad, -pad, y)
		case *VerticalCushion:
			x := o.X
			if x <= 0 {
				x -= pad
			}
			fmt.Fprintf(&b, ` <rect width="%.0f" height="%.0f" x="%.0f" y="%.0f" fill="darkgreen" />`+"\n", pad, l+2*pad, x, -pad)
		case *Pocket:
			fmt.Fprintf(&b, ` <circle cx="%.0f" cy="%.0f" r="%.0f" fill="black" />`+"\n", o.Pos.X, o.Pos.Y, e.c.PocketRadius)
		case *StillBall:
			fmt.Fprintf(&b, ` <circle cx="%.0f" cy="%.0f" r="%.1f" fill="%s" />`+"\n", o.Pos.X, o.Pos.Y, e.c.BallRadius, BallColour(o.Number))
		case *RollingBall:
			fmt.Fprintf(&b, ` <circle cx="%.0f" cy="%.0f" r="%.1f" fill="%s" />`+"\n", o.Pos.X, o.Pos.Y, e.c.BallRadius, BallColour(o.Number))
		}
	}

	b.WriteString("</svg>\n")
	return b.String()
}
