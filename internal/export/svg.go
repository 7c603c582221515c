package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/seesaw/internal/balance"
	"github.com/san-kum/seesaw/internal/present"
	"github.com/san-kum/seesaw/internal/seesaw"
)

// StateToSVG draws the seesaw at rest: the container, the tilted bar and
// every attached object coloured by weight.
func StateToSVG(st seesaw.State, g seesaw.Geometry) string {
	var sb strings.Builder

	w, h := g.ContainerWidth, g.ContainerHeight
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#f0f0f0"/>
`, w, h, w, h))

	px, py := g.Pivot()
	sb.WriteString(fmt.Sprintf(`<polygon points="%.1f,%.1f %.1f,%.1f %.1f,%.1f" fill="#555555"/>
`, px, py, px-15, py+30, px+15, py+30))

	// The bar is drawn unrotated and turned about its bottom centre.
	sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#8b4513" transform="rotate(%.2f %.1f %.1f)"/>
`, px-g.BarWidth/2, py-g.BarHeight, g.BarWidth, g.BarHeight, st.Angle, px, py))

	for _, o := range st.Objects {
		if !o.Attached {
			continue
		}
		cx, cy := g.RestCenter(o.Position, st.Angle)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
<text x="%.1f" y="%.1f" font-size="12" font-family="sans-serif" fill="#ffffff" text-anchor="middle" dominant-baseline="middle">%s</text>
`, cx, cy, g.ObjectSize/2, present.HexColor(o.Weight), cx, cy, present.Label(o.Weight)))
	}

	sb.WriteString(fmt.Sprintf(`<text x="10" y="20" font-size="14" font-family="sans-serif" fill="#333333">angle %s  left %s  right %s</text>
`, present.FormatAngle(st.Angle), present.FormatWeight(st.LeftWeight), present.FormatWeight(st.RightWeight)))

	sb.WriteString("</svg>")
	return sb.String()
}

// AnglesToSVG plots a sequence of tilt angles as a polyline on a fixed
// [-MaxAngle, MaxAngle] scale.
func AnglesToSVG(angles []float64, width, height int, strokeColor string) string {
	if len(angles) < 2 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#333333"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, float64(height)/2, width, float64(height)/2, strokeColor))

	step := float64(width) / float64(len(angles)-1)
	for i, a := range angles {
		x := float64(i) * step
		y := float64(height) / 2 * (1 - a/balance.MaxAngle)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
