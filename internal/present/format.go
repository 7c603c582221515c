package present

import (
	"fmt"

	"github.com/san-kum/seesaw/internal/balance"
)

// ObjectColor shades from light to dark blue as weight grows.
func ObjectColor(weight int) (r, g, b uint8) {
	intensity := float64(weight) / balance.MaxWeight
	blue := int(100 + 155*intensity)
	if blue > 255 {
		blue = 255
	}
	if blue < 0 {
		blue = 0
	}
	return 50, 150, uint8(blue)
}

func HexColor(weight int) string {
	r, g, b := ObjectColor(weight)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func Label(weight int) string { return fmt.Sprintf("%dkg", weight) }

func FormatWeight(w float64) string { return fmt.Sprintf("%.1f kg", w) }

func FormatAngle(a float64) string { return fmt.Sprintf("%.1f°", a) }
