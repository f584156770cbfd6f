package render

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// HUDRows is the number of rows the status bar occupies.
const HUDRows = 2

// Hearts renders lives as filled hearts padded with empty ones up to max.
func Hearts(lives, max int) string {
	lives = core.Clamp(lives, 0, core.Max(max, lives))
	return strings.Repeat("♥", lives) + strings.Repeat("♡", core.Max(max-lives, 0))
}

// ProgressBar renders frac (0..1) as a bar of width cells.
func ProgressBar(frac float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(core.ClampF(frac, 0, 1) * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Stars is the marathon star counter: one per hundred units of distance.
func Stars(distance int) int {
	if distance < 0 {
		return 0
	}
	return distance / 100
}

// DrawStatus writes left and right aligned text on the first row and a
// rule below it.
func DrawStatus(dst *core.Screen, left, right string) {
	dst.DrawTextColor(1, 0, left, core.ColorBrightWhite)
	x := dst.Width() - len([]rune(right)) - 1
	dst.DrawTextColor(x, 0, right, core.ColorBrightYellow)
	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorGray)
}

// DrawMessage draws a boxed title and subtitle in the middle of the screen.
func DrawMessage(dst *core.Screen, title, subtitle string) {
	titleW, subW := len([]rune(title)), len([]rune(subtitle))
	boxW := core.Max(titleW, subW) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextColor(boxX+(boxW-titleW)/2, boxY+1, title, core.ColorBrightWhite)
	dst.DrawTextColor(boxX+(boxW-subW)/2, boxY+3, subtitle, core.ColorGray)
}

// Distance formats a distance against a goal, e.g. "1200/5800".
func Distance(distance int, goal float64) string {
	return fmt.Sprintf("%d/%d", distance, int(goal))
}
