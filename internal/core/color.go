package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for board elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// numberColors are the classic colors of adjacency numbers 1..8.
var numberColors = [...]Color{
	ColorBrightBlue,
	ColorGreen,
	ColorBrightRed,
	ColorBlue,
	ColorRed,
	ColorCyan,
	ColorWhite,
	ColorGray,
}

// NumberColor returns the color for an adjacency value. MultiMine values
// above 8 reuse the palette.
func NumberColor(n int) Color {
	if n <= 0 {
		return ColorDefault
	}
	return numberColors[(n-1)%len(numberColors)]
}
