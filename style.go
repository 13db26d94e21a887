package gochart

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

// Color represents an ARGB color.
type Color struct {
	ARGB string // 8-character hex string, e.g., "FF000000" for black
}

// Predefined colors.
var (
	ColorBlack = Color{ARGB: "FF000000"}
	ColorWhite = Color{ARGB: "FFFFFFFF"}
	ColorRed   = Color{ARGB: "FFFF0000"}
	ColorGreen = Color{ARGB: "FF008000"}
	ColorBlue  = Color{ARGB: "FF0000FF"}
	ColorGray  = Color{ARGB: "FF808080"}
)

// Palette is the default color cycle (tab10).
var Palette = []Color{
	{ARGB: "FF1F77B4"},
	{ARGB: "FFFF7F0E"},
	{ARGB: "FF2CA02C"},
	{ARGB: "FFD62728"},
	{ARGB: "FF9467BD"},
	{ARGB: "FF8C564B"},
	{ARGB: "FFE377C2"},
	{ARGB: "FF7F7F7F"},
	{ARGB: "FFBCBD22"},
	{ARGB: "FF17BECF"},
}

// CycleColor returns the i-th color of the default cycle.
func CycleColor(i int) Color {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}

// shortColors holds the aliases CSS does not define: single-letter
// colors and the "tab:" palette names.
var shortColors = map[string]string{
	"b": "0000FF", "g": "008000", "r": "FF0000", "c": "00BFBF",
	"m": "BF00BF", "y": "BFBF00", "k": "000000", "w": "FFFFFF",

	"tab:blue": "1F77B4", "tab:orange": "FF7F0E", "tab:green": "2CA02C",
	"tab:red": "D62728", "tab:purple": "9467BD", "tab:brown": "8C564B",
	"tab:pink": "E377C2", "tab:gray": "7F7F7F", "tab:grey": "7F7F7F",
	"tab:olive": "BCBD22", "tab:cyan": "17BECF",
}

// NewColor creates a new Color from an ARGB hex string.
// Accepts 6-char RGB (e.g. "FF0000") or 8-char ARGB (e.g. "FFFF0000").
// A leading "#" is stripped automatically.
func NewColor(argb string) Color {
	argb = strings.TrimPrefix(argb, "#")
	if len(argb) == 6 {
		argb = "FF" + argb
	}
	argb = strings.ToUpper(argb)
	if !isValidARGB(argb) {
		return ColorBlack
	}
	return Color{ARGB: argb}
}

// ParseColor parses a color specification: a single-letter or "tab:" name,
// a cycle reference "C0".."C9", or any CSS color ("navy", "#RGB",
// "#RRGGBBAA", "rgb(...)", "hsl(...)").
func ParseColor(spec string) (Color, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	if hex, ok := shortColors[s]; ok {
		return Color{ARGB: "FF" + hex}, nil
	}
	if len(s) == 2 && s[0] == 'c' && s[1] >= '0' && s[1] <= '9' {
		return CycleColor(int(s[1] - '0')), nil
	}
	// Bare hex digits are ambiguous with names, so hex needs its "#".
	if s == "" || isHexDigits(s) {
		return Color{}, fmt.Errorf("invalid color %q", spec)
	}
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q", spec)
	}
	r, g, b, a := c.RGBA255()
	return FromRGBA(color.NRGBA{R: r, G: g, B: b, A: a}), nil
}

func isHexDigits(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return false
		}
	}
	return true
}

// isValidARGB checks that s is exactly 8 hex characters.
func isValidARGB(s string) bool {
	if len(s) != 8 {
		return false
	}
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

// IsZero reports whether the color is unset.
func (c Color) IsZero() bool { return c.ARGB == "" }

// GetRed returns the red component (0-255).
func (c Color) GetRed() uint8 {
	return parseHexByte(c.ARGB, 2)
}

// GetGreen returns the green component (0-255).
func (c Color) GetGreen() uint8 {
	return parseHexByte(c.ARGB, 4)
}

// GetBlue returns the blue component (0-255).
func (c Color) GetBlue() uint8 {
	return parseHexByte(c.ARGB, 6)
}

// GetAlpha returns the alpha component (0-255).
func (c Color) GetAlpha() uint8 {
	return parseHexByte(c.ARGB, 0)
}

// Hex returns the color as "#RRGGBB".
func (c Color) Hex() string {
	if len(c.ARGB) != 8 {
		return "#000000"
	}
	return "#" + c.ARGB[2:]
}

// RGBA converts the color to a straight-alpha image color.
func (c Color) RGBA() color.NRGBA {
	return color.NRGBA{R: c.GetRed(), G: c.GetGreen(), B: c.GetBlue(), A: c.GetAlpha()}
}

// WithAlpha returns a copy with the alpha set from a fraction in [0,1].
func (c Color) WithAlpha(alpha float64) Color {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	a := uint8(alpha*255 + 0.5)
	return Color{ARGB: fmt.Sprintf("%02X%s", a, c.ARGB[2:])}
}

// FromRGBA converts an image color back to a Color.
func FromRGBA(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{ARGB: fmt.Sprintf("%02X%02X%02X%02X", n.A, n.R, n.G, n.B)}
}

// parseHexByte parses two hex characters at offset into a uint8.
// Returns 0 on any error (out of range, invalid chars).
func parseHexByte(s string, offset int) uint8 {
	if offset+2 > len(s) {
		return 0
	}
	h := hexVal(s[offset])
	l := hexVal(s[offset+1])
	if h < 0 || l < 0 {
		return 0
	}
	return uint8(h<<4 | l)
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return -1
	}
}

// TextStyle describes how a text artist is drawn.
type TextStyle struct {
	Size  float64 // in points
	Bold  bool
	Color Color
}

// Default text styles, sized like a 100 dpi matplotlib figure.
var (
	TitleStyle = TextStyle{Size: 12, Color: ColorBlack}
	TickStyle  = TextStyle{Size: 10, Color: ColorBlack}
	LabelStyle = TextStyle{Size: 10, Color: ColorBlack}
)
