package game

import (
	"fmt"
	"strings"
)

// Color identifies one of the four possible participants.
type Color int

const (
	Red Color = iota
	Green
	Yellow
	Blue
)

// AllColors lists every identity in track order.
var AllColors = []Color{Red, Green, Yellow, Blue}

var colorNames = [...]string{
	Red:    "red",
	Green:  "green",
	Yellow: "yellow",
	Blue:   "blue",
}

func (c Color) Valid() bool {
	return c >= Red && c <= Blue
}

func (c Color) String() string {
	if !c.Valid() {
		return fmt.Sprintf("color(%d)", int(c))
	}
	return colorNames[c]
}

// ParseColor accepts a full color name or its first letter.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range colorNames {
		if s == name || (len(s) == 1 && s[0] == name[0]) {
			return Color(i), nil
		}
	}
	return 0, fmt.Errorf("unknown color %q", s)
}
