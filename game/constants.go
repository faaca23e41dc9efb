package game

import (
	"image/color"

	"golang.org/x/image/colornames"
)

// Color is one entry of the minesweeper palette
type Color int

const (
	Red Color = iota
	Blue
	Green
	DarkBlue
	DarkRed
	SeaGreen
	Black
	LightGray
	DarkGray
	White
)

var Colors = []Color{
	Red,
	Blue,
	Green,
	DarkBlue,
	DarkRed,
	SeaGreen,
	Black,
	LightGray,
	DarkGray,
	White,
}

var colorNames = map[Color]string{
	Red:       "red",
	Blue:      "blue",
	Green:     "green",
	DarkBlue:  "dark_blue",
	DarkRed:   "dark_red",
	SeaGreen:  "sea_green",
	Black:     "black",
	LightGray: "light_gray",
	DarkGray:  "dark_gray",
	White:     "white",
}

var colorValues = map[Color]color.RGBA{
	Red:       colornames.Red,
	Blue:      colornames.Blue,
	Green:     colornames.Green,
	DarkBlue:  colornames.Darkblue,
	DarkRed:   colornames.Darkred,
	SeaGreen:  colornames.Seagreen,
	Black:     colornames.Black,
	LightGray: colornames.Lightgray,
	DarkGray:  colornames.Darkgray,
	White:     colornames.White,
}

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "unknown"
}

// RGBA returns the display value of the color
func (c Color) RGBA() color.RGBA {
	return colorValues[c]
}

type GameState int

const (
	Init GameState = iota
	Playing
	Ended
)

func (state GameState) String() string {
	switch state {
	case Init:
		return "init"
	case Playing:
		return "playing"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

// Glyphs used when rendering cells
const (
	blankGlyph = ' '
	flagGlyph  = '*'
)

// Sentinel for "no cell hovered"
const noHover = -1
