// Package tile implements the Qwirkle tile model: 36 unique
// (shape, color) values with a dense index.
package tile

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Shape is one of the six Qwirkle shapes.
type Shape uint8

const (
	Circle Shape = iota
	Square
	Diamond
	Clover
	Star
	Starburst
)

// NumShapes is the number of distinct shapes.
const NumShapes = 6

var shapeNames = [NumShapes]string{
	"circle", "square", "diamond", "clover", "star", "starburst",
}

func (s Shape) String() string {
	if int(s) >= len(shapeNames) {
		return "unknown"
	}
	return shapeNames[s]
}

// Color is one of the six Qwirkle colors.
type Color uint8

const (
	Red Color = iota
	Orange
	Yellow
	Green
	Blue
	Purple
)

// NumColors is the number of distinct colors.
const NumColors = 6

var colorNames = [NumColors]string{
	"red", "orange", "yellow", "green", "blue", "purple",
}

func (c Color) String() string {
	if int(c) >= len(colorNames) {
		return "unknown"
	}
	return colorNames[c]
}

// NumTiles is the number of unique (shape, color) tiles.
const NumTiles = NumShapes * NumColors

var titleCaser = cases.Title(language.English)

// Tile is a value type: two tiles with the same shape and color
// compare equal and are never aliased across entities.
type Tile struct {
	Shape Shape
	Color Color
}

// New builds a Tile, panicking if shape or color is out of range -
// this can only happen from a programming error, never external input.
func New(shape Shape, color Color) Tile {
	if int(shape) >= NumShapes || int(color) >= NumColors {
		panic(fmt.Sprintf("tile: shape/color out of range: %v/%v", shape, color))
	}
	return Tile{Shape: shape, Color: color}
}

// FromIndex reconstructs a Tile from its dense index in [0, NumTiles).
func FromIndex(idx int) Tile {
	if idx < 0 || idx >= NumTiles {
		panic(fmt.Sprintf("tile: index out of range: %v", idx))
	}
	return Tile{Shape: Shape(idx / NumColors), Color: Color(idx % NumColors)}
}

// Index returns the dense index shape*6+color in [0, 36).
func (t Tile) Index() int {
	return int(t.Shape)*NumColors + int(t.Color)
}

// Name returns a human-readable name, e.g. "Red Circle".
func (t Tile) Name() string {
	return titleCaser.String(fmt.Sprintf("%s %s", t.Color, t.Shape))
}

func (t Tile) String() string {
	return t.Name()
}

// SameColor reports whether both tiles share a color.
func (t Tile) SameColor(o Tile) bool { return t.Color == o.Color }

// SameShape reports whether both tiles share a shape.
func (t Tile) SameShape(o Tile) bool { return t.Shape == o.Shape }
