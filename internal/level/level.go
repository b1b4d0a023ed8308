// Package level defines maze layouts and their translation into world
// geometry. A layout is a fixed grid of tiles; parsing produces the wall
// obstacle set, the player start point, and the goal capture zone.
package level

import (
	"errors"
	"fmt"

	"github.com/neurogrip/gripmaze/internal/geom"
)

// Tile characters in a layout row.
const (
	TileWall  = 'W'
	TileEmpty = ' '
	TileStart = 'P'
	TileGoal  = 'H'
)

// Configuration errors for malformed layouts. These abort level construction
// and return control to the menu; they never crash the process.
var (
	ErrNoStart        = errors.New("layout has no player start tile")
	ErrNoGoal         = errors.New("layout has no goal tile")
	ErrMultipleStarts = errors.New("layout has more than one player start tile")
	ErrMultipleGoals  = errors.New("layout has more than one goal tile")
)

// Layout is a named grid of tiles. Rows may differ in length; short rows are
// treated as empty beyond their end.
type Layout struct {
	Name string
	Rows []string
}

// Goal is a circular capture zone.
type Goal struct {
	Center geom.Vec2
	Radius float64
}

// Geometry is the world-space form of a layout at a given tile size.
type Geometry struct {
	Obstacles []geom.Rect
	Start     geom.Vec2
	Goal      Goal
}

// Parse converts the layout grid into world geometry. Wall tiles become
// tile-sized obstacles anchored at their grid cell; start and goal are
// placed at their cell centers. Exactly one start and one goal tile are
// required.
func (l Layout) Parse(tileSize, captureRadius float64) (*Geometry, error) {
	g := &Geometry{}
	foundStart, foundGoal := false, false

	for r, row := range l.Rows {
		for c, tile := range row {
			x := float64(c) * tileSize
			y := float64(r) * tileSize
			switch tile {
			case TileWall:
				g.Obstacles = append(g.Obstacles, geom.RectAt(x, y, tileSize, tileSize))
			case TileStart:
				if foundStart {
					return nil, fmt.Errorf("layout %q: %w", l.Name, ErrMultipleStarts)
				}
				foundStart = true
				g.Start = geom.Vec2{X: x + tileSize/2, Y: y + tileSize/2}
			case TileGoal:
				if foundGoal {
					return nil, fmt.Errorf("layout %q: %w", l.Name, ErrMultipleGoals)
				}
				foundGoal = true
				g.Goal = Goal{
					Center: geom.Vec2{X: x + tileSize/2, Y: y + tileSize/2},
					Radius: captureRadius,
				}
			case TileEmpty:
			default:
				return nil, fmt.Errorf("layout %q row %d: unknown tile %q", l.Name, r, tile)
			}
		}
	}

	if !foundStart {
		return nil, fmt.Errorf("layout %q: %w", l.Name, ErrNoStart)
	}
	if !foundGoal {
		return nil, fmt.Errorf("layout %q: %w", l.Name, ErrNoGoal)
	}
	return g, nil
}
