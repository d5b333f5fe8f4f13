package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
)

//go:embed *.json
var LevelsFS embed.FS

var ErrInvalidCampus = errors.New("invalid campus")

// Campus is a walkable top-down map. Building and wall rectangles are in
// tiles; BuildingAt takes world pixels.
type Campus struct {
	Name      string     `json:"name"`
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	TileSize  int        `json:"tile_size"`
	Spawn     Point      `json:"spawn"`
	Buildings []Building `json:"buildings"`
	Walls     []Rect     `json:"walls,omitempty"`
}

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

func (r Rect) contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

type Building struct {
	Name  string `json:"name"`
	Floor string `json:"floor,omitempty"`
	Room  string `json:"room,omitempty"`
	Rect
}

// PixelWidth and PixelHeight give the world size in pixels.
func (c *Campus) PixelWidth() int  { return c.Width * c.TileSize }
func (c *Campus) PixelHeight() int { return c.Height * c.TileSize }

// BuildingAt returns the building covering world pixel (px, py). Later
// entries win where footprints overlap.
func (c *Campus) BuildingAt(px, py float64) (Building, bool) {
	if c == nil || c.TileSize <= 0 || px < 0 || py < 0 {
		return Building{}, false
	}
	tx := int(px) / c.TileSize
	ty := int(py) / c.TileSize
	for i := len(c.Buildings) - 1; i >= 0; i-- {
		if c.Buildings[i].contains(tx, ty) {
			return c.Buildings[i], true
		}
	}
	return Building{}, false
}

func (c *Campus) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidCampus, c.Width, c.Height)
	}
	if c.TileSize <= 0 {
		return fmt.Errorf("%w: tile size %d", ErrInvalidCampus, c.TileSize)
	}
	if c.Spawn.X < 0 || c.Spawn.Y < 0 || c.Spawn.X >= c.Width || c.Spawn.Y >= c.Height {
		return fmt.Errorf("%w: spawn (%d,%d) outside map", ErrInvalidCampus, c.Spawn.X, c.Spawn.Y)
	}
	for i, b := range c.Buildings {
		if b.Name == "" {
			return fmt.Errorf("%w: building %d has no name", ErrInvalidCampus, i)
		}
		if b.W <= 0 || b.H <= 0 {
			return fmt.Errorf("%w: building %q has empty footprint", ErrInvalidCampus, b.Name)
		}
	}
	for i, w := range c.Walls {
		if w.W <= 0 || w.H <= 0 {
			return fmt.Errorf("%w: wall %d has empty footprint", ErrInvalidCampus, i)
		}
	}
	return nil
}

func ParseCampus(data []byte) (*Campus, error) {
	var c Campus
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshal campus: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func LoadCampusFromFS(name string) (*Campus, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read campus: %w", err)
	}
	return ParseCampus(data)
}
