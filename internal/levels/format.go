package levels

import (
	"fmt"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/platformer"
	"gopkg.in/yaml.v3"
)

// YAMLLevel is the on-disk level document. Marathon levels list their
// geometry explicitly; adventure levels describe it as a tile grid.
type YAMLLevel struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Mode Mode   `yaml:"mode"`

	// Explicit geometry.
	Length       float64           `yaml:"length,omitempty"`
	Height       float64           `yaml:"height,omitempty"`
	Spawn        *YAMLPoint        `yaml:"spawn,omitempty"`
	Goal         *YAMLBox          `yaml:"goal,omitempty"`
	Ground       []YAMLBox         `yaml:"ground,omitempty"`
	Platforms    []YAMLBox         `yaml:"platforms,omitempty"`
	Enemies      []YAMLEnemy       `yaml:"enemies,omitempty"`
	Collectibles []YAMLCollectible `yaml:"collectibles,omitempty"`

	// Tile grid.
	TileSize    float64  `yaml:"tile_size,omitempty"`
	PatrolRange float64  `yaml:"patrol_range,omitempty"` // for grid enemies
	Grid        []string `yaml:"grid,omitempty"`
}

// YAMLPoint is a position.
type YAMLPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// YAMLBox is a rectangle anchored at its top-left corner.
type YAMLBox struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// YAMLEnemy is an enemy spawn.
type YAMLEnemy struct {
	Kind  string  `yaml:"kind"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Range float64 `yaml:"range"`
}

// YAMLCollectible is a pickup. A zero size means the default 30x30.
type YAMLCollectible struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w,omitempty"`
	H float64 `yaml:"h,omitempty"`
}

func (b YAMLBox) box() core.Box {
	return core.Box{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// Pickup and tile defaults.
const (
	collectibleSize    = 30
	collectibleInset   = 15 // vertical offset of a grid pickup inside its tile
	platformThickness  = 20
	defaultTileSize    = 60
	defaultPatrolRange = 100
)

// Grid legend.
const (
	TileGround   = '#'
	TilePlatform = '='
	TileSpawn    = 'P'
	TileGrunt    = 'G'
	TileBrute    = 'B'
	TileCoin     = 'o'
	TileFlag     = 'F'
	TileEmpty    = ' '
)

// Parse decodes a level document. The result is not validated.
func Parse(data []byte) (*Def, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if len(yl.Grid) > 0 {
		if yl.Mode == "" {
			yl.Mode = Adventure
		}
		return parseGrid(yl)
	}
	if yl.Mode == "" {
		yl.Mode = Marathon
	}
	return parseExplicit(yl)
}

func parseExplicit(yl YAMLLevel) (*Def, error) {
	lvl := &platformer.Level{
		ID:     yl.ID,
		Name:   yl.Name,
		Length: yl.Length,
		Height: yl.Height,
	}
	if yl.Spawn == nil {
		return nil, ValidationError{Code: "NO_SPAWN", Message: "level has no spawn point"}
	}
	lvl.Spawn = core.V(yl.Spawn.X, yl.Spawn.Y)

	if yl.Goal == nil {
		return nil, ValidationError{Code: "NO_GOAL", Message: "level has no goal"}
	}
	lvl.Goal = platformer.Goal{Kind: platformer.GoalRect, Box: yl.Goal.box()}

	for _, g := range yl.Ground {
		lvl.Platforms = append(lvl.Platforms, platformer.Platform{Box: g.box(), Kind: platformer.Ground})
	}
	for _, p := range yl.Platforms {
		lvl.Platforms = append(lvl.Platforms, platformer.Platform{Box: p.box(), Kind: platformer.Floating})
	}

	for i, e := range yl.Enemies {
		kind, err := platformer.ParseEnemyKind(e.Kind)
		if err != nil {
			return nil, ValidationError{Code: "UNKNOWN_KIND", Message: fmt.Sprintf("enemy %d: %v", i, err)}
		}
		lvl.Enemies = append(lvl.Enemies, platformer.EnemySpawn{
			Kind:        kind,
			Pos:         core.V(e.X, e.Y),
			PatrolRange: e.Range,
		})
	}

	for _, c := range yl.Collectibles {
		w, h := c.W, c.H
		if w == 0 && h == 0 {
			w, h = collectibleSize, collectibleSize
		}
		lvl.Collectibles = append(lvl.Collectibles, core.Box{X: c.X, Y: c.Y, W: w, H: h})
	}

	return &Def{Mode: yl.Mode, Level: lvl}, nil
}

func parseGrid(yl YAMLLevel) (*Def, error) {
	tile := yl.TileSize
	if tile == 0 {
		tile = defaultTileSize
	}
	if !(tile > 0) {
		return nil, ValidationError{Code: "BAD_TILE_SIZE", Message: fmt.Sprintf("tile size must be positive, got %v", tile)}
	}
	patrol := yl.PatrolRange
	if patrol == 0 {
		patrol = defaultPatrolRange
	}

	grid := NewGrid(yl.Grid)
	lvl := &platformer.Level{
		ID:     yl.ID,
		Name:   yl.Name,
		Length: float64(grid.Width()) * tile,
		Height: float64(grid.Height()) * tile,
	}

	spawns, flags := 0, 0
	for row := 0; row < grid.Height(); row++ {
		for col := 0; col < grid.Width(); col++ {
			x, y := float64(col)*tile, float64(row)*tile
			switch r := grid.At(col, row); r {
			case TileEmpty, TileGround, TilePlatform:
			case TileSpawn:
				spawns++
				lvl.Spawn = core.V(x, y)
			case TileGrunt, TileBrute:
				kind := platformer.EnemyGrunt
				if r == TileBrute {
					kind = platformer.EnemyBrute
				}
				lvl.Enemies = append(lvl.Enemies, platformer.EnemySpawn{Kind: kind, Pos: core.V(x, y), PatrolRange: patrol})
			case TileCoin:
				lvl.Collectibles = append(lvl.Collectibles, core.Box{X: x, Y: y + collectibleInset, W: collectibleSize, H: collectibleSize})
			case TileFlag:
				flags++
				lvl.Goal = platformer.Goal{Kind: platformer.GoalFlag, FlagX: x}
			default:
				return nil, ValidationError{
					Code:    "UNKNOWN_TILE",
					Message: fmt.Sprintf("unknown tile %q at row %d col %d", r, row, col),
				}
			}
		}
	}

	switch {
	case spawns == 0:
		return nil, ValidationError{Code: "NO_SPAWN", Message: "grid has no spawn tile"}
	case spawns > 1:
		return nil, ValidationError{Code: "MULTIPLE_SPAWNS", Message: fmt.Sprintf("grid has %d spawn tiles", spawns)}
	case flags == 0:
		return nil, ValidationError{Code: "NO_GOAL", Message: "grid has no flag tile"}
	case flags > 1:
		return nil, ValidationError{Code: "MULTIPLE_GOALS", Message: fmt.Sprintf("grid has %d flag tiles", flags)}
	}

	for _, b := range grid.Merge(TileGround, tile, tile) {
		lvl.Platforms = append(lvl.Platforms, platformer.Platform{Box: b, Kind: platformer.Ground})
	}
	for _, b := range grid.Merge(TilePlatform, tile, platformThickness) {
		lvl.Platforms = append(lvl.Platforms, platformer.Platform{Box: b, Kind: platformer.Floating})
	}

	return &Def{Mode: yl.Mode, Level: lvl}, nil
}
