package render

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

//go:embed assets/sprites.yaml
var builtinSprites []byte

// Sprite names looked up by the world renderer.
const (
	SpritePlayerRight = "player_right"
	SpritePlayerLeft  = "player_left"
	SpriteGrunt       = "grunt"
	SpriteBrute       = "brute"
	SpriteCoin        = "coin"
	SpriteGoal        = "goal"
)

// Sprite is a small block of runes drawn with one colour.
type Sprite struct {
	Rows  [][]rune
	Color core.Color
}

// Width returns the widest row in cells.
func (s Sprite) Width() int {
	w := 0
	for _, r := range s.Rows {
		w = core.Max(w, len(r))
	}
	return w
}

// Height returns the number of rows.
func (s Sprite) Height() int {
	return len(s.Rows)
}

type yamlSprite struct {
	Color string   `yaml:"color"`
	Rows  []string `yaml:"rows"`
}

// SpriteSet holds named sprites. A nil set has no sprites, so every
// draw uses the procedural fallback.
type SpriteSet struct {
	sprites map[string]Sprite
}

// ParseSprites decodes a sprite sheet.
func ParseSprites(data []byte) (*SpriteSet, error) {
	var raw map[string]yamlSprite
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("render: parse sprites: %w", err)
	}
	set := &SpriteSet{sprites: make(map[string]Sprite, len(raw))}
	for name, rs := range raw {
		if len(rs.Rows) == 0 {
			return nil, fmt.Errorf("render: sprite %q has no rows", name)
		}
		color, ok := ParseColor(rs.Color)
		if !ok {
			return nil, fmt.Errorf("render: sprite %q: unknown color %q", name, rs.Color)
		}
		sp := Sprite{Color: color}
		for _, row := range rs.Rows {
			sp.Rows = append(sp.Rows, []rune(row))
		}
		set.sprites[name] = sp
	}
	return set, nil
}

// LoadSprites reads a sprite sheet from disk.
func LoadSprites(path string) (*SpriteSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("render: read sprites: %w", err)
	}
	return ParseSprites(data)
}

// DefaultSprites returns the built-in sheet, or nil if it cannot be parsed.
func DefaultSprites() *SpriteSet {
	set, err := ParseSprites(builtinSprites)
	if err != nil {
		return nil
	}
	return set
}

// Lookup returns the named sprite.
func (s *SpriteSet) Lookup(name string) (Sprite, bool) {
	if s == nil {
		return Sprite{}, false
	}
	sp, ok := s.sprites[name]
	return sp, ok
}

// Names returns the sprite names in sorted order.
func (s *SpriteSet) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.sprites))
	for n := range s.sprites {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Draw renders the named sprite inside r, bottom-aligned and centred.
// When the set has no such sprite, or it does not fit, r is filled with
// fill in color instead. It reports whether the sprite was used.
func (s *SpriteSet) Draw(dst *core.Screen, r core.Rect, name string, fill rune, color core.Color) bool {
	sp, ok := s.Lookup(name)
	if !ok || sp.Width() > r.W || sp.Height() > r.H {
		dst.DrawRect(r, fill, color)
		return false
	}
	x0 := r.X + (r.W-sp.Width())/2
	y0 := r.Bottom() - sp.Height()
	for dy, row := range sp.Rows {
		for dx, ch := range row {
			if ch != ' ' {
				dst.SetCell(x0+dx, y0+dy, ch, sp.Color)
			}
		}
	}
	return true
}

var colorNames = map[string]core.Color{
	"default":        core.ColorDefault,
	"red":            core.ColorRed,
	"green":          core.ColorGreen,
	"yellow":         core.ColorYellow,
	"blue":           core.ColorBlue,
	"magenta":        core.ColorMagenta,
	"cyan":           core.ColorCyan,
	"white":          core.ColorWhite,
	"bright_red":     core.ColorBrightRed,
	"bright_green":   core.ColorBrightGreen,
	"bright_yellow":  core.ColorBrightYellow,
	"bright_blue":    core.ColorBrightBlue,
	"bright_magenta": core.ColorBrightMagenta,
	"bright_cyan":    core.ColorBrightCyan,
	"bright_white":   core.ColorBrightWhite,
	"orange":         core.ColorOrange,
	"gray":           core.ColorGray,
	"brown":          core.ColorBrown,
	"sky":            core.ColorSky,
}

// ParseColor maps a palette name to a colour. Empty means default.
func ParseColor(name string) (core.Color, bool) {
	c, ok := colorNames[strings.ToLower(strings.TrimSpace(name))]
	if name == "" {
		return core.ColorDefault, true
	}
	return c, ok
}
