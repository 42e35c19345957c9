package world

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	opensimplex "github.com/ojrac/opensimplex-go"
	"golang.org/x/exp/rand"

	"hexciv/hex"
)

type MapSize int

const (
	Duel MapSize = iota
	Tiny
	Small
	Standard
	Large
	Huge
	Custom
)

var mapSizeNames = []string{"duel", "tiny", "small", "standard", "large", "huge", "custom"}

var mapDimensions = [][2]int{
	Duel:     {48, 32},
	Tiny:     {56, 36},
	Small:    {68, 44},
	Standard: {80, 52},
	Large:    {104, 64},
	Huge:     {128, 80},
}

func (m MapSize) String() string {
	if m < 0 || int(m) >= len(mapSizeNames) {
		return fmt.Sprintf("MapSize(%d)", int(m))
	}
	return mapSizeNames[m]
}

func (m MapSize) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *MapSize) UnmarshalText(b []byte) error {
	name := strings.ToLower(string(b))
	for i, n := range mapSizeNames {
		if n == name {
			*m = MapSize(i)
			return nil
		}
	}
	return fmt.Errorf("unknown map size %q", string(b))
}

// MapConfig drives procedural generation. Width and Height are only read for Custom.
type MapConfig struct {
	Size              MapSize `yaml:"size"`
	Width             int     `yaml:"width"`
	Height            int     `yaml:"height"`
	Seed              int64   `yaml:"seed"`
	OceanThreshold    float64 `yaml:"ocean_threshold"`
	HillThreshold     float64 `yaml:"hill_threshold"`
	MountainThreshold float64 `yaml:"mountain_threshold"`
	ResourceChance    float64 `yaml:"resource_chance"`
}

func DefaultMapConfig() MapConfig {
	return MapConfig{
		Size:              Standard,
		Seed:              42,
		OceanThreshold:    0.35,
		HillThreshold:     0.55,
		MountainThreshold: 0.75,
		ResourceChance:    0.1,
	}
}

func (c MapConfig) Dimensions() (width, height int) {
	if c.Size == Custom || c.Size < 0 || int(c.Size) >= len(mapDimensions) {
		return c.Width, c.Height
	}
	d := mapDimensions[c.Size]
	return d[0], d[1]
}

// Generator builds a tile map from layered simplex noise. The same config
// always yields the same map.
type Generator struct {
	cfg MapConfig
	rng *rand.Rand
}

func NewGenerator(cfg MapConfig) *Generator {
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(uint64(cfg.Seed))),
	}
}

// Generate returns a store holding only tiles. Players and entities are added by the caller.
func (g *Generator) Generate() *Store {
	w, h := g.cfg.Dimensions()
	heights := g.heightMap(w, h)
	temps := g.temperatureMap(w, h)
	moisture := g.moistureMap(w, h)

	s := NewStore()
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			terrain := g.terrain(heights[row][col], temps[row][col])
			feature := g.feature(terrain, temps[row][col], moisture[row][col])
			tile := NewTile(hex.FromOffset(col, row), terrain).WithFeature(feature)
			tile.Resource = g.resource(tile)
			s.PutTile(tile)
		}
	}
	g.rivers(s, heights, w, h)
	return s
}

func (g *Generator) heightMap(w, h int) [][]float64 {
	noise := opensimplex.NewNormalized(g.cfg.Seed)
	out := grid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := octaveNoise(noise, float64(x), float64(y), 6, 0.02, 0.5)
			// Edge falloff pushes the rim toward ocean.
			ex := math.Abs(float64(x)/float64(w)-0.5) * 2
			ey := math.Abs(float64(y)/float64(h)-0.5) * 2
			falloff := 1 - math.Min(math.Sqrt(ex*ex+ey*ey), 1)
			out[y][x] = v * falloff
		}
	}
	normalize(out)
	return out
}

func (g *Generator) temperatureMap(w, h int) [][]float64 {
	noise := opensimplex.NewNormalized(g.cfg.Seed + 1000)
	out := grid(w, h)
	for y := 0; y < h; y++ {
		latitude := math.Abs(float64(y)/float64(h)-0.5) * 2
		for x := 0; x < w; x++ {
			variation := (noise.Eval2(float64(x)*0.05, float64(y)*0.05)*2 - 1) * 0.2
			out[y][x] = math.Min(math.Max(1-latitude+variation, 0), 1)
		}
	}
	return out
}

func (g *Generator) moistureMap(w, h int) [][]float64 {
	noise := opensimplex.NewNormalized(g.cfg.Seed + 2000)
	out := grid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out[y][x] = octaveNoise(noise, float64(x), float64(y), 4, 0.03, 0.5)
		}
	}
	normalize(out)
	return out
}

func (g *Generator) terrain(height, temp float64) Terrain {
	if height < g.cfg.OceanThreshold {
		if height < g.cfg.OceanThreshold*0.6 {
			return Ocean
		}
		return Coast
	}
	if height > g.cfg.MountainThreshold {
		return Mountain
	}
	hill := height > g.cfg.HillThreshold
	pick := func(flat, hilly Terrain) Terrain {
		if hill {
			return hilly
		}
		return flat
	}
	switch {
	case temp < 0.15:
		return pick(Snow, SnowHill)
	case temp < 0.30:
		return pick(Tundra, TundraHill)
	case temp < 0.50:
		return pick(Grassland, GrasslandHill)
	case temp < 0.80:
		return pick(Plains, PlainsHill)
	}
	return pick(Desert, DesertHill)
}

func (g *Generator) feature(t Terrain, temp, moisture float64) Feature {
	if t.IsWater() || t == Mountain || t == Snow || t == SnowHill {
		return NoFeature
	}
	if t == Desert && moisture > 0.4 && g.chance(0.05) {
		return Oasis
	}
	if !t.IsHill() && moisture > 0.7 && g.chance(0.2) && Marsh.CanPlaceOn(t) {
		return Marsh
	}
	if temp > 0.7 && moisture > 0.6 && g.chance(0.5) && Jungle.CanPlaceOn(t) {
		return Jungle
	}
	if temp < 0.6 && moisture > 0.5 && g.chance(0.4) && Forest.CanPlaceOn(t) {
		return Forest
	}
	return NoFeature
}

func (g *Generator) resource(t Tile) Resource {
	if t.Terrain == Mountain || t.Terrain == Lake || !g.chance(g.cfg.ResourceChance) {
		return NoResource
	}
	var candidates []Resource
	for r := Cattle; r <= Ivory; r++ {
		if r.CanPlaceOn(t.Terrain) {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return NoResource
	}
	return candidates[g.rng.Intn(len(candidates))]
}

// rivers walks downhill from a few high tiles, marking the shared edge on
// both sides of every step until it reaches water.
func (g *Generator) rivers(s *Store, heights [][]float64, w, h int) {
	heightAt := func(c hex.Coord) (float64, bool) {
		col, row := hex.ToOffset(c)
		if row < 0 || row >= h || col < 0 || col >= w {
			return 0, false
		}
		return heights[row][col], true
	}
	sources := w * h / 150
	for i := 0; i < sources; i++ {
		cur := hex.FromOffset(g.rng.Intn(w), g.rng.Intn(h))
		t, _ := s.Tile(cur)
		if !t.Terrain.IsHill() {
			continue
		}
		for step := 0; step < 8; step++ {
			here, _ := heightAt(cur)
			best, bestDir, found := here, hex.East, false
			for d := hex.East; d <= hex.SouthEast; d++ {
				if v, ok := heightAt(cur.Neighbor(d)); ok && v < best {
					best, bestDir, found = v, d, true
				}
			}
			if !found {
				break
			}
			next := cur.Neighbor(bestDir)
			s.tiles[cur].Rivers = s.tiles[cur].Rivers.With(bestDir)
			s.tiles[next].Rivers = s.tiles[next].Rivers.With(bestDir.Opposite())
			if s.tiles[next].Terrain.IsWater() {
				break
			}
			cur = next
		}
	}
}

func (g *Generator) chance(p float64) bool {
	return g.rng.Float64() < p
}

var ErrNoStartPositions = errors.New("world: not enough start positions")

// StartPositions picks n spread-out flat land tiles, each with a free
// passable neighbor for an escort unit. The first pick is the best site by
// surrounding yields; each following pick maximizes its distance to those
// already chosen.
func StartPositions(s *Store, n int) ([]hex.Coord, error) {
	type site struct {
		coord hex.Coord
		score int
	}
	var sites []site
	for _, c := range s.Coords() {
		t, _ := s.Tile(c)
		if !t.Terrain.IsFlatLand() || !t.IsPassable() {
			continue
		}
		score, passable := 0, 0
		for _, nb := range hex.Range(c, 1) {
			nt, ok := s.Tile(nb)
			if !ok {
				continue
			}
			y := nt.Yields()
			score += y.Food + y.Production
			if nb != c && nt.IsPassable() {
				passable++
			}
		}
		if passable == 0 {
			continue
		}
		sites = append(sites, site{coord: c, score: score})
	}
	if n <= 0 {
		return nil, nil
	}
	if len(sites) < n {
		return nil, ErrNoStartPositions
	}
	// Stable sort keeps row-major order among equal scores.
	slices.SortStableFunc(sites, func(a, b site) int { return b.score - a.score })

	chosen := []hex.Coord{sites[0].coord}
	for len(chosen) < n {
		bestIdx, bestDist := -1, -1
		for i, st := range sites {
			if slices.Contains(chosen, st.coord) {
				continue
			}
			d := math.MaxInt
			for _, c := range chosen {
				d = min(d, hex.Distance(c, st.coord))
			}
			if d > bestDist {
				bestIdx, bestDist = i, d
			}
		}
		if bestIdx < 0 {
			return nil, ErrNoStartPositions
		}
		chosen = append(chosen, sites[bestIdx].coord)
	}
	return chosen, nil
}

func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total, amplitude, maxVal := 0.0, 1.0, 0.0
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxVal
}

func grid(w, h int) [][]float64 {
	out := make([][]float64, h)
	for i := range out {
		out[i] = make([]float64, w)
	}
	return out
}

func normalize(m [][]float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range m {
		for _, v := range row {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	span := hi - lo
	if span <= 1e-12 {
		return
	}
	for _, row := range m {
		for i, v := range row {
			row[i] = (v - lo) / span
		}
	}
}
