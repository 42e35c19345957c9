package world

import (
	"errors"
	"slices"

	"hexciv/hex"
)

var (
	ErrOccupiedTile  = errors.New("world: tile occupied")
	ErrNotFound      = errors.New("world: entity not found")
	ErrOffMap        = errors.New("world: coordinate off map")
	ErrUnknownPlayer = errors.New("world: unknown player")
)

// Store owns every tile, unit, city and player of one game. Lookups by
// coordinate and by handle are O(1). Store has no locking; callers serialize writes.
type Store struct {
	tiles   map[hex.Coord]*Tile
	units   map[Handle]*Unit
	cities  map[Handle]*City
	unitAt  map[hex.Coord]Handle
	cityAt  map[hex.Coord]Handle
	players []Player // indexed by ID-1
	next    Handle
}

func NewStore() *Store {
	return &Store{
		tiles:  make(map[hex.Coord]*Tile),
		units:  make(map[Handle]*Unit),
		cities: make(map[Handle]*City),
		unitAt: make(map[hex.Coord]Handle),
		cityAt: make(map[hex.Coord]Handle),
	}
}

// PutTile inserts or replaces a tile. Used by map generation and test fixtures.
func (s *Store) PutTile(t Tile) {
	s.tiles[t.Coord] = &t
}

func (s *Store) Tile(c hex.Coord) (Tile, bool) {
	t, ok := s.tiles[c]
	if !ok {
		return Tile{}, false
	}
	return *t, true
}

func (s *Store) HasTile(c hex.Coord) bool {
	_, ok := s.tiles[c]
	return ok
}

func (s *Store) TileCount() int {
	return len(s.tiles)
}

// Coords returns every tile coordinate in row-major order.
func (s *Store) Coords() []hex.Coord {
	out := make([]hex.Coord, 0, len(s.tiles))
	for c := range s.tiles {
		out = append(out, c)
	}
	slices.SortFunc(out, compareCoord)
	return out
}

// AddPlayer registers a player with the next id, starting at 1.
func (s *Store) AddPlayer(name string, ai bool) PlayerID {
	id := PlayerID(len(s.players) + 1)
	s.players = append(s.players, Player{ID: id, Name: name, AI: ai})
	return id
}

func (s *Store) Player(id PlayerID) (Player, bool) {
	if id < 1 || int(id) > len(s.players) {
		return Player{}, false
	}
	return s.players[id-1], true
}

func (s *Store) Players() []Player {
	return slices.Clone(s.players)
}

func (s *Store) SetEliminated(id PlayerID) error {
	if id < 1 || int(id) > len(s.players) {
		return ErrUnknownPlayer
	}
	s.players[id-1].Eliminated = true
	return nil
}

func (s *Store) newHandle() Handle {
	s.next++
	return s.next
}

// CreateUnit places a new unit at full health and movement.
func (s *Store) CreateUnit(c hex.Coord, t UnitType, owner PlayerID) (Handle, error) {
	if _, ok := s.Player(owner); !ok {
		return 0, ErrUnknownPlayer
	}
	if !s.HasTile(c) {
		return 0, ErrOffMap
	}
	if _, taken := s.unitAt[c]; taken {
		return 0, ErrOccupiedTile
	}
	stats := t.Stats()
	h := s.newHandle()
	s.units[h] = &Unit{
		Handle:    h,
		Type:      t,
		Owner:     owner,
		Coord:     c,
		Movement:  stats.Movement,
		MaxMove:   stats.Movement,
		Health:    DefaultMaxHealth,
		MaxHealth: DefaultMaxHealth,
	}
	s.unitAt[c] = h
	return h, nil
}

// CreateCity founds a city of population 1. Territory is claimed separately.
func (s *Store) CreateCity(c hex.Coord, owner PlayerID, name string) (Handle, error) {
	if _, ok := s.Player(owner); !ok {
		return 0, ErrUnknownPlayer
	}
	if !s.HasTile(c) {
		return 0, ErrOffMap
	}
	if _, taken := s.cityAt[c]; taken {
		return 0, ErrOccupiedTile
	}
	h := s.newHandle()
	s.cities[h] = &City{
		Handle:     h,
		Name:       name,
		Owner:      owner,
		Coord:      c,
		Population: 1,
	}
	s.cityAt[c] = h
	return h, nil
}

// Destroy removes a unit or a city. A destroyed city releases its territory.
func (s *Store) Destroy(h Handle) error {
	if u, ok := s.units[h]; ok {
		delete(s.unitAt, u.Coord)
		delete(s.units, h)
		return nil
	}
	if c, ok := s.cities[h]; ok {
		for _, coord := range c.Territory {
			if t, ok := s.tiles[coord]; ok && t.Owner == h {
				t.Owner = 0
			}
		}
		delete(s.cityAt, c.Coord)
		delete(s.cities, h)
		return nil
	}
	return ErrNotFound
}

func (s *Store) Unit(h Handle) (Unit, bool) {
	u, ok := s.units[h]
	if !ok {
		return Unit{}, false
	}
	return *u, true
}

func (s *Store) City(h Handle) (City, bool) {
	c, ok := s.cities[h]
	if !ok {
		return City{}, false
	}
	return c.Copy(), true
}

func (s *Store) UnitAt(c hex.Coord) (Unit, bool) {
	h, ok := s.unitAt[c]
	if !ok {
		return Unit{}, false
	}
	return *s.units[h], true
}

func (s *Store) CityAt(c hex.Coord) (City, bool) {
	h, ok := s.cityAt[c]
	if !ok {
		return City{}, false
	}
	return s.cities[h].Copy(), true
}

// Occupants is what stands on a coordinate. Zero handles mean empty.
type Occupants struct {
	Unit Handle
	City Handle
}

func (o Occupants) Empty() bool {
	return o.Unit == 0 && o.City == 0
}

func (s *Store) EntityAt(c hex.Coord) Occupants {
	return Occupants{Unit: s.unitAt[c], City: s.cityAt[c]}
}

// UnitsOwnedBy returns copies of the player's units in handle order.
func (s *Store) UnitsOwnedBy(p PlayerID) []Unit {
	var out []Unit
	for _, u := range s.units {
		if u.Owner == p {
			out = append(out, *u)
		}
	}
	slices.SortFunc(out, func(a, b Unit) int { return compareHandle(a.Handle, b.Handle) })
	return out
}

// CitiesOwnedBy returns copies of the player's cities in handle order.
func (s *Store) CitiesOwnedBy(p PlayerID) []City {
	var out []City
	for _, c := range s.cities {
		if c.Owner == p {
			out = append(out, c.Copy())
		}
	}
	slices.SortFunc(out, func(a, b City) int { return compareHandle(a.Handle, b.Handle) })
	return out
}

func (s *Store) AllUnits() []Unit {
	out := make([]Unit, 0, len(s.units))
	for _, u := range s.units {
		out = append(out, *u)
	}
	slices.SortFunc(out, func(a, b Unit) int { return compareHandle(a.Handle, b.Handle) })
	return out
}

func (s *Store) AllCities() []City {
	out := make([]City, 0, len(s.cities))
	for _, c := range s.cities {
		out = append(out, c.Copy())
	}
	slices.SortFunc(out, func(a, b City) int { return compareHandle(a.Handle, b.Handle) })
	return out
}

func (s *Store) CountOwned(p PlayerID) (units, cities int) {
	for _, u := range s.units {
		if u.Owner == p {
			units++
		}
	}
	for _, c := range s.cities {
		if c.Owner == p {
			cities++
		}
	}
	return units, cities
}

func (s *Store) SetUnitMovement(h Handle, mp int) error {
	u, ok := s.units[h]
	if !ok {
		return ErrNotFound
	}
	u.Movement = clamp(mp, 0, u.MaxMove)
	return nil
}

// SetUnitHealth clamps hp to [0, MaxHealth]. Removal at zero is the caller's job.
func (s *Store) SetUnitHealth(h Handle, hp int) error {
	u, ok := s.units[h]
	if !ok {
		return ErrNotFound
	}
	u.Health = clamp(hp, 0, u.MaxHealth)
	return nil
}

func (s *Store) MoveUnitTo(h Handle, c hex.Coord) error {
	u, ok := s.units[h]
	if !ok {
		return ErrNotFound
	}
	if !s.HasTile(c) {
		return ErrOffMap
	}
	if other, taken := s.unitAt[c]; taken && other != h {
		return ErrOccupiedTile
	}
	delete(s.unitAt, u.Coord)
	u.Coord = c
	s.unitAt[c] = h
	return nil
}

// SetProduction replaces the city's queued item with the given progress.
func (s *Store) SetProduction(h Handle, item UnitType, progress int) error {
	c, ok := s.cities[h]
	if !ok {
		return ErrNotFound
	}
	c.Production = &Production{Item: item, Progress: max(progress, 0)}
	return nil
}

func (s *Store) SetCityFood(h Handle, food int) error {
	c, ok := s.cities[h]
	if !ok {
		return ErrNotFound
	}
	c.Food = food
	return nil
}

func (s *Store) SetPopulation(h Handle, pop int) error {
	c, ok := s.cities[h]
	if !ok {
		return ErrNotFound
	}
	c.Population = max(pop, 1)
	return nil
}

// ClaimTerritory assigns unclaimed tiles among coords to the city. Tiles
// already owned by another city are skipped. It returns the newly claimed tiles.
func (s *Store) ClaimTerritory(h Handle, coords []hex.Coord) ([]hex.Coord, error) {
	c, ok := s.cities[h]
	if !ok {
		return nil, ErrNotFound
	}
	var claimed []hex.Coord
	for _, coord := range coords {
		t, ok := s.tiles[coord]
		if !ok || t.Owner != 0 {
			continue
		}
		t.Owner = h
		c.Territory = append(c.Territory, coord)
		claimed = append(claimed, coord)
	}
	return claimed, nil
}

// TransferCity hands a city and its territory to a new owner.
func (s *Store) TransferCity(h Handle, owner PlayerID) error {
	c, ok := s.cities[h]
	if !ok {
		return ErrNotFound
	}
	if _, ok := s.Player(owner); !ok {
		return ErrUnknownPlayer
	}
	c.Owner = owner
	c.Production = nil
	return nil
}

// Copy returns a deep copy that shares nothing with s.
func (s *Store) Copy() *Store {
	out := NewStore()
	for c, t := range s.tiles {
		tc := *t
		out.tiles[c] = &tc
	}
	for h, u := range s.units {
		uc := *u
		out.units[h] = &uc
	}
	for h, c := range s.cities {
		cc := c.Copy()
		out.cities[h] = &cc
	}
	for c, h := range s.unitAt {
		out.unitAt[c] = h
	}
	for c, h := range s.cityAt {
		out.cityAt[c] = h
	}
	out.players = slices.Clone(s.players)
	out.next = s.next
	return out
}

// Mover is a movement cost view of the store for one player.
type Mover struct {
	store   *Store
	player  PlayerID
	capture bool
	goal    hex.Coord
}

func (s *Store) Mover(p PlayerID) Mover {
	return Mover{store: s, player: p}
}

// CapturingAt lets the path end on the enemy city center at goal.
func (m Mover) CapturingAt(goal hex.Coord) Mover {
	m.capture = true
	m.goal = goal
	return m
}

// StepCost is the cost to enter c. Enemy units block, friendly units can be passed.
func (m Mover) StepCost(c hex.Coord) (int, bool) {
	t, ok := m.store.tiles[c]
	if !ok {
		return 0, false
	}
	cost := t.MoveCost()
	if cost == Impassable {
		return 0, false
	}
	if h, ok := m.store.unitAt[c]; ok && m.store.units[h].Owner != m.player {
		return 0, false
	}
	if h, ok := m.store.cityAt[c]; ok && m.store.cities[h].Owner != m.player {
		if !m.capture || c != m.goal {
			return 0, false
		}
	}
	return cost, true
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func compareHandle(a, b Handle) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareCoord(a, b hex.Coord) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	}
	return 0
}
