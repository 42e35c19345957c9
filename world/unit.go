package world

import (
	"fmt"

	"hexciv/hex"
)

type UnitType int

const (
	Settler UnitType = iota
	Warrior
	Scout
	Archer
	Spearman
	Horseman
)

const DefaultMaxHealth = 100

// UnitStats are the fixed attributes of a unit type.
type UnitStats struct {
	Name           string
	Strength       float64
	RangedStrength float64
	Range          int
	Movement       int
	Cost           int
}

var unitStats = []UnitStats{
	Settler:  {Name: "Settler", Movement: 2, Cost: 80},
	Warrior:  {Name: "Warrior", Strength: 8, Movement: 2, Cost: 40},
	Scout:    {Name: "Scout", Strength: 5, Movement: 3, Cost: 30},
	Archer:   {Name: "Archer", Strength: 5, RangedStrength: 7, Range: 2, Movement: 2, Cost: 50},
	Spearman: {Name: "Spearman", Strength: 11, Movement: 2, Cost: 55},
	Horseman: {Name: "Horseman", Strength: 12, Movement: 4, Cost: 70},
}

func UnitTypes() []UnitType {
	out := make([]UnitType, len(unitStats))
	for i := range out {
		out[i] = UnitType(i)
	}
	return out
}

func (u UnitType) Valid() bool {
	return u >= 0 && int(u) < len(unitStats)
}

func (u UnitType) Stats() UnitStats {
	if !u.Valid() {
		return UnitStats{}
	}
	return unitStats[u]
}

func (u UnitType) String() string {
	if !u.Valid() {
		return fmt.Sprintf("UnitType(%d)", int(u))
	}
	return unitStats[u].Name
}

func (u UnitType) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *UnitType) UnmarshalText(b []byte) error {
	for i, s := range unitStats {
		if s.Name == string(b) {
			*u = UnitType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown unit type %q", string(b))
}

func (u UnitType) IsCombat() bool {
	return u.Stats().Strength > 0
}

type Unit struct {
	Handle    Handle
	Type      UnitType
	Owner     PlayerID
	Coord     hex.Coord
	Movement  int
	MaxMove   int
	Health    int
	MaxHealth int
}

func (u Unit) Strength() float64 {
	return u.Type.Stats().Strength
}
