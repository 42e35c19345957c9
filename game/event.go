package game

import (
	"hexciv/hex"
	"hexciv/world"
)

// Event records a change that has already been applied. The set is closed.
type Event interface {
	Kind() string
	event()
}

type UnitMoved struct {
	Unit      world.Handle
	Owner     world.PlayerID
	From      hex.Coord
	To        hex.Coord
	Cost      int
	Remaining int
}

type CombatResolved struct {
	Attacker       world.Handle
	Defender       world.Handle
	AttackerDamage int
	DefenderDamage int
	AttackerHealth int // after damage
	DefenderHealth int
	Modifier       float64
}

type CityFounded struct {
	City      world.Handle
	Settler   world.Handle
	Owner     world.PlayerID
	Coord     hex.Coord
	Name      string
	Territory []hex.Coord
}

type CityCaptured struct {
	City  world.Handle
	By    world.Handle
	From  world.PlayerID
	To    world.PlayerID
	Coord hex.Coord
}

type CityGrew struct {
	City       world.Handle
	Population int
}

type UnitDestroyed struct {
	Unit  world.Handle
	Type  world.UnitType
	Owner world.PlayerID
	Coord hex.Coord
}

type ProductionCompleted struct {
	City  world.Handle
	Unit  world.Handle
	Item  world.UnitType
	Coord hex.Coord
}

type TurnEnded struct {
	Player world.PlayerID
	Turn   int
}

type PlayerEliminated struct {
	Player world.PlayerID
}

// GameOver carries the winner, or zero for a draw.
type GameOver struct {
	Winner world.PlayerID
	Turn   int
}

func (UnitMoved) Kind() string           { return "UnitMoved" }
func (CombatResolved) Kind() string      { return "CombatResolved" }
func (CityFounded) Kind() string         { return "CityFounded" }
func (CityCaptured) Kind() string        { return "CityCaptured" }
func (CityGrew) Kind() string            { return "CityGrew" }
func (UnitDestroyed) Kind() string       { return "UnitDestroyed" }
func (ProductionCompleted) Kind() string { return "ProductionCompleted" }
func (TurnEnded) Kind() string           { return "TurnEnded" }
func (PlayerEliminated) Kind() string    { return "PlayerEliminated" }
func (GameOver) Kind() string            { return "GameOver" }

func (UnitMoved) event()           {}
func (CombatResolved) event()      {}
func (CityFounded) event()         {}
func (CityCaptured) event()        {}
func (CityGrew) event()            {}
func (UnitDestroyed) event()       {}
func (ProductionCompleted) event() {}
func (TurnEnded) event()           {}
func (PlayerEliminated) event()    {}
func (GameOver) event()            {}
