package game

import (
	"hexciv/hex"
	"hexciv/world"
)

// Command is an intent submitted to ExecuteCommand. The set of commands is
// closed: only the types in this file implement it.
type Command interface {
	Kind() string
	command()
}

type MoveUnit struct {
	Unit   world.Handle `json:"unit"`
	Target hex.Coord    `json:"target"`
}

type Attack struct {
	Attacker world.Handle `json:"attacker"`
	Defender world.Handle `json:"defender"`
}

type FoundCity struct {
	Settler world.Handle `json:"settler"`
}

type SetProduction struct {
	City world.Handle   `json:"city"`
	Item world.UnitType `json:"item"`
}

type EndTurn struct {
	Player world.PlayerID `json:"player"`
}

func (MoveUnit) Kind() string      { return "MoveUnit" }
func (Attack) Kind() string        { return "Attack" }
func (FoundCity) Kind() string     { return "FoundCity" }
func (SetProduction) Kind() string { return "SetProduction" }
func (EndTurn) Kind() string       { return "EndTurn" }

func (MoveUnit) command()      {}
func (Attack) command()        {}
func (FoundCity) command()     {}
func (SetProduction) command() {}
func (EndTurn) command()       {}
