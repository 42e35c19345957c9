package world

// PlayerID is a stable small integer. Zero is never a valid player.
type PlayerID int

// Handle identifies a unit or a city. Handles are never reused by a Store.
type Handle uint64

type Player struct {
	ID         PlayerID `json:"id"`
	Name       string   `json:"name"`
	AI         bool     `json:"ai"`
	Eliminated bool     `json:"eliminated"`
}
