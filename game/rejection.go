package game

import (
	"errors"
	"fmt"
)

// Reason classifies why a command was rejected. Reasons are errors, so
// errors.Is(err, ErrNotOwner) works on anything ExecuteCommand returns.
type Reason int

const (
	ErrNotOwner Reason = iota + 1
	ErrNoMovement
	ErrNotAdjacent
	ErrInvalidTerrain
	ErrWrongUnitType
	ErrOccupiedTile
	ErrSameOwner
	ErrUnreachable
	ErrNotFound
	ErrGameOver
	ErrNotCurrentPlayer
)

var reasonNames = map[Reason]string{
	ErrNotOwner:         "NotOwner",
	ErrNoMovement:       "NoMovement",
	ErrNotAdjacent:      "NotAdjacent",
	ErrInvalidTerrain:   "InvalidTerrain",
	ErrWrongUnitType:    "WrongUnitType",
	ErrOccupiedTile:     "OccupiedTile",
	ErrSameOwner:        "SameOwner",
	ErrUnreachable:      "Unreachable",
	ErrNotFound:         "NotFound",
	ErrGameOver:         "GameOver",
	ErrNotCurrentPlayer: "NotCurrentPlayer",
}

func (r Reason) String() string {
	if name, ok := reasonNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

func (r Reason) Error() string {
	return r.String()
}

// ErrUnknownCommand is returned for nil commands and unknown wire tags.
var ErrUnknownCommand = errors.New("game: unknown command")

// Rejection is the error returned by ExecuteCommand when validation fails.
type Rejection struct {
	Reason  Reason
	Command Command
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s rejected: %s", r.Command.Kind(), r.Reason)
}

func (r *Rejection) Unwrap() error {
	return r.Reason
}

// ReasonOf extracts the rejection reason from err, if any.
func ReasonOf(err error) (Reason, bool) {
	var r Reason
	if errors.As(err, &r) {
		return r, true
	}
	return 0, false
}
