package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hexciv/hex"
	"hexciv/world"
)

func TestCommandCodec(t *testing.T) {
	t.Run("commands carry a type tag next to their fields", func(t *testing.T) {
		data, err := EncodeCommand(MoveUnit{Unit: 3, Target: hex.New(1, 0)})
		require.NoError(t, err)
		require.JSONEq(t, `{"type":"MoveUnit","unit":3,"target":{"q":1,"r":0}}`, string(data))

		data, err = EncodeCommand(SetProduction{City: 7, Item: world.Horseman})
		require.NoError(t, err)
		require.JSONEq(t, `{"type":"SetProduction","city":7,"item":"Horseman"}`, string(data))
	})

	t.Run("decoding restores the concrete command", func(t *testing.T) {
		for _, cmd := range []Command{
			MoveUnit{Unit: 3, Target: hex.New(-2, 5)},
			Attack{Attacker: 1, Defender: 2},
			FoundCity{Settler: 4},
			SetProduction{City: 7, Item: world.Archer},
			EndTurn{Player: 2},
		} {
			data, err := EncodeCommand(cmd)
			require.NoError(t, err)
			got, err := DecodeCommand(data)
			require.NoError(t, err)
			require.Equal(t, cmd, got)
		}
	})

	t.Run("unknown tags are rejected", func(t *testing.T) {
		_, err := DecodeCommand([]byte(`{"type":"Teleport","unit":1}`))
		require.ErrorIs(t, err, ErrUnknownCommand)
		_, err = DecodeCommand([]byte(`{"unit":1}`))
		require.ErrorIs(t, err, ErrUnknownCommand)
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		_, err := DecodeCommand([]byte(`{"type":"EndTurn","player":1,"force":true}`))
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrUnknownCommand)
	})

	t.Run("unknown unit types are rejected", func(t *testing.T) {
		_, err := DecodeCommand([]byte(`{"type":"SetProduction","city":1,"item":"Catapult"}`))
		require.Error(t, err)
	})

	t.Run("malformed input", func(t *testing.T) {
		_, err := DecodeCommand([]byte(`{"type":`))
		require.Error(t, err)
	})

	t.Run("nil commands are not executed", func(t *testing.T) {
		s, _, _ := newTestStore(1)
		g := newTestGame(t, s)
		_, err := g.ExecuteCommand(nil)
		require.ErrorIs(t, err, ErrUnknownCommand)
	})
}

func TestRejection(t *testing.T) {
	err := error(&Rejection{Reason: ErrUnreachable, Command: MoveUnit{Unit: 1}})
	require.EqualError(t, err, "MoveUnit rejected: Unreachable")
	reason, ok := ReasonOf(err)
	require.True(t, ok)
	require.Equal(t, ErrUnreachable, reason)
	_, ok = ReasonOf(ErrUnknownCommand)
	require.False(t, ok)
}
