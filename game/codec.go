package game

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Wire form: {"type":"MoveUnit","unit":3,"target":{"q":1,"r":0}}.

type envelope struct {
	Type string `json:"type"`
}

func EncodeCommand(cmd Command) ([]byte, error) {
	var payload any
	switch c := cmd.(type) {
	case MoveUnit:
		payload = struct {
			envelope
			MoveUnit
		}{envelope{c.Kind()}, c}
	case Attack:
		payload = struct {
			envelope
			Attack
		}{envelope{c.Kind()}, c}
	case FoundCity:
		payload = struct {
			envelope
			FoundCity
		}{envelope{c.Kind()}, c}
	case SetProduction:
		payload = struct {
			envelope
			SetProduction
		}{envelope{c.Kind()}, c}
	case EndTurn:
		payload = struct {
			envelope
			EndTurn
		}{envelope{c.Kind()}, c}
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
	return json.Marshal(payload)
}

// DecodeCommand parses one command. Unknown tags and unknown fields are errors.
func DecodeCommand(data []byte) (Command, error) {
	var head envelope
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("game: decode command: %w", err)
	}
	var (
		cmd Command
		err error
	)
	switch head.Type {
	case "MoveUnit":
		var w struct {
			envelope
			MoveUnit
		}
		err = strictUnmarshal(data, &w)
		cmd = w.MoveUnit
	case "Attack":
		var w struct {
			envelope
			Attack
		}
		err = strictUnmarshal(data, &w)
		cmd = w.Attack
	case "FoundCity":
		var w struct {
			envelope
			FoundCity
		}
		err = strictUnmarshal(data, &w)
		cmd = w.FoundCity
	case "SetProduction":
		var w struct {
			envelope
			SetProduction
		}
		err = strictUnmarshal(data, &w)
		cmd = w.SetProduction
	case "EndTurn":
		var w struct {
			envelope
			EndTurn
		}
		err = strictUnmarshal(data, &w)
		cmd = w.EndTurn
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, head.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("game: decode %s: %w", head.Type, err)
	}
	return cmd, nil
}

func strictUnmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
