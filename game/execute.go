package game

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"hexciv/combat"
	"hexciv/hex"
	"hexciv/world"
)

var cityNames = []string{
	"Capital", "Harbor", "Ridge", "Hollow", "Ford", "Crossing",
	"Watch", "Vale", "Marsh", "Spire", "Haven", "Reach",
}

func (g *Game) executeMove(o moveOrder) []Event {
	to := o.path.Steps[len(o.path.Steps)-1]
	remaining := o.unit.Movement - o.path.Cost
	if o.capture != nil {
		remaining = 0
	}
	must(g.store.MoveUnitTo(o.unit.Handle, to))
	must(g.store.SetUnitMovement(o.unit.Handle, remaining))

	events := []Event{UnitMoved{
		Unit:      o.unit.Handle,
		Owner:     o.unit.Owner,
		From:      o.unit.Coord,
		To:        to,
		Cost:      o.path.Cost,
		Remaining: remaining,
	}}
	if o.capture == nil {
		return events
	}

	must(g.store.TransferCity(o.capture.Handle, o.unit.Owner))
	log.Debug().Msgf("player %d captured %s from player %d", o.unit.Owner, o.capture.Name, o.capture.Owner)
	events = append(events, CityCaptured{
		City:  o.capture.Handle,
		By:    o.unit.Handle,
		From:  o.capture.Owner,
		To:    o.unit.Owner,
		Coord: o.capture.Coord,
	})
	return g.settle(events, o.capture.Owner)
}

func (g *Game) executeAttack(o attackOrder) []Event {
	mod := g.rules.DefenseModifier(o.tile, o.attacker.Coord, o.cityCenter)
	out := combat.Resolve(combatant(o.attacker), combatant(o.defender), mod)
	attHP := o.attacker.Health - out.AttackerDamage
	defHP := o.defender.Health - out.DefenderDamage

	events := []Event{CombatResolved{
		Attacker:       o.attacker.Handle,
		Defender:       o.defender.Handle,
		AttackerDamage: out.AttackerDamage,
		DefenderDamage: out.DefenderDamage,
		AttackerHealth: attHP,
		DefenderHealth: defHP,
		Modifier:       combat.ClampModifier(mod),
	}}
	events = append(events, g.applyDamage(o.defender, defHP)...)
	events = append(events, g.applyDamage(o.attacker, attHP)...)
	if attHP > 0 {
		must(g.store.SetUnitMovement(o.attacker.Handle, 0))
	}
	return g.settle(events, o.defender.Owner, o.attacker.Owner)
}

// applyDamage stores the new health, removing the unit when it reaches zero.
func (g *Game) applyDamage(u world.Unit, hp int) []Event {
	if hp > 0 {
		must(g.store.SetUnitHealth(u.Handle, hp))
		return nil
	}
	must(g.store.Destroy(u.Handle))
	return []Event{UnitDestroyed{Unit: u.Handle, Type: u.Type, Owner: u.Owner, Coord: u.Coord}}
}

func combatant(u world.Unit) combat.Combatant {
	return combat.Combatant{Strength: u.Strength(), Health: u.Health, MaxHealth: u.MaxHealth}
}

func (g *Game) executeFound(settler world.Unit) []Event {
	must(g.store.Destroy(settler.Handle))
	name := g.cityName(settler.Owner)
	h, err := g.store.CreateCity(settler.Coord, settler.Owner, name)
	must(err)
	claimed, err := g.store.ClaimTerritory(h, hex.Range(settler.Coord, g.rules.CityRadius()))
	must(err)
	log.Debug().Msgf("player %d founded %s at %s", settler.Owner, name, settler.Coord)
	return []Event{CityFounded{
		City:      h,
		Settler:   settler.Handle,
		Owner:     settler.Owner,
		Coord:     settler.Coord,
		Name:      name,
		Territory: claimed,
	}}
}

func (g *Game) cityName(p world.PlayerID) string {
	n := g.founded[p]
	g.founded[p] = n + 1
	player, _ := g.store.Player(p)
	name := fmt.Sprintf("%s %s", player.Name, cityNames[n%len(cityNames)])
	if round := n / len(cityNames); round > 0 {
		name = fmt.Sprintf("%s %d", name, round+1)
	}
	return name
}

// executeProduction keeps accumulated progress only when the item is unchanged.
func (g *Game) executeProduction(city world.City, item world.UnitType) []Event {
	progress := 0
	if city.Production != nil && city.Production.Item == item {
		progress = city.Production.Progress
	}
	must(g.store.SetProduction(city.Handle, item, progress))
	return nil
}
