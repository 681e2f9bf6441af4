package combat

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/gamedata"
)

// executeMove runs one move action through the pipeline. Every check may
// end the action with narration only.
func (e *Engine) executeMove(ctx context.Context, b *Battle, user slotRef, a Action) {
	attacker := user.combatant()
	t := user.transient()

	if ok, msg := attacker.Status().CanMove(e.rng); !ok {
		b.say(msg)
		return
	} else if msg != "" {
		b.say(msg)
	}

	move, ok := e.moves.Move(a.MoveID)
	if !ok {
		b.say(fmt.Sprintf("%s tried to use %s, but it failed!", attacker.GetName(), gamedata.DisplayName(a.MoveID)))
		return
	}

	if move.IsStatus() && attacker.Status().HasVolatile(VolatileTaunt) {
		b.say(fmt.Sprintf("%s can't use %s after the taunt!", attacker.GetName(), move.DisplayName()))
		return
	}

	if !move.Protect {
		t.ProtectStreak = 0
	}

	if move.Revive {
		if !e.spendPP(b, user, move) {
			return
		}
		b.say(fmt.Sprintf("%s used %s!", attacker.GetName(), move.DisplayName()))
		e.revive(b, user, a.Revive)
		return
	}

	targets := e.resolveTargets(b, user, move, a)
	if len(targets) > 1 {
		e.executeSpread(ctx, b, user, move, targets)
		return
	}
	e.executeSingle(ctx, b, user, move, targets)
}

// executeSingle is the single-target path.
func (e *Engine) executeSingle(ctx context.Context, b *Battle, user slotRef, move *gamedata.MoveDef, targets []slotRef) {
	attacker := user.combatant()
	t := user.transient()

	if move.Protect {
		chance := math.Pow(1.0/3.0, float64(t.ProtectStreak))
		if e.rng.Float64() >= chance {
			if !e.spendPP(b, user, move) {
				return
			}
			b.say(fmt.Sprintf("%s used %s!", attacker.GetName(), move.DisplayName()), "But it failed!")
			t.ProtectStreak = 0
			t.Failures[move.ID]++
			return
		}
	}

	if !e.moveLegal(b, user, move) {
		return
	}

	if !e.spendPP(b, user, move) {
		return
	}
	b.say(fmt.Sprintf("%s used %s!", attacker.GetName(), move.DisplayName()))

	if move.IsStatus() {
		e.applyStatusMove(b, user, move, targets)
		return
	}

	if len(targets) == 0 {
		b.say("But there was no target...")
		t.Failures[move.ID]++
		return
	}
	target := targets[0]
	defender := target.combatant()

	if defender.Status().HasVolatile(VolatileProtect) {
		b.say(fmt.Sprintf("%s protected itself!", defender.GetName()))
		return
	}
	if !e.accuracyHit(move) {
		b.say(fmt.Sprintf("%s's attack missed!", attacker.GetName()))
		t.Failures[move.ID]++
		return
	}

	res := e.calculate(ctx, b, attacker, defender, target.battler.Side, move, 1)
	dealt := e.applyDamage(b, user, target, move, res)
	if dealt > 0 {
		b.say(e.items.AfterDamage(attacker, dealt)...)
		if !attacker.IsAlive() {
			e.handleFaint(b, user)
		}
	}

	e.selfSwitch(ctx, b, user, move, dealt)
}

// executeSpread is the multi-target path. PP is spent once and every
// target is resolved on its own.
func (e *Engine) executeSpread(ctx context.Context, b *Battle, user slotRef, move *gamedata.MoveDef, targets []slotRef) {
	attacker := user.combatant()

	if !e.moveLegal(b, user, move) {
		return
	}

	if !e.spendPP(b, user, move) {
		return
	}
	b.say(fmt.Sprintf("%s used %s!", attacker.GetName(), move.DisplayName()))

	if move.IsStatus() {
		e.applyStatusMove(b, user, move, targets)
		return
	}

	modifier := 1.0
	if b.Format != FormatSingles && len(targets) > 1 {
		modifier = e.settings.SpreadModifier
	}

	total := 0
	for _, target := range targets {
		if !target.alive() {
			continue
		}
		defender := target.combatant()
		if defender.Status().HasVolatile(VolatileProtect) {
			b.say(fmt.Sprintf("%s protected itself!", defender.GetName()))
			continue
		}
		if !e.accuracyHit(move) {
			b.say(fmt.Sprintf("%s avoided the attack!", defender.GetName()))
			continue
		}
		res := e.calculate(ctx, b, attacker, defender, target.battler.Side, move, modifier)
		total += e.applyDamage(b, user, target, move, res)
		if b.dazed {
			break
		}
	}

	if total > 0 && attacker.IsAlive() {
		b.say(e.items.AfterDamage(attacker, total)...)
		if !attacker.IsAlive() {
			e.handleFaint(b, user)
		}
	}
}

// moveLegal runs the held-item, ruleset and raid-boss checks.
func (e *Engine) moveLegal(b *Battle, user slotRef, move *gamedata.MoveDef) bool {
	attacker := user.combatant()
	t := user.transient()

	if ok, reason := e.items.CheckMove(attacker, t.ChoiceLock, move.ID); !ok {
		b.say(reason)
		return false
	}
	if ok, reason := e.moveAllowed(move.ID, b.Ruleset); !ok {
		b.say(reason)
		return false
	}
	if b.Format == FormatRaid && user.battler == b.Opponent && e.bossBanned[move.ID] {
		b.say(fmt.Sprintf("%s can't use %s in a raid!", attacker.GetName(), move.DisplayName()))
		return false
	}
	return true
}

// moveAllowed asks the ruleset handler. A failing handler allows the move.
func (e *Engine) moveAllowed(moveID, ruleset string) (ok bool, reason string) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Warn().Interface("panic", r).Str("ruleset", ruleset).Msg("ruleset lookup failed")
			ok, reason = true, ""
		}
	}()
	if e.rulesets == nil {
		return true, ""
	}
	return e.rulesets.IsMoveAllowed(moveID, ruleset)
}

// spendPP deducts one PP and registers a choice lock. A move with no PP
// left is narrated and not used.
func (e *Engine) spendPP(b *Battle, user slotRef, move *gamedata.MoveDef) bool {
	attacker := user.combatant()
	t := user.transient()
	if move.ID != gamedata.StruggleID && !attacker.UsePP(move.ID) {
		b.say(fmt.Sprintf("%s tried to use %s, but there was no PP left!", attacker.GetName(), move.DisplayName()))
		t.Failures[move.ID]++
		return false
	}
	t.LastMove = move.ID
	if t.ChoiceLock == "" && e.items.LocksChoice(attacker) {
		t.ChoiceLock = move.ID
	}
	return true
}

func (e *Engine) accuracyHit(move *gamedata.MoveDef) bool {
	if move.Accuracy <= 0 || move.Accuracy >= 100 {
		return true
	}
	return e.rng.Intn(100) < move.Accuracy
}

// calculate calls the damage calculator, falling back to flat damage with
// no crit and neutral effectiveness when it fails.
func (e *Engine) calculate(ctx context.Context, b *Battle, attacker, defender Combatant, side Side, move *gamedata.MoveDef, modifier float64) (res DamageResult) {
	fallback := DamageResult{Damage: e.settings.FallbackDamage, Effectiveness: 1}
	defer func() {
		if r := recover(); r != nil {
			e.log.Warn().Interface("panic", r).Str("move", move.ID).Msg("damage calculator panicked")
			res = fallback
		}
	}()

	res, err := e.calc.Calculate(ctx, DamageRequest{
		Attacker:     attacker,
		Defender:     defender,
		DefenderSide: side,
		Move:         move,
		Weather:      b.Field.Weather,
		Terrain:      b.Field.Terrain,
		Battle:       b,
		Modifier:     modifier,
	})
	if err != nil {
		e.log.Warn().Err(err).Str("move", move.ID).Msg("damage calculation failed, using fallback")
		return fallback
	}
	return res
}

// applyDamage applies a calculated hit to one target and narrates it.
func (e *Engine) applyDamage(b *Battle, user, target slotRef, move *gamedata.MoveDef, res DamageResult) int {
	defender := target.combatant()

	if res.Effectiveness == 0 {
		b.say(fmt.Sprintf("It doesn't affect %s...", defender.GetName()))
		user.transient().Ineffective[move.ID] = true
		return 0
	}

	damage := max(res.Damage, 1)
	damage, itemMsgs := e.items.ModifyIncomingDamage(defender, damage)

	endured := false
	if defender.Status().HasVolatile(VolatileEndure) && damage >= defender.GetHP() {
		damage = defender.GetHP() - 1
		endured = true
	}

	dealt := defender.TakeDamage(damage)
	if t := target.transient(); t != nil {
		t.HitsTakenThisTurn++
	}

	if res.Crit {
		b.say("A critical hit!")
	}
	switch {
	case res.Effectiveness > 1:
		b.say("It's super effective!")
	case res.Effectiveness < 1:
		b.say("It's not very effective...")
	}
	b.say(fmt.Sprintf("%s took %d damage!", defender.GetName(), dealt))
	b.say(res.Messages...)
	b.say(itemMsgs...)
	if endured {
		b.say(fmt.Sprintf("%s endured the hit!", defender.GetName()))
	}

	if !defender.IsAlive() {
		e.handleFaint(b, target)
		return dealt
	}

	if move.Status != "" && (move.StatusChance == 0 || e.rng.Intn(100) < move.StatusChance) {
		if ok, msg := defender.Status().ApplyStatus(move.Status); ok {
			b.say(msg)
		}
	}
	return dealt
}

// selfSwitch handles volt-switch style moves after a successful hit.
func (e *Engine) selfSwitch(ctx context.Context, b *Battle, user slotRef, move *gamedata.MoveDef, dealt int) {
	if !move.SelfSwitch || dealt <= 0 || b.Over || b.dazed || !user.alive() {
		return
	}
	owner := user.battler
	bench := owner.Bench()
	if !owner.CanSwitch || len(bench) == 0 {
		return
	}
	if owner.IsAI {
		if _, err := e.switchIn(ctx, b, owner, user.slot, bench[0], false); err != nil {
			e.log.Warn().Err(err).Str("battle_id", b.ID).Msg("ai self-switch failed")
		}
		return
	}
	if _, pending := b.PendingSwitches[owner.ID]; pending {
		return
	}
	user.transient().ShouldSelfSwitch = true
	b.PendingSwitches[owner.ID] = PendingSwitch{Slot: user.slot, Kind: SwitchVolt}
	b.say(fmt.Sprintf("%s went back to %s!", user.combatant().GetName(), owner.Name))
}

// handleFaint resolves a combatant reaching 0 HP. A wild combatant is
// dazed at 1 HP instead. Human battlers are queued for a forced switch;
// AI trainers get a replacement queued for after end of turn.
func (e *Engine) handleFaint(b *Battle, target slotRef) {
	c := target.combatant()
	owner := target.battler

	if b.Type == TypeWild && owner == b.Opponent {
		c.Heal(1)
		b.dazed = true
		b.say(fmt.Sprintf("The wild %s is dazed!", c.GetName()))
		return
	}

	if t := target.transient(); t != nil {
		t.Fainted = true
		t.ShouldSelfSwitch = false
	}
	b.say(fmt.Sprintf("%s fainted!", c.GetName()))

	if ps, ok := b.PendingSwitches[owner.ID]; ok && ps.Slot == target.slot && ps.Kind == SwitchVolt {
		delete(b.PendingSwitches, owner.ID)
	}

	bench := owner.Bench()
	switch {
	case len(bench) == 0:
	case !owner.IsAI:
		if _, pending := b.PendingSwitches[owner.ID]; !pending {
			b.PendingSwitches[owner.ID] = PendingSwitch{Slot: target.slot, Kind: SwitchForced}
		}
	case b.Type != TypeWild:
		if _, pending := b.PendingSwitches[owner.ID]; !pending {
			b.PendingSwitches[owner.ID] = PendingSwitch{Slot: target.slot, Kind: SwitchAI, PartyIndex: bench[0]}
		}
	}
	e.checkBattleEnd(b)
}

// applyStatusMove resolves a move that deals no direct damage.
func (e *Engine) applyStatusMove(b *Battle, user slotRef, move *gamedata.MoveDef, targets []slotRef) {
	attacker := user.combatant()
	succeeded := e.applyFieldEffect(b, user, move)

	for _, target := range targets {
		defender := target.combatant()
		if target.battler.Side != user.battler.Side {
			if defender.Status().HasVolatile(VolatileProtect) {
				b.say(fmt.Sprintf("%s protected itself!", defender.GetName()))
				continue
			}
			if !e.accuracyHit(move) {
				b.say(fmt.Sprintf("%s's attack missed!", attacker.GetName()))
				continue
			}
			if e.chart.Effectiveness(move.Type, defender.GetTypes()) == 0 {
				b.say(fmt.Sprintf("It doesn't affect %s...", defender.GetName()))
				user.transient().Ineffective[move.ID] = true
				continue
			}
		}
		if e.applyTargetEffects(b, user, target, move) {
			succeeded = true
		}
	}

	if !succeeded {
		b.say("But it failed!")
		user.transient().Failures[move.ID]++
	}
}

// applyFieldEffect handles weather, terrain, trick room, hazards and screens.
func (e *Engine) applyFieldEffect(b *Battle, user slotRef, move *gamedata.MoveDef) bool {
	name := user.combatant().GetName()
	applied := false

	if move.Weather != "" && b.StartWeather(move.Weather) {
		b.say(WeatherStartMessage(move.Weather))
		applied = true
	}
	if move.Terrain != "" && b.StartTerrain(move.Terrain) {
		b.say(TerrainStartMessage(move.Terrain))
		applied = true
	}
	if move.TrickRoom {
		if b.Field.TrickRoom() {
			b.Field.TrickRoomTurns = 0
			b.say("The twisted dimensions returned to normal!")
		} else {
			b.Field.TrickRoomTurns = b.fieldTurns
			b.say(fmt.Sprintf("%s twisted the dimensions!", name))
		}
		applied = true
	}
	if move.Hazard != "" {
		side := user.battler.Side.Other()
		layers := b.Field.Hazards[side]
		if layers[move.Hazard] < hazardLayers[move.Hazard] {
			layers[move.Hazard]++
			b.say(hazardSetMessage(move.Hazard))
			applied = true
		}
	}
	if move.Screen != "" {
		screens := b.Field.Screens[user.battler.Side]
		if screens[move.Screen] == 0 {
			screens[move.Screen] = b.fieldTurns
			b.say(fmt.Sprintf("%s raised your team's defenses!", gamedata.DisplayName(move.ID)))
			applied = true
		}
	}
	return applied
}

// applyTargetEffects applies volatiles, status, stat changes and healing
// to one target.
func (e *Engine) applyTargetEffects(b *Battle, user slotRef, target slotRef, move *gamedata.MoveDef) bool {
	c := target.combatant()
	applied := false

	if v := move.Volatile; v != "" {
		if !c.Status().HasVolatile(v) {
			c.Status().AddVolatile(v)
			if v == VolatileProtect {
				user.transient().ProtectStreak++
			}
			b.say(volatileMessage(v, c.GetName()))
			applied = true
		}
	}

	if move.Status != "" {
		ok, msg := c.Status().ApplyStatus(move.Status)
		b.say(msg)
		applied = applied || ok
	}

	stats := make([]string, 0, len(move.StatChanges))
	for stat := range move.StatChanges {
		stats = append(stats, stat)
	}
	sort.Strings(stats)
	for _, stat := range stats {
		delta := move.StatChanges[stat]
		if changed := c.ModifyStage(stat, delta); changed != 0 {
			b.say(stageMessage(c.GetName(), stat, changed))
			applied = true
		} else {
			b.say(stageCappedMessage(c.GetName(), stat, delta))
		}
	}

	if move.HealPercent > 0 {
		if healed := c.Heal(c.GetMaxHP() * move.HealPercent / 100); healed > 0 {
			b.say(fmt.Sprintf("%s regained health!", c.GetName()))
			applied = true
		} else {
			b.say(fmt.Sprintf("%s's HP is full!", c.GetName()))
		}
	}

	return applied
}
