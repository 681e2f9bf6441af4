package combat

import "fmt"

// revive brings a fainted team member back at half HP. The requested
// member is used when it is a fainted member of the user's team; otherwise
// the first fainted member in join and party order is chosen.
func (e *Engine) revive(b *Battle, user slotRef, ref *PartyRef) {
	own, _ := b.TeamsOf(user.battler.ID)

	type candidate struct {
		battler *Battler
		index   int
	}
	var candidates []candidate
	for _, battler := range own {
		for i, c := range battler.Party {
			if !c.IsAlive() {
				candidates = append(candidates, candidate{battler, i})
			}
		}
	}
	if len(candidates) == 0 {
		b.say("But it failed!")
		if t := user.transient(); t != nil && t.LastMove != "" {
			t.Failures[t.LastMove]++
		}
		return
	}

	chosen := candidates[0]
	if ref != nil {
		for _, cand := range candidates {
			if cand.battler.ID == ref.BattlerID && cand.index == ref.PartyIndex {
				chosen = cand
				break
			}
		}
	}

	c := chosen.battler.Party[chosen.index]
	c.Heal(max(c.GetMaxHP()/2, 1))
	c.Status().ClearStatus()
	c.Status().ClearVolatiles()
	if t := chosen.battler.Transient(chosen.index); t != nil {
		t.Fainted = false
	}
	chosen.battler.RecomputeEliminated()
	b.say(fmt.Sprintf("%s was revived and is ready to fight again!", c.GetName()))
}
