package combat

// Reserved battler ids. Human players use positive platform ids; 0 stands
// for "no battler" in actions and results and is refused by StartBattle.
const (
	NoBattler int64 = 0

	WildID    int64 = -1
	NPCID     int64 = -2
	BossID    int64 = -3
	PartnerID int64 = -4
)

// Side is one of the two teams of a battle.
type Side int

const (
	SideTrainer Side = iota
	SideOpponent
)

// String returns the side name used for winners.
func (s Side) String() string {
	switch s {
	case SideTrainer:
		return "trainer"
	case SideOpponent:
		return "opponent"
	default:
		return "unknown"
	}
}

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == SideTrainer {
		return SideOpponent
	}
	return SideTrainer
}

// Transient is the per-combatant state the pipeline keeps for one battle.
// It is reset when the battle starts.
type Transient struct {
	ShouldSelfSwitch  bool
	ProtectStreak     int // Consecutive successful protects
	HitsTakenThisTurn int
	ChoiceLock        string
	LastMove          string
	Fainted           bool

	// AI memory
	Ineffective map[string]bool
	Failures    map[string]int
}

func newTransient() Transient {
	return Transient{
		Ineffective: make(map[string]bool),
		Failures:    make(map[string]int),
	}
}

// Battler is one controllable side of a battle: a trainer, a wild
// encounter, an NPC or a raid boss.
type Battler struct {
	ID     int64
	Name   string
	Side   Side
	Party  []Combatant
	Active []int // Party indexes currently in play, one per slot

	CanSwitch   bool
	CanUseItems bool
	CanFlee     bool
	IsAI        bool
	Eliminated  bool

	transient []Transient
	order     int // Join order, used for tie-breaks and switch prompts
}

// NewBattler creates a battler with the first activeCount living party
// members in play. Negative ids are AI controlled.
func NewBattler(id int64, name string, party []Combatant, activeCount int) *Battler {
	b := &Battler{
		ID:          id,
		Name:        name,
		Party:       party,
		CanSwitch:   true,
		CanUseItems: id >= 0,
		IsAI:        id < 0,
	}
	for i, c := range party {
		if len(b.Active) == activeCount {
			break
		}
		if c.IsAlive() {
			b.Active = append(b.Active, i)
		}
	}
	// Parties without enough living members still fill their slots
	for i := range party {
		if len(b.Active) == activeCount {
			break
		}
		if !b.isActive(i) {
			b.Active = append(b.Active, i)
		}
	}
	b.resetTransient()
	return b
}

func (b *Battler) resetTransient() {
	b.transient = make([]Transient, len(b.Party))
	for i := range b.transient {
		b.transient[i] = newTransient()
	}
}

// ActiveCombatant returns the combatant in the given slot, or nil.
func (b *Battler) ActiveCombatant(slot int) Combatant {
	if slot < 0 || slot >= len(b.Active) {
		return nil
	}
	idx := b.Active[slot]
	if idx < 0 || idx >= len(b.Party) {
		return nil
	}
	return b.Party[idx]
}

// Transient returns the transient record of a party member.
func (b *Battler) Transient(partyIndex int) *Transient {
	if partyIndex < 0 || partyIndex >= len(b.transient) {
		return nil
	}
	return &b.transient[partyIndex]
}

// SlotOf returns the slot holding a party index, or -1.
func (b *Battler) SlotOf(partyIndex int) int {
	for slot, idx := range b.Active {
		if idx == partyIndex {
			return slot
		}
	}
	return -1
}

func (b *Battler) isActive(partyIndex int) bool {
	return b.SlotOf(partyIndex) >= 0
}

// HasUsable reports whether any party member can still fight.
func (b *Battler) HasUsable() bool {
	for _, c := range b.Party {
		if c.IsAlive() {
			return true
		}
	}
	return false
}

// Bench returns the party indexes of living members not in play.
func (b *Battler) Bench() []int {
	var bench []int
	for i, c := range b.Party {
		if c.IsAlive() && !b.isActive(i) {
			bench = append(bench, i)
		}
	}
	return bench
}

// CanSwitchTo reports whether partyIndex is a legal switch-in.
func (b *Battler) CanSwitchTo(partyIndex int) bool {
	if partyIndex < 0 || partyIndex >= len(b.Party) {
		return false
	}
	return b.Party[partyIndex].IsAlive() && !b.isActive(partyIndex)
}

// RecomputeEliminated refreshes Eliminated from the party's HP.
func (b *Battler) RecomputeEliminated() bool {
	b.Eliminated = !b.HasUsable()
	return b.Eliminated
}

// slotRef points at one active slot of one battler. The pipeline passes
// these down instead of looking combatants up again.
type slotRef struct {
	battler *Battler
	slot    int
}

func (r slotRef) combatant() Combatant {
	return r.battler.ActiveCombatant(r.slot)
}

func (r slotRef) transient() *Transient {
	if r.slot < 0 || r.slot >= len(r.battler.Active) {
		return nil
	}
	return r.battler.Transient(r.battler.Active[r.slot])
}

func (r slotRef) alive() bool {
	c := r.combatant()
	return c != nil && c.IsAlive()
}
