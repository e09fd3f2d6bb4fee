package session

// PowerUpKind identifies a power-up.
type PowerUpKind int

const (
	PowerUpExtraLife PowerUpKind = iota // +1 life up to the cap
	PowerUpSlowTime                     // stretches reveal and countdown timing
	PowerUpReveal                       // briefly shows hidden content
	PowerUpKindCount                    // Sentinel for counting kinds
)

// PowerUpKinds returns every kind in display order.
func PowerUpKinds() []PowerUpKind {
	return []PowerUpKind{PowerUpExtraLife, PowerUpSlowTime, PowerUpReveal}
}

// String returns the persisted name of the kind.
func (k PowerUpKind) String() string {
	switch k {
	case PowerUpExtraLife:
		return "extra-life"
	case PowerUpSlowTime:
		return "slow-time"
	case PowerUpReveal:
		return "reveal"
	default:
		return "unknown"
	}
}

// ParsePowerUpKind maps a name back to its kind.
func ParsePowerUpKind(s string) (PowerUpKind, bool) {
	for _, k := range PowerUpKinds() {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

func (k PowerUpKind) valid() bool {
	return k >= 0 && k < PowerUpKindCount
}

// PowerUpSlot is the inventory entry of one kind.
type PowerUpSlot struct {
	Count     int
	ReadyAtMs int64 // logical time the cooldown ends
}

// Inventory maps each kind to its slot. It is an array so State copies stay independent.
type Inventory [PowerUpKindCount]PowerUpSlot

func newInventory(r Rules) Inventory {
	var inv Inventory
	for k := range inv {
		inv[k].Count = r.PowerUps[k].Start
	}
	return inv
}

// Cooldown returns the remaining cooldown of kind at logical time now.
func (inv Inventory) Cooldown(kind PowerUpKind, now int64) int64 {
	if !kind.valid() {
		return 0
	}
	if rem := inv[kind].ReadyAtMs - now; rem > 0 {
		return rem
	}
	return 0
}

// Usable reports whether kind has stock and no running cooldown.
func (inv Inventory) Usable(kind PowerUpKind, now int64) bool {
	return kind.valid() && inv[kind].Count > 0 && inv.Cooldown(kind, now) == 0
}
