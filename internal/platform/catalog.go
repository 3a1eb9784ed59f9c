package platform

// Meters holds the three rig meters. The same shape is used for deltas.
type Meters struct {
	Production float64
	Safety     float64
	Morale     float64
}

const (
	meterMin = 0
	meterMax = 100
)

func clampMeter(v float64) float64 {
	if v < meterMin {
		return meterMin
	}
	if v > meterMax {
		return meterMax
	}
	return v
}

// Add applies d and clamps every meter to [0, 100]
func (m Meters) Add(d Meters) Meters {
	return Meters{
		Production: clampMeter(m.Production + d.Production),
		Safety:     clampMeter(m.Safety + d.Safety),
		Morale:     clampMeter(m.Morale + d.Morale),
	}
}

// Scale multiplies every component by f
func (m Meters) Scale(f float64) Meters {
	return Meters{Production: m.Production * f, Safety: m.Safety * f, Morale: m.Morale * f}
}

// IsZero reports whether every component is zero
func (m Meters) IsZero() bool {
	return m == Meters{}
}

// Action is something the crew can be told to do
type Action int

const (
	Drill Action = iota
	Inspect
	TeaBreak
	Repair
	Foghorn
	Shoo
	actionCount

	// NoAction marks an event nothing can clear
	NoAction Action = -1
)

// ActionSpec is the fixed description of an action
type ActionSpec struct {
	Key      string
	Label    string
	Hotkey   rune
	Delta    Meters
	Cooldown float64
}

var actions = [actionCount]ActionSpec{
	Drill:    {Key: "drill", Label: "Drill Harder", Hotkey: '1', Delta: Meters{Production: 12, Safety: -4, Morale: -2}, Cooldown: 3},
	Inspect:  {Key: "inspect", Label: "Safety Inspection", Hotkey: '2', Delta: Meters{Production: -3, Safety: 12}, Cooldown: 4},
	TeaBreak: {Key: "tea", Label: "Tea Break", Hotkey: '3', Delta: Meters{Production: -5, Morale: 14}, Cooldown: 6},
	Repair:   {Key: "repair", Label: "Repair Crew", Hotkey: '4', Delta: Meters{Production: 6, Safety: 3}, Cooldown: 8},
	Foghorn:  {Key: "foghorn", Label: "Sound Foghorn", Hotkey: '5', Delta: Meters{Safety: 4, Morale: -2}, Cooldown: 5},
	Shoo:     {Key: "shoo", Label: "Shoo Puffins", Hotkey: '6', Delta: Meters{Morale: 3}, Cooldown: 5},
}

// Valid reports whether a is a known action
func (a Action) Valid() bool {
	return a >= 0 && a < actionCount
}

// Spec returns the action's table entry. Invalid actions return the zero spec.
func (a Action) Spec() ActionSpec {
	if !a.Valid() {
		return ActionSpec{}
	}
	return actions[a]
}

func (a Action) String() string {
	if !a.Valid() {
		return "none"
	}
	return actions[a].Key
}

// Actions lists every action in table order
func Actions() []Action {
	out := make([]Action, 0, actionCount)
	for a := Action(0); a < actionCount; a++ {
		out = append(out, a)
	}
	return out
}

// ParseAction looks an action up by its key
func ParseAction(key string) (Action, bool) {
	for a := Action(0); a < actionCount; a++ {
		if actions[a].Key == key {
			return a, true
		}
	}
	return NoAction, false
}

// ActionForHotkey maps '1'..'6' to an action
func ActionForHotkey(r rune) (Action, bool) {
	for a := Action(0); a < actionCount; a++ {
		if actions[a].Hotkey == r {
			return a, true
		}
	}
	return NoAction, false
}

// EventKind identifies a timed hazard (or windfall)
type EventKind int

const (
	FogBank EventKind = iota
	Storm
	PuffinInvasion
	PumpFailure
	Iceberg
	Payday
	SupplyDelay
	eventCount
)

// EventSpec is the fixed description of an event
type EventSpec struct {
	Key       string
	Title     string
	Text      string
	Immediate Meters
	Ongoing   Meters // Per second while active
	Duration  float64
	Clear     Action
	Bonus     int
	Shake     bool
	Alarm     bool
}

var events = [eventCount]EventSpec{
	FogBank: {
		Key: "fog", Title: "Fog Bank",
		Text:      "Fog rolls in over the platform. Sound the foghorn!",
		Immediate: Meters{Safety: -5}, Ongoing: Meters{Safety: -1.5},
		Duration: 12, Clear: Foghorn, Bonus: 60,
	},
	Storm: {
		Key: "storm", Title: "North Atlantic Storm",
		Text:      "A storm slams the rig. Inspect the structure!",
		Immediate: Meters{Production: -6, Safety: -6}, Ongoing: Meters{Safety: -1},
		Duration: 10, Clear: Inspect, Bonus: 80, Shake: true, Alarm: true,
	},
	PuffinInvasion: {
		Key: "puffins", Title: "Puffin Invasion",
		Text:      "Puffins have taken over the helideck. Shoo them off!",
		Immediate: Meters{Production: -6}, Ongoing: Meters{Production: -1.2},
		Duration: 9, Clear: Shoo, Bonus: 70,
	},
	PumpFailure: {
		Key: "pump", Title: "Pump Failure",
		Text:      "The main pump is down. Get a crew on repairs!",
		Immediate: Meters{Production: -12}, Ongoing: Meters{Production: -2},
		Duration: 8, Clear: Repair, Bonus: 90, Shake: true, Alarm: true,
	},
	Iceberg: {
		Key: "iceberg", Title: "Iceberg Sighted",
		Text:      "An iceberg is drifting close. Inspect the hull!",
		Immediate: Meters{Safety: -10}, Ongoing: Meters{Safety: -1.2},
		Duration: 9, Clear: Inspect, Bonus: 100, Shake: true, Alarm: true,
	},
	Payday: {
		Key: "payday", Title: "Payday",
		Text:      "Payday! The crew is in good spirits.",
		Immediate: Meters{Morale: 10},
		Duration:  4, Clear: NoAction,
	},
	SupplyDelay: {
		Key: "supply", Title: "Supply Delay",
		Text:      "The supply boat is late. Morale is slipping.",
		Immediate: Meters{Morale: -8}, Ongoing: Meters{Morale: -0.8},
		Duration: 10, Clear: NoAction,
	},
}

// Valid reports whether k is a known event
func (k EventKind) Valid() bool {
	return k >= 0 && k < eventCount
}

// Spec returns the event's table entry
func (k EventKind) Spec() EventSpec {
	if !k.Valid() {
		return EventSpec{Clear: NoAction}
	}
	return events[k]
}

func (k EventKind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return events[k].Key
}

// Clearable reports whether some action ends the event early
func (k EventKind) Clearable() bool {
	return k.Spec().Clear.Valid()
}

// EventKinds lists every event in table order
func EventKinds() []EventKind {
	out := make([]EventKind, 0, eventCount)
	for k := EventKind(0); k < eventCount; k++ {
		out = append(out, k)
	}
	return out
}
