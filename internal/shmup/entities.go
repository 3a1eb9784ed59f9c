package shmup

import "image/color"

// Player is the deck gun at the bottom of the playfield
type Player struct {
	X, Y          float64
	W, H          float64
	BaseSpeed     float64
	Lives         int
	FireCooldown  float64
	SlowTimer     float64
	ReversedTimer float64
	AutoFireTimer float64
}

// Slowed reports whether a gravy hit is still slowing the player
func (p Player) Slowed() bool { return p.SlowTimer > 0 }

// Reversed reports whether the boss pulse has inverted the controls
func (p Player) Reversed() bool { return p.ReversedTimer > 0 }

// Enemy is one member of a wave grid
type Enemy struct {
	Type      EnemyType
	X, Y      float64
	OriginX   float64
	HP        int
	Points    int
	Speed     float64
	Radius    float64
	Color     color.RGBA
	Phase     float64
	FireTimer float64
	Dead      bool
	Alpha     float64
}

// Boss appears alone on every boss wave
type Boss struct {
	X, Y              float64
	W, H              float64
	HP, MaxHP         int
	Dir               float64
	ShootTimer        float64
	ReversePulseTimer float64
	Phase             float64
}

// ProjectileKind changes what happens on a hit
type ProjectileKind int

const (
	KindShot  ProjectileKind = iota // Player shot
	KindCrumb                       // Biscuit spray
	KindGravy                       // Slows the player
	KindNote                        // Boss volley
)

func (k ProjectileKind) String() string {
	switch k {
	case KindShot:
		return "shot"
	case KindCrumb:
		return "crumb"
	case KindGravy:
		return "gravy"
	case KindNote:
		return "note"
	}
	return "unknown"
}

// MaxTrail is the number of trail points a projectile keeps
const MaxTrail = 5

// TrailPoint is a fading afterimage
type TrailPoint struct {
	X, Y float64
	Life float64
}

// Trail is a fixed-size ring of recent positions, oldest first
type Trail struct {
	points [MaxTrail]TrailPoint
	n      int
}

// Push appends a point, dropping the oldest when full
func (t *Trail) Push(p TrailPoint) {
	if t.n == MaxTrail {
		copy(t.points[:], t.points[1:])
		t.n--
	}
	t.points[t.n] = p
	t.n++
}

// Age ages every point and drops the expired ones
func (t *Trail) Age(dt float64) {
	kept := 0
	for i := 0; i < t.n; i++ {
		p := t.points[i]
		p.Life -= dt
		if p.Life > 0 {
			t.points[kept] = p
			kept++
		}
	}
	t.n = kept
}

// Len returns the number of live points
func (t *Trail) Len() int { return t.n }

// Points returns the live points, oldest first
func (t *Trail) Points() []TrailPoint {
	return t.points[:t.n]
}

// Projectile covers both player shots and enemy fire
type Projectile struct {
	X, Y   float64
	VX, VY float64
	R      float64
	Life   float64
	Kind   ProjectileKind
	Trail  Trail
}

// Particle is cosmetic debris
type Particle struct {
	X, Y   float64
	VX, VY float64
	Age    float64
	Life   float64
	R      float64
	Color  color.RGBA
}

// PowerupKind identifies a pickup
type PowerupKind int

const (
	// PowerupIntegrity restores one life
	PowerupIntegrity PowerupKind = iota
)

// Powerup falls from a destroyed enemy
type Powerup struct {
	Kind PowerupKind
	X, Y float64
	R    float64
	VY   float64
	Life float64
}
