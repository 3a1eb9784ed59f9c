package shmup

import (
	"image/color"

	"chosenoffset.com/puffinarcade/internal/core/rng"
)

// EnemyType identifies one entry of the enemy catalog
type EnemyType int

const (
	Cod EnemyType = iota
	Biscuit
	Gravy
	Screech
	Jiggs
	Fogged
	enemyTypeCount
)

// EnemySpec is the static description of an enemy type
type EnemySpec struct {
	Key    string
	Name   string
	HP     int
	Points int
	Speed  float64
	Radius float64
	Color  color.RGBA
}

var catalog = [enemyTypeCount]EnemySpec{
	Cod:     {Key: "cod", Name: "Cod Chunk", HP: 1, Points: 110, Speed: 38, Radius: 34, Color: color.RGBA{0x9f, 0xc0, 0xcf, 0xff}},
	Biscuit: {Key: "biscuit", Name: "Tea Biscuit Bomber", HP: 2, Points: 160, Speed: 42, Radius: 36, Color: color.RGBA{0xd6, 0xba, 0x82, 0xff}},
	Gravy:   {Key: "gravy", Name: "Gravy Goblin", HP: 2, Points: 170, Speed: 35, Radius: 34, Color: color.RGBA{0x8e, 0x6e, 0x49, 0xff}},
	Screech: {Key: "screech", Name: "Screech Bottle", HP: 1, Points: 190, Speed: 66, Radius: 29, Color: color.RGBA{0x8f, 0xd8, 0xd9, 0xff}},
	Jiggs:   {Key: "jiggs", Name: "Jiggs Dinner Stack", HP: 5, Points: 260, Speed: 28, Radius: 44, Color: color.RGBA{0xf2, 0xcc, 0xb4, 0xff}},
	Fogged:  {Key: "fogged", Name: "Fogged Bologna", HP: 2, Points: 210, Speed: 46, Radius: 33, Color: color.RGBA{0xd6, 0xa5, 0xb1, 0xff}},
}

// Spec returns the catalog entry for t
func (t EnemyType) Spec() EnemySpec {
	if t < 0 || t >= enemyTypeCount {
		return catalog[Cod]
	}
	return catalog[t]
}

func (t EnemyType) String() string {
	if t < 0 || t >= enemyTypeCount {
		return "unknown"
	}
	return catalog[t].Key
}

// EnemyTypes lists every catalog entry in declaration order
func EnemyTypes() []EnemyType {
	out := make([]EnemyType, 0, enemyTypeCount)
	for t := EnemyType(0); t < enemyTypeCount; t++ {
		out = append(out, t)
	}
	return out
}

// unlockWave is the first wave a type may appear in
var unlockWave = [enemyTypeCount]int{
	Cod:     1,
	Biscuit: 2,
	Gravy:   2,
	Screech: 2,
	Fogged:  2,
	Jiggs:   3,
}

// Unlocked reports whether t can spawn in the given wave
func Unlocked(t EnemyType, wave int) bool {
	if t < 0 || t >= enemyTypeCount {
		return false
	}
	return wave >= unlockWave[t]
}

// Pool returns the random pool for a wave. Wave 1 only knows cod.
func Pool(wave int) []EnemyType {
	if wave <= 1 {
		return []EnemyType{Cod}
	}
	pool := []EnemyType{Cod, Biscuit, Gravy, Screech, Fogged}
	if Unlocked(Jiggs, wave) {
		pool = append(pool, Jiggs)
	}
	return pool
}

// ChooseEnemy picks the type for grid cell (col, row) of a wave. Two modulo
// rules force screech and jiggs into fixed cells so every wave has some
// pattern; the rest are drawn from the wave's pool.
func ChooseEnemy(wave, col, row int, r *rng.Roller) EnemyType {
	if wave <= 1 {
		return Cod
	}
	if (col+row+wave)%5 == 0 {
		return Screech
	}
	if Unlocked(Jiggs, wave) && (col+wave)%7 == 0 {
		return Jiggs
	}
	return rng.Pick(r, Pool(wave))
}
