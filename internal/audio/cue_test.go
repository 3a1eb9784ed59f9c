package audio

import (
	"reflect"
	"testing"
)

func TestCueNames(t *testing.T) {
	want := map[Cue]string{
		CueShoot:        "shoot",
		CueEnemyHit:     "enemy-hit",
		CueExplosionBig: "explosion[big]",
		CueBossWarning:  "boss-warning",
		CueGameOver:     "gameover",
	}
	for c, name := range want {
		if c.String() != name {
			t.Errorf("Cue %d name = %q, want %q", c, c.String(), name)
		}
	}
	if Cue(-1).String() != "unknown" || cueCount.String() != "unknown" {
		t.Error("Expected out-of-range cues to be unknown")
	}
	if Explosion(true) != CueExplosionBig || Explosion(false) != CueExplosion {
		t.Error("Explosion size mapping is wrong")
	}
}

func TestAllCues(t *testing.T) {
	all := AllCues()
	if len(all) != int(cueCount) || all[0] != CueShoot || all[len(all)-1] != CueGameOver {
		t.Errorf("Unexpected cue list %v", all)
	}
	for _, c := range all {
		if c.String() == "unknown" {
			t.Errorf("Cue %d has no name", c)
		}
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Play(CueShoot)
	r.Play(CueShoot)
	r.Play(CueUI)
	if r.Count(CueShoot) != 2 || r.Count(CueUI) != 1 {
		t.Errorf("Unexpected counts: %v", r.Cues())
	}
	if want := []Cue{CueShoot, CueShoot, CueUI}; !reflect.DeepEqual(r.Cues(), want) {
		t.Errorf("Expected %v, got %v", want, r.Cues())
	}
	r.Reset()
	if len(r.Cues()) != 0 {
		t.Error("Expected empty recorder after reset")
	}
}
