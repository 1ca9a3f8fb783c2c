package ledger

import (
	"testing"

	"github.com/Slepzs/oizys-keres/internal/config"
)

var testCurve = config.CurveConfig{Base: 100, Growth: 1.1, MaxLevel: 10}

func TestXPForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{1, 100},
		{2, 110},
		{3, 121},
		{4, 133}, // floor(133.1)
		{0, 100},
	}
	for _, tt := range tests {
		if got := XPForLevel(testCurve, tt.level); got != tt.want {
			t.Errorf("XPForLevel(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestAddXPExactLevel(t *testing.T) {
	r := AddXP(testCurve, 1, 0, XPForLevel(testCurve, 1))
	if r.NewLevel != 2 || r.NewXP != 0 || !r.LeveledUp || r.LevelsGained != 1 {
		t.Errorf("got %+v, want level 2, xp 0, leveled up once", r)
	}
}

func TestAddXP(t *testing.T) {
	tests := []struct {
		name   string
		level  int
		xp     int
		gained int
		want   Result
	}{
		{
			name: "partial", level: 1, xp: 0, gained: 50,
			want: Result{NewXP: 50, NewLevel: 1},
		},
		{
			name: "carry existing xp", level: 1, xp: 60, gained: 50,
			want: Result{NewXP: 10, NewLevel: 2, LeveledUp: true, LevelsGained: 1},
		},
		{
			name: "multi level", level: 1, xp: 0, gained: 100 + 110 + 121 + 5,
			want: Result{NewXP: 5, NewLevel: 4, LeveledUp: true, LevelsGained: 3},
		},
		{
			name: "clamp at max", level: 9, xp: 0, gained: 1_000_000,
			want: Result{NewXP: 0, NewLevel: 10, LeveledUp: true, LevelsGained: 1},
		},
		{
			name: "already max", level: 10, xp: 0, gained: 500,
			want: Result{NewXP: 0, NewLevel: 10},
		},
		{
			name: "negative gain ignored", level: 3, xp: 7, gained: -40,
			want: Result{NewXP: 7, NewLevel: 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AddXP(testCurve, tt.level, tt.xp, tt.gained); got != tt.want {
				t.Errorf("AddXP = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAddXPChunkInvariance(t *testing.T) {
	one := AddXP(testCurve, 1, 0, 900)

	level, xp := 1, 0
	for i := 0; i < 9; i++ {
		r := AddXP(testCurve, level, xp, 100)
		level, xp = r.NewLevel, r.NewXP
	}
	if level != one.NewLevel || xp != one.NewXP {
		t.Errorf("chunked (%d, %d) != single (%d, %d)", level, xp, one.NewLevel, one.NewXP)
	}
}

func TestProgress(t *testing.T) {
	if got := Progress(testCurve, 1, 50); got != 0.5 {
		t.Errorf("Progress = %v, want 0.5", got)
	}
	if got := Progress(testCurve, 10, 0); got != 1 {
		t.Errorf("Progress at max = %v, want 1", got)
	}
}

func TestScaling(t *testing.T) {
	cfg := config.SkillsConfig{SpeedPerLevel: 0.01, EfficiencyPerLevel: 0.02}
	if got := SpeedMultiplier(cfg, 1); got != 1 {
		t.Errorf("SpeedMultiplier(1) = %v, want 1", got)
	}
	if got := EfficiencyMultiplier(cfg, 11); got != 1.2 {
		t.Errorf("EfficiencyMultiplier(11) = %v, want 1.2", got)
	}
}

func TestPlayerShare(t *testing.T) {
	cfg := config.XPConfig{PlayerShare: 0.1}
	if got := PlayerShare(cfg, 25); got != 2 {
		t.Errorf("PlayerShare(25) = %d, want 2", got)
	}
}
