package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Slepzs/oizys-keres/internal/core"
)

func TestDefaultContentIsValid(t *testing.T) {
	cat := Default()
	if err := cat.Validate(); err != nil {
		t.Fatalf("embedded content invalid: %v", err)
	}
	if len(cat.Skills) == 0 || len(cat.Enemies) == 0 || len(cat.Zones) == 0 {
		t.Fatal("embedded content is missing tables")
	}
}

func TestLookups(t *testing.T) {
	cat := Default()

	if s, ok := cat.Skill("woodcutting"); !ok || s.Kind != KindGathering {
		t.Errorf("Skill(woodcutting) = %+v, %v", s, ok)
	}
	if _, ok := cat.Skill("basket_weaving"); ok {
		t.Error("unknown skill reported as found")
	}
	if _, ok := cat.Enemy(""); ok {
		t.Error("empty enemy id reported as found")
	}
	if z, ok := cat.Zone("farmland"); !ok || len(z.Enemies) == 0 {
		t.Errorf("Zone(farmland) = %+v, %v", z, ok)
	}

	sk, _ := cat.Skill("woodcutting")
	if v, ok := sk.Variant("oak"); !ok || v.RequiredLevel != 15 {
		t.Errorf("Variant(oak) = %+v, %v", v, ok)
	}
}

func TestLookupBeforeIndex(t *testing.T) {
	var cat Catalog
	if _, ok := cat.Item("anything"); ok {
		t.Error("lookup on an unindexed catalog should miss")
	}
}

func TestValidateReportsBrokenReferences(t *testing.T) {
	cat := &Catalog{
		Enemies: []EnemyDef{{ID: "slime", HP: 3, AttackIntervalMs: 1000, Drops: []DropEntry{{ItemID: "goo", MinQty: 1, MaxQty: 1}}}},
		Zones:   []ZoneDef{{ID: "swamp", Enemies: []string{"slime", "frog"}}},
		Recipes: []RecipeDef{{ID: "r", SkillID: "none", TicksPerCraft: 1, Output: Ingredient{Item: "x", Quantity: 1}}},
	}
	cat.Index()
	if err := cat.Validate(); err == nil {
		t.Fatal("expected validation errors")
	}
}

func TestMultiplierConversion(t *testing.T) {
	add := MultiplierDef{Target: "smithing", Type: "additive", Value: 0.05}
	m := add.Multiplier("infra:forge", "infrastructure", 3)
	if m.Type != core.Additive || m.Value < 0.1499 || m.Value > 0.1501 {
		t.Errorf("additive scaled = %+v, want value 0.15", m)
	}

	mul := MultiplierDef{Target: "xp", Type: "multiplicative", Value: 2}
	if m := mul.Multiplier("id", "src", 3); m.Value != 8 {
		t.Errorf("multiplicative compounding = %v, want 8", m.Value)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	data := []byte(`
resources:
  - { id: stone, name: Stone }
skills:
  - { id: quarrying, name: Quarrying, kind: gathering, resource: stone, ticks_per_action: 10, xp_per_action: 5, resource_per_action: 1 }
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if _, ok := cat.Skill("quarrying"); !ok {
		t.Error("custom skill not loaded")
	}
}

func TestLoadInvalidCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	data := []byte("zones:\n  - { id: void, enemies: [ghost] }\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected validation error for unknown zone enemy")
	}
}
