package scenario

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/annel0/combo-targeting/internal/combat"
	"github.com/annel0/combo-targeting/internal/config"
	"github.com/annel0/combo-targeting/internal/targeting"
	"github.com/annel0/combo-targeting/internal/world/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dungeonYAML = `
name: dungeon-pull
entities:
  - {id: 1, kind: player, name: Self, job: 22, position: {x: 10, z: -5}, hitbox_radius: 0.5, hp: 90, max_hp: 100, target: 10}
  - {id: 2, kind: player, name: Tank, job: 21, position: {x: 10, z: 2}, hitbox_radius: 0.5, hp: 100, max_hp: 100}
  - {id: 3, kind: battle_npc, subkind: npc_party_member, name: Trust, rotation_deg: 90, hp: 40, max_hp: 100, raw_distance: 12}
  - id: 10
    kind: battle_npc
    subkind: enemy
    template_id: 541
    name: Boss
    position: {x: 10}
    hitbox_radius: 1.5
    hp: 500
    max_hp: 1000
    casting: true
    interruptible: true
    target: 2
  - {id: 20, kind: event_npc, name: Ghost}
slots:
  self: 1
  target: 10
  focus_target: 20
pronouns:
  last_enemy: 10
  p2: 2
  p3: 3
ui_hover: 3
despawned: [20]
`

func buildFixture(t *testing.T) *Fixture {
	t.Helper()
	sc, err := Parse([]byte(dungeonYAML))
	require.NoError(t, err)
	f, err := sc.Build()
	require.NoError(t, err)
	return f
}

func TestBuildPopulatesWorld(t *testing.T) {
	f := buildFixture(t)

	assert.Equal(t, "dungeon-pull", f.Name)
	assert.NotEmpty(t, f.RunID.String())
	assert.Equal(t, 4, f.World.Count(), "Исчезнувшая сущность удалена")

	self := f.World.LocalActor()
	require.NotNil(t, self)
	assert.Equal(t, entity.ObjectID(10), self.TargetObjectID)

	boss, ok := f.World.LookupByID(10)
	require.True(t, ok)
	assert.Equal(t, entity.SubKindEnemy, boss.SubKind)
	assert.InDelta(t, 5.0, boss.RawDistance, 1e-9, "Дистанция посчитана от персонажа")

	tank, _ := f.World.LookupByID(2)
	assert.Equal(t, entity.InvalidObjectID, tank.TargetObjectID, "Без цели - сентинел")

	trust, _ := f.World.LookupByID(3)
	assert.Equal(t, 12.0, trust.RawDistance, "Явно заданная дистанция")
	assert.InDelta(t, math.Pi/2, trust.Rotation, 1e-12, "rotation_deg переводится в радианы")
	assert.Equal(t, uint8(21), tank.ClassJob)

	assert.Nil(t, f.World.FocusTarget(), "Слот ссылается на исчезнувшую сущность")
}

func TestFixtureResolver(t *testing.T) {
	f := buildFixture(t)
	r := f.NewResolver()

	cases := map[targeting.Selector]entity.ObjectID{
		targeting.PrimaryTarget:     10,
		targeting.SelfActor:         1,
		targeting.TargetOfTarget:    2,
		targeting.UIMouseoverTarget: 3,
		targeting.LastEnemy:         10,
		targeting.PartySlot2:        2,
		targeting.PartySlot3:        3,
	}
	for sel, want := range cases {
		e, ok := r.Resolve(sel)
		require.True(t, ok, sel.String())
		assert.Equal(t, want, e.ID, sel.String())
	}

	for _, sel := range []targeting.Selector{targeting.SoftTarget, targeting.FocusTarget, targeting.LastAttacker, targeting.PartySlot4} {
		_, ok := r.Resolve(sel)
		assert.False(t, ok, sel.String())
	}

	assert.Equal(t, 3, r.PartyIndex(3))
	assert.Equal(t, 1, r.PartyIndex(1))
}

func TestBuildRejectsUnknownReferences(t *testing.T) {
	cases := map[string]string{
		"слот":        "entities: [{id: 1, kind: player}]\nslots: {self: 1, target: 99}",
		"местоимение": "entities: [{id: 1, kind: player}]\npronouns: {p4: 7}",
		"наведение":   "entities: [{id: 1, kind: player}]\nui_hover: 5",
		"despawned":   "entities: [{id: 1, kind: player}]\ndespawned: [2]",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			sc, err := Parse([]byte(doc))
			require.NoError(t, err)
			_, err = sc.Build()
			assert.ErrorIs(t, err, ErrUnknownEntity)
		})
	}
}

func TestBuildRejectsInvalidEntities(t *testing.T) {
	cases := map[string]string{
		"тип":            "entities: [{id: 1, kind: dragon}]",
		"подтип":         "entities: [{id: 1, kind: battle_npc, subkind: boss}]",
		"повтор id":      "entities: [{id: 1, kind: player}, {id: 1, kind: player}]",
		"нулевой id":     "entities: [{id: 0, kind: player}]",
		"селектор":       "entities: [{id: 1, kind: player}]\npronouns: {p9: 1}",
		"не местоимение": "entities: [{id: 1, kind: player}]\npronouns: {focus_target: 1}",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			sc, err := Parse([]byte(doc))
			require.NoError(t, err)
			_, err = sc.Build()
			assert.Error(t, err)
			assert.NotErrorIs(t, err, ErrUnknownEntity)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(dungeonYAML), 0o644))

	sc, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, sc.Entities, 5)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Parse([]byte("entities: [oops"))
	assert.Error(t, err)
}

func TestEvaluateReports(t *testing.T) {
	f := buildFixture(t)
	cfg := config.Default()
	cfg.Positionals.Templates[541] = config.TemplateInfo{}
	c := combat.NewClassifier(f.NewResolver(), cfg, f.World)
	ctx := context.Background()

	reports := EvaluateAll(ctx, c)
	require.Len(t, reports, len(targeting.AllSelectors()))

	target := EvaluateSelector(ctx, c, targeting.PrimaryTarget)
	assert.True(t, target.Found)
	assert.True(t, target.Hostile)
	assert.InDelta(t, 3.0, target.Distance, 1e-9)
	assert.Equal(t, 50.0, target.HealthPct)
	assert.Equal(t, "rear", target.FacingArc)
	require.NotNil(t, target.FacingDegree)
	assert.InDelta(t, 180.0, *target.FacingDegree, 1e-9)

	tank := EvaluateSelector(ctx, c, targeting.PartySlot2)
	assert.True(t, tank.Friendly)
	assert.Equal(t, 2, tank.PartyIndex)
	assert.Equal(t, config.RoleTank, tank.Role)
	assert.Equal(t, config.RoleUnknown, target.Role, "У NPC нет роли")
	assert.Equal(t, "none", tank.FacingArc)
	assert.Nil(t, tank.FacingDegree)

	focus := EvaluateSelector(ctx, c, targeting.FocusTarget)
	assert.False(t, focus.Found)
	assert.Nil(t, focus.Entity)

	cr := EvaluateCombat(ctx, c)
	require.NotNil(t, cr.Target)
	assert.Equal(t, entity.ObjectID(10), cr.Target.ID)
	assert.True(t, cr.InMeleeRange)
	assert.True(t, cr.CanInterrupt)
	assert.True(t, cr.NeedPositional)
	assert.True(t, cr.OnRear)
	assert.False(t, cr.OnFlank)
	assert.Equal(t, 90.0, cr.PlayerHealth)
	assert.Equal(t, config.RoleMelee, cr.PlayerRole)
	assert.True(t, cr.BattleTarget)
	assert.Equal(t, 50.0, cr.TargetHealth)
	assert.Equal(t, uint32(500), cr.EnemyHP)
	assert.Equal(t, uint32(1000), cr.EnemyMaxHP)
	assert.Equal(t, []string{"rear"}, cr.FacingArcs)
	assert.Equal(t, 1, cr.NearbyHostiles)
}

func TestExampleScenario(t *testing.T) {
	sc, err := Load(filepath.Join("..", "..", "examples", "scenarios", "dungeon.yaml"))
	require.NoError(t, err)
	f, err := sc.Build()
	require.NoError(t, err)

	c := combat.NewClassifier(f.NewResolver(), config.Default(), f.World)
	cr := EvaluateCombat(context.Background(), c)
	assert.True(t, cr.InMeleeRange, "4 - 3.5 - 0.5 = 0")
	assert.True(t, cr.OnRear)
	assert.Equal(t, config.RoleMelee, cr.PlayerRole)
	assert.Equal(t, 1, cr.NearbyHostiles, "Add дальше 30 ялмов")
	assert.Equal(t, 3, c.Resolver().PartyIndex(3))

	heal := c.ResolveHealTarget(true, false)
	require.NotNil(t, heal)
	assert.Equal(t, "Alphinaud", heal.Name)
}
