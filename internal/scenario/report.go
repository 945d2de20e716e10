package scenario

import (
	"context"
	"math"

	"github.com/annel0/combo-targeting/internal/combat"
	"github.com/annel0/combo-targeting/internal/config"
	"github.com/annel0/combo-targeting/internal/observability"
	"github.com/annel0/combo-targeting/internal/targeting"
	"github.com/annel0/combo-targeting/internal/world/entity"
	"go.opentelemetry.io/otel/attribute"
)

// EntityView - сущность в отчёте
type EntityView struct {
	ID     entity.ObjectID `json:"id"`
	Kind   string          `json:"kind"`
	Name   string          `json:"name"`
	HP     uint32          `json:"hp"`
	MaxHP  uint32          `json:"max_hp"`
	Raw    float64         `json:"raw_distance"`
	Target entity.ObjectID `json:"target,omitempty"`
}

// NewEntityView готовит сущность к выводу; nil остаётся nil
func NewEntityView(e *entity.Entity) *EntityView {
	if e == nil {
		return nil
	}
	v := &EntityView{
		ID:    e.ID,
		Kind:  e.Kind.String(),
		Name:  e.Name,
		HP:    e.CurrentHP,
		MaxHP: e.MaxHP,
		Raw:   e.RawDistance,
	}
	if e.HasTarget() {
		v.Target = e.TargetObjectID
	}
	return v
}

// SelectorReport - результат разрешения одного селектора и производные предикаты
type SelectorReport struct {
	Selector     string      `json:"selector"`
	Found        bool        `json:"found"`
	Entity       *EntityView `json:"entity,omitempty"`
	Distance     float64     `json:"distance"`
	Friendly     bool        `json:"friendly"`
	Hostile      bool        `json:"hostile"`
	HealthPct    float64     `json:"health_pct"`
	Role         config.Role `json:"role,omitempty"`
	Targetable   bool        `json:"targetable"`
	PartyIndex   int         `json:"party_index"`
	FacingArc    string      `json:"facing_arc"`
	FacingDegree *float64    `json:"facing_deg,omitempty"`
}

// CombatReport - предикаты по основной цели
type CombatReport struct {
	Target         *EntityView `json:"target,omitempty"`
	BattleTarget   bool        `json:"battle_target"`
	TargetHealth   float64     `json:"target_health_pct"`
	EnemyHP        uint32      `json:"enemy_hp"`
	EnemyMaxHP     uint32      `json:"enemy_max_hp"`
	Distance       float64     `json:"distance"`
	InMeleeRange   bool        `json:"in_melee_range"`
	CanInterrupt   bool        `json:"can_interrupt"`
	NeedPositional bool        `json:"needs_positional"`
	FacingArc      string      `json:"facing_arc"`
	FacingArcs     []string    `json:"facing_arcs"`
	OnRear         bool        `json:"on_rear"`
	OnFlank        bool        `json:"on_flank"`
	PlayerHealth   float64     `json:"player_health_pct"`
	PlayerRole     config.Role `json:"player_role,omitempty"`
	NearbyHostiles int         `json:"nearby_hostiles"`
}

// EvaluateSelector разрешает селектор и считает для результата производные предикаты.
// Сектор считается относительно найденной сущности, а не основной цели.
func EvaluateSelector(ctx context.Context, c *combat.Classifier, sel targeting.Selector) SelectorReport {
	_, span := observability.Tracer().Start(ctx, "scenario.EvaluateSelector")
	defer span.End()

	r := SelectorReport{Selector: sel.String(), FacingArc: "none"}
	e, ok := c.Resolver().Resolve(sel)
	span.SetAttributes(attribute.String("selector", sel.String()), attribute.Bool("found", ok))
	if !ok {
		return r
	}

	r.Found = true
	r.Entity = NewEntityView(e)
	r.Distance = c.DistanceTo(e)
	r.Friendly = c.IsFriendly(e, false)
	r.Hostile = c.IsHostileBattleUnit(e)
	r.HealthPct = c.HealthPercent(e)
	r.Role = c.RoleOf(e)
	r.Targetable = c.IsInTargetableRange(e)
	r.PartyIndex = c.Resolver().PartyIndex(e.ID)

	if deg := c.FacingDegreesTo(e); !math.IsNaN(deg) {
		r.FacingDegree = &deg
		r.FacingArc = c.FacingArcTo(e).String()
	}
	return r
}

// EvaluateAll строит отчёт по всем селекторам в порядке их объявления
func EvaluateAll(ctx context.Context, c *combat.Classifier) []SelectorReport {
	ctx, span := observability.Tracer().Start(ctx, "scenario.EvaluateAll")
	defer span.End()

	all := targeting.AllSelectors()
	reports := make([]SelectorReport, 0, len(all))
	for _, sel := range all {
		reports = append(reports, EvaluateSelector(ctx, c, sel))
	}
	return reports
}

// EvaluateCombat строит отчёт по основной цели
func EvaluateCombat(ctx context.Context, c *combat.Classifier) CombatReport {
	_, span := observability.Tracer().Start(ctx, "scenario.EvaluateCombat")
	defer span.End()

	arcs := c.FacingArcs()
	arcNames := make([]string, 0, len(arcs))
	for _, a := range arcs {
		arcNames = append(arcNames, a.String())
	}

	return CombatReport{
		Target:         NewEntityView(c.CurrentTarget()),
		BattleTarget:   c.HasBattleTarget(),
		TargetHealth:   c.TargetHealthPercent(),
		EnemyHP:        c.EnemyCurrentHP(),
		EnemyMaxHP:     c.EnemyMaxHP(),
		Distance:       c.TargetDistance(),
		InMeleeRange:   c.InMeleeRange(),
		CanInterrupt:   c.CanInterruptEnemy(),
		NeedPositional: c.NeedsPositionalCheck(),
		FacingArc:      c.FacingArc().String(),
		FacingArcs:     arcNames,
		OnRear:         c.OnTargetsRear(),
		OnFlank:        c.OnTargetsFlank(),
		PlayerHealth:   c.PlayerHealthPercent(),
		PlayerRole:     c.PlayerRole(),
		NearbyHostiles: len(c.NearbyHostiles(combat.TargetableRange)),
	}
}
