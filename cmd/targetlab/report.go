package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/annel0/combo-targeting/internal/combat"
	"github.com/annel0/combo-targeting/internal/config"
	"github.com/annel0/combo-targeting/internal/scenario"
	"github.com/annel0/combo-targeting/internal/targeting"
)

// printReport печатает разрешение селекторов и состояние боя по сценарию
func printReport(w io.Writer, fixture *scenario.Fixture, cfg *config.Config, only string) error {
	classifier := combat.NewClassifier(fixture.NewResolver(), cfg, fixture.World)
	ctx := context.Background()

	var reports []scenario.SelectorReport
	if only != "" {
		sel, err := targeting.ParseSelector(only)
		if err != nil {
			return err
		}
		reports = []scenario.SelectorReport{scenario.EvaluateSelector(ctx, classifier, sel)}
	} else {
		reports = scenario.EvaluateAll(ctx, classifier)
	}

	fmt.Fprintf(w, "Сценарий %q (run %s)\n\n", fixture.Name, fixture.RunID)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SELECTOR\tENTITY\tROLE\tDIST\tFRIENDLY\tHOSTILE\tHP%\tPARTY\tARC")
	for _, r := range reports {
		if !r.Found {
			fmt.Fprintf(tw, "%s\t-\t\t\t\t\t\t\t\n", r.Selector)
			continue
		}
		role := string(r.Role)
		if role == "" {
			role = "-"
		}
		fmt.Fprintf(tw, "%s\t%s#%d(%s)\t%s\t%.2f\t%v\t%v\t%.0f\t%d\t%s\n",
			r.Selector, r.Entity.Kind, r.Entity.ID, r.Entity.Name, role,
			r.Distance, r.Friendly, r.Hostile, r.HealthPct, r.PartyIndex, r.FacingArc)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	cr := scenario.EvaluateCombat(ctx, classifier)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "melee=%v interrupt=%v positional=%v arc=%s rear=%v flank=%v\n",
		cr.InMeleeRange, cr.CanInterrupt, cr.NeedPositional, cr.FacingArc, cr.OnRear, cr.OnFlank)
	fmt.Fprintf(w, "enemy_hp=%d/%d hostiles_nearby=%d\n", cr.EnemyHP, cr.EnemyMaxHP, cr.NearbyHostiles)

	for _, mode := range []struct {
		name                string
		mouseover, restrict bool
	}{
		{"heal", false, false},
		{"heal+mouseover", true, false},
		{"heal mouseover-only", true, true},
	} {
		heal := classifier.ResolveHealTarget(mode.mouseover, mode.restrict)
		fmt.Fprintf(w, "%s: %s\n", mode.name, heal)
	}
	return nil
}
