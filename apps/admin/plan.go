package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/masomo-rollover/core"
	"github.com/trezcool/masomo-rollover/core/class"
	"github.com/trezcool/masomo-rollover/core/transition"
)

type planOptions struct {
	classID   string
	sessionID string
	promote   string
	retain    string
	transfer  string
	targets   string
}

func splitIDs(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = core.CleanString(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// applyOverrides edits plan with the administrator's choices: actions first, then targets.
func applyOverrides(plan *transition.Plan, opts planOptions) error {
	actions := []struct {
		kind transition.Kind
		ids  string
	}{
		{transition.KindPromote, opts.promote},
		{transition.KindRetain, opts.retain},
		{transition.KindTransfer, opts.transfer},
	}
	for _, a := range actions {
		for _, id := range splitIDs(a.ids) {
			if err := plan.SetAction(id, a.kind); err != nil {
				return core.NewArgumentError(fmt.Sprintf("%s %s: %v", a.kind, id, err))
			}
		}
	}

	for _, pair := range splitIDs(opts.targets) {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			return core.NewArgumentError(fmt.Sprintf("invalid target %q, expected STUDENT=CLASS", pair))
		}
		studentID, classID := core.CleanString(parts[0]), core.CleanString(parts[1])
		if err := plan.SetTarget(studentID, classID); err != nil {
			return core.NewArgumentError(fmt.Sprintf("target %s: %v", pair, err))
		}
	}
	return nil
}

func renderPlan(plan *transition.Plan) string {
	var b strings.Builder
	for _, e := range plan.Entries {
		target := "-"
		if !e.Action.IsTransfer() {
			target = classLabel(plan.Classes(), e.Action.TargetClassID())
		}
		fmt.Fprintf(&b, "%s  %-24s %-8s %s\n", e.Student.ID, e.Student.Name, e.Action.Kind(), target)
	}
	return b.String()
}

func classLabel(classes []class.Class, id string) string {
	if id == "" {
		return "(no target)"
	}
	if cls, ok := class.Find(classes, id); ok {
		return cls.Label() + " [" + cls.ID + "]"
	}
	return id
}

// planDiff renders the overrides as a unified diff of the default plan; empty if none.
func planDiff(def, edited *transition.Plan) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(renderPlan(def)),
		B:        difflib.SplitLines(renderPlan(edited)),
		FromFile: "default",
		ToFile:   "edited",
		Context:  1,
	})
}

func (cli *commandLine) preparePlan(ctx context.Context, opts planOptions) (*transition.Plan, error) {
	def, err := cli.planner.Prepare(ctx, opts.classID, opts.sessionID)
	if err != nil {
		return nil, err
	}
	edited := def.Clone()
	if err = applyOverrides(edited, opts); err != nil {
		return nil, err
	}

	fmt.Fprintf(cli.out, "class %s -> session %s: %d student(s)\n", def.SourceClassID, def.TargetSessionID, len(def.Entries))
	if len(edited.Entries) == 0 {
		fmt.Fprintln(cli.out, "no eligible students")
		return edited, nil
	}
	fmt.Fprint(cli.out, renderPlan(edited))

	diff, err := planDiff(def, edited)
	if err != nil {
		return nil, err
	}
	if diff != "" {
		fmt.Fprintln(cli.out, "\nchanges to the default plan:")
		fmt.Fprint(cli.out, diff)
	}
	return edited, nil
}

func (cli *commandLine) showPlan(ctx context.Context, opts planOptions) error {
	_, err := cli.preparePlan(ctx, opts)
	return err
}

func (cli *commandLine) submitPlan(ctx context.Context, opts planOptions, yes bool) error {
	plan, err := cli.preparePlan(ctx, opts)
	if err != nil {
		return err
	}
	if !yes && len(plan.Entries) > 0 {
		ok, err := confirmFunc(cli.out, "Submit this transition?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cli.out, "aborted")
			return nil
		}
	}

	res, err := cli.executor.Submit(ctx, plan)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%d student(s) submitted\n", res.Submitted)
	if len(res.Skipped) > 0 {
		fmt.Fprintf(cli.out, "skipped (no target class): %s\n", strings.Join(res.Skipped, ", "))
	}
	return nil
}
