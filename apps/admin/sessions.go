package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/trezcool/masomo-rollover/core"
	"github.com/trezcool/masomo-rollover/core/session"
)

func formatSession(s session.Session) string {
	marker := " "
	if s.IsActive {
		marker = "*"
	}
	return fmt.Sprintf("%s %s  %s  (%s to %s)", marker, s.ID, s.Name, s.StartDate, s.EndDate)
}

func (cli *commandLine) listSessions(ctx context.Context) error {
	all, err := cli.sessions.QueryAll(ctx)
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Fprintln(cli.out, "no sessions")
		return nil
	}
	for _, s := range all {
		fmt.Fprintln(cli.out, formatSession(s))
	}
	return nil
}

func (cli *commandLine) showActive(ctx context.Context) error {
	active, err := cli.sessions.GetActive(ctx)
	if err != nil {
		return err
	}
	if active == nil {
		fmt.Fprintln(cli.out, "no active session")
		return nil
	}
	fmt.Fprintln(cli.out, formatSession(*active))
	return nil
}

func parseDateFlag(field, value string) (session.Date, error) {
	d, err := session.ParseDate(value)
	if err != nil {
		return session.Date{}, core.NewValidationError(err, core.FieldError{Field: field, Error: err.Error()})
	}
	return d, nil
}

func (cli *commandLine) createSession(ctx context.Context, name, start, end string, active bool) error {
	ns := session.NewSession{Name: name, IsActive: active}
	var err error
	if ns.StartDate, err = parseDateFlag("startDate", start); err != nil {
		return err
	}
	if ns.EndDate, err = parseDateFlag("endDate", end); err != nil {
		return err
	}

	sess, err := cli.sessions.Create(ctx, ns)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "created:")
	fmt.Fprintln(cli.out, formatSession(sess))
	return nil
}

// updateSession applies the flags that were explicitly set.
func (cli *commandLine) updateSession(ctx context.Context, id string, set map[string]string) error {
	var us session.UpdateSession
	if name, ok := set["name"]; ok {
		us.Name = &name
	}
	if start, ok := set["start"]; ok {
		d, err := parseDateFlag("startDate", start)
		if err != nil {
			return err
		}
		us.StartDate = &d
	}
	if end, ok := set["end"]; ok {
		d, err := parseDateFlag("endDate", end)
		if err != nil {
			return err
		}
		us.EndDate = &d
	}
	if active, ok := set["active"]; ok {
		b, err := strconv.ParseBool(active)
		if err != nil {
			return core.NewValidationError(err, core.FieldError{Field: "isActive", Error: "must be true or false"})
		}
		us.IsActive = &b
	}

	sess, err := cli.sessions.Update(ctx, id, us)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "updated:")
	fmt.Fprintln(cli.out, formatSession(sess))
	return nil
}

func (cli *commandLine) activateSession(ctx context.Context, id string) error {
	sess, err := cli.sessions.Activate(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "active:")
	fmt.Fprintln(cli.out, formatSession(sess))
	return nil
}
