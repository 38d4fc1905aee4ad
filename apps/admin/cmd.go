package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/trezcool/masomo-rollover/core"
	"github.com/trezcool/masomo-rollover/core/session"
	"github.com/trezcool/masomo-rollover/core/transition"
	restsvc "github.com/trezcool/masomo-rollover/services/rest"
	restrepos "github.com/trezcool/masomo-rollover/storage/restapi"
)

var (
	readTokenFunc  = term.ReadPassword // mockable
	isTerminalFunc = term.IsTerminal   // mockable
	confirmFunc    = confirm           // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf   *core.Config
	logger core.Logger
	out    io.Writer

	// set by connect
	sessions *session.Service
	planner  *transition.Planner
	executor *transition.Executor
}

func newCommandLine(conf *core.Config, logger core.Logger, out io.Writer) *commandLine {
	return &commandLine{conf: conf, logger: logger, out: out}
}

// connect wires the services to the backend API, prompting for the API token when none
// is configured and stdin is a terminal.
func (cli *commandLine) connect() error {
	if cli.sessions != nil {
		return nil
	}

	token := cli.conf.API.Token
	if token == "" && isTerminalFunc(int(syscall.Stdin)) {
		fmt.Fprint(cli.out, "API token (empty for none): ")
		pwd, err := readTokenFunc(int(syscall.Stdin))
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		token = strings.TrimSpace(string(pwd))
	}

	api, err := restsvc.NewCaller(restsvc.Options{
		BaseURL: cli.conf.API.BaseURL,
		Token:   token,
		Timeout: cli.conf.API.Timeout,
		Logger:  cli.logger,
	})
	if err != nil {
		return err
	}

	validate, translator := core.NewValidator()
	pageSize := cli.conf.API.PageSize

	cli.sessions = session.NewService(restrepos.NewSessionRepository(api), cli.logger, validate, translator, pageSize)
	cli.planner = transition.NewPlanner(
		restrepos.NewClassRepository(api),
		restrepos.NewStudentRepository(api),
		cli.sessions,
		pageSize,
	)
	cli.executor = transition.NewExecutor(restrepos.NewTransitionGateway(api), cli.logger, validate, translator)
	return nil
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  sessions                                        - list sessions (* marks the active one)")
	fmt.Fprintln(cli.out, "  active                                          - show the active session")
	fmt.Fprintln(cli.out, "  create-session -name NAME -start DATE -end DATE [-active]")
	fmt.Fprintln(cli.out, "                                                  - create a session")
	fmt.Fprintln(cli.out, "  update-session -id ID [-name NAME] [-start DATE] [-end DATE] [-active true|false]")
	fmt.Fprintln(cli.out, "                                                  - modify a session")
	fmt.Fprintln(cli.out, "  activate -id ID                                 - make a session the only active one")
	fmt.Fprintln(cli.out, "  plan -class ID [-session ID] [OVERRIDES]        - show the transition plan of a class")
	fmt.Fprintln(cli.out, "  transition -class ID [-session ID] [OVERRIDES] [-yes]")
	fmt.Fprintln(cli.out, "                                                  - submit the transition plan of a class")
	fmt.Fprintln(cli.out, "  token [-ttl DURATION]                           - sign an API token for the reference server")
	fmt.Fprintln(cli.out, "OVERRIDES:")
	fmt.Fprintln(cli.out, "  -retain IDS -transfer IDS -promote IDS          - comma separated student IDs")
	fmt.Fprintln(cli.out, "  -target STUDENT=CLASS,...                       - target class per student")
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()

	switch args[1] {
	case "sessions":
		if err := cli.connect(); err != nil {
			return err
		}
		return cli.listSessions(ctx)

	case "active":
		if err := cli.connect(); err != nil {
			return err
		}
		return cli.showActive(ctx)

	case "create-session":
		cmd := cli.newFlagSet("create-session")
		name := cmd.String("name", "", "The session's name, e.g. 2025-2026.")
		start := cmd.String("start", "", "The start date (YYYY-MM-DD).")
		end := cmd.String("end", "", "The end date (YYYY-MM-DD).")
		active := cmd.Bool("active", false, "Make it the active session, deactivating the current one.")
		if err := parseFlags(cmd, args[2:]); err != nil {
			return err
		}
		if err := cli.connect(); err != nil {
			return err
		}
		return cli.createSession(ctx, *name, *start, *end, *active)

	case "update-session":
		cmd := cli.newFlagSet("update-session")
		id := cmd.String("id", "", "The session's ID.")
		cmd.String("name", "", "The new name.")
		cmd.String("start", "", "The new start date (YYYY-MM-DD).")
		cmd.String("end", "", "The new end date (YYYY-MM-DD).")
		cmd.String("active", "", "true activates the session (deactivating the current one), false deactivates it.")
		if err := parseFlags(cmd, args[2:]); err != nil {
			return err
		}
		if *id == "" {
			cmd.Usage()
			return errHelp
		}
		set := make(map[string]string)
		cmd.Visit(func(f *flag.Flag) { set[f.Name] = f.Value.String() })
		if err := cli.connect(); err != nil {
			return err
		}
		return cli.updateSession(ctx, *id, set)

	case "activate":
		cmd := cli.newFlagSet("activate")
		id := cmd.String("id", "", "The session's ID.")
		if err := parseFlags(cmd, args[2:]); err != nil {
			return err
		}
		if *id == "" {
			cmd.Usage()
			return errHelp
		}
		if err := cli.connect(); err != nil {
			return err
		}
		return cli.activateSession(ctx, *id)

	case "plan", "transition":
		cmd := cli.newFlagSet(args[1])
		var opts planOptions
		cmd.StringVar(&opts.classID, "class", "", "The source class ID.")
		cmd.StringVar(&opts.sessionID, "session", "", "The target session ID. Defaults to the next session.")
		cmd.StringVar(&opts.promote, "promote", "", "Students to promote (comma separated IDs).")
		cmd.StringVar(&opts.retain, "retain", "", "Students to retain (comma separated IDs).")
		cmd.StringVar(&opts.transfer, "transfer", "", "Students to transfer out (comma separated IDs).")
		cmd.StringVar(&opts.targets, "target", "", "Target classes as STUDENT=CLASS pairs (comma separated).")
		yes := cmd.Bool("yes", false, "Submit without asking for confirmation.")
		if err := parseFlags(cmd, args[2:]); err != nil {
			return err
		}
		if opts.classID == "" {
			cmd.Usage()
			return errHelp
		}
		if err := cli.connect(); err != nil {
			return err
		}
		if args[1] == "plan" {
			return cli.showPlan(ctx, opts)
		}
		return cli.submitPlan(ctx, opts, *yes)

	case "token":
		cmd := cli.newFlagSet("token")
		ttl := cmd.Duration("ttl", defaultTokenTTL, "The token's lifetime.")
		if err := parseFlags(cmd, args[2:]); err != nil {
			return err
		}
		return cli.printToken(*ttl)

	default:
		cli.printUsage()
		return errHelp
	}
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return errHelp
		}
		return err
	}
	return nil
}

// confirm asks a yes/no question on stdin.
func confirm(out io.Writer, question string) (bool, error) {
	fmt.Fprint(out, question+" [y/N]: ")
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	answer = core.CleanString(answer, true /* lower */)
	return answer == "y" || answer == "yes", nil
}
