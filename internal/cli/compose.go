package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aretw0/chainalign/internal/logging"
	"github.com/aretw0/chainalign/internal/presentation/graph"
	"github.com/aretw0/chainalign/pkg/adapters/file"
	httpAdapter "github.com/aretw0/chainalign/pkg/adapters/http"
	"github.com/aretw0/chainalign/pkg/adapters/loam"
	"github.com/aretw0/chainalign/pkg/domain"
	"github.com/aretw0/chainalign/pkg/editor"
	"github.com/aretw0/chainalign/pkg/registry"
)

// errQuit ends the compose loop.
var errQuit = errors.New("quit")

var (
	errNoSession = errors.New("no session yet (submit first)")
	errNoMatchup = errors.New("no matchup to vote on (ask first)")
	errNoLibrary = errors.New("no chain set library configured")
)

const composeHelp = `Commands (positions start at 1):
  show                  list every chain
  units [pos]           units available at pos of the active chain (default: open end)
  select <pos> <unit>   place a unit (id or name) at pos
  delete <pos>          remove pos and everything after it
  add                   add an empty chain and focus it
  remove [id]           remove a chain (default: active)
  focus <id> | next | prev
  validate              check the chain set
  graph                 print a Mermaid diagram
  save <path>           write the chain set as YAML
  load <path>           replace the chain set from YAML
  store <name> [note]   keep the chain set in the library
  restore <name>        replace the chain set from the library
  stored                list library chain sets
  submit                validate and start a comparison session
  ask <input>           play a matchup in the current session
  vote <A|B|tie|both_bad>
                        judge the last matchup
  quit`

// Shell is a line-oriented chain-set editor.
// It plays the renderer role: every transition an edit starts is reported and then
// settled at once, so the barrier commits before the next prompt.
type Shell struct {
	reg     *registry.Registry
	out     io.Writer
	render  func(string) (string, error)
	library *loam.Library
	logger  *slog.Logger

	sessionID string
	matchupID string
}

// ShellOption configures a Shell.
type ShellOption func(*Shell)

// WithRenderer renders markdown output (e.g. tui.NewRenderer).
func WithRenderer(render func(string) (string, error)) ShellOption {
	return func(s *Shell) {
		s.render = render
	}
}

// WithLibrary enables the store, restore and stored commands.
func WithLibrary(lib *loam.Library) ShellOption {
	return func(s *Shell) {
		s.library = lib
	}
}

// WithShellLogger sets a custom structured logger.
func WithShellLogger(logger *slog.Logger) ShellOption {
	return func(s *Shell) {
		s.logger = logger
	}
}

// NewShell creates a shell editing reg and writing to out.
func NewShell(reg *registry.Registry, out io.Writer, opts ...ShellOption) *Shell {
	s := &Shell{
		reg: reg,
		out: out,
		render: func(md string) (string, error) {
			return md, nil
		},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run reads commands from in until quit, EOF or ctx cancellation.
// prompt is printed before each line when non-empty.
func (s *Shell) Run(ctx context.Context, in io.Reader, prompt string) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		if prompt != "" {
			fmt.Fprint(s.out, prompt)
		}

		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			return nil
		case err := <-readErr:
			return err
		case line := <-lines:
			err := s.Exec(ctx, line)
			if errors.Is(err, errQuit) {
				return nil
			}
			if err != nil {
				fmt.Fprintf(s.out, "error: %v\n", err)
			}
		}
	}
}

// Exec runs a single command line.
func (s *Shell) Exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "help", "?":
		fmt.Fprintln(s.out, composeHelp)
		return nil
	case "q", "quit", "exit":
		return errQuit
	case "show", "ls":
		return s.show()
	case "units":
		return s.units(args)
	case "select", "set":
		return s.selectUnit(args)
	case "delete", "del", "rm":
		return s.delete(args)
	case "add":
		id := s.reg.AddChain()
		if err := s.reg.Focus(id); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Chain %d added.\n", id)
		return nil
	case "remove":
		return s.remove(args)
	case "focus":
		if len(args) != 1 {
			return fmt.Errorf("usage: focus <id>")
		}
		id, err := parseChainID(args[0])
		if err != nil {
			return err
		}
		return s.reg.Focus(id)
	case "next":
		fmt.Fprintf(s.out, "Chain %d active.\n", s.reg.Next())
		return nil
	case "prev":
		fmt.Fprintf(s.out, "Chain %d active.\n", s.reg.Prev())
		return nil
	case "validate":
		return s.print(RenderReport(s.reg.Validate()))
	case "graph":
		fmt.Fprint(s.out, s.graph())
		return nil
	case "save":
		if len(args) != 1 {
			return fmt.Errorf("usage: save <path>")
		}
		if err := file.SaveChainSet(args[0], file.Capture(s.reg)); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Saved %d chain(s) to %s.\n", s.reg.Len(), args[0])
		return nil
	case "load":
		if len(args) != 1 {
			return fmt.Errorf("usage: load <path>")
		}
		set, err := file.LoadChainSet(args[0])
		if err != nil {
			return err
		}
		if err := set.Apply(s.reg); err != nil {
			return err
		}
		return s.show()
	case "store":
		if len(args) < 1 {
			return fmt.Errorf("usage: store <name> [note]")
		}
		return s.store(ctx, args[0], strings.Join(args[1:], " "))
	case "restore":
		if len(args) != 1 {
			return fmt.Errorf("usage: restore <name>")
		}
		return s.restore(ctx, args[0])
	case "stored":
		return s.stored(ctx)
	case "submit":
		return s.submit(ctx)
	case "ask":
		if len(args) == 0 {
			return fmt.Errorf("usage: ask <input>")
		}
		return s.ask(ctx, strings.Join(args, " "))
	case "vote":
		if len(args) != 1 {
			return fmt.Errorf("usage: vote <A|B|tie|both_bad>")
		}
		return s.vote(ctx, args[0])
	}

	return fmt.Errorf("unknown command %q (try help)", cmd)
}

func (s *Shell) active() (domain.ChainID, *editor.Editor, error) {
	id := s.reg.Active()
	ed, err := s.reg.Editor(id)
	return id, ed, err
}

func (s *Shell) show() error {
	active := s.reg.Active()
	var views []ChainView
	for _, id := range s.reg.IDs() {
		ed, err := s.reg.Editor(id)
		if err != nil {
			return err
		}
		views = append(views, ChainView{ID: id, Active: id == active, Links: ed.Links()})
	}
	return s.print(RenderChains(views))
}

func (s *Shell) units(args []string) error {
	_, ed, err := s.active()
	if err != nil {
		return err
	}

	pos := ed.Len() - 1
	if len(args) > 0 {
		if pos, err = parsePosition(args[0]); err != nil {
			return err
		}
	}
	if pos < 0 || pos >= ed.Len() {
		return fmt.Errorf("%w: %d (chain has %d links)", domain.ErrPositionOutOfRange, pos+1, ed.Len())
	}
	return s.print(RenderUnits(ed.AvailableUnits(pos)))
}

func (s *Shell) selectUnit(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: select <pos> <unit>")
	}
	pos, err := parsePosition(args[0])
	if err != nil {
		return err
	}
	unit, err := s.reg.Catalog().Resolve(strings.Join(args[1:], " "))
	if err != nil {
		return err
	}

	_, ed, err := s.active()
	if err != nil {
		return err
	}
	if err := ed.Select(pos, unit); err != nil {
		return err
	}
	s.settle(ed)
	return nil
}

func (s *Shell) delete(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: delete <pos>")
	}
	pos, err := parsePosition(args[0])
	if err != nil {
		return err
	}

	_, ed, err := s.active()
	if err != nil {
		return err
	}
	if err := ed.DeleteFrom(pos); err != nil {
		return err
	}
	s.settle(ed)
	return nil
}

func (s *Shell) remove(args []string) error {
	id := s.reg.Active()
	if len(args) > 0 {
		var err error
		if id, err = parseChainID(args[0]); err != nil {
			return err
		}
	}
	if err := s.reg.RemoveChain(id); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Chain %d removed; chain %d active.\n", id, s.reg.Active())
	return nil
}

func (s *Shell) submit(ctx context.Context) error {
	resp, err := s.reg.Submit(ctx)
	if err != nil {
		if report := s.reg.Validate(); !report.Valid {
			_ = s.print(RenderReport(report))
		}
		return err
	}
	s.sessionID, s.matchupID = resp.SessionID, ""
	fmt.Fprintf(s.out, "%s (session %s)\n", resp.Message, resp.SessionID)
	return nil
}

func (s *Shell) ask(ctx context.Context, input string) error {
	svc := s.reg.Service()
	if svc == nil {
		return registry.ErrNoService
	}
	if s.sessionID == "" {
		return errNoSession
	}

	resp, err := svc.Process(ctx, domain.ProcessInputRequest{SessionID: s.sessionID, UserInput: input})
	if err != nil {
		return s.describeServiceError(err)
	}
	s.matchupID = resp.MatchupID
	fmt.Fprintf(s.out, "Matchup %s\n  A: %s\n  B: %s\n", resp.MatchupID, resp.OutputA, resp.OutputB)
	return nil
}

func (s *Shell) vote(ctx context.Context, arg string) error {
	vote, err := domain.ParseVote(arg)
	if err != nil {
		return err
	}
	svc := s.reg.Service()
	if svc == nil {
		return registry.ErrNoService
	}
	if s.matchupID == "" {
		return errNoMatchup
	}

	resp, err := svc.Vote(ctx, domain.VoteRequest{SessionID: s.sessionID, MatchupID: s.matchupID, Vote: vote})
	if err != nil {
		return s.describeServiceError(err)
	}
	s.matchupID = ""
	fmt.Fprintln(s.out, resp.Message)
	return nil
}

// describeServiceError keeps transport failures readable; they are never retried.
func (s *Shell) describeServiceError(err error) error {
	var te *httpAdapter.TransportError
	if errors.As(err, &te) {
		s.logger.Debug("Session service request failed", "op", te.Op, "status", te.Status)
		return fmt.Errorf("session service unavailable (%s): %w", te.Op, err)
	}
	return err
}

func (s *Shell) store(ctx context.Context, name, note string) error {
	if s.library == nil {
		return errNoLibrary
	}
	if err := s.library.Save(ctx, name, file.Capture(s.reg), note); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Stored %d chain(s) as %s.\n", s.reg.Len(), name)
	return nil
}

func (s *Shell) restore(ctx context.Context, name string) error {
	if s.library == nil {
		return errNoLibrary
	}
	entry, err := s.library.Load(ctx, name)
	if err != nil {
		return err
	}
	if err := entry.Set.Apply(s.reg); err != nil {
		return err
	}
	if entry.Note != "" {
		fmt.Fprintln(s.out, entry.Note)
	}
	return s.show()
}

func (s *Shell) stored(ctx context.Context) error {
	if s.library == nil {
		return errNoLibrary
	}
	names, err := s.library.List(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintln(s.out, "Library is empty.")
		return nil
	}
	for _, name := range names {
		fmt.Fprintf(s.out, "  %s\n", name)
	}
	return nil
}

// settle completes every transition the editor is waiting on, reporting each one.
// Settling can unlock further transitions, so it loops until nothing is pending.
func (s *Shell) settle(ed *editor.Editor) {
	for {
		tickets := ed.Pending()
		if len(tickets) == 0 {
			return
		}
		links := ed.Links()
		for _, t := range tickets {
			l := links[t.Position]
			name := "empty link"
			if l.Unit != nil {
				name = l.Unit.Name
			}
			fmt.Fprintf(s.out, "  ~ %d %s (%s)\n", t.Position+1, l.State, name)
		}
		settled := false
		for _, t := range tickets {
			if ed.Settle(t) {
				settled = true
			}
		}
		if !settled {
			s.logger.Warn("Pending transitions refused to settle", "tickets", len(tickets))
			return
		}
	}
}

func (s *Shell) graph() string {
	snaps := s.reg.Chains()
	chains := make([]graph.Chain, len(snaps))
	for i, snap := range snaps {
		chains[i] = graph.Chain{ID: snap.ID, Units: snap.Units}
	}
	return graph.GenerateMermaid(chains, &graph.Overlay{Active: s.reg.Active()})
}

func (s *Shell) print(markdown string) error {
	out, err := s.render(markdown)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(s.out, out)
	return err
}

func parsePosition(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid position %q", arg)
	}
	return n - 1, nil
}

func parseChainID(arg string) (domain.ChainID, error) {
	n, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid chain id %q", arg)
	}
	return domain.ChainID(n), nil
}
