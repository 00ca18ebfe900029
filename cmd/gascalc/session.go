package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jgoulah/gascalc/internal/calculator"
	"github.com/jgoulah/gascalc/internal/config"
	"github.com/jgoulah/gascalc/internal/entries"
	"github.com/jgoulah/gascalc/pkg/models"
	"github.com/spf13/cobra"
)

var (
	sessionFraction  bool
	sessionNoAmbient bool
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Enter flow changes interactively",
	Long: `Starts an interactive session that keeps entries in memory while you add,
edit and delete them, and shows the daily totals and billing text on demand.
Type "help" for the list of commands.`,
	Args: cobra.NoArgs,
	RunE: runSession,
}

func init() {
	addModeFlags(sessionCmd, &sessionFraction, &sessionNoAmbient)
	rootCmd.AddCommand(sessionCmd)
}

const sessionHelp = `Commands:
  add TIME FLOW [FIO2]   add an entry (TIME is DDHHMM, or HHMM to reuse the last day)
  del N                  delete entry N
  edit N                 remove entry N and print it for re-entry
  list                   list entries
  usage                  show daily totals
  copy DAY               print the billing text for DAY
  mode fraction on|off   toggle fraction mode (clears entries)
  mode noambient on|off  toggle no-ambient mode (clears entries)
  clear                  delete all entries
  save                   archive the current totals
  help                   show this help
  quit                   leave the session`

// session is the state behind one interactive run
type session struct {
	store *entries.Store
	mode  models.Mode
	out   io.Writer
	save  func(models.Usage, models.Mode) (string, error)
}

func runSession(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := newStore(cfg)
	if err != nil {
		return fmt.Errorf("creating entry store: %w", err)
	}

	s := &session{
		store: store,
		mode:  resolveMode(cmd, cfg, sessionFraction, sessionNoAmbient),
		out:   cmd.OutOrStdout(),
		save:  archiveWith(cfg),
	}

	fmt.Fprintf(s.out, "Mode: %s. Type \"help\" for commands.\n", s.mode)
	return s.run(cmd.InOrStdin())
}

// archiveWith returns a save func that opens the archive for each save
func archiveWith(cfg *config.Config) func(models.Usage, models.Mode) (string, error) {
	return func(usage models.Usage, mode models.Mode) (string, error) {
		db, err := openDB(cfg)
		if err != nil {
			return "", fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()
		return db.SaveReport(usage, mode)
	}
}

func (s *session) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(s.out, "> ")
	for scanner.Scan() {
		if quit := s.handle(scanner.Text()); quit {
			return nil
		}
		fmt.Fprint(s.out, "> ")
	}
	fmt.Fprintln(s.out)
	return scanner.Err()
}

// handle runs one command line and reports whether the session should end
func (s *session) handle(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch cmd, args := strings.ToLower(fields[0]), fields[1:]; cmd {
	case "add":
		s.add(args)
	case "del", "delete":
		if n, ok := s.index(args); ok {
			s.store.Remove(n)
			printEntries(s.out, s.store.Snapshot(), s.mode)
		}
	case "edit":
		s.edit(args)
	case "list", "ls":
		printEntries(s.out, s.store.Snapshot(), s.mode)
	case "usage":
		printUsage(s.out, s.store.Usage(s.mode), s.mode)
	case "copy":
		s.copy(args)
	case "mode":
		s.setMode(args)
	case "clear":
		s.store.Clear()
		fmt.Fprintln(s.out, "✓ Cleared all entries")
	case "save":
		s.archive()
	case "help", "?":
		fmt.Fprintln(s.out, sessionHelp)
		fmt.Fprintf(s.out, "\nHHMM entries go on day %d\n", s.store.LastDay())
	case "quit", "exit", "q":
		return true
	default:
		fmt.Fprintf(s.out, "⚠ Unknown command %q (try \"help\")\n", cmd)
	}
	return false
}

func (s *session) add(args []string) {
	var ts, flow, fraction string
	if len(args) > 0 {
		ts = args[0]
	}
	if len(args) > 1 {
		flow = args[1]
	}
	if len(args) > 2 {
		fraction = args[2]
	}

	if err := s.store.Add(ts, flow, fraction, s.mode.Fraction); err != nil {
		fmt.Fprintf(s.out, "⚠ %v\n", err)
		return
	}
	printEntries(s.out, s.store.Snapshot(), s.mode)
}

// index parses a 1-based entry number into a store index
func (s *session) index(args []string) (int, bool) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "⚠ Expected an entry number")
		return 0, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "⚠ %q is not an entry number\n", args[0])
		return 0, false
	}
	return n - 1, true
}

func (s *session) edit(args []string) {
	n, ok := s.index(args)
	if !ok {
		return
	}
	r, ok := s.store.Take(n)
	if !ok {
		fmt.Fprintf(s.out, "⚠ No entry %d\n", n+1)
		return
	}

	input := fmt.Sprintf("add %s %s", entries.FormatForInput(r.Timestamp), formatFlow(r.Flow))
	if s.mode.Fraction {
		input += fmt.Sprintf(" %d", r.Fraction)
	}
	fmt.Fprintf(s.out, "Removed entry %d. Re-enter it as:\n  %s\n", n+1, input)
}

func (s *session) copy(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "⚠ Expected a day of month")
		return
	}
	day, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "⚠ %q is not a day\n", args[0])
		return
	}
	d, ok := s.store.Usage(s.mode)[day]
	if !ok {
		fmt.Fprintf(s.out, "⚠ No usage on day %d\n", day)
		return
	}
	fmt.Fprintln(s.out, calculator.BillingText(d, s.mode))
}

// setMode toggles a mode flag. Entries recorded under the old mode are dropped.
func (s *session) setMode(args []string) {
	if len(args) != 2 || (args[1] != "on" && args[1] != "off") {
		fmt.Fprintln(s.out, "⚠ Usage: mode fraction|noambient on|off")
		return
	}
	on := args[1] == "on"

	next := s.mode
	switch strings.ToLower(args[0]) {
	case "fraction":
		next.Fraction = on
	case "noambient", "no-ambient":
		if on && !s.mode.Fraction {
			fmt.Fprintln(s.out, "⚠ No-ambient mode needs fraction mode")
			return
		}
		next.NoAmbient = on
	default:
		fmt.Fprintf(s.out, "⚠ Unknown mode %q\n", args[0])
		return
	}

	s.mode = next.Normalize()
	s.store.Clear()
	fmt.Fprintf(s.out, "Mode: %s (entries cleared)\n", s.mode)
}

func (s *session) archive() {
	if s.save == nil {
		fmt.Fprintln(s.out, "⚠ No report archive configured")
		return
	}
	usage := s.store.Usage(s.mode)
	if len(usage) == 0 {
		fmt.Fprintln(s.out, "⚠ Nothing to save")
		return
	}
	id, err := s.save(usage, s.mode)
	if err != nil {
		fmt.Fprintf(s.out, "⚠ Saving report failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "✓ Saved report %s (%d days)\n", id, len(usage))
}
