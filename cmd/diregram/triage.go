package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/nexusmap/diregram/pkg/config"
	"github.com/nexusmap/diregram/pkg/verify"
)

var triageCmd = &cobra.Command{
	Use:   "triage [file.md]",
	Short: "Interactively walk the issues of a document",
	Long: "An interactive loop over the issues a verification produced. Codes can be\n" +
		"suppressed or downgraded, and the decisions written back to .diregram.yaml.",
	Args: cobra.ExactArgs(1),
	RunE: runTriage,
}

// triage holds the REPL state: the document, its current issues and the
// pending config edits.
type triage struct {
	path    string
	cfgPath string
	cfg     *config.Config
	issues  []verify.Issue
	cursor  int
	dirty   bool
	out     io.Writer
}

func runTriage(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfgPath := flagConfig
	if cfgPath == "" {
		cfgPath = config.Find(path)
	}
	cfg := &config.Config{}
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		cfg = loaded
	} else {
		cfgPath = filepath.Join(filepath.Dir(path), config.DefaultName)
	}

	tr := &triage{path: path, cfgPath: cfgPath, cfg: cfg, out: os.Stdout}
	if err := tr.reload(); err != nil {
		return err
	}
	return tr.run()
}

func (tr *triage) reload() error {
	raw, err := os.ReadFile(tr.path)
	if err != nil {
		return err
	}
	res := verify.Text(string(raw))
	tr.issues = verify.ApplyConfig(res.Issues, tr.cfg)
	if tr.cursor >= len(tr.issues) {
		tr.cursor = 0
	}
	return nil
}

func (tr *triage) run() error {
	commands := []string{"list", "next", "suppress", "severity", "reload", "save", "help", "quit"}

	var completer = readline.NewPrefixCompleter()
	for _, cmd := range commands {
		completer.Children = append(completer.Children,
			readline.PcItem(cmd))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          tr.prompt(),
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("init readline: %w", err)
	}
	defer rl.Close()

	fmt.Fprintf(tr.out, "diregram triage — %d issue(s) in %s\n", len(tr.issues), tr.path)
	fmt.Fprintf(tr.out, "Type 'help' for available commands, 'next' to step through issues.\n\n")

	for {
		rl.SetPrompt(tr.prompt())
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt || err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		switch parts[0] {
		case "list", "l":
			tr.handleList()
		case "next", "n":
			tr.handleNext()
		case "suppress":
			tr.handleSuppress(parts)
		case "severity":
			tr.handleSeverity(parts)
		case "reload", "r":
			if err := tr.reload(); err != nil {
				fmt.Fprintf(tr.out, "Error: %v\n", err)
			} else {
				fmt.Fprintf(tr.out, "%d issue(s)\n", len(tr.issues))
			}
		case "save":
			tr.handleSave()
		case "help", "?":
			tr.handleHelp()
		case "quit", "q":
			if tr.dirty {
				fmt.Fprintf(tr.out, "Unsaved changes discarded.\n")
			}
			return nil
		default:
			fmt.Fprintf(tr.out, "Unknown command: %q. Type 'help' for available commands.\n", parts[0])
		}
	}
}

func (tr *triage) prompt() string {
	if len(tr.issues) == 0 {
		return "triage[clean]> "
	}
	return fmt.Sprintf("triage[%d/%d]> ", tr.cursor+1, len(tr.issues))
}

func (tr *triage) handleList() {
	if len(tr.issues) == 0 {
		fmt.Fprintf(tr.out, "No issues.\n")
		return
	}
	for i, iss := range tr.issues {
		marker := "  "
		if i == tr.cursor {
			marker = "> "
		}
		fmt.Fprintf(tr.out, "%s%-7s %s: %s\n", marker, iss.Severity, iss.Code, iss.Message)
	}
}

func (tr *triage) handleNext() {
	if len(tr.issues) == 0 {
		fmt.Fprintf(tr.out, "No issues.\n")
		return
	}
	iss := tr.issues[tr.cursor]
	fmt.Fprintf(tr.out, "%-7s %s: %s\n", iss.Severity, iss.Code, iss.Message)
	tr.cursor = (tr.cursor + 1) % len(tr.issues)
}

func (tr *triage) handleSuppress(parts []string) {
	code := tr.codeArg(parts)
	if code == "" {
		return
	}
	for _, c := range tr.cfg.Suppress {
		if c == code {
			fmt.Fprintf(tr.out, "%s is already suppressed.\n", code)
			return
		}
	}
	tr.cfg.Suppress = append(tr.cfg.Suppress, code)
	tr.dirty = true
	if err := tr.reload(); err != nil {
		fmt.Fprintf(tr.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(tr.out, "Suppressed %s — %d issue(s) remain. 'save' to persist.\n", code, len(tr.issues))
}

func (tr *triage) handleSeverity(parts []string) {
	if len(parts) != 3 {
		fmt.Fprintf(tr.out, "Usage: severity CODE error|warning|off\n")
		return
	}
	code := strings.ToUpper(parts[1])
	level := strings.ToLower(parts[2])
	switch level {
	case config.SeverityOff, "error", "warning":
	default:
		fmt.Fprintf(tr.out, "Invalid severity %q: use error, warning or off.\n", level)
		return
	}
	if tr.cfg.Severity == nil {
		tr.cfg.Severity = make(map[string]string)
	}
	tr.cfg.Severity[code] = level
	tr.dirty = true
	if err := tr.reload(); err != nil {
		fmt.Fprintf(tr.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(tr.out, "%s -> %s — %d issue(s) remain. 'save' to persist.\n", code, level, len(tr.issues))
}

// codeArg resolves the code operand: an explicit argument, or the code of
// the issue under the cursor.
func (tr *triage) codeArg(parts []string) string {
	if len(parts) >= 2 {
		return strings.ToUpper(parts[1])
	}
	if len(tr.issues) == 0 {
		fmt.Fprintf(tr.out, "No issues.\n")
		return ""
	}
	return tr.issues[tr.cursor].Code
}

func (tr *triage) handleSave() {
	if err := config.Save(tr.cfgPath, tr.cfg); err != nil {
		fmt.Fprintf(tr.out, "Error: %v\n", err)
		return
	}
	tr.dirty = false
	fmt.Fprintf(tr.out, "Wrote %s\n", tr.cfgPath)
}

func (tr *triage) handleHelp() {
	fmt.Fprint(tr.out, `Commands:
  list             show all issues (cursor marked with >)
  next             show the issue under the cursor and advance
  suppress [CODE]  suppress a code (defaults to the current issue's code)
  severity CODE L  override a code's severity: error, warning or off
  reload           re-verify the document from disk
  save             write suppressions and overrides to the config file
  quit             exit (unsaved changes are discarded)
`)
}
