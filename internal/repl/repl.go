// Package repl is the interactive harness over the sample catalogue.
// There is no surface parser in this module (an explicit Non-goal), so
// the REPL does not read free-form expressions — it drives the named
// declarations of internal/catalogue through infer.InferTop one at a
// time and lets the user inspect the resulting schemes.
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/affe-lang/affe/internal/builtin"
	"github.com/affe-lang/affe/internal/catalogue"
	"github.com/affe-lang/affe/internal/config"
	"github.com/affe-lang/affe/internal/infer"
	"github.com/affe-lang/affe/internal/names"
	"github.com/affe-lang/affe/internal/types"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// REPL drives the catalogue's declarations through inference one at a
// time, accumulating a growing Env the way successive InferTop calls
// would inside a real top-level harness.
type REPL struct {
	cfg      *config.HarnessConfig
	interner *names.Interner
	env      *types.Env
	samples  []catalogue.Sample
	done     map[string]*types.TypeScheme
	version  string
}

// New starts a REPL with an empty harness config and the builtin
// root environment.
func New(version string) *REPL {
	return NewWithConfig(config.Default(), version)
}

// NewWithConfig starts a REPL over a caller-supplied HarnessConfig.
// The config's region aliases are currently informational only
// (printed by :regions) since no catalogue sample references one by
// name yet.
func NewWithConfig(cfg *config.HarnessConfig, version string) *REPL {
	in := names.NewInterner()
	env, _ := builtin.NewEnv(in)
	return &REPL{
		cfg:      cfg,
		interner: in,
		env:      env,
		samples:  catalogue.All(),
		done:     map[string]*types.TypeScheme{},
		version:  version,
	}
}

// Start begins the REPL session, reading commands until EOF or :quit.
func (r *REPL) Start(out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()

	historyFile := filepath.Join(os.TempDir(), ".affe_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	fmt.Fprintf(out, "%s %s\n", bold("affe"), bold(r.version))
	fmt.Fprintln(out, "Type :help for commands, :quit to exit")
	fmt.Fprintln(out)

	line.SetCompleter(func(l string) (c []string) {
		if !strings.HasPrefix(l, ":") {
			return nil
		}
		for _, cmd := range []string{":help", ":list", ":infer", ":run", ":regions", ":history", ":quit"} {
			if strings.HasPrefix(cmd, l) {
				c = append(c, cmd)
			}
		}
		return
	})

	for {
		input, err := line.Prompt("affe> ")
		if err == io.EOF {
			fmt.Fprintln(out, green("Goodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			continue
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if input == ":quit" || input == ":q" || input == ":exit" {
			fmt.Fprintln(out, green("Goodbye!"))
			break
		}
		r.handle(input, out)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

func (r *REPL) handle(input string, out io.Writer) {
	fields := strings.Fields(input)
	switch fields[0] {
	case ":help", ":h":
		r.printHelp(out)
	case ":list", ":l":
		r.printList(out)
	case ":regions":
		r.printRegions(out)
	case ":history":
		fmt.Fprintln(out, "history is kept by the line editor; use the up arrow")
	case ":infer", ":run":
		if len(fields) < 2 {
			fmt.Fprintln(out, "usage: :infer <sample-name>")
			return
		}
		r.runSample(fields[1], out)
	default:
		fmt.Fprintf(out, "%s: unknown command %q (try :help)\n", red("Error"), fields[0])
	}
}

func (r *REPL) printHelp(out io.Writer) {
	fmt.Fprintln(out, bold("Commands:"))
	fmt.Fprintln(out, "  :list            list catalogue sample names")
	fmt.Fprintln(out, "  :infer <name>    run inference on a named sample")
	fmt.Fprintln(out, "  :regions         show configured region aliases")
	fmt.Fprintln(out, "  :quit            exit")
}

func (r *REPL) printList(out io.Writer) {
	for _, s := range r.samples {
		mark := " "
		if _, ok := r.done[s.Name]; ok {
			mark = cyan("*")
		}
		fmt.Fprintf(out, "%s %-12s %s\n", mark, s.Name, s.Describe)
	}
}

func (r *REPL) printRegions(out io.Writer) {
	for name, reg := range r.cfg.Regions() {
		fmt.Fprintf(out, "  %-10s %s\n", name, reg)
	}
}

// runSample runs one catalogue entry through InferTop, binding its
// result into r.env so later samples (and a future :list run) can
// reference it the way successive top-level declarations would.
func (r *REPL) runSample(name string, out io.Writer) {
	var sample *catalogue.Sample
	for i := range r.samples {
		if r.samples[i].Name == name {
			sample = &r.samples[i]
			break
		}
	}
	if sample == nil {
		fmt.Fprintf(out, "%s: no such sample %q\n", red("Error"), name)
		return
	}

	n := r.interner.Fresh(sample.Name)
	expr := sample.Build(r.interner)

	_, env2, scheme, err := infer.InferTop(r.env, sample.Rec, n, expr)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
		return
	}
	r.env = env2
	r.done[sample.Name] = scheme
	fmt.Fprintf(out, "%s : %s\n", yellow(sample.Name), scheme)
}
