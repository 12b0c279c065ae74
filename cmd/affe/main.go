package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/affe-lang/affe/internal/builtin"
	"github.com/affe-lang/affe/internal/catalogue"
	"github.com/affe-lang/affe/internal/config"
	"github.com/affe-lang/affe/internal/infer"
	"github.com/affe-lang/affe/internal/names"
	"github.com/affe-lang/affe/internal/repl"
)

var (
	// Version info, set by ldflags during build.
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"

	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		versionFlag = flag.Bool("version", false, "print version information")
		helpFlag    = flag.Bool("help", false, "show help")
		configPath  = flag.String("config", "", "path to a harness config YAML file")
	)
	flag.Parse()

	if *versionFlag {
		printVersion()
		return
	}
	if *helpFlag || flag.NArg() == 0 {
		printHelp()
		return
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			os.Exit(1)
		}
		cfg = loaded
	}

	switch flag.Arg(0) {
	case "check":
		runCheck()
	case "repl":
		repl.NewWithConfig(cfg, Version).Start(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", red("Error"), flag.Arg(0))
		printHelp()
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("affe %s\n", bold(Version))
	if Commit != "unknown" {
		fmt.Printf("commit: %s\n", Commit)
	}
	if BuildTime != "unknown" {
		fmt.Printf("built:  %s\n", BuildTime)
	}
}

func printHelp() {
	fmt.Println(bold("affe - the Affe type-checker core"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  affe <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Printf("  %s    run the sample catalogue and print inferred schemes\n", cyan("check"))
	fmt.Printf("  %s     start the interactive harness\n", cyan("repl"))
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  --version         print version information")
	fmt.Println("  --help            show this help message")
	fmt.Println("  --config <path>   load a harness config YAML file")
}

// runCheck infers every catalogue sample in order against a shared,
// growing environment and prints each resulting scheme, mirroring
// what a real top-level harness would do across successive InferTop
// calls.
func runCheck() {
	in := names.NewInterner()
	env, _ := builtin.NewEnv(in)

	for _, sample := range catalogue.All() {
		n := in.Fresh(sample.Name)
		expr := sample.Build(in)

		_, env2, scheme, err := infer.InferTop(env, sample.Rec, n, expr)
		if err != nil {
			fmt.Printf("%s %-12s %v\n", red("✗"), sample.Name, err)
			continue
		}
		env = env2
		fmt.Printf("%s %-12s %s\n", green("✓"), sample.Name, yellow(scheme.String()))
	}
}
