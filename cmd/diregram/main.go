package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nexusmap/diregram/pkg/blockschema"
	"github.com/nexusmap/diregram/pkg/config"
	"github.com/nexusmap/diregram/pkg/report"
	"github.com/nexusmap/diregram/pkg/verify"
)

// Version is set at build time via ldflags.
var version = "dev"

var (
	flagConfig  string
	flagStrict  bool
	flagPretty  bool
	flagNoColor bool
)

const usageLine = "Usage: diregram /absolute/path/to/file.md"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "diregram [file.md]",
	Short:         "Verify Diregram markdown documents",
	Long:          "diregram — verifies Diregram markdown documents: tree markers, metadata blocks, cross references and swimlane consistency.",
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run:           runVerify,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to a .diregram.yaml config file")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable styled output")
	rootCmd.Flags().BoolVar(&flagStrict, "strict", false, "also check metadata blocks against their JSON schemas")
	rootCmd.Flags().BoolVar(&flagPretty, "pretty", false, "styled report instead of the plain line format")

	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(triageCmd)
}

func runVerify(cmd *cobra.Command, args []string) {
	if len(args) != 1 {
		fmt.Println(usageLine)
		os.Exit(2)
	}
	path := args[0]

	_, errors, err := verifyFile(path, flagStrict)
	if err != nil {
		fmt.Printf("FAIL: file not found: %s\n", path)
		os.Exit(1)
	}

	if errors > 0 {
		os.Exit(1)
	}
}

// verifyFile runs the full pipeline for one document: verification, the
// optional strict schema pass, config-driven rules and overrides, and the
// report itself. It returns the final issues and the error count that
// decides the exit status.
func verifyFile(path string, strict bool) ([]verify.Issue, int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}

	res := verify.Text(string(raw))

	cfg, err := loadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	if cfg != nil {
		compiled, bad := verify.CompileRules(cfg.Rules)
		res.Issues = append(res.Issues, bad...)
		res.ApplyRules(compiled)
		if cfg.Strict {
			strict = true
		}
	}

	if strict {
		extra, err := blockschema.Check(res.Table)
		if err != nil {
			fmt.Fprintf(os.Stderr, "schema check: %v\n", err)
			os.Exit(1)
		}
		res.Issues = append(res.Issues, extra...)
	}

	if cfg != nil {
		res.Issues = verify.ApplyConfig(res.Issues, cfg)
	}

	var errors int
	if flagPretty && !flagNoColor {
		errors, _ = report.Pretty(os.Stdout, res.Issues)
	} else {
		errors, _ = report.Write(os.Stdout, res.Issues)
	}
	return res.Issues, errors, nil
}

// loadConfig resolves the config for a document: the --config flag wins,
// otherwise a .diregram.yaml next to the document is picked up. No config
// file means a nil config, which leaves the core output untouched.
func loadConfig(docPath string) (*config.Config, error) {
	path := flagConfig
	if path == "" {
		path = config.Find(docPath)
	}
	if path == "" {
		return nil, nil
	}
	return config.Load(path)
}
