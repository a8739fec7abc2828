package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nexusmap/diregram/pkg/explain"
)

var explainCmd = &cobra.Command{
	Use:   "explain [CODE]",
	Short: "Explain an issue code",
	Long:  "Explain what an issue code means and how to fix it. Without an argument, lists all known codes.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExplain,
}

func runExplain(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Println("Known issue codes:")
		for _, code := range explain.Codes() {
			fmt.Printf("  %s\n", code)
		}
		return nil
	}

	code := strings.ToUpper(args[0])
	if flagNoColor {
		md, ok := explain.Text(code)
		if !ok {
			return fmt.Errorf("unknown issue code %q", code)
		}
		fmt.Println(md)
		return nil
	}

	out, err := explain.Render(code)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
