package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nexusmap/diregram/pkg/blockschema"
)

var schemaCmd = &cobra.Command{
	Use:   "schema [block-type]",
	Short: "Export the JSON Schema for a metadata block type",
	Long: "Print the JSON Schema (Draft 2020-12) for a metadata block type.\n" +
		"Block types: " + strings.Join(blockschema.Kinds(), ", ") + ".\nWithout an argument, lists the block types.",
	Args: cobra.MaximumNArgs(1),
	RunE: runSchema,
}

func runSchema(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		for _, kind := range blockschema.Kinds() {
			fmt.Println(kind)
		}
		return nil
	}

	data, err := blockschema.Generate(args[0])
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
