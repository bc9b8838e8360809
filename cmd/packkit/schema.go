package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/packkit/config"
)

// schemaCmd prints the JSON schema of the configuration file.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema for packkit configuration files",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := config.Schema()
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
