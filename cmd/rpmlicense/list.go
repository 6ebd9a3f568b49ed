package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var listFlags = struct {
	version *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "Print the SPDX license identifiers the parser recognizes",
		Example: `  rpmlicense list --license-list licenses.json`,
		Args:    cobra.NoArgs,
		RunE:    runList,
	}
	listFlags.version = cmd.Flags().Bool("version", false, "print only the version of the license list")
	rootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) error {
	list, err := readLicenseList(*rootFlags.licenseList)
	if err != nil {
		return fmt.Errorf("Cannot read a license list: %w", err)
	}
	if *listFlags.version {
		fmt.Fprintln(os.Stdout, list.Version())
		return nil
	}
	for _, id := range list.IDs() {
		fmt.Fprintln(os.Stdout, id)
	}
	return nil
}
