package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootFlags = struct {
	verbose     *bool
	licenseList *[]string
}{}

var rootCmd = &cobra.Command{
	Use:   "rpmlicense",
	Short: "Parse the License field of Fedora RPM spec files",
	Long: `rpmlicense provides three features:
- Parses license strings written in the legacy Fedora format or the SPDX format,
  and prints their formats and the licenses they refer to.
- Tests the parser against test case files.
- Lists the SPDX license identifiers used to classify single-identifier strings.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootFlags.verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "print debug logs to stderr")
	rootFlags.licenseList = rootCmd.PersistentFlags().StringSlice("license-list", nil, "SPDX license-list-data JSON files (licenses.json, exceptions.json) replacing the embedded list")
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
