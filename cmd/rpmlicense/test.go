package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nihei9/rpmlicense"
	"github.com/nihei9/rpmlicense/tester"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	cmd := &cobra.Command{
		Use:     "test <test file path>|<test directory path>",
		Short:   "Test the parser against test case files",
		Example: `  rpmlicense test testdata`,
		Args:    cobra.ExactArgs(1),
		RunE:    runTest,
	}
	rootCmd.AddCommand(cmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(*rootFlags.verbose)
	if err != nil {
		return fmt.Errorf("Cannot create a logger: %w", err)
	}
	defer logger.Sync()

	list, err := readLicenseList(*rootFlags.licenseList)
	if err != nil {
		return fmt.Errorf("Cannot read a license list: %w", err)
	}

	var cs []*tester.TestCaseWithMetadata
	{
		cs = tester.ListTestCases(args[0])
		errOccurred := false
		for _, c := range cs {
			if c.Error != nil {
				fmt.Fprintf(os.Stderr, "Failed to read a test case or a directory: %v\n%v\n", c.FilePath, c.Error)
				errOccurred = true
			}
		}
		if errOccurred {
			return errors.New("Cannot run test")
		}
	}
	logger.Debug("read test cases", zap.String("path", args[0]), zap.Int("count", len(cs)))

	t := &tester.Tester{
		Options: []rpmlicense.ParserOption{
			rpmlicense.Oracle(&loggingOracle{
				list:   list,
				logger: logger,
			}),
		},
		Cases: cs,
	}
	rs := t.Run()
	testFailed := false
	for _, r := range rs {
		fmt.Fprintln(os.Stdout, r)
		if r.Error != nil {
			testFailed = true
		}
	}
	if testFailed {
		return errors.New("Test failed")
	}
	return nil
}
