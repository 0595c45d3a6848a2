package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/orgfill/internal/org"
)

var keysMatch string

var keysCmd = &cobra.Command{
	Use:   "keys [file]",
	Short: "List property names defined in the document",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeys,
}

func init() {
	keysCmd.Flags().StringVarP(&keysMatch, "match", "m", "", "fuzzy-filter the listed names")
}

func runKeys(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	buf, err := openDocument(args[0], cfg)
	if err != nil {
		return err
	}

	names := org.Keys(buf)
	if keysMatch != "" {
		names = org.KeysMatching(buf, keysMatch)
	}
	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
