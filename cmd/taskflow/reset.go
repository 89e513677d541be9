package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe all local state (identity and task mirror)",
	Long: `Deletes both mirror entries: the stored identity and the offline
task snapshot. Irreversible; the remote store is untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		if !flagYes && !confirm("Reset ALL local state? This cannot be undone.") {
			fmt.Println("aborted")
			return nil
		}
		if err := s.store.Reset(); err != nil {
			return err
		}
		fmt.Println("local state cleared")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "skip confirmation")
	rootCmd.AddCommand(resetCmd)
}
