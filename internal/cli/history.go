package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/localenlp/relay/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent translations, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := history.DefaultPath()
		if err != nil {
			return err
		}
		store, err := history.NewFileStore(path)
		if err != nil {
			return err
		}

		entries := history.New(store).List()
		if len(entries) == 0 {
			fmt.Println("no history yet")
			return nil
		}

		for i, e := range entries {
			fmt.Printf("%d. [%s] %s → %s\n", i+1, e.Timestamp.Local().Format("2006-01-02 15:04"), e.DetectedSource, e.TargetLang)
			fmt.Printf("   %s\n", e.Input)
			fmt.Printf("   %s\n", e.Output)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
