package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/localenlp/relay/internal/history"
)

var (
	translateSource string
	translateTarget string
)

var translateCmd = &cobra.Command{
	Use:   "translate [text...]",
	Short: "Translate text through the relay",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")

		client := NewClient(serverURL)
		result, err := client.Translate(cmd.Context(), text, translateSource, translateTarget)
		if err != nil {
			return err
		}

		fmt.Printf("%s\n", result.TranslatedText)
		fmt.Printf("(%s → %s via %s)\n", result.DetectedSource, translateTarget, result.Provider)

		if err := recordHistory(history.Entry{
			Input:          text,
			Output:         result.TranslatedText,
			DetectedSource: result.DetectedSource,
			TargetLang:     translateTarget,
		}); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: could not record history: %v\n", err)
		}
		return nil
	},
}

func init() {
	translateCmd.Flags().StringVarP(&translateSource, "source", "s", "auto", "source language code, or auto")
	translateCmd.Flags().StringVarP(&translateTarget, "target", "t", "en", "target language code")
	rootCmd.AddCommand(translateCmd)
}

func recordHistory(entry history.Entry) error {
	path, err := history.DefaultPath()
	if err != nil {
		return err
	}
	store, err := history.NewFileStore(path)
	if err != nil {
		return err
	}
	return history.New(store).Record(entry)
}
