package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var transcribeTarget string

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <audio-file>",
	Short: "Transcribe an audio file through the relay",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := NewClient(serverURL)
		result, err := client.Transcribe(cmd.Context(), args[0], transcribeTarget)
		if err != nil {
			return err
		}

		fmt.Printf("%s\n", result.Text)
		fmt.Printf("(detected source: %s)\n", result.DetectedSource)
		return nil
	},
}

func init() {
	transcribeCmd.Flags().StringVarP(&transcribeTarget, "target", "t", "en", "target language code")
	rootCmd.AddCommand(transcribeCmd)
}
