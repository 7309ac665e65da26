package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/aispeak/internal"
)

// ErrUsage means no input text was supplied. The caller prints usage and
// exits with a status distinct from runtime failures.
var ErrUsage = errors.New("no input text supplied")

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "aispeak \"text\"",
		Short: "Text-to-speech pipeline for the command line",
		Long: `aispeak turns free text into spoken audio files.

It derives a short filename from the first words of the input, synthesizes
speech for the full text through OpenAI TTS or an external command, and
moves the resulting file into the documents directory.

Examples:
  aispeak "Hello, World! How are you?"        # -> storage/documents/hello_world_how_are.mp3
  aispeak --ask "What is the capital of Peru?" # Answer with a chat model, then speak the answer
  aispeak --batch utterances.txt               # Speak every line of a file
  aispeak transcribe hello_world_how_are.mp3   # Transcribe a stored clip back to text
  aispeak image "a red fox in the snow"        # Generate and save an image`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.aispeak.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.OutputDir, "output", "o", flags.OutputDir, "Directory artifacts are moved into")
	cmd.Flags().StringVar(&flags.WorkDir, "work-dir", flags.WorkDir, "Directory the provider writes into before relocation")
	cmd.Flags().StringVarP(&flags.Format, "format", "f", flags.Format, "Audio format (mp3 or wav)")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Speak utterances from file (one per line)")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Archive the documents directory and exit")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI models for the current API key")
	cmd.Flags().BoolVar(&flags.History, "history", false, "List recent syntheses and exit")
	cmd.Flags().BoolVar(&flags.NoHistory, "no-history", false, "Do not record this synthesis in the history log")

	// Speech provider flags
	cmd.Flags().StringVar(&flags.Provider, "provider", flags.Provider, "Speech provider: openai or external")
	cmd.Flags().StringVar(&flags.ExternalCommand, "external-command", "", "Command invoked as '<command> <text> <file>' by the external provider")
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	cmd.Flags().StringVar(&flags.OpenAIVoice, "openai-voice", "", "OpenAI voice: alloy, ash, coral, echo, fable, onyx, nova, sage, shimmer (default: alloy)")
	cmd.Flags().Float64Var(&flags.OpenAISpeed, "openai-speed", flags.OpenAISpeed, "OpenAI speech speed (0.25 to 4.0)")
	cmd.Flags().StringVar(&flags.OpenAIInstruction, "openai-instruction", "", "Voice instructions for gpt-4o-mini-tts model (e.g., 'speak slowly and clearly')")

	// Ask flags
	cmd.Flags().BoolVar(&flags.Ask, "ask", false, "Answer the input with a chat model first, then speak the answer")
	cmd.Flags().StringVar(&flags.AskProvider, "ask-provider", flags.AskProvider, "Answer provider: openai or gemini")
	cmd.Flags().StringVar(&flags.AskModel, "ask-model", "", "Chat model for --ask (default depends on provider)")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("speech.provider", cmd.Flags().Lookup("provider"))
	viper.BindPFlag("speech.format", cmd.Flags().Lookup("format"))
	viper.BindPFlag("speech.external_command", cmd.Flags().Lookup("external-command"))
	viper.BindPFlag("speech.openai_model", cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag("speech.openai_voice", cmd.Flags().Lookup("openai-voice"))
	viper.BindPFlag("speech.openai_speed", cmd.Flags().Lookup("openai-speed"))
	viper.BindPFlag("speech.openai_instruction", cmd.Flags().Lookup("openai-instruction"))
	viper.BindPFlag("output.documents", cmd.Flags().Lookup("output"))
	viper.BindPFlag("output.work_dir", cmd.Flags().Lookup("work-dir"))
	viper.BindPFlag("ask.provider", cmd.Flags().Lookup("ask-provider"))
	viper.BindPFlag("ask.model", cmd.Flags().Lookup("ask-model"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".aispeak" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".aispeak")
	}

	// Environment variables
	viper.SetEnvPrefix("AISPEAK")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("openai.api_key")
}

// GetOpenAIBaseURL retrieves an optional OpenAI endpoint override. The
// original setup pointed the client at an API gateway, so this stays
// configurable.
func GetOpenAIBaseURL() string {
	if url := os.Getenv("OPENAI_BASE_URL"); url != "" {
		return url
	}
	return viper.GetString("openai.base_url")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("gemini.api_key")
}
