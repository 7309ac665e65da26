package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/aispeak/internal/archive"
	"codeberg.org/snonux/aispeak/internal/cli"
	"codeberg.org/snonux/aispeak/internal/history"
	"codeberg.org/snonux/aispeak/internal/models"
	"codeberg.org/snonux/aispeak/internal/picture"
	"codeberg.org/snonux/aispeak/internal/processor"
	"codeberg.org/snonux/aispeak/internal/transcribe"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	rootCmd.AddCommand(transcribeCommand(flags))
	rootCmd.AddCommand(imageCommand(flags))

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, cli.ErrUsage) {
			fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
			rootCmd.Usage()
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Handle --archive flag
	if flags.Archive {
		dest, err := archive.NewArchiver().Archive(flags.OutputDir)
		if err != nil {
			return fmt.Errorf("failed to archive documents: %w", err)
		}
		fmt.Printf("Documents directory archived to: %s\n", dest)
		return nil
	}

	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cli.GetOpenAIKey(), cli.GetOpenAIBaseURL())
		return lister.ListAvailableModels()
	}

	// Handle --history flag. No provider is needed to read the log.
	if flags.History {
		return showHistory(20)
	}

	// Missing input is a usage error and must be reported before any
	// provider setup is attempted
	if flags.BatchFile == "" && len(args) == 0 {
		return cli.ErrUsage
	}

	// Create processor
	proc, err := processor.NewProcessor(flags)
	if err != nil {
		return err
	}

	// Handle batch processing
	if flags.BatchFile != "" {
		return proc.ProcessBatch(ctx)
	}

	return proc.ProcessText(ctx, args[0])
}

func showHistory(limit int) error {
	store, err := history.Open(history.DefaultPath())
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(limit)
	if err != nil {
		return err
	}

	history.Print(entries)
	return nil
}

func transcribeCommand(flags *cli.Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcribe <audio-file>",
		Short: "Transcribe a stored audio file back to text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := transcribe.New(&transcribe.Config{
				APIKey:   cli.GetOpenAIKey(),
				BaseURL:  cli.GetOpenAIBaseURL(),
				Model:    flags.TranscribeModel,
				AudioDir: flags.OutputDir,
			})
			if err != nil {
				return err
			}

			text, err := t.Transcribe(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Println(text)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.TranscribeModel, "model", flags.TranscribeModel, "Transcription model")
	cmd.Flags().StringVarP(&flags.OutputDir, "output", "o", flags.OutputDir, "Directory audio files are looked up in")

	return cmd
}

func imageCommand(flags *cli.Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image \"prompt\"",
		Short: "Generate an image from a prompt and save it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := picture.DefaultConfig()
			config.APIKey = cli.GetOpenAIKey()
			config.BaseURL = cli.GetOpenAIBaseURL()
			config.Model = flags.ImageModel
			config.Size = flags.ImageSize
			config.Quality = flags.ImageQuality
			config.Style = flags.ImageStyle
			config.OutputDir = flags.PicturesDir

			g, err := picture.NewGenerator(config)
			if err != nil {
				return err
			}

			path, err := g.Generate(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Image saved to: %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.ImageModel, "model", flags.ImageModel, "Image model: dall-e-2 or dall-e-3")
	cmd.Flags().StringVar(&flags.ImageSize, "size", flags.ImageSize, "Image size (e.g. 1024x1024)")
	cmd.Flags().StringVar(&flags.ImageQuality, "quality", flags.ImageQuality, "Image quality: standard or hd (dall-e-3 only)")
	cmd.Flags().StringVar(&flags.ImageStyle, "style", flags.ImageStyle, "Image style: natural or vivid (dall-e-3 only)")
	cmd.Flags().StringVarP(&flags.PicturesDir, "output", "o", flags.PicturesDir, "Directory images are saved into")

	return cmd
}
