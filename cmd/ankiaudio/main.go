package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/ankiaudio/internal/anki"
	"codeberg.org/snonux/ankiaudio/internal/batch"
	"codeberg.org/snonux/ankiaudio/internal/blacklist"
	"codeberg.org/snonux/ankiaudio/internal/cli"
	"codeberg.org/snonux/ankiaudio/internal/commit"
	"codeberg.org/snonux/ankiaudio/internal/field"
	"codeberg.org/snonux/ankiaudio/internal/gui"
	"codeberg.org/snonux/ankiaudio/internal/lookup"
	"codeberg.org/snonux/ankiaudio/internal/models"
	"codeberg.org/snonux/ankiaudio/internal/processor"
	"codeberg.org/snonux/ankiaudio/internal/retrieve"
	"codeberg.org/snonux/ankiaudio/internal/segment"
)

func main() {
	flags := cli.NewFlags()

	rootCmd := cli.CreateRootCommand(flags)

	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cli.GetOpenAIKey())
		return lister.ListAvailableModels()
	}

	collectionPath := flags.Collection
	if collectionPath == "" {
		collectionPath = viper.GetString("collection.path")
	}
	if collectionPath == "" {
		return fmt.Errorf("no collection given, use --collection")
	}

	col, err := anki.OpenCollection(collectionPath)
	if err != nil {
		return err
	}
	defer col.Close()

	bl, err := blacklist.Open(flags.BlacklistPath)
	if err != nil {
		return err
	}
	defer bl.Close()

	proc, err := buildProcessor(flags, col, bl)
	if err != nil {
		return err
	}

	// No note selection means interactive mode.
	if flags.NoteID == 0 && flags.CardID == 0 && flags.BatchFile == "" {
		app := gui.New(&gui.Config{
			Collection: col,
			Processor:  proc,
		})
		app.Run()
		return nil
	}

	ctx := context.Background()

	if flags.BatchFile != "" {
		return runBatch(ctx, proc, flags.BatchFile)
	}

	var result processor.Result
	switch {
	case flags.Side:
		side := anki.SideQuestion
		if flags.Answer {
			side = anki.SideAnswer
		}
		if proc.ReviewSide {
			// Interactive side review needs the dialog session.
			result, err = gui.RunReviewSession(proc, col.Media(), func(ctx context.Context) (processor.Result, error) {
				return proc.DownloadForSide(ctx, flags.CardID, side)
			})
		} else {
			result, err = proc.DownloadForSide(ctx, flags.CardID, side)
		}
	case flags.Manual:
		result, err = gui.RunReviewSession(proc, col.Media(), func(ctx context.Context) (processor.Result, error) {
			return proc.DownloadForNote(ctx, flags.NoteID, true)
		})
	default:
		result, err = proc.DownloadForNote(ctx, flags.NoteID, false)
	}
	if err != nil {
		return err
	}
	printResult(result)
	return nil
}

// buildProcessor wires the lookup sources, resolver and committer for one
// collection.
func buildProcessor(flags *cli.Flags, col *anki.Collection, bl *blacklist.Store) (*processor.Processor, error) {
	apiKey := cli.GetOpenAIKey()

	sources := lookup.Sources{}
	if apiKey != "" {
		speech, err := lookup.NewOpenAISpeech(&lookup.TTSConfig{
			OpenAIKey:   apiKey,
			Model:       flags.OpenAIModel,
			Voice:       flags.OpenAIVoice,
			Speed:       flags.OpenAISpeed,
			Format:      flags.AudioFormat,
			EnableCache: viper.GetBool("audio.enable_cache"),
			CacheDir:    viper.GetString("audio.cache_dir"),
		})
		if err != nil {
			return nil, err
		}
		sources.Speech = speech
	}

	if url := endpointURL(flags.DictionaryURL, "lookup.dictionary_url"); url != "" {
		dict, err := lookup.NewDictionaryClient(&lookup.DictionaryConfig{BaseURL: url}, nil)
		if err != nil {
			return nil, err
		}
		sources.Dictionary = dict
	}

	if url := endpointURL(flags.ClipURL, "lookup.clip_url"); url != "" {
		clip, err := lookup.NewClipClient(&lookup.ClipConfig{
			BaseURL:      url,
			RejectHashes: viper.GetStringSlice("lookup.clip_reject_hashes"),
		}, nil, bl)
		if err != nil {
			return nil, err
		}
		sources.Clip = clip
	}

	var seg segment.Segmenter
	if apiKey != "" {
		seg = segment.NewAuto(segment.NewOpenAISegmenter(apiKey))
	} else {
		seg = segment.NewAuto(nil)
	}

	fieldCfg := cli.FieldConfig()
	resolver := field.NewResolver(fieldCfg, seg)
	aggregator := retrieve.NewAggregator(sources, cli.DecisionPolicy())
	committer := commit.NewCommitter(col.Media(), bl)

	proc := processor.New(col, fieldCfg, resolver, aggregator, committer)
	proc.LangOverride = flags.Language
	proc.ReviewSide = viper.GetBool("review.side")
	return proc, nil
}

func endpointURL(flagValue, viperKey string) string {
	if flagValue != "" {
		return flagValue
	}
	return viper.GetString(viperKey)
}

// runBatch runs the automatic note flow over every note id in the file.
func runBatch(ctx context.Context, proc *processor.Processor, batchFile string) error {
	ids, err := batch.ReadNoteList(batchFile)
	if err != nil {
		return err
	}

	completed := 0
	empty := 0
	errorCount := 0
	for i, id := range ids {
		fmt.Printf("\nProcessing %d/%d: note %d\n", i+1, len(ids), id)
		result, err := proc.DownloadForNote(ctx, id, false)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error processing note %d: %v\n", id, err)
			errorCount++
			continue
		}
		switch result.Status {
		case processor.StatusEmpty:
			empty++
		default:
			completed++
			printResult(result)
		}
	}

	fmt.Printf("\n=== Batch Summary ===\n")
	fmt.Printf("Total notes: %d\n", len(ids))
	fmt.Printf("Completed: %d\n", completed)
	fmt.Printf("Nothing downloaded: %d\n", empty)
	if errorCount > 0 {
		fmt.Printf("Errors: %d\n", errorCount)
	}
	fmt.Printf("=====================\n")
	return nil
}

func printResult(result processor.Result) {
	switch result.Status {
	case processor.StatusEmpty:
		fmt.Println("Nothing downloaded.")
	case processor.StatusCancelled:
		// Quietly drop out on user cancel.
	case processor.StatusCompleted:
		o := result.Outcome
		fmt.Printf("Done: %d added, %d kept, %d deleted, %d blacklisted\n",
			o.Added, o.Kept, o.Deleted, o.Blacklisted)
		if o.Failed > 0 {
			fmt.Printf("Failed entries: %d\n", o.Failed)
		}
	}
}
