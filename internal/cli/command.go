package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/ankiaudio/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ankiaudio",
		Short: "Pronunciation audio downloader for Anki collections",
		Long: `ankiaudio downloads pronunciation audio for Anki notes.

It finds the audio fields of a note by naming convention, retrieves
candidate pronunciations from a speech-synthesis service, a dictionary
and a pronunciation-clip catalogue, and writes the ones you approve back
into the collection.

Examples:
  ankiaudio --collection ~/Anki/User/collection.anki2          # GUI
  ankiaudio --collection col.anki2 --note-id 1384031456722     # whole note
  ankiaudio --collection col.anki2 --card-id 138... --side     # visible side
  ankiaudio --collection col.anki2 --batch notes.txt           # many notes`,
		Args:    cobra.NoArgs,
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	home, _ := os.UserHomeDir()
	defaultBlacklist := filepath.Join(home, ".local", "state", "ankiaudio", "blacklist.db")

	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.ankiaudio.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.Collection, "collection", "c", "", "Path to collection.anki2")
	cmd.Flags().Int64Var(&flags.NoteID, "note-id", 0, "Note to download audio for")
	cmd.Flags().Int64Var(&flags.CardID, "card-id", 0, "Card to download audio for (with --side)")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Process note ids from file (one per line)")
	cmd.Flags().BoolVar(&flags.Side, "side", false, "Download only for the visible card side")
	cmd.Flags().BoolVar(&flags.Answer, "answer", false, "Treat the answer side as visible (with --side)")
	cmd.Flags().BoolVar(&flags.Manual, "manual", false, "Edit resolved text before downloading")
	cmd.Flags().StringVarP(&flags.Language, "language", "l", "", "Language code override (default: detect from deck/note type)")
	cmd.Flags().StringVarP(&flags.AudioFormat, "format", "f", flags.AudioFormat, "Audio format (wav or mp3)")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI models for the current API key")
	cmd.Flags().StringVar(&flags.BlacklistPath, "blacklist", defaultBlacklist, "Blacklist database path")

	// OpenAI flags
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	cmd.Flags().StringVar(&flags.OpenAIVoice, "openai-voice", flags.OpenAIVoice, "OpenAI voice: alloy, ash, ballad, coral, echo, fable, onyx, nova, sage, shimmer, verse")
	cmd.Flags().Float64Var(&flags.OpenAISpeed, "openai-speed", flags.OpenAISpeed, "OpenAI speech speed (0.25 to 4.0)")

	// Lookup endpoint flags
	cmd.Flags().StringVar(&flags.DictionaryURL, "dictionary-url", "", "Dictionary-audio endpoint (English words)")
	cmd.Flags().StringVar(&flags.ClipURL, "clip-url", "", "Pronunciation-clip endpoint (reading lookups)")

	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("audio.format", cmd.Flags().Lookup("format"))
	viper.BindPFlag("audio.openai_model", cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag("audio.openai_voice", cmd.Flags().Lookup("openai-voice"))
	viper.BindPFlag("audio.openai_speed", cmd.Flags().Lookup("openai-speed"))
	viper.BindPFlag("lookup.dictionary_url", cmd.Flags().Lookup("dictionary-url"))
	viper.BindPFlag("lookup.clip_url", cmd.Flags().Lookup("clip-url"))
	viper.BindPFlag("blacklist.path", cmd.Flags().Lookup("blacklist"))
	viper.BindPFlag("collection.path", cmd.Flags().Lookup("collection"))
	viper.BindPFlag("language.override", cmd.Flags().Lookup("language"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".ankiaudio" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".ankiaudio")
	}

	// Environment variables
	viper.SetEnvPrefix("ANKIAUDIO")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("audio.openai_key")
}
