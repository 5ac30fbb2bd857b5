package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/kotoba/internal/app"
	"github.com/at-ishikawa/kotoba/internal/config"
	"github.com/at-ishikawa/kotoba/internal/dictionary"
	"github.com/at-ishikawa/kotoba/internal/export"
	"github.com/at-ishikawa/kotoba/internal/translate"
	"github.com/at-ishikawa/kotoba/internal/transliterate"
)

const dictionaryLockTimeout = 10 * time.Second

func newDictionaryCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:   "dictionary",
		Short: "Inspect and maintain dictionary files",
	}
	rootCommand.AddCommand(
		newDictionaryListCommand(),
		newDictionaryShowCommand(),
		newDictionaryConfigCommand(),
		newDictionaryCleanCommand(),
		newDictionaryTranslateCommand(),
		newDictionaryExportCommand(),
	)
	return rootCommand
}

// loadDictionaries builds a loader from the configuration. The
// transliterator is only created when entries will be loaded.
func loadDictionaries(withTransliterator bool) (*config.Config, *dictionary.Loader, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	var t transliterate.Transliterator
	if withTransliterator {
		kagome, err := transliterate.NewKagome()
		if err != nil {
			return nil, nil, fmt.Errorf("transliterate.NewKagome() > %w", err)
		}
		t = kagome
	}
	loader, err := app.NewLoader(cfg.Dictionaries, t, slog.Default())
	if err != nil {
		return nil, nil, fmt.Errorf("app.NewLoader() > %w", err)
	}
	return cfg, loader, nil
}

func newDictionaryListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the configured dictionaries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, loader, err := loadDictionaries(false)
			if err != nil {
				return err
			}
			defaultName := ""
			if source, err := loader.DefaultSource(); err == nil {
				defaultName = source.Name
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, source := range loader.Sources() {
				marker := " "
				if source.Name == defaultName {
					marker = "*"
				}
				if _, err := fmt.Fprintf(w, "%s %s\t%s\n", marker, source.Name, source.Path); err != nil {
					return err
				}
			}
			return w.Flush()
		},
	}
}

func newDictionaryShowCommand() *cobra.Command {
	var limit int
	command := &cobra.Command{
		Use:   "show [id]",
		Short: "Show the entries of a dictionary with their readings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, loader, err := loadDictionaries(true)
			if err != nil {
				return err
			}
			id := ""
			if len(args) > 0 {
				id = args[0]
			}
			set, err := loader.Load(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("loader.Load() > %w", err)
			}
			return showEntries(cmd.OutOrStdout(), set, limit)
		},
	}
	command.Flags().IntVar(&limit, "limit", 0, "maximum number of entries to show, all when 0")
	return command
}

func showEntries(output io.Writer, set *dictionary.Set, limit int) error {
	bold := color.New(color.Bold)
	w := tabwriter.NewWriter(output, 0, 4, 2, ' ', 0)
	for i, entry := range set.Entries {
		if limit > 0 && i >= limit {
			break
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			bold.Sprint(entry.Headword), entry.Reading, entry.Romaji, entry.Meaning); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(output, "%d words in %s\n", set.Len(), set.Path)
	return err
}

// dictionariesOutput is shaped like the dictionaries section of config.yml.
type dictionariesOutput struct {
	Dictionaries dictionariesSection `yaml:"dictionaries"`
}

type dictionariesSection struct {
	Default string              `yaml:"default"`
	Sources []dictionary.Source `yaml:"sources"`
}

func newDictionaryConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved dictionary configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, loader, err := loadDictionaries(false)
			if err != nil {
				return err
			}
			var output dictionariesOutput
			output.Dictionaries.Sources = loader.Sources()
			if source, err := loader.DefaultSource(); err == nil {
				output.Dictionaries.Default = source.Name
			}

			encoder := yaml.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent(2)
			if err := encoder.Encode(output); err != nil {
				return fmt.Errorf("encoder.Encode() > %w", err)
			}
			return encoder.Close()
		},
	}
}

func newDictionaryCleanCommand() *cobra.Command {
	var dryRun bool
	command := &cobra.Command{
		Use:   "clean <file>",
		Short: "Strip punctuation from headwords and drop duplicate entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			release, err := dictionary.LockFile(path, dictionaryLockTimeout)
			if err != nil {
				return err
			}
			defer release()

			raw, err := dictionary.ReadRawFile(path)
			if err != nil {
				return fmt.Errorf("dictionary.ReadRawFile() > %w", err)
			}
			cleaned, report := dictionary.Clean(raw)

			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(out, "Original: %d, Cleaned: %d, Removed: %d\n",
				report.Original, report.Cleaned, report.Removed()); err != nil {
				return err
			}
			for _, key := range report.DuplicateKeys {
				if _, err := fmt.Fprintf(out, "  dropped %s: duplicate headword\n", key); err != nil {
					return err
				}
			}
			for _, value := range report.DuplicateValues {
				if _, err := fmt.Fprintf(out, "  dropped %s: duplicate meaning\n", value); err != nil {
					return err
				}
			}

			if dryRun {
				return nil
			}
			if err := dictionary.WriteRawFile(path, cleaned); err != nil {
				return fmt.Errorf("dictionary.WriteRawFile() > %w", err)
			}
			_, err = fmt.Fprintf(out, "Written to %s\n", path)
			return err
		},
	}
	command.Flags().BoolVar(&dryRun, "dry-run", false, "report without writing the file")
	return command
}

func newDictionaryTranslateCommand() *cobra.Command {
	var dryRun bool
	command := &cobra.Command{
		Use:   "translate <file>",
		Short: "Append translations of the meanings of a dictionary file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			translation := cfg.Translation
			client := translate.NewGoogleClient(
				translation.Endpoint,
				translation.SourceLanguage,
				translation.TargetLanguage,
				uint(translation.MaxRetryAttempts),
			)
			defer func() {
				_ = client.Close()
			}()

			interval := time.Duration(translation.RequestIntervalMs) * time.Millisecond
			report, err := translate.NewUpdater(client, interval, slog.Default()).
				UpdateFile(cmd.Context(), args[0], dryRun)
			if err != nil {
				return fmt.Errorf("UpdateFile(%s) > %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(out, "Phrases: %d, Translated: %d, Failed: %d, Updated entries: %d\n",
				report.Phrases, report.Translated, len(report.Failed), report.UpdatedEntries); err != nil {
				return err
			}
			if report.Written {
				_, err = fmt.Fprintf(out, "Written to %s\n", args[0])
			}
			return err
		},
	}
	command.Flags().BoolVar(&dryRun, "dry-run", false, "translate without writing the file")
	return command
}

func newDictionaryExportCommand() *cobra.Command {
	var (
		outputDirectory string
		generatePDF     bool
	)
	command := &cobra.Command{
		Use:   "export [id]",
		Short: "Export a dictionary as a Markdown vocabulary list",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, loader, err := loadDictionaries(true)
			if err != nil {
				return err
			}
			id := ""
			if len(args) > 0 {
				id = args[0]
			}
			set, err := loader.Load(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("loader.Load() > %w", err)
			}

			if outputDirectory == "" {
				outputDirectory = cfg.Outputs.ExportDirectory
			}
			result, err := export.NewWriter(outputDirectory, cfg.Templates.VocabularyTemplate, slog.Default()).
				Write(set, generatePDF)
			if err != nil {
				return fmt.Errorf("export > %w", err)
			}

			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(out, "Vocabulary written to: %s\n", result.MarkdownPath); err != nil {
				return err
			}
			if result.PDFPath != "" {
				_, err = fmt.Fprintf(out, "PDF generated at: %s\n", filepath.Clean(result.PDFPath))
			}
			return err
		},
	}
	command.Flags().StringVar(&outputDirectory, "output", "", "directory to write to instead of outputs.export_directory")
	command.Flags().BoolVar(&generatePDF, "pdf", false, "also convert the Markdown to PDF")
	return command
}
