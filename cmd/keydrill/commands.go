package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/keydrill/internal/config"
	"github.com/verte-zerg/keydrill/internal/generator"
	"github.com/verte-zerg/keydrill/internal/lexicon"
	"github.com/verte-zerg/keydrill/internal/logging"
	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/theme"
)

var sampleSeed int64

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newWordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "words",
		Short: "List dictionary words typeable with the key set",
		Args:  cobra.NoArgs,
		RunE:  runWordsCmd,
	}
}

func runWordsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSubcommandConfig(cmd)
	if err != nil {
		return err
	}
	lex := lexicon.Open(cfg.Dictionary, lexicon.WithMinWordLen(cfg.MinWordLen), lexicon.WithLogger(logging.Discard()))
	if lex.UsingFallback() {
		logErrf("dictionary %s unavailable; using built-in words\n", cfg.Dictionary)
	}
	words := lex.Filter(cfg.Keys)
	if len(words) == 0 {
		logErrf("%s\n", generator.NoWordsNotice)
		return nil
	}
	out := cmd.OutOrStdout()
	for _, w := range words {
		if _, err := fmt.Fprintln(out, w); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newSampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print one generated practice text",
		Args:  cobra.NoArgs,
		RunE:  runSampleCmd,
	}
	cmd.Flags().Int64Var(&sampleSeed, "seed", 0, "random seed (0 uses the clock)")
	return cmd
}

func runSampleCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSubcommandConfig(cmd)
	if err != nil {
		return err
	}
	seed := sampleSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	var words generator.WordSource
	if !cfg.Synthetic {
		words = lexicon.Open(cfg.Dictionary, lexicon.WithMinWordLen(cfg.MinWordLen), lexicon.WithLogger(logging.Discard()))
	}
	source := generator.NewSentences(generator.NewWithSource(rand.NewSource(seed)), words, generator.Options{
		Synthetic: cfg.Synthetic,
		MaxLength: cfg.MaxLength,
		MinLength: cfg.SyntheticSize,
	})
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(source.Next(cfg.Keys), " ")); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func loadSubcommandConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return resolvePracticeConfig(cmd, fileCfg)
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# keydrill configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# keys = %q     # Keys to practise
# mode = %q                 # freeplay, 1min, 5min or custom
# time = 90                        # Seconds for mode = "custom"
# theme = %q                  # light or dark
# dict = %q   # Dictionary, one word per line
# synthetic = false                # Random letter groups instead of words
# min-word-len = %d                 # Shortest dictionary word
# max-length = %d                 # Maximum length of dictionary text
# synthetic-size = %d             # Minimum letters of synthetic text

[log]
# level = %q                   # debug, info, warn, error
# format = %q                  # text or json
# file = %q
`,
		model.DefaultKeys,
		defaultMode,
		theme.Default,
		config.DefaultDictionaryPath,
		lexicon.DefaultMinWordLen,
		generator.DefaultMaxLength,
		generator.MinTextLen,
		defaultLogLevel,
		defaultLogFormat,
		config.DefaultLogPath(),
	)
}
