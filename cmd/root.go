// Package cmd implements the CLI commands for htmlmd using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/htmlmd/internal/config"
)

// flagKeys maps command-line flags onto configuration keys.
var flagKeys = map[string]string{
	"format":                   "format",
	"output-dir":               "output_dir",
	"main-content":             "main_content",
	"jobs":                     "jobs",
	"log-level":                "log_level",
	"heading-style":            "heading_style",
	"hr":                       "hr",
	"bullet-list-marker":       "bullet_list_marker",
	"code-block-style":         "code_block_style",
	"fence":                    "fence",
	"em-delimiter":             "em_delimiter",
	"strong-delimiter":         "strong_delimiter",
	"link-style":               "link_style",
	"link-reference-style":     "link_reference_style",
	"br":                       "br",
	"strip-tracking-images":    "strip_tracking_images",
	"tracking-image-regex":     "tracking_image_regex",
	"strip-images-without-alt": "strip_images_without_alt",
	"remove-selector":          "remove_selectors",
	"keep-selector":            "keep_selectors",
}

// NewRootCommand builds the htmlmd command tree around a fresh configuration.
func NewRootCommand() *cobra.Command {
	v := viper.New()
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "htmlmd [input...]",
		Short: "htmlmd converts HTML documents and emails into Markdown",
		Long: `htmlmd converts HTML into clean CommonMark-style Markdown.

Inputs are files, http(s) URLs, or "-" for stdin (the default). Markdown is
written to stdout, or one file per input with --output-dir.

Usage:
  htmlmd [input...] [flags]
  htmlmd convert [input...] [flags]`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(v, cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, v, args)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default: $XDG_CONFIG_HOME/htmlmd/config.*)")
	addFlags(flags)
	for flag, key := range flagKeys {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(newConvertCommand(v))
	return rootCmd
}

func addFlags(flags *pflag.FlagSet) {
	defaults := make(map[string]any)
	for _, o := range config.GetConfigOptions() {
		defaults[o.Key] = o.Default
	}
	str := func(key string) string { return defaults[key].(string) }

	// Pipeline flags.
	flags.String("format", str("format"), "Output format: md, json or pdf")
	flags.String("output-dir", "", "Write one file per input to this directory instead of stdout")
	flags.Bool("main-content", false, "Convert only the <main>, <article> or <body> element")
	flags.IntP("jobs", "j", defaults["jobs"].(int), "Number of inputs converted concurrently")
	flags.String("log-level", str("log_level"), "Log messages including and over the specified level: trace, debug, info, warn, error")

	// Markdown style flags.
	flags.String("heading-style", str("heading_style"), "Heading style: atx or setext")
	flags.String("hr", str("hr"), "Thematic break text")
	flags.String("bullet-list-marker", str("bullet_list_marker"), "Bullet list marker: *, + or -")
	flags.String("code-block-style", str("code_block_style"), "Code block style: fenced or indented")
	flags.String("fence", str("fence"), "Code fence: three or more backticks or tildes")
	flags.String("em-delimiter", str("em_delimiter"), "Emphasis delimiter: _ or *")
	flags.String("strong-delimiter", str("strong_delimiter"), "Strong delimiter: ** or __")
	flags.String("link-style", str("link_style"), "Link style: inlined or referenced")
	flags.String("link-reference-style", str("link_reference_style"), "Reference link marker: full, collapsed or shortcut")
	flags.String("br", str("br"), "Text emitted before a hard line break")

	// Email cleanup flags.
	flags.Bool("strip-tracking-images", false, "Drop images recognized as tracking pixels")
	flags.String("tracking-image-regex", "", "Regex on img src replacing the built-in tracking heuristic")
	flags.Bool("strip-images-without-alt", false, "Drop images with a missing or empty alt attribute")
	flags.StringSlice("remove-selector", nil, "CSS selector of elements to drop (repeatable)")
	flags.StringSlice("keep-selector", nil, "CSS selector of elements to keep as HTML (repeatable)")
}

// setup loads the configuration, validates it and applies the log level.
func setup(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	}
	if err := config.Load(v); err != nil {
		return err
	}
	if err := config.CheckConfigValidity(v); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := logrus.ParseLevel(v.GetString("log_level"))
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)
	if v.ConfigFileUsed() != "" {
		logrus.Debugf("Using config file %s", v.ConfigFileUsed())
	}
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
