// Package config resolves htmlmd settings from defaults, a config file, the
// environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/htmlmd/core/convert"
)

// Formats lists the accepted values of the format key.
var Formats = []string{"md", "json", "pdf"}

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env. Flags
// bound with BindPFlag sit above all three. A missing config file is not an
// error; an unreadable one is.
func Load(v *viper.Viper) error {
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "htmlmd"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "htmlmd"))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	// Environment variables: HTMLMD_*
	v.SetEnvPrefix("htmlmd")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Allow comma-separated env overrides for selector lists
	for _, key := range []string{"remove_selectors", "keep_selectors"} {
		v.Set(key, StringSlice(v, key))
	}
	return nil
}

// StringSlice reads key as a list, splitting a single string on commas.
func StringSlice(v *viper.Viper, key string) []string {
	var raw []string
	switch val := v.Get(key).(type) {
	case string:
		raw = strings.Split(val, ",")
	default:
		raw = v.GetStringSlice(key)
	}
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ConverterOptions maps the resolved settings onto converter options and
// validates them, reporting every invalid key at once.
func ConverterOptions(v *viper.Viper) ([]convert.Option, error) {
	opts := []convert.Option{
		convert.WithHeadingStyle(convert.HeadingStyle(strings.ToLower(v.GetString("heading_style")))),
		convert.WithHR(v.GetString("hr")),
		convert.WithBulletListMarker(v.GetString("bullet_list_marker")),
		convert.WithCodeBlockStyle(convert.CodeBlockStyle(strings.ToLower(v.GetString("code_block_style")))),
		convert.WithFence(v.GetString("fence")),
		convert.WithEmDelimiter(v.GetString("em_delimiter")),
		convert.WithStrongDelimiter(v.GetString("strong_delimiter")),
		convert.WithLinkStyle(convert.LinkStyle(strings.ToLower(v.GetString("link_style")))),
		convert.WithLinkReferenceStyle(convert.LinkReferenceStyle(strings.ToLower(v.GetString("link_reference_style")))),
		convert.WithBR(v.GetString("br")),
		convert.WithStripTrackingImages(v.GetBool("strip_tracking_images")),
		convert.WithTrackingImagePattern(v.GetString("tracking_image_regex")),
		convert.WithStripImagesWithoutAlt(v.GetBool("strip_images_without_alt")),
		convert.WithRemoveSelectors(StringSlice(v, "remove_selectors")...),
		convert.WithKeepSelectors(StringSlice(v, "keep_selectors")...),
	}
	if _, err := convert.New(opts...); err != nil {
		return nil, err
	}
	return opts, nil
}

// CheckConfigValidity validates the pipeline settings and the converter
// options together.
func CheckConfigValidity(v *viper.Viper) error {
	var result *multierror.Error

	format := strings.ToLower(v.GetString("format"))
	valid := false
	for _, f := range Formats {
		valid = valid || f == format
	}
	if !valid {
		result = multierror.Append(result, fmt.Errorf("format must be one of %s, got %q", strings.Join(Formats, ", "), format))
	}
	if v.GetInt("jobs") < 1 {
		result = multierror.Append(result, fmt.Errorf("jobs must be greater than 0"))
	}
	if _, err := logrus.ParseLevel(v.GetString("log_level")); err != nil {
		result = multierror.Append(result, fmt.Errorf("log_level: %w", err))
	}
	if _, err := ConverterOptions(v); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}
