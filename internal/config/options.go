// Package config: option table.
// Every configuration key with its default and meaning.
package config

// ConfigOption is one configuration key with its default and meaning.
type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the configuration options, their defaults and meanings.
// This is the single source of truth for default values.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		// Pipeline
		{Key: "format", Default: "md", Comment: "Output format: md, json or pdf"},
		{Key: "output_dir", Default: "", Comment: "Write one file per input here instead of stdout"},
		{Key: "main_content", Default: false, Comment: "Convert only the main, article or body element"},
		{Key: "jobs", Default: 4, Comment: "Inputs converted concurrently"},
		{Key: "log_level", Default: "warn", Comment: "Log level: trace, debug, info, warn, error"},

		// Markdown style
		{Key: "heading_style", Default: "atx", Comment: "Heading style: atx or setext"},
		{Key: "hr", Default: "* * *", Comment: "Thematic break text"},
		{Key: "bullet_list_marker", Default: "*", Comment: "Bullet marker: *, + or -"},
		{Key: "code_block_style", Default: "fenced", Comment: "Code block style: fenced or indented"},
		{Key: "fence", Default: "```", Comment: "Code fence: three or more backticks or tildes"},
		{Key: "em_delimiter", Default: "_", Comment: "Emphasis delimiter: _ or *"},
		{Key: "strong_delimiter", Default: "**", Comment: "Strong delimiter: ** or __"},
		{Key: "link_style", Default: "inlined", Comment: "Link style: inlined or referenced"},
		{Key: "link_reference_style", Default: "full", Comment: "Reference marker: full, collapsed or shortcut"},
		{Key: "br", Default: "  ", Comment: "Text emitted before a hard line break"},

		// Email cleanup
		{Key: "strip_tracking_images", Default: false, Comment: "Drop images recognized as tracking pixels"},
		{Key: "tracking_image_regex", Default: "", Comment: "Regex on img src replacing the built-in tracking heuristic"},
		{Key: "strip_images_without_alt", Default: false, Comment: "Drop images with a missing or empty alt"},
		{Key: "remove_selectors", Default: []string{}, Comment: "CSS selectors of elements to drop"},
		{Key: "keep_selectors", Default: []string{}, Comment: "CSS selectors of elements to keep as HTML"},
	}
}
