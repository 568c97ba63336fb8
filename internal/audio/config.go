package audio

import "time"

// RewriteRule appends a query parameter when the URL host matches. This keeps
// provider-specific direct-download shims declarative: new vendors are new
// rules, not new branches.
type RewriteRule struct {
	HostContains string `yaml:"host_contains" mapstructure:"host_contains"`
	Param        string `yaml:"param" mapstructure:"param"`
}

// ExtensionRule maps a URL extension substring to a media type and filename.
type ExtensionRule struct {
	Ext      string `yaml:"ext" mapstructure:"ext"`
	MIMEType string `yaml:"mime_type" mapstructure:"mime_type"`
	Filename string `yaml:"filename" mapstructure:"filename"`
}

// Config holds audio resolver configuration.
type Config struct {
	Timeout         time.Duration   `yaml:"timeout" mapstructure:"timeout"`
	RewriteRules    []RewriteRule   `yaml:"rewrite_rules" mapstructure:"rewrite_rules"`
	ExtensionRules  []ExtensionRule `yaml:"extension_rules" mapstructure:"extension_rules"`
	DefaultMIMEType string          `yaml:"default_mime_type" mapstructure:"default_mime_type"`
	DefaultFilename string          `yaml:"default_filename" mapstructure:"default_filename"`
}

// DefaultRewriteRules covers Zoho WorkDrive share links, whose default form
// renders an HTML viewer instead of raw bytes.
func DefaultRewriteRules() []RewriteRule {
	return []RewriteRule{
		{HostContains: "workdrive", Param: "directDownload=true"},
	}
}

// DefaultExtensionRules is the ordered sniff table. Order is semantic: for a
// URL containing two extensions, the earlier entry wins.
func DefaultExtensionRules() []ExtensionRule {
	return []ExtensionRule{
		{Ext: ".mp3", MIMEType: "audio/mpeg", Filename: "audio.mp3"},
		{Ext: ".wav", MIMEType: "audio/wav", Filename: "audio.wav"},
		{Ext: ".m4a", MIMEType: "audio/mp4", Filename: "audio.m4a"},
		{Ext: ".mp4", MIMEType: "audio/mp4", Filename: "audio.mp4"},
		{Ext: ".ogg", MIMEType: "audio/ogg", Filename: "audio.ogg"},
		{Ext: ".webm", MIMEType: "audio/webm", Filename: "audio.webm"},
	}
}

// ApplyDefaults sets sensible default values for unset fields. The dominant
// input source is phone voice memos, hence the .m4a fallback.
func (c *Config) ApplyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
	if c.RewriteRules == nil {
		c.RewriteRules = DefaultRewriteRules()
	}
	if c.ExtensionRules == nil {
		c.ExtensionRules = DefaultExtensionRules()
	}
	if c.DefaultMIMEType == "" {
		c.DefaultMIMEType = "audio/mp4"
	}
	if c.DefaultFilename == "" {
		c.DefaultFilename = "audio.m4a"
	}
}
