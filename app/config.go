package app

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type ExportCmd struct {
	ToFile string `arg:"-f,--tofile" help:"write to file instead of stdout, zstd compressed when it ends in .zst"`
}

type ImportCmd struct {
	FromFile []string `arg:"-f,--fromfile,separate" help:"read from files instead of stdin (can use flag repeatedly for multiple files, .zst files are decompressed)"`
}

type InitCfg struct{}

type Config struct {
	ExportCmd        *ExportCmd `arg:"subcommand:export" json:"-" yaml:"-" help:"export database as line structured JSON"`
	ImportCmd        *ImportCmd `arg:"subcommand:import" json:"-" yaml:"-" help:"import data from line structured JSON"`
	InitCfgCmd       *InitCfg   `arg:"subcommand:initcfg" json:"-" yaml:"-" help:"initialize relay configuration files"`
	Listen           string     `arg:"-l,--listen" default:"0.0.0.0:3334" json:"listen" yaml:"listen" help:"network address to listen on"`
	Profile          string     `arg:"-p,--profile" json:"-" yaml:"-" default:"sandboxr" help:"profile name to use for storage"`
	EventStore       string     `arg:"-e,--eventstore" default:"sqlite" json:"eventstore" yaml:"eventstore" help:"select event store backend [sqlite,postgres,badger]"`
	DSN              string     `arg:"--dsn" json:"dsn,omitempty" yaml:"dsn,omitempty" help:"database file or connection URL, defaults to a file in the profile directory"`
	Name             string     `arg:"-n,--name" json:"name" yaml:"name" default:"sandboxr relay" help:"name of relay for NIP-11"`
	Description      string     `arg:"-d,--description" json:"description" yaml:"description" help:"description of relay for NIP-11"`
	Pubkey           string     `arg:"--pubkey" json:"pubkey" yaml:"pubkey" help:"public key of relay operator"`
	Contact          string     `arg:"-c,--contact" json:"contact,omitempty" yaml:"contact,omitempty" help:"non-nostr relay operator contact details"`
	Icon             string     `arg:"-i,--icon" json:"icon" yaml:"icon" help:"icon to show on relay information pages"`
	DefaultLimit     int        `arg:"--defaultlimit" default:"100" json:"default_limit" yaml:"default_limit" help:"events sent for a REQ whose filter has no limit"`
	MaxLimit         int        `arg:"--maxlimit" default:"500" json:"max_limit" yaml:"max_limit" help:"most events sent for any REQ"`
	MaxSubscriptions int        `arg:"--maxsubs" default:"20" json:"max_subscriptions" yaml:"max_subscriptions" help:"most subscriptions per connection, 0 for no limit"`
	MaxMessageSize   int        `arg:"--maxmessage" default:"131072" json:"max_message_size" yaml:"max_message_size" help:"largest message accepted from a client, in bytes"`
	// Whitelist permits ONLY inbound connections from specified IP addresses.
	Whitelist []string `arg:"-w,--whitelist,separate" json:"ip_whitelist" yaml:"ip_whitelist" help:"IP addresses that are only allowed to access"`
	LogLevel  string   `arg:"--loglevel" default:"info" json:"-" yaml:"-" help:"set log level [off,fatal,error,warn,info,debug,trace] (can also use GODEBUG environment variable)"`
}

func isYAML(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Save writes the configuration as JSON, or YAML when the file name ends in
// .yaml or .yml.
func (c *Config) Save(filename string) (err error) {
	if c == nil {
		err = errors.New("cannot save nil relay config")
		log.E.Ln(err)
		return
	}
	var b []byte
	if isYAML(filename) {
		if b, err = yaml.Marshal(c); chk.E(err) {
			return
		}
	} else if b, err = json.MarshalIndent(c, "", "    "); chk.E(err) {
		return
	}
	if err = os.WriteFile(filename, b, 0600); chk.E(err) {
		return
	}
	return
}

func (c *Config) Load(filename string) (err error) {
	if c == nil {
		err = errors.New("cannot load into nil config")
		chk.E(err)
		return
	}
	var b []byte
	if b, err = os.ReadFile(filename); chk.E(err) {
		return
	}
	if isYAML(filename) {
		if err = yaml.Unmarshal(b, c); chk.E(err) {
			return
		}
		return
	}
	if err = json.Unmarshal(b, c); chk.E(err) {
		return
	}
	return
}
