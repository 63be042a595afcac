// Package config supplies the musicdb binaries' command-line surface
// (cobra/pflag), the GUI client's TOML config file and the shared logging
// setup (spec §6, ambient stack). Grounded on the teacher's
// cmd/muserv/{root,run,test}.go cobra wiring and internal/config/cfg.go's
// typed-struct + Validate() shape.
package config

import (
	"fmt"
	"strings"
)

// ServerArgs mirrors musicdb-server's CLI surface (spec §6):
//
//	<db_dir> <lib_dir> [--init] [--tcp <addr>] [--web <addr>]
//	  [--custom-files [path]] [--advanced-cache <MiB>]
//	  [--advanced-cache-min-mem <MiB>] [--advanced-cache-song-lookahead-limit <N>]
type ServerArgs struct {
	DBDir  string
	LibDir string

	Init bool
	TCP  string
	Web  string

	CustomFiles    string
	CustomFilesSet bool

	AdvancedCache    uint64
	AdvancedCacheSet bool

	AdvancedCacheMinMem             uint64
	AdvancedCacheSongLookaheadLimit int

	// Watch turns on the filesystem watcher that invalidates cached song/
	// cover bytes when their backing files change on disk. Off by default:
	// the original implementation assumes a static library once catalogued,
	// so this is purely additive.
	Watch bool

	LogLevel string
	LogFile  string
}

// DefaultServerArgs mirrors the Rust clap defaults.
func DefaultServerArgs() ServerArgs {
	return ServerArgs{
		AdvancedCacheMinMem:             1024,
		AdvancedCacheSongLookaheadLimit: 10,
		LogLevel:                        "info",
	}
}

// Validate checks the positional/required arguments are present.
func (a *ServerArgs) Validate() error {
	if a.DBDir == "" {
		return fmt.Errorf("db_dir is required")
	}
	if a.LibDir == "" {
		return fmt.Errorf("lib_dir is required")
	}
	return nil
}

// EffectiveCustomFiles returns the directory to expose over the get
// channel's custom-file verb: CustomFiles if set without a path defaults to
// LibDir (spec: "--custom-files [path] ... or the lib_dir if not specified"),
// and an unset flag disables the verb entirely (empty string).
func (a *ServerArgs) EffectiveCustomFiles() string {
	if !a.CustomFilesSet {
		return ""
	}
	if strings.TrimSpace(a.CustomFiles) == "" {
		return a.LibDir
	}
	return a.CustomFiles
}
