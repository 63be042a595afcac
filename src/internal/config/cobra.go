package config

import "github.com/spf13/cobra"

// BindServerFlags registers musicdb-server's flags on cmd and returns the
// ServerArgs they will populate on Execute. Positional args (db_dir, lib_dir)
// are read from cobra's Args in the caller's RunE, not bound here.
func BindServerFlags(cmd *cobra.Command) *ServerArgs {
	a := DefaultServerArgs()

	cmd.Flags().BoolVar(&a.Init, "init", false, "skip reading the dbfile (it doesn't exist yet)")
	cmd.Flags().StringVar(&a.TCP, "tcp", "", "address for tcp connections to the server")
	cmd.Flags().StringVar(&a.Web, "web", "", "address for the web control UI (requires the web feature)")

	cmd.Flags().StringVar(&a.CustomFiles, "custom-files", "", "allow clients to access files in this directory (defaults to lib_dir if the flag is present with no value)")
	cmd.Flags().Lookup("custom-files").NoOptDefVal = " "

	cmd.Flags().Uint64Var(&a.AdvancedCache, "advanced-cache", 0, "max available system memory (MiB) above which more songs are cached ahead of time")
	cmd.Flags().Uint64Var(&a.AdvancedCacheMinMem, "advanced-cache-min-mem", a.AdvancedCacheMinMem, "drop cached songs once available memory (MiB) falls below this")
	cmd.Flags().IntVar(&a.AdvancedCacheSongLookaheadLimit, "advanced-cache-song-lookahead-limit", a.AdvancedCacheSongLookaheadLimit, "max number of upcoming songs to cache ahead of time")

	cmd.Flags().BoolVar(&a.Watch, "watch", false, "invalidate cached song/cover bytes when their backing files change on disk")

	cmd.Flags().StringVar(&a.LogLevel, "log-level", a.LogLevel, "logrus level (trace, debug, info, warn, error)")
	cmd.Flags().StringVar(&a.LogFile, "log-file", "", "write logs to this file instead of stderr")

	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		a.CustomFilesSet = cmd.Flags().Changed("custom-files")
		a.AdvancedCacheSet = cmd.Flags().Changed("advanced-cache")
	}

	return &a
}
