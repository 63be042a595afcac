package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	l "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gitlab.com/musicdb/musicdb/src/internal/cache"
	"gitlab.com/musicdb/musicdb/src/internal/catalog"
	"gitlab.com/musicdb/musicdb/src/internal/command"
	"gitlab.com/musicdb/musicdb/src/internal/config"
	"gitlab.com/musicdb/musicdb/src/internal/hub"
	"gitlab.com/musicdb/musicdb/src/internal/queue"
)

// snapshotFilename is the fixed name musicdb-filldb and musicdb-server both
// use inside db_dir (spec §6 calls it "dbfile").
const snapshotFilename = "dbfile"

var runCmd = &cobra.Command{
	Use:   "run [db_dir] [lib_dir]",
	Short: "Run the musicdb server",
	Args:  cobra.ExactArgs(2),
	RunE:  runServer,
}

var runArgs *config.ServerArgs

func init() {
	runArgs = config.BindServerFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	runArgs.DBDir = args[0]
	runArgs.LibDir = args[1]
	if err := runArgs.Validate(); err != nil {
		return err
	}

	if err := config.SetupLogging(runArgs.LogLevel, runArgs.LogFile); err != nil {
		return err
	}
	log := l.WithFields(l.Fields{"cmp": "musicdb-server"})

	snapshotPath := filepath.Join(runArgs.DBDir, snapshotFilename)

	var store *catalog.Store
	if runArgs.Init {
		store = catalog.NewStore(runArgs.LibDir)
	} else {
		var err error
		store, err = catalog.Load(snapshotPath)
		if err != nil {
			fmt.Println("Couldn't load database!")
			fmt.Printf("  dbfile: %s\n", snapshotPath)
			fmt.Printf("  libdir: %s\n", runArgs.LibDir)
			fmt.Printf("  err: %v\n", err)
			os.Exit(1)
		}
		store.SetLibraryRoot(runArgs.LibDir)
	}

	if runArgs.Web != "" {
		fmt.Println("Website support requires the 'website' feature to be enabled when compiling the server!")
		os.Exit(80)
	}

	if runArgs.TCP == "" {
		fmt.Println("nothing to do, not starting the server.")
		return nil
	}

	q := queue.NewFolder("root", nil)
	playing := false
	state := &command.State{Store: store, Queue: &q, Playing: &playing, SnapshotPath: snapshotPath}
	broadcaster := command.NewBroadcaster()

	covers := cache.NewCoverCache()
	getHandler := cache.NewHandler(store, covers, runArgs.EffectiveCustomFiles())

	h := hub.New(state, broadcaster, getHandler.Handle)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		if err := h.Run(ctx, &wg, runArgs.TCP); err != nil {
			log.WithError(err).Error("hub stopped")
		}
	}()

	if runArgs.Watch {
		watcher := cache.NewWatcher(store, covers)
		wg.Add(1)
		go watcher.Run(ctx, &wg)
	}

	if runArgs.AdvancedCacheSet {
		maxMiB := runArgs.AdvancedCache
		if floor := runArgs.AdvancedCacheMinMem + 128; maxMiB < floor {
			maxMiB = floor
		}
		mgr := cache.NewManager(store, &q, covers, runArgs.AdvancedCacheMinMem, maxMiB, runArgs.AdvancedCacheSongLookaheadLimit)
		wg.Add(1)
		go mgr.Run(ctx, &wg)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("shutting down")
	cancel()
	wg.Wait()
	return nil
}
