// =============================================================================
// WinBag2Hiopos - Watch Command
// =============================================================================
//
// This file defines the 'watch' command, the long-running mode that replaces
// the old folder-monitor service. It observes the input folder for filesystem
// events and triggers the export or import pipeline when a batch is ready.
//
// COMMAND USAGE:
//   winbag2hiopos watch
//
// EVENT HANDLING:
//   The registers copy files in over the network, which produces bursts of
//   create/write events per file. Events only arm a debounce timer; the
//   actual work happens once the folder has been quiet for the configured
//   window. All processing runs on the watch loop goroutine, so two batches
//   can never interleave writes to the same output file.
//
//   Idempotence comes from archival: a successful run moves its inputs away,
//   so a stray late event finds an incomplete batch and does nothing but log
//   which files it is still waiting for.
//
//   A failed run logs the error and leaves the inputs in place; the watcher
//   itself never exits on a processing error.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Zneed99/WinBag2Hiopos/internal/config"
	"github.com/Zneed99/WinBag2Hiopos/internal/pos"
	"github.com/Zneed99/WinBag2Hiopos/pkg/utils"
)

// watchCmd represents the 'watch' command.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the input folder and process batches as they arrive",
	Long: `The watch command runs until interrupted. Whenever the input folder has
been quiet for the debounce window it checks for work:

  - If the complete set of mandatory register exports is present, the export
    pipeline runs and the consumed files are archived.
  - If the accounting trigger file (pcs.adm) is present, the import pipeline
    runs and the trigger file is archived.

Processing errors are logged and the watcher keeps running.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		return runWatch(cfg, log)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// runWatch is the watch loop. It returns when the process is interrupted.
func runWatch(cfg *config.Config, log *logrus.Logger) error {
	if _, err := os.Stat(cfg.InputDir); err != nil {
		return fmt.Errorf("input folder is not accessible: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(cfg.InputDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", cfg.InputDir, err)
	}

	log.Infof("monitoring folder: %s", cfg.InputDir)

	// The timer is armed by events and drained by the processing branch.
	debounce := time.NewTimer(cfg.Debounce())
	if !debounce.Stop() {
		<-debounce.C
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			log.Debugf("file event: %s", event)
			resetDebounce(debounce, cfg.Debounce())

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnf("watcher error: %v", err)

		case <-debounce.C:
			processPending(cfg, log)

		case <-interrupt:
			log.Info("stopped monitoring")
			return nil
		}
	}
}

// resetDebounce re-arms the timer. A fire that has already landed in the
// channel but was not consumed yet is drained first, so a burst of events
// straddling the window cannot deliver a stale extra trigger.
func resetDebounce(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}

// processPending checks the folder for runnable work and executes it. Any
// failure is logged and swallowed so the watcher stays alive.
func processPending(cfg *config.Config, log *logrus.Logger) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("processing panicked: %v", r)
		}
	}()

	// Import first: the trigger file is a single self-contained unit of work
	// and must not be mistaken for part of an export batch.
	trigger := filepath.Join(cfg.InputDir, cfg.ImportTrigger)
	if utils.Exists(trigger) {
		log.Infof("accounting file present, running import")
		if err := runImport(cfg, log, trigger, true); err != nil {
			log.Errorf("import failed: %v", err)
		}
	}

	missing := pos.MissingRequired(cfg.InputDir, cfg.PosKeywords())
	if len(missing) > 0 {
		log.Infof("waiting for required files: %s", strings.Join(missing, ", "))
		return
	}

	log.Info("all required files are present, processing")
	if err := runExport(cfg, log, true); err != nil {
		log.Errorf("export failed: %v", err)
	}
}
