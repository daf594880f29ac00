package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch MANIFEST",
	Short: "Watch a manifest file and regenerate on change",
	Long: "Watch a YAML or JSON manifest and regenerate its icons whenever the\n" +
		"file changes. Runs until interrupted.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manifestPath := args[0]
		if _, err := os.Stat(manifestPath); err != nil {
			return fmt.Errorf("cannot watch %s: %w", manifestPath, err)
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create watcher: %w", err)
		}
		defer watcher.Close()

		// Watch the directory, not the file: editors that write via
		// rename would otherwise drop the watch.
		if err := watcher.Add(filepath.Dir(manifestPath)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", manifestPath, err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		runOnce := func() {
			if _, _, err := runBatch(ctx, manifestPath); err != nil {
				fmt.Println(errorStyle.Sprintf("✗ %v", err))
			}
		}
		runOnce()
		fmt.Println(dimStyle.Sprintf("Watching %s (ctrl-c to stop)", manifestPath))

		absTarget, err := filepath.Abs(manifestPath)
		if err != nil {
			return err
		}

		// Editors fire several events per save; coalesce them.
		var debounce *time.Timer
		defer func() {
			if debounce != nil {
				debounce.Stop()
			}
		}()
		pending := make(chan struct{}, 1)

		for {
			select {
			case <-ctx.Done():
				fmt.Println()
				fmt.Println(dimStyle.Sprint("Stopped"))
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				abs, err := filepath.Abs(event.Name)
				if err != nil || abs != absTarget {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(200*time.Millisecond, func() {
					select {
					case pending <- struct{}{}:
					default:
					}
				})
			case <-pending:
				fmt.Println(dimStyle.Sprintf("%s changed, regenerating", manifestPath))
				runOnce()
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				fmt.Println(errorStyle.Sprintf("watch error: %v", err))
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
