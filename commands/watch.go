package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/penwyp/go-session-window/internal/core/profile"
	"github.com/penwyp/go-session-window/internal/presentation/formatter"
	"github.com/penwyp/go-session-window/internal/util"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the profile file and revalidate on every change",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := initLogging(); err != nil {
		return err
	}

	path := profilesPath
	if path == "" {
		path = profile.DefaultPath()
	}
	store := profile.NewStore(path)
	if err := store.Load(); err != nil {
		return err
	}
	reportProfiles(cmd, store)

	watcher, err := profile.NewWatcher(path)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	defer watcher.Close()

	util.LogInfof("Watching %s", path)
	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (Ctrl+C to stop)\n", path)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	for {
		select {
		case event, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			util.LogDebugf("Profile file changed (%s)", event.Operation)
			if err := store.Load(); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Reload failed: %v\n", err)
				continue
			}
			reportProfiles(cmd, store)

		case <-sigCh:
			return nil
		}
	}
}

func reportProfiles(cmd *cobra.Command, store *profile.Store) {
	profiles := store.List()
	fmt.Fprintf(cmd.OutOrStdout(), "%d valid profile(s)\n", len(profiles))
	if len(profiles) > 0 {
		fmt.Fprint(cmd.OutOrStdout(), formatter.RenderProfiles(profiles))
	}
}
