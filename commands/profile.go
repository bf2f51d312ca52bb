package commands

import (
	"fmt"

	"github.com/penwyp/go-session-window/internal/core/constants"
	"github.com/penwyp/go-session-window/internal/core/profile"
	"github.com/penwyp/go-session-window/internal/core/window"
	"github.com/penwyp/go-session-window/internal/presentation/formatter"
	"github.com/penwyp/go-session-window/internal/util"
	"github.com/spf13/cobra"
)

var (
	profileGapFlag     string
	profileMaxSpanFlag string
	profileGraceFlag   string

	profileCmd = &cobra.Command{
		Use:   "profile",
		Short: "Manage named window specification profiles",
	}

	profileAddCmd = &cobra.Command{
		Use:   "add <name>",
		Short: "Add or replace a named profile",
		Args:  cobra.ExactArgs(1),
		RunE:  runProfileAdd,
	}

	profileListCmd = &cobra.Command{
		Use:   "list",
		Short: "List stored profiles",
		Args:  cobra.NoArgs,
		RunE:  runProfileList,
	}

	profileRemoveCmd = &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a named profile",
		Args:  cobra.ExactArgs(1),
		RunE:  runProfileRemove,
	}
)

func init() {
	profileAddCmd.Flags().StringVarP(&profileGapFlag, "gap", "g", "",
		"Inactivity gap between sessions (e.g., 5ms, 30s, 5m)")
	profileAddCmd.Flags().StringVar(&profileMaxSpanFlag, "max-span", constants.DefaultMaxSpan.String(),
		"Maximum total span of a merged session")
	profileAddCmd.Flags().StringVar(&profileGraceFlag, "grace", "0s",
		"Grace period for late-arriving records after window end")

	profileCmd.AddCommand(profileAddCmd, profileListCmd, profileRemoveCmd)
	rootCmd.AddCommand(profileCmd)
}

func openStore() (*profile.Store, error) {
	path := profilesPath
	if path == "" {
		path = profile.DefaultPath()
	}
	store := profile.NewStore(path)
	if err := store.Load(); err != nil {
		return nil, err
	}
	return store, nil
}

func runProfileAdd(cmd *cobra.Command, args []string) error {
	if err := initLogging(); err != nil {
		return err
	}

	if profileGapFlag == "" {
		return fmt.Errorf("--gap is required")
	}
	gap, err := parseDurationFlag("gap", profileGapFlag)
	if err != nil {
		return err
	}
	maxSpan, err := parseDurationFlag("max-span", profileMaxSpanFlag)
	if err != nil {
		return err
	}
	grace, err := parseDurationFlag("grace", profileGraceFlag)
	if err != nil {
		return err
	}

	w, err := window.OfInactivityGapMaxSpanAndGrace(gap, maxSpan, grace)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	name := args[0]
	if err := store.Put(profile.NewProfile(name, w)); err != nil {
		return err
	}
	if err := store.Save(); err != nil {
		return err
	}

	util.LogInfof("Saved profile %q: %s", name, w)
	fmt.Fprintf(cmd.OutOrStdout(), "Saved profile %q: %s\n", name, w)
	return nil
}

func runProfileList(cmd *cobra.Command, args []string) error {
	if err := initLogging(); err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	profiles := store.List()
	switch outputFormat {
	case "json":
		out, err := formatter.RenderProfilesJSON(profiles)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
	default:
		if len(profiles) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No profiles stored")
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.RenderProfiles(profiles))
	}
	return nil
}

func runProfileRemove(cmd *cobra.Command, args []string) error {
	if err := initLogging(); err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	name := args[0]
	if !store.Remove(name) {
		return fmt.Errorf("profile %q not found", name)
	}
	if err := store.Save(); err != nil {
		return err
	}

	util.LogInfof("Removed profile %q", name)
	fmt.Fprintf(cmd.OutOrStdout(), "Removed profile %q\n", name)
	return nil
}
