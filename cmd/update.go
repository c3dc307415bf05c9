package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"quizdoc/internal/selfupdate"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update quizdoc to the latest version",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		checker := selfupdate.NewChecker(selfupdate.WithTimeout(2 * time.Minute))
		if checkOnly, _ := cmd.Flags().GetBool("check"); checkOnly {
			return runCheckOnly(ctx, checker)
		}
		return runInstall(ctx, checker)
	},
}

func init() {
	updateCmd.Flags().Bool("check", false, "Check for an update without installing it")
}

// runInstall performs the full download-verify-swap cycle, translating the
// well-known failure modes into friendly messages.
func runInstall(ctx context.Context, checker *selfupdate.Checker) error {
	err := checker.Update(ctx, &selfupdate.UpdateInput{CurrentVersion: version},
		func(p selfupdate.UpdateProgress) { fmt.Println(p.Message) })

	switch {
	case err == nil:
		return nil
	case errors.Is(err, selfupdate.ErrDevBuild):
		fmt.Println("Cannot update a development build. Install a release build first.")
		return nil
	case errors.Is(err, selfupdate.ErrAlreadyLatest):
		fmt.Println("Already running the latest version.")
		return nil
	case os.IsPermission(err):
		return fmt.Errorf("%w\n\nTry running: sudo quizdoc update", err)
	}
	return err
}

// runCheckOnly reports whether a newer release exists without installing it.
func runCheckOnly(ctx context.Context, checker *selfupdate.Checker) error {
	res, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
	if err != nil {
		return fmt.Errorf("check for updates: %w", err)
	}
	if !res.UpdateAvailable {
		fmt.Println("Already running the latest version.")
		return nil
	}
	fmt.Printf("Update available: %s -> %s\n", version, res.LatestVersion)
	if res.ReleaseURL != "" {
		fmt.Println(res.ReleaseURL)
	}
	fmt.Println("Run \"quizdoc update\" to install it.")
	return nil
}
