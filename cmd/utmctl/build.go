package main

import (
	"context"
	"errors"
	"fmt"

	"utm-som/internal/bootstrap"
	"utm-som/internal/config"
	"utm-som/internal/links/processor"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

var (
	buildBase         string
	buildChannel      string
	buildSource       string
	buildCustomSource string
	buildCity         string
	buildAlias        string
	buildUser         string
	buildContent      string
	buildCopy         bool
	buildNoLog        bool
)

var errBaseRequired = errors.New("a base URL is required")

// buildCmd builds one link and logs it
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a tagged link and log it",
	Long: `Builds the final link for the given form values, prints it and hands the
record to the configured sinks. With --copy the record is only logged after
the clipboard write succeeds. The command waits for the sinks at most
SINK_TIMEOUT before exiting; a failed log never fails the command.

Example:
  utmctl build --base entradas.jardin.com --channel "Influencers" \
    --custom-source "Ana López" --city Sevilla --copy`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	deps, err := bootstrap.Initialize(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer deps.Cleanup()

	req := processor.LinkRequest{
		BaseURL:      buildBase,
		User:         buildUser,
		Alias:        buildAlias,
		City:         buildCity,
		Channel:      buildChannel,
		Source:       buildSource,
		CustomSource: buildCustomSource,
		Content:      buildContent,
	}

	result, err := deps.LinksProcessor.Preview(ctx, req)
	if err != nil {
		return err
	}

	if !result.Ready {
		if result.ValidationMessage != "" {
			return errors.New(result.ValidationMessage)
		}
		return errBaseRequired
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.FinalURL)

	// With --copy the record waits for a successful clipboard write.
	if buildCopy {
		if err := clipboardWriteAll(result.FinalURL); err != nil {
			logger.Error(ctx, "failed to copy link to clipboard", err)
			return nil
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Copiado al portapapeles")
	}

	if buildNoLog {
		return nil
	}

	result, err = deps.LinksProcessor.Commit(ctx, req)
	if err != nil {
		return err
	}

	if !result.Dispatched {
		return nil
	}

	waitCtx, cancel := context.WithTimeout(ctx, cfg.Sink.Timeout)
	defer cancel()
	if err := deps.Dispatcher.Wait(waitCtx); err != nil {
		logger.Warn(ctx, "record sink did not answer in time")
		return nil
	}

	notice, err := deps.LinksProcessor.Notice(ctx, req.User)
	if err != nil {
		logger.Error(ctx, "failed to read save notice", err)
		return nil
	}
	if notice.Message != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), notice.Message)
	}
	return nil
}
