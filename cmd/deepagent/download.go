package main

import (
	"context"
	"fmt"
	"time"

	"deepagent/internal/download"

	"github.com/spf13/cobra"
)

func newDownloadCmd() *cobra.Command {
	var (
		localDir string
		cliName  string
		endpoint string
		noResume bool
		timeout  time.Duration
	)

	downloadCmd := &cobra.Command{
		Use:   "download [repo]",
		Short: "Download the sentence-transformer model with huggingface-cli",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			dl := cfg.Download

			flags := cmd.Flags()
			if flags.Changed("local-dir") {
				dl.LocalDir = localDir
			}
			if flags.Changed("cli") {
				dl.CLI = cliName
			}
			if flags.Changed("endpoint") {
				dl.Endpoint = endpoint
			}
			if flags.Changed("timeout") {
				dl.Timeout = timeout
			}
			if len(args) == 1 {
				dl.Repo = args[0]
			}

			log := newLogger()
			runner := &download.Runner{
				CLI:      dl.CLI,
				Endpoint: dl.Endpoint,
				Timeout:  dl.Timeout,
				Resume:   !noResume,
			}

			req := download.Request{Repo: dl.Repo, LocalDir: dl.LocalDir}
			log.Info("Downloading %s to %s", req.Repo, req.LocalDir)
			if dl.Endpoint != "" {
				log.Info("Using endpoint %s", dl.Endpoint)
			}

			result, err := runner.Run(context.Background(), req)
			if err != nil {
				return err
			}
			log.ToolResult(dl.CLI, result.Success, result.Output, result.Duration)
			if !result.Success {
				return fmt.Errorf("download failed: %s", result.Error)
			}
			return nil
		},
	}

	downloadCmd.Flags().StringVar(&localDir, "local-dir", "./model/sentence-transformer", "Destination directory")
	downloadCmd.Flags().StringVar(&cliName, "cli", "huggingface-cli", "Download command to run")
	downloadCmd.Flags().StringVar(&endpoint, "endpoint", "", "Hugging Face endpoint, exported as HF_ENDPOINT (e.g. https://hf-mirror.com)")
	downloadCmd.Flags().BoolVar(&noResume, "no-resume", false, "Do not pass --resume-download")
	downloadCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Minute, "Maximum download time")

	return downloadCmd
}
