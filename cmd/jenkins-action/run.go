// Package main provides the jenkins-action CLI application.
package main

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cicd-ai-toolkit/jenkins-action/pkg/config"
	"github.com/cicd-ai-toolkit/jenkins-action/pkg/errors"
	"github.com/cicd-ai-toolkit/jenkins-action/pkg/observability"
	"github.com/cicd-ai-toolkit/jenkins-action/pkg/output"
	"github.com/cicd-ai-toolkit/jenkins-action/pkg/platform"
	"github.com/cicd-ai-toolkit/jenkins-action/pkg/runner"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Trigger the Jenkins job and report its result",
		Long: `Trigger the Jenkins job, wait for it to start and, with --wait, to
finish. The build URL is published as the build_url step output. Test
results are written to the step summary and posted as a commit comment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewLoader()
			if err := loader.BindFlags(cmd.Flags()); err != nil {
				return err
			}
			cfg, err := loader.Load()
			if err != nil {
				return err
			}
			return runAction(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.String(config.FlagName(config.KeyConfig), "", "Path to a YAML configuration file")
	f.String(config.FlagName(config.KeyURL), "", "Jenkins URL")
	f.String(config.FlagName(config.KeyJobName), "", "Job to build, with folders separated by /")
	f.String(config.FlagName(config.KeyUsername), "", "Jenkins user name")
	f.String(config.FlagName(config.KeyAPIToken), "", "Jenkins API token")
	f.String(config.FlagName(config.KeyParameters), "", "Build parameters as a JSON object")
	f.String(config.FlagName(config.KeyCookies), "", "Cookies sent to Jenkins as a JSON object")
	f.Bool(config.FlagName(config.KeyWait), false, "Wait for the build to finish")
	f.String(config.FlagName(config.KeyTimeout), "", "Time to wait for the build to finish, in seconds or as a duration (default 600)")
	f.String(config.FlagName(config.KeyStartTimeout), "", "Time to wait for the build to start (default 600)")
	f.String(config.FlagName(config.KeyInterval), "", "Time between polls (default 5)")
	f.String(config.FlagName(config.KeyLogLevel), "", "Log level: debug, info, warning or error")

	return cmd
}

// runAction wires the clients from cfg and runs the build once.
func runAction(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) error {
	level, err := observability.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.ConfigError("invalid log level", err)
	}
	runID := observability.NewRunID()
	logger := observability.NewLogger(stderr, level).With("run_id", runID)
	ctx = log.WithContext(ctx, logger)

	jenkins, err := newJenkinsClient(cfg.Jenkins, logger)
	if err != nil {
		return errors.ConfigError("invalid Jenkins configuration", err)
	}

	reporter := output.NewReporter(output.ReporterOptions{
		SummaryPath: cfg.GitHub.StepSummary,
		Commenter:   newCommenter(ctx, cfg.GitHub, logger),
		SHA:         cfg.GitHub.SHA,
		Logger:      logger,
	})
	annotator := output.NewAnnotator(stdout, cfg.GitHub.OutputFile)

	opts := runner.DefaultOptions()
	opts.Request = runner.BuildRequest{Job: cfg.Build.Job, Parameters: cfg.Build.Parameters}
	opts.Wait = cfg.Build.Wait
	opts.Interval = cfg.Build.Interval.Std()
	opts.Timeout = cfg.Build.Timeout.Std()
	opts.StartTimeout = cfg.Build.StartTimeout.Std()
	opts.RunID = runID

	result, err := runner.New(jenkins, reporter, annotator, opts).Run(ctx)
	if err != nil {
		return err
	}
	logger.Debug("Run finished", "duration", result.Duration, "warnings", len(result.Warnings))
	return nil
}

func newJenkinsClient(cfg config.JenkinsConfig, logger *log.Logger) (*platform.JenkinsClient, error) {
	var opts []platform.JenkinsOption
	if cfg.HasCredentials() {
		opts = append(opts, platform.WithBasicAuth(cfg.Username, cfg.APIToken))
	} else {
		logger.Info("Username or token not provided, connecting without authentication")
	}
	if len(cfg.Cookies) > 0 {
		opts = append(opts, platform.WithCookies(cfg.Cookies))
	}
	return platform.NewJenkinsClient(cfg.URL, opts...)
}

// newCommenter returns nil when commit comments cannot be posted.
func newCommenter(ctx context.Context, cfg config.GitHubConfig, logger *log.Logger) platform.CommitCommenter {
	if !cfg.CommentsEnabled() {
		return nil
	}
	gh, err := platform.NewGitHub(ctx, platform.GitHubOptions{
		Token:      cfg.Token,
		APIURL:     cfg.APIURL,
		Repository: cfg.Repository,
	})
	if err != nil {
		logger.Warn("Commit comments disabled", "err", err)
		return nil
	}
	return gh
}
