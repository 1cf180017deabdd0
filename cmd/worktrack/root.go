package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"github.com/worktrack/worktrack/pkg/apiclient"
)

type cliConfig struct {
	APIURL  string        `env:"WORKTRACK_API_URL" envDefault:"http://localhost:8080"`
	Token   string        `env:"WORKTRACK_TOKEN"`
	Timeout time.Duration `env:"WORKTRACK_TIMEOUT" envDefault:"30s"`
}

type cli struct {
	cfg cliConfig
	out io.Writer
}

// client builds the backend client and binds the bearer token to ctx.
func (c *cli) client(ctx context.Context) (*apiclient.Client, context.Context, error) {
	if c.cfg.Timeout <= 0 {
		return nil, ctx, usageError("--timeout must be positive, got %s", c.cfg.Timeout)
	}
	api, err := apiclient.New(apiclient.Options{BaseURL: c.cfg.APIURL, Timeout: c.cfg.Timeout})
	if err != nil {
		return nil, ctx, withCode(exitUsage, err)
	}
	if c.cfg.Token != "" {
		ctx = apiclient.WithToken(ctx, c.cfg.Token)
	}
	return api, ctx, nil
}

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return withCode(exitUsage, cobra.ExactArgs(n)(cmd, args))
	}
}

func newRootCmd(out io.Writer) (*cobra.Command, error) {
	c := &cli{out: out}
	if err := env.Parse(&c.cfg); err != nil {
		return nil, errors.Wrap(err, "read environment")
	}

	cmd := &cobra.Command{
		Use:           "worktrack",
		Short:         "Work tracking from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return withCode(exitUsage, err)
	})
	flags := cmd.PersistentFlags()
	flags.StringVar(&c.cfg.APIURL, "api-url", c.cfg.APIURL, "backend base URL (WORKTRACK_API_URL)")
	flags.StringVar(&c.cfg.Token, "token", c.cfg.Token, "backend bearer token (WORKTRACK_TOKEN)")
	flags.DurationVar(&c.cfg.Timeout, "timeout", c.cfg.Timeout, "request timeout")

	cmd.AddCommand(newProjectsCmd(c))
	cmd.AddCommand(newTasksCmd(c))
	cmd.AddCommand(newTimesheetsCmd(c))
	return cmd, nil
}

// cobraUsage marks the argument errors cobra raises without a hook.
func cobraUsage(err error) error {
	msg := err.Error()
	if strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "required flag") {
		return withCode(exitUsage, err)
	}
	return err
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd, err := newRootCmd(stdout)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return exitUsage
	}
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		err = cobraUsage(err)
		fmt.Fprintln(stderr, err.Error())
		return exitCode(err)
	}
	return exitOK
}

func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
