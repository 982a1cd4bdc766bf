// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/driverdoc

// addproducts registers product identifiers against the product API.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/woozymasta/driverdoc/registry"
)

var (
	Version    = "dev"
	Commit     = "unknown"
	BuildTime  = time.Unix(0, 0)
	URL        = "https://github.com/woozymasta/driverdoc"
	_buildTime string
)

// cliOptions describes addproducts CLI flags.
type cliOptions struct {
	Args struct {
		Type string `positional-arg-name:"type" description:"Product type, for example moduware.module.led"`
		File string `positional-arg-name:"file" description:"Newline-delimited identifiers list"`
	} `positional-args:"yes"`

	CredentialFlags credentialFlags `group:"Credentials"`
	APIFlags        apiFlags        `group:"Product API"`

	Verbose bool `short:"v" long:"verbose" description:"Log token and request details to stderr"`
	Version bool `short:"V" long:"version" description:"Print version information and exit"`
}

// credentialFlags groups client credential sources.
type credentialFlags struct {
	Path   string `short:"c" long:"credentials" description:"Client credentials file (.json, .yaml, .toml)" default:"./repository-user.json"`
	ID     string `long:"client-id" description:"Client id, overrides credentials file" env:"ADDPRODUCTS_CLIENT_ID"`
	Secret string `long:"client-secret" description:"Client secret, overrides credentials file" env:"ADDPRODUCTS_CLIENT_SECRET"`
}

// apiFlags groups token and product endpoint settings.
type apiFlags struct {
	TokenURL string        `long:"token-url" description:"Token endpoint" default:"https://moduware.au.auth0.com/oauth/token"`
	Audience string        `long:"audience" description:"Requested token audience" default:"https://api.moduware.com"`
	APIURL   string        `long:"api-url" description:"Product API base URL" default:"https://api.moduware.com"`
	Rate     float64       `long:"rate" description:"Registration requests per second (0 disables pacing)" default:"5"`
	Timeout  time.Duration `long:"timeout" description:"Timeout of a single HTTP exchange" default:"30s"`
}

// cliRunner executes CLI operations with custom IO streams.
type cliRunner struct {
	stdout      io.Writer
	stderr      io.Writer
	programName string
	logger      *slog.Logger
}

func init() {
	if _buildTime != "" {
		if t, err := time.Parse(time.RFC3339, _buildTime); err == nil {
			BuildTime = t.UTC()
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes CLI logic and returns process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	programName := strings.TrimSpace(os.Args[0])
	if programName == "" {
		programName = "addproducts"
	}

	runner := cliRunner{
		programName: filepath.Base(programName),
		stdout:      stdout,
		stderr:      stderr,
		logger:      slog.New(slog.DiscardHandler),
	}

	return runner.run(ctx, args)
}

// run parses CLI args and maps errors to process exit codes.
func (runner *cliRunner) run(ctx context.Context, args []string) int {
	err := runner.execute(ctx, args)
	if err == nil {
		return 0
	}

	var flagErr *flags.Error
	if errors.As(err, &flagErr) {
		if flagErr.Type == flags.ErrHelp {
			writeCLIError(runner.stdout, err)
			return 0
		}

		writeCLIError(runner.stderr, err)
		return 2
	}

	writeCLIError(runner.stderr, err)
	return 1
}

// execute parses CLI arguments and runs registration.
func (runner *cliRunner) execute(ctx context.Context, args []string) error {
	options, err := parseCLIArgs(args, runner.programName)
	if err != nil {
		return err
	}

	if options.Verbose {
		runner.logger = slog.New(slog.NewTextHandler(runner.stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	if options.Version {
		return runner.printVersionInfo()
	}

	if strings.TrimSpace(options.Args.Type) == "" || strings.TrimSpace(options.Args.File) == "" {
		return &flags.Error{
			Type:    flags.ErrRequired,
			Message: "the required arguments `type` and `file` were not provided",
		}
	}

	return runner.runRegister(ctx, options)
}

// runRegister registers every identifier from list and prints statistics.
func (runner *cliRunner) runRegister(ctx context.Context, options *cliOptions) error {
	product, err := registry.ParseProduct(options.Args.Type)
	if err != nil {
		return err
	}

	creds, err := runner.loadCredentials(options.CredentialFlags)
	if err != nil {
		return err
	}

	client := registry.NewClient(ctx, creds, registry.Config{
		TokenURL:          options.APIFlags.TokenURL,
		Audience:          options.APIFlags.Audience,
		APIURL:            options.APIFlags.APIURL,
		RequestsPerSecond: options.APIFlags.Rate,
		Timeout:           options.APIFlags.Timeout,
	}, runner.logger)

	if err := client.Authenticate(); err != nil {
		return err
	}

	ids, err := registry.ReadIdentifiers(options.Args.File)
	if err != nil {
		return err
	}

	runner.logger.Debug("registering products", "type", product.Type, "category", product.Category, "count", len(ids))

	tally, err := registry.Process(ctx, client, ids, product, runner.stdout)
	if _, writeErr := tally.WriteTo(runner.stdout); writeErr != nil && err == nil {
		err = fmt.Errorf("write statistics: %w", writeErr)
	}

	return err
}

// loadCredentials reads credentials file unless both values come from flags or env.
func (runner *cliRunner) loadCredentials(flagValues credentialFlags) (registry.Credentials, error) {
	override := registry.Credentials{
		ID:     strings.TrimSpace(flagValues.ID),
		Secret: strings.TrimSpace(flagValues.Secret),
	}

	if override.ID != "" && override.Secret != "" {
		runner.logger.Debug("using client credentials from flags")
		return override, nil
	}

	creds, err := registry.LoadCredentials(flagValues.Path)
	if err != nil {
		return registry.Credentials{}, err
	}

	if override.ID != "" {
		creds.ID = override.ID
	}

	if override.Secret != "" {
		creds.Secret = override.Secret
	}

	runner.logger.Debug("client credentials loaded", "path", flagValues.Path)
	return creds, nil
}

// writeCLIError writes a plain-text CLI error line to the selected stream.
func writeCLIError(output io.Writer, err error) {
	if err == nil {
		return
	}

	//nolint:gosec // CLI writes plain-text diagnostics to terminal streams, not HTTP responses.
	_, _ = fmt.Fprintln(output, err.Error())
}

// parseCLIArgs parses CLI arguments into options.
func parseCLIArgs(args []string, programName string) (*cliOptions, error) {
	options := &cliOptions{}

	parser := flags.NewParser(options, flags.HelpFlag)
	parser.Name = programName
	parser.Usage = "[options] <type> <file>"
	parser.LongDescription = strings.TrimSpace(fmt.Sprintf(`
Register product identifiers with the product API.
Each line of <file> is one identifier; identifiers are lower-cased and blank lines skipped.
Product category is the second dot-separated segment of <type> and must be module or gateway.

Examples:
> $ %s moduware.module.led uuids.txt
> $ %s -c credentials.toml --rate 2 moduware.gateway.tachyon gateways.txt
`, programName, programName))

	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}

	return options, nil
}

func (runner *cliRunner) printVersionInfo() error {
	_, err := fmt.Fprintf(runner.stdout, `url:      %s
file:     %s
version:  %s
commit:   %s
built:    %s
`, URL, os.Args[0], Version, Commit, BuildTime)
	return err
}
