// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/driverdoc

// driverdoc generates Markdown reference docs from module driver files.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/woozymasta/driverdoc"
)

const (
	// stdStreamPath selects stdin for input and stdout for output.
	stdStreamPath = "-"
	// defaultOutputPath is written when --output is omitted.
	defaultOutputPath = "driver.md"
)

var (
	Version    = "dev"
	Commit     = "unknown"
	BuildTime  = time.Unix(0, 0)
	URL        = "https://github.com/woozymasta/driverdoc"
	_buildTime string
)

// cliOptions describes driverdoc CLI flags.
type cliOptions struct {
	Args struct {
		Driver string `positional-arg-name:"driverfile" description:"Driver description file (.json, .yaml, .yml; \"-\" reads stdin)"`
	} `positional-args:"yes"`

	Output      string `short:"o" long:"output" description:"Output file path (\"-\" writes to stdout)" default:"driver.md"`
	InputFormat string `short:"i" long:"input-format" description:"Driver format (detected from file extension when omitted)" choice:"json" choice:"yaml"`

	RenderFlags renderFlags `group:"Render"`

	PrintTemplate bool   `long:"print-template" description:"Print built-in markdown template and exit"`
	PrintExample  string `long:"print-example" description:"Print starter driver file in selected format and exit" choice:"json" choice:"yaml"`
	Verbose       bool   `short:"v" long:"verbose" description:"Log processing steps to stderr"`
	Version       bool   `short:"V" long:"version" description:"Print version information and exit"`
}

// renderFlags groups document rendering flags.
type renderFlags struct {
	TemplateName string   `short:"t" long:"template" description:"Built-in template" default:"slate"`
	TemplatePath string   `short:"f" long:"template-file" description:"Path to custom markdown template (.gotmpl)"`
	Format       string   `long:"format" description:"Output document format" choice:"md" choice:"html" default:"md"`
	Title        string   `short:"T" long:"title" description:"Document title (default: \"<type> Driver\")"`
	CatalogURL   string   `long:"catalog-url" description:"Link to published drivers list" default:"https://moduware.github.io/developer-documentation/module-drivers/"`
	Languages    []string `short:"l" long:"language" description:"Example language tab (repeatable)" default:"javascript"`
	Strict       bool     `long:"strict" description:"Reject duplicate command, argument, data field and variable names"`
}

// cliRunner executes CLI operations with custom IO streams.
type cliRunner struct {
	stdin       io.Reader
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
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes CLI logic and returns process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	return runWithIO(args, os.Stdin, stdout, stderr)
}

// runWithIO executes CLI logic with custom stdin, for tests.
func runWithIO(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	programName := strings.TrimSpace(os.Args[0])
	if programName == "" {
		programName = "driverdoc"
	}

	programName = filepath.Base(programName)
	runner := cliRunner{
		programName: programName,
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
		logger:      slog.New(slog.DiscardHandler),
	}

	return runner.run(args)
}

// run parses CLI args and maps errors to process exit codes.
func (runner *cliRunner) run(args []string) int {
	err := runner.execute(args)
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

// execute parses CLI arguments and dispatches selected action.
func (runner *cliRunner) execute(args []string) error {
	options, err := parseCLIArgs(args, runner.programName)
	if err != nil {
		return err
	}

	if options.Verbose {
		runner.logger = slog.New(slog.NewTextHandler(runner.stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	switch {
	case options.Version:
		return runner.printVersionInfo()
	case options.PrintTemplate:
		return runner.runTemplate(options.RenderFlags.TemplateName)
	case options.PrintExample != "":
		return runner.runExample(driverdoc.Format(options.PrintExample))
	}

	if strings.TrimSpace(options.Args.Driver) == "" {
		return &flags.Error{
			Type:    flags.ErrRequired,
			Message: "the required argument `driverfile` was not provided",
		}
	}

	return runner.runRender(options)
}

// runRender loads driver, renders document and writes result to file or stdout.
func (runner *cliRunner) runRender(options *cliOptions) error {
	driver, err := runner.loadDriver(options.Args.Driver, options.InputFormat)
	if err != nil {
		return err
	}

	runner.logger.Debug("driver loaded",
		"type", driver.Type,
		"version", driver.Version,
		"commands", len(driver.Commands),
		"data", len(driver.Data),
	)

	renderOptions := driverdoc.Options{
		Title:        options.RenderFlags.Title,
		CatalogURL:   options.RenderFlags.CatalogURL,
		Languages:    options.RenderFlags.Languages,
		TemplateName: options.RenderFlags.TemplateName,
		StrictNames:  options.RenderFlags.Strict,
	}

	if templatePath := options.RenderFlags.TemplatePath; templatePath != "" {
		customTemplate, err := os.ReadFile(templatePath)
		if err != nil {
			return fmt.Errorf("read template file %q: %w", templatePath, err)
		}

		renderOptions.TemplateText = string(customTemplate)
		runner.logger.Debug("custom template loaded", "path", templatePath)
	}

	rendered, err := driverdoc.Render(driver, renderOptions)
	if err != nil {
		return err
	}

	if options.RenderFlags.Format == "html" {
		rendered, err = driverdoc.RenderHTML(rendered)
		if err != nil {
			return err
		}
	}

	return runner.writeOutput(options.Output, rendered)
}

// loadDriver reads driver from file path or stdin.
func (runner *cliRunner) loadDriver(path, format string) (*driverdoc.Driver, error) {
	path = strings.TrimSpace(path)
	if path != stdStreamPath {
		driverFormat := driverdoc.Format(format)
		if format == "" {
			driverFormat = driverdoc.FormatFromPath(path)
		}

		runner.logger.Debug("loading driver", "path", path, "format", driverFormat)
		return driverdoc.LoadFileFormat(path, driverFormat)
	}

	data, err := io.ReadAll(runner.stdin)
	if err != nil {
		return nil, fmt.Errorf("read driver from stdin: %w", err)
	}

	if format == "" {
		format = string(driverdoc.FormatJSON)
	}

	runner.logger.Debug("loading driver", "path", "(stdin)", "format", format)
	return driverdoc.Load(data, driverdoc.Format(format))
}

// writeOutput writes rendered document to stdout or file.
func (runner *cliRunner) writeOutput(outputPath, rendered string) error {
	outputPath = strings.TrimSpace(outputPath)
	if outputPath == "" {
		outputPath = defaultOutputPath
	}

	if outputPath == stdStreamPath {
		if _, err := io.WriteString(runner.stdout, rendered); err != nil {
			return fmt.Errorf("write document to stdout: %w", err)
		}

		return nil
	}

	if err := os.WriteFile(outputPath, []byte(rendered), 0o600); err != nil {
		return fmt.Errorf("write document file %q: %w", outputPath, err)
	}

	runner.logger.Debug("document written", "path", outputPath, "bytes", len(rendered))
	return nil
}

// runTemplate writes selected built-in template to stdout.
func (runner *cliRunner) runTemplate(templateName string) error {
	tpl, err := driverdoc.BuiltinTemplate(templateName)
	if err != nil {
		return fmt.Errorf("load built-in template %q: %w", templateName, err)
	}

	if _, err := io.WriteString(runner.stdout, tpl); err != nil {
		return fmt.Errorf("write template to stdout: %w", err)
	}

	return nil
}

// runExample writes starter driver file to stdout.
func (runner *cliRunner) runExample(format driverdoc.Format) error {
	data, err := driverdoc.GenerateExample(format)
	if err != nil {
		return fmt.Errorf("generate example driver: %w", err)
	}

	if _, err := runner.stdout.Write(data); err != nil {
		return fmt.Errorf("write example to stdout: %w", err)
	}

	return nil
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
	parser.Usage = "[options] <driverfile>"
	if option := parser.FindOptionByLongName("template"); option != nil {
		option.Choices = driverdoc.BuiltinTemplateNames()
	}

	parser.LongDescription = strings.TrimSpace(fmt.Sprintf(`
Generate Markdown reference documentation from a module driver description.
Reads driver from file argument or stdin ("-"); writes driver.md unless --output is set.

Examples:
> $ %s moduware.module.led.driver.json
> $ %s -o docs/led.md --title "LED Module" driver.yaml
> $ cat driver.json | %s -o - -
> $ %s --format html -o led.html driver.json
> $ %s --print-example yaml > driver.yaml
`, programName, programName, programName, programName, programName))

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
