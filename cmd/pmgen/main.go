package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"

	"github.com/unkn0wn-root/pmgen/internal/catalog"
	"github.com/unkn0wn-root/pmgen/internal/collection"
	"github.com/unkn0wn-root/pmgen/internal/collection/assembler"
	"github.com/unkn0wn-root/pmgen/internal/collection/writer"
	"github.com/unkn0wn-root/pmgen/internal/config"
	"github.com/unkn0wn-root/pmgen/internal/console"
	"github.com/unkn0wn-root/pmgen/internal/errdef"
	"github.com/unkn0wn-root/pmgen/internal/restwriter"
	"github.com/unkn0wn-root/pmgen/internal/scripts"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var errStale = errors.New("collection is out of date")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.Getenv)
	stop()
	os.Exit(code)
}

type options struct {
	out           string
	httpOut       string
	configPath    string
	name          string
	baseURL       string
	wsEndpoint    string
	check         bool
	toStdout      bool
	copy          bool
	simulateLogin string
	simulateCode  int
	quiet         bool
	showVersion   bool
}

func run(
	ctx context.Context,
	args []string,
	stdout, stderr io.Writer,
	getenv func(string) string,
) int {
	fs := flag.NewFlagSet("pmgen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.out, "out", "", "Destination path for the generated collection")
	fs.StringVar(&opts.httpOut, "http-out", "", "Also write the operations as a resterm .http file")
	fs.StringVar(&opts.configPath, "config", "", "Path to a pmgen.toml, pmgen.yaml or pmgen.json settings file")
	fs.StringVar(&opts.name, "name", "", "Collection name")
	fs.StringVar(&opts.baseURL, "base-url", "", "Value of the base_url collection variable")
	fs.StringVar(&opts.wsEndpoint, "ws-endpoint", "", "Value of the ws_endpoint collection variable")
	fs.BoolVar(&opts.check, "check", false, "Exit non-zero if the collection on disk differs from the generated one")
	fs.BoolVar(&opts.toStdout, "stdout", false, "Print the collection instead of writing it")
	fs.BoolVar(&opts.copy, "copy", false, "Copy the generated collection to the clipboard")
	fs.StringVar(
		&opts.simulateLogin,
		"simulate-login",
		"",
		"Run the login test script against a saved response body and print the captured variables",
	)
	fs.IntVar(&opts.simulateCode, "simulate-status", 200, "HTTP status used with -simulate-login")
	fs.BoolVar(&opts.quiet, "quiet", false, "Suppress progress output")
	fs.BoolVar(&opts.showVersion, "version", false, "Show pmgen version")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "pmgen %s\n", version)
		fmt.Fprintf(stdout, "  commit: %s\n", commit)
		fmt.Fprintf(stdout, "  built:  %s\n", date)
		return 0
	}

	if err := generate(ctx, fs, opts, stdout, getenv); err != nil {
		if !errors.Is(err, errStale) {
			fmt.Fprintf(stderr, "pmgen: %s\n", errdef.Message(err))
		}
		return 1
	}
	return 0
}

func generate(
	ctx context.Context,
	fs *flag.FlagSet,
	opts options,
	stdout io.Writer,
	getenv func(string) string,
) error {
	settings, err := loadSettings(fs, opts, getenv)
	if err != nil {
		return err
	}
	out := settings.Output
	if out == "" {
		out = collection.DefaultOutputPath
	}

	quiet := opts.quiet || opts.toStdout || opts.simulateLogin != ""
	printer := console.New(stdout, console.Quiet(quiet))
	svc := collection.Service{
		Source: collection.StaticSource(catalog.Default()),
		Assembler: assembler.New(
			metaFromSettings(settings.Collection),
			assembler.WithProgress(printer.FolderAdded),
		),
		Verifier: scripts.NewChecker(),
		Writer:   writer.NewFileWriter(),
	}

	switch {
	case opts.simulateLogin != "":
		return simulateLogin(ctx, &svc, opts.simulateLogin, opts.simulateCode, stdout)
	case opts.check:
		return checkUpToDate(ctx, &svc, out, printer)
	case opts.toStdout:
		c, err := svc.Build(ctx)
		if err != nil {
			return err
		}
		content, err := writer.Render(c)
		if err != nil {
			return err
		}
		if opts.copy {
			if err := printer.Copy(content); err != nil {
				return errdef.Wrap(errdef.CodeUnknown, err, "copy to clipboard")
			}
		}
		return printer.Highlight(content)
	}

	c, err := svc.Generate(ctx, out, collection.WriterOptions{OverwriteExisting: true})
	if err != nil {
		return err
	}
	printer.Summary(c)
	printer.Infof("Collection written to %s", out)

	if settings.HTTPOutput != "" {
		err := restwriter.WriteDocument(ctx, c, settings.HTTPOutput, restwriter.Options{
			OverwriteExisting: true,
			HeaderComment:     fmt.Sprintf("Generated by pmgen %s", version),
		})
		if err != nil {
			return err
		}
		printer.Infof("HTTP file written to %s", settings.HTTPOutput)
	}

	if opts.copy {
		content, err := writer.Render(c)
		if err != nil {
			return err
		}
		if err := printer.Copy(content); err != nil {
			return errdef.Wrap(errdef.CodeUnknown, err, "copy to clipboard")
		}
		printer.Infof("Collection copied to clipboard")
	}
	return nil
}

// loadSettings layers the settings file, PMGEN_* env values and explicit flags.
func loadSettings(
	fs *flag.FlagSet,
	opts options,
	getenv func(string) string,
) (config.Settings, error) {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	settings, _, err := config.LoadSettings(wd, opts.configPath)
	if err != nil {
		return config.Settings{}, err
	}
	settings = config.ApplyEnv(settings, getenv)

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "out":
			settings.Output = opts.out
		case "http-out":
			settings.HTTPOutput = opts.httpOut
		case "name":
			settings.Collection.Name = opts.name
		case "base-url":
			settings.Collection.BaseURL = opts.baseURL
		case "ws-endpoint":
			settings.Collection.WSEndpoint = opts.wsEndpoint
		}
	})
	return settings, nil
}

func metaFromSettings(s config.CollectionSettings) assembler.Meta {
	return assembler.Meta{
		Name:        s.Name,
		Backend:     s.Backend,
		Description: s.Description,
		BaseURL:     s.BaseURL,
		WSEndpoint:  s.WSEndpoint,
		ExporterID:  s.ExporterID,
	}
}

func checkUpToDate(
	ctx context.Context,
	svc *collection.Service,
	out string,
	printer *console.Printer,
) error {
	c, err := svc.Build(ctx)
	if err != nil {
		return err
	}
	content, err := writer.Render(c)
	if err != nil {
		return err
	}
	diff, err := writer.Diff(out, content)
	if err != nil {
		return err
	}
	if diff == "" {
		printer.Infof("%s is up to date", out)
		return nil
	}
	printer.Diff(diff)
	printer.Warnf("%s is out of date; run pmgen to regenerate it", out)
	return errStale
}

func simulateLogin(
	ctx context.Context,
	svc *collection.Service,
	responsePath string,
	status int,
	stdout io.Writer,
) error {
	c, err := svc.Build(ctx)
	if err != nil {
		return err
	}
	login, ok := scripts.FindLogin(c)
	if !ok {
		return errdef.New(errdef.CodeScript, "collection has no login request")
	}
	body, err := os.ReadFile(responsePath)
	if err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "read response %s", responsePath)
	}

	vars := make(map[string]string, len(c.Variable))
	for _, v := range c.Variable {
		vars[v.Key] = v.Value
	}
	runner := scripts.NewRunner(0)
	res, err := runner.RunEvent(ctx, scripts.EventInput{
		Event:     login.Request.Event[0],
		Response:  scripts.Response{Code: status, Body: body},
		Variables: vars,
	})
	if errors.Is(err, scripts.ErrResponseNotJSON) {
		fmt.Fprintf(stdout, "%s: response is not valid JSON; no collection variables set\n", login.Name)
		return nil
	}
	if err != nil {
		return err
	}

	for _, line := range res.Logs {
		fmt.Fprintf(stdout, "console: %s\n", line)
	}
	if len(res.Variables) == 0 {
		fmt.Fprintf(stdout, "%s: no collection variables set\n", login.Name)
		return nil
	}
	keys := make([]string, 0, len(res.Variables))
	for k := range res.Variables {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(stdout, "%s = %s\n", k, res.Variables[k])
	}
	return nil
}
