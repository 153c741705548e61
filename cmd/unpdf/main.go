package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"unpdf/cleanup"
	"unpdf/common"
	"unpdf/config"
	"unpdf/model"
	"unpdf/parse"
	"unpdf/render"
	"unpdf/state"
	treedump "unpdf/utils/debug"
)

// initializeAppContext prepares application context before command execution
// but after the command line has been parsed.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		if env.Rpt, err = env.Cfg.Reporter.Prepare(); err != nil {
			return ctx, fmt.Errorf("unable to prepare debug reporter: %w", err)
		}
		if len(configFile) > 0 {
			if data, err := config.Dump(env.Cfg); err == nil {
				env.Rpt.StoreData(fmt.Sprintf("config/%s", filepath.Base(configFile)), data)
			}
		}
	}
	if env.Log, err = env.Cfg.Logging.Prepare(env.Rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", getVersion()), zap.String("runtime", runtime.Version()), zap.String("hash", getGitHash()))

	if env.Rpt != nil {
		env.Log.Info("Creating debug report", zap.String("location", env.Rpt.Name()))
	}
	if len(configFile) == 0 && env.Log != nil {
		env.Log.Info("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}

	env.RestoreStdLog()

	if env.Rpt != nil {
		if er := env.Rpt.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", er))
		}
	}
	if env.Cfg != nil && len(env.Cfg.Logging.FileLogger.Destination) > 0 {
		debug.SetCrashOutput(nil, debug.CrashOptions{})
		fname := filepath.Join(filepath.Dir(env.Cfg.Logging.FileLogger.Destination), config.AppName+"-panic.log")
		if fi, er := os.Stat(fname); er == nil && fi.Size() == 0 {
			if er := os.Remove(fname); er != nil {
				err = multierr.Append(err, fmt.Errorf("unable to remove empty panic log file '%s': %w", fname, er))
			}
		}
	}
	return
}

// Ignore urfave/cli default error handling - cli.Exit() is non-transparent;
// subcommands return regular errors instead.
var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := state.EnvFromContext(ctx)
	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	state.EnvFromContext(ctx).Log.Warn("Unknown command, nothing to do", zap.String("command", name))
}

func main() {
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            config.AppName,
		Usage:           "extracts structured Markdown, text, or JSON from PDF documents",
		Version:         getVersion() + " (" + runtime.Version() + ") : " + getGitHash(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "changes program behavior to help troubleshooting, produces report archive"},
		},
		Commands: []*cli.Command{
			{
				Name:         "extract",
				Usage:        "Extracts a PDF file's content to the requested format",
				OnUsageError: usageErrorHandler,
				Action:       runExtract,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "to", Value: common.OutputFormatMarkdown.String(),
						Usage: "output `TYPE` (supported types: " + strings.Join(common.OutputFormatNames(), ", ") + ")"},
					&cli.StringFlag{Name: "pages", Value: "all", Usage: "page `SELECTION`, e.g. \"all\", \"3-10\", \"1,4,9-12\""},
					&cli.StringFlag{Name: "password", Usage: "owner/user `PASSWORD` for an encrypted PDF"},
					&cli.StringFlag{Name: "image-dir", Usage: "write extracted images to `DIR` and point image links into it"},
					&cli.BoolFlag{Name: "no-images", Usage: "skip image/resource extraction entirely"},
					&cli.BoolFlag{Name: "lenient", Usage: "keep going past unparseable pages instead of failing the whole document"},
					&cli.BoolFlag{Name: "no-parallel", Usage: "parse pages sequentially instead of concurrently"},
					&cli.StringFlag{Name: "cleanup", Value: "standard", Usage: "text cleanup `PRESET` (none, standard, aggressive)"},
					&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "continue even if destination exists, overwrite files"},
					&cli.BoolFlag{Name: "stats", Usage: "print extraction statistics to stderr after writing output"},
				},
				ArgsUsage: "SOURCE [DESTINATION]",
				CustomHelpTemplate: fmt.Sprintf(`%s
SOURCE:
    path to the PDF file to process

DESTINATION:
    output file path; if absent, the rendered content is written to STDOUT
`, cli.CommandHelpTemplate),
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
				CustomHelpTemplate: fmt.Sprintf(`%s

DESTINATION:
    file name to write configuration to, if absent - STDOUT
`, cli.CommandHelpTemplate),
			},
		},
	}

	var err error
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

func runExtract(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	source := cmd.Args().Get(0)
	if source == "" {
		return fmt.Errorf("missing required SOURCE argument")
	}
	dest := cmd.Args().Get(1)
	if !cmd.Bool("overwrite") && dest != "" {
		if _, err := os.Stat(dest); err == nil {
			return fmt.Errorf("destination %q already exists, use --overwrite", dest)
		}
	}

	format, ok := common.ParseOutputFormat(cmd.String("to"))
	if !ok {
		return fmt.Errorf("unsupported --to value %q (supported: %s)", cmd.String("to"), strings.Join(common.OutputFormatNames(), ", "))
	}

	selection, err := render.ParsePageSelection(cmd.String("pages"))
	if err != nil {
		return fmt.Errorf("invalid --pages value: %w", err)
	}

	parseOpts := env.ParseOpts
	parseOpts.Pages = selection
	parseOpts.Password = config.SecretString(cmd.String("password"))
	parseOpts.ExtractResources = !cmd.Bool("no-images")
	if cmd.Bool("lenient") {
		parseOpts.ErrorMode = parse.Lenient
	}
	if cmd.Bool("no-parallel") {
		parseOpts.Parallel = false
	}

	doc, err := parse.Parse(source, parseOpts)
	if err != nil {
		return fmt.Errorf("unable to parse %q: %w", source, err)
	}

	if env.Rpt != nil {
		env.Rpt.StoreData("document-tree.txt", []byte(treedump.DumpDocument(doc)))
	}

	renderOpts := env.RenderOpts
	renderOpts.PageSelection = selection
	renderOpts.CollectStats = cmd.Bool("stats")
	switch cmd.String("cleanup") {
	case "none":
		renderOpts.Cleanup = nil
	case "aggressive":
		opts := cleanup.AggressiveOptions()
		renderOpts.Cleanup = &opts
	default:
		opts := cleanup.StandardOptions()
		renderOpts.Cleanup = &opts
	}

	imageDir := cmd.String("image-dir")
	if imageDir != "" {
		renderOpts.ImageDir = imageDir
		renderOpts.ImagePathPrefix = imageDir + string(filepath.Separator)
	}

	content, stats, err := renderDocument(doc, format, renderOpts)
	if err != nil {
		return fmt.Errorf("unable to render %q: %w", source, err)
	}

	if imageDir != "" {
		if err := writeResources(doc, imageDir); err != nil {
			return fmt.Errorf("unable to write extracted images: %w", err)
		}
	}

	out := os.Stdout
	if dest != "" {
		f, err := os.Create(dest)
		if err != nil {
			return fmt.Errorf("unable to create destination file %q: %w", dest, err)
		}
		defer f.Close()
		out = f
	}
	if _, err := out.WriteString(content); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}

	if env.Log != nil {
		env.Log.Info("Extracted document", zap.String("source", source), zap.String("format", format.String()), zap.Int("pages", len(doc.Pages)))
	}
	if cmd.Bool("stats") && stats != nil {
		fmt.Fprintf(os.Stderr, "pages=%d paragraphs=%d tables=%d images=%d listItems=%d words=%d chars=%d headings=%d rules=%d\n",
			stats.PageCount, stats.ParagraphCount, stats.TableCount, stats.ImageCount, stats.ListItemCount, stats.WordCount, stats.CharCount, stats.HeadingCount, stats.HorizontalRuleCount)
	}
	return nil
}

func renderDocument(doc *model.Document, format common.OutputFormat, opts render.Options) (string, *render.Stats, error) {
	switch format {
	case common.OutputFormatText:
		if opts.CollectStats {
			res, err := render.ToTextWithStats(doc, opts)
			return res.Content, &res.Stats, err
		}
		content, err := render.ToText(doc, opts)
		return content, nil, err
	case common.OutputFormatJSON:
		content, err := render.ToJSON(doc, render.JSONPretty, opts.PageSelection)
		return content, nil, err
	default:
		if opts.CollectStats {
			res, err := render.ToMarkdownWithStats(doc, opts)
			return res.Content, &res.Stats, err
		}
		content, err := render.ToMarkdown(doc, opts)
		return content, nil, err
	}
}

func writeResources(doc *model.Document, dir string) error {
	if len(doc.Resources) == 0 {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for id, res := range doc.Resources {
		name := res.SuggestedFilename(id)
		if err := os.WriteFile(filepath.Join(dir, name), res.Data, 0644); err != nil {
			return err
		}
	}
	return nil
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err    error
		data   []byte
		source string
	)

	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()
	}

	if cmd.Bool("default") {
		source = "default"
		data, err = config.Prepare()
	} else {
		source = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Log.Info("Outputing configuration", zap.String("state", source), zap.String("file", fname))

	_, err = out.Write(data)
	if err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
