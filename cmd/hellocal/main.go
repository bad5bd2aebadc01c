package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"hellocal/internal/app"
	"hellocal/internal/capture"
	"hellocal/internal/config"
	appLog "hellocal/internal/log"
	"hellocal/internal/watch"
	"hellocal/internal/web"
)

const version = "0.1.0"

// flagConfig holds CLI flag values; non-empty values override the config file.
type flagConfig struct {
	calendar   string
	configPath string
	templates  string
	out        string
	listen     string
	preview    string
	force      bool
	open       bool
	serve      bool
	watch      bool
	dump       bool
}

func main() {
	flags := parseFlags()

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}
	if err := conf.ApplyEnv(); err != nil {
		appLog.Error("failed to load .env", err)
		os.Exit(1)
	}
	applyFlags(conf, flags)
	appLog.SetLevel(appLog.ParseLevel(conf.LogLevel))

	appLog.Info("hellocal starting", "version", version)
	appLog.Debug("effective config",
		"calendar", flags.calendar,
		"timezone", conf.Timezone,
		"bracket_tag", conf.BracketTag,
		"template_dir", conf.TemplateDir,
		"output_dir", conf.OutputDir,
		"serve", flags.serve,
		"watch", flags.watch,
	)

	if flags.calendar == "" {
		fmt.Fprintln(os.Stderr, "usage: hellocal -calendar <file.ics|url> [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	gen, err := app.NewGenerator(conf, flags.calendar)
	if err != nil {
		appLog.Error("invalid configuration", err)
		os.Exit(1)
	}

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, conf, gen, flags); err != nil {
		appLog.Error("hellocal failed", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, conf *config.Config, gen *app.Generator, flags flagConfig) error {
	switch {
	case flags.serve:
		return web.StartServer(ctx, conf, gen)
	case flags.watch:
		if err := watch.Validate(conf.Refresh); err != nil {
			return err
		}
		// Later passes always replace the file the first pass wrote.
		force := flags.force
		return watch.Run(ctx, conf.Refresh, func(ctx context.Context) error {
			_, err := gen.Generate(ctx, force)
			force = true
			return err
		})
	}

	if flags.dump {
		view, err := gen.Build(ctx)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(view.Context())
	}

	res, err := gen.Generate(ctx, flags.force)
	if err != nil {
		return err
	}
	fmt.Println(res.OutputPath)

	if flags.preview != "" {
		err := capture.CapturePNG(ctx, capture.Options{
			HTMLPath:   res.OutputPath,
			OutputPath: flags.preview,
			Width:      conf.Preview.Width,
			Height:     conf.Preview.Height,
			Timeout:    time.Duration(conf.Preview.TimeoutSec) * time.Second,
		})
		if err != nil {
			return err
		}
	}

	if flags.open {
		return openFile(res.OutputPath)
	}
	return nil
}

// openFile hands path to the platform's default viewer.
func openFile(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return nil
}

func applyFlags(conf *config.Config, flags flagConfig) {
	if flags.templates != "" {
		conf.TemplateDir = flags.templates
	}
	if flags.out != "" {
		conf.OutputDir = flags.out
	}
	if flags.listen != "" {
		conf.Listen = flags.listen
	}
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.calendar, "calendar", "", "Calendar file path or http(s)/webcal URL")
	flag.StringVar(&cfg.calendar, "c", "", "Shorthand for -calendar")
	flag.BoolVar(&cfg.force, "force", false, "Overwrite an existing output file")
	flag.BoolVar(&cfg.force, "f", false, "Shorthand for -force")
	flag.BoolVar(&cfg.open, "open", false, "Open the generated document in the default viewer")
	flag.BoolVar(&cfg.open, "x", false, "Shorthand for -open")
	flag.StringVar(&cfg.configPath, "config", "", "Path to config file (created with defaults when missing)")
	flag.StringVar(&cfg.templates, "templates", "", "Template directory (overrides config if set)")
	flag.StringVar(&cfg.out, "out", "", "Output directory (overrides config if set)")
	flag.BoolVar(&cfg.serve, "serve", false, "Serve a live preview over HTTP instead of writing a file")
	flag.StringVar(&cfg.listen, "listen", "", "HTTP listen address (overrides config if set)")
	flag.BoolVar(&cfg.watch, "watch", false, "Regenerate on the configured refresh schedule")
	flag.StringVar(&cfg.preview, "preview", "", "Also write a PNG screenshot of the document to this path")
	flag.BoolVar(&cfg.dump, "dump", false, "Print the template context as JSON instead of rendering")

	flag.Parse()

	return cfg
}
