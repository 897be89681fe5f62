package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"lumina/app/config"
	"lumina/service"
)

const CliVersion = "1.0.0"

var exit = os.Exit

func main() {
	RealMain()
}

// RealMain dispatches the command line and exits with its status.
func RealMain() {
	exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	if len(args) < 1 {
		printHelp(stdout)
		return 1
	}

	cfg := config.Load()
	logger := service.NewLogger(cfg.LogFormat, os.Stderr)

	cmd := strings.ToLower(args[0])
	switch cmd {
	case "help":
		printHelp(stdout)
	case "version":
		fmt.Fprintf(stdout, "lumina version %s\n", CliVersion)
	case "serve", "web":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var err error
		if cmd == "serve" {
			err = service.RunAPIServer(ctx, cfg, logger)
		} else {
			err = service.RunWebServer(ctx, cfg, logger)
		}
		if err != nil {
			logger.Error("server stopped", "command", cmd, "error", err)
			return 1
		}
	case "db":
		tool := &service.DBTool{Dir: cfg.DataDir, In: os.Stdin, Out: stdout}
		return tool.Run(args[1:])
	default:
		fmt.Fprintf(stdout, "Unknown command: %s\n\n", args[0])
		printHelp(stdout)
		return 1
	}
	return 0
}

func printHelp(w io.Writer) {
	fmt.Fprint(w, `Usage: lumina <command> [options]
Commands:
  help                           Display this help message.
  version                        Show version information.
  serve                          Run the blog Content API (PORT, STORE_URL, STORE_TIMEOUT).
  web                            Run the web UI against the API at LUMINA_API_URL (WEB_PORT).
  db <command>                   Maintain the embedded store in DATA_DIR (see "lumina db help").
`)
}
