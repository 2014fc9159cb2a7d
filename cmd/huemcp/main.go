package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"huemcp/internal/cli"
	"huemcp/internal/config"
	"huemcp/internal/domain"
	"huemcp/internal/mcp"
	"huemcp/internal/tooling"
)

// buildMeta holds version and build metadata (injectable via ldflags).
type buildMeta struct {
	Version string
	GoOS    string
	GoArch  string
}

func newBuildMeta(version, goos, goarch string) buildMeta {
	if goos == "" {
		goos = runtime.GOOS
	}
	if goarch == "" {
		goarch = runtime.GOARCH
	}
	return buildMeta{Version: version, GoOS: goos, GoArch: goarch}
}

func (m buildMeta) String() string {
	return fmt.Sprintf("huemcp %s %s/%s", m.Version, m.GoOS, m.GoArch)
}

// serveFunc runs the MCP server loop. Package-level so tests can stub the
// blocking stdio loop.
var serveFunc = func(s *mcp.Server) error { return s.ServeStdio() }

func newRootCommand(bm buildMeta) *cobra.Command {
	root := &cobra.Command{
		Use:   "huemcp",
		Short: "MCP server for Philips Hue via the openhue CLI",
		Long:  "huemcp exposes lighting-control tools over the Model Context Protocol,\ntranslating each call into an openhue CLI invocation in a Docker container.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion, _ := cmd.Flags().GetBool("version"); showVersion {
				fmt.Fprintln(cmd.OutOrStdout(), bm.String())
				return nil
			}
			return runServe(cmd)
		},
	}
	root.Flags().BoolP("version", "V", false, "print version and build metadata")
	root.PersistentFlags().String("config", "", "path to a YAML config file (defaults are built in)")

	doctorCmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the container runtime and openhue configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			pull, _ := cmd.Flags().GetBool("pull")
			code := cli.RunDoctor(cli.DoctorOptions{Config: cfg, Pull: pull}, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if code != 0 {
				return exitCodeErr(code)
			}
			return nil
		},
	}
	doctorCmd.Flags().Bool("pull", false, "pull the openhue CLI image via the Docker Engine API")
	root.AddCommand(doctorCmd)

	return root
}

// resolveConfig builds the runtime config: defaults, or a YAML file when
// --config is set.
func resolveConfig(cmd *cobra.Command) (domain.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return config.Load(path)
	}
	return config.Default()
}

// runServe wires the tool catalog into the MCP server and blocks on the
// stdio loop. Stdout belongs to the protocol, so the logger writes to stderr.
func runServe(cmd *cobra.Command) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))

	registry := tooling.NewToolRegistry()
	for _, tool := range tooling.NewHueTools(cfg, &tooling.ExecCommandRunner{}) {
		if err := registry.Register(tool); err != nil {
			return fmt.Errorf("register tool: %w", err)
		}
	}

	srv := mcp.NewServer(registry, mcp.WithLogger(logger))
	logger.Info("serving MCP over stdio", "image", cfg.Image, "configDir", cfg.ConfigDir)

	if err := serveFunc(srv); err != nil {
		logger.Error("transport failed", "error", err)
		return err
	}
	return nil
}

// exitCodeErr carries a subcommand's exit code through cobra's error return.
type exitCodeErr int

func (e exitCodeErr) Error() string { return fmt.Sprintf("exit code %d", int(e)) }

// runApp executes the root command and maps the outcome to a process exit code.
func runApp(args []string) int {
	root := newRootCommand(newBuildMeta(version, "", ""))
	root.SetArgs(args[1:])
	if err := root.Execute(); err != nil {
		if code, ok := err.(exitCodeErr); ok {
			return int(code)
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// version is injectable via -ldflags "-X main.version=...".
var version = "dev"
