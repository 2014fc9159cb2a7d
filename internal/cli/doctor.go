package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"huemcp/internal/domain"
	"huemcp/internal/tooling"
)

// DoctorOptions holds options for the doctor command.
type DoctorOptions struct {
	Config domain.Config
	Pull   bool // Pull the openhue CLI image via the Docker Engine API
}

// DoctorResult holds the result of a health check.
type DoctorResult struct {
	Name    string
	Status  string // "pass", "fail", "warn"
	Message string
}

// imageEnsurer is the slice of the image provisioner doctor needs; tests
// inject a fake instead of talking to a Docker daemon.
type imageEnsurer interface {
	EnsureImage(ctx context.Context, ref string) error
	Close() error
}

// Injection points for tests.
var (
	lookPathFunc       = exec.LookPath
	statFunc           = os.Stat
	newProvisionerFunc = func() (imageEnsurer, error) { return tooling.NewDockerImageProvisioner() }
)

// RunDoctor checks the environment the tool executor depends on: the
// container runtime binary, the openhue config directory populated by the
// CLI's own setup flow, and optionally the CLI image itself.
// Returns exit code (0 for healthy, 1 for issues found).
func RunDoctor(opts DoctorOptions, stdout, stderr io.Writer) int {
	fmt.Fprintf(stdout, "Running huemcp health checks...\n\n")

	results := []DoctorResult{}

	// Check 1: container runtime binary is on PATH
	if path, err := lookPathFunc(opts.Config.Runtime); err != nil {
		results = append(results, DoctorResult{
			Name:    "Runtime",
			Status:  "fail",
			Message: fmt.Sprintf("%s not found on PATH", opts.Config.Runtime),
		})
	} else {
		results = append(results, DoctorResult{
			Name:    "Runtime",
			Status:  "pass",
			Message: fmt.Sprintf("%s available: %s", opts.Config.Runtime, path),
		})
	}

	// Check 2: openhue config directory exists
	configDirOK := false
	if _, err := statFunc(opts.Config.ConfigDir); err != nil {
		results = append(results, DoctorResult{
			Name:    "Config dir",
			Status:  "fail",
			Message: fmt.Sprintf("openhue config directory not found: %s (run the CLI setup first)", opts.Config.ConfigDir),
		})
	} else {
		configDirOK = true
		results = append(results, DoctorResult{
			Name:    "Config dir",
			Status:  "pass",
			Message: fmt.Sprintf("openhue config directory exists: %s", opts.Config.ConfigDir),
		})
	}

	// Check 3: bridge credentials file written by the CLI's setup flow
	if configDirOK {
		credPath := filepath.Join(opts.Config.ConfigDir, "config.yaml")
		if _, err := statFunc(credPath); err != nil {
			results = append(results, DoctorResult{
				Name:    "Bridge config",
				Status:  "warn",
				Message: fmt.Sprintf("no bridge configuration at %s; pair the bridge with the CLI setup", credPath),
			})
		} else {
			results = append(results, DoctorResult{
				Name:    "Bridge config",
				Status:  "pass",
				Message: "bridge configuration present",
			})
		}
	}

	// Check 4 (optional): pull the CLI image. Also proves the daemon is
	// reachable, since the pull is the first round trip to the engine.
	if opts.Pull {
		results = append(results, pullImage(opts.Config.Image))
	}

	return printResults(results, stdout, stderr)
}

func pullImage(ref string) DoctorResult {
	prov, err := newProvisionerFunc()
	if err != nil {
		return DoctorResult{
			Name:    "Image",
			Status:  "fail",
			Message: fmt.Sprintf("could not create Docker client: %v", err),
		}
	}
	defer prov.Close()

	if err := prov.EnsureImage(context.Background(), ref); err != nil {
		return DoctorResult{
			Name:    "Image",
			Status:  "fail",
			Message: fmt.Sprintf("could not pull %s: %v", ref, err),
		}
	}
	return DoctorResult{
		Name:    "Image",
		Status:  "pass",
		Message: fmt.Sprintf("image %s available", ref),
	}
}

func printResults(results []DoctorResult, stdout, stderr io.Writer) int {
	code := 0
	for _, r := range results {
		marker := "✓"
		switch r.Status {
		case "fail":
			marker = "✗"
			code = 1
		case "warn":
			marker = "!"
		}
		fmt.Fprintf(stdout, "  %s %-14s %s\n", marker, r.Name, r.Message)
	}
	if code != 0 {
		fmt.Fprintf(stderr, "\nIssues found. Fix the failures above and re-run `huemcp doctor`.\n")
	} else {
		fmt.Fprintf(stdout, "\nAll checks passed.\n")
	}
	return code
}
