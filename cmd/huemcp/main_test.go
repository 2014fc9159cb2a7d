package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"huemcp/internal/mcp"
)

func TestBuildMeta_WhenFieldsEmpty_ShouldFallBackToRuntime(t *testing.T) {
	bm := newBuildMeta("1.2.3", "", "")
	if bm.GoOS == "" || bm.GoArch == "" {
		t.Errorf("expected runtime defaults, got %+v", bm)
	}
	if !strings.Contains(bm.String(), "1.2.3") {
		t.Errorf("expected version in %q", bm.String())
	}
}

func TestRootCommand_WhenVersionFlag_ShouldPrintBuildMetadata(t *testing.T) {
	out := &bytes.Buffer{}
	root := newRootCommand(newBuildMeta("1.0.0", "linux", "amd64"))
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	got := out.String()
	for _, want := range []string{"huemcp", "1.0.0", "linux", "amd64"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in output %q", want, got)
		}
	}
}

func TestRootCommand_WhenNoFlags_ShouldServeOverStdio(t *testing.T) {
	oldServe := serveFunc
	defer func() { serveFunc = oldServe }()
	served := false
	serveFunc = func(s *mcp.Server) error {
		served = true
		return nil
	}

	root := newRootCommand(newBuildMeta("dev", "", ""))
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !served {
		t.Error("expected the stdio server loop to start")
	}
}

func TestRootCommand_WhenConfigFileInvalid_ShouldFailStartup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("{{nope"), 0644); err != nil {
		t.Fatal(err)
	}

	root := newRootCommand(newBuildMeta("dev", "", ""))
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", path})

	if err := root.Execute(); err == nil {
		t.Error("invalid config file should abort startup")
	}
}

func TestRunApp_WhenVersionFlag_ShouldReturnZero(t *testing.T) {
	if code := runApp([]string{"huemcp", "--version"}); code != 0 {
		t.Errorf("expected exit 0, got %d", code)
	}
}

func TestRunApp_WhenUnknownSubcommand_ShouldReturnOne(t *testing.T) {
	if code := runApp([]string{"huemcp", "frobnicate"}); code != 1 {
		t.Errorf("expected exit 1, got %d", code)
	}
}

func TestRunApp_WhenServeFails_ShouldReturnOne(t *testing.T) {
	oldServe := serveFunc
	defer func() { serveFunc = oldServe }()
	serveFunc = func(s *mcp.Server) error {
		return os.ErrClosed
	}

	if code := runApp([]string{"huemcp"}); code != 1 {
		t.Errorf("expected exit 1 on transport failure, got %d", code)
	}
}

func TestMain_WhenCalled_ShouldInvokeRunAppAndExit(t *testing.T) {
	oldArgs := os.Args
	oldExit := exitFunc
	defer func() {
		os.Args = oldArgs
		exitFunc = oldExit
	}()

	os.Args = []string{"huemcp", "--version"}
	var exitCode int
	exitFunc = func(code int) { exitCode = code }

	main()

	if exitCode != 0 {
		t.Errorf("main() with --version: want exit code 0, got %d", exitCode)
	}
}

func TestExitCodeErr_ShouldFormatCode(t *testing.T) {
	if exitCodeErr(3).Error() != "exit code 3" {
		t.Errorf("unexpected message %q", exitCodeErr(3).Error())
	}
}
