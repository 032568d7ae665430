package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ghostcat/ghostcat/common"
)

func TestRunCLIReturnsAfterCleanup(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("DBUS_SESSION_BUS_ADDRESS", "unix:path="+filepath.Join(home, "no-bus"))

	cfgPath := filepath.Join(home, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("developer_mode: true\n"), 0600); err != nil {
		t.Fatal(err)
	}

	*configPath = cfgPath
	*listDevices = true
	t.Cleanup(func() {
		*configPath = ""
		*listDevices = false
	})

	if code := run(); code != 1 {
		t.Errorf("run() = %d, want 1 without a daemon", code)
	}

	// The log file must already be closed: later lines no longer reach it.
	common.LogInfo("written after run returned")
	data, err := os.ReadFile(filepath.Join(common.GetLogDir(), common.LogFileName))
	if err != nil {
		t.Fatalf("log file: %v", err)
	}
	if strings.Contains(string(data), "written after run returned") {
		t.Error("log file still open after run() returned")
	}
}

func TestRunVersion(t *testing.T) {
	*showVersion = true
	t.Cleanup(func() { *showVersion = false })

	if code := run(); code != 0 {
		t.Errorf("run() = %d, want 0", code)
	}
}
