package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunExtension(t *testing.T) {
	tempDir := t.TempDir()

	// A fake ghs-hello extension that records its environment.
	envFile := filepath.Join(tempDir, "env.txt")
	script := "#!/bin/sh\necho \"$" + EnvDataDir + ":$" + EnvStore + ":$1\" > " + envFile + "\n"
	if err := os.WriteFile(filepath.Join(tempDir, "ghs-hello"), []byte(script), 0755); err != nil {
		t.Fatalf("failed to write ghs-hello: %v", err)
	}
	t.Setenv("PATH", tempDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	ran, code := RunExtension("hello", []string{"world"})
	if !ran {
		t.Fatal("extension on PATH was not executed")
	}
	if code != 0 {
		t.Fatalf("extension exited with %d", code)
	}

	got, err := os.ReadFile(envFile)
	if err != nil {
		t.Fatalf("extension did not record its environment: %v", err)
	}
	want := *dataDir + ":" + *storeBackend + ":world"
	if strings.TrimSpace(string(got)) != want {
		t.Errorf("extension environment = %q, want %q", strings.TrimSpace(string(got)), want)
	}
}

func TestRunExtension_NotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	ran, code := RunExtension("no-such-extension", nil)
	if ran || code != 0 {
		t.Errorf("RunExtension = (%v, %d), want (false, 0)", ran, code)
	}
}

func TestIsRegistered(t *testing.T) {
	for _, name := range []string{"add-delivery", "summary", "help"} {
		if !IsRegistered(name) {
			t.Errorf("IsRegistered(%q) = false", name)
		}
	}
	if IsRegistered("hello") {
		t.Error("IsRegistered(hello) = true")
	}
}
