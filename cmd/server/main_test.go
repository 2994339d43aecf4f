package main

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestRootCmd_MissingEnvFile(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")})
	cmd.SilenceErrors = true

	err := cmd.Execute()
	if err == nil {
		t.Fatalf("expected error for missing env file")
	}
	if !strings.Contains(err.Error(), "failed to load config") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"env-file", "port"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Fatalf("expected flag --%s", name)
		}
	}
}
