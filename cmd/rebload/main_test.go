package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func noEnv(string) string { return "" }

func runCapture(t *testing.T, args []string, stdin string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr, noEnv)
	return stdout.String(), err
}

func TestRunEval(t *testing.T) {
	out, err := runCapture(t, []string{"-e", "foo: 10 [a b]"}, "")
	if err != nil {
		t.Fatal(err)
	}
	if out != "foo: 10 [a b]\n" {
		t.Errorf("eval output %q", out)
	}
}

func TestRunStdin(t *testing.T) {
	out, err := runCapture(t, nil, "1 2 3")
	if err != nil {
		t.Fatal(err)
	}
	if out != "1 2 3\n" {
		t.Errorf("stdin output %q", out)
	}
}

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.r")
	src := "REBOL [title: \"t\"]\nfoo: 10\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCapture(t, []string{path}, "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "foo: 10") {
		t.Errorf("file output %q", out)
	}
	if strings.Contains(out, "title") {
		t.Error("header should be stripped by default")
	}

	out, err = runCapture(t, []string{"-header", path}, "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `title: "t"`) {
		t.Errorf("header flag output %q", out)
	}
}

func TestRunScanError(t *testing.T) {
	_, err := runCapture(t, []string{"-e", "[a"}, "")
	if err == nil {
		t.Fatal("unclosed block should fail")
	}

	out, err := runCapture(t, []string{"-relax", "-e", "a 1x2x3 b"}, "")
	if err != nil {
		t.Fatalf("relax flag should recover: %v", err)
	}
	if !strings.Contains(out, "a ") || !strings.Contains(out, " b") {
		t.Errorf("relaxed output %q", out)
	}
}

func TestRunVersion(t *testing.T) {
	out, err := runCapture(t, []string{"-V"}, "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "rebload version") {
		t.Errorf("version output %q", out)
	}
}

func TestRunIndexAndSearch(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "s.r"),
		[]byte("needleword: 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	db := filepath.Join(dir, "index.db")

	out, err := runCapture(t, []string{"index", "-db", db, dir}, "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "indexed 1 scripts") {
		t.Errorf("index output %q", out)
	}

	out, err = runCapture(t, []string{"search", "-db", db, "needleword"}, "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "s.r:1") || !strings.Contains(out, "needleword") {
		t.Errorf("search output %q", out)
	}

	out, err = runCapture(t, []string{"search", "-db", db, "absent"}, "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "no matches") {
		t.Errorf("empty search output %q", out)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rebload.yaml")
	if err := os.WriteFile(path,
		[]byte("extensions: [\".x\"]\nrelax: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path, noEnv)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Extensions) != 1 || cfg.Extensions[0] != ".x" || !cfg.Relax {
		t.Errorf("config = %+v", cfg)
	}
	if cfg.Index == "" {
		t.Error("unset keys should keep their defaults")
	}

	// Environment fallback.
	cfg, err = LoadConfig("", func(key string) string {
		if key == "REBLOAD_CONFIG" {
			return path
		}
		return ""
	})
	if err != nil || !cfg.Relax {
		t.Errorf("env config = %+v, %v", cfg, err)
	}

	// Missing default file falls back to defaults.
	cfg, err = LoadConfig("", noEnv)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Extensions) == 0 {
		t.Error("defaults should apply with no config file")
	}

	// Missing explicit file is an error.
	if _, err := LoadConfig(filepath.Join(dir, "absent.yaml"), noEnv); err == nil {
		t.Error("explicit missing config should fail")
	}
}
