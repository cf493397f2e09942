// 指示: miu200521358
package minteractor

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestBuildDefaultOutputPathAt(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 8, 7, 0, time.UTC)
	testCases := []struct {
		name   string
		target string
		want   string
	}{
		{name: "json", target: filepath.Join("work", "Target.json"), want: filepath.Join("work", "Target_20261018090807", "Target.json")},
		{name: "yaml keeps ext", target: filepath.Join("work", "Target.yaml"), want: filepath.Join("work", "Target_20261018090807", "Target.yaml")},
		{name: "vrm falls back to json", target: filepath.Join("work", "Avatar.vrm"), want: filepath.Join("work", "Avatar_20261018090807", "Avatar.json")},
		{name: "empty base", target: filepath.Join("work", ".json"), want: ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := buildDefaultOutputPathAt(tc.target, now); got != tc.want {
				t.Fatalf("output path mismatch: got=%s want=%s", got, tc.want)
			}
		})
	}
}

func TestResolveSceneOutputPathRejectsUnsupportedExt(t *testing.T) {
	if _, err := ResolveSceneOutputPath("Target.json", "out/Target.pmx"); err == nil {
		t.Fatal("unsupported extension should fail")
	}
	got, err := ResolveSceneOutputPath("Target.json", "out/Target.YML")
	if err != nil {
		t.Fatalf("yml should be accepted: %v", err)
	}
	if got != "out/Target.YML" {
		t.Fatalf("resolved path mismatch: %s", got)
	}
}

func TestPrepareOutputLayoutCreatesDir(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "a", "b", "Target.json")
	if err := PrepareOutputLayout(outputPath); err != nil {
		t.Fatalf("prepare failed: %v", err)
	}
	if info, err := os.Stat(filepath.Dir(outputPath)); err != nil || !info.IsDir() {
		t.Fatalf("output dir should exist: %v", err)
	}
}
