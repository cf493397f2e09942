// 指示: miu200521358
package minteractor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	outputDirFileMode = 0o755
	defaultOutputExt  = ".json"
)

var (
	nowFunc = time.Now
	// savableExts は保存可能なシーン拡張子。
	savableExts = map[string]struct{}{
		".json": {},
		".yaml": {},
		".yml":  {},
	}
)

// BuildDefaultOutputPath は移植先シーンのパスから既定の出力パスを生成する。
func BuildDefaultOutputPath(targetPath string) string {
	return buildDefaultOutputPathAt(targetPath, nowFunc())
}

// buildDefaultOutputPathAt は指定時刻で既定の出力パスを生成する。
// 保存できない拡張子(VRM等)の場合は JSON で出力する。
func buildDefaultOutputPathAt(targetPath string, now time.Time) string {
	dir := filepath.Dir(targetPath)
	ext := strings.ToLower(filepath.Ext(targetPath))
	base := strings.TrimSpace(strings.TrimSuffix(filepath.Base(targetPath), filepath.Ext(targetPath)))
	if base == "" || base == "." {
		return ""
	}
	if _, ok := savableExts[ext]; !ok {
		ext = defaultOutputExt
	}
	stamp := now.Format("20060102150405")
	outDir := filepath.Join(dir, fmt.Sprintf("%s_%s", base, stamp))
	return filepath.Join(outDir, base+ext)
}

// ResolveSceneOutputPath は保存先パスを解決し、拡張子を検証する。
func ResolveSceneOutputPath(targetPath string, outputPath string) (string, error) {
	resolved := strings.TrimSpace(outputPath)
	if resolved == "" {
		resolved = BuildDefaultOutputPath(targetPath)
	}
	if strings.TrimSpace(resolved) == "" {
		return "", fmt.Errorf("保存先パスが未指定です")
	}
	if _, ok := savableExts[strings.ToLower(filepath.Ext(resolved))]; !ok {
		return "", fmt.Errorf("保存先拡張子が .json/.yaml ではありません: %s", resolved)
	}
	return resolved, nil
}

// PrepareOutputLayout は保存先ディレクトリを作成する。
func PrepareOutputLayout(outputPath string) error {
	outputDir := filepath.Dir(outputPath)
	if outputDir == "" {
		return fmt.Errorf("保存先ディレクトリの解決に失敗しました")
	}
	if err := os.MkdirAll(outputDir, outputDirFileMode); err != nil {
		return fmt.Errorf("保存先ディレクトリの作成に失敗しました: %w", err)
	}
	return nil
}
