// 指示: miu200521358
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/miu200521358/mu_physmigrate/pkg/domain/model"
	"gopkg.in/yaml.v3"
)

const (
	appConfigDirName = "mu_physmigrate"
	configFileName   = "config.yaml"
	envLocalFileName = ".env.local"
)

// Config はアプリ設定を表す。
type Config struct {
	LogLevel          string   `yaml:"log_level" env:"PHYSMIGRATE_LOG_LEVEL"`
	Locale            string   `yaml:"locale" env:"PHYSMIGRATE_LOCALE"`
	PreBuildFolder    string   `yaml:"prebuild_folder" env:"PHYSMIGRATE_PREBUILD_FOLDER"`
	FlattenKinds      []string `yaml:"flatten_kinds" env:"PHYSMIGRATE_FLATTEN_KINDS" envSeparator:","`
	DisabledProviders []string `yaml:"disabled_providers" env:"PHYSMIGRATE_DISABLED_PROVIDERS" envSeparator:","`

	// OutputFormat は保存するシーン文書の形式。空の場合は保存先の拡張子から判定する。
	OutputFormat string `yaml:"output_format" env:"PHYSMIGRATE_OUTPUT_FORMAT"`
}

// LoadOptions は設定読み込みのオプションを表す。
type LoadOptions struct {
	// ConfigPath はYAML設定ファイル。空の場合は ~/.config/mu_physmigrate/config.yaml を任意で読む。
	ConfigPath string
	// EnvLocalPath は .env.local のパス。空の場合はカレントから親方向へ探索する。
	EnvLocalPath string
	// SkipEnvLocal が true の場合は .env.local を読まない。
	SkipEnvLocal bool
	// Environment は環境変数の代替。nil の場合はプロセス環境変数を使う。
	Environment map[string]string
}

// Default は既定設定を返す。
func Default() *Config {
	return &Config{
		LogLevel:       "info",
		Locale:         "ja",
		PreBuildFolder: "Assets/MagicaPreBuildData",
		FlattenKinds:   []string{string(model.RecordKindCloth)},
	}
}

// Load は既定値、YAML、.env.local、環境変数の順に設定を重ねて読み込む。
func Load(opts LoadOptions) (*Config, error) {
	cfg := Default()

	if err := loadYAMLConfig(cfg, opts.ConfigPath); err != nil {
		return nil, err
	}

	environment, err := resolveEnvironment(opts)
	if err != nil {
		return nil, err
	}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environment}); err != nil {
		return nil, fmt.Errorf("環境変数の解析に失敗しました: %w", err)
	}

	cfg.normalize()
	if _, err := cfg.FlattenRecordKinds(); err != nil {
		return nil, err
	}
	switch cfg.OutputFormat {
	case "", "json", "yaml", "yml":
	default:
		return nil, fmt.Errorf("output_format は json/yaml のいずれかを指定してください: %s", cfg.OutputFormat)
	}
	return cfg, nil
}

// FlattenRecordKinds はルート直下配置の種別を解決する。
func (c *Config) FlattenRecordKinds() ([]model.RecordKind, error) {
	kinds := make([]model.RecordKind, 0, len(c.FlattenKinds))
	for _, name := range c.FlattenKinds {
		kind, ok := model.ParseRecordKind(name)
		if !ok {
			return nil, fmt.Errorf("flatten_kinds に未知の種別があります: %s", name)
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

// normalize は前後空白と空要素を除去する。
func (c *Config) normalize() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.Locale = strings.TrimSpace(c.Locale)
	c.PreBuildFolder = strings.TrimSpace(c.PreBuildFolder)
	c.OutputFormat = strings.ToLower(strings.TrimSpace(c.OutputFormat))
	c.FlattenKinds = compactStrings(c.FlattenKinds)
	c.DisabledProviders = compactStrings(c.DisabledProviders)
}

// loadYAMLConfig はYAML設定を読み込む。既定パスが存在しない場合は何もしない。
func loadYAMLConfig(cfg *Config, configPath string) error {
	path := strings.TrimSpace(configPath)
	explicit := path != ""
	if !explicit {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		path = filepath.Join(homeDir, ".config", appConfigDirName, configFileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("設定ファイルの読み込みに失敗しました(%s): %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("設定ファイルの解析に失敗しました(%s): %w", path, err)
	}
	return nil
}

// resolveEnvironment は .env.local を反映した環境変数を返す。既存の環境変数は上書きしない。
func resolveEnvironment(opts LoadOptions) (map[string]string, error) {
	envPath := ""
	if !opts.SkipEnvLocal {
		envPath = strings.TrimSpace(opts.EnvLocalPath)
		if envPath == "" {
			envPath = findEnvLocal()
		}
	}

	if opts.Environment == nil {
		if envPath != "" {
			if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf(".env.local の読み込みに失敗しました: %w", err)
			}
		}
		return nil, nil
	}

	environment := make(map[string]string, len(opts.Environment))
	for key, value := range opts.Environment {
		environment[key] = value
	}
	if envPath == "" {
		return environment, nil
	}
	values, err := godotenv.Read(envPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return environment, nil
		}
		return nil, fmt.Errorf(".env.local の読み込みに失敗しました: %w", err)
	}
	for key, value := range values {
		if _, exists := environment[key]; !exists {
			environment[key] = value
		}
	}
	return environment, nil
}

// findEnvLocal はカレントから親方向へ .env.local を探す。ホームディレクトリで探索を止める。
func findEnvLocal() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	homeDir, _ := os.UserHomeDir()
	homeDir = filepath.Clean(homeDir)
	dir := filepath.Clean(cwd)
	for {
		envPath := filepath.Join(dir, envLocalFileName)
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
		if dir == homeDir {
			return ""
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func compactStrings(values []string) []string {
	var compacted []string
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			compacted = append(compacted, trimmed)
		}
	}
	return compacted
}
