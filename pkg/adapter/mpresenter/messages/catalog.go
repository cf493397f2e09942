// 指示: miu200521358
package messages

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// localeFile は翻訳ファイル1件を表す。
type localeFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

var (
	registerOnce sync.Once
	registerErr  error
)

// Register は既定言語と翻訳ファイルのメッセージを x/text へ登録する。複数回呼んでも1度だけ登録する。
func Register() error {
	registerOnce.Do(func() {
		registerErr = register()
	})
	return registerErr
}

func register() error {
	for _, key := range AllKeys() {
		if err := message.SetString(language.Japanese, key, key); err != nil {
			return fmt.Errorf("メッセージ登録に失敗しました(ja): %w", err)
		}
	}
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return fmt.Errorf("翻訳ファイル一覧の取得に失敗しました: %w", err)
	}
	for _, entry := range entries {
		file, err := loadLocaleFile("locales/" + entry.Name())
		if err != nil {
			return err
		}
		tag, err := language.Parse(file.Locale)
		if err != nil {
			return fmt.Errorf("ロケール指定が不正です: %s: %w", file.Locale, err)
		}
		for key, value := range file.Messages {
			if err := message.SetString(tag, key, value); err != nil {
				return fmt.Errorf("メッセージ登録に失敗しました(%s): %w", file.Locale, err)
			}
		}
	}
	return nil
}

// loadLocaleFile は翻訳ファイルを読み込む。
func loadLocaleFile(path string) (*localeFile, error) {
	b, err := localeFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("翻訳ファイルの読み取りに失敗しました: %s: %w", path, err)
	}
	file := &localeFile{}
	if err := yaml.Unmarshal(b, file); err != nil {
		return nil, fmt.Errorf("翻訳ファイルの解析に失敗しました: %s: %w", path, err)
	}
	if strings.TrimSpace(file.Locale) == "" {
		return nil, fmt.Errorf("翻訳ファイルに locale がありません: %s", path)
	}
	return file, nil
}

// ResolveTag はロケール文字列を言語タグへ解決する。未対応・不正な場合は日本語。
func ResolveTag(locale string) language.Tag {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return language.Japanese
	}
	matcher := language.NewMatcher([]language.Tag{language.Japanese, language.English})
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return language.Japanese
	}
	return []language.Tag{language.Japanese, language.English}[index]
}

// NewPrinter は登録済みカタログを使う表示器を生成する。
func NewPrinter(locale string) (*message.Printer, error) {
	if err := Register(); err != nil {
		return nil, err
	}
	return message.NewPrinter(ResolveTag(locale)), nil
}
