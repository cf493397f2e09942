// 指示: miu200521358
package minteractor

import (
	"fmt"
	"strings"

	"github.com/miu200521358/mu_physmigrate/pkg/domain/model"
)

// MigrationSeverity は移植ログの重要度を表す。
type MigrationSeverity int

const (
	// MigrationSeverityInfo は通知。
	MigrationSeverityInfo MigrationSeverity = iota
	// MigrationSeverityWarning は継続可能な警告。
	MigrationSeverityWarning
)

// String は重要度名を返す。
func (s MigrationSeverity) String() string {
	switch s {
	case MigrationSeverityInfo:
		return "info"
	case MigrationSeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// MigrationEntry は移植ログ1件を表す。
type MigrationEntry struct {
	Severity MigrationSeverity
	// Code は model.MigrateWarning* / model.MigrateInfo* のID。
	Code string
	// Message は既定言語のメッセージ。
	Message string
	// NodePath は対象ノードのパス。
	NodePath string
	// Field は対象参照フィールド名。
	Field string
	// Params は表示言語切替用の差し込み値。
	Params []any
}

// String は表示用文字列を返す。
func (e MigrationEntry) String() string {
	var prefix []string
	if e.NodePath != "" {
		prefix = append(prefix, "["+e.NodePath+"]")
	}
	if e.Field != "" {
		prefix = append(prefix, e.Field)
	}
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}
	return msg
}

// MigrationLog は1回の移植で発生した通知と警告を保持する。
type MigrationLog struct {
	Warnings []MigrationEntry
	Infos    []MigrationEntry

	// Mapping は移植で使用した対応表。
	Mapping *CorrespondenceMap
	// Unresolved は対応付けできなかった移植元ノード(行きがけ順)。
	Unresolved []*model.Node
	// CreatedNodes は補完生成した移植先ノード(生成順)。
	CreatedNodes []*model.Node
	// MigratedRecords は種別ごとの移植レコード数。
	MigratedRecords map[model.RecordKind]int
	// SkippedKinds はプロバイダ未登録で読み飛ばした種別。
	SkippedKinds []model.RecordKind
}

// NewMigrationLog は空の移植ログを生成する。
func NewMigrationLog() *MigrationLog {
	return &MigrationLog{MigratedRecords: map[model.RecordKind]int{}}
}

// AddWarning は警告を追加しログへ出力する。
func (l *MigrationLog) AddWarning(code string, node *model.Node, field string, format string, params ...any) {
	entry := newMigrationEntry(MigrationSeverityWarning, code, node, field, format, params...)
	l.Warnings = append(l.Warnings, entry)
	logMigrateWarn("%s", entry.String())
}

// AddInfo は通知を追加しログへ出力する。
func (l *MigrationLog) AddInfo(code string, node *model.Node, field string, format string, params ...any) {
	entry := newMigrationEntry(MigrationSeverityInfo, code, node, field, format, params...)
	l.Infos = append(l.Infos, entry)
	logMigrateInfo("%s", entry.String())
}

// HasWarnings は警告の有無を返す。
func (l *MigrationLog) HasWarnings() bool {
	return l != nil && len(l.Warnings) > 0
}

// WarningsOf は指定IDの警告を返す。
func (l *MigrationLog) WarningsOf(code string) []MigrationEntry {
	return filterEntries(l.Warnings, code)
}

// InfosOf は指定IDの通知を返す。
func (l *MigrationLog) InfosOf(code string) []MigrationEntry {
	return filterEntries(l.Infos, code)
}

// newMigrationEntry はログ1件を生成する。
func newMigrationEntry(severity MigrationSeverity, code string, node *model.Node, field string, format string, params ...any) MigrationEntry {
	return MigrationEntry{
		Severity: severity,
		Code:     code,
		Message:  fmt.Sprintf(format, params...),
		NodePath: node.Path(),
		Field:    field,
		Params:   params,
	}
}

func filterEntries(entries []MigrationEntry, code string) []MigrationEntry {
	filtered := []MigrationEntry{}
	for _, entry := range entries {
		if entry.Code == code {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}
