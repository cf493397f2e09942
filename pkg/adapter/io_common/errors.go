// 指示: miu200521358
package io_common

import (
	"errors"
	"fmt"
)

// IoErrorKind は入出力エラー種別を表す。
type IoErrorKind string

const (
	// IoErrorKindExtInvalid は拡張子不正。
	IoErrorKindExtInvalid IoErrorKind = "ext_invalid"
	// IoErrorKindFileNotFound はファイル未検出。
	IoErrorKindFileNotFound IoErrorKind = "file_not_found"
	// IoErrorKindParseFailed は解析失敗。
	IoErrorKindParseFailed IoErrorKind = "parse_failed"
	// IoErrorKindFormatNotSupported は未対応形式。
	IoErrorKindFormatNotSupported IoErrorKind = "format_not_supported"
	// IoErrorKindSaveFailed は保存失敗。
	IoErrorKindSaveFailed IoErrorKind = "save_failed"
)

// IoError は入出力エラーを表す。
type IoError struct {
	Kind    IoErrorKind
	Message string
	Err     error
}

// Error はエラーメッセージを返す。
func (e *IoError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap は元エラーを返す。
func (e *IoError) Unwrap() error {
	return e.Err
}

func newIoError(kind IoErrorKind, err error, format string, params ...any) *IoError {
	message := format
	if len(params) > 0 {
		message = fmt.Sprintf(format, params...)
	}
	return &IoError{Kind: kind, Message: message, Err: err}
}

// NewIoExtInvalid は拡張子不正エラーを生成する。
func NewIoExtInvalid(path string, err error) error {
	return newIoError(IoErrorKindExtInvalid, err, "対応していない拡張子です: %s", path)
}

// NewIoFileNotFound はファイル未検出エラーを生成する。
func NewIoFileNotFound(path string, err error) error {
	return newIoError(IoErrorKindFileNotFound, err, "ファイルが見つかりません: %s", path)
}

// NewIoParseFailed は解析失敗エラーを生成する。
func NewIoParseFailed(format string, err error, params ...any) error {
	return newIoError(IoErrorKindParseFailed, err, format, params...)
}

// NewIoFormatNotSupported は未対応形式エラーを生成する。
func NewIoFormatNotSupported(format string, err error, params ...any) error {
	return newIoError(IoErrorKindFormatNotSupported, err, format, params...)
}

// NewIoSaveFailed は保存失敗エラーを生成する。
func NewIoSaveFailed(format string, err error, params ...any) error {
	return newIoError(IoErrorKindSaveFailed, err, format, params...)
}

// IsIoErrorKind は指定種別の入出力エラーか判定する。
func IsIoErrorKind(err error, kind IoErrorKind) bool {
	var ioErr *IoError
	return errors.As(err, &ioErr) && ioErr.Kind == kind
}
