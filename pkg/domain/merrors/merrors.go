// 指示: miu200521358
package merrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTreeMissing は移植元または移植先ツリーが未指定であることを表す。
	ErrTreeMissing = errors.New("移植元または移植先のツリーが指定されていません")
	// ErrSameTree は移植元と移植先が同一ツリーであることを表す。
	ErrSameTree = errors.New("移植元と移植先に同じツリーが指定されています")
)

// DuplicateNamesError は移植元ツリーのノード名重複を表す。
type DuplicateNamesError struct {
	// Names は重複したノード名(昇順・各1件)。
	Names []string
}

// NewDuplicateNamesError は重複名エラーを生成する。
func NewDuplicateNamesError(names []string) *DuplicateNamesError {
	return &DuplicateNamesError{Names: append([]string(nil), names...)}
}

// Error はエラーメッセージを返す。
func (e *DuplicateNamesError) Error() string {
	return fmt.Sprintf("移植元ツリーに重複したノード名があります: %s", strings.Join(e.Names, ", "))
}

// IsDuplicateNamesError は重複名エラーか判定する。
func IsDuplicateNamesError(err error) bool {
	var target *DuplicateNamesError
	return errors.As(err, &target)
}

// DuplicateNames は重複名エラーから名前一覧を取り出す。
func DuplicateNames(err error) ([]string, bool) {
	var target *DuplicateNamesError
	if !errors.As(err, &target) {
		return nil, false
	}
	return target.Names, true
}

// PersistenceError は保存処理の失敗を表す。
type PersistenceError struct {
	Path string
	Err  error
}

// NewPersistenceError は保存エラーを生成する。
func NewPersistenceError(path string, err error) *PersistenceError {
	return &PersistenceError{Path: path, Err: err}
}

// Error はエラーメッセージを返す。
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("保存に失敗しました(%s): %v", e.Path, e.Err)
}

// Unwrap は元エラーを返す。
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsPersistenceError は保存エラーか判定する。
func IsPersistenceError(err error) bool {
	var target *PersistenceError
	return errors.As(err, &target)
}

// IsValidationError は移植前検証で中断すべきエラーか判定する。
func IsValidationError(err error) bool {
	return IsDuplicateNamesError(err) || errors.Is(err, ErrTreeMissing) || errors.Is(err, ErrSameTree)
}
