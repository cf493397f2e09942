// 指示: miu200521358
package minteractor

import "github.com/miu200521358/mu_physmigrate/pkg/shared/base/logging"

// logMigrateInfo は移植処理のINFOログを出力する。
func logMigrateInfo(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Info(format, params...)
}

// logMigrateDebug は移植処理のデバッグログを出力する。
func logMigrateDebug(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Debug(format, params...)
}

// logMigrateWarn は移植処理の警告ログを出力する。
func logMigrateWarn(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Warn(format, params...)
}

// logMigrateError は移植処理のエラーログを出力する。
func logMigrateError(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Error(format, params...)
}
