// SPDX-FileCopyrightText: 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package system

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns the console logger used by the CLI. It writes to w
// (stderr when nil) and shows warnings and errors only, unless verbose
// is set.
func NewLogger(verbose bool, w io.Writer) *zap.SugaredLogger {
	if w == nil {
		w = os.Stderr
	}
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if !verbose {
		// Short lines for the default mode: level and message only.
		encCfg.TimeKey = ""
		encCfg.NameKey = ""
		encCfg.CallerKey = ""
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core).Sugar()
}

// AccountFields returns key/value pairs identifying a mail account,
// suitable for SugaredLogger.With. The server is omitted when empty.
func AccountFields(account, server string) []any {
	if server == "" {
		return []any{"account", account}
	}
	return []any{"account", account, "server", server}
}
