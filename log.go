package austere

import "log/slog"

var pkgLogger *slog.Logger

// Logger returns the logger used by the package. It defaults to
// slog.Default().
func Logger() *slog.Logger {
	if pkgLogger == nil {
		return slog.Default()
	}
	return pkgLogger
}

// SetLogger replaces the package logger. Passing nil restores slog.Default().
func SetLogger(l *slog.Logger) {
	pkgLogger = l
}

// scoped returns a logger tagged with the component and operation that is
// reporting, e.g. scoped("Scene(Main)", "Initialize").
func scoped(scope, op string) *slog.Logger {
	return Logger().With("scope", scope, "op", op)
}
