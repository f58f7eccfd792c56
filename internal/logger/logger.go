package logger

import "go.uber.org/zap"

// Log is package-level logger. It is no-op until Initialize is called.
var Log = zap.NewNop()

// Initialize builds production logger with given level and replaces Log
func Initialize(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	logger, err := cfg.Build()
	if err != nil {
		return err
	}

	Log = logger
	return nil
}
