package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

const logPermission = 0664

type LogData struct {
	LogFile *os.File
	Logger  zerolog.Logger
}

// newLogger appends JSON log lines to path. The terminal owns stdout, so with
// no path configured nothing is logged.
func newLogger(path string) (*LogData, error) {
	if path == "" {
		return &LogData{Logger: zerolog.Nop()}, nil
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logPermission)
	if err != nil {
		return nil, err
	}
	return &LogData{
		LogFile: file,
		Logger:  newWriterLogger(zerolog.SyncWriter(file)),
	}, nil
}

func newWriterLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

func (l *LogData) Close() error {
	if l.LogFile == nil {
		return nil
	}
	return l.LogFile.Close()
}
