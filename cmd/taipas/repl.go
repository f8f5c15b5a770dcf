package main

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/reusee/taipas/taipas"
)

func runREPL(ctx context.Context, driver *taipas.Driver, prompt string) (taipas.Result, error) {
	var historyFile string
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".taipas_history")
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      prompt,
		HistoryFile: historyFile,
	})
	if err != nil {
		return taipas.Result{}, err
	}
	defer rl.Close()

	result, err := driver.Run(ctx, &lineReader{
		rl: rl,
	})
	if errors.Is(err, io.EOF) {
		err = nil
	}
	return result, err
}

// lineReader feeds readline input to the driver one line at a time.
type lineReader struct {
	rl  *readline.Instance
	buf []byte
}

func (l *lineReader) Read(p []byte) (int, error) {
	for len(l.buf) == 0 {
		line, err := l.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				// Ctrl-C on an empty line
				return 0, io.EOF
			}
			continue
		}
		if err != nil {
			return 0, err
		}
		l.buf = append([]byte(line), '\n')
	}
	n := copy(p, l.buf)
	l.buf = l.buf[n:]
	return n, nil
}
