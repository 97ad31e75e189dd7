package usecase

import (
	"errors"
	"io"
	"log/slog"
)

var (
	errRedisDown = errors.New("redis down")

	discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
)
