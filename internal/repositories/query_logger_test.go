package repositories

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestQueryLoggerSkipsDuplicateKeyErrors(t *testing.T) {
	var buf bytes.Buffer
	l := newQueryLogger(log.New(&buf, "", 0))
	sql := func() (string, int64) {
		return `INSERT INTO "players" ("name") VALUES ("Alice")`, 0
	}

	l.Trace(context.Background(), time.Now(), sql, gorm.ErrDuplicatedKey)
	l.Trace(context.Background(), time.Now(), sql, gorm.ErrRecordNotFound)
	if buf.Len() != 0 {
		t.Fatalf("expected nothing logged, got %q", buf.String())
	}

	l.Trace(context.Background(), time.Now(), sql, errors.New("disk I/O error"))
	if !strings.Contains(buf.String(), "disk I/O error") {
		t.Fatalf("expected other errors to be logged, got %q", buf.String())
	}
}

func TestQueryLoggerKeepsFilterAcrossLogMode(t *testing.T) {
	var buf bytes.Buffer
	l := newQueryLogger(log.New(&buf, "", 0)).LogMode(logger.Info)
	if _, ok := l.(conflictQuietLogger); !ok {
		t.Fatalf("expected LogMode to keep the wrapper, got %T", l)
	}
}
