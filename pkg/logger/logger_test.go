package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestContextWithFieldsMergesExistingFields(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]interface{}{"request_id": "abc"})
	ctx = ContextWithFields(ctx, map[string]interface{}{"slug": "band"})

	entry := FromContext(ctx)
	if entry.Data["request_id"] != "abc" {
		t.Fatalf("expected request_id to survive merge, got %v", entry.Data["request_id"])
	}
	if entry.Data["slug"] != "band" {
		t.Fatalf("expected slug field, got %v", entry.Data["slug"])
	}
}

func TestFromContextWithoutFields(t *testing.T) {
	entry := FromContext(context.Background())
	if len(entry.Data) != 0 {
		t.Fatalf("expected no fields, got %v", entry.Data)
	}
}

func TestSetLevelIgnoresUnknownLevels(t *testing.T) {
	var buf bytes.Buffer
	original := Logger.Out
	originalLevel := Logger.GetLevel()
	Logger.SetOutput(&buf)
	t.Cleanup(func() {
		Logger.SetOutput(original)
		Logger.SetLevel(originalLevel)
	})

	Logger.SetLevel(logrus.InfoLevel)
	SetLevel("loud")
	if Logger.GetLevel() != logrus.InfoLevel {
		t.Fatalf("expected level to stay info, got %s", Logger.GetLevel())
	}
	if !strings.Contains(buf.String(), "Unknown log level") {
		t.Fatalf("expected a warning about the unknown level, got %q", buf.String())
	}

	SetLevel("warn")
	if Logger.GetLevel() != logrus.WarnLevel {
		t.Fatalf("expected warn level, got %s", Logger.GetLevel())
	}
}
