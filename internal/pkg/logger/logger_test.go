package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"mdtboard/internal/platform/config"
)

func TestInit_LevelParsing(t *testing.T) {
	cases := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tc := range cases {
		Init(config.LoggingConfig{Level: tc.level})
		if got := zerolog.GlobalLevel(); got != tc.want {
			t.Errorf("Level %q: expected %v, got %v", tc.level, tc.want, got)
		}
	}
}

func TestNewWriter_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	w := newWriter(config.LoggingConfig{Output: "file", FilePath: path})
	if f, ok := w.(*os.File); !ok || f.Name() != path {
		t.Errorf("Expected file writer at %s, got %T", path, w)
	} else {
		f.Close()
	}
}

func TestNewWriter_FallbackToStdout(t *testing.T) {
	// An unopenable path must not break logging.
	w := newWriter(config.LoggingConfig{Output: "file", FilePath: string([]byte{0}) + "/bad"})
	if w != os.Stdout {
		t.Errorf("Expected stdout fallback, got %T", w)
	}

	if _, ok := newWriter(config.LoggingConfig{Format: "text"}).(zerolog.ConsoleWriter); !ok {
		t.Error("Expected console writer for text format")
	}
}
