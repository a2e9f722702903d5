package logger

import (
	"bytes"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
)

// capture redirects log output to a buffer for the duration of the test
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	t.Cleanup(restore)
	return &buf
}

func TestSetVerbose(t *testing.T) {
	if IsVerbose() {
		t.Error("Default verbose should be false")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("Verbose should be true after SetVerbose(true)")
	}

	SetVerbose(false)
	if IsVerbose() {
		t.Error("Verbose should be false after SetVerbose(false)")
	}
}

func TestDebug(t *testing.T) {
	buf := capture(t)

	SetVerbose(false)
	Debug("loaded %d posts", 3)
	if buf.Len() != 0 {
		t.Errorf("Debug should not output when verbose is false, got: %q", buf.String())
	}

	SetVerbose(true)
	defer SetVerbose(false)
	Debug("loaded %d posts", 3)

	if got := buf.String(); got != "[DEBUG] loaded 3 posts\n" {
		t.Errorf("Debug output = %q", got)
	}
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name string
		log  func(string, ...interface{})
		want string
	}{
		{"info", Info, "indexed 42\n"},
		{"success", Success, "✓ indexed 42\n"},
		{"warn", Warn, "⚠ indexed 42\n"},
		{"error", Error, "✗ indexed 42\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t)
			tt.log("indexed %d", 42)
			if got := buf.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultOutputIsStderr(t *testing.T) {
	old := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	Warn("content directory %s is empty", "posts")

	w.Close()
	var buf bytes.Buffer
	io.Copy(&buf, r)
	os.Stderr = old

	if !strings.Contains(buf.String(), "⚠ content directory posts is empty") {
		t.Errorf("Expected warning on stderr, got %q", buf.String())
	}
}

func TestSetOutput_Restore(t *testing.T) {
	var first, second bytes.Buffer

	restoreFirst := SetOutput(&first)
	restoreSecond := SetOutput(&second)
	Info("to second")
	restoreSecond()
	Info("to first")
	restoreFirst()

	if second.String() != "to second\n" {
		t.Errorf("second = %q", second.String())
	}
	if first.String() != "to first\n" {
		t.Errorf("first = %q", first.String())
	}
}

func TestConcurrentWrites(t *testing.T) {
	buf := capture(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				Info("line")
			}
		}()
	}
	wg.Wait()

	if n := strings.Count(buf.String(), "line\n"); n != 200 {
		t.Errorf("Expected 200 complete lines, got %d", n)
	}
}
