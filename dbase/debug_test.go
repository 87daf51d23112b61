package dbase

import (
	"bytes"
	"strings"
	"testing"
)

func TestDebug(t *testing.T) {
	var buf bytes.Buffer
	Debug(true, &buf)
	defer Debug(false, nil)

	debugf("test debug message: %s", "hello")
	errorf("test error message: %d", 42)

	output := buf.String()
	if !strings.Contains(output, "[dbase] [DEBUG]") || !strings.Contains(output, "test debug message: hello") {
		t.Errorf("Debug message not found in output: %s", output)
	}
	if !strings.Contains(output, "[dbase] [ERROR]") || !strings.Contains(output, "test error message: 42") {
		t.Errorf("Error message not found in output: %s", output)
	}

	buf.Reset()
	Debug(false, &buf)
	debugf("this should not appear")
	if buf.Len() > 0 {
		t.Errorf("Debug message appeared when debug was disabled: %s", buf.String())
	}
}

func TestDebugWithNilWriter(t *testing.T) {
	var buf bytes.Buffer
	Debug(true, &buf)
	defer Debug(false, nil)

	Debug(true, nil)
	debugf("still captured")
	if !strings.Contains(buf.String(), "still captured") {
		t.Errorf("Expected the previous output to be kept, got %s", buf.String())
	}
}
