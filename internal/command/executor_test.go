package command

import (
	"context"
	"strings"
	"testing"

	"github.com/stratastor/logger"
	mmerrors "github.com/stratastor/mmacl/pkg/errors"
)

func testLogger(t *testing.T) logger.Logger {
	t.Helper()
	l, err := logger.NewTag(logger.Config{LogLevel: "debug"}, "test")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	return l
}

func TestExecCommand(t *testing.T) {
	log := testLogger(t)

	out, err := ExecCommand(context.Background(), log, "/bin/echo", "hello")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if strings.TrimSpace(string(out)) != "hello" {
		t.Errorf("Wrong output: %q", string(out))
	}
}

func TestExecCommandNonZeroExit(t *testing.T) {
	log := testLogger(t)

	_, err := ExecCommand(context.Background(), log, "/bin/sh", "-c", "exit 22")
	if err == nil {
		t.Fatal("Expected error for non-zero exit")
	}

	code, ok := ExitCode(err)
	if !ok {
		t.Fatalf("Expected exit code on error, got %v", err)
	}
	if code != 22 {
		t.Errorf("Wrong exit code: got %d, want 22", code)
	}

	if ec, ok := mmerrors.GetCode(err); !ok || ec != mmerrors.CommandExecution {
		t.Errorf("Wrong error code: got %d", ec)
	}
}

func TestExecCommandValidation(t *testing.T) {
	log := testLogger(t)

	testCases := []struct {
		name string
		cmd  string
		args []string
	}{
		{"empty command", "", nil},
		{"relative path", "bin/echo", nil},
		{"dangerous chars in command", "/bin/echo;rm", nil},
		{"dangerous chars in arg", "/bin/echo", []string{"a|b"}},
		{"path traversal", "/bin/echo", []string{"../../etc/passwd"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ExecCommand(context.Background(), log, tc.cmd, tc.args...)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if ec, ok := mmerrors.GetCode(err); !ok || ec != mmerrors.CommandInvalidInput {
				t.Errorf("Wrong error code: got %d", ec)
			}
		})
	}
}

func TestExitCodeOnPlainError(t *testing.T) {
	if _, ok := ExitCode(context.DeadlineExceeded); ok {
		t.Error("ExitCode should not match a plain error")
	}
}
