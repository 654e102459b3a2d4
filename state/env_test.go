package state

import (
	"bytes"
	"context"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestContextWithEnv(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))
	if env.start.IsZero() {
		t.Error("Environment start time not set")
	}
	if env.Out != os.Stdout {
		t.Error("Expected results to go to stdout by default")
	}
	if env.Cfg != nil || env.Rpt != nil || env.Log != nil {
		t.Error("Configuration, report and log are prepared by the application, not by the context")
	}
}

func TestEnvFromContextPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when env not in context")
		}
	}()
	EnvFromContext(context.Background())
}

func TestLocalEnv_OutputCanBeReplaced(t *testing.T) {
	ctx := ContextWithEnv(context.Background())
	var buf bytes.Buffer
	EnvFromContext(ctx).Out = &buf

	// same environment is returned for the same context
	EnvFromContext(ctx).Out.Write([]byte("result"))
	if buf.String() != "result" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestLocalEnv_Uptime(t *testing.T) {
	env := &LocalEnv{start: time.Now().Add(-time.Minute)}
	if up := env.Uptime(); up < time.Minute || up > 2*time.Minute {
		t.Errorf("Uptime() = %v", up)
	}
}

func TestLocalEnv_StdLogRedirect(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	env := &LocalEnv{Log: zap.New(core)}

	env.RedirectStdLog()
	log.Print("from standard logger")
	env.RestoreStdLog()

	entries := logs.All()
	if len(entries) != 1 || !strings.Contains(entries[0].Message, "from standard logger") {
		t.Errorf("standard log was not redirected: %+v", entries)
	}

	log.Print("after restore")
	if logs.Len() != 1 {
		t.Error("standard log still redirected after restore")
	}
}

func TestLocalEnv_StdLogWithoutLogger(t *testing.T) {
	env := &LocalEnv{}
	// must not panic
	env.RedirectStdLog()
	if env.restoreStdLog != nil {
		t.Error("Expected restoreStdLog to remain nil")
	}
	env.RestoreStdLog()
}
