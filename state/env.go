// Package state defines shared program state.
package state

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gsdoc/config"
	"gsdoc/misc"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// used by resolve subcommand
	Overwrite bool

	// RunID identifies single program invocation in logs and work directory
	// name.
	RunID   uuid.UUID
	workDir string

	start         time.Time
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

// newLocalEnv creates a new LocalEnv instance with default values.
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		RunID: uuid.New(),
		start: time.Now(),
	}
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// WorkDir returns directory where acquired images and files are kept for the
// duration of the run, creating it on first use. When debug report is
// requested directory becomes part of it (and is removed when report is
// closed).
func (e *LocalEnv) WorkDir() (string, error) {
	if len(e.workDir) > 0 {
		return e.workDir, nil
	}
	dir := filepath.Join(os.TempDir(), fmt.Sprintf("%s-%s", misc.GetAppName(), e.RunID))
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("unable to create work directory: %w", err)
	}
	e.workDir = dir
	e.Rpt.Store("work", dir)
	return dir, nil
}

// RemoveWorkDir cleans up work directory unless it is owned by the report.
func (e *LocalEnv) RemoveWorkDir() error {
	if len(e.workDir) == 0 || e.Rpt != nil {
		return nil
	}
	err := os.RemoveAll(e.workDir)
	e.workDir = ""
	return err
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
