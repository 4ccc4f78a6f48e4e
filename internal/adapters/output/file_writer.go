package output

import (
	"bufio"
	"context"
	"fmt"
	"logistics-planner/internal/domain"
	"logistics-planner/internal/platform/obs"
	"os"
	"path/filepath"
	"sync"
)

// FilePlanWriter writes one instruction file per method next to the output
// base name and appends a line per method to a shared log file.
type FilePlanWriter struct {
	LogPath string

	mu sync.Mutex
}

func NewFilePlanWriter(logPath string) *FilePlanWriter {
	return &FilePlanWriter{LogPath: logPath}
}

// ResultPath returns the instruction file of method for base, e.g.
// "runs/out.txt" -> "runs/GLOBAL_ALLACTIONS_out.txt".
func ResultPath(base, method string) string {
	return filepath.Join(filepath.Dir(base), method+"_"+filepath.Base(base))
}

// LogLine formats the run log entry of one method.
func LogLine(rec domain.RunRecord, plan *domain.Plan) string {
	return fmt.Sprintf("%s;%s;%d;%s", rec.InputName, rec.Method, rec.ElapsedMs(), plan.Outcome())
}

// WritePlan creates the result file (empty when no plan was found) and appends the log line.
func (w *FilePlanWriter) WritePlan(ctx context.Context, rec domain.RunRecord, plan *domain.Plan) (err error) {
	defer obs.Time(ctx, "output.WritePlan")(&err)

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := writeInstructions(ResultPath(rec.InputName, rec.Method), plan); err != nil {
		return fmt.Errorf("write plan: %w", err)
	}

	f, err := os.OpenFile(w.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("write plan: open log %q: %w", w.LogPath, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, LogLine(rec, plan)); err != nil {
		return fmt.Errorf("write plan: append log %q: %w", w.LogPath, err)
	}
	return nil
}

func writeInstructions(path string, plan *domain.Plan) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create result %q: %w", path, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if plan != nil && plan.Found {
		for _, line := range plan.Instructions() {
			if _, err := bw.WriteString(line + "\n"); err != nil {
				return fmt.Errorf("write result %q: %w", path, err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush result %q: %w", path, err)
	}
	return nil
}
