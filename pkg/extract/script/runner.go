// Package script runs the Python document reader as a per-file subprocess.
package script

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"doc-qna-be/pkg/extract"
)

// Runner invokes the reader script once per uploaded file. The file is
// written to a transient location for the duration of the call and removed on
// every exit path, so no uploaded content outlives the extraction.
type Runner struct {
	PythonBin  string
	ScriptPath string
	TempDir    string
	Timeout    time.Duration
}

var _ extract.Extractor = &Runner{}

func NewRunner(pythonBin, scriptPath, tempDir string, timeout time.Duration) *Runner {
	if pythonBin == "" {
		pythonBin = "python3"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Runner{
		PythonBin:  pythonBin,
		ScriptPath: scriptPath,
		TempDir:    tempDir,
		Timeout:    timeout,
	}
}

func (r *Runner) Extract(ctx context.Context, file extract.File) (string, error) {
	ext, ok := extract.ExtensionFor(file.ContentType)
	if !ok {
		return "", extract.ErrUnsupportedType
	}

	tmp, err := os.CreateTemp(r.TempDir, "docqa-*"+ext)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(file.Data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.PythonBin, r.ScriptPath, tmpPath)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			detail := strings.TrimSpace(stderr.String())
			if detail == "" {
				detail = strings.TrimSpace(stdout.String())
			}
			return "", &extract.ProcessError{Detail: detail}
		}
		// Interpreter missing, context deadline, etc: the collaborator was
		// never reached.
		return "", &extract.TransportError{Err: err}
	}

	return strings.TrimRight(stdout.String(), "\n"), nil
}
