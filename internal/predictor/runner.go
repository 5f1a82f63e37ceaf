package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes one delegate invocation and returns the stdout lines.
// The production runner shells out to the prediction script; tests swap in
// a fake.
type Runner interface {
	Run(ctx context.Context, tickers []string) ([]string, error)
}

type scriptRunner struct {
	pythonPath string
	scriptPath string
}

func NewScriptRunner(pythonPath, scriptPath string) Runner {
	return &scriptRunner{
		pythonPath: pythonPath,
		scriptPath: scriptPath,
	}
}

// Run invokes the script with a single JSON argument, the same contract the
// script expects from any caller: {"tickers": [...]}.
func (r *scriptRunner) Run(ctx context.Context, tickers []string) ([]string, error) {
	payload, err := json.Marshal(map[string][]string{"tickers": tickers})
	if err != nil {
		return nil, fmt.Errorf("failed to encode delegate input: %w", err)
	}

	cmd := exec.CommandContext(ctx, r.pythonPath, r.scriptPath, string(payload))

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("delegate canceled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("delegate failed: %w (stderr: %s)", err, strings.TrimSpace(stderr.String()))
	}

	return splitLines(stdout.String()), nil
}

func splitLines(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
