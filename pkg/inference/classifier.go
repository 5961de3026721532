// Package inference connects encoded feature vectors to an external
// classifier and turns its scores into print recommendations.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ErrClassifierNotFound is returned when the classifier program is not on
// PATH.
var ErrClassifierNotFound = errors.New("classifier program not found")

// Classifier scores an encoded feature vector. It returns one probability
// slice per output head.
type Classifier interface {
	Classify(ctx context.Context, input []float32) ([][]float32, error)
}

// waitDelay bounds how long Classify waits for output pipes after the
// process was killed.
const waitDelay = 2 * time.Second

// ExecClassifier runs an external program per request. The program reads
// {"input": [...]} as JSON on stdin and writes {"outputs": [[...], ...]}
// on stdout.
type ExecClassifier struct {
	command string
	args    []string
	workDir string
	timeout time.Duration
}

type execRequest struct {
	Input []float32 `json:"input"`
}

type execResponse struct {
	Outputs [][]float32 `json:"outputs"`
}

// NewExecClassifier resolves command on PATH and returns a classifier that
// runs it with args. A zero timeout means no limit beyond ctx.
func NewExecClassifier(command string, args []string, workDir string, timeout time.Duration) (*ExecClassifier, error) {
	path, err := exec.LookPath(command)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrClassifierNotFound, command)
	}
	return &ExecClassifier{
		command: path,
		args:    append([]string(nil), args...),
		workDir: workDir,
		timeout: timeout,
	}, nil
}

// Classify implements Classifier.
func (c *ExecClassifier) Classify(ctx context.Context, input []float32) ([][]float32, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	payload, err := json.Marshal(execRequest{Input: input})
	if err != nil {
		return nil, fmt.Errorf("failed to encode classifier input: %w", err)
	}

	cmd := exec.CommandContext(ctx, c.command, c.args...)
	cmd.Dir = c.workDir
	cmd.Stdin = bytes.NewReader(payload)
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var errMsg strings.Builder
		errMsg.WriteString(fmt.Sprintf("classifier %s failed: %v", c.command, err))
		if stderr.Len() > 0 {
			errMsg.WriteString("\nstderr: ")
			errMsg.WriteString(strings.TrimSpace(stderr.String()))
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s: %w", errMsg.String(), ctxErr)
		}
		return nil, errors.New(errMsg.String())
	}

	var resp execResponse
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return nil, fmt.Errorf("failed to decode classifier output: %w", err)
	}
	return resp.Outputs, nil
}
