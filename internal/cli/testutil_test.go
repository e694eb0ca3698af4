package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"notifyd/internal/common/fsutil"
)

type result struct {
	code   int
	stdout string
	stderr string
}

// run executes the CLI in-process with no config file discovery.
func run(t *testing.T, args ...string) result {
	t.Helper()
	t.Setenv(fsutil.ConfigEnv, "")
	var out, errOut bytes.Buffer
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	code := Run(ctx, append([]string{"--log-level", "off"}, args...), &out, &errOut)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}
