// internal/integration/cancel_integration_test.go
package integration

import (
	"context"
	"io"
	"strings"
	"testing"

	"pblast/internal/app"
)

func TestCanceledRunExits130(t *testing.T) {
	dir := t.TempDir()
	m, seq := randomRef(t, 2000, 3)
	ref := saveMatrix(t, dir, "ref.tsv", m)
	var fa strings.Builder
	for i := 0; i < 200; i++ {
		fa.WriteString(">q\n" + seq[i:i+60] + "\n")
	}
	queries := write(t, dir, "q.fa", fa.String())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	code := app.RunContext(ctx, []string{"search", "-q", "-r", ref, "-k", "8", queries}, io.Discard, io.Discard)
	if code != 130 {
		t.Fatalf("expected exit 130 on cancel, got %d", code)
	}
}
