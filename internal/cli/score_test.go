package cli_test

// Coverage Notes:
// - File handling (missing, malformed, valid) and the scored-result output
//   are covered; the client itself is mocked.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	amos "github.com/africanmarketos591/mvr-api-go-client"
	"github.com/africanmarketos591/mvr-api-go-client/internal/cli"
)

const validRequestJSON = `{
	"amos_id": "ENTITY_001",
	"sector": "FMCG_BEVERAGE",
	"region": "EA",
	"revenue": 1000000,
	"cash": 100000,
	"days_silent": 2,
	"occupancy_rate": 95,
	"collection_rate": 96
}`

// writeFile drops content into a temp file and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func scoredResponse() *amos.ScoreResponse {
	headline := "Stable distributor"
	return &amos.ScoreResponse{
		RRSScore:      72.4,
		RRSConfident:  70.1,
		RRSConfidence: 88,
		PzPorosity:    0.18,
		Meta:          amos.Meta{Headline: &headline},
	}
}

func TestScoreCmd(t *testing.T) {
	t.Parallel()

	t.Run("scores a request file", func(t *testing.T) {
		t.Parallel()

		h := &testHarness{}
		var got *amos.ScoreRequest
		h.client.scoreFn = func(req *amos.ScoreRequest) (*amos.ScoreResponse, error) {
			got = req
			return scoredResponse(), nil
		}

		path := writeFile(t, "request.json", validRequestJSON)
		if err := h.run(t, cli.ScoreCmd, path); err != nil {
			t.Fatalf("score command unexpected error: %v", err)
		}

		if got == nil || got.AMOSID != "ENTITY_001" {
			t.Fatalf("client received request %+v", got)
		}
		if got.Sector != amos.SectorFMCGBeverage {
			t.Errorf("sector = %s", got.Sector)
		}

		out := h.stdout.String()
		if !strings.Contains(out, `"RRS_SCORE": 72.4`) {
			t.Errorf("output %q missing score", out)
		}
		if !strings.Contains(out, "Stable distributor") {
			t.Errorf("output %q missing headline", out)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		h := &testHarness{}
		err := h.run(t, cli.ScoreCmd, filepath.Join(t.TempDir(), "nope.json"))
		if !errors.Is(err, cli.ErrRequestFileUnreadable) {
			t.Errorf("error = %v, want ErrRequestFileUnreadable", err)
		}
	})

	t.Run("malformed JSON", func(t *testing.T) {
		t.Parallel()

		h := &testHarness{}
		path := writeFile(t, "bad.json", `{"amos_id": `)

		err := h.run(t, cli.ScoreCmd, path)
		if !errors.Is(err, amos.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("no argument is a usage error", func(t *testing.T) {
		t.Parallel()

		h := &testHarness{}
		err := h.run(t, cli.ScoreCmd)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "accepts 1 arg") {
			t.Errorf("error = %v, want cobra arg-count error", err)
		}
	})

	t.Run("API validation error propagates", func(t *testing.T) {
		t.Parallel()

		h := &testHarness{}
		h.client.scoreFn = func(*amos.ScoreRequest) (*amos.ScoreResponse, error) {
			return nil, &amos.Error{Kind: amos.KindValidation, Message: "INVALID_SECTOR", RequestID: "abc123"}
		}

		path := writeFile(t, "request.json", validRequestJSON)
		err := h.run(t, cli.ScoreCmd, path)
		if !errors.Is(err, amos.ErrValidation) {
			t.Errorf("error = %v, want a VALIDATION api error", err)
		}
	})
}
