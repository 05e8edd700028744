package capture

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/louisbranch/countrycapture/internal/services/capture/platform/errors"
)

const levelsFixture = `levels:
  - id: "42"
    country_name: Chile
    country_title: South America
    capture_text: Name the capital.
    hint: It starts with S.
    points: 120
    completions:
      - team: alice
        completed_at: 2026-03-01T12:00:00Z
  - country_name: Peru
    points: 80
`

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		HTTPAddr: "127.0.0.1:0",
		DBPath:   filepath.Join(t.TempDir(), "capture.db"),
	}
}

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "levels.yaml")
	if err := os.WriteFile(path, []byte(levelsFixture), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func run(t *testing.T, cfg Config, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := Execute(context.Background(), cfg, args, &out, &out)
	return out.String(), err
}

func TestParseConfigDefaults(t *testing.T) {
	t.Setenv("COUNTRY_CAPTURE_HTTP_ADDR", "")
	t.Setenv("COUNTRY_CAPTURE_DB_PATH", "")
	os.Unsetenv("COUNTRY_CAPTURE_HTTP_ADDR")
	os.Unsetenv("COUNTRY_CAPTURE_DB_PATH")

	cfg, err := ParseConfig()
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "localhost:8090" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "localhost:8090")
	}
	if cfg.DBPath != "data/capture.db" {
		t.Fatalf("DBPath = %q, want %q", cfg.DBPath, "data/capture.db")
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestParseConfigReadsPrefixedEnv(t *testing.T) {
	t.Setenv("COUNTRY_CAPTURE_HTTP_ADDR", "127.0.0.1:9100")
	t.Setenv("COUNTRY_CAPTURE_LOG_LEVEL", "debug")
	t.Setenv("COUNTRY_CAPTURE_OTEL_ENABLED", "false")

	cfg, err := ParseConfig()
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:9100" {
		t.Fatalf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("Logging.Level = %q", cfg.Logging.Level)
	}
	if cfg.Telemetry.Enabled != "false" {
		t.Fatalf("Telemetry.Enabled = %q", cfg.Telemetry.Enabled)
	}
}

func TestSeedThenRender(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	out, err := run(t, cfg, "seed", "--file", writeFixture(t))
	if err != nil {
		t.Fatalf("seed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "seeded 2 levels, 1 completions") {
		t.Fatalf("seed output = %q", out)
	}
	if !strings.Contains(out, "assigned Peru -> ") {
		t.Fatalf("seed output should report the assigned id: %q", out)
	}

	out, err = run(t, cfg, "render", "--level", "42", "--lang", "pt-BR")
	if err != nil {
		t.Fatalf("render: %v\n%s", err, out)
	}
	for _, want := range []string{`id="capture-modal"`, "captura_", "Chile", "alice"} {
		if !strings.Contains(out, want) {
			t.Fatalf("render output missing %q:\n%s", want, out)
		}
	}
}

func TestDBFlagOverridesConfig(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	other := filepath.Join(t.TempDir(), "other.db")
	if _, err := run(t, cfg, "seed", "--db", other, "--file", writeFixture(t)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := os.Stat(other); err != nil {
		t.Fatalf("expected catalog at --db path: %v", err)
	}
	if _, err := os.Stat(cfg.DBPath); !os.IsNotExist(err) {
		t.Fatalf("configured db path should be untouched, stat err = %v", err)
	}
}

func TestRenderErrors(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	if _, err := run(t, cfg, "render"); err == nil || !strings.Contains(err.Error(), "--level") {
		t.Fatalf("missing level err = %v", err)
	}
	if _, err := run(t, cfg, "render", "--level", "42", "--lang", "xx-invalid-tag"); err == nil {
		t.Fatal("expected unsupported language error")
	}
	_, err := run(t, cfg, "render", "--level", "404")
	if apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Fatalf("unknown level err = %v, want not found", err)
	}
}

func TestSeedRequiresFile(t *testing.T) {
	t.Parallel()

	if _, err := run(t, testConfig(t), "seed"); err == nil || !strings.Contains(err.Error(), "--file") {
		t.Fatalf("err = %v, want missing file error", err)
	}
}

func TestServeRejectsBadLogLevel(t *testing.T) {
	t.Parallel()

	if _, err := run(t, testConfig(t), "serve", "--log-level", "loud"); err == nil {
		t.Fatal("expected log level error")
	}
}

func TestUnknownCommand(t *testing.T) {
	t.Parallel()

	if _, err := run(t, testConfig(t), "explode"); err == nil {
		t.Fatal("expected unknown command error")
	}
}
