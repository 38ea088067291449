package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/pfr-scraper/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SiteBaseURL != DefaultSiteBaseURL {
		t.Fatalf("unexpected site base url: %q", cfg.SiteBaseURL)
	}
	if len(cfg.ScrapeLetters) != 1 || cfg.ScrapeLetters[0] != "A" {
		t.Fatalf("unexpected default letters: %v", cfg.ScrapeLetters)
	}
	if cfg.ScrapeWorkers != 1 || cfg.StartPlayerID != 1 || cfg.ClearOldData {
		t.Fatalf("unexpected scrape defaults: %+v", cfg)
	}
	if cfg.DataDir != "data" || cfg.OutputDir != "data" {
		t.Fatalf("unexpected dirs: data=%q output=%q", cfg.DataDir, cfg.OutputDir)
	}
	if cfg.FetchMaxRetries != 3 || cfg.FetchRetryBackoff != time.Second || cfg.FetchTimeout != 30*time.Second {
		t.Fatalf("unexpected fetch defaults: %+v", cfg)
	}
	if cfg.FetchCircuitEnabled {
		t.Fatalf("expected circuit breaker disabled by default")
	}
	if cfg.LogFormat != logging.FormatConsole {
		t.Fatalf("expected console logs in dev, got %q", cfg.LogFormat)
	}
	if cfg.DBDriver != DBDriverPostgres {
		t.Fatalf("unexpected db driver: %q", cfg.DBDriver)
	}
	if cfg.UserAgent != DefaultUserAgent {
		t.Fatalf("unexpected user agent: %q", cfg.UserAgent)
	}
}

func TestLoad_ProdDefaultsToJSONLogs(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("LOG_FORMAT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LogFormat != logging.FormatJSON {
		t.Fatalf("expected json logs in prod, got %q", cfg.LogFormat)
	}
}

func TestLoad_ScrapeSettingsParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SCRAPE_LETTERS", " a, b ,A")
	t.Setenv("SCRAPE_WORKERS", "8")
	t.Setenv("START_PLAYER_ID", "1200")
	t.Setenv("CLEAR_OLD_DATA", "true")
	t.Setenv("DATA_DIR", "/tmp/pfr")
	t.Setenv("SITE_BASE_URL", "http://127.0.0.1:9999/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.ScrapeLetters) != 2 || cfg.ScrapeLetters[0] != "A" || cfg.ScrapeLetters[1] != "B" {
		t.Fatalf("unexpected letters: %v", cfg.ScrapeLetters)
	}
	if cfg.ScrapeWorkers != 8 || cfg.StartPlayerID != 1200 || !cfg.ClearOldData {
		t.Fatalf("unexpected scrape settings: %+v", cfg)
	}
	if cfg.OutputDir != "/tmp/pfr" {
		t.Fatalf("expected OUTPUT_DIR to default to DATA_DIR, got %q", cfg.OutputDir)
	}
	if cfg.SiteBaseURL != "http://127.0.0.1:9999" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.SiteBaseURL)
	}
}

func TestLoad_Validation(t *testing.T) {
	cases := map[string][2]string{
		"zero workers":       {"SCRAPE_WORKERS", "0"},
		"bad letter":         {"SCRAPE_LETTERS", "AB"},
		"negative retries":   {"FETCH_MAX_RETRIES", "-1"},
		"zero start id":      {"START_PLAYER_ID", "0"},
		"bad timeout":        {"FETCH_TIMEOUT", "soon"},
		"relative site url":  {"SITE_BASE_URL", "pro-football-reference.com"},
		"unknown db driver":  {"DB_DRIVER", "mysql"},
		"unknown log format": {"LOG_FORMAT", "xml"},
		"bad clear flag":     {"CLEAR_OLD_DATA", "maybe"},
		"bad memory cache":   {"PAGE_CACHE_MEMORY", "sometimes"},
		"zero cache ttl":     {"PAGE_CACHE_TTL", "0s"},
	}

	for name, kv := range cases {
		kv := kv
		t.Run(name, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(kv[0], kv[1])
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", kv[0], kv[1])
			}
		})
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SERVICE_NAME", "pfr-scraper-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "pfr-scraper-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_SQLiteDefaultURL(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("DB_DRIVER", "sqlite3")
	t.Setenv("DB_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DBDriver != DBDriverSQLite || cfg.DBURL != "nfl_stats.db" {
		t.Fatalf("unexpected sqlite settings: driver=%q url=%q", cfg.DBDriver, cfg.DBURL)
	}
}

func TestLoad_PageCacheSettings(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PAGE_CACHE_MEMORY", "true")
	t.Setenv("PAGE_CACHE_TTL", "90m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.PageCacheMemory || cfg.PageCacheTTL != 90*time.Minute {
		t.Fatalf("unexpected page cache settings: memory=%t ttl=%s", cfg.PageCacheMemory, cfg.PageCacheTTL)
	}
}

func TestParseLetters_All(t *testing.T) {
	letters, err := ParseLetters("all")
	if err != nil {
		t.Fatalf("parse letters: %v", err)
	}
	if len(letters) != 26 || letters[0] != "A" || letters[25] != "Z" {
		t.Fatalf("unexpected alphabet: %v", letters)
	}
}
