package app

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/pfr-scraper/internal/config"
)

const sqliteBusyPragma = "busy_timeout(5000)"

// normalizeDBURL fills in connection parameters the export relies on without
// overriding anything the operator set explicitly.
func normalizeDBURL(driver, raw, appName string) string {
	raw = strings.TrimSpace(raw)
	switch driver {
	case config.DBDriverSQLite:
		return normalizeSQLiteDSN(raw)
	case config.DBDriverPostgres:
		return normalizePostgresURL(raw, appName)
	default:
		return raw
	}
}

func normalizePostgresURL(raw, appName string) string {
	appName = strings.TrimSpace(appName)
	if appName == "" {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil || parsed.Scheme == "" {
		// key=value DSN
		if strings.Contains(raw, "application_name=") {
			return raw
		}
		return raw + " fallback_application_name=" + appName
	}

	query := parsed.Query()
	if query.Get("application_name") == "" && query.Get("fallback_application_name") == "" {
		query.Set("fallback_application_name", appName)
		parsed.RawQuery = query.Encode()
	}

	return parsed.String()
}

// normalizeSQLiteDSN adds a busy timeout so a concurrent reader does not fail a load.
func normalizeSQLiteDSN(raw string) string {
	if raw == "" || raw == ":memory:" || strings.Contains(raw, "_pragma=") {
		return raw
	}
	sep := "?"
	if strings.Contains(raw, "?") {
		sep = "&"
	}
	return raw + sep + "_pragma=" + url.QueryEscape(sqliteBusyPragma)
}

func dbNameFromURL(driver, raw string) string {
	trimmed := strings.TrimSpace(raw)

	if driver == config.DBDriverSQLite {
		path, _, _ := strings.Cut(strings.TrimPrefix(trimmed, "file:"), "?")
		if path == "" || path == ":memory:" {
			return "memory"
		}
		return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
		if name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		if !strings.HasPrefix(token, "dbname=") {
			continue
		}
		name := strings.TrimSpace(strings.TrimPrefix(token, "dbname="))
		name = strings.Trim(name, `"'`)
		if name != "" {
			return name
		}
	}

	return ""
}

// MigrationURL is the URL golang-migrate connects with. Only PostgreSQL is migrated;
// SQLite builds its schema when the export opens it.
func MigrationURL(cfg config.Config) (string, error) {
	if cfg.DBDriver != config.DBDriverPostgres {
		return "", errors.Newf("migrations run against %s only, DB_DRIVER is %s", config.DBDriverPostgres, cfg.DBDriver)
	}
	if strings.TrimSpace(cfg.DBURL) == "" {
		return "", errors.New("DB_URL is required")
	}
	return normalizeDBURL(cfg.DBDriver, cfg.DBURL, cfg.ServiceName), nil
}
