// Package config provides 12-factor configuration management for the
// scout candidate-search tool.
//
// Configuration is loaded from environment variables with sensible
// defaults.
//
// Configuration Sections:
//   - Debug: browser remote-debugging endpoint (host, port)
//   - Browser: interaction timing (settle delay, poll interval, wait timeout)
//   - Search: pipeline defaults (page limit, min score, target count, pacing)
//   - Store: results output directory
//   - Logging: log level and output format
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("debugging %s:%d\n", cfg.Debug.Host, cfg.Debug.Port)
//
// Environment Variables:
//   - CDP_HOST, CDP_PORT
//   - NAV_SETTLE_DELAY, WAIT_POLL_INTERVAL, WAIT_TIMEOUT
//   - SEARCH_PAGE_LIMIT, SEARCH_MIN_SCORE, SEARCH_TARGET_COUNT, SEARCH_PAGE_DELAY, SEARCH_SELECTORS_FILE
//   - RESULTS_DIR, LOG_LEVEL, LOG_DEV
package config
