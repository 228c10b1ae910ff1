package search

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/hireloop/scout/internal/infrastructure/config"
	"github.com/hireloop/scout/internal/logging"
)

const searchBase = "https://www.linkedin.com/search/results/people/"

// Browser is the interaction surface the pipeline drives.
type Browser interface {
	Navigate(ctx context.Context, url string) error
	WaitForSelector(ctx context.Context, selector string, timeout time.Duration) bool
}

// Source yields the candidate records on the current page.
type Source interface {
	FromPage(ctx context.Context) []Candidate
}

// Store receives the finished candidate list exactly once per run.
// Fire-and-forget: a store failure is logged, never propagated.
type Store interface {
	Save(ctx context.Context, runID string, candidates []Candidate) error
}

// Pipeline is the paginated search state machine.
type Pipeline struct {
	browser Browser
	source  Source
	store   Store
	sel     Selectors
	cfg     config.SearchConfig
	timeout time.Duration
	limiter *rate.Limiter
	log     *logging.Logger
}

// New creates a pipeline. waitTimeout bounds the per-page wait for the
// results container.
func New(b Browser, src Source, st Store, sel Selectors, cfg config.SearchConfig, waitTimeout time.Duration, log *logging.Logger) *Pipeline {
	if log == nil {
		log = logging.NewNop()
	}
	delay := cfg.PageDelay
	if delay <= 0 {
		delay = time.Nanosecond
	}
	limiter := rate.NewLimiter(rate.Every(delay), 1)
	limiter.Allow() // drain the initial token so the first wait paces too
	return &Pipeline{
		browser: b,
		source:  src,
		store:   st,
		sel:     sel,
		cfg:     cfg,
		timeout: waitTimeout,
		limiter: limiter,
		log:     log,
	}
}

// Run executes one bounded search. Pages are visited strictly in
// order; a failure on the first page aborts the whole run, a failure
// on any later page contributes zero candidates and the run moves on.
// Iteration stops early once TargetCount unique qualifying candidates
// have accumulated. Cancelling the context ends the run: the partial
// accumulation comes back with Success false and the cancellation as
// the error.
func (p *Pipeline) Run(ctx context.Context, params Params) Result {
	params = p.withDefaults(params)
	runID := uuid.NewString()
	log := p.log.With(zap.String("run_id", runID), zap.String("query", params.Query))

	log.Info("search starting",
		zap.String("location", params.Location),
		zap.Int("page_limit", params.PageLimit),
		zap.Float64("min_score", params.MinScore),
		zap.Int("target_count", params.TargetCount))

	queryLower := strings.ToLower(params.Query)
	keywords := params.Query
	if params.Location != "" {
		keywords = params.Query + " " + params.Location
	}

	var kept []Candidate
	seen := make(map[string]struct{})

	for page := 1; page <= params.PageLimit; page++ {
		if page > 1 {
			if err := p.limiter.Wait(ctx); err != nil {
				log.Warn("pacing interrupted", zap.Error(err))
				break
			}
		}

		pageURL := buildSearchURL(keywords, page)
		if err := p.browser.Navigate(ctx, pageURL); err != nil {
			if page == 1 {
				// First-page failures are fatal: nothing was set up yet
				// and every later page would hit the same wall.
				log.Error("initial navigation failed", zap.Error(err))
				return Result{Success: false, Error: err.Error()}
			}
			log.Warn("page navigation failed, skipping",
				zap.Int("page", page), zap.Error(err))
			continue
		}

		if !p.browser.WaitForSelector(ctx, p.sel.ResultsContainer, p.timeout) {
			log.Debug("results container never appeared", zap.Int("page", page))
		}

		added := 0
		for _, cand := range p.source.FromPage(ctx) {
			score := Score(strings.ToLower(cand.Headline), queryLower)
			if score < params.MinScore {
				continue
			}
			key := normalizeProfileURL(cand.ProfileURL)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			cand.Score = score
			kept = append(kept, cand)
			added++
			if len(kept) >= params.TargetCount {
				break
			}
		}
		log.Info("page done", zap.Int("page", page), zap.Int("added", added),
			zap.Int("total", len(kept)))

		if len(kept) >= params.TargetCount {
			log.Info("target count reached, stopping early")
			break
		}
	}

	if err := p.store.Save(ctx, runID, kept); err != nil {
		log.Error("persisting candidates failed", zap.Error(err))
	}

	// A cancelled run still reports whatever it accumulated, but never
	// masquerades as a complete one.
	if err := ctx.Err(); err != nil {
		return Result{
			CandidatesFound: len(kept),
			Candidates:      kept,
			Error:           err.Error(),
		}
	}

	return Result{
		Success:         true,
		CandidatesFound: len(kept),
		Candidates:      kept,
	}
}

func (p *Pipeline) withDefaults(params Params) Params {
	if params.PageLimit <= 0 {
		params.PageLimit = p.cfg.PageLimit
	}
	if params.MinScore <= 0 {
		params.MinScore = p.cfg.MinScore
	}
	if params.TargetCount <= 0 {
		params.TargetCount = p.cfg.TargetCount
	}
	return params
}

func buildSearchURL(keywords string, page int) string {
	u := fmt.Sprintf("%s?keywords=%s", searchBase, url.QueryEscape(keywords))
	if page > 1 {
		u += fmt.Sprintf("&page=%d", page)
	}
	return u
}

var profilePathRe = regexp.MustCompile(`/in/([^/?#]+)`)

// normalizeProfileURL canonicalizes a profile URL for dedup: tracking
// parameters and trailing slashes go, case folds, and when a profile
// id is recognizable the whole URL collapses to its canonical form.
// The candidate record keeps the original URL; only the dedup key is
// normalized.
func normalizeProfileURL(raw string) string {
	if raw == "" {
		return ""
	}
	u := raw
	if i := strings.IndexByte(u, '?'); i >= 0 {
		u = u[:i]
	}
	u = strings.ToLower(strings.TrimRight(u, "/"))
	if m := profilePathRe.FindStringSubmatch(u); m != nil {
		return "https://www.linkedin.com/in/" + m[1]
	}
	return u
}
