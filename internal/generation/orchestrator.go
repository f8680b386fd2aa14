package generation

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// Default retry tuning for the brief generation loop.
const (
	DefaultMaxRetries        = 2
	DefaultContentRetryDelay = 2 * time.Second
	DefaultErrorRetryDelay   = 3 * time.Second
)

// RetryConfig tunes the orchestrator's retry behavior.
type RetryConfig struct {
	// MaxRetries is the number of additional attempts after the first one.
	// MaxRetries=2 yields up to 3 generator calls.
	MaxRetries int

	// ContentRetryDelay is the pause before retrying after the classifier
	// rejects otherwise successful output.
	ContentRetryDelay time.Duration

	// ErrorRetryDelay is the pause before retrying after a generator error.
	ErrorRetryDelay time.Duration
}

// DefaultRetryConfig returns the standard retry tuning.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:        DefaultMaxRetries,
		ContentRetryDelay: DefaultContentRetryDelay,
		ErrorRetryDelay:   DefaultErrorRetryDelay,
	}
}

// Result is the outcome of an orchestrated generation run. Exactly one of
// the generator's output or the fallback content is carried; Attempts counts
// generator calls actually made and never includes the fallback.
type Result struct {
	Content      string
	TokenUsage   json.RawMessage
	Attempts     int
	UsedFallback bool
}

// Orchestrator drives the generate/classify/retry loop around a
// BriefGenerator. Generator failures and classifier rejections are retried
// up to the configured limit; once attempts are exhausted the deterministic
// fallback is substituted, so Run only returns an error when the context is
// canceled or the request is invalid. Callers always get usable content.
type Orchestrator struct {
	cfg      RetryConfig
	classify *Classifier
	fallback *FallbackGenerator
	logger   *slog.Logger

	// sleep is swapped in tests to avoid real delays.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewOrchestrator creates an Orchestrator with the given configuration.
// Returns ErrInvalidRetryConfig if MaxRetries is negative. Zero-valued
// delays are replaced with the defaults.
func NewOrchestrator(cfg RetryConfig, classifier *Classifier, fallback *FallbackGenerator, logger *slog.Logger) (*Orchestrator, error) {
	if cfg.MaxRetries < 0 {
		return nil, ErrInvalidRetryConfig
	}
	if classifier == nil || fallback == nil {
		return nil, ErrInvalidConfig
	}
	if cfg.ContentRetryDelay <= 0 {
		cfg.ContentRetryDelay = DefaultContentRetryDelay
	}
	if cfg.ErrorRetryDelay <= 0 {
		cfg.ErrorRetryDelay = DefaultErrorRetryDelay
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		cfg:      cfg,
		classify: classifier,
		fallback: fallback,
		logger:   logger.With("component", "generation_orchestrator"),
		sleep:    sleepContext,
	}, nil
}

// Run executes the retry loop for req against gen. The returned error is
// non-nil only for an invalid request or context cancellation; every other
// failure mode resolves to fallback content.
func (o *Orchestrator) Run(ctx context.Context, req BriefRequest, gen BriefGenerator) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	maxAttempts := o.cfg.MaxRetries + 1
	log := o.logger.With("keyword", req.Keyword, "location", req.Location)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		brief, err := gen.GenerateBrief(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Warn("brief generation attempt failed",
				"attempt", attempt,
				"max_attempts", maxAttempts,
				"error", err)
			if attempt < maxAttempts {
				if serr := o.sleep(ctx, o.cfg.ErrorRetryDelay); serr != nil {
					return nil, serr
				}
			}
			continue
		}

		// A nil brief with a nil error counts as an empty-content attempt;
		// the classifier rejects it with the no-content reason.
		if brief == nil {
			brief = &Brief{}
		}

		verdict := o.classify.Classify(brief.Content)
		if verdict.Accepted {
			log.Info("brief generation succeeded",
				"attempt", attempt,
				"content_length", len(brief.Content))
			return &Result{
				Content:    brief.Content,
				TokenUsage: brief.TokenUsage,
				Attempts:   attempt,
			}, nil
		}

		log.Warn("generated brief rejected",
			"attempt", attempt,
			"max_attempts", maxAttempts,
			"rule_set", o.classify.RuleSetVersion(),
			"reasons", verdict.Reasons)
		if attempt < maxAttempts {
			if serr := o.sleep(ctx, o.cfg.ContentRetryDelay); serr != nil {
				return nil, serr
			}
		}
	}

	log.Warn("all generation attempts exhausted, using fallback content",
		"attempts", maxAttempts)
	fb := o.fallback.GenerateBrief(req)
	return &Result{
		Content:      fb.Content,
		TokenUsage:   fb.TokenUsage,
		Attempts:     maxAttempts,
		UsedFallback: true,
	}, nil
}

// sleepContext waits for d or until ctx is done, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
