package services

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/sizhu-cli/internal/core/domain"
)

// maxTrackedSubjects bounds how many per-subject buckets are kept. The least
// recently seen subject is dropped first and starts with a full bucket if it returns.
const maxTrackedSubjects = 1024

// SubjectLimiter applies a token bucket per subject.
// A limiter built from disabled settings allows everything.
type SubjectLimiter struct {
	mu       sync.Mutex
	cfg      domain.RateLimitSettings
	limiters *lru.Cache[string, *rate.Limiter]
}

// NewSubjectLimiter creates a limiter with the given settings.
func NewSubjectLimiter(cfg domain.RateLimitSettings) *SubjectLimiter {
	return newSubjectLimiter(cfg, maxTrackedSubjects)
}

func newSubjectLimiter(cfg domain.RateLimitSettings, size int) *SubjectLimiter {
	if size < 1 {
		size = 1
	}
	// lru.New fails only for a non-positive size.
	limiters, _ := lru.New[string, *rate.Limiter](size) //nolint:errcheck // size is positive
	return &SubjectLimiter{
		cfg:      cfg,
		limiters: limiters,
	}
}

// Allow reports whether subject may make a request now, consuming a token if so.
func (l *SubjectLimiter) Allow(subject string) bool {
	if l == nil || !l.cfg.Enabled() {
		return true
	}
	return l.limiter(subject).Allow()
}

func (l *SubjectLimiter) limiter(subject string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if lim, ok := l.limiters.Get(subject); ok {
		return lim
	}
	lim := rate.NewLimiter(rate.Limit(l.cfg.RequestsPerSecond), l.cfg.Burst)
	l.limiters.Add(subject, lim)
	return lim
}
