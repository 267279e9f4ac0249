package doctor

import (
	"log/slog"

	"github.com/thoreinstein/mongo-toolkit/internal/conn"
	"github.com/thoreinstein/mongo-toolkit/internal/logging"
)

// CheckContext bundles what a check may use: the deployment's query
// surface, the run-scoped options and the data source cache. The caller
// owns the underlying connection and releases it after the run.
type CheckContext struct {
	dep     conn.Deployment
	options Options
	cache   *Cache
	logger  *slog.Logger
}

// NewCheckContext creates a context with an empty cache. A nil logger
// discards output.
func NewCheckContext(dep conn.Deployment, opts Options, logger *slog.Logger) *CheckContext {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &CheckContext{
		dep:     dep,
		options: opts,
		cache:   newCache(dep, logger),
		logger:  logger,
	}
}

// Deployment returns the query surface for checks that need bespoke queries.
func (cc *CheckContext) Deployment() conn.Deployment { return cc.dep }

// Options returns the run-scoped options.
func (cc *CheckContext) Options() Options { return cc.options }

// Cache returns the data source cache.
func (cc *CheckContext) Cache() *Cache { return cc.cache }

// Logger returns the run logger.
func (cc *CheckContext) Logger() *slog.Logger { return cc.logger }
