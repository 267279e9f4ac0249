package doctor

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/thoreinstein/mongo-toolkit/internal/conn"
	"github.com/thoreinstein/mongo-toolkit/internal/errors"
	"github.com/thoreinstein/mongo-toolkit/internal/logging"
)

// Source names one of the memoized administrative snapshots.
type Source int

const (
	// SourceServerStatus is {serverStatus: 1} on the admin database.
	SourceServerStatus Source = iota

	// SourceReplStatus is {replSetGetStatus: 1} on the admin database.
	SourceReplStatus

	// SourceDBStats is {dbStats: 1, scale: 1} on the target database.
	SourceDBStats

	// SourceCurrentOps is the inprog listing of {currentOp: 1, $all: true}.
	SourceCurrentOps

	numSources
)

// Sources lists every data source.
func Sources() []Source {
	return []Source{SourceServerStatus, SourceReplStatus, SourceDBStats, SourceCurrentOps}
}

func (s Source) String() string {
	switch s {
	case SourceServerStatus:
		return "serverStatus"
	case SourceReplStatus:
		return "replStatus"
	case SourceDBStats:
		return "dbStats"
	case SourceCurrentOps:
		return "currentOps"
	default:
		return "unknown"
	}
}

func (s Source) valid() bool {
	return s >= 0 && s < numSources
}

// SlotState is the state of one cache slot.
type SlotState uint8

const (
	// SlotUnfetched means no successful or terminal fetch happened yet.
	SlotUnfetched SlotState = iota

	// SlotFetched holds a value, which may be nil for an absent feature.
	SlotFetched

	// SlotFailed holds a retained error. Only replStatus reaches this state.
	SlotFailed
)

type slot struct {
	state   SlotState
	value   any
	err     error
	fetches int
}

// Cache memoizes the data sources of one check context. Each source is
// fetched at most once into a terminal state. A failed fetch of
// serverStatus, dbStats or currentOps leaves the slot unfetched so a later
// Acquire may retry; replStatus caches both "not a replica set" (nil value)
// and any other failure (retained error).
//
// Cache is not safe for concurrent use.
type Cache struct {
	dep    conn.Deployment
	logger *slog.Logger
	slots  [numSources]slot
}

func newCache(dep conn.Deployment, logger *slog.Logger) *Cache {
	return &Cache{dep: dep, logger: logger}
}

// Acquire returns the value of src, fetching it on first use.
func (c *Cache) Acquire(ctx context.Context, src Source) (any, error) {
	if !src.valid() {
		return nil, errors.Mark(errors.Newf("unknown data source %d", int(src)), errors.ErrConfig)
	}

	s := &c.slots[src]
	switch s.state {
	case SlotFetched:
		c.logger.Log(ctx, logging.LevelTrace, "data source cache hit", "source", src)
		return s.value, nil
	case SlotFailed:
		c.logger.Debug("data source failed earlier", "source", src, "error", s.err)
		return nil, s.err
	}

	c.logger.Debug("fetching data source", "source", src)
	s.fetches++
	value, err := c.fetch(ctx, src)

	if src == SourceReplStatus {
		switch {
		case errors.Is(err, errors.ErrNotReplicaSet):
			c.logger.Debug("deployment is not a replica set")
			s.state, s.value = SlotFetched, nil
			return nil, nil
		case err != nil:
			s.state, s.err = SlotFailed, err
			return nil, err
		}
	}
	if err != nil {
		c.logger.Debug("data source fetch failed", "source", src, "error", err)
		return nil, err
	}

	s.state, s.value = SlotFetched, value
	return value, nil
}

// State reports the slot state of src.
func (c *Cache) State(src Source) SlotState {
	if !src.valid() {
		return SlotUnfetched
	}
	return c.slots[src].state
}

// Fetches reports how many remote fetches were attempted for src.
func (c *Cache) Fetches(src Source) int {
	if !src.valid() {
		return 0
	}
	return c.slots[src].fetches
}

func (c *Cache) fetch(ctx context.Context, src Source) (any, error) {
	switch src {
	case SourceServerStatus:
		doc, err := c.dep.AdminCommand(ctx, bson.D{{Key: "serverStatus", Value: 1}})
		if err != nil {
			return nil, err
		}
		var out ServerStatus
		if err := Decode(doc, &out); err != nil {
			return nil, errors.Wrap(err, "serverStatus")
		}
		return &out, nil

	case SourceReplStatus:
		doc, err := c.dep.AdminCommand(ctx, bson.D{{Key: "replSetGetStatus", Value: 1}})
		if err != nil {
			return nil, err
		}
		var out ReplStatus
		if err := Decode(doc, &out); err != nil {
			return nil, errors.Wrap(err, "replSetGetStatus")
		}
		return &out, nil

	case SourceDBStats:
		doc, err := c.dep.Command(ctx, bson.D{{Key: "dbStats", Value: 1}, {Key: "scale", Value: 1}})
		if err != nil {
			return nil, err
		}
		var out DBStats
		if err := Decode(doc, &out); err != nil {
			return nil, errors.Wrap(err, "dbStats")
		}
		return &out, nil

	case SourceCurrentOps:
		doc, err := c.dep.AdminCommand(ctx, bson.D{{Key: "currentOp", Value: 1}, {Key: "$all", Value: true}})
		if err != nil {
			return nil, err
		}
		var out currentOpReply
		if err := Decode(doc, &out); err != nil {
			return nil, errors.Wrap(err, "currentOp")
		}
		if out.InProg == nil {
			out.InProg = []CurrentOp{}
		}
		return out.InProg, nil
	}
	return nil, errors.Newf("unhandled data source %s", src)
}

// ServerStatus returns the cached serverStatus snapshot.
func (c *Cache) ServerStatus(ctx context.Context) (*ServerStatus, error) {
	v, err := c.Acquire(ctx, SourceServerStatus)
	if err != nil {
		return nil, err
	}
	ss, _ := v.(*ServerStatus)
	return ss, nil
}

// ReplStatus returns the cached replica set status. A nil status with a nil
// error means the deployment is not a replica set.
func (c *Cache) ReplStatus(ctx context.Context) (*ReplStatus, error) {
	v, err := c.Acquire(ctx, SourceReplStatus)
	if err != nil {
		return nil, err
	}
	rs, _ := v.(*ReplStatus)
	return rs, nil
}

// DBStats returns the cached statistics of the target database.
func (c *Cache) DBStats(ctx context.Context) (*DBStats, error) {
	v, err := c.Acquire(ctx, SourceDBStats)
	if err != nil {
		return nil, err
	}
	st, _ := v.(*DBStats)
	return st, nil
}

// CurrentOps returns the cached in-progress operations.
func (c *Cache) CurrentOps(ctx context.Context) ([]CurrentOp, error) {
	v, err := c.Acquire(ctx, SourceCurrentOps)
	if err != nil {
		return nil, err
	}
	ops, _ := v.([]CurrentOp)
	return ops, nil
}
