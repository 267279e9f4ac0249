package checks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/thoreinstein/mongo-toolkit/internal/doctor"
	"github.com/thoreinstein/mongo-toolkit/internal/errors"
)

var cmdProfile = bson.D{{Key: "profile", Value: -1}}

func TestWiredTigerCache(t *testing.T) {
	tests := []struct {
		name  string
		used  int64
		dirty int64
		want  doctor.Status
	}{
		{"ok", 50, 5, doctor.StatusOK},
		{"warn", 85, 5, doctor.StatusWarn},
		{"critical utilization", 95, 5, doctor.StatusCritical},
		{"critical dirty ratio", 10, 40, doctor.StatusCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cc, dep := newContext(t, nil)
			dep.EXPECT().AdminCommand(mock.Anything, cmdServerStatus).Return(bson.M{
				"wiredTiger": bson.M{"cache": bson.M{
					"bytes currently in the cache":     tt.used,
					"tracked dirty bytes in the cache": tt.dirty,
					"maximum bytes configured":         int64(100),
				}},
			}, nil).Once()

			res := run(t, "performance:wiredtiger-cache", cc)

			assert.Equal(t, tt.want, res.Status, res.Summary)
			details := res.Details.(CacheDetails)
			assert.InDelta(t, float64(tt.used), details.UsedBytes, 0)
			assert.InDelta(t, 100, details.MaxBytes, 0)
		})
	}
}

func TestWiredTigerCache_Unavailable(t *testing.T) {
	cc, dep := newContext(t, nil)
	dep.EXPECT().AdminCommand(mock.Anything, cmdServerStatus).Return(bson.M{
		"storageEngine": bson.M{"name": "inMemory"},
	}, nil).Once()

	res := run(t, "performance:wiredtiger-cache", cc)

	assert.Equal(t, doctor.StatusInfo, res.Status)
	details := res.Details.(map[string]any)
	assert.Equal(t, doctor.StorageEngine{Name: "inMemory"}, details["storageEngine"])
}

func TestSlowQueries(t *testing.T) {
	t.Run("profiler disabled", func(t *testing.T) {
		cc, dep := newContext(t, nil)
		dep.EXPECT().Command(mock.Anything, cmdProfile).Return(bson.M{"was": 0, "slowms": 100}, nil).Once()

		res := run(t, "performance:slow-queries", cc)

		assert.Equal(t, doctor.StatusWarn, res.Status)
		assert.Contains(t, res.Summary, "disabled")
	})

	t.Run("profiler probe denied", func(t *testing.T) {
		cc, dep := newContext(t, nil)
		dep.EXPECT().Command(mock.Anything, cmdProfile).Return(nil, errDenied).Once()

		res := run(t, "performance:slow-queries", cc)

		assert.Equal(t, doctor.StatusError, res.Status)
		assert.Contains(t, res.Recommendation, "profile")
	})

	t.Run("no slow operations", func(t *testing.T) {
		cc, dep := newContext(t, nil)
		dep.EXPECT().Command(mock.Anything, cmdProfile).Return(bson.M{"was": 1}, nil).Once()
		dep.EXPECT().Aggregate(mock.Anything, "system.profile", mock.Anything).Return(nil, nil).Once()

		res := run(t, "performance:slow-queries", cc)

		assert.Equal(t, doctor.StatusOK, res.Status)
		assert.Contains(t, res.Summary, "500 ms")
	})

	t.Run("slow operations listed", func(t *testing.T) {
		cc, dep := newContext(t, map[string]float64{"slowMs": 200, "threshold": 9999})
		var pipeline bson.A
		dep.EXPECT().Command(mock.Anything, cmdProfile).Return(bson.M{"was": 2}, nil).Once()
		dep.EXPECT().Aggregate(mock.Anything, "system.profile", mock.Anything).
			Run(func(_ context.Context, _ string, p bson.A) { pipeline = p }).
			Return([]bson.M{
				{"ns": "app.orders", "millis": 1200, "op": "query", "command": bson.M{"status": "A"}},
				{"ns": "app.users", "millis": 250, "op": "update"},
			}, nil).Once()

		res := run(t, "performance:slow-queries", cc)

		require.Equal(t, doctor.StatusWarn, res.Status)
		ops := res.Details.([]SlowOp)
		require.Len(t, ops, 2)
		assert.Equal(t, "app.orders", ops[0].NS)
		assert.InDelta(t, 1200, ops[0].Millis, 0)
		assert.Contains(t, ops[0].Command, `"status"`)
		assert.Empty(t, ops[1].Command)

		match := pipeline[0].(bson.D)[0].Value.(bson.D)[0].Value.(bson.D)[0]
		assert.Equal(t, "$gte", match.Key)
		assert.InDelta(t, 200, match.Value, 0, "specific option must win over generic threshold")
		limit := pipeline[2].(bson.D)[0]
		assert.Equal(t, "$limit", limit.Key)
		assert.Equal(t, 5, limit.Value)
	})

	t.Run("non-positive limit clamped", func(t *testing.T) {
		cc, dep := newContext(t, map[string]float64{"limit": 0})
		var pipeline bson.A
		dep.EXPECT().Command(mock.Anything, cmdProfile).Return(bson.M{"was": 1}, nil).Once()
		dep.EXPECT().Aggregate(mock.Anything, "system.profile", mock.Anything).
			Run(func(_ context.Context, _ string, p bson.A) { pipeline = p }).
			Return(nil, nil).Once()

		res := run(t, "performance:slow-queries", cc)

		assert.Equal(t, doctor.StatusOK, res.Status)
		limit := pipeline[2].(bson.D)[0]
		assert.Equal(t, 1, limit.Value)
	})

	t.Run("profile collection unreadable", func(t *testing.T) {
		cc, dep := newContext(t, nil)
		dep.EXPECT().Command(mock.Anything, cmdProfile).Return(bson.M{"was": 1}, nil).Once()
		dep.EXPECT().Aggregate(mock.Anything, "system.profile", mock.Anything).
			Return(nil, errors.Mark(errors.New("boom"), errors.ErrCommand)).Once()

		res := run(t, "performance:slow-queries", cc)

		assert.Equal(t, doctor.StatusError, res.Status)
		assert.Equal(t, "command", res.Details.(doctor.ErrorDetails).Kind)
	})
}
