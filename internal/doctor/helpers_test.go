package doctor

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/thoreinstein/mongo-toolkit/internal/conn/mocks"
	"github.com/thoreinstein/mongo-toolkit/internal/logging"
)

var (
	cmdServerStatus = bson.D{{Key: "serverStatus", Value: 1}}
	cmdReplStatus   = bson.D{{Key: "replSetGetStatus", Value: 1}}
	cmdDBStats      = bson.D{{Key: "dbStats", Value: 1}, {Key: "scale", Value: 1}}
	cmdCurrentOp    = bson.D{{Key: "currentOp", Value: 1}, {Key: "$all", Value: true}}
)

func newTestContext(t *testing.T, raw map[string]float64) (*CheckContext, *mocks.MockDeployment) {
	t.Helper()
	dep := mocks.NewMockDeployment(t)
	return NewCheckContext(dep, NewOptions(raw), logging.ForTest(t)), dep
}

func staticCheck(res *Result) Check {
	return CheckFunc(func(context.Context, *CheckContext, Params) *Result {
		return res
	})
}

func testIssue(id, category string, check Check, opts ...Option) *Issue {
	return &Issue{
		ID:          id,
		Category:    category,
		Title:       id,
		Severity:    SeverityMedium,
		Description: "test issue",
		Options:     opts,
		Check:       check,
	}
}
