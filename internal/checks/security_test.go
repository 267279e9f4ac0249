package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/thoreinstein/mongo-toolkit/internal/doctor"
)

var (
	cmdCmdLineOpts = bson.D{{Key: "getCmdLineOpts", Value: 1}}
	cmdUsersInfo   = bson.D{
		{Key: "usersInfo", Value: bson.D{{Key: "forAllDBs", Value: true}}},
		{Key: "showPrivileges", Value: false},
	}
)

func TestAuthorizationMode(t *testing.T) {
	tests := []struct {
		name   string
		parsed bson.M
		want   doctor.Status
		mode   string
	}{
		{"enabled", bson.M{"security": bson.M{"authorization": "enabled"}}, doctor.StatusOK, "enabled"},
		{"explicitly disabled", bson.M{"security": bson.M{"authorization": "disabled"}}, doctor.StatusCritical, "disabled"},
		{"no security section", bson.M{"net": bson.M{"port": 27017}}, doctor.StatusCritical, "disabled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cc, dep := newContext(t, nil)
			dep.EXPECT().AdminCommand(mock.Anything, cmdCmdLineOpts).Return(bson.M{"parsed": tt.parsed}, nil).Once()

			res := run(t, "security:authorization-mode", cc)

			assert.Equal(t, tt.want, res.Status)
			assert.Equal(t, "Authorization is "+tt.mode+".", res.Summary)
		})
	}
}

func TestAuthorizationMode_Denied(t *testing.T) {
	cc, dep := newContext(t, nil)
	dep.EXPECT().AdminCommand(mock.Anything, cmdCmdLineOpts).Return(nil, errDenied).Once()

	res := run(t, "security:authorization-mode", cc)

	assert.Equal(t, doctor.StatusError, res.Status)
	assert.Contains(t, res.Recommendation, "getCmdLineOpts")
}

func TestOverprivilegedUsers(t *testing.T) {
	t.Run("flags sensitive roles", func(t *testing.T) {
		cc, dep := newContext(t, nil)
		dep.EXPECT().AdminCommand(mock.Anything, cmdUsersInfo).Return(bson.M{"users": bson.A{
			bson.M{"user": "ops", "db": "admin", "roles": bson.A{
				bson.M{"role": "root", "db": "admin"},
				bson.M{"role": "read", "db": "app"},
			}},
			bson.M{"user": "app", "db": "app", "roles": bson.A{
				bson.M{"role": "readWrite", "db": "app"},
			}},
			bson.M{"user": "etl", "db": "admin", "roles": bson.A{
				bson.M{"role": "readWriteAnyDatabase", "db": "admin"},
			}},
		}}, nil).Once()

		res := run(t, "security:overprivileged-users", cc)

		require.Equal(t, doctor.StatusWarn, res.Status)
		flagged := res.Details.([]FlaggedUser)
		require.Len(t, flagged, 2)
		assert.Equal(t, "ops@admin", flagged[0].User)
		assert.Equal(t, []string{"root@admin", "read@app"}, flagged[0].Roles)
		assert.Equal(t, []string{"root@admin"}, flagged[0].ElevatedRoles)
		assert.Equal(t, "etl@admin", flagged[1].User)
	})

	t.Run("no elevated users", func(t *testing.T) {
		cc, dep := newContext(t, nil)
		dep.EXPECT().AdminCommand(mock.Anything, cmdUsersInfo).Return(bson.M{"users": bson.A{
			bson.M{"user": "app", "db": "app", "roles": bson.A{bson.M{"role": "readWrite", "db": "app"}}},
		}}, nil).Once()

		res := run(t, "security:overprivileged-users", cc)

		assert.Equal(t, doctor.StatusOK, res.Status)
	})

	t.Run("enumeration denied", func(t *testing.T) {
		cc, dep := newContext(t, nil)
		dep.EXPECT().AdminCommand(mock.Anything, cmdUsersInfo).Return(nil, errDenied).Once()

		res := run(t, "security:overprivileged-users", cc)

		assert.Equal(t, doctor.StatusError, res.Status)
		assert.Contains(t, res.Recommendation, "userAdminAnyDatabase")
	})
}
