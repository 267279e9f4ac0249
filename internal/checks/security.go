package checks

import (
	"context"
	"fmt"
	"slices"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/thoreinstein/mongo-toolkit/internal/doctor"
)

// SensitiveRoles are built-in roles granting cluster-wide privileges.
var SensitiveRoles = []string{
	"root",
	"readWriteAnyDatabase",
	"dbAdminAnyDatabase",
	"userAdminAnyDatabase",
	"clusterAdmin",
}

func securityIssues() []*doctor.Issue {
	return []*doctor.Issue{
		{
			ID:          "security:authorization-mode",
			Category:    CategorySecurity,
			Title:       "Authorization enforcement",
			Severity:    doctor.SeverityHigh,
			Tags:        []string{"auth", "compliance"},
			Description: "Verifies whether authorization is enabled in the server configuration.",
			Check:       doctor.CheckFunc(authorizationMode),
		},
		{
			ID:          "security:overprivileged-users",
			Category:    CategorySecurity,
			Title:       "Over-privileged database users",
			Severity:    doctor.SeverityMedium,
			Tags:        []string{"roles", "privileges"},
			Description: "Flags users that hold cluster-wide roles such as root or readWriteAnyDatabase.",
			Check:       doctor.CheckFunc(overprivilegedUsers),
		},
	}
}

// SecuritySettings is the security section of the parsed server options.
type SecuritySettings struct {
	Authorization   string `bson:"authorization" json:"authorization,omitempty" yaml:"authorization,omitempty"`
	ClusterAuthMode string `bson:"clusterAuthMode" json:"clusterAuthMode,omitempty" yaml:"clusterAuthMode,omitempty"`
}

type cmdLineOpts struct {
	Parsed struct {
		Security *SecuritySettings `bson:"security"`
	} `bson:"parsed"`
}

func authorizationMode(ctx context.Context, cc *doctor.CheckContext, _ doctor.Params) *doctor.Result {
	const rec = "Connect with a cluster-admin role or enable getCmdLineOpts on the server."

	doc, err := cc.Deployment().AdminCommand(ctx, bson.D{{Key: "getCmdLineOpts", Value: 1}})
	if err != nil {
		return doctor.Failed("Unable to inspect server command-line options.", err, rec)
	}
	var opts cmdLineOpts
	if err := doctor.Decode(doc, &opts); err != nil {
		return doctor.Failed("Unable to inspect server command-line options.", err, rec)
	}

	mode := "disabled"
	if sec := opts.Parsed.Security; sec != nil && sec.Authorization != "" {
		mode = sec.Authorization
	}

	if mode == "enabled" {
		return &doctor.Result{
			Status:         doctor.StatusOK,
			Summary:        "Authorization is enabled.",
			Details:        opts.Parsed.Security,
			Recommendation: "Authorization is enforced. No action required.",
		}
	}
	res := &doctor.Result{
		Status:         doctor.StatusCritical,
		Summary:        fmt.Sprintf("Authorization is %s.", mode),
		Recommendation: "Enable authorization to prevent unauthenticated access (set security.authorization to enabled).",
	}
	if opts.Parsed.Security != nil {
		res.Details = opts.Parsed.Security
	}
	return res
}

// FlaggedUser is one user in the over-privileged users details.
type FlaggedUser struct {
	User          string   `json:"user" yaml:"user"`
	Roles         []string `json:"roles" yaml:"roles"`
	ElevatedRoles []string `json:"elevatedRoles" yaml:"elevatedRoles"`
}

type usersInfoReply struct {
	Users []struct {
		User  string `bson:"user"`
		DB    string `bson:"db"`
		Roles []struct {
			Role string `bson:"role"`
			DB   string `bson:"db"`
		} `bson:"roles"`
	} `bson:"users"`
}

func overprivilegedUsers(ctx context.Context, cc *doctor.CheckContext, _ doctor.Params) *doctor.Result {
	const rec = "Connect to the admin database with userAdminAnyDatabase or root."

	doc, err := cc.Deployment().AdminCommand(ctx, bson.D{
		{Key: "usersInfo", Value: bson.D{{Key: "forAllDBs", Value: true}}},
		{Key: "showPrivileges", Value: false},
	})
	if err != nil {
		return doctor.Failed("Unable to enumerate users.", err, rec)
	}
	var reply usersInfoReply
	if err := doctor.Decode(doc, &reply); err != nil {
		return doctor.Failed("Unable to enumerate users.", err, rec)
	}

	var flagged []FlaggedUser
	for _, u := range reply.Users {
		entry := FlaggedUser{User: u.User + "@" + u.DB, Roles: []string{}}
		for _, r := range u.Roles {
			qualified := r.Role + "@" + r.DB
			entry.Roles = append(entry.Roles, qualified)
			if slices.Contains(SensitiveRoles, r.Role) {
				entry.ElevatedRoles = append(entry.ElevatedRoles, qualified)
			}
		}
		if len(entry.ElevatedRoles) > 0 {
			flagged = append(flagged, entry)
		}
	}

	if len(flagged) == 0 {
		return &doctor.Result{
			Status:  doctor.StatusOK,
			Summary: "No users with cluster-wide privileges were found.",
		}
	}

	return &doctor.Result{
		Status:         doctor.StatusWarn,
		Summary:        fmt.Sprintf("%d user(s) with cluster-wide roles detected.", len(flagged)),
		Details:        flagged,
		Recommendation: "Limit root/readWriteAnyDatabase usage to automation users and rotate credentials regularly.",
	}
}
