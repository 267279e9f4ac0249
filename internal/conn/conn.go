// Package conn provides the short-lived MongoDB session a diagnostic run
// executes against.
//
// A session exposes three capabilities: the client, the target database and
// the admin database. Checks never see the driver directly; they call the
// administrative query surface described by [Deployment], which the driver
// backed [Conn] implements and which tests replace with a mock.
//
// Every error leaving this package is marked with an error kind from
// internal/errors at the point of failure, so callers branch with errors.Is
// instead of inspecting driver types or message text.
package conn

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/thoreinstein/mongo-toolkit/internal/errors"
	"github.com/thoreinstein/mongo-toolkit/internal/logging"
	"github.com/thoreinstein/mongo-toolkit/internal/redact"
)

// DefaultAppName is reported to the server in the client metadata.
const DefaultAppName = "mongo-toolkit"

// DefaultServerSelectionTimeout bounds how long Open waits for a usable server.
const DefaultServerSelectionTimeout = 5 * time.Second

// Server error codes the classifier recognizes.
const (
	codeUnauthorized         = 13
	codeAuthenticationFailed = 18
	codeNoReplicationEnabled = 76
	codeAtlasUnauthorized    = 8000
)

// Deployment is the administrative query surface checks run against.
//
//go:generate mockery
type Deployment interface {
	// AdminCommand runs cmd against the admin database.
	AdminCommand(ctx context.Context, cmd bson.D) (bson.M, error)

	// Command runs cmd against the target database.
	Command(ctx context.Context, cmd bson.D) (bson.M, error)

	// Aggregate runs pipeline over a collection of the target database.
	Aggregate(ctx context.Context, coll string, pipeline bson.A) ([]bson.M, error)

	// FindOne returns the first document of db.coll in sort order, or nil
	// when the collection is empty.
	FindOne(ctx context.Context, db, coll string, sort, projection bson.D) (bson.M, error)

	// ListCollectionNames lists the collections of the target database.
	ListCollectionNames(ctx context.Context) ([]string, error)

	// Database returns the target database name.
	Database() string
}

// Options configures Open.
type Options struct {
	URI                    string
	Database               string
	AppName                string
	ServerSelectionTimeout time.Duration
}

// Conn is a connected session bundling the client, target and admin databases.
type Conn struct {
	client *mongo.Client
	db     *mongo.Database
	admin  *mongo.Database
}

var _ Deployment = (*Conn)(nil)

// Open connects to the deployment and verifies a server is selectable.
// Failures are marked with errors.ErrConnection; unreachable deployments get
// a clarifying prefix.
func Open(ctx context.Context, opts Options) (*Conn, error) {
	if strings.TrimSpace(opts.URI) == "" {
		return nil, errors.WithHint(errors.Mark(errors.ErrMissingURI, errors.ErrConfig), "Pass it with --uri or set MONGO_TOOLKIT_URI.")
	}
	if opts.Database == "" {
		opts.Database = "admin"
	}
	if opts.AppName == "" {
		opts.AppName = DefaultAppName
	}
	if opts.ServerSelectionTimeout <= 0 {
		opts.ServerSelectionTimeout = DefaultServerSelectionTimeout
	}

	logger := logging.FromContext(ctx)
	logger.Debug("connecting", "uri", opts.URI, "database", opts.Database,
		"server_selection_timeout", opts.ServerSelectionTimeout)

	clientOpts := options.Client().
		ApplyURI(opts.URI).
		SetAppName(opts.AppName).
		SetServerSelectionTimeout(opts.ServerSelectionTimeout)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, connectError(err)
	}

	if err := client.Ping(ctx, readpref.PrimaryPreferred()); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, connectError(err)
	}

	logger.Debug("connected", "uri", redact.MaskURI(opts.URI))

	return &Conn{
		client: client,
		db:     client.Database(opts.Database),
		admin:  client.Database("admin"),
	}, nil
}

// With opens a session, hands it to fn and always releases it afterwards.
// Errors from closing the session are logged, not returned.
func With(ctx context.Context, opts Options, fn func(c *Conn) error) error {
	c, err := Open(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := c.Close(context.WithoutCancel(ctx)); closeErr != nil {
			logging.FromContext(ctx).Debug("closing session", "error", closeErr)
		}
	}()
	return fn(c)
}

// Close releases the session.
func (c *Conn) Close(ctx context.Context) error {
	return errors.Wrap(c.client.Disconnect(ctx), "disconnecting")
}

// Client returns the underlying driver client.
func (c *Conn) Client() *mongo.Client { return c.client }

// DB returns the target database.
func (c *Conn) DB() *mongo.Database { return c.db }

// Admin returns the admin database.
func (c *Conn) Admin() *mongo.Database { return c.admin }

// Database returns the target database name.
func (c *Conn) Database() string { return c.db.Name() }

// AdminCommand runs cmd against the admin database.
func (c *Conn) AdminCommand(ctx context.Context, cmd bson.D) (bson.M, error) {
	return runCommand(ctx, c.admin, cmd)
}

// Command runs cmd against the target database.
func (c *Conn) Command(ctx context.Context, cmd bson.D) (bson.M, error) {
	return runCommand(ctx, c.db, cmd)
}

func runCommand(ctx context.Context, db *mongo.Database, cmd bson.D) (bson.M, error) {
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return nil, Classify(err, commandName(cmd))
	}
	return out, nil
}

// Aggregate runs pipeline over coll in the target database.
func (c *Conn) Aggregate(ctx context.Context, coll string, pipeline bson.A) ([]bson.M, error) {
	cur, err := c.db.Collection(coll).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, Classify(err, "aggregate "+coll)
	}
	defer cur.Close(ctx)

	var out []bson.M
	if err := cur.All(ctx, &out); err != nil {
		return nil, Classify(err, "aggregate "+coll)
	}
	return out, nil
}

// FindOne returns the first document of db.coll in sort order.
func (c *Conn) FindOne(ctx context.Context, db, coll string, sort, projection bson.D) (bson.M, error) {
	opts := options.FindOne().SetSort(sort)
	if len(projection) > 0 {
		opts.SetProjection(projection)
	}

	var out bson.M
	err := c.client.Database(db).Collection(coll).FindOne(ctx, bson.D{}, opts).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, Classify(err, "find "+db+"."+coll)
	}
	return out, nil
}

// ListCollectionNames lists the collections of the target database.
func (c *Conn) ListCollectionNames(ctx context.Context) ([]string, error) {
	names, err := c.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, Classify(err, "listCollections")
	}
	return names, nil
}

// Classify wraps a driver error with op and marks it with its error kind.
func Classify(err error, op string) error {
	if err == nil {
		return nil
	}
	wrapped := errors.Wrap(err, op)

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		switch {
		case ce.Code == codeUnauthorized, ce.Code == codeAtlasUnauthorized:
			return errors.Mark(errors.Mark(wrapped, errors.ErrUnauthorized), errors.ErrCommand)
		case ce.Code == codeNoReplicationEnabled, strings.Contains(ce.Message, "not running with --replSet"):
			return errors.Mark(wrapped, errors.ErrNotReplicaSet)
		}
	}
	return errors.Mark(wrapped, errors.ErrCommand)
}

func connectError(err error) error {
	var wrapped error
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		wrapped = errors.Wrap(err, "unable to reach MongoDB cluster")
	} else {
		wrapped = errors.Wrap(err, "connecting to MongoDB")
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == codeAuthenticationFailed {
		wrapped = errors.Mark(wrapped, errors.ErrUnauthorized)
	}
	return errors.Mark(wrapped, errors.ErrConnection)
}

func commandName(cmd bson.D) string {
	if len(cmd) == 0 {
		return "command"
	}
	return cmd[0].Key
}
