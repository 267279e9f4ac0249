package conn

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/thoreinstein/mongo-toolkit/internal/errors"
	"github.com/thoreinstein/mongo-toolkit/internal/logging"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind string
		wantIs   []error
		wantNot  []error
	}{
		{
			name:     "unauthorized",
			err:      mongo.CommandError{Code: 13, Name: "Unauthorized", Message: "not authorized on admin to execute command { serverStatus: 1 }"},
			wantKind: "unauthorized",
			wantIs:   []error{errors.ErrUnauthorized, errors.ErrCommand},
			wantNot:  []error{errors.ErrNotReplicaSet},
		},
		{
			name:     "atlas unauthorized",
			err:      mongo.CommandError{Code: 8000, Name: "AtlasError", Message: "user is not allowed to do action [getCmdLineOpts]"},
			wantKind: "unauthorized",
			wantIs:   []error{errors.ErrUnauthorized},
		},
		{
			name:     "no replication enabled",
			err:      mongo.CommandError{Code: 76, Name: "NoReplicationEnabled", Message: "not running with --replSet"},
			wantKind: "not-replica-set",
			wantIs:   []error{errors.ErrNotReplicaSet},
			wantNot:  []error{errors.ErrCommand, errors.ErrUnauthorized},
		},
		{
			name:     "legacy replSet message",
			err:      mongo.CommandError{Code: 0, Message: "not running with --replSet"},
			wantKind: "not-replica-set",
			wantIs:   []error{errors.ErrNotReplicaSet},
		},
		{
			name:     "command not found",
			err:      mongo.CommandError{Code: 59, Name: "CommandNotFound", Message: "no such command: 'replSetGetStatus'"},
			wantKind: "command",
			wantIs:   []error{errors.ErrCommand},
			wantNot:  []error{errors.ErrNotReplicaSet},
		},
		{
			name:     "non-command error",
			err:      errors.New("connection reset by peer"),
			wantKind: "command",
			wantIs:   []error{errors.ErrCommand},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err, "serverStatus")
			if kind := errors.Kind(got); kind != tt.wantKind {
				t.Errorf("Kind() = %q, want %q", kind, tt.wantKind)
			}
			for _, want := range tt.wantIs {
				if !errors.Is(got, want) {
					t.Errorf("errors.Is(%v) = false, want true", want)
				}
			}
			for _, not := range tt.wantNot {
				if errors.Is(got, not) {
					t.Errorf("errors.Is(%v) = true, want false", not)
				}
			}
			if !strings.HasPrefix(got.Error(), "serverStatus: ") {
				t.Errorf("Error() = %q, want op prefix", got.Error())
			}

			var ce mongo.CommandError
			if _, isCmd := tt.err.(mongo.CommandError); isCmd && !errors.As(got, &ce) {
				t.Error("classified error should still unwrap to mongo.CommandError")
			}
		})
	}
}

func TestClassify_Nil(t *testing.T) {
	if err := Classify(nil, "ping"); err != nil {
		t.Errorf("Classify(nil) = %v, want nil", err)
	}
}

func TestOpen_MissingURI(t *testing.T) {
	for _, uri := range []string{"", "   "} {
		_, err := Open(t.Context(), Options{URI: uri})
		if err == nil {
			t.Fatalf("Open(%q) error = nil, want error", uri)
		}
		if !errors.Is(err, errors.ErrMissingURI) {
			t.Errorf("Open(%q) error = %v, want ErrMissingURI", uri, err)
		}
		if !errors.Is(err, errors.ErrConfig) {
			t.Errorf("Open(%q) should be marked ErrConfig", uri)
		}
	}
}

func TestOpen_Unreachable(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for server selection timeout")
	}

	ctx := logging.NewContext(context.Background(), logging.ForTest(t))
	start := time.Now()
	_, err := Open(ctx, Options{
		URI:                    "mongodb://127.0.0.1:1/?connectTimeoutMS=100",
		ServerSelectionTimeout: 200 * time.Millisecond,
	})
	if err == nil {
		t.Fatal("Open() error = nil, want connection error")
	}
	if !errors.Is(err, errors.ErrConnection) {
		t.Errorf("Open() error = %v, want ErrConnection mark", err)
	}
	if !strings.Contains(err.Error(), "MongoDB") {
		t.Errorf("Open() error = %q, want clarifying prefix", err.Error())
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Errorf("Open() took %v, server selection timeout not applied", elapsed)
	}
}

func TestWith_OpenFailureSkipsCallback(t *testing.T) {
	called := false
	err := With(t.Context(), Options{}, func(*Conn) error {
		called = true
		return nil
	})
	if err == nil {
		t.Fatal("With() error = nil, want error")
	}
	if called {
		t.Error("callback must not run when the session cannot be opened")
	}
}

func TestCommandName(t *testing.T) {
	tests := []struct {
		cmd  bson.D
		want string
	}{
		{bson.D{{Key: "serverStatus", Value: 1}}, "serverStatus"},
		{bson.D{{Key: "dbStats", Value: 1}, {Key: "scale", Value: 1}}, "dbStats"},
		{nil, "command"},
	}
	for _, tt := range tests {
		if got := commandName(tt.cmd); got != tt.want {
			t.Errorf("commandName(%v) = %q, want %q", tt.cmd, got, tt.want)
		}
	}
}
