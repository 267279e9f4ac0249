package doctor

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/thoreinstein/mongo-toolkit/internal/errors"
)

// ServerStatus is the subset of the serverStatus document checks consume.
type ServerStatus struct {
	Host          string        `bson:"host"`
	Version       string        `bson:"version"`
	Uptime        float64       `bson:"uptime"`
	Connections   Connections   `bson:"connections"`
	WiredTiger    *WiredTiger   `bson:"wiredTiger,omitempty"`
	StorageEngine StorageEngine `bson:"storageEngine"`
}

// Connections is the serverStatus connections section.
type Connections struct {
	Current      float64 `bson:"current" json:"current" yaml:"current"`
	Available    float64 `bson:"available" json:"available" yaml:"available"`
	TotalCreated float64 `bson:"totalCreated" json:"totalCreated" yaml:"totalCreated"`
	Active       float64 `bson:"active" json:"active,omitempty" yaml:"active,omitempty"`
}

// WiredTiger is the serverStatus wiredTiger section.
type WiredTiger struct {
	Cache *WiredTigerCache `bson:"cache,omitempty"`
}

// WiredTigerCache holds the cache statistics used for pressure checks.
type WiredTigerCache struct {
	BytesInCache float64 `bson:"bytes currently in the cache"`
	DirtyBytes   float64 `bson:"tracked dirty bytes in the cache"`
	MaxBytes     float64 `bson:"maximum bytes configured"`
	PagesEvicted float64 `bson:"unmodified pages evicted"`
	PagesRead    float64 `bson:"pages read into cache"`
}

// StorageEngine identifies the storage engine in use.
type StorageEngine struct {
	Name string `bson:"name" json:"name" yaml:"name"`
}

// ReplStatus is the subset of replSetGetStatus checks consume.
type ReplStatus struct {
	Set     string       `bson:"set"`
	MyState int          `bson:"myState"`
	Members []ReplMember `bson:"members"`
}

// ReplMember describes one member of a replica set.
type ReplMember struct {
	Name       string    `bson:"name"`
	State      int       `bson:"state"`
	StateStr   string    `bson:"stateStr"`
	Health     float64   `bson:"health"`
	OptimeDate time.Time `bson:"optimeDate"`
	Self       bool      `bson:"self"`
}

// Primary returns the member reporting PRIMARY, if any.
func (r *ReplStatus) Primary() (ReplMember, bool) {
	for _, m := range r.Members {
		if m.StateStr == "PRIMARY" {
			return m, true
		}
	}
	return ReplMember{}, false
}

// Secondaries returns the members reporting SECONDARY.
func (r *ReplStatus) Secondaries() []ReplMember {
	var out []ReplMember
	for _, m := range r.Members {
		if m.StateStr == "SECONDARY" {
			out = append(out, m)
		}
	}
	return out
}

// DBStats is the dbStats document of the target database, in bytes.
type DBStats struct {
	DB          string  `bson:"db" json:"db" yaml:"db"`
	Collections float64 `bson:"collections" json:"collections" yaml:"collections"`
	Objects     float64 `bson:"objects" json:"objects" yaml:"objects"`
	AvgObjSize  float64 `bson:"avgObjSize" json:"avgObjSize" yaml:"avgObjSize"`
	DataSize    float64 `bson:"dataSize" json:"dataSize" yaml:"dataSize"`
	StorageSize float64 `bson:"storageSize" json:"storageSize" yaml:"storageSize"`
	Indexes     float64 `bson:"indexes" json:"indexes" yaml:"indexes"`
	IndexSize   float64 `bson:"indexSize" json:"indexSize" yaml:"indexSize"`
}

// CurrentOp is one entry of the currentOp inprog listing.
type CurrentOp struct {
	OpID           any     `bson:"opid"`
	Type           string  `bson:"type"`
	Op             string  `bson:"op"`
	NS             string  `bson:"ns"`
	Active         bool    `bson:"active"`
	Killed         bool    `bson:"killed"`
	KillPending    bool    `bson:"killPending"`
	SecsRunning    float64 `bson:"secs_running"`
	Client         string  `bson:"client"`
	Desc           string  `bson:"desc"`
	WaitingForLock bool    `bson:"waitingForLock"`
}

// Live reports whether the operation is active and not being killed.
func (op CurrentOp) Live() bool {
	return op.Active && !op.Killed && !op.KillPending
}

type currentOpReply struct {
	InProg []CurrentOp `bson:"inprog"`
}

// Decode converts a generic command reply into out.
func Decode(doc bson.M, out any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "encoding reply")
	}
	if err := bson.Unmarshal(raw, out); err != nil {
		return errors.Wrap(err, "decoding reply")
	}
	return nil
}
