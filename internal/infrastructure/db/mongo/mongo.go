package mongo

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/singleflight"
)

const (
	defaultConnectTimeout = 10 * time.Second
	defaultTimeout        = 10 * time.Second
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Dialer opens and verifies a client.
type Dialer func(ctx context.Context) (*mongo.Client, error)

// Connector is the process-wide handle to the document store. The first
// caller opens the connection; callers arriving while that attempt is in
// flight wait for it instead of dialing again. A failed attempt is not
// remembered, so the next call retries.
type Connector struct {
	database string
	dial     Dialer

	db    atomic.Pointer[mongo.Database]
	group singleflight.Group
}

// NewConnector returns a Connector that dials cfg.URI on first use.
func NewConnector(cfg Config) *Connector {
	return newConnector(cfg.Database, func(ctx context.Context) (*mongo.Client, error) {
		return dial(ctx, cfg)
	})
}

func newConnector(database string, d Dialer) *Connector {
	return &Connector{database: database, dial: d}
}

// Database returns the shared database handle, connecting if needed.
func (c *Connector) Database(ctx context.Context) (*mongo.Database, error) {
	if db := c.db.Load(); db != nil {
		return db, nil
	}

	v, err, _ := c.group.Do("connect", func() (interface{}, error) {
		if db := c.db.Load(); db != nil {
			return db, nil
		}
		client, err := c.dial(ctx)
		if err != nil {
			return nil, err
		}
		db := client.Database(c.database)
		c.db.Store(db)
		return db, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*mongo.Database), nil
}

// Collection is a shortcut for Database(ctx).Collection(name).
func (c *Connector) Collection(ctx context.Context, name string) (*mongo.Collection, error) {
	db, err := c.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}

// Ping verifies the live connection without opening one.
func (c *Connector) Ping(ctx context.Context) error {
	db := c.db.Load()
	if db == nil {
		return errors.New("mongo: not connected")
	}
	return db.Client().Ping(ctx, nil)
}

// Close disconnects the shared client if one was opened.
func (c *Connector) Close(ctx context.Context) error {
	db := c.db.Swap(nil)
	if db == nil {
		return nil
	}
	return db.Client().Disconnect(ctx)
}

// dial establishes a MongoDB client and verifies connectivity with a ping.
// A default timeout is applied when none is provided.
func dial(ctx context.Context, cfg Config) (*mongo.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().ApplyURI(cfg.URI).SetServerSelectionTimeout(timeout)
	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}
