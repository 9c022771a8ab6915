package mongo

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net"
	"net/url"
	"time"

	"github.com/maafkarbai/FullStackProjectBackEnd/internal/config"
	"github.com/maafkarbai/FullStackProjectBackEnd/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	_defaultConnAttempts   = 10
	_defaultConnTimeout    = 10 * time.Second
	_defaultBaseRetryDelay = 100 * time.Millisecond
	_defaultMaxRetryDelay  = 5 * time.Second

	_backoffMultiplier = 2
)

type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database

	connAttempts   int
	connTimeout    time.Duration
	baseRetryDelay time.Duration
	maxRetryDelay  time.Duration
}

func NewMongo(cfg *config.Mongo, log logger.Logger, opts ...Option) (*Mongo, error) {
	const op = "storage.mongo.NewMongo"

	uri := buildURI(cfg)

	mg := &Mongo{
		connAttempts:   _defaultConnAttempts,
		connTimeout:    _defaultConnTimeout,
		baseRetryDelay: _defaultBaseRetryDelay,
		maxRetryDelay:  _defaultMaxRetryDelay,
	}

	for _, opt := range opts {
		opt(mg)
	}
	if err := mg.validate(); err != nil {
		return nil, fmt.Errorf("%s: validation: %w", op, err)
	}

	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(mg.connTimeout)

	var err error
	currentBackoff := mg.baseRetryDelay
	for attemptCount := 1; attemptCount <= mg.connAttempts; attemptCount++ {
		err = mg.connect(clientOpts, cfg.Name)
		if err == nil {
			return mg, nil
		}

		jitter := time.Duration(
			rand.Int64N(int64(currentBackoff * _backoffMultiplier)),
		)
		if jitter > mg.maxRetryDelay {
			jitter = mg.maxRetryDelay
		}

		log.Infow("MongoDB connection attempt failed",
			"operation", op,
			"attempt", attemptCount,
			"retry_after", jitter.String(),
			"error", err,
		)

		time.Sleep(jitter)

		nextBackoff := currentBackoff * _backoffMultiplier
		if nextBackoff > mg.maxRetryDelay {
			nextBackoff = mg.maxRetryDelay
		}
		currentBackoff = nextBackoff
	}

	return nil, fmt.Errorf("%s: connect: %w", op, err)
}

func (m *Mongo) connect(clientOpts *options.ClientOptions, dbName string) error {
	ctx, cancel := context.WithTimeout(context.Background(), m.connTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return fmt.Errorf("ping: %w", err)
	}

	m.Client = client
	m.DB = client.Database(dbName)
	return nil
}

func (m *Mongo) Close(ctx context.Context) error {
	if m.Client == nil {
		return nil
	}
	if err := m.Client.Disconnect(ctx); err != nil {
		return fmt.Errorf("storage.mongo.Close: disconnect: %w", err)
	}
	return nil
}

func buildURI(cfg *config.Mongo) string {
	hostPort := net.JoinHostPort(cfg.Host, cfg.Port)
	if cfg.User == "" {
		return fmt.Sprintf("mongodb://%s/%s", hostPort, cfg.Name)
	}
	return fmt.Sprintf("mongodb://%s:%s@%s/%s",
		url.QueryEscape(cfg.User),
		url.QueryEscape(cfg.Password),
		hostPort,
		cfg.Name,
	)
}
