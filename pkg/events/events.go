// Package events publishes account lifecycle notifications over Redis
// pub/sub. Delivery is fire-and-forget: failures are logged and never fail
// the request that triggered them.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const Channel = "accounts"

// Event actions.
const (
	AccountCreated = "account.created"
	AccountUpdated = "account.updated"
)

type Event struct {
	Action    string `json:"action"`
	AccountID string `json:"account_id"`
	Username  string `json:"username,omitempty"`
	Timestamp int64  `json:"ts"`
}

type Publisher struct {
	rdb *redis.Client
	log *zap.Logger
}

func New(redisURL string, log *zap.Logger) (*Publisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &Publisher{rdb: rdb, log: log}, nil
}

// Publish sends an account event. Safe on a nil publisher.
func (p *Publisher) Publish(ctx context.Context, action, accountID, username string) {
	if p == nil || p.rdb == nil {
		return
	}
	data, err := json.Marshal(Event{
		Action:    action,
		AccountID: accountID,
		Username:  username,
		Timestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		return
	}
	if err := p.rdb.Publish(ctx, Channel, data).Err(); err != nil {
		p.log.Warn("publish event", zap.String("action", action), zap.Error(err))
	}
}

func (p *Publisher) Close() {
	if p != nil && p.rdb != nil {
		p.rdb.Close()
	}
}
