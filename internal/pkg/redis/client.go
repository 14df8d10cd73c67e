// internal/pkg/redis/client.go
package redis

import (
	"context"
	"time"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
)

// Client 封装 go-redis，只暴露本服务用到的几个原语。
type Client struct {
	rdb *goredis.Client
}

// NewClient 建立连接并用 Ping 校验可达性。
func NewClient(addr string) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to connect to redis at %s", addr)
	}
	return &Client{rdb: rdb}, nil
}

// SetNX 原子地写入 key，仅当 key 不存在时生效。返回是否写入成功。
func (c *Client) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return c.rdb.SetNX(ctx, key, value, ttl).Result()
}

// Exists 返回 key 是否存在。
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
