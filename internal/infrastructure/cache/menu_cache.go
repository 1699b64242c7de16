package cache

import (
	"context"
	"fmt"
	"time"

	radix "github.com/mediocregopher/radix/v3"

	"github.com/jhoicas/cardapio-api/internal/domain/repository"
	"github.com/jhoicas/cardapio-api/pkg/config"
)

var (
	_ repository.MenuCache = (*RedisMenuCache)(nil)
	_ repository.MenuCache = NopMenuCache{}
)

const keyPrefix = "cardapio:menu:"

// NewRedisClient abre el pool de conexiones a Redis.
func NewRedisClient(cfg config.RedisConfig) (radix.Client, error) {
	size := cfg.PoolSize
	if size <= 0 {
		size = 10
	}
	pool, err := radix.NewPool("tcp", cfg.Addr, size)
	if err != nil {
		return nil, fmt.Errorf("conectar redis %s: %w", cfg.Addr, err)
	}
	return pool, nil
}

// RedisMenuCache guarda el menú público serializado por comerciante, con expiración.
type RedisMenuCache struct {
	client radix.Client
	ttl    time.Duration
}

// NewRedisMenuCache construye la caché. ttl <= 0 guarda sin expiración.
func NewRedisMenuCache(client radix.Client, ttl time.Duration) *RedisMenuCache {
	return &RedisMenuCache{client: client, ttl: ttl}
}

// Get devuelve ok=false si no hay entrada.
func (c *RedisMenuCache) Get(_ context.Context, userID string) ([]byte, bool, error) {
	var data []byte
	mn := radix.MaybeNil{Rcv: &data}
	if err := c.client.Do(radix.Cmd(&mn, "GET", key(userID))); err != nil {
		return nil, false, fmt.Errorf("redis get menu: %w", err)
	}
	if mn.Nil {
		return nil, false, nil
	}
	return data, true, nil
}

// Set guarda el menú serializado.
func (c *RedisMenuCache) Set(_ context.Context, userID string, data []byte) error {
	var cmd radix.CmdAction
	if secs := int64(c.ttl / time.Second); secs > 0 {
		cmd = radix.FlatCmd(nil, "SETEX", key(userID), secs, data)
	} else {
		cmd = radix.FlatCmd(nil, "SET", key(userID), data)
	}
	if err := c.client.Do(cmd); err != nil {
		return fmt.Errorf("redis set menu: %w", err)
	}
	return nil
}

// Invalidate borra la entrada del comerciante.
func (c *RedisMenuCache) Invalidate(_ context.Context, userID string) error {
	if err := c.client.Do(radix.Cmd(nil, "DEL", key(userID))); err != nil {
		return fmt.Errorf("redis del menu: %w", err)
	}
	return nil
}

func key(userID string) string {
	return keyPrefix + userID
}

// NopMenuCache se usa cuando no hay Redis configurado: nunca acierta.
type NopMenuCache struct{}

func (NopMenuCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NopMenuCache) Set(context.Context, string, []byte) error         { return nil }
func (NopMenuCache) Invalidate(context.Context, string) error          { return nil }
