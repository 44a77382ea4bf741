// Package redis caches catalog lookups for cart display. A stale price
// lives at most one TTL and never reaches checkout, which prices from the
// database.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/ports"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

const keyPrefix = "laundry:package:"

// sharedLookupTimeout bounds an upstream lookup shared by concurrent misses.
// It outlives any single caller's cancellation.
const sharedLookupTimeout = 10 * time.Second

var _ ports.PackageCatalog = (*CatalogCache)(nil)

type cachedPackage struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// CatalogCache is a read-through cache in front of a PackageCatalog.
// Concurrent misses for one package share a single upstream call, which is
// detached from the caller that started it: a caller that gives up gets its
// own context error, the others still get the package. Redis failures
// degrade to direct lookups.
type CatalogCache struct {
	client *redis.Client
	next   ports.PackageCatalog
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

func NewCatalogCache(client *redis.Client, next ports.PackageCatalog, ttl time.Duration, logger *slog.Logger) *CatalogCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogCache{
		client: client,
		next:   next,
		ttl:    ttl,
		logger: logger.With("component", "catalog-cache"),
	}
}

// NewClient connects to addr and pings it.
func NewClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

func key(id kernel.UUID) string {
	return keyPrefix + id.String()
}

func (c *CatalogCache) ResolvePackage(ctx context.Context, id kernel.UUID) (ports.Package, error) {
	if err := id.Validate(); err != nil {
		return ports.Package{}, err
	}

	if pkg, ok := c.get(ctx, id); ok {
		return pkg, nil
	}

	ch := c.group.DoChan(id.String(), func() (any, error) {
		sharedCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLookupTimeout)
		defer cancel()

		pkg, err := c.next.ResolvePackage(sharedCtx, id)
		if err != nil {
			return ports.Package{}, err
		}
		c.set(sharedCtx, pkg)
		return pkg, nil
	})

	select {
	case <-ctx.Done():
		return ports.Package{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return ports.Package{}, res.Err
		}
		return res.Val.(ports.Package), nil
	}
}

// Invalidate drops the cached entry of a package, e.g. after a price change.
func (c *CatalogCache) Invalidate(ctx context.Context, id kernel.UUID) error {
	if err := c.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("invalidate package %s: %w", id, err)
	}
	return nil
}

func (c *CatalogCache) get(ctx context.Context, id kernel.UUID) (ports.Package, bool) {
	raw, err := c.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.Package{}, false
	}
	if err != nil {
		c.logger.WarnContext(ctx, "cache read failed", "package_id", id.String(), "error", err)
		return ports.Package{}, false
	}

	var entry cachedPackage
	if err = json.Unmarshal(raw, &entry); err != nil {
		c.logger.WarnContext(ctx, "cache entry is corrupt", "package_id", id.String(), "error", err)
		return ports.Package{}, false
	}
	price, err := kernel.NewMoney(entry.Price)
	if err != nil {
		return ports.Package{}, false
	}
	return ports.Package{ID: id, Name: entry.Name, Price: price}, true
}

func (c *CatalogCache) set(ctx context.Context, pkg ports.Package) {
	raw, err := json.Marshal(cachedPackage{Name: pkg.Name, Price: pkg.Price.Decimal()})
	if err != nil {
		return
	}
	if err = c.client.Set(ctx, key(pkg.ID), raw, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "cache write failed", "package_id", pkg.ID.String(), "error", err)
	}
}
