// Package lookup decorates the user directory and package catalog with
// retries of transient failures.
package lookup

import (
	"context"
	"log/slog"

	"laundry/internal/core/domain/model/identity"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/retry"
)

var (
	_ ports.UserDirectory  = (*RetryingDirectory)(nil)
	_ ports.PackageCatalog = (*RetryingCatalog)(nil)
)

type RetryingDirectory struct {
	next   ports.UserDirectory
	policy retry.Policy
	logger *slog.Logger
}

func NewRetryingDirectory(next ports.UserDirectory, policy retry.Policy, logger *slog.Logger) *RetryingDirectory {
	return &RetryingDirectory{next: next, policy: policy, logger: logger}
}

func (d *RetryingDirectory) ResolveUser(ctx context.Context, id kernel.UUID) (identity.Role, error) {
	return retry.Do(ctx, d.policy, d.logger, func(ctx context.Context) (identity.Role, error) {
		return d.next.ResolveUser(ctx, id)
	})
}

type RetryingCatalog struct {
	next   ports.PackageCatalog
	policy retry.Policy
	logger *slog.Logger
}

func NewRetryingCatalog(next ports.PackageCatalog, policy retry.Policy, logger *slog.Logger) *RetryingCatalog {
	return &RetryingCatalog{next: next, policy: policy, logger: logger}
}

func (c *RetryingCatalog) ResolvePackage(ctx context.Context, id kernel.UUID) (ports.Package, error) {
	return retry.Do(ctx, c.policy, c.logger, func(ctx context.Context) (ports.Package, error) {
		return c.next.ResolvePackage(ctx, id)
	})
}
