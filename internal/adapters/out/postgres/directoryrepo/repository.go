package directoryrepo

import (
	"context"
	"errors"
	"fmt"

	"laundry/internal/core/domain/model/identity"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	_ ports.UserDirectory  = (*GormDirectory)(nil)
	_ ports.PackageCatalog = (*GormDirectory)(nil)
)

// GormDirectory resolves users and packages outside any unit of work.
type GormDirectory struct {
	db *gorm.DB
}

func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{db: db}
}

func (d *GormDirectory) ResolveUser(ctx context.Context, id kernel.UUID) (identity.Role, error) {
	if err := id.Validate(); err != nil {
		return "", err
	}

	var dto UserDTO
	if err := d.db.WithContext(ctx).Select("id", "role").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errs.NewObjectNotFoundError("user", id.String())
		}
		return "", fmt.Errorf("resolve user: %w", err)
	}

	return identity.ParseRole(dto.Role)
}

// ResolvePackage returns the current price of an active package.
func (d *GormDirectory) ResolvePackage(ctx context.Context, id kernel.UUID) (ports.Package, error) {
	if err := id.Validate(); err != nil {
		return ports.Package{}, err
	}

	var dto PackageDTO
	err := d.db.WithContext(ctx).First(&dto, "id = ? AND active", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Package{}, errs.NewObjectNotFoundError("package", id.String())
		}
		return ports.Package{}, fmt.Errorf("resolve package: %w", err)
	}

	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return ports.Package{}, err
	}
	return ports.Package{ID: id, Name: dto.Name, Price: price}, nil
}

// SaveUser upserts a directory entry. Used for seeding.
func (d *GormDirectory) SaveUser(ctx context.Context, id kernel.UUID, name, email string, role identity.Role) error {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return err
	}

	dto := UserDTO{ID: id.Bytes(), Name: name, Email: email, Role: role.String()}
	return d.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dto).Error
}

// SavePackage upserts a catalog entry. Used for seeding.
func (d *GormDirectory) SavePackage(ctx context.Context, id kernel.UUID, name string, price kernel.Money, active bool) error {
	if err := id.Validate(); err != nil {
		return err
	}

	dto := PackageDTO{ID: id.Bytes(), Name: name, Price: price.Decimal(), Active: active}
	return d.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dto).Error
}
