package sqlite

import (
	"context"
	"log/slog"
	"strings"

	"ecell/config"
	"ecell/internal/domain/entity"
	domainerrors "ecell/internal/domain/errors"
	"ecell/internal/domain/repository"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewDB opens the cache database and migrates the account table.
func NewDB(cfg *config.Config, baseLogger *slog.Logger) (*gorm.DB, error) {
	path := ""
	if cfg.Cache != nil {
		path = cfg.Cache.Path
	}
	if path == "" {
		return nil, errors.New("cache path missing")
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: newGormSlogLogger(baseLogger, cfg),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open cache database")
	}

	if err := db.AutoMigrate(&accountModel{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate cache schema")
	}

	return db, nil
}

// accountCache implements repository.AccountCache on the SQLite file.
type accountCache struct {
	db     *gorm.DB
	logger *slog.Logger
}

// AccountCacheParams holds dependencies for accountCache, injected by Fx.
type AccountCacheParams struct {
	fx.In

	DB     *gorm.DB
	Logger *slog.Logger
}

// NewAccountCache is the constructor for accountCache.
func NewAccountCache(params AccountCacheParams) repository.AccountCache {
	return &accountCache{
		db:     params.DB,
		logger: params.Logger,
	}
}

// Upsert inserts the account or replaces the cached row with the same ID.
func (c *accountCache) Upsert(ctx context.Context, account *entity.Account) error {
	if err := c.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(toModel(account)).Error; err != nil {
		return errors.Wrap(mapEngineError(err, domainerrors.ErrInsertFailed), "failed to upsert cached account")
	}

	return nil
}

// GetByKey retrieves the cached account, ErrCacheMiss when absent.
func (c *accountCache) GetByKey(ctx context.Context, key string) (*entity.Account, error) {
	var model accountModel
	if err := c.db.WithContext(ctx).
		Where("id = ?", key).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(repository.ErrCacheMiss, "cache lookup")
		}

		return nil, errors.Wrap(mapEngineError(err, domainerrors.ErrDatabaseFailure), "failed to read cached account")
	}

	return toEntity(&model), nil
}

// Update modifies the existing cached row; updating an absent row is an error.
func (c *accountCache) Update(ctx context.Context, account *entity.Account) error {
	// Select("*") forces zero-valued fields through, a cleared field must
	// clear the column.
	result := c.db.WithContext(ctx).
		Model(&accountModel{}).
		Where("id = ?", account.ID).
		Select("*").
		Updates(toModel(account))
	if result.Error != nil {
		return errors.Wrap(mapEngineError(result.Error, domainerrors.ErrUpdateFailed), "failed to update cached account")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound.WrapMessage("update cached account")
	}

	return nil
}

// DeleteByKey removes the cached row; deleting an absent row is a no-op.
func (c *accountCache) DeleteByKey(ctx context.Context, key string) error {
	if err := c.db.WithContext(ctx).
		Where("id = ?", key).
		Delete(&accountModel{}).Error; err != nil {
		return errors.Wrap(mapEngineError(err, domainerrors.ErrDeleteFailed), "failed to delete cached account")
	}

	return nil
}

// mapEngineError folds an SQLite engine failure into the local taxonomy,
// keyed off the driver's message text; fallback is the operation's own
// failure value.
func mapEngineError(err error, fallback *domainerrors.LocalError) error {
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "disk is full") || strings.Contains(msg, "disk full"):
		return domainerrors.ErrDiskFull
	case strings.Contains(msg, "constraint"):
		return domainerrors.ErrConstraintViolation
	case strings.Contains(msg, "file is not a database") || strings.Contains(msg, "malformed"):
		return domainerrors.ErrCacheCorrupted
	default:
		return fallback
	}
}
