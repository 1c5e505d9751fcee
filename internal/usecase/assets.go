package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/jobboard/internal/domain"
	"github.com/Gunvolt24/jobboard/internal/ports"
)

// ErrAssetStorageDisabled — файл передан, но хранилище файлов не настроено.
var ErrAssetStorageDisabled = errors.New("asset storage is not configured")

// assetKeeper — загрузка файлов внутри транзакции: новый файл удаляется при откате,
// заменённый старый только после коммита.
type assetKeeper struct {
	store ports.AssetStorage
	tx    ports.TxManager
	log   ports.Logger
}

func newAssetKeeper(store ports.AssetStorage, tx ports.TxManager, log ports.Logger) assetKeeper {
	return assetKeeper{store: store, tx: tx, log: log}
}

// upload — nil означает «без изображения».
func (k assetKeeper) upload(ctx context.Context, asset *domain.Asset) (string, error) {
	if asset == nil {
		return "", nil
	}
	if k.store == nil {
		return "", ErrAssetStorageDisabled
	}
	id, err := k.store.Upload(ctx, asset)
	if err != nil {
		return "", fmt.Errorf("upload asset: %w", err)
	}
	k.tx.AfterRollback(ctx, func(ctx context.Context) { k.remove(ctx, id, "rollback") })
	return id, nil
}

// replace — *current подменяется сразу, а старый файл удаляется только после коммита:
// при откате запись продолжает ссылаться на него.
func (k assetKeeper) replace(ctx context.Context, current *string, asset *domain.Asset) error {
	if asset == nil {
		return nil
	}
	id, err := k.upload(ctx, asset)
	if err != nil {
		return err
	}
	if old := *current; old != "" {
		k.tx.AfterCommit(ctx, func(ctx context.Context) { k.remove(ctx, old, "replaced") })
	}
	*current = id
	return nil
}

// remove — сбой удаления оставляет в хранилище сироту, но не отменяет операцию.
func (k assetKeeper) remove(ctx context.Context, id, reason string) {
	if err := k.store.Delete(ctx, id); err != nil {
		k.log.Warnf(ctx, "delete asset %s (%s): %v", id, reason, err)
	}
}
