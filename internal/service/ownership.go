package service

import (
	"errors"

	"vortex-go/internal/model"

	"gorm.io/gorm"
)

// isOwner 所有写操作共用的归属判断
func isOwner(entity model.Owned, actorID int64) bool {
	return entity != nil && entity.OwnerOf() == actorID
}

func requireOwner(entity model.Owned, actorID int64) error {
	if !isOwner(entity, actorID) {
		return ErrNotOwner
	}
	return nil
}

// notFound 把记录不存在映射为领域错误
func notFound(err error, target *Error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}
