package model

// Owned 有唯一归属用户的实体
type Owned interface {
	OwnerOf() int64
}

// All 需要迁移的全部模型
func All() []interface{} {
	return []interface{}{
		&User{},
		&Video{},
		&Comment{},
		&Tweet{},
		&Like{},
		&Subscription{},
		&Playlist{},
		&PlaylistVideo{},
		&WatchHistory{},
	}
}
