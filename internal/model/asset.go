package model

// Asset 媒体托管上的文件引用：PublicID 用于删除，URL 用于访问
type Asset struct {
	PublicID string `gorm:"size:500;comment:对象标识" json:"publicId"`
	URL      string `gorm:"size:1000;comment:访问地址" json:"url"`
}

// IsZero 是否为空引用
func (a Asset) IsZero() bool {
	return a.PublicID == "" && a.URL == ""
}
