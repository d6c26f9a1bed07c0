package dto

// LikeStatus 点赞状态
type LikeStatus struct {
	IsLiked bool `json:"isLiked"`
}

// SubscriptionStatus 订阅状态
type SubscriptionStatus struct {
	IsSubscribed bool `json:"isSubscribed"`
}
