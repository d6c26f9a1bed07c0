package model

import "time"

// LikeSubject 点赞对象类型
type LikeSubject string

const (
	LikeVideo   LikeSubject = "video"
	LikeComment LikeSubject = "comment"
	LikeTweet   LikeSubject = "tweet"
)

// Column 对象类型对应的外键列
func (s LikeSubject) Column() string {
	switch s {
	case LikeVideo:
		return "video_id"
	case LikeComment:
		return "comment_id"
	case LikeTweet:
		return "tweet_id"
	}
	return ""
}

// Like 点赞模型，VideoID/CommentID/TweetID 有且仅有一个非空。
// 三个唯一索引保证同一用户对同一对象至多一条记录（NULL 互不冲突）。
type Like struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:点赞记录ID" json:"id"`
	VideoID   *int64    `gorm:"uniqueIndex:uq_likes_video_user,priority:1;comment:被点赞视频ID" json:"videoId,omitempty"`
	CommentID *int64    `gorm:"uniqueIndex:uq_likes_comment_user,priority:1;comment:被点赞评论ID" json:"commentId,omitempty"`
	TweetID   *int64    `gorm:"uniqueIndex:uq_likes_tweet_user,priority:1;comment:被点赞动态ID" json:"tweetId,omitempty"`
	LikedBy   int64     `gorm:"not null;index:idx_likes_liked_by;uniqueIndex:uq_likes_video_user,priority:2;uniqueIndex:uq_likes_comment_user,priority:2;uniqueIndex:uq_likes_tweet_user,priority:2;comment:点赞用户ID" json:"likedBy"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:点赞时间" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updatedAt"`
}

func (Like) TableName() string {
	return "likes"
}

// NewLike 按对象类型构造点赞记录
func NewLike(subject LikeSubject, subjectID, userID int64) *Like {
	l := &Like{LikedBy: userID}
	id := subjectID
	switch subject {
	case LikeVideo:
		l.VideoID = &id
	case LikeComment:
		l.CommentID = &id
	case LikeTweet:
		l.TweetID = &id
	}
	return l
}
