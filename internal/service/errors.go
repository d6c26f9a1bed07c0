package service

import (
	"errors"
	"fmt"
)

// Kind 错误类别，决定对外的 HTTP 状态码
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidArgument
	KindUnauthorized
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error 业务错误
type Error struct {
	Kind    Kind
	Message string
	Details []string
}

func (e *Error) Error() string {
	return e.Message
}

// Is 同类别同消息视为同一错误，便于 errors.Is 比较哨兵值
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// InvalidArgument 参数错误
func InvalidArgument(format string, args ...interface{}) *Error {
	return newError(KindInvalidArgument, fmt.Sprintf(format, args...))
}

// KindOf 返回错误类别，非业务错误视为 Internal
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

var (
	ErrUserNotFound      = newError(KindNotFound, "user does not exist")
	ErrChannelNotFound   = newError(KindNotFound, "channel does not exist")
	ErrVideoNotFound     = newError(KindNotFound, "video not found")
	ErrCommentNotFound   = newError(KindNotFound, "comment not found")
	ErrTweetNotFound     = newError(KindNotFound, "tweet not found")
	ErrPlaylistNotFound  = newError(KindNotFound, "playlist not found")
	ErrUserExists        = newError(KindConflict, "user with email or username already exists")
	ErrEmailTaken        = newError(KindConflict, "email is already in use")
	ErrInvalidCredential = newError(KindUnauthorized, "invalid user credentials")
	ErrWrongPassword     = newError(KindUnauthorized, "invalid old password")
	ErrInvalidRefresh    = newError(KindUnauthorized, "refresh token is expired or used")
	ErrUnauthorized      = newError(KindUnauthorized, "unauthorized request")
	ErrNotOwner          = newError(KindUnauthorized, "you are not allowed to modify this resource")
	ErrSubscribeSelf     = newError(KindInvalidArgument, "you cannot subscribe to your own channel")
	ErrInvalidSort       = newError(KindInvalidArgument, "sortBy must be one of views, createdAt, duration and sortType one of asc, desc")
	ErrNoFieldsToUpdate  = newError(KindInvalidArgument, "no fields to update")
	ErrAvatarRequired    = newError(KindInvalidArgument, "avatar file is required")
	ErrVideoFileRequired = newError(KindInvalidArgument, "video file and thumbnail are required")
)
