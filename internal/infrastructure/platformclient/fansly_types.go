package platformclient

import "encoding/json"

// Wire types for the Fansly API. Every endpoint wraps its payload in a
// success envelope.

type fanslyEnvelope struct {
	Success  bool            `json:"success"`
	Response json.RawMessage `json:"response"`
	Error    struct {
		Code    int    `json:"code"`
		Details string `json:"details"`
	} `json:"error"`
}

type fanslyAccount struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Avatar      struct {
		Location string `json:"location"`
	} `json:"avatar"`
	FollowCount     int64 `json:"followCount"`
	SubscriberCount int64 `json:"subscriberCount"`
}

type fanslyPost struct {
	ID         string `json:"id"`
	CreatedAt  int64  `json:"createdAt"`
	LikeCount  int64  `json:"likeCount"`
	ReplyCount int64  `json:"replyCount"`
	ViewCount  int64  `json:"viewCount"`
	TipAmount  int64  `json:"totalTipAmount"`
}

type fanslyMessage struct {
	ID          string `json:"id"`
	SenderID    string `json:"senderId"`
	GroupID     string `json:"groupId"`
	Content     string `json:"content"`
	CreatedAt   int64  `json:"createdAt"`
	Read        bool   `json:"read"`
	Attachments []struct {
		Location string `json:"location"`
	} `json:"attachments"`
}

type fanslyEarnings struct {
	GrossCents         int64 `json:"gross"`
	NewSubscribers     int64 `json:"subscribesNew"`
	ChurnedSubscribers int64 `json:"subscribesExpired"`
	Views              int64 `json:"views"`
}
