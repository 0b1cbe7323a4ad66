package platformclient

// Wire types for the OnlyFans API. Field sets are limited to what the
// adapter reads.

type ofError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type ofUser struct {
	ID               int64  `json:"id"`
	Username         string `json:"username"`
	Name             string `json:"name"`
	Avatar           string `json:"avatar"`
	SubscribersCount int64  `json:"subscribersCount"`
}

type ofPost struct {
	ID            int64  `json:"id"`
	PostedAt      string `json:"postedAt"`
	PostURL       string `json:"postUrl"`
	LikesCount    int64  `json:"likesCount"`
	CommentsCount int64  `json:"commentsCount"`
	TipsAmount    int64  `json:"tipsSumm"`
	ViewsCount    int64  `json:"viewsCount"`
}

type ofMessage struct {
	ID     int64  `json:"id"`
	Text   string `json:"text"`
	FromID int64  `json:"fromUserId"`
	ToID   int64  `json:"toUserId"`
	Media  []struct {
		URL string `json:"src"`
	} `json:"media"`
	CreatedAt string `json:"createdAt"`
	IsRead    bool   `json:"isRead"`
}

type ofMessageList struct {
	List       []ofMessage `json:"list"`
	HasMore    bool        `json:"hasMore"`
	NextOffset int         `json:"nextOffset"`
}

type ofComment struct {
	ID     int64  `json:"id"`
	Text   string `json:"text"`
	Author struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"author"`
	PostedAt string `json:"postedAt"`
}

type ofCommentList struct {
	List       []ofComment `json:"list"`
	HasMore    bool        `json:"hasMore"`
	NextOffset int         `json:"nextOffset"`
}

type ofEarnings struct {
	Total struct {
		Gross    string `json:"gross"`
		Currency string `json:"currency"`
	} `json:"total"`
	NewSubscribers     int64 `json:"newSubscribersCount"`
	ChurnedSubscribers int64 `json:"expiredSubscribersCount"`
	ProfileVisits      int64 `json:"profileVisits"`
}
