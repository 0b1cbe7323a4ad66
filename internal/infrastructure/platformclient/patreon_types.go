package platformclient

import "encoding/json"

// Wire types for the Patreon v2 API (JSON:API format)

type patreonTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

type patreonErrorBody struct {
	Errors []struct {
		Code   string `json:"code_name"`
		Detail string `json:"detail"`
		Title  string `json:"title"`
	} `json:"errors"`
}

type patreonResource struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Attributes json.RawMessage `json:"attributes"`
}

type patreonDocument struct {
	Data json.RawMessage `json:"data"`
	Meta struct {
		Pagination struct {
			Cursors struct {
				Next string `json:"next"`
			} `json:"cursors"`
			Total int `json:"total"`
		} `json:"pagination"`
	} `json:"meta"`
}

type patreonUserAttrs struct {
	FullName string `json:"full_name"`
	Vanity   string `json:"vanity"`
	ImageURL string `json:"image_url"`
}

type patreonPostAttrs struct {
	Title        string `json:"title"`
	URL          string `json:"url"`
	PublishedAt  string `json:"published_at"`
	LikeCount    int64  `json:"like_count"`
	CommentCount int64  `json:"comment_count"`
}

type patreonCommentAttrs struct {
	Body      string `json:"body"`
	CreatedAt string `json:"created"`
	AuthorID  string `json:"commenter_id"`
}

type patreonCampaignAttrs struct {
	PatronCount    int64  `json:"patron_count"`
	PledgeSumCents int64  `json:"pledge_sum"`
	PledgeCurrency string `json:"pledge_sum_currency"`
	CreationCount  int64  `json:"creation_count"`
}
