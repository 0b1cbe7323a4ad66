package platformclient

// Wire types for the Ko-fi API

type kofiError struct {
	Error string `json:"error"`
}

type kofiPage struct {
	PageID        string `json:"page_id"`
	PageName      string `json:"page_name"`
	ProfileURL    string `json:"profile_url"`
	AvatarURL     string `json:"avatar_url"`
	FollowerCount int64  `json:"follower_count"`
}

type kofiTransaction struct {
	TransactionID       string `json:"transaction_id"`
	Type                string `json:"type"`
	Amount              string `json:"amount"`
	Currency            string `json:"currency"`
	FromName            string `json:"from_name"`
	Timestamp           string `json:"timestamp"`
	IsSubscription      bool   `json:"is_subscription_payment"`
	IsFirstSubscription bool   `json:"is_first_subscription_payment"`
}

type kofiTransactionList struct {
	Transactions []kofiTransaction `json:"transactions"`
}
