package platformclient

// Wire types for the Gumroad v2 API. Responses carry a success flag next
// to the payload keys.

type gumroadEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type gumroadUser struct {
	ID         string `json:"user_id"`
	Name       string `json:"name"`
	URL        string `json:"url"`
	Bio        string `json:"bio"`
	ProfileURL string `json:"profile_url"`
}

type gumroadUserResponse struct {
	gumroadEnvelope
	User gumroadUser `json:"user"`
}

type gumroadProduct struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ShortURL     string `json:"short_url"`
	SalesCount   int64  `json:"sales_count"`
	ViewCount    int64  `json:"view_count"`
	Published    bool   `json:"published"`
	PriceCents   int64  `json:"price"`
	Currency     string `json:"currency"`
	CreatedAtISO string `json:"created_at"`
}

type gumroadProductResponse struct {
	gumroadEnvelope
	Product gumroadProduct `json:"product"`
}

type gumroadSale struct {
	ID           string `json:"id"`
	ProductID    string `json:"product_id"`
	Price        int64  `json:"price"`
	Currency     string `json:"currency"`
	CreatedAtISO string `json:"created_at"`
}

type gumroadSalesResponse struct {
	gumroadEnvelope
	Sales       []gumroadSale `json:"sales"`
	NextPageKey string        `json:"next_page_key"`
}

type gumroadSubscribersResponse struct {
	gumroadEnvelope
	Subscribers []struct {
		ID           string `json:"id"`
		Status       string `json:"status"`
		CreatedAtISO string `json:"created_at"`
		CancelledAt  string `json:"cancelled_at"`
	} `json:"subscribers"`
}
