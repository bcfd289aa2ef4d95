package transport

// Account

type AccountResponse struct {
	Balance     int64    `json:"balance"`
	UnlockedIDs []string `json:"unlockedIds"`
}

type UnlockStatusResponse struct {
	ID       string `json:"id"`
	Unlocked bool   `json:"unlocked"`
}

// Top-ups and packages

type TopUpRequest struct {
	Amount int64 `json:"amount" validate:"required,min=1,max=100000"`
}

type PurchaseRequest struct {
	PackageID string `json:"packageId" validate:"required,min=1,max=64"`
}

type BalanceResponse struct {
	Balance int64 `json:"balance"`
	Added   int64 `json:"added"`
}

type PackageResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Credits    int64  `json:"credits"`
	PriceCents int64  `json:"priceCents"`
	Currency   string `json:"currency"`
}

type PackageListResponse struct {
	Items []PackageResponse `json:"items"`
}

// Stream

type BalanceEvent struct {
	Type    string `json:"type"`
	Balance int64  `json:"balance"`
	Delta   int64  `json:"delta"`
	RFPID   string `json:"rfpId,omitempty"`
}
