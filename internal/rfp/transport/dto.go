package transport

// RFPs

type ContactResponse struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type RFPResponse struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Company      string           `json:"company"`
	Sector       string           `json:"sector"`
	OfferingType string           `json:"offeringType"`
	AIType       string           `json:"aiType"`
	Location     string           `json:"location"`
	Regulations  []string         `json:"regulations"`
	Budget       float64          `json:"budget"`
	Deadline     string           `json:"deadline"`
	Tags         []string         `json:"tags"`
	CreditCost   int64            `json:"creditCost"`
	Unlocked     bool             `json:"unlocked"`
	Contact      *ContactResponse `json:"contact,omitempty"`
}

type RFPListResponse struct {
	Items             []RFPResponse `json:"items"`
	Total             int           `json:"total"`
	ActiveFilterCount int           `json:"activeFilterCount"`
}

// Unlock

type UnlockResponse struct {
	RFP             RFPResponse `json:"rfp"`
	Charged         int64       `json:"charged"`
	Balance         int64       `json:"balance"`
	AlreadyUnlocked bool        `json:"alreadyUnlocked"`
}

// InsufficientCreditsDetails accompanies a 402 response.
type InsufficientCreditsDetails struct {
	Balance  int64 `json:"balance"`
	Required int64 `json:"required"`
}
