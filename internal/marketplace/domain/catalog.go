package domain

// Listing is a provider use case offered on the marketplace.
type Listing struct {
	ID              string   `json:"id" yaml:"id"`
	Title           string   `json:"title" yaml:"title"`
	Description     string   `json:"description" yaml:"description"`
	Provider        string   `json:"provider" yaml:"provider"`
	Industry        string   `json:"industry" yaml:"industry"`
	OfferingType    string   `json:"offeringType" yaml:"offeringType"`
	ProviderSize    string   `json:"providerSize" yaml:"providerSize"`
	Maturity        string   `json:"maturity" yaml:"maturity"`
	AIType          string   `json:"aiType" yaml:"aiType"`
	Modality        string   `json:"modality" yaml:"modality"`
	Languages       []string `json:"languages" yaml:"languages"`
	Location        string   `json:"location" yaml:"location"`
	Regulations     []string `json:"regulations" yaml:"regulations"`
	Certifications  []string `json:"certifications" yaml:"certifications"`
	DataSecurity    []string `json:"dataSecurity" yaml:"dataSecurity"`
	PriceFrom       float64  `json:"priceFrom" yaml:"priceFrom"`
	HumanInTheLoop  bool     `json:"humanInTheLoop" yaml:"humanInTheLoop"`
	TechStack       []string `json:"techStack" yaml:"techStack"`
	Integrations    []string `json:"integrations" yaml:"integrations"`
	IntegrationTime string   `json:"integrationTime" yaml:"integrationTime"`
	Tags            []string `json:"tags" yaml:"tags"`
	Rating          float64  `json:"rating" yaml:"rating"`
}

// Proposal is a provider's answer to a client request.
type Proposal struct {
	ID           string   `json:"id" yaml:"id"`
	RequestID    string   `json:"requestId" yaml:"requestId"`
	Title        string   `json:"title" yaml:"title"`
	Summary      string   `json:"summary" yaml:"summary"`
	Provider     string   `json:"provider" yaml:"provider"`
	Sector       string   `json:"sector" yaml:"sector"`
	OfferingType string   `json:"offeringType" yaml:"offeringType"`
	ProviderSize string   `json:"providerSize" yaml:"providerSize"`
	AIType       string   `json:"aiType" yaml:"aiType"`
	Amount       float64  `json:"amount" yaml:"amount"`
	Status       string   `json:"status" yaml:"status"`
	Tags         []string `json:"tags" yaml:"tags"`
}

// Contact is the gated contact person of a Request.
type Contact struct {
	Name  string `json:"name" yaml:"name"`
	Role  string `json:"role" yaml:"role"`
	Email string `json:"email" yaml:"email"`
	Phone string `json:"phone" yaml:"phone"`
}

// Request is a client-posted RFP whose contact costs credits to reveal.
type Request struct {
	ID           string   `json:"id" yaml:"id"`
	Title        string   `json:"title" yaml:"title"`
	Description  string   `json:"description" yaml:"description"`
	Company      string   `json:"company" yaml:"company"`
	Sector       string   `json:"sector" yaml:"sector"`
	OfferingType string   `json:"offeringType" yaml:"offeringType"`
	AIType       string   `json:"aiType" yaml:"aiType"`
	Location     string   `json:"location" yaml:"location"`
	Regulations  []string `json:"regulations" yaml:"regulations"`
	Budget       float64  `json:"budget" yaml:"budget"`
	Deadline     string   `json:"deadline" yaml:"deadline"`
	CreditCost   int64    `json:"creditCost" yaml:"creditCost"`
	Tags         []string `json:"tags" yaml:"tags"`
	Contact      Contact  `json:"contact" yaml:"contact"`
}
