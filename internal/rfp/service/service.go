package service

import (
	"context"

	"marketplace_backend/internal/events"
	"marketplace_backend/internal/marketplace/domain"
	"marketplace_backend/internal/rfp/ports"
	"marketplace_backend/internal/rfp/transport"
	"marketplace_backend/platform/apperr"
	"marketplace_backend/platform/logger"
	"marketplace_backend/platform/phone"
)

const (
	msgRFPNotFound         = "rfp not found"
	msgInsufficientCredits = "insufficient credits"
)

// Service lists RFPs and reveals their contact once paid for.
type Service struct {
	catalog ports.RequestCatalog
	ledger  ports.CreditLedger
	bus     events.Bus
	region  string
	log     *logger.Logger
}

// New creates a new RFP service. region is the default phone region for
// contact numbers without a country prefix.
func New(catalog ports.RequestCatalog, ledger ports.CreditLedger, bus events.Bus, region string, log *logger.Logger) *Service {
	return &Service{catalog: catalog, ledger: ledger, bus: bus, region: region, log: log}
}

// List filters RFPs for accountID. Contacts stay hidden until unlocked.
func (s *Service) List(ctx context.Context, accountID string, state domain.FilterState) (transport.RFPListResponse, error) {
	unlocked, err := s.ledger.UnlockedIDs(ctx, accountID)
	if err != nil {
		return transport.RFPListResponse{}, err
	}

	result := s.catalog.FilterRequests(state)
	items := make([]transport.RFPResponse, 0, len(result.Items))
	for _, r := range result.Items {
		items = append(items, s.toResponse(r, unlocked[r.ID]))
	}
	return transport.RFPListResponse{
		Items:             items,
		Total:             result.Total,
		ActiveFilterCount: domain.ActiveFilterCount(state),
	}, nil
}

// Get returns a single RFP with the same redaction rule as List.
func (s *Service) Get(ctx context.Context, accountID, id string) (transport.RFPResponse, error) {
	r, ok := s.catalog.GetRequest(id)
	if !ok {
		return transport.RFPResponse{}, apperr.NotFound(msgRFPNotFound)
	}
	unlocked, err := s.ledger.UnlockedIDs(ctx, accountID)
	if err != nil {
		return transport.RFPResponse{}, err
	}
	return s.toResponse(r, unlocked[r.ID]), nil
}

// Unlock charges the RFP's credit cost once and reveals its contact.
// Repeated unlocks are free.
func (s *Service) Unlock(ctx context.Context, accountID, id string) (transport.UnlockResponse, error) {
	r, ok := s.catalog.GetRequest(id)
	if !ok {
		return transport.UnlockResponse{}, apperr.NotFound(msgRFPNotFound)
	}

	outcome, err := s.ledger.Spend(ctx, accountID, r.CreditCost, r.ID)
	if err != nil {
		return transport.UnlockResponse{}, err
	}
	if !outcome.OK {
		return transport.UnlockResponse{}, apperr.PaymentRequired(msgInsufficientCredits).
			WithDetails(transport.InsufficientCreditsDetails{Balance: outcome.Balance, Required: r.CreditCost}).
			WithOp("rfp.unlock")
	}

	if !outcome.AlreadyUnlocked {
		s.log.WithContext(ctx).Info("rfp unlocked", "rfpId", r.ID, "creditCost", r.CreditCost)
		if s.bus != nil {
			s.bus.Publish(ctx, events.RFPUnlocked{
				BaseEvent:    events.NewBaseEvent(),
				AccountID:    accountID,
				RFPID:        r.ID,
				Title:        r.Title,
				Company:      r.Company,
				ContactName:  r.Contact.Name,
				ContactEmail: r.Contact.Email,
				CreditCost:   r.CreditCost,
			})
		}
	}

	return transport.UnlockResponse{
		RFP:             s.toResponse(r, true),
		Charged:         outcome.Charged,
		Balance:         outcome.Balance,
		AlreadyUnlocked: outcome.AlreadyUnlocked,
	}, nil
}

func (s *Service) toResponse(r domain.Request, unlocked bool) transport.RFPResponse {
	resp := transport.RFPResponse{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Company:      r.Company,
		Sector:       r.Sector,
		OfferingType: r.OfferingType,
		AIType:       r.AIType,
		Location:     r.Location,
		Regulations:  nonNil(r.Regulations),
		Budget:       r.Budget,
		Deadline:     r.Deadline,
		Tags:         nonNil(r.Tags),
		CreditCost:   r.CreditCost,
		Unlocked:     unlocked,
	}
	if unlocked {
		resp.Contact = &transport.ContactResponse{
			Name:  r.Contact.Name,
			Role:  r.Contact.Role,
			Email: r.Contact.Email,
			Phone: phone.NormalizeE164(r.Contact.Phone, s.region),
		}
	}
	return resp
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
