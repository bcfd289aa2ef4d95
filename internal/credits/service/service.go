package service

import (
	"context"
	"strings"

	"marketplace_backend/internal/credits/ledger"
	"marketplace_backend/internal/credits/repository"
	"marketplace_backend/internal/credits/transport"
	"marketplace_backend/internal/events"
	"marketplace_backend/platform/apperr"
	"marketplace_backend/platform/logger"
)

const msgStoreUnavailable = "credits store unavailable"

// Package is a purchasable bundle of credits.
type Package struct {
	ID         string
	Name       string
	Credits    int64
	PriceCents int64
	Currency   string
}

// PackageReader lists the purchasable credit packages.
type PackageReader interface {
	CreditPackages() []Package
}

// Service provides the credits ledger operations for authenticated sessions.
type Service struct {
	store    repository.Store
	packages PackageReader
	bus      events.Bus
	log      *logger.Logger
}

// New creates a new credits service.
func New(store repository.Store, bus events.Bus, log *logger.Logger) *Service {
	return &Service{store: store, bus: bus, log: log}
}

// SetPackageReader wires the package catalog.
func (s *Service) SetPackageReader(r PackageReader) {
	s.packages = r
}

// GetAccount returns the balance and unlocked RFP ids.
func (s *Service) GetAccount(ctx context.Context, accountID string) (transport.AccountResponse, error) {
	account, err := s.store.Get(ctx, accountID)
	if err != nil {
		return transport.AccountResponse{}, s.storeErr(ctx, "get", err)
	}
	ids := account.UnlockedIDs
	if ids == nil {
		ids = []string{}
	}
	return transport.AccountResponse{Balance: account.Balance, UnlockedIDs: ids}, nil
}

// IsUnlocked reports whether the account already paid for rfpID.
func (s *Service) IsUnlocked(ctx context.Context, accountID, rfpID string) (bool, error) {
	ok, err := s.store.IsUnlocked(ctx, accountID, strings.TrimSpace(rfpID))
	if err != nil {
		return false, s.storeErr(ctx, "is_unlocked", err)
	}
	return ok, nil
}

// Spend charges amount to unlock rfpID. Insufficient balance is reported via
// SpendResult.OK, not as an error.
func (s *Service) Spend(ctx context.Context, accountID string, amount int64, rfpID string) (ledger.SpendResult, error) {
	rfpID = strings.TrimSpace(rfpID)
	result, err := s.store.Spend(ctx, accountID, amount, rfpID)
	if err != nil {
		return ledger.SpendResult{}, s.storeErr(ctx, "spend", err)
	}

	log := s.log.WithContext(ctx)
	switch {
	case result.AlreadyUnlocked:
		log.Debug("rfp already unlocked", "accountId", accountID, "rfpId", rfpID)
	case !result.OK:
		log.CreditsEvent("spend_refused", accountID, amount, result.Balance, false)
	default:
		log.CreditsEvent("spend", accountID, result.Charged, result.Balance, true)
		s.publish(ctx, events.CreditsSpent{
			BaseEvent: events.NewBaseEvent(),
			AccountID: accountID,
			RFPID:     rfpID,
			Amount:    result.Charged,
			Balance:   result.Balance,
		})
	}
	return result, nil
}

// TopUp adds amount credits to the account.
func (s *Service) TopUp(ctx context.Context, accountID string, req transport.TopUpRequest) (transport.BalanceResponse, error) {
	return s.add(ctx, accountID, req.Amount, events.CreditSourceTopUp, "")
}

// Purchase adds the credits of a catalog package.
func (s *Service) Purchase(ctx context.Context, accountID string, req transport.PurchaseRequest) (transport.BalanceResponse, error) {
	pkg, ok := s.findPackage(strings.TrimSpace(req.PackageID))
	if !ok {
		return transport.BalanceResponse{}, apperr.NotFound("credit package not found")
	}
	return s.add(ctx, accountID, pkg.Credits, events.CreditSourcePurchase, pkg.ID)
}

// ListPackages returns the purchasable credit packages.
func (s *Service) ListPackages() transport.PackageListResponse {
	items := make([]transport.PackageResponse, 0)
	if s.packages == nil {
		return transport.PackageListResponse{Items: items}
	}
	for _, p := range s.packages.CreditPackages() {
		items = append(items, transport.PackageResponse{
			ID:         p.ID,
			Name:       p.Name,
			Credits:    p.Credits,
			PriceCents: p.PriceCents,
			Currency:   p.Currency,
		})
	}
	return transport.PackageListResponse{Items: items}
}

func (s *Service) add(ctx context.Context, accountID string, amount int64, source, reference string) (transport.BalanceResponse, error) {
	balance, err := s.store.Add(ctx, accountID, amount)
	if err != nil {
		return transport.BalanceResponse{}, s.storeErr(ctx, "add", err)
	}

	s.log.WithContext(ctx).CreditsEvent(source, accountID, amount, balance, true)
	s.publish(ctx, events.CreditsAdded{
		BaseEvent: events.NewBaseEvent(),
		AccountID: accountID,
		Amount:    amount,
		Balance:   balance,
		Source:    source,
		Reference: reference,
	})
	return transport.BalanceResponse{Balance: balance, Added: amount}, nil
}

func (s *Service) findPackage(id string) (Package, bool) {
	if s.packages == nil || id == "" {
		return Package{}, false
	}
	for _, p := range s.packages.CreditPackages() {
		if p.ID == id {
			return p, true
		}
	}
	return Package{}, false
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, event)
}

// storeErr passes apperr and precondition errors through as validation
// failures and hides everything else behind an internal error.
func (s *Service) storeErr(ctx context.Context, op string, err error) error {
	if apperr.GetKind(err) != apperr.KindUnknown {
		return err
	}
	if repository.IsPrecondition(err) {
		return apperr.Wrap(apperr.KindValidation, err.Error(), err).WithOp("credits." + op)
	}
	s.log.WithContext(ctx).StoreError("credits", op, err)
	return apperr.Wrap(apperr.KindInternal, msgStoreUnavailable, err).WithOp("credits." + op)
}
