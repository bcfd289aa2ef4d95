package adapters

import (
	creditsvc "marketplace_backend/internal/credits/service"
	marketplacesvc "marketplace_backend/internal/marketplace/service"
)

// CreditPackageReader exposes the seed catalog's credit packages to the credits service.
type CreditPackageReader struct {
	svc *marketplacesvc.Service
}

// NewCreditPackageReader creates a new adapter.
func NewCreditPackageReader(svc *marketplacesvc.Service) *CreditPackageReader {
	return &CreditPackageReader{svc: svc}
}

func (a *CreditPackageReader) CreditPackages() []creditsvc.Package {
	src := a.svc.CreditPackages()
	out := make([]creditsvc.Package, 0, len(src))
	for _, p := range src {
		out = append(out, creditsvc.Package{
			ID:         p.ID,
			Name:       p.Name,
			Credits:    p.Credits,
			PriceCents: p.PriceCents,
			Currency:   p.Currency,
		})
	}
	return out
}

var _ creditsvc.PackageReader = (*CreditPackageReader)(nil)
