// Package assistant suggests filter patches from free-text chat messages
// using a fixed keyword vocabulary.
package assistant

import (
	"marketplace_backend/internal/marketplace/domain"
	"marketplace_backend/platform/textmatch"
)

// Reply is the canned answer plus an optional filter patch.
type Reply struct {
	Text  string
	Patch *domain.FilterPatch
}

type bucket struct {
	keywords []string
	text     string
	patch    func() domain.FilterPatch
}

// Buckets are checked in order and the first keyword hit wins.
var buckets = []bucket{
	{
		keywords: []string{"automatiz"},
		text:     "He aplicado el filtro de Automatización. Estas soluciones reducen tareas manuales repetitivas.",
		patch: func() domain.FilterPatch {
			return domain.FilterPatch{AIType: &[]string{"Automatización"}}
		},
	},
	{
		keywords: []string{"fintech", "banca"},
		text:     "Te muestro proveedores del sector Fintech con experiencia en banca y pagos.",
		patch: func() domain.FilterPatch {
			return domain.FilterPatch{Sector: &[]string{"Fintech"}}
		},
	},
	{
		keywords: []string{"roi", "rápido"},
		text:     "Para un retorno rápido, filtro por soluciones que se integran en menos de un mes.",
		patch: func() domain.FilterPatch {
			v := "< 1 mes"
			return domain.FilterPatch{IntegrationTime: &v}
		},
	},
	{
		keywords: []string{"sap", "integra"},
		text:     "He filtrado por soluciones compatibles con SAP.",
		patch: func() domain.FilterPatch {
			v := "SAP"
			return domain.FilterPatch{TechStack: &v}
		},
	},
}

const fallbackText = "Cuéntame qué problema quieres resolver: sector, tipo de IA o sistemas con los que debe integrarse."

// Respond maps message to a reply. Unknown messages get the fallback text and no patch.
func Respond(message string) Reply {
	for _, b := range buckets {
		if textmatch.ContainsAny(message, b.keywords) {
			p := b.patch()
			return Reply{Text: b.text, Patch: &p}
		}
	}
	return Reply{Text: fallbackText}
}
