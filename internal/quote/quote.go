// Package quote supplies the short texts used by the morning greeting
// and the evening notification. Selection is deterministic by calendar
// date so repeated reschedules on the same day pick the same quote.
package quote

import (
	"fmt"
	"time"

	"github.com/foyerapp/foyer/internal/constants"
	"github.com/foyerapp/foyer/internal/models"
)

var morningQuotes = []string{
	"Chaque jour est une nouvelle chance.",
	"Un pas après l'autre, c'est déjà avancer.",
	"Les petites victoires font les grandes journées.",
	"Commencez par le plus simple.",
	"Aujourd'hui compte plus qu'hier.",
}

var eveningQuotes = []string{
	"La journée est finie, soyez fier du chemin parcouru.",
	"Le repos fait partie du travail.",
	"Demain est un autre jour.",
	"Ce qui n'est pas fait aujourd'hui attendra bien demain.",
	"Prenez un moment pour vous ce soir.",
}

type Provider struct{}

func NewProvider() *Provider {
	return &Provider{}
}

// Get returns the quote for the given kind and date.
func (p *Provider) Get(kind constants.QuoteKind, date time.Time) (models.Quote, error) {
	var pool []string
	switch kind {
	case constants.QuoteMorning:
		pool = morningQuotes
	case constants.QuoteEvening:
		pool = eveningQuotes
	default:
		return models.Quote{}, fmt.Errorf("unknown quote kind: %s", kind)
	}

	idx := date.YearDay() % len(pool)
	return models.Quote{Kind: kind, Text: pool[idx]}, nil
}
