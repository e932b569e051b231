package usecase

import (
	"context"
	"fmt"
	"prefacturation_service/internal/domain/entities"
	"prefacturation_service/internal/usecase/interfaces"
	"sort"

	"github.com/shopspring/decimal"
)

const (
	statsScanLimit = 10000
	topPartiesSize = 5
)

// Stats computes the billing dashboard. Concurrent calls with the same filter
// share one computation.
func (u *PrefacturationUseCase) Stats(ctx context.Context, filter interfaces.PrefacturationFilter) (entities.PrefacturationStats, error) {
	key := fmt.Sprintf("%s|%s|%s", filter.Status, filter.CarrierID, filter.ClientID)
	v, err, _ := u.statsGroup.Do(key, func() (any, error) {
		filter.Limit = statsScanLimit
		items, err := u.repo.List(ctx, filter)
		if err != nil {
			return entities.PrefacturationStats{}, err
		}
		return ComputeStats(items), nil
	})
	if err != nil {
		return entities.PrefacturationStats{}, err
	}
	return v.(entities.PrefacturationStats), nil
}

// ComputeStats aggregates a set of prefacturations.
func ComputeStats(items []entities.Prefacturation) entities.PrefacturationStats {
	stats := entities.PrefacturationStats{
		Total:       len(items),
		TopClients:  []entities.PartyTotal{},
		TopCarriers: []entities.PartyTotal{},
	}
	if len(items) == 0 {
		return stats
	}

	total := decimal.Zero
	validated := 0
	clients := newPartyAggregator()
	carriers := newPartyAggregator()
	for _, p := range items {
		amount := decimal.NewFromFloat(p.Calculation.TotalHT)
		total = total.Add(amount)

		if p.WorkflowStatus == entities.PrefacturationStatusPendingValidation {
			stats.PendingValidation++
		}
		if p.CountDiscrepancies(entities.DiscrepancyStatusOpen) > 0 {
			stats.WithDiscrepancies++
		}
		if p.HasActiveBlocks() {
			stats.Blocked++
		}
		switch p.WorkflowStatus {
		case entities.PrefacturationStatusValidated, entities.PrefacturationStatusFinalized,
			entities.PrefacturationStatusExported, entities.PrefacturationStatusArchived:
			validated++
		}

		clients.add(p.ClientID, p.ClientName, amount)
		carriers.add(p.CarrierID, p.CarrierName, amount)
	}

	stats.TotalHT = total.Round(2).InexactFloat64()
	stats.ValidationRate = decimal.NewFromInt(int64(validated)).
		Div(decimal.NewFromInt(int64(len(items)))).
		Mul(decimal.NewFromInt(100)).
		Round(1).
		InexactFloat64()
	stats.TopClients = clients.top(topPartiesSize)
	stats.TopCarriers = carriers.top(topPartiesSize)
	return stats
}

type partyAggregator struct {
	order  []string
	totals map[string]*partyTotal
}

type partyTotal struct {
	name   string
	count  int
	amount decimal.Decimal
}

func newPartyAggregator() *partyAggregator {
	return &partyAggregator{totals: make(map[string]*partyTotal)}
}

func (a *partyAggregator) add(id, name string, amount decimal.Decimal) {
	t, ok := a.totals[id]
	if !ok {
		t = &partyTotal{name: name, amount: decimal.Zero}
		a.totals[id] = t
		a.order = append(a.order, id)
	}
	if t.name == "" {
		t.name = name
	}
	t.count++
	t.amount = t.amount.Add(amount)
}

func (a *partyAggregator) top(n int) []entities.PartyTotal {
	out := make([]entities.PartyTotal, 0, len(a.order))
	for _, id := range a.order {
		t := a.totals[id]
		out = append(out, entities.PartyTotal{
			ID:      id,
			Name:    t.name,
			Count:   t.count,
			TotalHT: t.amount.Round(2).InexactFloat64(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalHT > out[j].TotalHT
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
