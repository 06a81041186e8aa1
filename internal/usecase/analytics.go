package usecase

import (
	"time"

	"github.com/xavierca1/leadflow/internal/entity"
)

type SourceCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type MonthlyPerformance struct {
	Month       string  `json:"month"`
	Leads       int     `json:"leads"`
	Conversions int     `json:"conversions"`
	Rate        float64 `json:"rate"`
}

type Summary struct {
	TotalLeads     int            `json:"total_leads"`
	PipelineBudget float64        `json:"pipeline_budget"`
	AverageScore   float64        `json:"average_score"`
	ConversionRate float64        `json:"conversion_rate"`
	ByStatus       map[string]int `json:"by_status"`
}

// AggregateBySource counts leads per origin channel. Groups appear in
// the order their source was first seen, which is what the pie chart
// renders; a missing source lands in "Other".
func (s *LeadStore) AggregateBySource() []SourceCount {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	var order []string
	for _, l := range s.leads {
		source := l.Source
		if source == "" {
			source = "Other"
		}
		if _, ok := counts[source]; !ok {
			order = append(order, source)
		}
		counts[source]++
	}

	out := make([]SourceCount, 0, len(order))
	for _, name := range order {
		out = append(out, SourceCount{Name: name, Value: counts[name]})
	}
	return out
}

// AggregateMonthlyPerformance buckets the store by lastContact over the
// 7 most recent calendar months ending now. Leads counts everything
// touched in the month, conversions the subset that reached Closed.
// Earlier revisions of the dashboard faked these numbers; this one is
// derived from the actual lead set, so empty months report zeroes.
func (s *LeadStore) AggregateMonthlyPerformance() []MonthlyPerformance {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	out := make([]MonthlyPerformance, 0, 7)

	for i := 6; i >= 0; i-- {
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		leads, conversions := 0, 0

		for _, l := range s.leads {
			t, err := time.Parse(entity.DateFormat, l.LastContact)
			if err != nil {
				continue
			}
			if t.Year() == month.Year() && t.Month() == month.Month() {
				leads++
				if l.Status == entity.StatusClosed {
					conversions++
				}
			}
		}

		rate := 0.0
		if leads > 0 {
			rate = float64(conversions) / float64(leads) * 100
		}

		out = append(out, MonthlyPerformance{
			Month:       month.Format("Jan"),
			Leads:       leads,
			Conversions: conversions,
			Rate:        rate,
		})
	}

	return out
}

// AggregateSummary feeds the dashboard stat cards.
func (s *LeadStore) AggregateSummary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := Summary{ByStatus: make(map[string]int)}
	scoreTotal := 0
	for _, l := range s.leads {
		sum.TotalLeads++
		sum.PipelineBudget += l.Budget
		scoreTotal += l.Score
		sum.ByStatus[l.Status]++
	}
	if sum.TotalLeads > 0 {
		sum.AverageScore = float64(scoreTotal) / float64(sum.TotalLeads)
		sum.ConversionRate = float64(sum.ByStatus[entity.StatusClosed]) / float64(sum.TotalLeads) * 100
	}
	return sum
}
