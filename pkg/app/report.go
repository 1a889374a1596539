package app

import (
	"context"
	"sort"

	"tableflip.dev/diary/pkg/calendar"
	"tableflip.dev/diary/pkg/entry"
)

// WeatherCount is how many entries of a month recorded one weather value.
type WeatherCount struct {
	Weather string `json:"weather"`
	Count   int    `json:"count"`
}

// ReportResult summarizes the entries written during one month.
type ReportResult struct {
	Month      calendar.Month `json:"month"`
	Entries    int            `json:"entries"`
	Days       int            `json:"days"`
	Public     int            `json:"public"`
	Attachment int            `json:"with_attachment"`
	// LongestStreak is the longest run of consecutive days with an entry.
	LongestStreak int            `json:"longest_streak"`
	Weather       []WeatherCount `json:"weather"`
	Words         []string       `json:"words"`
}

// Report summarizes the user's entries for month.
func (s *Service) Report(ctx context.Context, month calendar.Month) (ReportResult, error) {
	all, err := s.Entries(ctx)
	if err != nil {
		return ReportResult{}, err
	}
	return Summarize(all, month), nil
}

// Summarize builds the report for month from already loaded entries.
func Summarize(all []*entry.Entry, month calendar.Month) ReportResult {
	res := ReportResult{Month: month}
	counts := calendar.CountByDate(all)
	weather := make(map[string]int)

	// Oldest first so the one-word list reads chronologically.
	inMonth := make([]*entry.Entry, 0, len(all))
	for _, e := range all {
		if e != nil && month.Contains(e.DateKey()) {
			inMonth = append(inMonth, e)
		}
	}
	sort.SliceStable(inMonth, func(i, j int) bool {
		return inMonth[i].DateKey() < inMonth[j].DateKey()
	})

	for _, e := range inMonth {
		res.Entries++
		if e.IsPublic {
			res.Public++
		}
		if e.ImageName != nil && *e.ImageName != "" || e.AudioName != nil && *e.AudioName != "" {
			res.Attachment++
		}
		if e.Weather != nil && *e.Weather != "" {
			weather[*e.Weather]++
		}
		if w := e.Field(entry.TodayInOneWord); w != "" {
			res.Words = append(res.Words, w)
		}
	}

	streak := 0
	for _, key := range month.Grid() {
		if key == nil {
			continue
		}
		if counts[*key] == 0 {
			streak = 0
			continue
		}
		res.Days++
		streak++
		if streak > res.LongestStreak {
			res.LongestStreak = streak
		}
	}

	for w, n := range weather {
		res.Weather = append(res.Weather, WeatherCount{Weather: w, Count: n})
	}
	sort.Slice(res.Weather, func(i, j int) bool {
		if res.Weather[i].Count != res.Weather[j].Count {
			return res.Weather[i].Count > res.Weather[j].Count
		}
		return res.Weather[i].Weather < res.Weather[j].Weather
	})
	return res
}
