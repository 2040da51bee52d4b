package orchestrator

import (
	"math"
	"sort"
)

// MeetingStats summarises one processed meeting.
type MeetingStats struct {
	Channels     int `json:"channels"`
	Words        int `json:"words"`
	Placeholders int `json:"placeholders"`
	Skipped      int `json:"skipped_ids"`
	Topics       int `json:"topics"`
	Spans        int `json:"spans"`
	// per channel share of total timed speech
	SpeakingShare map[string]float64 `json:"speaking_share,omitempty"`
	// fraction of the timed meeting during which two or more words are active
	OverlapRate float64 `json:"overlap_rate"`
}

func (s *MeetingStats) addChannel(b BuildStats) {
	s.Channels++
	s.Words += b.Words
	s.Placeholders += b.Placeholders
	s.Skipped += b.Skipped
}

// aggregate computes speaking share and overlap from word timestamps. Words
// without a start time are ignored.
func (s *MeetingStats) aggregate(indices map[string]WordIndex) {
	type edge struct {
		t     float64
		delta int
	}
	var edges []edge
	total := 0.0
	share := map[string]float64{}
	start, end := math.Inf(1), math.Inf(-1)
	for ch, idx := range indices {
		for _, w := range idx {
			if w.StartTime == nil || w.EndTime == nil {
				continue
			}
			d := math.Max(0, *w.EndTime-*w.StartTime)
			total += d
			share[ch] += d
			start = math.Min(start, *w.StartTime)
			end = math.Max(end, *w.EndTime)
			if d > 0 {
				edges = append(edges, edge{t: *w.StartTime, delta: +1}, edge{t: *w.EndTime, delta: -1})
			}
		}
	}
	if total == 0 {
		return
	}
	for k := range share {
		share[k] /= total
	}
	s.SpeakingShare = share

	// ends sort before starts at the same instant so touching words do not overlap
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].t == edges[j].t {
			return edges[i].delta < edges[j].delta
		}
		return edges[i].t < edges[j].t
	})
	active := 0
	last := edges[0].t
	overlap := 0.0
	for _, e := range edges {
		if active > 1 {
			overlap += e.t - last
		}
		active += e.delta
		last = e.t
	}
	if dur := end - start; dur > 0 {
		s.OverlapRate = overlap / dur
	}
}
