package orchestrator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the counters updated while processing meetings.
type Metrics struct {
	MeetingsTotal    *prometheus.CounterVec
	WordsIndexed     prometheus.Counter
	PlaceholderWords prometheus.Counter
	SkippedWordIDs   prometheus.Counter
	SpansResolved    prometheus.Counter
	TopicTypesTotal  *prometheus.CounterVec
	MeetingSeconds   prometheus.Histogram
}

// NewMetrics registers the pipeline metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		MeetingsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "amitopics_meetings_total",
				Help: "Meetings processed by outcome",
			},
			[]string{"status"},
		),
		WordsIndexed: factory.NewCounter(prometheus.CounterOpts{
			Name: "amitopics_words_indexed_total",
			Help: "Word index entries built, placeholders included",
		}),
		PlaceholderWords: factory.NewCounter(prometheus.CounterOpts{
			Name: "amitopics_placeholder_words_total",
			Help: "Placeholder words inserted for missing word ids",
		}),
		SkippedWordIDs: factory.NewCounter(prometheus.CounterOpts{
			Name: "amitopics_skipped_word_ids_total",
			Help: "Word elements skipped for a non-numeric id",
		}),
		SpansResolved: factory.NewCounter(prometheus.CounterOpts{
			Name: "amitopics_spans_resolved_total",
			Help: "Sentence spans resolved to text",
		}),
		TopicTypesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "amitopics_topic_types_total",
				Help: "Topic type resolutions by method",
			},
			[]string{"method"},
		),
		MeetingSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "amitopics_meeting_seconds",
			Help:    "Time to reconstruct one meeting",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}),
	}
}

func (m *Metrics) observeMeeting(st MeetingStats, ps ParseStats) {
	m.WordsIndexed.Add(float64(st.Words))
	m.PlaceholderWords.Add(float64(st.Placeholders))
	m.SkippedWordIDs.Add(float64(st.Skipped))
	m.SpansResolved.Add(float64(st.Spans))
	m.TopicTypesTotal.WithLabelValues("pointer").Add(float64(ps.Typed))
	m.TopicTypesTotal.WithLabelValues("description").Add(float64(ps.NameMatched))
	m.TopicTypesTotal.WithLabelValues("other").Add(float64(ps.FallbackOther))
}
