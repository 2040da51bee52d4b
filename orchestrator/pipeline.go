package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	cfg "github.com/maastricht-university/ami-topics/config"
	"github.com/maastricht-university/ami-topics/corpus"
)

type Pipeline struct {
	cfg     *cfg.Root
	tax     Taxonomy
	log     logrus.FieldLogger
	metrics *Metrics
}

// MeetingResult is the reconstructed topic forest of one meeting.
type MeetingResult struct {
	MeetingID string
	Topics    []Topic
	Stats     MeetingStats
}

// NewPipeline returns a pipeline resolving topic types against tax. A nil
// metrics gets a private registry.
func NewPipeline(c *cfg.Root, tax Taxonomy, log logrus.FieldLogger, metrics *Metrics) *Pipeline {
	if metrics == nil {
		metrics = NewMetrics(prometheus.NewRegistry())
	}
	return &Pipeline{cfg: c, tax: tax, log: log, metrics: metrics}
}

// MeetingID derives the meeting id from a topic file name, e.g.
// "ES2002a.topic.xml" -> "ES2002a".
func MeetingID(topicPath string) string {
	base := filepath.Base(topicPath)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		return base[:i]
	}
	return base
}

// RunMeeting reconstructs the topic forest described by topicPath. Every
// channel file in the words directory whose name contains the meeting id is
// indexed before any span is resolved. Errors are *MeetingError.
func (p *Pipeline) RunMeeting(ctx context.Context, topicPath string) (*MeetingResult, error) {
	started := time.Now()
	res, err := p.runMeeting(ctx, topicPath)
	p.metrics.MeetingSeconds.Observe(time.Since(started).Seconds())
	if err != nil {
		p.metrics.MeetingsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}
	p.metrics.MeetingsTotal.WithLabelValues("ok").Inc()
	return res, nil
}

func (p *Pipeline) runMeeting(ctx context.Context, topicPath string) (*MeetingResult, error) {
	id := MeetingID(topicPath)
	log := p.log.WithField("meeting", id)
	res := &MeetingResult{MeetingID: id}

	channels, err := p.channelFiles(id)
	if err != nil {
		return nil, &MeetingError{MeetingID: id, Stage: StageWords, Err: err}
	}
	if len(channels) == 0 {
		log.Warn("no channel files found")
	}

	indices := make(map[string]WordIndex, len(channels))
	for _, name := range channels {
		if err := ctx.Err(); err != nil {
			return nil, &MeetingError{MeetingID: id, Stage: StageWords, Err: err}
		}
		elems, err := corpus.ReadChannelFile(filepath.Join(p.cfg.Paths.Words, name))
		if err != nil {
			return nil, &MeetingError{MeetingID: id, Stage: StageWords, Channel: name, Err: err}
		}
		idx, st, err := BuildWordIndex(elems)
		if err != nil {
			return nil, &MeetingError{MeetingID: id, Stage: StageWords, Channel: name, Err: err}
		}
		log.WithFields(logrus.Fields{
			"channel":      name,
			"words":        st.Words,
			"placeholders": st.Placeholders,
			"skipped":      st.Skipped,
		}).Debug("channel indexed")
		indices[name] = idx
		res.Stats.addChannel(st)
	}

	roots, err := corpus.ReadTopicsFile(topicPath)
	if err != nil {
		return nil, &MeetingError{MeetingID: id, Stage: StageTopics, Err: err}
	}
	forest, ps, err := ParseTopics(roots, p.tax, p.cfg.Taxonomy.OtherID)
	if err != nil {
		return nil, meetingError(id, StageTopics, err)
	}
	if ps.FallbackOther > 0 || ps.NameMatched > 0 {
		log.WithFields(logrus.Fields{
			"by_description": ps.NameMatched,
			"as_other":       ps.FallbackOther,
		}).Debug("topic types resolved without pointer")
	}

	if res.Topics, err = ResolveText(forest, indices); err != nil {
		return nil, meetingError(id, StageResolve, err)
	}

	res.Stats.Topics = ps.Topics
	res.Stats.Spans = ps.Spans
	res.Stats.aggregate(indices)
	p.metrics.observeMeeting(res.Stats, ps)

	log.WithFields(logrus.Fields{
		"channels": res.Stats.Channels,
		"topics":   res.Stats.Topics,
		"spans":    res.Stats.Spans,
	}).Info("meeting reconstructed")
	return res, nil
}

func meetingError(id, stage string, err error) *MeetingError {
	me := &MeetingError{MeetingID: id, Stage: stage, Err: err}
	var se *spanError
	if errors.As(err, &se) {
		me.Ref = se.ref
		me.Channel = se.span.Filename
	}
	return me
}

// channelFiles lists the words directory entries belonging to meetingID. A
// file belongs to a meeting when its name contains the meeting id.
func (p *Pipeline) channelFiles(meetingID string) ([]string, error) {
	entries, err := os.ReadDir(p.cfg.Paths.Words)
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.Contains(e.Name(), meetingID) {
			continue
		}
		out = append(out, e.Name())
	}
	return out, nil
}
