package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ManifestName is the file a batch run records its outcome in.
const ManifestName = "manifest.json"

// BatchResult summarises a run over a topics directory.
type BatchResult struct {
	RunID       string          `json:"run_id"`
	StartedAt   time.Time       `json:"started_at"`
	CompletedAt time.Time       `json:"completed_at"`
	Total       int             `json:"total"`
	Succeeded   int             `json:"succeeded"`
	Failed      int             `json:"failed"`
	Meetings    []MeetingReport `json:"meetings"`
}

// MeetingReport is the outcome of one meeting in a batch.
type MeetingReport struct {
	MeetingID string        `json:"meeting_id"`
	TopicFile string        `json:"topic_file"`
	Output    string        `json:"output,omitempty"`
	Stats     *MeetingStats `json:"stats,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// Failures returns the reports of meetings that did not complete.
func (r *BatchResult) Failures() []MeetingReport {
	var out []MeetingReport
	for _, m := range r.Meetings {
		if m.Error != "" {
			out = append(out, m)
		}
	}
	return out
}

// RunBatch processes every topic file in the topics directory and writes one
// output per meeting. A failing meeting is reported and does not stop the
// others; the returned error is only for problems with the run itself.
func (p *Pipeline) RunBatch(ctx context.Context) (*BatchResult, error) {
	files, err := p.topicFiles()
	if err != nil {
		return nil, err
	}

	res := &BatchResult{
		RunID:     uuid.New().String(),
		StartedAt: time.Now(),
		Total:     len(files),
		Meetings:  make([]MeetingReport, len(files)),
	}
	log := p.log.WithField("run_id", res.RunID)
	log.WithFields(logrus.Fields{
		"meetings": len(files),
		"workers":  p.cfg.Batch.Workers,
	}).Info("batch started")

	// each worker owns one slot of res.Meetings
	var g errgroup.Group
	g.SetLimit(max(1, p.cfg.Batch.Workers))
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			res.Meetings[i] = p.processOne(ctx, file)
			return nil
		})
	}
	_ = g.Wait()

	for _, m := range res.Meetings {
		if m.Error != "" {
			res.Failed++
			log.WithField("meeting", m.MeetingID).Error(m.Error)
		} else {
			res.Succeeded++
		}
	}
	res.CompletedAt = time.Now()

	if p.cfg.Batch.Manifest {
		path, err := p.writeManifest(res)
		if err != nil {
			return res, fmt.Errorf("write manifest: %w", err)
		}
		log.WithField("path", path).Debug("manifest written")
	}

	log.WithFields(logrus.Fields{
		"succeeded": res.Succeeded,
		"failed":    res.Failed,
		"elapsed":   res.CompletedAt.Sub(res.StartedAt).Round(time.Millisecond).String(),
	}).Info("batch finished")
	return res, nil
}

func (p *Pipeline) processOne(ctx context.Context, file string) MeetingReport {
	rep := MeetingReport{MeetingID: MeetingID(file), TopicFile: file}
	if err := ctx.Err(); err != nil {
		rep.Error = (&MeetingError{MeetingID: rep.MeetingID, Err: err}).Error()
		return rep
	}
	res, err := p.RunMeeting(ctx, file)
	if err != nil {
		rep.Error = err.Error()
		return rep
	}
	out, err := p.WriteMeeting(res)
	if err != nil {
		rep.Error = (&MeetingError{MeetingID: rep.MeetingID, Stage: "write", Err: err}).Error()
		return rep
	}
	rep.Output = out
	rep.Stats = &res.Stats
	return rep
}

// topicFiles lists the regular files of the topics directory in name order.
func (p *Pipeline) topicFiles() ([]string, error) {
	entries, err := os.ReadDir(p.cfg.Paths.Topics)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		out = append(out, filepath.Join(p.cfg.Paths.Topics, e.Name()))
	}
	return out, nil
}
