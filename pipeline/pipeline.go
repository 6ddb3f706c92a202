// SPDX-License-Identifier: MIT

package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/zeebo/xxh3"

	"github.com/katalvlaran/radial/ballot"
	"github.com/katalvlaran/radial/config"
	"github.com/katalvlaran/radial/logging"
	"github.com/katalvlaran/radial/metrics"
	"github.com/katalvlaran/radial/pca"
	"github.com/katalvlaran/radial/render"
	"github.com/katalvlaran/radial/sector"
	"github.com/katalvlaran/radial/store"
)

// Stage names used in logs, metrics and wrapped errors.
const (
	StageRead      = "read"
	StageProject   = "project"
	StagePartition = "partition"
	StageBoundary  = "boundaries"
	StageWriteCSV  = "write_csv"
	StageRender    = "render"
	StagePersist   = "persist"
)

// Outputs lists the artifacts a run actually produced; skipped ones stay empty.
type Outputs struct {
	Assignments string
	Image       string
	Database    string
}

// GroupSize is one row of Report.Sizes.
type GroupSize struct {
	Label sector.Label
	Size  int
}

// Report is everything a run computed.
type Report struct {
	Input        string
	Digest       string // xxh3-64 of the input bytes, hex
	Table        *ballot.Table
	Projection   *pca.Projection
	Participants []sector.Participant
	Result       *sector.Result
	Boundaries   []sector.Boundary
	RunID        string
	Outputs      Outputs
}

// Sizes returns the member count of every group in label order.
func (r *Report) Sizes() []GroupSize {
	out := make([]GroupSize, len(r.Result.Labels))
	for i, l := range r.Result.Labels {
		out[i] = GroupSize{Label: l, Size: r.Result.Sizes[i]}
	}

	return out
}

// Run executes the whole pipeline on the ballot at input.
//
// A nil log or rec is replaced by a no-op. cfg is validated first; every
// later error is wrapped as "pipeline: <stage>: …".
func Run(ctx context.Context, cfg *config.Config, input string, log *logging.Logger, rec metrics.Recorder) (rep *Report, err error) {
	if log == nil {
		log = logging.Nop()
	}
	if rec == nil {
		rec = metrics.NewNop()
	}
	defer func() {
		if err != nil {
			rec.RecordRun("failure")
		} else {
			rec.RecordRun("success")
		}
	}()
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	r := &pipelineRun{ctx: ctx, cfg: cfg, log: log.With("input", input), rec: rec, rep: &Report{Input: input}}
	steps := []struct {
		name string
		fn   func() error
	}{
		{StageRead, r.read},
		{StageProject, r.project},
		{StagePartition, r.partition},
		{StageBoundary, r.boundaries},
		{StageWriteCSV, r.writeCSV},
		{StageRender, r.render},
		{StagePersist, r.persist},
	}
	for _, s := range steps {
		if err = r.stage(s.name, s.fn); err != nil {
			return nil, err
		}
	}

	return r.rep, nil
}

// pipelineRun holds the state threaded through the stages of one Run.
type pipelineRun struct {
	ctx context.Context
	cfg *config.Config
	log *logging.Logger
	rec metrics.Recorder
	rep *Report
}

// stage checks for cancellation, times fn and wraps its error.
func (r *pipelineRun) stage(name string, fn func() error) error {
	if err := r.ctx.Err(); err != nil {
		return fmt.Errorf("pipeline: %s: %w", name, err)
	}
	start := time.Now()
	err := fn()
	r.rec.ObserveStage(name, time.Since(start).Seconds())
	if err != nil {
		r.log.Error("stage failed", "stage", name, "error", err)
		return fmt.Errorf("pipeline: %s: %w", name, err)
	}

	return nil
}

func (r *pipelineRun) read() error {
	data, err := os.ReadFile(r.rep.Input)
	if err != nil {
		return err
	}
	r.rep.Digest = Digest(data)
	tab, err := ballot.Read(bytes.NewReader(data), r.cfg.Encoding())
	if err != nil {
		return err
	}
	r.rep.Table = tab
	r.rec.SetParticipants(len(tab.IDs))
	r.log.Info("ballot loaded",
		"participants", len(tab.IDs), "questions", len(tab.Questions), "digest", r.rep.Digest)

	return nil
}

func (r *pipelineRun) project() error {
	opts, err := r.cfg.ProjectionOptions()
	if err != nil {
		return err
	}
	p, err := pca.Project(r.rep.Table.Responses, &opts)
	if err != nil {
		return err
	}
	ps, err := p.Points(r.rep.Table.IDs)
	if err != nil {
		return err
	}
	r.rep.Projection = p
	r.rep.Participants = ps
	for i, v := range p.ExplainedVarianceRatio {
		r.rec.SetExplainedVariance(i, v)
	}
	r.log.Info("projected",
		"solver", opts.Solver.String(), "explained_variance", p.ExplainedVarianceRatio)

	return nil
}

func (r *pipelineRun) partition() error {
	opts := r.cfg.SectorOptions()
	res, err := sector.Partition(r.rep.Participants, r.cfg.Groups, &opts)
	if err != nil {
		return err
	}
	r.rep.Result = res
	r.rec.SetOffset(res.Offset)
	for i, l := range res.Labels {
		r.rec.SetGroupSize(string(l), res.Sizes[i])
	}
	r.log.Info("partitioned",
		"groups", len(res.Labels), "offset", res.Offset, "sizes", res.Sizes)

	return nil
}

func (r *pipelineRun) boundaries() error {
	bs, err := r.rep.Result.Boundaries()
	if err != nil {
		return err
	}
	r.rep.Boundaries = bs
	r.log.Debug("boundaries computed", "angles", sector.Angles(bs))

	return nil
}

func (r *pipelineRun) writeCSV() error {
	path := r.cfg.Output.Assignments
	if path == "" {
		r.log.Debug("assignments output disabled")
		return nil
	}
	if err := ballot.WriteAssignmentsFile(path, r.rep.Table.IDs, r.rep.Result.Assignment); err != nil {
		return err
	}
	r.rep.Outputs.Assignments = path
	r.log.Info("assignments written", "path", path)

	return nil
}

func (r *pipelineRun) render() error {
	path := r.cfg.Output.Image
	if path == "" {
		r.log.Debug("image output disabled")
		return nil
	}
	scene, err := render.NewScene(r.rep.Result, r.rep.Participants)
	if err != nil {
		return err
	}
	opts := r.cfg.RenderOptions()
	if err = render.PNGFile(path, scene, &opts); err != nil {
		return err
	}
	r.rep.Outputs.Image = path
	r.log.Info("chart rendered", "path", path)

	return nil
}

func (r *pipelineRun) persist() error {
	path := r.cfg.Output.Database
	if path == "" {
		r.log.Debug("database output disabled")
		return nil
	}
	st, err := store.Open(r.ctx, path)
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := st.SaveRun(r.ctx, r.rep.storeRun())
	if err != nil {
		return err
	}
	r.rep.RunID = id
	r.rep.Outputs.Database = path
	r.log.Info("run stored", "path", path, "run_id", id)

	return nil
}

// storeRun converts the report into its persisted form.
func (rep *Report) storeRun() *store.Run {
	res := rep.Result
	run := &store.Run{
		Input:       rep.Input,
		InputDigest: rep.Digest,
		Groups:      len(res.Labels),
		Offset:      res.Offset,
		CentroidX:   res.Centroid.X,
		CentroidY:   res.Centroid.Y,
		Explained:   rep.Projection.ExplainedVarianceRatio,
		Members:     make([]store.Member, len(rep.Participants)),
		Boundaries:  rep.Boundaries,
	}
	for i, p := range rep.Participants {
		run.Members[i] = store.Member{
			ID:    p.ID,
			Group: res.Assignment[p.ID],
			X:     p.X,
			Y:     p.Y,
			Angle: res.Angles[i],
		}
	}

	return run
}

// Digest returns the xxh3-64 hash of data as 16 hex digits.
func Digest(data []byte) string {
	return fmt.Sprintf("%016x", xxh3.Hash(data))
}
