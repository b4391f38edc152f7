// Package orchestrator coordinates the cache tiers, the live fetch, and the
// synthetic fallbacks behind one always-succeeding "get data" operation. It
// owns all failure handling: network, payload, and storage problems are
// absorbed here and surface only as advisory text plus a truthful
// provenance label.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"SoundTreasury/internal/cache"
	"SoundTreasury/internal/calculator"
	"SoundTreasury/internal/collector"
	"SoundTreasury/internal/compare"
	"SoundTreasury/internal/model"
	"SoundTreasury/internal/sector"
)

// SourceLive labels sector data freshly fetched from the upstream service.
// The model domain carries its own upstream label in stats.
const SourceLive = "Live Data"

// ModelResult is a displayable fair-value series. Advisory is empty unless a
// fallback path was taken; Source always reflects true provenance.
type ModelResult struct {
	Data     []model.TimePoint `json:"data"`
	Chart    []model.TimePoint `json:"chartData"`
	Stats    model.ModelStats  `json:"stats"`
	Source   string            `json:"source"`
	Advisory string            `json:"advisory,omitempty"`
}

// SectorResult is a displayable comparison series for one sector.
type SectorResult struct {
	Series   *model.ComparisonSeries `json:"series"`
	Source   string                  `json:"source"`
	Advisory string                  `json:"advisory,omitempty"`
}

type flight struct {
	done chan struct{}
	val  any
	err  error
}

// Orchestrator is the single entry point for dashboard data. It is the only
// writer of both cache tiers; everything it returns is an immutable snapshot.
type Orchestrator struct {
	fetcher  collector.Fetcher
	mem      *cache.Memory
	store    *cache.Store // nil disables the persisted tier
	params   calculator.Params
	chartMax int
	log      *logrus.Entry
	now      func() time.Time

	flightMu sync.Mutex
	flights  map[string]*flight

	baseline      *model.ModelBundle
	staticSectors map[string]*model.ComparisonSeries
}

// New builds an orchestrator and eagerly computes the synthetic baseline and
// the static comparison fallbacks, so displayable data exists before any
// fetch completes.
func New(fetcher collector.Fetcher, mem *cache.Memory, store *cache.Store, params calculator.Params, chartMax int) *Orchestrator {
	if chartMax <= 0 {
		chartMax = calculator.DefaultChartPoints
	}
	o := &Orchestrator{
		fetcher:       fetcher,
		mem:           mem,
		store:         store,
		params:        params,
		chartMax:      chartMax,
		log:           logrus.WithField("component", "orchestrator"),
		now:           time.Now,
		flights:       make(map[string]*flight),
		staticSectors: make(map[string]*model.ComparisonSeries),
	}
	o.baseline = calculator.BaselineBundle(params, o.now(), chartMax)
	for _, key := range sector.Keys() {
		s, _ := sector.ByKey(key)
		o.staticSectors[key] = compare.Build(s.StaticHistory(), s.Assets)
	}
	return o
}

// Baseline returns the pre-fetch synthetic series. It involves no I/O and is
// meant for the first paint while a live fetch is still in flight.
func (o *Orchestrator) Baseline() *ModelResult {
	return modelResult(o.baseline, model.SourceBaseline, "")
}

// GetModelSeries resolves the fair-value domain: in-process cache, then the
// persisted cache, then a live fetch, then fallback. It never fails; the
// worst case is a simulated series with an advisory attached. force skips
// both cache tiers.
func (o *Orchestrator) GetModelSeries(ctx context.Context, force bool) *ModelResult {
	if !force {
		if b, src, ok := o.mem.Model(); ok {
			return modelResult(b, src, "")
		}
		if b, src, ok := o.loadPersisted(); ok {
			o.mem.SetModel(b, src)
			return modelResult(b, src, "")
		}
	}

	v, err := o.share("model", func() (any, error) {
		return o.fetcher.FetchModelSeries(ctx)
	})
	if err == nil {
		payload := v.(*model.ModelPayload)
		b, src := o.resolvePayload(payload)
		o.mem.SetModel(b, src)
		o.persist(payload, b.Chart)
		return modelResult(b, src, "")
	}

	adv := advisory(err)
	o.log.Warnf("model fetch failed: %v", err)

	// The cache stays untouched on failure: a failed forced refresh must
	// return the previous series, not erase it.
	if b, src, ok := o.mem.Model(); ok {
		return modelResult(b, src, adv)
	}
	if b, src, ok := o.loadPersisted(); ok {
		o.mem.SetModel(b, src)
		return modelResult(b, src, adv)
	}
	sim := calculator.SimulatedBundle(o.params, o.now(), o.chartMax)
	return modelResult(sim, model.SourceSimulated, adv)
}

// GetSectorSeries resolves the comparison domain for one sector key. The
// persisted tier does not apply here; the fallback is the bundled static
// history run through the comparison engine. Unknown keys are a caller
// contract violation and the only error this method returns.
func (o *Orchestrator) GetSectorSeries(ctx context.Context, key string, force bool) (*SectorResult, error) {
	if _, ok := sector.ByKey(key); !ok {
		return nil, fmt.Errorf("unknown sector %q", key)
	}

	if !force {
		if s, src, ok := o.mem.Sector(key); ok {
			return &SectorResult{Series: s, Source: src}, nil
		}
	}

	v, err := o.share("sector:"+key, func() (any, error) {
		return o.fetcher.FetchSectorSeries(ctx, key)
	})
	if err == nil {
		series := v.(*model.ComparisonSeries)
		o.mem.SetSector(key, series, SourceLive)
		return &SectorResult{Series: series, Source: SourceLive}, nil
	}

	adv := advisory(err)
	o.log.Warnf("sector %s fetch failed: %v", key, err)

	if s, src, ok := o.mem.Sector(key); ok {
		return &SectorResult{Series: s, Source: src, Advisory: adv}, nil
	}
	static := o.staticSectors[key]
	o.mem.SetSector(key, static, model.SourceStatic)
	return &SectorResult{Series: static, Source: model.SourceStatic, Advisory: adv}, nil
}

// RefreshAll forces a refresh of every domain. Used by the background
// scheduler; failures are already absorbed per domain.
func (o *Orchestrator) RefreshAll(ctx context.Context) {
	res := o.GetModelSeries(ctx, true)
	if res.Advisory != "" {
		o.log.Warnf("scheduled model refresh degraded: %s (source: %s)", res.Advisory, res.Source)
	}
	for _, key := range sector.Keys() {
		sr, err := o.GetSectorSeries(ctx, key, true)
		if err != nil {
			continue
		}
		if sr.Advisory != "" {
			o.log.Warnf("scheduled %s refresh degraded: %s (source: %s)", key, sr.Advisory, sr.Source)
		}
	}
}

// share collapses concurrent duplicate requests for one key into a single
// execution; late arrivals wait and reuse the in-flight result.
func (o *Orchestrator) share(key string, fn func() (any, error)) (any, error) {
	o.flightMu.Lock()
	if f, ok := o.flights[key]; ok {
		o.flightMu.Unlock()
		<-f.done
		return f.val, f.err
	}
	f := &flight{done: make(chan struct{})}
	o.flights[key] = f
	o.flightMu.Unlock()

	f.val, f.err = fn()
	close(f.done)

	o.flightMu.Lock()
	delete(o.flights, key)
	o.flightMu.Unlock()
	return f.val, f.err
}

// resolvePayload turns a validated upstream payload into a display bundle,
// deriving the chart series when the upstream omitted it and folding the
// verification flag into the provenance label.
func (o *Orchestrator) resolvePayload(p *model.ModelPayload) (*model.ModelBundle, string) {
	chart := p.ChartData
	if len(chart) == 0 {
		chart = calculator.Downsample(p.Data, o.chartMax)
	}
	src := p.Stats.DataSource
	if p.Stats.Verification != nil && !p.Stats.Verification.Matches {
		src += " (verify)"
	}
	return &model.ModelBundle{Data: p.Data, Chart: chart, Stats: *p.Stats}, src
}

func (o *Orchestrator) loadPersisted() (*model.ModelBundle, string, bool) {
	if o.store == nil {
		return nil, "", false
	}
	entry, err := o.store.LoadModel()
	if err != nil {
		o.log.Warnf("persisted cache read failed: %v", err)
		return nil, "", false
	}
	if entry == nil || len(entry.Data) == 0 || entry.Stats == nil {
		return nil, "", false
	}
	chart := entry.ChartData
	if len(chart) == 0 {
		chart = calculator.Downsample(entry.Data, o.chartMax)
	}
	b := &model.ModelBundle{Data: entry.Data, Chart: chart, Stats: *entry.Stats}
	return b, entry.Stats.DataSource + " (cached)", true
}

func (o *Orchestrator) persist(p *model.ModelPayload, chart []model.TimePoint) {
	if o.store == nil {
		return
	}
	err := o.store.SaveModel(&cache.Entry{
		Data:      p.Data,
		Stats:     p.Stats,
		ChartData: chart,
	})
	if err != nil {
		// Storage trouble must not fail a successful fetch.
		o.log.Warnf("persisted cache write failed: %v", err)
	}
}

// advisory maps a fetch failure onto the short, non-blocking message shown
// next to the fallback data.
func advisory(err error) string {
	switch {
	case errors.Is(err, collector.ErrInvalidPayload):
		return "Upstream returned an invalid payload. Showing fallback data."
	case errors.Is(err, collector.ErrNetwork):
		return "Live data unavailable. Showing fallback data."
	default:
		return "Could not fetch latest data. Showing fallback data."
	}
}

func modelResult(b *model.ModelBundle, source, adv string) *ModelResult {
	return &ModelResult{
		Data:     b.Data,
		Chart:    b.Chart,
		Stats:    b.Stats,
		Source:   source,
		Advisory: adv,
	}
}
