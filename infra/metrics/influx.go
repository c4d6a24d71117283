package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/packlab/packsim/core/metrics"
	"github.com/packlab/packsim/core/model"
	"github.com/packlab/packsim/infra/logger"
)

// InfluxSink writes simulation events and per-cell sample series to an
// InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and returns a
// NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg coremetrics.Config) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxOrg, cfg.InfluxBucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordBuild writes the topology build as a single event point.
func (s *InfluxSink) RecordBuild(ev coremetrics.BuildEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("pack_build").
		AddTag("chemistry", ev.Chemistry.String()).
		AddTag("component", "topology_builder").
		AddField("series", ev.Series).
		AddField("parallel", ev.Parallel).
		AddField("cells_built", ev.CellsBuilt).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordSimulation writes the run outcome as an event point.
func (s *InfluxSink) RecordSimulation(ev coremetrics.SimulationEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("pack_simulation").
		AddTag("run_id", ev.RunID).
		AddTag("chemistry", ev.Chemistry.String()).
		AddTag("success", strconv.FormatBool(ev.Err == nil)).
		AddTag("component", "runner").
		AddField("cells", ev.Cells).
		AddField("duration_hours", ev.DurationHours).
		AddField("wall_seconds", ev.WallTime.Seconds()).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordCellSeries persists the full sampled series of one cell, one point
// per sample. Timestamps are offset from the write time by the in-run clock.
func (s *InfluxSink) RecordCellSeries(runID string, chem model.Chemistry, res model.CellResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	base := time.Now().Add(-time.Duration(lastTime(res.Series)) * time.Second)
	for i, t := range res.Series.Time {
		p := write.NewPointWithMeasurement("cell_sample").
			AddTag("run_id", runID).
			AddTag("cell_id", res.CellID).
			AddTag("chemistry", chem.String()).
			AddTag("row", strconv.Itoa(res.Row)).
			AddTag("col", strconv.Itoa(res.Col)).
			SetTime(base.Add(time.Duration(t * float64(time.Second))))
		for _, ch := range res.Series.Channels {
			p.AddField(ch.Name+"_"+strings.ToLower(ch.Unit), round3(ch.Values[i]))
		}
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func lastTime(ts *model.TimeSeries) float64 {
	if ts == nil || ts.Len() == 0 {
		return 0
	}
	return ts.Time[ts.Len()-1]
}
