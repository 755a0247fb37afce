// Package statnett extracts grid telemetry from the Nordic production
// overview published by the Norwegian TSO (driftsdata.statnett.no). The
// feed covers the NO, SE, FI and DK region codes side by side.
package statnett

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"gridwatch-backend/lib/canonmap"
	"gridwatch-backend/lib/chrono"
	"gridwatch-backend/lib/jsonfeed"
	"gridwatch-backend/lib/numfmt"
	"gridwatch-backend/lib/restyutil"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

const (
	Source = "driftsdata.statnett.no"

	baseURL      = "http://driftsdata.statnett.no"
	overviewPath = "/restapi/ProductionConsumption/GetLatestDetailedOverview"
)

var tracer = otel.Tracer("sources/statnett")

var location = chrono.MustLoad("Europe/Oslo")

// Statnett renders numbers with U+00A0 grouping and publishes "-" where
// a region has no value for a metric
var num = numfmt.Normalizer{ZeroSentinels: []string{"-"}}

type Client struct {
	http *resty.Client
}

type ClientOptions struct {
	// BaseURL overrides the production endpoint, for tests.
	BaseURL string
	// DebugOutput receives full HTTP transcripts when set.
	DebugOutput restyutil.InstrumentOutput
}

func NewClient(opts ClientOptions) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	if opts.BaseURL != "" {
		client.SetBaseURL(opts.BaseURL)
	}
	client.SetTimeout(time.Second * 30)
	restyutil.InstrumentClient(client, tracer, opts.DebugOutput)

	return &Client{http: client}
}

// overview mirrors the feed's parallel-array document: Headers names the
// regions, every *Data array holds one formatted value per region.
type overview struct {
	MeasuredAt       int64  `json:"MeasuredAt"`
	Headers          []cell `json:"Headers"`
	ThermalData      []cell `json:"ThermalData"`
	NotSpecifiedData []cell `json:"NotSpecifiedData"`
	WindData         []cell `json:"WindData"`
	NuclearData      []cell `json:"NuclearData"`
	HydroData        []cell `json:"HydroData"`
	ConsumptionData  []cell `json:"ConsumptionData"`
}

type cell struct {
	Value string `json:"value"`
}

func values(cells []cell) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.Value
	}
	return out
}

func decodeOverview(feed []byte) (overview, error) {
	var doc overview
	err := json.Unmarshal(feed, &doc)
	if err != nil {
		return overview{}, fmt.Errorf("decode overview feed: %w", err)
	}
	return doc, nil
}

func (o overview) measuredAt() time.Time {
	return time.UnixMilli(o.MeasuredAt).In(location)
}

// the feed has no per-fuel breakdown of thermal generation, so thermal
// plus the not-specified remainder feed the unknown bucket
var productionFuels = []canonmap.FuelRule{
	{Fuel: canonmap.Wind, Fields: []string{"WindData"}},
	{Fuel: canonmap.Nuclear, Fields: []string{"NuclearData"}},
	{Fuel: canonmap.Hydro, Fields: []string{"HydroData"}},
	{Fuel: canonmap.Unknown, Fields: []string{"ThermalData", "NotSpecifiedData"}},
}

func (c *Client) fetchOverview(ctx context.Context) ([]byte, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("timestamp", strconv.FormatInt(time.Now().UnixMilli(), 10)).
		Get(overviewPath)
	if err != nil {
		return nil, err
	}
	return res.Body(), nil
}

// FetchProduction requests the last known generation mix of a region, in
// MW.
func (c *Client) FetchProduction(ctx context.Context, region string) (canonmap.ProductionRecord, error) {
	ctx, span := tracer.Start(ctx, "FetchProduction")
	defer span.End()

	feed, err := c.fetchOverview(ctx)
	if err != nil {
		return canonmap.ProductionRecord{}, err
	}
	return ParseProduction(feed, region)
}

// ParseProduction extracts the generation mix for one region code from a
// detailed-overview feed document.
func ParseProduction(feed []byte, region string) (canonmap.ProductionRecord, error) {
	doc, err := decodeOverview(feed)
	if err != nil {
		return canonmap.ProductionRecord{}, err
	}

	column, err := jsonfeed.Column(values(doc.Headers), region)
	if err != nil {
		return canonmap.ProductionRecord{}, err
	}

	fields, err := jsonfeed.Aligned(map[string][]string{
		"ThermalData":      values(doc.ThermalData),
		"NotSpecifiedData": values(doc.NotSpecifiedData),
		"WindData":         values(doc.WindData),
		"NuclearData":      values(doc.NuclearData),
		"HydroData":        values(doc.HydroData),
	}, column)
	if err != nil {
		return canonmap.ProductionRecord{}, err
	}

	production, err := canonmap.Production(fields, productionFuels, num)
	if err != nil {
		return canonmap.ProductionRecord{}, err
	}

	return canonmap.ProductionRecord{
		Region:     region,
		At:         doc.measuredAt(),
		Production: production,
		Source:     Source,
	}, nil
}

// FetchConsumption requests the last known load of a region, in MW.
func (c *Client) FetchConsumption(ctx context.Context, region string) (canonmap.ConsumptionRecord, error) {
	ctx, span := tracer.Start(ctx, "FetchConsumption")
	defer span.End()

	feed, err := c.fetchOverview(ctx)
	if err != nil {
		return canonmap.ConsumptionRecord{}, err
	}
	return ParseConsumption(feed, region)
}

// ParseConsumption extracts the load for one region code from a
// detailed-overview feed document.
func ParseConsumption(feed []byte, region string) (canonmap.ConsumptionRecord, error) {
	doc, err := decodeOverview(feed)
	if err != nil {
		return canonmap.ConsumptionRecord{}, err
	}

	column, err := jsonfeed.Column(values(doc.Headers), region)
	if err != nil {
		return canonmap.ConsumptionRecord{}, err
	}

	fields, err := jsonfeed.Aligned(map[string][]string{
		"ConsumptionData": values(doc.ConsumptionData),
	}, column)
	if err != nil {
		return canonmap.ConsumptionRecord{}, err
	}

	consumption, err := num.Float(fields["ConsumptionData"])
	if err != nil {
		return canonmap.ConsumptionRecord{}, fmt.Errorf("region %q: %w", region, err)
	}

	return canonmap.ConsumptionRecord{
		Region:      region,
		At:          doc.measuredAt(),
		Consumption: consumption,
		Source:      Source,
	}, nil
}
