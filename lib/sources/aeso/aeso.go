// Package aeso extracts grid telemetry for the CA-AB balancing area from
// AESO's energy trading system reports (ets.aeso.ca).
package aeso

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gridwatch-backend/lib/canonmap"
	"gridwatch-backend/lib/chrono"
	"gridwatch-backend/lib/htmltable"
	"gridwatch-backend/lib/numfmt"
	"gridwatch-backend/lib/restyutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

const (
	Region = "CA-AB"
	Source = "ets.aeso.ca"

	baseURL       = "http://ets.aeso.ca"
	csdReportPath = "/ets_web/ip/Market/Reports/CSDReportServlet"
	poolPricePath = "/ets_web/ip/Market/Reports/SMPriceReportServlet"

	// the CSD report renders its update stamp as
	// "Last Update : Apr 21, 2017 13:22" in Alberta time
	updateAnchor = "Last Update"
	updateLayout = "Jan 2, 2006 15:04"
)

var tracer = otel.Tracer("sources/aeso")

var location = chrono.MustLoad("Canada/Mountain")

// interchange and generation cells publish "-" for no flow / no output
var num = numfmt.Normalizer{ZeroSentinels: []string{"-"}}

// the pool price table publishes "-" for hours not yet settled, which
// means no record rather than a zero price
var priceNum = numfmt.Normalizer{}

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

var productionFuels = []canonmap.FuelRule{
	{Fuel: canonmap.Coal, Fields: []string{"COAL"}},
	{Fuel: canonmap.Gas, Fields: []string{"GAS"}},
	{Fuel: canonmap.Hydro, Fields: []string{"HYDRO"}},
	{Fuel: canonmap.Wind, Fields: []string{"WIND"}},
	{Fuel: canonmap.Unknown, Fields: []string{"OTHER"}},
}

// FetchProduction requests the last known generation mix and maximum
// capability, in MW.
func (c *Client) FetchProduction(ctx context.Context) (canonmap.ProductionRecord, error) {
	ctx, span := tracer.Start(ctx, "FetchProduction")
	defer span.End()

	res, err := c.http.R().SetContext(ctx).Get(csdReportPath)
	if err != nil {
		return canonmap.ProductionRecord{}, err
	}
	return ParseProduction(res.Body())
}

// ParseProduction extracts the generation mix from a CSD report page.
// The GENERATION anchor appears in a summary table before the data grid,
// hence ordinal 1; the grid's first row is a banner above the header
// row.
func ParseProduction(page []byte) (canonmap.ProductionRecord, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return canonmap.ProductionRecord{}, err
	}

	stamp, err := htmltable.LabelledValue(doc, updateAnchor, ":")
	if err != nil {
		return canonmap.ProductionRecord{}, err
	}
	at, err := chrono.ParseLocal(stamp, updateLayout, location)
	if err != nil {
		return canonmap.ProductionRecord{}, err
	}

	grid, err := htmltable.Find(doc, htmltable.Options{
		Anchor:      "GENERATION",
		Ordinal:     1,
		SkipRows:    1,
		HeaderRow:   true,
		IndexColumn: 0,
	})
	if err != nil {
		return canonmap.ProductionRecord{}, err
	}

	// TNG is total net generation, MC is maximum capability
	tng, err := grid.Column("TNG")
	if err != nil {
		return canonmap.ProductionRecord{}, err
	}
	production, err := canonmap.Production(tng, productionFuels, num)
	if err != nil {
		return canonmap.ProductionRecord{}, err
	}

	mc, err := grid.Column("MC")
	if err != nil {
		return canonmap.ProductionRecord{}, err
	}
	capacity, err := canonmap.Production(mc, productionFuels, num)
	if err != nil {
		return canonmap.ProductionRecord{}, err
	}

	return canonmap.ProductionRecord{
		Region:     Region,
		At:         at,
		Production: production,
		Capacity:   &capacity,
		Source:     Source,
	}, nil
}

// FetchPrice requests the day's hourly pool prices, in CAD.
func (c *Client) FetchPrice(ctx context.Context) ([]canonmap.PriceRecord, error) {
	ctx, span := tracer.Start(ctx, "FetchPrice")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("contentType", "html").
		Get(poolPricePath)
	if err != nil {
		return nil, err
	}
	return ParsePrices(res.Body())
}

// ParsePrices extracts the hourly pool price table from an SMP report
// page. Row labels carry a date plus a 1-based hour index; rows without
// a numeric price (hours not yet settled) are dropped.
func ParsePrices(page []byte) ([]canonmap.PriceRecord, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, err
	}

	grid, err := htmltable.Find(doc, htmltable.Options{
		Anchor:      "Price",
		Ordinal:     1,
		HeaderRow:   true,
		IndexColumn: 0,
	})
	if err != nil {
		return nil, err
	}

	rows, err := grid.Column("Price ($)")
	if err != nil {
		return nil, err
	}

	return canonmap.Prices(rows, Region, "CAD", Source, priceRowInstant, priceNum)
}

// priceRowInstant resolves labels like "04/21/2017 14" (date plus
// 1-based hour-ending index) into the start of that hour in Alberta
// time.
func priceRowInstant(label string) (time.Time, error) {
	parts := strings.Fields(label)
	if len(parts) < 2 {
		return time.Time{}, fmt.Errorf("row label %q carries no hour index", label)
	}
	date, err := chrono.ParseLocal(parts[0], "01/02/2006", location)
	if err != nil {
		return time.Time{}, err
	}
	hour, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return time.Time{}, fmt.Errorf("row label %q: %w", label, err)
	}
	return chrono.HourBucket(date, hour, location)
}

// InterchangePairs lists the region pairs the CSD interchange table
// covers, keyed by sorted pair key.
var InterchangePairs = map[string]string{
	canonmap.PairKey("CA-AB", "CA-BC"): "British Columbia",
	canonmap.PairKey("CA-AB", "CA-SK"): "Saskatchewan",
	canonmap.PairKey("CA-AB", "US"):    "Montana",
}

// FetchExchange requests the last known power exchange between two
// regions, in MW. The CSD report publishes no timestamp for the
// interchange table, so records are stamped with the current Alberta
// time.
func (c *Client) FetchExchange(ctx context.Context, regionA, regionB string) (canonmap.FlowRecord, error) {
	ctx, span := tracer.Start(ctx, "FetchExchange")
	defer span.End()

	res, err := c.http.R().SetContext(ctx).Get(csdReportPath)
	if err != nil {
		return canonmap.FlowRecord{}, err
	}
	return ParseExchange(res.Body(), regionA, regionB, chrono.NowIn(location))
}

// ParseExchange reads the INTERCHANGE table's actual-flow column. The
// sign is kept exactly as AESO publishes it for the sorted pair.
func ParseExchange(page []byte, regionA, regionB string, at time.Time) (canonmap.FlowRecord, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return canonmap.FlowRecord{}, err
	}

	grid, err := htmltable.Find(doc, htmltable.Options{
		Anchor:      "INTERCHANGE",
		Ordinal:     1,
		IndexColumn: 0,
	})
	if err != nil {
		return canonmap.FlowRecord{}, err
	}

	fields := map[string]string{}
	for _, row := range grid.Rows() {
		cell, err := grid.CellAt(row, 1)
		if err != nil {
			continue
		}
		fields[row] = cell
	}

	return canonmap.Flow(fields, regionA, regionB, InterchangePairs, at, Source, num)
}
