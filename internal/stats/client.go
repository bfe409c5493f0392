package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultAPIBase serves the plain REST endpoints, DefaultAPIV1Base the
	// versioned ones. mempool.space requires no authentication.
	DefaultAPIBase   = "https://mempool.space/api"
	DefaultAPIV1Base = "https://mempool.space/api/v1"

	userAgent = "mars-blog-stats/1.0"
)

// Client fetches network statistics. Every request failure is soft: logged,
// and the fields that request would have contributed stay absent.
type Client struct {
	apiBase   string
	apiV1Base string
	client    *http.Client
}

// NewClient builds a client for the given API bases; empty strings select
// the public mempool.space instance.
func NewClient(apiBase, apiV1Base string) *Client {
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	if apiV1Base == "" {
		apiV1Base = DefaultAPIV1Base
	}
	return &Client{
		apiBase:   strings.TrimRight(apiBase, "/"),
		apiV1Base: strings.TrimRight(apiV1Base, "/"),
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch gathers both stat groups. It never fails; an unreachable API just
// leaves the groups empty.
func (c *Client) Fetch(ctx context.Context) Snapshot {
	return Snapshot{
		Bitcoin:   c.bitcoinStats(ctx),
		Lightning: c.lightningStats(ctx),
	}
}

type hashrateResponse struct {
	CurrentHashrate   *float64 `json:"currentHashrate"`
	CurrentDifficulty *float64 `json:"currentDifficulty"`
}

type mempoolResponse struct {
	Count int64   `json:"count"`
	Vsize float64 `json:"vsize"`
}

type feesResponse struct {
	FastestFee  int64 `json:"fastestFee"`
	HalfHourFee int64 `json:"halfHourFee"`
	HourFee     int64 `json:"hourFee"`
}

type lightningResponse struct {
	Latest struct {
		NodeCount     int64   `json:"node_count"`
		ChannelCount  int64   `json:"channel_count"`
		TotalCapacity float64 `json:"total_capacity"`
	} `json:"latest"`
}

func (c *Client) bitcoinStats(ctx context.Context) Group {
	g := Group{}

	var tip int64
	if err := c.getJSON(ctx, c.apiBase+"/blocks/tip/height", &tip); err == nil {
		g["block_height"] = tip
		g["block_height_fmt"] = FormatNumber(float64(tip), 0)
	}

	var hr hashrateResponse
	if err := c.getJSON(ctx, c.apiV1Base+"/mining/hashrate/3d", &hr); err == nil {
		if hr.CurrentHashrate != nil {
			eh := math.Round(*hr.CurrentHashrate/1e18*10) / 10
			g["hashrate_eh"] = eh
			g["hashrate_fmt"] = fmt.Sprintf("%.1f EH/s", eh)
		}
		if hr.CurrentDifficulty != nil {
			g["difficulty"] = *hr.CurrentDifficulty
			g["difficulty_fmt"] = FormatNumber(*hr.CurrentDifficulty, 1)
		}
	}

	var mp mempoolResponse
	if err := c.getJSON(ctx, c.apiBase+"/mempool", &mp); err == nil {
		g["mempool_tx_count"] = mp.Count
		g["mempool_tx_count_fmt"] = FormatNumber(float64(mp.Count), 0)
		g["mempool_size_mb"] = math.Round(mp.Vsize/1e6*10) / 10
	}

	var fees feesResponse
	if err := c.getJSON(ctx, c.apiV1Base+"/fees/recommended", &fees); err == nil {
		g["fee_fast"] = fees.FastestFee
		g["fee_medium"] = fees.HalfHourFee
		g["fee_slow"] = fees.HourFee
	}

	return g
}

func (c *Client) lightningStats(ctx context.Context) Group {
	g := Group{}

	var ln lightningResponse
	if err := c.getJSON(ctx, c.apiV1Base+"/lightning/statistics/latest", &ln); err != nil {
		return g
	}

	latest := ln.Latest
	g["node_count"] = latest.NodeCount
	g["node_count_fmt"] = FormatNumber(float64(latest.NodeCount), 0)
	g["channel_count"] = latest.ChannelCount
	g["channel_count_fmt"] = FormatNumber(float64(latest.ChannelCount), 0)

	btc := math.Round(latest.TotalCapacity / 1e8)
	g["capacity_btc"] = btc
	g["capacity_btc_fmt"] = FormatNumber(btc, 0)

	// The average only exists when there are channels to average over.
	if latest.ChannelCount > 0 {
		avg := latest.TotalCapacity / float64(latest.ChannelCount)
		g["avg_channel_sat"] = int64(avg)
		g["avg_channel_sat_fmt"] = FormatNumber(avg, 0)
	}

	return g
}

// getJSON issues one GET and decodes the JSON response into v. Failures are
// logged here so callers can simply skip the affected fields.
func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	err := c.fetch(ctx, url, v)
	if err != nil {
		slog.Warn("Fetch failed", "url", url, "error", err)
	}
	return err
}

func (c *Client) fetch(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return json.NewDecoder(resp.Body).Decode(v)
}
