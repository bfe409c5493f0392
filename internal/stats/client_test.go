package stats

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newStatsServer(t *testing.T, gotUA *string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/blocks/tip/height", func(w http.ResponseWriter, r *http.Request) {
		if gotUA != nil {
			*gotUA = r.Header.Get("User-Agent")
		}
		fmt.Fprint(w, "850000")
	})
	mux.HandleFunc("/mining/hashrate/3d", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"currentHashrate":850000000000000000000,"currentDifficulty":90500000000000}`)
	})
	mux.HandleFunc("/mempool", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"count":45000,"vsize":120000000}`)
	})
	mux.HandleFunc("/fees/recommended", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"fastestFee":25,"halfHourFee":18,"hourFee":12}`)
	})
	mux.HandleFunc("/lightning/statistics/latest", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"latest":{"node_count":12000,"channel_count":48000,"total_capacity":520000000000}}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch_AllEndpoints_PopulatesGroups(t *testing.T) {
	var ua string
	srv := newStatsServer(t, &ua)
	c := NewClient(srv.URL, srv.URL)

	s := c.Fetch(context.Background())

	require.Equal(t, "mars-blog-stats/1.0", ua)

	b := s.Bitcoin
	require.Equal(t, int64(850000), b["block_height"])
	require.Equal(t, "850K", b["block_height_fmt"])
	require.Equal(t, 850.0, b["hashrate_eh"])
	require.Equal(t, "850.0 EH/s", b["hashrate_fmt"])
	require.Equal(t, 9.05e13, b["difficulty"])
	require.Equal(t, "90.5T", b["difficulty_fmt"])
	require.Equal(t, int64(45000), b["mempool_tx_count"])
	require.Equal(t, "45K", b["mempool_tx_count_fmt"])
	require.Equal(t, 120.0, b["mempool_size_mb"])
	require.Equal(t, int64(25), b["fee_fast"])
	require.Equal(t, int64(18), b["fee_medium"])
	require.Equal(t, int64(12), b["fee_slow"])

	l := s.Lightning
	require.Equal(t, int64(12000), l["node_count"])
	require.Equal(t, "12K", l["node_count_fmt"])
	require.Equal(t, int64(48000), l["channel_count"])
	require.Equal(t, "48K", l["channel_count_fmt"])
	require.Equal(t, 5200.0, l["capacity_btc"])
	require.Equal(t, "5K", l["capacity_btc_fmt"])
	require.Equal(t, int64(10833333), l["avg_channel_sat"])
	require.Equal(t, "11M", l["avg_channel_sat_fmt"])
}

func TestFetch_ChannelCountZero_NoAverageFields(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/lightning/statistics/latest", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"latest":{"node_count":5,"channel_count":0,"total_capacity":0}}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, srv.URL)

	s := c.Fetch(context.Background())

	require.Equal(t, int64(5), s.Lightning["node_count"])
	require.NotContains(t, s.Lightning, "avg_channel_sat")
	require.NotContains(t, s.Lightning, "avg_channel_sat_fmt")
}

func TestFetch_EndpointFailure_FieldsOmitted(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/mining/hashrate/3d", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"currentHashrate":850000000000000000000}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, srv.URL)

	s := c.Fetch(context.Background())

	require.Equal(t, 850.0, s.Bitcoin["hashrate_eh"])
	require.NotContains(t, s.Bitcoin, "difficulty")
	require.NotContains(t, s.Bitcoin, "block_height")
	require.NotContains(t, s.Bitcoin, "fee_fast")
	require.Empty(t, s.Lightning)
}

func TestFetch_ServerDown_EmptyGroups(t *testing.T) {
	srv := httptest.NewServer(http.NewServeMux())
	srv.Close()
	c := NewClient(srv.URL, srv.URL)

	s := c.Fetch(context.Background())

	require.NotNil(t, s.Bitcoin)
	require.NotNil(t, s.Lightning)
	require.Empty(t, s.Bitcoin)
	require.Empty(t, s.Lightning)
}

func TestFetch_MalformedJSON_FieldOmitted(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/blocks/tip/height", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "850000")
	})
	mux.HandleFunc("/mempool", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "{oops")
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, srv.URL)

	s := c.Fetch(context.Background())

	require.Equal(t, int64(850000), s.Bitcoin["block_height"])
	require.NotContains(t, s.Bitcoin, "mempool_tx_count")
}

func TestNewClient_NoBases_UsesDefaults(t *testing.T) {
	c := NewClient("", "")

	require.Equal(t, DefaultAPIBase, c.apiBase)
	require.Equal(t, DefaultAPIV1Base, c.apiV1Base)
}

func TestNewClient_TrailingSlashes_Trimmed(t *testing.T) {
	c := NewClient("http://node.local/api/", "http://node.local/api/v1/")

	require.Equal(t, "http://node.local/api", c.apiBase)
	require.Equal(t, "http://node.local/api/v1", c.apiV1Base)
}
