//go:build test_unit

package nxopen

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	maplegw "github.com/maplegw/go-maplegw"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
)

type staticKey string

func (k staticKey) ApiKey() string { return string(k) }

type ClientSuite struct {
	suite.Suite

	handler http.HandlerFunc
	hits    atomic.Int32
	server  *httptest.Server
	client  *Client
	now     time.Time
}

func (suite *ClientSuite) SetupTest() {
	suite.hits.Store(0)
	suite.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}

	suite.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		suite.hits.Add(1)
		suite.handler(w, r)
	}))

	suite.now = time.Date(2024, 3, 10, 16, 0, 0, 0, time.UTC)
	suite.client = suite.newClient(0)
}

func (suite *ClientSuite) TearDownTest() {
	suite.server.Close()
}

func (suite *ClientSuite) newClient(retries int) *Client {
	c, err := NewClient(&Options{
		BaseUrl:       suite.server.URL + "/maplestory/v1/",
		Keys:          staticKey("test_key"),
		Client:        suite.server.Client(),
		Retries:       retries,
		RetryInterval: time.Millisecond,
		Now:           func() time.Time { return suite.now },
	})
	suite.Require().NoError(err)
	return c
}

func (suite *ClientSuite) TestLookupOcid() {
	suite.handler = func(w http.ResponseWriter, r *http.Request) {
		suite.Equal("/maplestory/v1/id", r.URL.Path)
		suite.Equal("Alice", r.URL.Query().Get("character_name"))
		suite.Equal("test_key", r.Header.Get("x-nxopen-api-key"))
		suite.Empty(r.URL.Query().Get("date"))

		_, _ = w.Write([]byte(`{"ocid":"e0a4f439e53c369866b55297d2f5f4eb"}`))
	}

	ocid, err := suite.client.LookupOcid(context.Background(), "Alice")
	suite.Require().NoError(err)
	suite.Equal(maplegw.Ocid("e0a4f439e53c369866b55297d2f5f4eb"), ocid)
	suite.EqualValues(1, suite.hits.Load())
}

func (suite *ClientSuite) TestLookupOcidEmpty() {
	suite.handler = func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ocid":""}`))
	}

	_, err := suite.client.LookupOcid(context.Background(), "Alice")
	suite.ErrorIs(err, ErrMalformedPayload)
}

func (suite *ClientSuite) TestLookupOcidMissingName() {
	_, err := suite.client.LookupOcid(context.Background(), "")
	suite.Error(err)
	suite.EqualValues(0, suite.hits.Load())
}

func (suite *ClientSuite) TestFetchDatedCategory() {
	suite.handler = func(w http.ResponseWriter, r *http.Request) {
		suite.Equal("/maplestory/v1/character/stat", r.URL.Path)
		suite.Equal("ocid-1", r.URL.Query().Get("ocid"))
		suite.Equal("2024-03-10", r.URL.Query().Get("date"))
		suite.Equal("test_key", r.Header.Get("x-nxopen-api-key"))

		_, _ = w.Write([]byte(`{"final_stat":[]}`))
	}

	body, err := suite.client.Fetch(context.Background(), maplegw.CategoryStat, "ocid-1", nil)
	suite.Require().NoError(err)
	suite.JSONEq(`{"final_stat":[]}`, string(body))
}

func (suite *ClientSuite) TestFetchExtraParams() {
	suite.handler = func(w http.ResponseWriter, r *http.Request) {
		suite.Equal("/maplestory/v1/character/skill", r.URL.Path)
		suite.Equal("5", r.URL.Query().Get("character_skill_grade"))
		suite.Equal("ocid-1", r.URL.Query().Get("ocid"))

		_, _ = w.Write([]byte(`{"character_skill":[]}`))
	}

	_, err := suite.client.Fetch(context.Background(), maplegw.CategorySkill, "ocid-1", SkillGradeParams(5))
	suite.Require().NoError(err)
}

func (suite *ClientSuite) TestFetchUnknownCategory() {
	_, err := suite.client.Fetch(context.Background(), maplegw.CategoryOcid, "ocid-1", nil)
	suite.ErrorIs(err, ErrUnknownCategory)

	_, err = suite.client.Fetch(context.Background(), maplegw.Category("cash"), "ocid-1", nil)
	suite.ErrorIs(err, ErrUnknownCategory)
	suite.EqualValues(0, suite.hits.Load())
}

func (suite *ClientSuite) TestFetchRejected() {
	suite.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"name":"OPENAPI00004","message":"Please input valid parameter"}}`))
	}

	client := suite.newClient(3)
	_, err := client.Fetch(context.Background(), maplegw.CategoryBasic, "ocid-1", nil)
	suite.Require().Error(err)
	suite.True(IsRejected(err))
	suite.NotContains(err.Error(), "OPENAPI00004")

	var statusErr *StatusError
	suite.Require().True(errors.As(err, &statusErr))
	suite.Equal(http.StatusBadRequest, statusErr.StatusCode)
	suite.Equal(maplegw.CategoryBasic, statusErr.Category)

	// rejected requests are not retried
	suite.EqualValues(1, suite.hits.Load())
}

func (suite *ClientSuite) TestFetchMalformed() {
	suite.handler = func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"final_stat":[`))
	}

	_, err := suite.client.Fetch(context.Background(), maplegw.CategoryStat, "ocid-1", nil)
	suite.ErrorIs(err, ErrMalformedPayload)
}

func (suite *ClientSuite) TestFetchUnreachable() {
	suite.server.Close()

	_, err := suite.client.Fetch(context.Background(), maplegw.CategoryStat, "ocid-1", nil)
	suite.ErrorIs(err, ErrUpstreamUnreachable)
	suite.False(IsRejected(err))
}

func (suite *ClientSuite) TestFetchRetriesTransportFailure() {
	suite.handler = func(w http.ResponseWriter, r *http.Request) {
		if suite.hits.Load() == 1 {
			conn, _, err := w.(http.Hijacker).Hijack()
			suite.Require().NoError(err)
			_ = conn.Close()
			return
		}

		_, _ = w.Write([]byte(`{"dojang_best_floor":50}`))
	}

	client := suite.newClient(2)
	body, err := client.Fetch(context.Background(), maplegw.CategoryDojang, "ocid-1", nil)
	suite.Require().NoError(err)
	suite.JSONEq(`{"dojang_best_floor":50}`, string(body))
	suite.EqualValues(2, suite.hits.Load())
}

func (suite *ClientSuite) TestFetchCancelled() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := suite.newClient(5)
	_, err := client.Fetch(ctx, maplegw.CategoryStat, "ocid-1", nil)
	suite.ErrorIs(err, ErrUpstreamUnreachable)
	suite.ErrorIs(err, context.Canceled)
}

func TestClientSuite(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"))
	suite.Run(t, new(ClientSuite))
}

func TestQueryDate(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{name: "after midnight in seoul", now: time.Date(2024, 3, 10, 16, 0, 0, 0, time.UTC), want: "2024-03-10"},
		{name: "before midnight in seoul", now: time.Date(2024, 3, 10, 14, 0, 0, 0, time.UTC), want: "2024-03-09"},
		{name: "year boundary", now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), want: "2023-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QueryDate(tt.now); got != tt.want {
				t.Errorf("QueryDate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient(&Options{}); err == nil {
		t.Fatal("expected error without key provider")
	}
	if _, err := NewClient(&Options{Keys: staticKey("k"), BaseUrl: "ftp://example.com"}); err == nil {
		t.Fatal("expected error with invalid scheme")
	}

	c, err := NewClient(&Options{Keys: staticKey("k")})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if c.baseUrl.String() != DefaultBaseUrl {
		t.Errorf("baseUrl = %q, want %q", c.baseUrl.String(), DefaultBaseUrl)
	}
}
