package openfda

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/poiesic/taxonomist/core"
	"github.com/poiesic/taxonomist/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	mu       sync.Mutex
	searches []string
	paths    []string
	handler  func(w http.ResponseWriter, r *http.Request)
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.searches = append(f.searches, r.URL.Query().Get("search"))
	f.paths = append(f.paths, r.URL.Path)
	f.mu.Unlock()
	f.handler(w, r)
}

func newTestClient(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*Client, *fakeService) {
	t.Helper()
	fake := &fakeService{handler: handler}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)
	return NewClient(WithBaseURL(server.URL), WithRateLimit(1000)), fake
}

func respond(status int, body string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

const classificationBody = `{
  "meta": {"results": {"skip": 0, "limit": 100, "total": 2}},
  "results": [
    {
      "device_name": "Catheter, Intravascular, Diagnostic",
      "definition": "A thin tube",
      "product_code": "DQA",
      "device_class": "2",
      "medical_specialty": "CV",
      "regulation_number": "870.1200",
      "review_panel": "CV",
      "openfda": {"registration_number": ["1"]}
    },
    {"device_name": "Catheter, Angiography", "product_code": "DQO", "device_class": "2"}
  ]
}`

func TestTaxonomySearch(t *testing.T) {
	client, fake := newTestClient(t, respond(http.StatusOK, classificationBody))

	page, err := client.Taxonomy().Search(context.Background(), core.FieldName, []string{"catheter", "vascular"},
		core.Filters{{Field: core.FieldDeviceClass, Value: "2"}})
	require.NoError(t, err)

	require.Len(t, page.Entries, 2)
	assert.Equal(t, 2, page.Total)
	first := page.Entries[0]
	assert.Equal(t, "DQA", first.Code)
	assert.Equal(t, "Catheter, Intravascular, Diagnostic", first.Name)
	assert.Equal(t, "870.1200", first.RegulationNumber)
	assert.Equal(t, map[string]string{"review_panel": "CV"}, first.Attributes)

	require.Len(t, fake.searches, 1)
	assert.Equal(t, `device_name:("catheter" AND "vascular") AND device_class:"2"`, fake.searches[0])
	assert.Equal(t, classificationPath, fake.paths[0])
}

func TestTaxonomyLookupByCode(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		client, fake := newTestClient(t, respond(http.StatusOK, classificationBody))
		entry, err := client.Taxonomy().LookupByCode(context.Background(), "dqa")
		require.NoError(t, err)
		require.NotNil(t, entry)
		assert.Equal(t, "DQA", entry.Code)
		assert.Equal(t, `product_code:"DQA"`, fake.searches[0])
	})

	t.Run("not found", func(t *testing.T) {
		client, _ := newTestClient(t, respond(http.StatusNotFound, `{"error":{"code":"NOT_FOUND","message":"No matches found!"}}`))
		entry, err := client.Taxonomy().LookupByCode(context.Background(), "ZZZ")
		require.NoError(t, err)
		assert.Nil(t, entry)
	})
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		target error
	}{
		{"rate limited", http.StatusTooManyRequests, `{"error":{"code":"TOO_MANY_REQUESTS","message":"slow down"}}`, index.ErrRateLimited},
		{"bad query", http.StatusBadRequest, `{"error":{"code":"BAD_REQUEST","message":"Syntax error"}}`, index.ErrBadQuery},
		{"server error", http.StatusInternalServerError, `oops`, index.ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, respond(tt.status, tt.body))
			_, err := client.Taxonomy().Search(context.Background(), core.FieldName, []string{"x"}, nil)
			assert.ErrorIs(t, err, tt.target)

			var searchErr *index.SearchError
			require.ErrorAs(t, err, &searchErr)
		})
	}

	t.Run("bad query carries the service message", func(t *testing.T) {
		client, _ := newTestClient(t, respond(http.StatusBadRequest, `{"error":{"code":"BAD_REQUEST","message":"Syntax error"}}`))
		_, err := client.Corpus().Search(context.Background(), core.FieldName, []string{"x"})
		assert.ErrorContains(t, err, "Syntax error")
	})

	t.Run("no matches is an empty page", func(t *testing.T) {
		client, _ := newTestClient(t, respond(http.StatusNotFound, `{"error":{"code":"NOT_FOUND","message":"No matches found!"}}`))
		page, err := client.Taxonomy().Search(context.Background(), core.FieldName, []string{"x"}, nil)
		require.NoError(t, err)
		assert.Empty(t, page.Entries)
	})

	t.Run("unreachable host", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		client := NewClient(WithBaseURL(url))
		_, err := client.Taxonomy().Search(context.Background(), core.FieldName, []string{"x"}, nil)
		assert.ErrorIs(t, err, index.ErrNetwork)
	})

	t.Run("malformed body", func(t *testing.T) {
		client, _ := newTestClient(t, respond(http.StatusOK, `{"results": [`))
		_, err := client.Taxonomy().Search(context.Background(), core.FieldName, []string{"x"}, nil)
		assert.ErrorIs(t, err, index.ErrNetwork)
	})
}

func TestCorpusSearch(t *testing.T) {
	body := `{
	  "meta": {"results": {"total": 40}},
	  "results": [
	    {"k_number": "K100001", "device_name": "Acme GlucoCheck Meter", "product_code": "NBW", "applicant": "Acme"}
	  ]
	}`
	client, fake := newTestClient(t, respond(http.StatusOK, body))

	page, err := client.Corpus().Search(context.Background(), core.FieldName, []string{"glucocheck"})
	require.NoError(t, err)
	require.Len(t, page.Records, 1)
	assert.Equal(t, 40, page.Total)
	assert.Equal(t, &core.CorpusRecord{Reference: "K100001", Name: "Acme GlucoCheck Meter", Code: "NBW", Applicant: "Acme"}, page.Records[0])
	assert.Equal(t, clearancePath, fake.paths[0])
	assert.Equal(t, `device_name:("glucocheck")`, fake.searches[0])
}

func TestSearchRejectsEmptyTerms(t *testing.T) {
	client, fake := newTestClient(t, respond(http.StatusOK, classificationBody))
	_, err := client.Taxonomy().Search(context.Background(), core.FieldName, nil, nil)
	assert.ErrorIs(t, err, index.ErrBadQuery)
	assert.Empty(t, fake.searches)
}

func TestAPIKeyAndLimit(t *testing.T) {
	var gotKey, gotLimit string
	fake := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("api_key")
		gotLimit = r.URL.Query().Get("limit")
		respond(http.StatusOK, classificationBody)(w, r)
	}))
	defer fake.Close()

	client := NewClient(WithBaseURL(fake.URL), WithAPIKey("secret"), WithLimit(25))
	_, err := client.Taxonomy().Search(context.Background(), core.FieldName, []string{"catheter"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "25", gotLimit)
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"x-ray"`, quote("x-ray"))
	assert.Equal(t, `"a b"`, quote(`a:"b"`))
	assert.Equal(t, "", quote(`"()"`))
}
