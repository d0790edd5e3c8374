package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pageOf renders a bare JSON array of n sequential items starting at base.
func pageOf(t *testing.T, base, n int) []byte {
	t.Helper()
	items := make([]map[string]any, n)
	for i := range items {
		items[i] = map[string]any{"id": base + i, "name": fmt.Sprintf("item-%d", base+i)}
	}
	payload, err := json.Marshal(items)
	require.NoError(t, err)
	return payload
}

func TestFetchPages_SinglePage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(pageOf(t, 0, 3))
	}))

	items, pageErr := client.FetchPages(context.Background(), "/orgs/acme/repos", "")
	require.Nil(t, pageErr)
	require.Len(t, items, 3)
	assert.Equal(t, "item-2", items[2].Get("name").String())
}

func TestFetchPages_ConcatenatesFullPages(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "1":
			w.Write(pageOf(t, 0, perPage))
		case "2":
			w.Write(pageOf(t, perPage, 5))
		default:
			w.Write([]byte(`[]`))
		}
	}))

	items, pageErr := client.FetchPages(context.Background(), "/orgs/acme/repos", "")
	require.Nil(t, pageErr)
	require.Len(t, items, perPage+5)
	assert.Equal(t, int64(0), items[0].Get("id").Int())
	assert.Equal(t, int64(perPage+4), items[perPage+4].Get("id").Int())
}

func TestFetchPages_PreservesExistingQuery(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}))

	_, pageErr := client.FetchPages(context.Background(), "/orgs/acme/members?role=admin", "")
	require.Nil(t, pageErr)
	assert.Contains(t, gotQuery, "role=admin")
	assert.Contains(t, gotQuery, "per_page=100")
}

func TestFetchPages_EnvelopeWithTotalCount(t *testing.T) {
	var calls int
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprintf(w, `{"total_count":2,"runners":[{"id":1,"status":"online"},{"id":2,"status":"offline"}]}`)
	}))

	items, pageErr := client.FetchPages(context.Background(), "/orgs/acme/actions/runners", "runners")
	require.Nil(t, pageErr)
	require.Len(t, items, 2)
	assert.Equal(t, 1, calls, "total_count satisfied on the first page, no second fetch")
}

func TestFetchPages_FirstPageFailure(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	items, pageErr := client.FetchPages(context.Background(), "/orgs/acme/repos", "")
	require.NotNil(t, pageErr)
	assert.Equal(t, 1, pageErr.Page)
	assert.Empty(t, items)
}

func TestFetchPages_MidWalkFailureKeepsEarlierPages(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "1":
			w.Write(pageOf(t, 0, perPage))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	items, pageErr := client.FetchPages(context.Background(), "/orgs/acme/repos", "")
	require.NotNil(t, pageErr)
	assert.Equal(t, 2, pageErr.Page)
	assert.Len(t, items, perPage, "page one items survive the later failure")
}

func TestFetchPages_NonArrayBodyEndsWalk(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"Moved Permanently"}`))
	}))

	items, pageErr := client.FetchPages(context.Background(), "/orgs/acme/repos", "")
	require.Nil(t, pageErr)
	assert.Empty(t, items)
}
