package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	apierrors "github.com/credprobe/credprobe/internal/errors"
	"github.com/tidwall/gjson"
)

const perPage = 100

// PageError records where a paginated walk stopped. Page 1 failing means
// the collection yielded nothing; a later page failing means the items
// gathered so far are still valid.
type PageError struct {
	Page int
	Err  error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %d: %v", e.Page, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}

// FetchPages walks a list endpoint to completion, one page at a time.
// itemsKey selects the array inside an envelope response ("runners",
// "secrets", ...); an empty key means the endpoint returns a bare array.
// The returned items are whatever pages completed before the first
// failure; pageErr is nil only when every page succeeded. Page sizes are
// allowed to vary between pages.
func (c *Client) FetchPages(ctx context.Context, path, itemsKey string) ([]gjson.Result, *PageError) {
	var items []gjson.Result

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}

	for page := 1; ; page++ {
		url := fmt.Sprintf("%s%sper_page=%d&page=%d", path, sep, perPage, page)
		outcome, err := c.Execute(ctx, http.MethodGet, url, nil)
		if err != nil {
			return items, &PageError{Page: page, Err: err}
		}
		if !outcome.OK() {
			err := apierrors.NewTransportError("fetch_page", path,
				fmt.Errorf("unexpected status %d", outcome.StatusCode)).
				WithStatusCode(outcome.StatusCode).WithPage(page)
			return items, &PageError{Page: page, Err: err}
		}

		result := outcome.JSON()
		if itemsKey != "" {
			result = result.Get(itemsKey)
		}
		if !result.IsArray() {
			// A well-formed endpoint never switches shape mid-walk;
			// treat it as the end of the collection.
			return items, nil
		}

		pageItems := result.Array()
		if len(pageItems) == 0 {
			return items, nil
		}
		items = append(items, pageItems...)

		// Providers may serve short pages anywhere; only a page shorter
		// than requested on a bare-array endpoint is a reliable end
		// signal, and envelope endpoints repeat their total_count.
		if itemsKey != "" {
			if total := outcome.JSON().Get("total_count"); total.Exists() && int64(len(items)) >= total.Int() {
				return items, nil
			}
		}
		if len(pageItems) < perPage {
			return items, nil
		}
	}
}
