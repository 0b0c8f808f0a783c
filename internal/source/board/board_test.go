package board

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscout-engine/internal/config"
	"jobscout-engine/internal/fetch"
)

const listingHTML = `
<html><body>
  <ul>
    <li class="posting">
      <a class="go" href="/jobs/49021?ref=list">view</a>
      <span class="title">백엔드 신입 개발자</span>
      <span class="corp">(주)가나다</span>
      <em class="due">~ 02/28(토)</em>
    </li>
    <li class="posting">
      <a class="go" href="/jobs/49021?ref=banner">view again</a>
      <span class="title">백엔드 신입 개발자</span>
      <span class="corp">(주)가나다</span>
      <em class="due">~ 02/28(토)</em>
    </li>
    <li class="posting">
      <a class="go" href="https://other.example.com/p/777">view</a>
      <span class="title">프론트엔드 인턴</span>
      <em class="due">상시채용</em>
    </li>
    <li class="posting">
      <span class="title">링크 없는 항목</span>
    </li>
  </ul>
</body></html>`

func testBoard(url string) config.Board {
	return config.Board{
		Name:    "siteA",
		URL:     url,
		Keyword: "백엔드",
		Enabled: true,
		Selectors: config.Selectors{
			Item:     "li.posting",
			Title:    ".title",
			Company:  ".corp",
			Deadline: ".due",
			Link:     "a.go",
		},
	}
}

func TestFetchParsesListing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(listingHTML))
	}))
	defer srv.Close()

	f := New(testBoard(srv.URL), fetch.NewClient(100, 10, 5*time.Second))
	res, err := f.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "siteA", res.Source)

	// duplicate link collapses, link-less item is skipped
	require.Len(t, res.Records, 2)

	first := res.Records[0]
	assert.Equal(t, "siteA_49021", first.ID)
	assert.Equal(t, "siteA", first.Source)
	assert.Equal(t, "백엔드 신입 개발자", first.Title)
	assert.Equal(t, "(주)가나다", first.Company)
	assert.Equal(t, "~ 02/28(토)", first.Deadline)
	assert.Equal(t, "백엔드", first.HiddenKeyword)
	assert.Equal(t, srv.URL+"/jobs/49021?ref=list", first.Link)

	second := res.Records[1]
	assert.Equal(t, "siteA_777", second.ID)
	assert.Empty(t, second.Company, "missing selector match defaults to empty")
	assert.Equal(t, "상시채용", second.Deadline)
}

func TestFetchBoardDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	f := New(testBoard(srv.URL), fetch.NewClient(100, 10, 5*time.Second))
	res, err := f.Fetch(context.Background())
	assert.Error(t, err)
	assert.Empty(t, res.Records)
}

func TestNativeIDFallbackHash(t *testing.T) {
	a := nativeID("https://example.com/postings/backend-developer")
	b := nativeID("https://example.com/postings/frontend-developer")
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, nativeID("https://example.com/postings/backend-developer"))
}
