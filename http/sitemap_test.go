package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/casescout"
	cshttp "github.com/fwojciec/casescout/http"
	"github.com/stretchr/testify/assert"
)

func collect(svc *cshttp.SitemapService, baseURL string, keywords casescout.KeywordSet) []string {
	var urls []string
	for c := range svc.Candidates(context.Background(), baseURL, keywords) {
		urls = append(urls, c.URL)
	}
	return urls
}

func TestSitemapService_Candidates_FromRobotsTxt(t *testing.T) {
	t.Parallel()

	robotsTxt := `User-agent: *
Disallow: /private/
Sitemap: {{BASE}}/sitemap-main.xml
`
	sitemapXML := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/case-studies/acme-corp-success</loc></url>
  <url><loc>{{BASE}}/pricing</loc></url>
  <url><loc>{{BASE}}/customers/globex-rollout</loc></url>
</urlset>`

	srv, _ := newTestServer(t, map[string]string{
		"/robots.txt":       robotsTxt,
		"/sitemap-main.xml": sitemapXML,
	})
	t.Cleanup(srv.Close)

	svc := cshttp.NewSitemapService(srv.Client())
	urls := collect(svc, srv.URL, casescout.DefaultKeywords)

	assert.Equal(t, []string{
		srv.URL + "/case-studies/acme-corp-success",
		srv.URL + "/customers/globex-rollout",
	}, urls)
}

func TestSitemapService_Candidates_FallbackWhenRobotsUnreachable(t *testing.T) {
	t.Parallel()

	sitemapXML := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/case-studies/acme-corp-success</loc></url>
</urlset>`

	srv, _ := newTestServer(t, map[string]string{
		"/sitemap.xml": sitemapXML,
	})
	t.Cleanup(srv.Close)

	svc := cshttp.NewSitemapService(srv.Client())
	urls := collect(svc, srv.URL, casescout.DefaultKeywords)

	assert.Equal(t, []string{srv.URL + "/case-studies/acme-corp-success"}, urls)
}

func TestSitemapService_Candidates_TriesEveryDefaultPath(t *testing.T) {
	t.Parallel()

	sitemapXML := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/success-stories/initech-story</loc></url>
</urlset>`

	srv, _ := newTestServer(t, map[string]string{
		"/sitemap-index.xml": sitemapXML,
	})
	t.Cleanup(srv.Close)

	svc := cshttp.NewSitemapService(srv.Client())
	urls := collect(svc, srv.URL, casescout.DefaultKeywords)

	assert.Equal(t, []string{srv.URL + "/success-stories/initech-story"}, urls)
}

func TestSitemapService_Candidates_SitemapIndexDepthFirst(t *testing.T) {
	t.Parallel()

	sitemapIndex := `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>{{BASE}}/sitemap-a.xml</loc></sitemap>
  <sitemap><loc>{{BASE}}/sitemap-b.xml</loc></sitemap>
</sitemapindex>`
	sitemapA := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/case-study/first-story</loc></url>
</urlset>`
	sitemapB := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/case-study/second-story</loc></url>
</urlset>`

	srv, _ := newTestServer(t, map[string]string{
		"/robots.txt":    "Sitemap: {{BASE}}/sitemap.xml\n",
		"/sitemap.xml":   sitemapIndex,
		"/sitemap-a.xml": sitemapA,
		"/sitemap-b.xml": sitemapB,
	})
	t.Cleanup(srv.Close)

	svc := cshttp.NewSitemapService(srv.Client())

	var got []casescout.Candidate
	for c := range svc.Candidates(context.Background(), srv.URL, casescout.DefaultKeywords) {
		got = append(got, c)
	}

	assert.Equal(t, []casescout.Candidate{
		{URL: srv.URL + "/case-study/first-story", Sitemap: srv.URL + "/sitemap-a.xml"},
		{URL: srv.URL + "/case-study/second-story", Sitemap: srv.URL + "/sitemap-b.xml"},
	}, got)
}

func TestSitemapService_Candidates_SelfReferencingIndexVisitedOnce(t *testing.T) {
	t.Parallel()

	sitemapIndex := `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>{{BASE}}/sitemap.xml</loc></sitemap>
  <sitemap><loc>{{BASE}}/sitemap-a.xml</loc></sitemap>
  <sitemap><loc>{{BASE}}/sitemap-a.xml</loc></sitemap>
</sitemapindex>`
	sitemapA := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/case-study/only-story</loc></url>
</urlset>`

	srv, hits := newTestServer(t, map[string]string{
		"/robots.txt":    "Sitemap: {{BASE}}/sitemap.xml\n",
		"/sitemap.xml":   sitemapIndex,
		"/sitemap-a.xml": sitemapA,
	})
	t.Cleanup(srv.Close)

	svc := cshttp.NewSitemapService(srv.Client())
	urls := collect(svc, srv.URL, casescout.DefaultKeywords)

	assert.Equal(t, []string{srv.URL + "/case-study/only-story"}, urls)
	assert.Equal(t, 1, hits.count("/sitemap.xml"))
	assert.Equal(t, 1, hits.count("/sitemap-a.xml"))
}

func TestSitemapService_Candidates_StopsFetchingWhenConsumerStops(t *testing.T) {
	t.Parallel()

	sitemapIndex := `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>{{BASE}}/sitemap-a.xml</loc></sitemap>
  <sitemap><loc>{{BASE}}/sitemap-b.xml</loc></sitemap>
</sitemapindex>`
	sitemapA := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/case-study/first-story</loc></url>
  <url><loc>{{BASE}}/case-study/other-story</loc></url>
</urlset>`

	srv, hits := newTestServer(t, map[string]string{
		"/sitemap.xml":   sitemapIndex,
		"/sitemap-a.xml": sitemapA,
		"/sitemap-b.xml": sitemapA,
	})
	t.Cleanup(srv.Close)

	svc := cshttp.NewSitemapService(srv.Client())

	var first string
	for c := range svc.Candidates(context.Background(), srv.URL, casescout.DefaultKeywords) {
		first = c.URL
		break
	}

	assert.Equal(t, srv.URL+"/case-study/first-story", first)
	assert.Equal(t, 0, hits.count("/sitemap-b.xml"))
}

func TestSitemapService_Candidates_SkipsBrokenSitemaps(t *testing.T) {
	t.Parallel()

	sitemapIndex := `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>{{BASE}}/missing.xml</loc></sitemap>
  <sitemap><loc>{{BASE}}/broken.xml</loc></sitemap>
  <sitemap><loc>{{BASE}}/sitemap-a.xml</loc></sitemap>
</sitemapindex>`
	sitemapA := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/case-study/good-story</loc></url>
</urlset>`

	srv, _ := newTestServer(t, map[string]string{
		"/sitemap.xml":   sitemapIndex,
		"/broken.xml":    "<urlset><url><loc>unterminated",
		"/sitemap-a.xml": sitemapA,
	})
	t.Cleanup(srv.Close)

	svc := cshttp.NewSitemapService(srv.Client())
	urls := collect(svc, srv.URL, casescout.DefaultKeywords)

	assert.Equal(t, []string{srv.URL + "/case-study/good-story"}, urls)
}

func TestSitemapService_Candidates_RejectsNonXMLWithoutXMLSuffix(t *testing.T) {
	t.Parallel()

	sitemapIndex := `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>{{BASE}}/sitemap-html</loc></sitemap>
  <sitemap><loc>{{BASE}}/sitemap-named.xml</loc></sitemap>
</sitemapindex>`
	urlset := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/case-study/%s</loc></url>
</urlset>`

	srv, _ := newTestServer(t, map[string]string{
		"/sitemap.xml":       sitemapIndex,
		"/sitemap-html":      strings.ReplaceAll(urlset, "%s", "from-html"),
		"/sitemap-named.xml": strings.ReplaceAll(urlset, "%s", "from-named"),
	}, withContentType("/sitemap-html", "text/html"), withContentType("/sitemap-named.xml", "text/plain"))
	t.Cleanup(srv.Close)

	svc := cshttp.NewSitemapService(srv.Client())
	urls := collect(svc, srv.URL, casescout.DefaultKeywords)

	assert.Equal(t, []string{srv.URL + "/case-study/from-named"}, urls)
}

func TestSitemapService_Candidates_RespectRobots(t *testing.T) {
	t.Parallel()

	robotsTxt := `User-agent: *
Disallow: /case-study/private-
Sitemap: {{BASE}}/sitemap.xml
`
	sitemapXML := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/case-study/private-story</loc></url>
  <url><loc>{{BASE}}/case-study/public-story</loc></url>
</urlset>`

	srv, _ := newTestServer(t, map[string]string{
		"/robots.txt":  robotsTxt,
		"/sitemap.xml": sitemapXML,
	})
	t.Cleanup(srv.Close)

	t.Run("ignores disallow by default", func(t *testing.T) {
		t.Parallel()

		svc := cshttp.NewSitemapService(srv.Client())
		assert.Len(t, collect(svc, srv.URL, casescout.DefaultKeywords), 2)
	})

	t.Run("drops disallowed candidates when enabled", func(t *testing.T) {
		t.Parallel()

		svc := cshttp.NewSitemapService(srv.Client(), cshttp.WithRespectRobots(true))
		assert.Equal(t, []string{srv.URL + "/case-study/public-story"}, collect(svc, srv.URL, casescout.DefaultKeywords))
	})
}

func TestSitemapService_Candidates_NoSitemapFound(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, map[string]string{})
	t.Cleanup(srv.Close)

	svc := cshttp.NewSitemapService(srv.Client())

	assert.Empty(t, collect(svc, srv.URL, casescout.DefaultKeywords))
}

func TestSitemapService_Candidates_UnreachableSite(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	svc := cshttp.NewSitemapService(nil)

	assert.Empty(t, collect(svc, baseURL, casescout.DefaultKeywords))
}

func TestSitemapService_Candidates_CanceledContext(t *testing.T) {
	t.Parallel()

	srv, hits := newTestServer(t, map[string]string{
		"/sitemap.xml": `<urlset><url><loc>{{BASE}}/case-study/any-story</loc></url></urlset>`,
	})
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := cshttp.NewSitemapService(srv.Client())
	var urls []string
	for c := range svc.Candidates(ctx, srv.URL, casescout.DefaultKeywords) {
		urls = append(urls, c.URL)
	}

	assert.Empty(t, urls)
	assert.Equal(t, 0, hits.count("/sitemap.xml"))
}

func TestSitemapService_Candidates_StalledRequestsTimeOut(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt", "/sitemap.xml":
			select {
			case <-r.Context().Done():
			case <-release:
			}
		case "/sitemap_index.xml":
			w.Header().Set("Content-Type", "application/xml")
			_, _ = w.Write([]byte(`<urlset><url><loc>https://acme.example/case-study/globex-rollout</loc></url></urlset>`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	svc := cshttp.NewSitemapService(srv.Client(), cshttp.WithSitemapTimeout(50*time.Millisecond))

	done := make(chan []string, 1)
	go func() { done <- collect(svc, srv.URL, casescout.DefaultKeywords) }()

	select {
	case urls := <-done:
		assert.Equal(t, []string{"https://acme.example/case-study/globex-rollout"}, urls)
	case <-time.After(5 * time.Second):
		t.Fatal("discovery blocked on a stalled request")
	}
}

type hitCounter struct {
	mu   sync.Mutex
	hits map[string]int
}

func (h *hitCounter) inc(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits[path]++
}

func (h *hitCounter) count(path string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hits[path]
}

type serverOption func(map[string]string)

func withContentType(path, contentType string) serverOption {
	return func(types map[string]string) {
		types[path] = contentType
	}
}

// newTestServer creates a test HTTP server with the given path->content mapping.
// Content strings may contain {{BASE}} which is replaced with the server URL.
func newTestServer(t *testing.T, content map[string]string, opts ...serverOption) (*httptest.Server, *hitCounter) {
	t.Helper()

	types := map[string]string{}
	for _, opt := range opts {
		opt(types)
	}
	hits := &hitCounter{hits: map[string]int{}}

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.inc(r.URL.Path)
		body, ok := content[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		body = replaceBaseURL(body, srv.URL)

		switch {
		case types[r.URL.Path] != "":
			w.Header().Set("Content-Type", types[r.URL.Path])
		case r.URL.Path == "/robots.txt":
			w.Header().Set("Content-Type", "text/plain")
		default:
			w.Header().Set("Content-Type", "application/xml")
		}
		_, _ = w.Write([]byte(body))
	}))

	return srv, hits
}

func replaceBaseURL(content, baseURL string) string {
	return regexp.MustCompile(`\{\{BASE\}\}`).ReplaceAllString(content, baseURL)
}
