package app

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestSitemap(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := doJSON(t, router, http.MethodGet, "/sitemap.xml", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
	body := resp.Body.String()
	if !strings.Contains(body, "<urlset") {
		t.Fatalf("expected urlset element, got %s", body)
	}
	for _, loc := range []string{
		"https://example.test/",
		"https://example.test/services",
		"https://example.test/book-consultation",
	} {
		if !strings.Contains(body, "<loc>"+loc+"</loc>") {
			t.Fatalf("sitemap missing %s:\n%s", loc, body)
		}
	}
}

func TestRobots(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := doJSON(t, router, http.MethodGet, "/robots.txt", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
	body := resp.Body.String()
	if !strings.Contains(body, "Disallow: /api/") {
		t.Fatalf("robots missing API disallow:\n%s", body)
	}
	if !strings.Contains(body, "Sitemap: https://example.test/sitemap.xml") {
		t.Fatalf("robots missing sitemap link:\n%s", body)
	}
}

func TestSEOHealth(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := doJSON(t, router, http.MethodGet, "/api/seo/health", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected body: %s", resp.Body.String())
	}
}

func TestIsBot(t *testing.T) {
	cases := map[string]bool{
		"Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)": true,
		"Mozilla/5.0 (compatible; bingbot/2.0)":                                    true,
		"Twitterbot/1.0":                                                           true,
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) Safari/605.1.15":          false,
		"": false,
	}
	for ua, want := range cases {
		if got := isBot(ua); got != want {
			t.Fatalf("isBot(%q) = %v, want %v", ua, got, want)
		}
	}
}

func TestPrerenderMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	snapshot := "<html><head><title>Services</title></head><body>prerendered</body></html>"
	if err := os.WriteFile(filepath.Join(dir, "services.html"), []byte(snapshot), 0o644); err != nil {
		t.Fatalf("snapshot write error = %v", err)
	}

	router := gin.New()
	router.Use(PrerenderMiddleware(dir))
	router.GET("/services", func(c *gin.Context) {
		c.String(http.StatusOK, "app shell")
	})

	t.Run("bot gets snapshot", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/services", nil)
		req.Header.Set("User-Agent", "Googlebot/2.1")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "prerendered") {
			t.Fatalf("bot response = %d %s", resp.Code, resp.Body.String())
		}
	})

	t.Run("browser passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/services", nil)
		req.Header.Set("User-Agent", "Mozilla/5.0 Safari/605.1.15")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Body.String() != "app shell" {
			t.Fatalf("browser response = %s", resp.Body.String())
		}
	})

	t.Run("bot without snapshot passes through", func(t *testing.T) {
		router2 := gin.New()
		router2.Use(PrerenderMiddleware(dir))
		router2.GET("/missing", func(c *gin.Context) {
			c.String(http.StatusOK, "app shell")
		})

		req := httptest.NewRequest(http.MethodGet, "/missing", nil)
		req.Header.Set("User-Agent", "Googlebot/2.1")
		resp := httptest.NewRecorder()
		router2.ServeHTTP(resp, req)

		if resp.Body.String() != "app shell" {
			t.Fatalf("fallback response = %s", resp.Body.String())
		}
	})
}

func TestSnapshotPathEscapes(t *testing.T) {
	dir := t.TempDir()
	if got := snapshotPath(dir, "/../etc/passwd"); got != "" {
		t.Fatalf("snapshotPath escaped the snapshot dir: %s", got)
	}
}
