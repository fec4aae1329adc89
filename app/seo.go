package app

import (
	"encoding/xml"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuyingcwynn/ThoughtLeaderAI-sub000/app/config"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// sitePages is the static page list the sitemap and prerender snapshots are
// generated from.
var sitePages = []struct {
	Path     string
	Priority string
}{
	{"/", "1.0"},
	{"/about", "0.8"},
	{"/services", "0.9"},
	{"/ai-readiness-assessment", "0.8"},
	{"/genai-quotient", "0.7"},
	{"/thought-leadership", "0.6"},
	{"/book-consultation", "0.9"},
	{"/contact", "0.8"},
}

// botAgents are user-agent fragments that get prerendered HTML snapshots
// instead of the client-rendered app shell.
var botAgents = []string{
	"googlebot",
	"bingbot",
	"yandex",
	"duckduckbot",
	"baiduspider",
	"twitterbot",
	"facebookexternalhit",
	"linkedinbot",
	"slackbot",
	"discordbot",
	"whatsapp",
	"telegrambot",
}

func isBot(userAgent string) bool {
	ua := strings.ToLower(userAgent)
	for _, fragment := range botAgents {
		if strings.Contains(ua, fragment) {
			return true
		}
	}
	return false
}

// PrerenderMiddleware serves a static HTML snapshot to crawlers when one
// exists for the requested page. API and non-GET traffic passes through.
func PrerenderMiddleware(snapshotDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if snapshotDir == "" ||
			c.Request.Method != http.MethodGet ||
			strings.HasPrefix(c.Request.URL.Path, "/api/") ||
			!isBot(c.GetHeader("User-Agent")) {
			c.Next()
			return
		}

		snapshot := snapshotPath(snapshotDir, c.Request.URL.Path)
		if snapshot == "" {
			c.Next()
			return
		}

		log.Printf("serving prerendered snapshot path=%s ua=%s", c.Request.URL.Path, c.GetHeader("User-Agent"))
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.File(snapshot)
		c.Abort()
	}
}

// snapshotPath maps a page path to its snapshot file, or "" when no snapshot
// exists. Paths are cleaned before joining so a crafted path cannot escape
// the snapshot directory.
func snapshotPath(dir, urlPath string) string {
	name := strings.Trim(filepath.Clean("/"+urlPath), "/")
	if name == "" {
		name = "index"
	}
	full := filepath.Join(dir, name+".html")
	if info, err := os.Stat(full); err != nil || info.IsDir() {
		return ""
	}
	return full
}

type sitemapURL struct {
	Loc      string `xml:"loc"`
	Priority string `xml:"priority"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap renders sitemap.xml from the static page list.
func Sitemap(c *gin.Context) {
	cfg, err := config.LoadConfig()
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to load config")
		return
	}
	site := strings.TrimRight(cfg.SEO.SiteURL, "/")

	set := sitemapURLSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, page := range sitePages {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:      site + page.Path,
			Priority: page.Priority,
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to render sitemap")
		return
	}
	c.Data(http.StatusOK, "application/xml", append([]byte(xml.Header), out...))
}

// Robots serves robots.txt pointing crawlers at the sitemap.
func Robots(c *gin.Context) {
	cfg, err := config.LoadConfig()
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to load config")
		return
	}
	site := strings.TrimRight(cfg.SEO.SiteURL, "/")

	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /api/\n\n")
	b.WriteString("Sitemap: " + site + "/sitemap.xml\n")

	c.String(http.StatusOK, b.String())
}

// SEOHealth is an informational report on the SEO artifacts.
func SEOHealth(c *gin.Context) {
	cfg, err := config.LoadConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load config"})
		return
	}

	snapshots := 0
	if cfg.SEO.SnapshotDir != "" {
		for _, page := range sitePages {
			if snapshotPath(cfg.SEO.SnapshotDir, page.Path) != "" {
				snapshots++
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":             "ok",
		"siteUrl":            cfg.SEO.SiteURL,
		"pages":              len(sitePages),
		"prerenderSnapshots": snapshots,
		"checkedAt":          time.Now().UTC().Format(time.RFC3339),
	})
}
