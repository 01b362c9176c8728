package server

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"

	"github.com/alkime/podcasts/internal/podcast"
	"github.com/alkime/podcasts/internal/routes"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	podcastTemplate       = "podcast.html"
	podcastDetailTemplate = "podcast_detail.html"
)

// podcastTypes are the values the generate form offers.
var podcastTypes = []string{podcast.DefaultType, "dual"}

func setupTemplates(router *gin.Engine) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/*.html"))
	router.SetHTMLTemplate(tmpl)
}

type podcastPage struct {
	AssetsHref string
	FormAction string
	Text       string
	Type       string
	Types      []string
	Error      string
}

type podcastDetailPage struct {
	AssetsHref   string
	AudioFile    string
	AudioURL     string
	DownloadHref string
	PodcastType  string
	BackHref     string
}

func (s *Server) newPodcastPage() podcastPage {
	return podcastPage{
		AssetsHref: s.history.Href(assetsPath),
		FormAction: s.history.Href(routes.PodcastPath),
		Type:       podcast.DefaultType,
		Types:      podcastTypes,
	}
}

// handlePodcastView renders the generate form.
func (s *Server) handlePodcastView(c *gin.Context) {
	c.HTML(http.StatusOK, podcastTemplate, s.newPodcastPage())
}

// handlePodcastSubmit runs a generation for the form and sends the browser
// to the detail view, or re-renders the form with the error.
func (s *Server) handlePodcastSubmit(c *gin.Context) {
	text := c.PostForm("text")
	podcastType := c.DefaultPostForm("type", podcast.DefaultType)

	res := s.client.GeneratePodcast(c.Request.Context(), text, podcastType)
	if !res.Success {
		page := s.newPodcastPage()
		page.Text = text
		page.Type = podcastType
		page.Error = res.Error
		c.HTML(statusFor(res.Kind), podcastTemplate, page)
		return
	}

	query := url.Values{}
	query.Set("file", res.AudioFile)
	if res.PodcastType != "" {
		query.Set("type", res.PodcastType)
	}
	c.Redirect(http.StatusSeeOther, s.history.Href(routes.PodcastDetailPath)+"?"+query.Encode())
}

// handlePodcastDetailView shows the player and download link for ?file=.
func (s *Server) handlePodcastDetailView(c *gin.Context) {
	page := podcastDetailPage{
		AssetsHref: s.history.Href(assetsPath),
		BackHref:   s.history.Href(routes.PodcastPath),
	}

	if file := c.Query("file"); file != "" {
		page.AudioFile = file
		page.AudioURL = s.client.AudioURL(file)
		page.DownloadHref = s.downloadHref(file)
		page.PodcastType = c.Query("type")
	}

	c.HTML(http.StatusOK, podcastDetailTemplate, page)
}

func (s *Server) downloadHref(file string) string {
	return s.history.Href("/api/podcasts/" + url.PathEscape(file) + "/download")
}
