package portfolio

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/jeffreysmith/portfolio/resume"
)

var (
	//go:embed templates/*.html
	templateFS embed.FS

	//go:embed static
	staticFS embed.FS
)

// visibleLines is how many lines of a resume entry show before the rest
// collapse under "Show more".
const visibleLines = 3

// Site is the portfolio web application.
type Site struct {
	engine     *gin.Engine
	cfg        Config
	resumeURL  string
	experience Experience
	mailer     Mailer
	logger     *slog.Logger
}

var _ http.Handler = (*Site)(nil)

// New wires the routes of the site. exp is computed once by the caller and
// never changes afterwards.
func New(cfg Config, content Content, exp Experience, mailer Mailer, logger *slog.Logger) (*Site, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	tmpl, err := template.New("").Funcs(template.FuncMap{
		"year": func() int { return time.Now().Year() },
		"join": strings.Join,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("static files: %w", err)
	}
	resumeURL, err := cfg.ResumeURL()
	if err != nil {
		return nil, err
	}
	visitors, err := newVisitorLog(logger)
	if err != nil {
		return nil, err
	}

	s := &Site{
		engine:     gin.New(),
		cfg:        cfg,
		resumeURL:  resumeURL,
		experience: exp,
		mailer:     mailer,
		logger:     logger,
	}

	r := s.engine
	r.SetHTMLTemplate(tmpl)
	r.Use(gin.Recovery(), visitors.Middleware())

	r.StaticFS("/static", http.FS(static))
	r.Static("/assets", cfg.AssetsDir)

	r.GET("/", s.page("index.html", "home", nil))
	r.GET("/services", s.page("services.html", "services", gin.H{
		"intro":    ServicesIntro,
		"services": content.Services,
	}))
	r.GET("/work", s.page("work.html", "work", gin.H{"items": content.Work}))
	r.GET("/about", s.page("about.html", "about", gin.H{"about": AboutMe}))
	r.GET("/certifications", s.page("certifications.html", "certifications", gin.H{
		"certifications": content.Certifications,
	}))
	r.GET("/resume", s.resumePage)
	r.GET("/contact", s.contactPage)
	r.POST("/contact", s.submitContact)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "experience": s.experience.Source()})
	})

	return s, nil
}

// NewFromConfig loads the embedded content, resolves the resume experience
// and builds the site with an SMTP mailer.
func NewFromConfig(cfg Config, logger *slog.Logger) (*Site, error) {
	content, err := DefaultContent()
	if err != nil {
		return nil, err
	}

	var source resume.TextSource
	if cfg.Resume.Parse {
		source = resume.PDFSource{}
	}
	extractor := resume.NewExtractor(source, logger)
	exp := LoadExperience(cfg.Resume, content.Experience, extractor, logger)

	return New(cfg, content, exp, NewSMTPMailer(cfg.Mail), logger)
}

func (s *Site) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

func (s *Site) render(c *gin.Context, status int, name, active string, data gin.H) {
	h := gin.H{
		"owner":   SiteOwner,
		"tagline": Tagline,
		"active":  active,
	}
	for k, v := range data {
		h[k] = v
	}
	c.HTML(status, name, h)
}

func (s *Site) page(name, active string, data gin.H) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.render(c, http.StatusOK, name, active, data)
	}
}

type entryView struct {
	Header string
	Lines  []string
	More   []string
}

func (s *Site) resumePage(c *gin.Context) {
	entries := s.experience.Entries()
	views := make([]entryView, 0, len(entries))
	for _, e := range entries {
		v := entryView{Header: e.Header, Lines: e.Lines}
		if len(e.Lines) > visibleLines {
			v.Lines, v.More = e.Lines[:visibleLines], e.Lines[visibleLines:]
		}
		views = append(views, v)
	}
	s.render(c, http.StatusOK, "resume.html", "resume", gin.H{
		"experience": views,
		"resumePDF":  s.resumeURL,
	})
}

func (s *Site) contactPage(c *gin.Context) {
	data := gin.H{"intro": ContactIntro, "form": ContactForm{}}
	switch c.Query("status") {
	case "sent":
		data["success"] = sentNotice(c.Query("name"))
	case "error":
		data["error"] = ContactError
	}
	s.render(c, http.StatusOK, "contact.html", "contact", data)
}

func (s *Site) submitContact(c *gin.Context) {
	var form ContactForm
	if err := c.ShouldBind(&form); err != nil {
		s.render(c, http.StatusBadRequest, "contact.html", "contact", gin.H{
			"intro":  ContactIntro,
			"form":   form,
			"errors": fieldErrors(err),
		})
		return
	}

	msg := NewContactMessage(form, s.cfg.Mail.Username, s.cfg.Mail.Recipient())
	if err := s.mailer.Send(c.Request.Context(), msg); err != nil {
		s.logger.Error("contact mail failed", "ref", msg.ID, "err", err)
		c.Redirect(http.StatusSeeOther, "/contact?status=error")
		return
	}
	s.logger.Info("contact mail sent", "ref", msg.ID)
	q := url.Values{"status": {"sent"}, "name": {form.Name}}
	c.Redirect(http.StatusSeeOther, "/contact?"+q.Encode())
}

// sentNotice thanks the sender by name. The email address is left out of
// the redirect so it never appears in URLs.
func sentNotice(name string) string {
	if name = strings.TrimSpace(name); name == "" {
		return "Thanks! " + ContactSent
	}
	return fmt.Sprintf("Thanks %s! %s", name, ContactSent)
}

// fieldErrors maps binding errors to a message per form field.
func fieldErrors(err error) map[string]string {
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["form"] = "The form could not be read."
		return out
	}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out[field] = "This field is required."
		case "email":
			out[field] = "Enter a valid email address."
		case "max":
			out[field] = "This field is too long."
		default:
			out[field] = "This value is not valid."
		}
	}
	return out
}
