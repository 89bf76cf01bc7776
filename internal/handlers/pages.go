package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"statehouse_site/internal/site"
)

// Pages is the set of page loaders, implemented by site.Service.
type Pages interface {
	Home(ctx context.Context) (site.HomeView, error)
	About(ctx context.Context) (site.AboutView, error)
	Admissions(ctx context.Context) (site.AdmissionsView, error)
	Academics(ctx context.Context) (site.AcademicsView, error)
	Staff(ctx context.Context) (site.StaffView, error)
	Departments(ctx context.Context) (site.DepartmentsView, error)
	Announcements(ctx context.Context) (site.AnnouncementsView, error)
	Announcement(ctx context.Context, slug string) (site.AnnouncementView, error)
	Gallery(ctx context.Context) (site.GalleryView, error)
	Album(ctx context.Context, id string) (site.AlbumView, error)
	Clubs(ctx context.Context) (site.ClubsView, error)
	Search(ctx context.Context, q string) (site.SearchView, error)
	Downloads(ctx context.Context) (site.DownloadsView, error)
}

type PageHandler struct {
	pages        Pages
	refreshDelay time.Duration
}

func NewPageHandler(pages Pages, refreshDelay time.Duration) *PageHandler {
	return &PageHandler{pages: pages, refreshDelay: refreshDelay}
}

// titleFromSlug turns "open-house-2024" into "Open House 2024".
func titleFromSlug(slug string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
}

// trail builds breadcrumbs starting at Home. The last crumb is the current
// page and carries no URL.
func trail(crumbs ...Breadcrumb) []Breadcrumb {
	return append([]Breadcrumb{{Title: "Home", URL: "/"}}, crumbs...)
}

func (h *PageHandler) render(c echo.Context, name string, pd PageData, page site.Page) error {
	pd.SiteName = page.SiteName
	pd.Footer = page.Footer
	pd.HasFooter = page.HasFooter
	pd.Refresh = Refresh{Enabled: page.Empty, DelaySeconds: int(h.refreshDelay.Seconds())}
	if page.Empty {
		c.Response().Header().Set("Cache-Control", "no-store")
	}
	return c.Render(http.StatusOK, name, pd)
}

// Home renders the landing page
func (h *PageHandler) Home(c echo.Context) error {
	v, err := h.pages.Home(c.Request().Context())
	if err != nil {
		return err
	}
	return h.render(c, "home.html", PageData{
		Title:     "Home",
		ActiveNav: "home",
		Data:      v,
	}, v.Page)
}

func (h *PageHandler) About(c echo.Context) error {
	v, err := h.pages.About(c.Request().Context())
	if err != nil {
		return err
	}
	title := "About Us"
	if v.Profile.Name != "" {
		title = "About " + v.Profile.Name
	}
	return h.render(c, "about.html", PageData{
		Title:       title,
		Description: v.Profile.Mission,
		ActiveNav:   "about",
		Breadcrumbs: trail(Breadcrumb{Title: "About"}),
		Data:        v,
	}, v.Page)
}

func (h *PageHandler) Admissions(c echo.Context) error {
	v, err := h.pages.Admissions(c.Request().Context())
	if err != nil {
		return err
	}
	return h.render(c, "admissions.html", PageData{
		Title:       v.Admissions.Title,
		ActiveNav:   "admissions",
		Breadcrumbs: trail(Breadcrumb{Title: v.Admissions.Title}),
		Data:        v,
	}, v.Page)
}

func (h *PageHandler) Academics(c echo.Context) error {
	v, err := h.pages.Academics(c.Request().Context())
	if err != nil {
		return err
	}
	return h.render(c, "academics.html", PageData{
		Title:       "Academics",
		Description: "CBC pathways and learning areas offered at the school.",
		ActiveNav:   "academics",
		Breadcrumbs: trail(Breadcrumb{Title: "Academics"}),
		Data:        v,
	}, v.Page)
}

func (h *PageHandler) Staff(c echo.Context) error {
	v, err := h.pages.Staff(c.Request().Context())
	if err != nil {
		return err
	}
	return h.render(c, "staff.html", PageData{
		Title:       "Our Staff",
		Description: "Meet our dedicated staff members and educators.",
		ActiveNav:   "staff",
		Breadcrumbs: trail(Breadcrumb{Title: "Staff"}),
		Data:        v,
	}, v.Page)
}

func (h *PageHandler) Departments(c echo.Context) error {
	v, err := h.pages.Departments(c.Request().Context())
	if err != nil {
		return err
	}
	return h.render(c, "departments.html", PageData{
		Title:       "Academic Departments",
		ActiveNav:   "academics",
		Breadcrumbs: trail(Breadcrumb{Title: "Academics", URL: "/academics"}, Breadcrumb{Title: "Departments"}),
		Data:        v,
	}, v.Page)
}

func (h *PageHandler) Announcements(c echo.Context) error {
	v, err := h.pages.Announcements(c.Request().Context())
	if err != nil {
		return err
	}
	return h.render(c, "announcements.html", PageData{
		Title:       "Announcements",
		Description: "News, notices and events from the school.",
		ActiveNav:   "announcements",
		Breadcrumbs: trail(Breadcrumb{Title: "Announcements"}),
		Data:        v,
	}, v.Page)
}

// Announcement renders one announcement; unknown slugs are 404s.
func (h *PageHandler) Announcement(c echo.Context) error {
	slug := c.Param("slug")
	v, err := h.pages.Announcement(c.Request().Context(), slug)
	if err != nil {
		return err
	}
	title := v.Announcement.Title
	if title == "" {
		title = titleFromSlug(slug)
	}
	return h.render(c, "announcement.html", PageData{
		Title:     title,
		ActiveNav: "announcements",
		Breadcrumbs: trail(
			Breadcrumb{Title: "Announcements", URL: "/announcements"},
			Breadcrumb{Title: title},
		),
		Data: v,
	}, v.Page)
}

func (h *PageHandler) Gallery(c echo.Context) error {
	v, err := h.pages.Gallery(c.Request().Context())
	if err != nil {
		return err
	}
	return h.render(c, "gallery.html", PageData{
		Title:       "Gallery",
		ActiveNav:   "gallery",
		Breadcrumbs: trail(Breadcrumb{Title: "Gallery"}),
		Data:        v,
	}, v.Page)
}

func (h *PageHandler) Album(c echo.Context) error {
	id := c.Param("id")
	v, err := h.pages.Album(c.Request().Context(), id)
	if err != nil {
		return err
	}
	title := v.Album.Title
	if title == "" {
		title = "Album " + id
	}
	return h.render(c, "album.html", PageData{
		Title:     title,
		ActiveNav: "gallery",
		Breadcrumbs: trail(
			Breadcrumb{Title: "Gallery", URL: "/gallery"},
			Breadcrumb{Title: title},
		),
		Data: v,
	}, v.Page)
}

func (h *PageHandler) Clubs(c echo.Context) error {
	v, err := h.pages.Clubs(c.Request().Context())
	if err != nil {
		return err
	}
	return h.render(c, "clubs.html", PageData{
		Title:       "Clubs & Societies",
		ActiveNav:   "clubs",
		Breadcrumbs: trail(Breadcrumb{Title: "Clubs"}),
		Data:        v,
	}, v.Page)
}

func (h *PageHandler) Search(c echo.Context) error {
	v, err := h.pages.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	title := "Search"
	if v.HasQuery {
		title = `Search results for "` + v.Query + `"`
	}
	return h.render(c, "search.html", PageData{
		Title:       title,
		Breadcrumbs: trail(Breadcrumb{Title: "Search"}),
		Data:        v,
	}, v.Page)
}

func (h *PageHandler) Downloads(c echo.Context) error {
	v, err := h.pages.Downloads(c.Request().Context())
	if err != nil {
		return err
	}
	return h.render(c, "downloads.html", PageData{
		Title:       "Downloads",
		Description: "Fee structures, tenders and other school documents.",
		ActiveNav:   "downloads",
		Breadcrumbs: trail(Breadcrumb{Title: "Downloads"}),
		Data:        v,
	}, v.Page)
}

// Health reports liveness only; it never calls the CMS.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
