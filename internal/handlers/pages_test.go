package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statehouse_site/internal/content"
	"statehouse_site/internal/site"
)

type recordingRenderer struct {
	name string
	data PageData
}

func (r *recordingRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	r.name = name
	r.data = data.(PageData)
	_, err := io.WriteString(w, name)
	return err
}

// fakePages returns fixed views; err is returned by every loader.
type fakePages struct {
	page site.Page
	err  error
	slug string
	id   string
	q    string
}

func (f *fakePages) Home(context.Context) (site.HomeView, error) {
	return site.HomeView{Page: f.page}, f.err
}
func (f *fakePages) About(context.Context) (site.AboutView, error) {
	return site.AboutView{Page: f.page, Profile: content.SchoolProfile{Name: "State House Boys"}}, f.err
}
func (f *fakePages) Admissions(context.Context) (site.AdmissionsView, error) {
	return site.AdmissionsView{Page: f.page, Admissions: content.AdmissionsPage{Title: "Admissions"}}, f.err
}
func (f *fakePages) Academics(context.Context) (site.AcademicsView, error) {
	return site.AcademicsView{Page: f.page}, f.err
}
func (f *fakePages) Staff(context.Context) (site.StaffView, error) {
	return site.StaffView{Page: f.page}, f.err
}
func (f *fakePages) Departments(context.Context) (site.DepartmentsView, error) {
	return site.DepartmentsView{Page: f.page}, f.err
}
func (f *fakePages) Announcements(context.Context) (site.AnnouncementsView, error) {
	return site.AnnouncementsView{Page: f.page}, f.err
}
func (f *fakePages) Announcement(_ context.Context, slug string) (site.AnnouncementView, error) {
	f.slug = slug
	if slug == "missing" {
		return site.AnnouncementView{}, site.ErrNotFound
	}
	v := site.AnnouncementView{Page: f.page}
	if !f.page.Empty {
		v.Announcement = content.Announcement{Title: "Open House 2024!", Slug: slug}
	}
	return v, f.err
}
func (f *fakePages) Gallery(context.Context) (site.GalleryView, error) {
	return site.GalleryView{Page: f.page}, f.err
}
func (f *fakePages) Album(_ context.Context, id string) (site.AlbumView, error) {
	f.id = id
	return site.AlbumView{Page: f.page}, f.err
}
func (f *fakePages) Clubs(context.Context) (site.ClubsView, error) {
	return site.ClubsView{Page: f.page}, f.err
}
func (f *fakePages) Search(_ context.Context, q string) (site.SearchView, error) {
	f.q = q
	return site.SearchView{Page: f.page, Query: q, HasQuery: q != ""}, f.err
}
func (f *fakePages) Downloads(context.Context) (site.DownloadsView, error) {
	return site.DownloadsView{Page: f.page}, f.err
}

func newPageServer(pages Pages) (*echo.Echo, *recordingRenderer) {
	e := echo.New()
	r := &recordingRenderer{}
	e.Renderer = r
	h := NewPageHandler(pages, 8*time.Second)
	e.GET("/", h.Home)
	e.GET("/about", h.About)
	e.GET("/admissions", h.Admissions)
	e.GET("/academics", h.Academics)
	e.GET("/staff", h.Staff)
	e.GET("/departments", h.Departments)
	e.GET("/announcements", h.Announcements)
	e.GET("/announcements/:slug", h.Announcement)
	e.GET("/gallery", h.Gallery)
	e.GET("/gallery/:id", h.Album)
	e.GET("/clubs", h.Clubs)
	e.GET("/search", h.Search)
	e.GET("/downloads", h.Downloads)
	e.GET("/healthz", Health)
	return e, r
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestPageHandler_Templates(t *testing.T) {
	pages := &fakePages{page: site.Page{SiteName: "Statehouse", HasFooter: true}}
	e, r := newPageServer(pages)

	tests := []struct {
		path      string
		template  string
		title     string
		activeNav string
	}{
		{"/", "home.html", "Home", "home"},
		{"/about", "about.html", "About State House Boys", "about"},
		{"/admissions", "admissions.html", "Admissions", "admissions"},
		{"/academics", "academics.html", "Academics", "academics"},
		{"/staff", "staff.html", "Our Staff", "staff"},
		{"/departments", "departments.html", "Academic Departments", "academics"},
		{"/announcements", "announcements.html", "Announcements", "announcements"},
		{"/announcements/open-house-2024", "announcement.html", "Open House 2024!", "announcements"},
		{"/gallery", "gallery.html", "Gallery", "gallery"},
		{"/gallery/7", "album.html", "Album 7", "gallery"},
		{"/clubs", "clubs.html", "Clubs & Societies", "clubs"},
		{"/search?q=sports", "search.html", `Search results for "sports"`, ""},
		{"/downloads", "downloads.html", "Downloads", "downloads"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(e, tt.path)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.template, r.name)
			assert.Equal(t, tt.title, r.data.Title)
			assert.Equal(t, tt.activeNav, r.data.ActiveNav)
			assert.Equal(t, "Statehouse", r.data.SiteName)
			assert.True(t, r.data.HasFooter)
			assert.False(t, r.data.Refresh.Enabled)
		})
	}

	assert.Equal(t, "open-house-2024", pages.slug)
	assert.Equal(t, "7", pages.id)
	assert.Equal(t, "sports", pages.q)
}

func TestPageHandler_EmptyEnablesRefresh(t *testing.T) {
	e, r := newPageServer(&fakePages{page: site.Page{Empty: true}})

	rec := get(e, "/announcements/term-two-dates")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, r.data.Refresh.Enabled)
	assert.Equal(t, 8, r.data.Refresh.DelaySeconds)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "Term Two Dates", r.data.Title)
}

func TestPageHandler_Breadcrumbs(t *testing.T) {
	e, r := newPageServer(&fakePages{})

	get(e, "/departments")

	assert.Equal(t, []Breadcrumb{
		{Title: "Home", URL: "/"},
		{Title: "Academics", URL: "/academics"},
		{Title: "Departments"},
	}, r.data.Breadcrumbs)
}

func TestPageHandler_Errors(t *testing.T) {
	e, _ := newPageServer(&fakePages{err: fmt.Errorf("cms down")})
	assert.Equal(t, http.StatusInternalServerError, get(e, "/staff").Code)

	e, _ = newPageServer(&fakePages{})
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if err == site.ErrNotFound {
			c.NoContent(http.StatusNotFound)
			return
		}
		c.NoContent(http.StatusInternalServerError)
	}
	assert.Equal(t, http.StatusNotFound, get(e, "/announcements/missing").Code)
}

func TestHealth(t *testing.T) {
	e, _ := newPageServer(&fakePages{})

	rec := get(e, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestTitleFromSlug(t *testing.T) {
	assert.Equal(t, "Open House 2024", titleFromSlug("open-house-2024"))
	assert.Equal(t, "", titleFromSlug(""))
}
