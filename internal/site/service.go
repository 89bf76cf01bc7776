// Package site loads and normalizes the data behind each page.
package site

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"statehouse_site/internal/cms"
	"statehouse_site/internal/content"
	"statehouse_site/internal/models"
	"statehouse_site/internal/slideshow"
)

// ErrNotFound is returned for detail pages whose slug or id matches nothing.
var ErrNotFound = errors.New("not found")

// homeLatest is how many announcements the home page shows.
const homeLatest = 3

// Fetcher is the part of the CMS client the loaders use.
type Fetcher interface {
	Get(ctx context.Context, req cms.Request) cms.Result[cms.Envelope]
}

// DownloadLister lists the documents on the downloads page.
type DownloadLister interface {
	List(ctx context.Context) ([]models.Download, error)
}

type Options struct {
	SiteName      string
	MediaBase     string
	Downloads     DownloadLister
	SlideInterval time.Duration
	Logger        *zap.Logger
}

// Service runs one loader per page. Loaders only return an error when the
// client's policy propagated a fetch failure, or ErrNotFound.
type Service struct {
	cms           Fetcher
	norm          content.Normalizer
	siteName      string
	downloads     DownloadLister
	slideInterval time.Duration
	log           *zap.Logger
}

func New(fetcher Fetcher, opts Options) *Service {
	s := &Service{
		cms:           fetcher,
		norm:          content.NewNormalizer(opts.MediaBase),
		siteName:      opts.SiteName,
		downloads:     opts.Downloads,
		slideInterval: opts.SlideInterval,
		log:           opts.Logger,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

// Normalizer exposes the normalizer so templates resolve media the same way.
func (s *Service) Normalizer() content.Normalizer {
	return s.norm
}

// fetch issues the footer request plus reqs concurrently. The first result
// is always the school profile.
func (s *Service) fetch(ctx context.Context, reqs ...cms.Request) ([]cms.Result[cms.Envelope], error) {
	all := append([]cms.Request{profileRequest}, reqs...)
	results := make([]cms.Result[cms.Envelope], len(all))

	g, gctx := errgroup.WithContext(ctx)
	for i, req := range all {
		g.Go(func() error {
			results[i] = s.cms.Get(gctx, req)
			_, err := results[i].Get()
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) page(profile cms.Result[cms.Envelope], critical ...cms.Result[cms.Envelope]) Page {
	p := Page{SiteName: s.siteName}
	p.Footer, p.HasFooter = s.norm.SchoolProfile(profile.Value.Data)
	for _, r := range critical {
		if r.Outcome == cms.Substituted {
			p.Empty = true
		}
	}
	return p
}

func (s *Service) Home(ctx context.Context) (HomeView, error) {
	res, err := s.fetch(ctx, announcementsRequest)
	if err != nil {
		return HomeView{}, err
	}

	v := HomeView{Page: s.page(res[0], res[0], res[1])}
	v.Profile, v.HasProfile = v.Footer, v.HasFooter

	published := published(s.norm.Announcements(res[1].Value.Data))
	v.Latest = published[:min(homeLatest, len(published))]

	slides := []slideshow.Slide{{URL: v.Profile.ProfileImageURL, Caption: v.Profile.Name}}
	for _, a := range published {
		slides = append(slides, slideshow.Slide{URL: a.ImageURL, Caption: a.Title})
	}
	v.Hero = slideshow.New(slides, s.slideInterval).View()
	return v, nil
}

func (s *Service) About(ctx context.Context) (AboutView, error) {
	res, err := s.fetch(ctx)
	if err != nil {
		return AboutView{}, err
	}
	v := AboutView{Page: s.page(res[0], res[0])}
	v.Profile, v.HasProfile = v.Footer, v.HasFooter
	return v, nil
}

func (s *Service) Admissions(ctx context.Context) (AdmissionsView, error) {
	res, err := s.fetch(ctx, admissionsRequest, requirementsRequest)
	if err != nil {
		return AdmissionsView{}, err
	}
	return AdmissionsView{
		Page:         s.page(res[0], res[1], res[2]),
		Admissions:   s.norm.AdmissionsPage(res[1].Value.Data),
		Requirements: s.norm.AdmissionRequirements(res[2].Value.Data),
	}, nil
}

func (s *Service) Academics(ctx context.Context) (AcademicsView, error) {
	res, err := s.fetch(ctx, pathwaysRequest, subjectsRequest)
	if err != nil {
		return AcademicsView{}, err
	}
	return AcademicsView{
		Page:     s.page(res[0], res[1], res[2]),
		Pathways: s.norm.Pathways(res[1].Value.Data),
		Subjects: s.norm.Subjects(res[2].Value.Data),
	}, nil
}

func (s *Service) Staff(ctx context.Context) (StaffView, error) {
	res, err := s.fetch(ctx, staffRequest)
	if err != nil {
		return StaffView{}, err
	}
	return StaffView{
		Page:       s.page(res[0], res[1]),
		Categories: s.norm.StaffCategories(res[1].Value.Data),
	}, nil
}

func (s *Service) Departments(ctx context.Context) (DepartmentsView, error) {
	res, err := s.fetch(ctx, departmentsRequest)
	if err != nil {
		return DepartmentsView{}, err
	}
	return DepartmentsView{
		Page:        s.page(res[0], res[1]),
		Departments: s.norm.Departments(res[1].Value.Data),
	}, nil
}

func (s *Service) Announcements(ctx context.Context) (AnnouncementsView, error) {
	res, err := s.fetch(ctx, announcementsRequest)
	if err != nil {
		return AnnouncementsView{}, err
	}
	return AnnouncementsView{
		Page:          s.page(res[0], res[1]),
		Announcements: published(s.norm.Announcements(res[1].Value.Data)),
	}, nil
}

// Announcement finds a published announcement by its slug, or by the slug
// derived from its title. While the CMS is unreachable the page is returned
// empty instead of not found.
func (s *Service) Announcement(ctx context.Context, slug string) (AnnouncementView, error) {
	slug = strings.TrimSpace(slug)
	if content.IsBlankSlug(slug) {
		return AnnouncementView{}, ErrNotFound
	}

	res, err := s.fetch(ctx, announcementsRequest)
	if err != nil {
		return AnnouncementView{}, err
	}
	v := AnnouncementView{Page: s.page(res[0], res[1])}
	if v.Empty {
		return v, nil
	}

	for _, a := range published(s.norm.Announcements(res[1].Value.Data)) {
		if a.Slug == slug || content.Slugify(a.Title) == slug {
			v.Announcement = a
			return v, nil
		}
	}
	return AnnouncementView{}, ErrNotFound
}

// Search matches announcements whose title or category contains q, ignoring
// case. A blank query returns no results and HasQuery false.
func (s *Service) Search(ctx context.Context, q string) (SearchView, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		res, err := s.fetch(ctx)
		if err != nil {
			return SearchView{}, err
		}
		return SearchView{Page: s.page(res[0])}, nil
	}

	res, err := s.fetch(ctx, announcementsRequest)
	if err != nil {
		return SearchView{}, err
	}
	v := SearchView{Page: s.page(res[0], res[1]), Query: q, HasQuery: true}
	needle := strings.ToLower(q)
	for _, a := range published(s.norm.Announcements(res[1].Value.Data)) {
		if strings.Contains(strings.ToLower(a.Title), needle) ||
			strings.Contains(strings.ToLower(a.Category), needle) {
			v.Results = append(v.Results, a)
		}
	}
	return v, nil
}

func (s *Service) Gallery(ctx context.Context) (GalleryView, error) {
	res, err := s.fetch(ctx, albumsRequest)
	if err != nil {
		return GalleryView{}, err
	}
	return GalleryView{
		Page:   s.page(res[0], res[1]),
		Albums: s.norm.GalleryAlbums(res[1].Value.Data),
	}, nil
}

// Album finds an album by numeric id. Non-numeric ids are not found.
func (s *Service) Album(ctx context.Context, id string) (AlbumView, error) {
	n, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil {
		return AlbumView{}, ErrNotFound
	}

	res, err := s.fetch(ctx, albumDetailRequest)
	if err != nil {
		return AlbumView{}, err
	}
	v := AlbumView{Page: s.page(res[0], res[1])}
	if v.Empty {
		return v, nil
	}

	for _, album := range s.norm.GalleryAlbums(res[1].Value.Data) {
		if album.ID == n {
			v.Album = album
			return v, nil
		}
	}
	return AlbumView{}, ErrNotFound
}

func (s *Service) Clubs(ctx context.Context) (ClubsView, error) {
	res, err := s.fetch(ctx, clubsRequest)
	if err != nil {
		return ClubsView{}, err
	}
	return ClubsView{
		Page:  s.page(res[0], res[1]),
		Clubs: s.norm.Clubs(res[1].Value.Data),
	}, nil
}

// Downloads lists stored documents, falling back to the built-in list when
// no store is configured or it cannot be read.
func (s *Service) Downloads(ctx context.Context) (DownloadsView, error) {
	res, err := s.fetch(ctx)
	if err != nil {
		return DownloadsView{}, err
	}
	v := DownloadsView{Page: s.page(res[0])}

	if s.downloads != nil {
		docs, err := s.downloads.List(ctx)
		if err == nil && len(docs) > 0 {
			v.Downloads = docs
			return v, nil
		}
		if err != nil {
			s.log.Warn("failed to list downloads", zap.Error(err))
		}
	}
	v.Downloads = models.DefaultDownloads()
	return v, nil
}

// published drops announcements not marked published.
func published(all []content.Announcement) []content.Announcement {
	out := make([]content.Announcement, 0, len(all))
	for _, a := range all {
		if a.Published {
			out = append(out, a)
		}
	}
	return out
}
