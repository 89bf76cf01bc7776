package site

import (
	"statehouse_site/internal/content"
	"statehouse_site/internal/models"
	"statehouse_site/internal/slideshow"
)

// Page is shared by every view. Empty is set when the page's main data was
// replaced by an empty default because the CMS could not be reached; the
// layout then offers an automatic refresh.
type Page struct {
	SiteName  string
	Footer    content.SchoolProfile
	HasFooter bool
	Empty     bool
}

type HomeView struct {
	Page
	Profile    content.SchoolProfile
	HasProfile bool
	Latest     []content.Announcement
	Hero       slideshow.View
}

type AboutView struct {
	Page
	Profile    content.SchoolProfile
	HasProfile bool
}

type AdmissionsView struct {
	Page
	Admissions   content.AdmissionsPage
	Requirements []content.AdmissionRequirement
}

type AcademicsView struct {
	Page
	Pathways []content.Pathway
	Subjects []content.Subject
}

type StaffView struct {
	Page
	Categories []content.StaffCategory
}

type DepartmentsView struct {
	Page
	Departments []content.Department
}

type AnnouncementsView struct {
	Page
	Announcements []content.Announcement
}

type AnnouncementView struct {
	Page
	Announcement content.Announcement
}

type GalleryView struct {
	Page
	Albums []content.GalleryAlbum
}

type AlbumView struct {
	Page
	Album content.GalleryAlbum
}

type ClubsView struct {
	Page
	Clubs []content.Club
}

type SearchView struct {
	Page
	Query    string
	HasQuery bool
	Results  []content.Announcement
}

type DownloadsView struct {
	Page
	Downloads []models.Download
}
