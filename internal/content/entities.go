package content

import (
	"time"

	"statehouse_site/internal/richtext"
)

// DefaultOrder is the ordering hint assumed when a record has none.
const DefaultOrder = 999

type SchoolProfile struct {
	Name            string
	History         string
	Mission         string
	Vision          string
	CoreValues      string
	EstablishedYear string
	Location        string
	Address         string
	Phone           string
	Email           string
	MapsEmbedURL    string
	LogoURL         string
	ProfileImageURL string
	Social          []SocialLink
}

// SocialLink is one of the school's social media profiles.
type SocialLink struct {
	Network string
	URL     string
}

// Announcement categories as modelled in the CMS.
const (
	CategoryNews   = "News"
	CategoryNotice = "Notice"
	CategoryEvent  = "Event"
)

type Announcement struct {
	ID         int
	DocumentID string
	Title      string
	Slug       string
	Category   string
	Date       time.Time
	ImageURL   string
	Content    []richtext.Block
	Published  bool
}

type GalleryAlbum struct {
	ID          int
	Title       string
	Description []richtext.Block
	CoverURL    string
	EventDate   time.Time
	Order       int
	ItemCount   int
	Items       []GalleryItem
}

type GalleryItem struct {
	ID       int
	Title    string
	Caption  string
	ImageURL string
	Order    int
}

type StaffCategory struct {
	ID          int
	Name        string
	Description []richtext.Block
	Members     []StaffMember
}

type StaffMember struct {
	ID        int
	FullName  string
	JobTitle  string
	PhotoURL  string
	Biography []richtext.Block
	Email     string
	Phone     string
	Order     int
}

type Department struct {
	ID          int
	Name        string
	Description []richtext.Block
	Head        *StaffMember
	Order       int
}

type Pathway struct {
	ID          int
	Name        string
	Description []richtext.Block
	Order       int
}

type Subject struct {
	ID          int
	Name        string
	Description []richtext.Block
	Department  string
	Pathway     string
	Order       int
}

type AdmissionsPage struct {
	Title        string
	Introduction []richtext.Block
	Process      []richtext.Block
	ContactInfo  []richtext.Block
}

type AdmissionRequirement struct {
	ID          int
	Title       string
	Description []richtext.Block
	Order       int
}

type Club struct {
	ID          int
	Name        string
	Slug        string
	Description []richtext.Block
	ImageURL    string
	Patron      *StaffMember
	Order       int
}
