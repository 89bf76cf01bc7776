package content

import (
	"cmp"
	"slices"

	"statehouse_site/internal/richtext"
)

// Normalizer converts raw CMS values into entities. Methods never fail:
// missing or malformed input yields zero fields and empty lists.
type Normalizer struct {
	Media Media
}

// NewNormalizer resolves media against the given CMS origin.
func NewNormalizer(base string) Normalizer {
	return Normalizer{Media: Media{Base: base}}
}

func blocks(f Fields, keys ...string) []richtext.Block {
	return richtext.Parse(f.Raw(keys...))
}

func sortByOrder[T any](items []T, order func(T) int) {
	slices.SortStableFunc(items, func(a, b T) int {
		return cmp.Compare(order(a), order(b))
	})
}

// each parses every record in v and applies fn, dropping records fn rejects.
func each[T any](v any, fn func(Record) (T, bool)) []T {
	records := Relations(v)
	out := make([]T, 0, len(records))
	for _, r := range records {
		if item, ok := fn(r); ok {
			out = append(out, item)
		}
	}
	return out
}

func (n Normalizer) SchoolProfile(v any) (SchoolProfile, bool) {
	rec, ok := Relation(v)
	if !ok {
		return SchoolProfile{}, false
	}
	f := rec.Fields()
	return SchoolProfile{
		Name:            f.String("School_name", "school_name", "name"),
		History:         f.String("history"),
		Mission:         f.String("mission"),
		Vision:          f.String("vision"),
		CoreValues:      f.String("core_values"),
		EstablishedYear: f.String("established_year"),
		Location:        f.String("location"),
		Address:         f.String("address"),
		Phone:           f.String("phone"),
		Email:           f.String("email"),
		MapsEmbedURL:    f.String("google_maps_embed_url"),
		LogoURL:         n.Media.URL(f.Raw("logo")),
		ProfileImageURL: n.Media.URL(f.Raw("profile_image")),
		Social:          socialLinks(f),
	}, true
}

var socialNetworks = []struct{ name, key string }{
	{"Facebook", "facebook_url"},
	{"Twitter", "twitter_url"},
	{"Instagram", "instagram_url"},
	{"LinkedIn", "linkedin_url"},
	{"YouTube", "youtube_url"},
}

func socialLinks(f Fields) []SocialLink {
	var links []SocialLink
	for _, n := range socialNetworks {
		if u := f.String(n.key); u != "" {
			links = append(links, SocialLink{Network: n.name, URL: u})
		}
	}
	return links
}

func (n Normalizer) Announcement(rec Record) Announcement {
	f := rec.Fields()
	title := f.String("Title")
	published, _ := f.Bool("Published")
	return Announcement{
		ID:         rec.ID(),
		DocumentID: rec.DocumentID(),
		Title:      title,
		Slug:       ResolveSlug(f.String("Slug"), title, "announcement", rec.ID()),
		Category:   f.String("Category"),
		Date:       f.Time("Date"),
		ImageURL:   n.Media.URL(f.Raw("Image")),
		Content:    blocks(f, "Content"),
		Published:  published,
	}
}

// Announcements keeps CMS order; the query already sorts by date.
func (n Normalizer) Announcements(v any) []Announcement {
	return each(v, func(r Record) (Announcement, bool) {
		return n.Announcement(r), true
	})
}

func (n Normalizer) GalleryItem(rec Record) GalleryItem {
	f := rec.Fields()
	return GalleryItem{
		ID:       rec.ID(),
		Title:    f.String("title"),
		Caption:  f.String("caption"),
		ImageURL: n.Media.URL(f.Raw("image")),
		Order:    f.Order(),
	}
}

// GalleryAlbum normalizes an album with its items sorted. The cover falls back
// to the first item's image.
func (n Normalizer) GalleryAlbum(rec Record) GalleryAlbum {
	f := rec.Fields()
	items := each(f.Raw("gallery_items"), func(r Record) (GalleryItem, bool) {
		return n.GalleryItem(r), true
	})
	sortByOrder(items, func(i GalleryItem) int { return i.Order })

	cover := n.Media.URL(f.Raw("cover_image"))
	if cover == "" {
		for _, item := range items {
			if item.ImageURL != "" {
				cover = item.ImageURL
				break
			}
		}
	}
	return GalleryAlbum{
		ID:          rec.ID(),
		Title:       f.String("title"),
		Description: blocks(f, "description"),
		CoverURL:    cover,
		EventDate:   f.Time("event_date"),
		Order:       f.Order(),
		ItemCount:   len(items),
		Items:       items,
	}
}

func (n Normalizer) GalleryAlbums(v any) []GalleryAlbum {
	albums := each(v, func(r Record) (GalleryAlbum, bool) {
		return n.GalleryAlbum(r), true
	})
	sortByOrder(albums, func(a GalleryAlbum) int { return a.Order })
	return albums
}

func (n Normalizer) StaffMember(rec Record) StaffMember {
	f := rec.Fields()
	return StaffMember{
		ID:        rec.ID(),
		FullName:  f.String("full_name", "name"),
		JobTitle:  f.String("job_title"),
		PhotoURL:  n.Media.URL(f.Raw("photo")),
		Biography: blocks(f, "biography"),
		Email:     f.String("email"),
		Phone:     f.String("phone"),
		Order:     f.Order(),
	}
}

// staffRelation resolves a to-one staff relation such as a head of department.
func (n Normalizer) staffRelation(v any) *StaffMember {
	rec, ok := Relation(v)
	if !ok {
		return nil
	}
	m := n.StaffMember(rec)
	if m.FullName == "" {
		return nil
	}
	return &m
}

func (n Normalizer) StaffCategories(v any) []StaffCategory {
	return each(v, func(r Record) (StaffCategory, bool) {
		f := r.Fields()
		members := each(f.Raw("staff_members"), func(m Record) (StaffMember, bool) {
			return n.StaffMember(m), true
		})
		sortByOrder(members, func(m StaffMember) int { return m.Order })
		return StaffCategory{
			ID:          r.ID(),
			Name:        f.String("name"),
			Description: blocks(f, "description"),
			Members:     members,
		}, true
	})
}

func (n Normalizer) Departments(v any) []Department {
	depts := each(v, func(r Record) (Department, bool) {
		f := r.Fields()
		return Department{
			ID:          r.ID(),
			Name:        f.String("name"),
			Description: blocks(f, "description"),
			Head:        n.staffRelation(f.Raw("hod", "head")),
			Order:       f.Order(),
		}, true
	})
	sortByOrder(depts, func(d Department) int { return d.Order })
	return depts
}

func (n Normalizer) Pathways(v any) []Pathway {
	pathways := each(v, func(r Record) (Pathway, bool) {
		f := r.Fields()
		return Pathway{
			ID:          r.ID(),
			Name:        f.String("name"),
			Description: blocks(f, "description"),
			Order:       f.Order(),
		}, true
	})
	sortByOrder(pathways, func(p Pathway) int { return p.Order })
	return pathways
}

// relationName is the name field of a to-one relation, or "".
func relationName(v any) string {
	rec, ok := Relation(v)
	if !ok {
		return ""
	}
	return rec.Fields().String("name")
}

func (n Normalizer) Subjects(v any) []Subject {
	subjects := each(v, func(r Record) (Subject, bool) {
		f := r.Fields()
		return Subject{
			ID:          r.ID(),
			Name:        f.String("name"),
			Description: blocks(f, "description"),
			Department:  relationName(f.Raw("department")),
			Pathway:     relationName(f.Raw("pathway")),
			Order:       f.Order(),
		}, true
	})
	sortByOrder(subjects, func(s Subject) int { return s.Order })
	return subjects
}

// AdmissionsPage always returns a page; the title defaults to "Admissions".
func (n Normalizer) AdmissionsPage(v any) AdmissionsPage {
	page := AdmissionsPage{Title: "Admissions"}
	rec, ok := Relation(v)
	if !ok {
		return page
	}
	f := rec.Fields()
	if title := f.String("title"); title != "" {
		page.Title = title
	}
	page.Introduction = blocks(f, "introduction")
	page.Process = blocks(f, "process")
	page.ContactInfo = blocks(f, "contact_info")
	return page
}

// AdmissionRequirements drops records without a title.
func (n Normalizer) AdmissionRequirements(v any) []AdmissionRequirement {
	reqs := each(v, func(r Record) (AdmissionRequirement, bool) {
		f := r.Fields()
		title := f.String("title")
		if title == "" {
			return AdmissionRequirement{}, false
		}
		return AdmissionRequirement{
			ID:          r.ID(),
			Title:       title,
			Description: blocks(f, "description"),
			Order:       f.Order(),
		}, true
	})
	sortByOrder(reqs, func(r AdmissionRequirement) int { return r.Order })
	return reqs
}

func (n Normalizer) Clubs(v any) []Club {
	clubs := each(v, func(r Record) (Club, bool) {
		f := r.Fields()
		name := f.String("name")
		return Club{
			ID:          r.ID(),
			Name:        name,
			Slug:        ResolveSlug(f.String("slug"), name, "club", r.ID()),
			Description: blocks(f, "description"),
			ImageURL:    n.Media.URL(f.Raw("image", "logo")),
			Patron:      n.staffRelation(f.Raw("patron")),
			Order:       f.Order(),
		}, true
	})
	sortByOrder(clubs, func(c Club) int { return c.Order })
	return clubs
}
