package site

import "statehouse_site/internal/cms"

// CMS requests issued by the pages. Pages that need the same data share a
// request so they share its cache entry.
var (
	profileRequest = cms.Request{
		Path:  "/about-the-school",
		Query: cms.NewQuery().Populate("*"),
	}
	announcementsRequest = cms.Request{
		Path:  "/announcements",
		Query: cms.NewQuery().Populate("*").Sort("Date:desc").Filter("Published", "$eq", "true"),
	}
	albumsRequest = cms.Request{
		Path:  "/gallery-albums",
		Query: cms.NewQuery().Populate("*").Sort("order:asc", "event_date:desc"),
	}
	albumDetailRequest = cms.Request{
		Path:  "/gallery-albums",
		Query: cms.NewQuery().PopulateDeep("gallery_items"),
	}
	staffRequest = cms.Request{
		Path:  "/staff-categories",
		Query: cms.NewQuery().PopulateDeep("staff_members"),
	}
	departmentsRequest = cms.Request{
		Path:  "/academic-departments",
		Query: cms.NewQuery().PopulateDeep("hod").Sort("order:asc"),
	}
	pathwaysRequest = cms.Request{
		Path:  "/cbc-pathways",
		Query: cms.NewQuery().Populate("*").Sort("order:asc"),
	}
	subjectsRequest = cms.Request{
		Path:  "/learning-areas-subjects",
		Query: cms.NewQuery().Populate("*").Sort("order:asc"),
	}
	admissionsRequest = cms.Request{
		Path:  "/admissions-page",
		Query: cms.NewQuery().Populate("*"),
	}
	requirementsRequest = cms.Request{
		Path:  "/admission-requirements",
		Query: cms.NewQuery().Populate("*").Sort("order:asc"),
	}
	clubsRequest = cms.Request{
		Path:  "/clubs",
		Query: cms.NewQuery().Populate("*").Sort("order:asc"),
	}
)

// Requests lists every CMS request the pages issue.
func Requests() []cms.Request {
	return []cms.Request{
		profileRequest,
		announcementsRequest,
		albumsRequest,
		albumDetailRequest,
		staffRequest,
		departmentsRequest,
		pathwaysRequest,
		subjectsRequest,
		admissionsRequest,
		requirementsRequest,
		clubsRequest,
	}
}
