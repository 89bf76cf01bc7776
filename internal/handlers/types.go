package handlers

import (
	"statehouse_site/internal/content"
)

// Breadcrumb represents a navigation trail
type Breadcrumb struct {
	Title string
	URL   string
}

// Refresh drives the auto-refresh banner shown while the CMS is cold.
type Refresh struct {
	Enabled      bool
	DelaySeconds int
}

// PageData represents the common data structure passed to templates
type PageData struct {
	Title       string
	Description string
	ActiveNav   string
	Breadcrumbs []Breadcrumb
	SiteName    string
	Footer      content.SchoolProfile
	HasFooter   bool
	Refresh     Refresh
	Data        any // Page-specific data
}
