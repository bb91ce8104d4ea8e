// Package navigation provides utilities for managing navigation state, breadcrumbs and back links.
package navigation

import (
	"net/url"
	"strings"
)

// BreadcrumbItem represents a single breadcrumb link.
type BreadcrumbItem struct {
	Title  string
	URL    string
	Active bool
}

// Context represents the navigation context for a page.
type Context struct {
	ActiveSection string
	ActivePage    string
	Breadcrumbs   []BreadcrumbItem
	PageTitle     string
	// BackURL is the target of the page's back link, empty hides the link.
	BackURL string
}

// NewContext creates a new navigation context.
func NewContext(pageTitle, activeSection, activePage string) *Context {
	return &Context{
		PageTitle:     pageTitle,
		ActiveSection: activeSection,
		ActivePage:    activePage,
		Breadcrumbs:   make([]BreadcrumbItem, 0),
	}
}

// AddBreadcrumb adds a breadcrumb item to the context.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, BreadcrumbItem{
		Title:  title,
		URL:    url,
		Active: active,
	})

	return c
}

// SetBack sets the back link target.
func (c *Context) SetBack(url string) *Context {
	c.BackURL = url
	return c
}

// IsActive checks if the given section and page match the current context.
func (c *Context) IsActive(section, page string) bool {
	return c.ActiveSection == section && c.ActivePage == page
}

// IsSectionActive checks if the given section is active.
func (c *Context) IsSectionActive(section string) bool {
	return c.ActiveSection == section
}

// Back returns the path and query of referer when it points to host, otherwise fallback.
// The current page itself is never a back target.
func Back(referer, host, current, fallback string) string {
	if referer == "" {
		return fallback
	}

	u, err := url.Parse(referer)
	if err != nil || (u.Host != "" && !strings.EqualFold(u.Host, host)) {
		return fallback
	}

	target := u.RequestURI()
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return fallback
	}

	if u.Path == current {
		return fallback
	}

	return target
}
