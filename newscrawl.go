// Package newscrawl collects news articles from an RSS news portal and a
// JavaScript-rendered discussion forum, normalizes them into NewsRecord
// values, and persists each run to a JSON file and a document store.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, gofeed/, mongo/).
package newscrawl
