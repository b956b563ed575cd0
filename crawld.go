// Package crawld implements a polite, resumable terminal web crawler.
// Seed URLs are fetched by a pool of workers that extract links from HTML
// pages and sitemap documents, feeding newly discovered URLs back into a
// durable frontier so that crawl progress survives restarts. Operators can
// pause and resume work by exact URL, URL prefix, or domain while workers
// are running.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, etree/, goquery/).
package crawld
