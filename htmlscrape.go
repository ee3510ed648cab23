// Package htmlscrape fetches a single web page, classifies its text into
// content and boilerplate blocks, and collects the anchor links it points to.
//
// This package contains domain types, interfaces and the pure assembly and
// presentation logic. Implementations live in subdirectories named after their
// primary dependency (e.g., http/, trafilatura/, goquery/, rod/).
package htmlscrape
