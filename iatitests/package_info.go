// Package iatitests contains the consistency checks that are run against the IATI websites.
//
// Each suite declares the pages and API endpoints it needs as a loader.RequestSet, and a list
// of checks. A check asks for values through the helpers on T, which load each page at most
// once per suite run and extract numbers or links from it, and then asserts a relationship
// between those values: a minimum, an exact match between two pages of the same site, a match
// within a tolerance between two independently updated sites, or the presence of a link.
package iatitests
