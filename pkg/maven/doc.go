// Package maven models Maven artifact coordinates and POM descriptors.
//
// It provides coordinate parsing and repository URL mapping, a POM document
// model with property substitution, direct-dependency extraction with scope
// filtering, and an HTTP client for fetching descriptors from a Maven
// repository with caching and retries.
package maven
