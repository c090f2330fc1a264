// Package httputil provides HTTP support shared by repository clients:
// retry with exponential backoff for transient failures, and a file-based
// response cache with TTL expiration.
package httputil
