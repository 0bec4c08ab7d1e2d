// Package urlutil provides URL canonicalization for link identity.
//
// Every URL stored in the registry passes through Normalize first, so
// the rest of the application can compare URLs with plain string
// equality. Resolve combines relative-link resolution with the same
// normalization for links lifted out of HTML.
package urlutil
