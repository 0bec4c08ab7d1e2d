// Package model defines the core data types shared across the
// application: crawl jobs, discovered link nodes, link kinds, and
// filter rules.
//
// The types here are plain data carriers. Persistence lives in the
// registry package and mutation policy in the scheduler; keeping model
// free of behavior avoids import cycles between them.
package model
