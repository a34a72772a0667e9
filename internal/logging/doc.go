// Package logging provides a unified logging interface for the bigcalc tool.
// It abstracts the underlying logging implementation, allowing consistent logging
// across components while supporting multiple backends.
//
// The arithmetic engine never logs; orchestration and the application layer
// log task lifecycle events through this package.
package logging
