// Package batch runs one tool operation over several items and reports
// partial failures.
//
// Tools that accept a list, such as loading several schedule files at once,
// parse it with ParseList, run each item through Process and return the
// JSON produced by Format.
package batch
