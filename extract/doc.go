// Package extract provides the text-pattern utilities for the snippet
// validation pipeline: locating delimited code blocks inside a free-text
// assistant response, and formatting a short fault summary for a unit
// that raised during execution.
//
// Both operations are pure functions over strings. Blocks performs no
// validation of the extracted text; whether a block parses or runs is a
// runtime concern handled by the check package.
package extract
