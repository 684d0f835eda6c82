// Package todo parses, updates, and saves the daily task log.
//
// The log is a plain text file of days, latest first:
//
//	[2024-03-07]
//	- task A
//
//	Done
//	- task 4
//
//	[2024-03-06]
//	Section 1
//	- task 1
//	- task 3
//
//	Done
//
// # Grammar
//
// Every line is classified by its first non-blank character:
//
//   - "[": starts a day; the line must be exactly [YYYY-MM-DD]
//   - "-": a task; the marker and following blanks are stripped
//   - anything else: starts a named section
//
// A day may open directly with task lines. Those tasks belong to the
// anonymous section, whose name is empty. Blank lines carry no meaning.
//
// # Day advancement
//
// Each day starts as a copy of the previous one with its "Done" section
// emptied. AdvanceToToday does this at most once per date, and Add calls it
// before appending a task.
//
// # Saving
//
// Save reloads the file first. Days that only exist on disk are merged into
// the log, a file dated after today is refused with ErrClockSkew, and an
// unchanged log yields SaveUpToDate without writing. There is no file
// locking: two processes saving the same file race and the last save wins.
//
// Dates are calendar dates without a time zone. Every operation that needs
// the current date takes it as a parameter.
package todo
