// Package calendarfile reads and writes one user's weekly schedule.
//
// Three encodings are supported and picked by file extension:
//
//	.xml          <schedule id="..."> documents with <event> children
//	.yaml, .yml   a flat list of events under the owning user
//	.ics          iCalendar, one VEVENT per event on a fixed reference week
//
// Save writes through a temporary file in the target directory and renames it
// into place, so readers never observe a partially written schedule.
package calendarfile
