package lifecycle

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/opsdesk/opsdesk/internal/model"
)

// The note log is a single text field holding one entry per line. Each line
// is `title|body`; status changes write a title of the form
// `Status: <stage title> (<timestamp>)`. The field is append-only: encoding
// never rewrites prior lines, so decoding stays compatible with entries
// written by any previous version of the format.
const (
	noteSeparator       = "|"
	statusTitlePrefix   = "Status:"
	noteTimestampLayout = "02.01.2006 15:04"
)

// NoteEntry is one decoded line of an order's note log.
type NoteEntry struct {
	Title string
	Body  string
	// StatusChange marks entries written by a status transition, as opposed
	// to free-standing notes.
	StatusChange bool
}

// DecodeNoteLog splits a note log text into its entries, oldest first.
// Empty lines are dropped. A line without the separator decodes as a free
// note titled "Entry N" with the whole line as body (legacy format, no
// timestamp recoverable). Decoding the same text always yields the same
// entries.
func DecodeNoteLog(text string) []NoteEntry {
	var entries []NoteEntry
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		title, body, found := strings.Cut(line, noteSeparator)
		if !found {
			entries = append(entries, NoteEntry{
				Title: fmt.Sprintf("Entry %d", len(entries)+1),
				Body:  line,
			})
			continue
		}

		entries = append(entries, NoteEntry{
			Title:        title,
			Body:         body,
			StatusChange: strings.HasPrefix(title, statusTitlePrefix),
		})
	}

	return entries
}

// lineBreakRun matches a line break and the whitespace hugging it. Line
// breaks are the entry separator of the log, so they cannot survive inside
// a single entry's text.
var lineBreakRun = regexp.MustCompile(`[ \t]*\r?\n\s*`)

// AppendNote returns the note log with one new trailing line recording a
// note entered during a transition to stage. Prior lines are never touched.
// An empty (or blank) note returns the log unchanged: pure status changes
// leave no empty lines behind. Line breaks inside the note or the actor
// name are flattened to spaces so the result is always exactly one line.
func AppendNote(existing string, stage Stage, note string, actor model.Actor, now time.Time) string {
	note = strings.TrimSpace(note)
	if note == "" {
		return existing
	}

	body := note
	if actor.DisplayName != "" {
		body = fmt.Sprintf("%s — %s", note, actor.DisplayName)
	}
	body = lineBreakRun.ReplaceAllString(body, " ")

	line := fmt.Sprintf("%s %s (%s)%s%s",
		statusTitlePrefix, stage.Title, now.Format(noteTimestampLayout), noteSeparator, body)

	if existing == "" {
		return line
	}

	return existing + "\n" + line
}
