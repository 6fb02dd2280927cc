package ui

import (
	"github.com/desertthunder/songrec/internal/models"
	"github.com/desertthunder/songrec/internal/search"
	"github.com/desertthunder/songrec/internal/tasks"
)

// searchResultMsg carries one pipeline render into the update loop.
type searchResultMsg search.Result[models.Song]

// recommendRun is one in-flight recommendation fetch.
type recommendRun struct {
	seed     string
	progress chan tasks.ProgressUpdate
	done     chan recommendDoneMsg
}

type recommendProgressMsg struct {
	run    *recommendRun
	update tasks.ProgressUpdate
}

type recommendDoneMsg struct {
	run   *recommendRun
	songs []models.Song
	err   error
}

// statusMsg reports the outcome of a side effect (opening a link, copying to the clipboard).
type statusMsg struct {
	text string
	err  error
}
