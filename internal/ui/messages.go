package ui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SalisMR/fuscao-frontend/internal/api"
	"github.com/SalisMR/fuscao-frontend/internal/report"
	pkgerrors "github.com/SalisMR/fuscao-frontend/pkg/errors"
)

// Completion messages for asynchronous API calls. Each carries enough
// context for the receiving screen to decide whether the response is
// still relevant.

// searchResultMsg carries catalog results keyed by the query that
// produced them so late responses for superseded queries can be
// dropped.
type searchResultMsg struct {
	query string
	items []api.Item
	err   error
}

type loginResultMsg struct {
	result *api.LoginResult
	err    error
}

type submitResultMsg struct {
	comanda *api.Comanda
	err     error
}

type dashboardMsg struct {
	dashboard *api.Dashboard
	err       error
}

type inventoryMsg struct {
	items   []api.Item
	topSold []report.SoldItem
	err     error
}

type itemSavedMsg struct {
	err error
}

type usersMsg struct {
	users []api.User
	err   error
}

type userSavedMsg struct {
	err error
}

type reportMsg struct {
	report    *api.DetailedReport
	employees []api.User
	err       error
}

type comandaDeletedMsg struct {
	id  string
	err error
}

type pdfSavedMsg struct {
	path string
	err  error
}

// statusMsg updates the status bar; statusFadeMsg clears it after a
// few seconds. Both carry a sequence number so a fade scheduled by an
// earlier message cannot clear a newer one.
type statusMsg struct {
	text    string
	isError bool
	seq     int64
}

type statusFadeMsg struct {
	seq int64
}

const statusFadeDelay = 4 * time.Second

var statusSeq atomic.Int64

func status(text string, isError bool) tea.Cmd {
	seq := statusSeq.Add(1)
	return tea.Batch(
		func() tea.Msg { return statusMsg{text: text, isError: isError, seq: seq} },
		tea.Tick(statusFadeDelay, func(time.Time) tea.Msg { return statusFadeMsg{seq: seq} }),
	)
}

// statusFromError renders an error in the status bar using the typed
// taxonomy's user message when present.
func statusFromError(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	if typed := pkgerrors.As(err); typed != nil {
		return status(typed.UserMessage(), true)
	}
	return status(err.Error(), true)
}
