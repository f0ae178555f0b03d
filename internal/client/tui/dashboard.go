package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/openticket/openticket/internal/client/client"
	"github.com/openticket/openticket/internal/client/models"
	"github.com/openticket/openticket/internal/client/panels"
	"github.com/openticket/openticket/internal/client/services"
)

const newTicketPanel = "new-ticket"

func commentPanelID(ticketID int32) string { return fmt.Sprintf("comment-%d", ticketID) }
func labelPanelID(ticketID int32) string   { return fmt.Sprintf("label-%d", ticketID) }

func editPanelID(ticketID, commentID int32) string {
	return fmt.Sprintf("edit-%d-%d", ticketID, commentID)
}

// parseEditPanelID reads the ticket and comment ids out of "edit-12-3".
func parseEditPanelID(id string) (int32, int32, bool) {
	rest, ok := strings.CutPrefix(id, "edit-")
	if !ok {
		return 0, 0, false
	}
	t, c, ok := strings.Cut(rest, "-")
	if !ok {
		return 0, 0, false
	}
	ticketID, err := strconv.ParseInt(t, 10, 32)
	if err != nil {
		return 0, 0, false
	}
	commentID, err := strconv.ParseInt(c, 10, 32)
	if err != nil {
		return 0, 0, false
	}
	return int32(ticketID), int32(commentID), true
}

// parsePanelID splits "comment-12" into ("comment", 12).
func parsePanelID(id string) (string, int32) {
	kind, rest, found := strings.Cut(id, "-")
	if !found || id == newTicketPanel {
		return id, 0
	}
	n, err := strconv.ParseInt(rest, 10, 32)
	if err != nil {
		return id, 0
	}
	return kind, int32(n)
}

type ticketDetail struct {
	ticket   models.Ticket
	comments []models.Comment
}

// dashboard is the authenticated branch: ticket list, ticket detail and the
// panel stack.
type dashboard struct {
	ctx  context.Context
	svc  services.TicketService
	keys KeyMap
	user models.User

	tickets []models.Ticket
	cursor  int
	loading bool

	search    textinput.Model
	searching bool
	query     string

	detail        *ticketDetail
	commentCursor int

	stack *panels.Stack
	forms map[string]*form

	// assignments holds the assignment made to the user in this session,
	// by ticket id, so that the assign key can release it again.
	assignments map[int32]int32

	// confirm runs when the user answers y to the pending question.
	confirm tea.Cmd
	notice  string
	err     string

	// expired is set when the backend rejected the session.
	expired bool
}

func newDashboard(ctx context.Context, svc services.TicketService, keys KeyMap, user models.User) *dashboard {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "words label:bug,ui"

	return &dashboard{
		ctx:    ctx,
		svc:    svc,
		keys:   keys,
		user:   user,
		search: search,
		stack:  panels.NewStack(),
		forms:  make(map[string]*form),

		assignments: make(map[int32]int32),
	}
}

func (d *dashboard) load() tea.Cmd {
	d.loading = true
	ctx, svc, query := d.ctx, d.svc, d.query
	return func() tea.Msg {
		tickets, err := svc.List(ctx, query)
		return ticketsLoadedMsg{tickets: tickets, err: err}
	}
}

func (d *dashboard) loadDetail(id int32) tea.Cmd {
	ctx, svc := d.ctx, d.svc
	return func() tea.Msg {
		ticket, comments, err := svc.Get(ctx, id)
		return detailLoadedMsg{ticket: ticket, comments: comments, err: err}
	}
}

func (d *dashboard) fail(err error) {
	if errors.Is(err, client.ErrUnauthorized) {
		d.expired = true
	}
	d.notice = ""
	d.err = errorText(err)
}

// finishPanel settles the result of a panel submission. The panel is closed
// on success and shows the error otherwise, but only while f is still the
// form mounted under id; a result for a closed or reopened panel goes to the
// status line. It reports whether the submission succeeded.
func (d *dashboard) finishPanel(id string, f *form, err error) bool {
	live := f != nil && d.forms[id] == f
	if err != nil {
		if !live {
			d.fail(err)
			return false
		}
		if errors.Is(err, client.ErrUnauthorized) {
			d.expired = true
		}
		f.fail(err)
		return false
	}
	if live {
		d.closePanel(id)
	}
	return true
}

func (d *dashboard) succeed(notice string) {
	d.err = ""
	d.notice = notice
}

// current is the ticket the ticket-scoped keys act on: the open detail, or
// the highlighted row.
func (d *dashboard) current() (models.Ticket, bool) {
	if d.detail != nil {
		return d.detail.ticket, true
	}
	if d.cursor >= 0 && d.cursor < len(d.tickets) {
		return d.tickets[d.cursor], true
	}
	return models.Ticket{}, false
}

func (d *dashboard) ticketByID(id int32) (models.Ticket, bool) {
	if d.detail != nil && d.detail.ticket.ID == id {
		return d.detail.ticket, true
	}
	for _, t := range d.tickets {
		if t.ID == id {
			return t, true
		}
	}
	return models.Ticket{}, false
}

func (d *dashboard) replaceTicket(t models.Ticket) {
	for i := range d.tickets {
		if d.tickets[i].ID == t.ID {
			d.tickets[i] = t
		}
	}
	if d.detail != nil && d.detail.ticket.ID == t.ID {
		d.detail.ticket = t
	}
}

// selectedComment is the highlighted comment of the open ticket.
func (d *dashboard) selectedComment() (models.Comment, bool) {
	if d.detail == nil || d.commentCursor < 0 || d.commentCursor >= len(d.detail.comments) {
		return models.Comment{}, false
	}
	return d.detail.comments[d.commentCursor], true
}

func (d *dashboard) ask(question string, cmd tea.Cmd) {
	d.err = ""
	d.notice = question
	d.confirm = cmd
}

func (d *dashboard) openPanel(id string) {
	if _, ok := d.forms[id]; !ok {
		d.forms[id] = d.newPanelForm(id)
	}
	d.stack.Create(id)
}

func (d *dashboard) closePanel(id string) {
	d.stack.Close(id)
	delete(d.forms, id)
}

func (d *dashboard) newPanelForm(id string) *form {
	if ticketID, commentID, ok := parseEditPanelID(id); ok {
		f := newForm(fmt.Sprintf("Edit comment on #%d", ticketID), false,
			fieldSpec{label: "Comment", placeholder: "at least 10 characters"},
		)
		if c, ok := d.selectedComment(); ok && c.ID == commentID {
			f.inputs[0].SetValue(c.Content)
			f.inputs[0].CursorEnd()
		}
		f.hint = "enter: save  tab: next panel  C-w: minimize  esc: close"
		return f
	}

	kind, ticketID := parsePanelID(id)
	var f *form
	switch kind {
	case "comment":
		f = newForm(fmt.Sprintf("Comment on #%d", ticketID), false,
			fieldSpec{label: "Comment", placeholder: "at least 10 characters"},
		)
	case "label":
		f = newForm(fmt.Sprintf("Labels for #%d", ticketID), false,
			fieldSpec{label: "Labels", placeholder: "bug, ui"},
		)
	default:
		f = newForm("New ticket", false,
			fieldSpec{label: "Title", placeholder: "3 to 70 characters", limit: 70},
			fieldSpec{label: "Description", placeholder: "at least 10 characters"},
			fieldSpec{label: "Labels", placeholder: "bug, ui"},
		)
	}
	f.hint = "enter: next/submit  tab: next panel  C-w: minimize  esc: close"
	return f
}

func (d *dashboard) submitPanel(id string, f *form) tea.Cmd {
	ctx, svc := d.ctx, d.svc

	if ticketID, commentID, ok := parseEditPanelID(id); ok {
		req := services.CommentForm{Content: f.value(0)}
		return func() tea.Msg {
			comment, err := svc.EditComment(ctx, ticketID, commentID, req)
			return commentEditedMsg{panelID: id, form: f, ticketID: ticketID, comment: comment, err: err}
		}
	}

	kind, ticketID := parsePanelID(id)
	switch kind {
	case "comment":
		req := services.CommentForm{Content: f.value(0)}
		return func() tea.Msg {
			_, err := svc.Comment(ctx, ticketID, req)
			return commentAddedMsg{panelID: id, form: f, ticketID: ticketID, err: err}
		}
	case "label":
		ticket, ok := d.ticketByID(ticketID)
		if !ok {
			f.fail(fmt.Errorf("ticket #%d is no longer listed", ticketID))
			return nil
		}
		labels := f.value(0)
		return func() tea.Msg {
			updated, err := svc.AddLabels(ctx, ticket, labels)
			return labelsAddedMsg{panelID: id, form: f, ticket: updated, err: err}
		}
	default:
		req := services.TicketForm{Title: f.value(0), Description: f.value(1), Labels: f.value(2)}
		return func() tea.Msg {
			ticket, err := svc.Create(ctx, req)
			return ticketCreatedMsg{panelID: id, form: f, ticket: ticket, err: err}
		}
	}
}

func (d *dashboard) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ticketsLoadedMsg:
		d.loading = false
		if msg.err != nil {
			d.fail(msg.err)
			return nil
		}
		d.tickets = msg.tickets
		if d.cursor >= len(d.tickets) {
			d.cursor = max(len(d.tickets)-1, 0)
		}
		return nil

	case detailLoadedMsg:
		if msg.err != nil {
			d.fail(msg.err)
			return nil
		}
		if d.detail == nil || d.detail.ticket.ID != msg.ticket.ID {
			d.commentCursor = 0
		}
		d.detail = &ticketDetail{ticket: msg.ticket, comments: msg.comments}
		if d.commentCursor >= len(msg.comments) {
			d.commentCursor = max(len(msg.comments)-1, 0)
		}
		return nil

	case ticketCreatedMsg:
		if !d.finishPanel(msg.panelID, msg.form, msg.err) {
			return nil
		}
		d.succeed(fmt.Sprintf("Ticket #%d created", msg.ticket.ID))
		return d.load()

	case commentAddedMsg:
		if !d.finishPanel(msg.panelID, msg.form, msg.err) {
			return nil
		}
		d.succeed(fmt.Sprintf("Comment added to #%d", msg.ticketID))
		if d.detail != nil && d.detail.ticket.ID == msg.ticketID {
			return d.loadDetail(msg.ticketID)
		}
		return nil

	case commentEditedMsg:
		if !d.finishPanel(msg.panelID, msg.form, msg.err) {
			return nil
		}
		if d.detail != nil && d.detail.ticket.ID == msg.ticketID {
			for i := range d.detail.comments {
				if d.detail.comments[i].ID == msg.comment.ID {
					d.detail.comments[i].Content = msg.comment.Content
				}
			}
		}
		d.succeed(fmt.Sprintf("Comment on #%d updated", msg.ticketID))
		return nil

	case commentDeletedMsg:
		if msg.err != nil {
			d.fail(msg.err)
			return nil
		}
		d.closePanel(editPanelID(msg.ticketID, msg.commentID))
		d.succeed(fmt.Sprintf("Comment deleted from #%d", msg.ticketID))
		if d.detail != nil && d.detail.ticket.ID == msg.ticketID {
			return d.loadDetail(msg.ticketID)
		}
		return nil

	case assignedMsg:
		if msg.err != nil {
			d.fail(msg.err)
			return nil
		}
		d.assignments[msg.ticketID] = msg.assignment.ID
		d.succeed(fmt.Sprintf("Ticket #%d assigned to you", msg.ticketID))
		return nil

	case unassignedMsg:
		if msg.err != nil {
			d.fail(msg.err)
			return nil
		}
		delete(d.assignments, msg.ticketID)
		d.succeed(fmt.Sprintf("Ticket #%d released", msg.ticketID))
		return nil

	case labelsAddedMsg:
		if !d.finishPanel(msg.panelID, msg.form, msg.err) {
			return nil
		}
		d.replaceTicket(msg.ticket)
		d.succeed(fmt.Sprintf("Labels of #%d updated", msg.ticket.ID))
		return nil

	case ticketDeletedMsg:
		if msg.err != nil {
			d.fail(msg.err)
			return nil
		}
		kept := d.tickets[:0]
		for _, t := range d.tickets {
			if t.ID != msg.id {
				kept = append(kept, t)
			}
		}
		d.tickets = kept
		if d.cursor >= len(d.tickets) {
			d.cursor = max(len(d.tickets)-1, 0)
		}
		if d.detail != nil && d.detail.ticket.ID == msg.id {
			d.detail = nil
		}
		d.closePanel(commentPanelID(msg.id))
		d.closePanel(labelPanelID(msg.id))
		d.succeed(fmt.Sprintf("Ticket #%d deleted", msg.id))
		return nil

	case tea.KeyMsg:
		return d.handleKey(msg)
	}
	return nil
}

// idle reports whether plain letter keys are free for dashboard commands.
func (d *dashboard) idle() bool {
	_, panelOpen := d.stack.Active()
	return !panelOpen && !d.searching && d.confirm == nil
}

func (d *dashboard) handleKey(msg tea.KeyMsg) tea.Cmd {
	if active, ok := d.stack.Active(); ok {
		switch {
		case key.Matches(msg, d.keys.NextPanel):
			d.cyclePanel(active.ID)
			return nil
		case key.Matches(msg, d.keys.Minimize):
			d.stack.Minimize(active.ID)
			return nil
		case key.Matches(msg, d.keys.ClosePanel):
			d.closePanel(active.ID)
			return nil
		}
		f := d.forms[active.ID]
		submitted, cmd := f.Update(msg)
		if submitted {
			return d.submitPanel(active.ID, f)
		}
		return cmd
	}

	if d.searching {
		switch msg.String() {
		case "enter":
			d.searching = false
			d.search.Blur()
			d.query = strings.TrimSpace(d.search.Value())
			d.detail = nil
			return d.load()
		case "esc":
			d.searching = false
			d.search.Blur()
			d.search.SetValue(d.query)
			return nil
		}
		var cmd tea.Cmd
		d.search, cmd = d.search.Update(msg)
		return cmd
	}

	if d.confirm != nil {
		cmd := d.confirm
		d.confirm = nil
		d.notice = ""
		if key.Matches(msg, d.keys.Confirm) {
			return cmd
		}
		return nil
	}

	switch {
	case key.Matches(msg, d.keys.Up):
		switch {
		case d.detail != nil:
			if d.commentCursor > 0 {
				d.commentCursor--
			}
		case d.cursor > 0:
			d.cursor--
		}
	case key.Matches(msg, d.keys.Down):
		switch {
		case d.detail != nil:
			if d.commentCursor < len(d.detail.comments)-1 {
				d.commentCursor++
			}
		case d.cursor < len(d.tickets)-1:
			d.cursor++
		}
	case key.Matches(msg, d.keys.Open):
		if t, ok := d.current(); ok {
			return d.loadDetail(t.ID)
		}
	case key.Matches(msg, d.keys.Back):
		d.detail = nil
	case key.Matches(msg, d.keys.Search):
		d.searching = true
		return d.search.Focus()
	case key.Matches(msg, d.keys.Refresh):
		if d.detail != nil {
			return d.loadDetail(d.detail.ticket.ID)
		}
		return d.load()
	case key.Matches(msg, d.keys.NewTicket):
		d.openPanel(newTicketPanel)
	case key.Matches(msg, d.keys.Comment):
		if t, ok := d.current(); ok {
			d.openPanel(commentPanelID(t.ID))
		}
	case key.Matches(msg, d.keys.Label):
		if t, ok := d.current(); ok {
			d.openPanel(labelPanelID(t.ID))
		}
	case key.Matches(msg, d.keys.NextPanel):
		d.cyclePanel("")
	case key.Matches(msg, d.keys.Delete):
		if t, ok := d.current(); ok {
			ctx, svc, id := d.ctx, d.svc, t.ID
			d.ask(fmt.Sprintf("Delete ticket #%d %q? (y/n)", t.ID, t.Title), func() tea.Msg {
				return ticketDeletedMsg{id: id, err: svc.Delete(ctx, id)}
			})
		}
	case key.Matches(msg, d.keys.EditComment):
		if c, ok := d.selectedComment(); ok {
			d.openPanel(editPanelID(d.detail.ticket.ID, c.ID))
		}
	case key.Matches(msg, d.keys.DeleteComment):
		if c, ok := d.selectedComment(); ok {
			ctx, svc, ticketID, commentID := d.ctx, d.svc, d.detail.ticket.ID, c.ID
			d.ask(fmt.Sprintf("Delete comment by %s on #%d? (y/n)", c.CreatedBy.Name, ticketID), func() tea.Msg {
				err := svc.DeleteComment(ctx, ticketID, commentID)
				return commentDeletedMsg{ticketID: ticketID, commentID: commentID, err: err}
			})
		}
	case key.Matches(msg, d.keys.Assign):
		if t, ok := d.current(); ok {
			return d.toggleAssignment(t.ID)
		}
	}
	return nil
}

// toggleAssignment assigns the ticket to the signed in user, or releases the
// assignment made earlier in this session.
func (d *dashboard) toggleAssignment(ticketID int32) tea.Cmd {
	ctx, svc := d.ctx, d.svc
	if assignmentID, ok := d.assignments[ticketID]; ok {
		return func() tea.Msg {
			return unassignedMsg{ticketID: ticketID, err: svc.Unassign(ctx, ticketID, assignmentID)}
		}
	}
	userID := d.user.ID
	return func() tea.Msg {
		a, err := svc.Assign(ctx, ticketID, userID)
		return assignedMsg{ticketID: ticketID, assignment: a, err: err}
	}
}

// cyclePanel opens the panel after from, or the oldest one when from is
// empty.
func (d *dashboard) cyclePanel(from string) {
	next, ok := d.stack.Next(from)
	if !ok {
		return
	}
	d.stack.Open(next.ID)
}

func (d *dashboard) View(width int) string {
	var b strings.Builder

	if d.searching || d.query != "" {
		b.WriteString(d.search.View())
		b.WriteString("\n\n")
	}

	if d.detail != nil {
		b.WriteString(d.detailView())
	} else {
		b.WriteString(d.tableView(width))
	}

	if bar := d.panelsView(); bar != "" {
		b.WriteString("\n\n")
		b.WriteString(bar)
	}

	b.WriteString("\n\n")
	switch {
	case d.err != "":
		b.WriteString(errorStyle.Render(d.err))
	case d.notice != "":
		b.WriteString(noticeStyle.Render(d.notice))
	case d.loading:
		b.WriteString(helpStyle.Render("loading tickets…"))
	}
	b.WriteString("\n")

	if d.idle() {
		k := d.keys
		if d.detail != nil {
			b.WriteString(helpLine(k.Back, k.Comment, k.EditComment, k.DeleteComment, k.Label, k.Assign, k.Delete, k.Refresh, k.Logout, k.Quit))
		} else {
			b.WriteString(helpLine(k.Up, k.Down, k.Open, k.Search, k.NewTicket, k.Delete, k.NextPanel, k.Logout, k.Quit))
		}
	}
	return b.String()
}

func (d *dashboard) tableView(width int) string {
	if len(d.tickets) == 0 {
		if d.loading {
			return ""
		}
		return helpStyle.Render("No tickets. Press n to open one.")
	}

	titleWidth := max(width-60, 20)
	row := func(title, id, labels, creator, status string) string {
		return fmt.Sprintf("%-*s %-6s %-20s %-16s %-10s",
			titleWidth, truncate(title, titleWidth), id, truncate(labels, 20), truncate(creator, 16), truncate(status, 10))
	}

	lines := []string{labelStyle.Render(row("TITLE", "ID", "LABELS", "CREATED BY", "STATUS"))}
	for i, t := range d.tickets {
		line := row(t.Title, fmt.Sprintf("#%d", t.ID), strings.Join(t.Labels, ","), t.CreatedBy.Name, t.Status)
		if i == d.cursor {
			line = selectedStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (d *dashboard) detailView() string {
	t := d.detail.ticket
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", titleStyle.Render(t.Title), labelStyle.Render(fmt.Sprintf("#%d", t.ID)))
	fmt.Fprintf(&b, "%s\n", labelStyle.Render("by "+t.CreatedBy.Name))
	if len(t.Labels) > 0 {
		tags := make([]string, len(t.Labels))
		for i, l := range t.Labels {
			tags[i] = tagStyle.Render("[" + l + "]")
		}
		b.WriteString(strings.Join(tags, " "))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(t.Description)
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%d comments", len(d.detail.comments))))
	for i, c := range d.detail.comments {
		marker := "  "
		if i == d.commentCursor {
			marker = "> "
		}
		fmt.Fprintf(&b, "\n%s%s %s\n  %s\n", marker, selectedStyle.Render(c.CreatedBy.Name), labelStyle.Render(c.CreatedAt), c.Content)
	}
	return b.String()
}

// panelsView renders the open panel in a box followed by a bar with the
// minimized ones, oldest first.
func (d *dashboard) panelsView() string {
	ordered := d.stack.Ordered()
	if len(ordered) == 0 {
		return ""
	}
	var open string
	var minimized []string
	for _, p := range ordered {
		if p.Status == panels.StatusOpen {
			if f, ok := d.forms[p.ID]; ok {
				open = panelStyle.Render(f.View())
			}
			continue
		}
		minimized = append(minimized, minimizedStyle.Render(p.ID))
	}
	var parts []string
	if open != "" {
		parts = append(parts, open)
	}
	if len(minimized) > 0 {
		parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top, minimized...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
