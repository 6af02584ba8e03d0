package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/langcoach/internal/screen"
)

// fakeScreen records Init calls and the messages it is given.
type fakeScreen struct {
	title string
	inits int
	inbox []tea.Msg
}

func (s *fakeScreen) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.inbox = append(s.inbox, msg)
	return s, nil
}
func (s *fakeScreen) View(int, int) string { return s.title }
func (s *fakeScreen) Title() string        { return s.title }

func titles(r *Router) []string {
	out := make([]string, len(r.stack))
	for i, s := range r.stack {
		out[i] = s.Title()
	}
	return out
}

// resume runs cmd and delivers its ResumedMsg to the new top screen.
func resume(t *testing.T, r *Router, cmd tea.Cmd) ResumedMsg {
	t.Helper()
	require.NotNil(t, cmd, "expected a resume command")
	msg, ok := cmd().(ResumedMsg)
	require.True(t, ok)
	r.Update(msg)
	return msg
}

func TestQuizRoundTrip(t *testing.T) {
	form := &fakeScreen{title: "New Quiz"}
	r := New(form)

	quiz := &fakeScreen{title: "Quiz"}
	r.Update(PushScreenMsg{Screen: quiz})
	assert.Equal(t, 1, quiz.inits)

	results := &fakeScreen{title: "Results"}
	r.Update(ReplaceScreenMsg{Screen: results})
	assert.Equal(t, []string{"New Quiz", "Results"}, titles(r))
	assert.Equal(t, 1, results.inits)

	msg := resume(t, r, r.Update(PopToRootMsg{}))
	assert.Equal(t, []string{"New Quiz"}, titles(r))
	assert.Equal(t, []string{"Results"}, msg.Closed)
	assert.Equal(t, []tea.Msg{msg}, form.inbox)
}

func TestPopToRootListsClosedTopmostFirst(t *testing.T) {
	r := New(&fakeScreen{title: "New Quiz"})
	r.Push(&fakeScreen{title: "History"})
	r.Push(&fakeScreen{title: "Results"})

	msg := resume(t, r, r.PopToRoot())
	assert.Equal(t, []string{"Results", "History"}, msg.Closed)
	assert.Equal(t, 1, r.Depth())
}

func TestPopResumesScreenBelow(t *testing.T) {
	form := &fakeScreen{title: "New Quiz"}
	r := New(form)
	r.Push(&fakeScreen{title: "Favorites"})

	msg := resume(t, r, r.Update(PopScreenMsg{}))
	assert.Equal(t, []string{"Favorites"}, msg.Closed)
	assert.Same(t, form, r.Active())
	assert.Len(t, form.inbox, 1)
}

func TestRootIsNeverPopped(t *testing.T) {
	r := New(&fakeScreen{title: "New Quiz"})
	assert.Nil(t, r.Pop())
	assert.Nil(t, r.PopToRoot())
	assert.Equal(t, 1, r.Depth())
}

func TestReplaceRoot(t *testing.T) {
	welcome := &fakeScreen{title: ""}
	r := New(welcome)

	form := &fakeScreen{title: "New Quiz"}
	r.Replace(form)
	assert.Equal(t, 1, r.Depth())
	assert.Same(t, form, r.Active())
	assert.Equal(t, 1, form.inits)
}

func TestOtherMessagesGoToActiveScreen(t *testing.T) {
	form := &fakeScreen{title: "New Quiz"}
	r := New(form)
	quiz := &fakeScreen{title: "Quiz"}
	r.Push(quiz)

	key := tea.KeyPressMsg{Code: 'a', Text: "a"}
	r.Update(key)
	assert.Equal(t, []tea.Msg{key}, quiz.inbox)
	assert.Empty(t, form.inbox)
	assert.Equal(t, "Quiz", r.View(80, 24))
}

func TestEmptyRouter(t *testing.T) {
	r := &Router{}
	assert.Nil(t, r.Active())
	assert.Nil(t, r.Update(tea.KeyPressMsg{}))
	assert.Empty(t, r.View(80, 24))
}
