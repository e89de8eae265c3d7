package bot

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhtran/troly_bot/internal/model"
	"github.com/minhtran/troly_bot/internal/service"
	"github.com/minhtran/troly_bot/internal/state"
)

const (
	testUser int64 = 100
	testChat int64 = 200
)

type sentMessage struct {
	chatID int64
	text   string
}

type fakeTransport struct {
	texts  []sentMessage
	menus  []sentMessage
	photos []sentMessage
}

func (f *fakeTransport) SendText(chatID int64, text string) error {
	f.texts = append(f.texts, sentMessage{chatID, text})
	return nil
}

func (f *fakeTransport) SendTextWithMenu(chatID int64, text string) error {
	f.menus = append(f.menus, sentMessage{chatID, text})
	return nil
}

func (f *fakeTransport) SendPhoto(chatID int64, caption string, _ []byte) error {
	f.photos = append(f.photos, sentMessage{chatID, caption})
	return nil
}

func (f *fakeTransport) lastText(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, f.texts)
	return f.texts[len(f.texts)-1].text
}

type fakeRepo struct {
	notes     []model.NoteRecord
	reminders []model.ReminderRecord
	expenses  []model.ExpenseRecord
	calls     int

	appendErr error
	listRows  []model.ExpenseRecord
}

func (f *fakeRepo) AppendNote(_ context.Context, rec model.NoteRecord) error {
	f.calls++
	if f.appendErr != nil {
		return f.appendErr
	}
	f.notes = append(f.notes, rec)
	return nil
}

func (f *fakeRepo) AppendReminder(_ context.Context, rec model.ReminderRecord) error {
	f.calls++
	if f.appendErr != nil {
		return f.appendErr
	}
	f.reminders = append(f.reminders, rec)
	return nil
}

func (f *fakeRepo) AppendExpense(_ context.Context, rec model.ExpenseRecord) error {
	f.calls++
	if f.appendErr != nil {
		return f.appendErr
	}
	f.expenses = append(f.expenses, rec)
	return nil
}

func (f *fakeRepo) ListExpenses(_ context.Context) ([]model.ExpenseRecord, error) {
	f.calls++
	return f.listRows, nil
}

type fakeCompleter struct {
	answer string
	err    error
	calls  int
}

func (f *fakeCompleter) Complete(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.answer, f.err
}

type testBot struct {
	*Bot
	transport *fakeTransport
	repo      *fakeRepo
	completer *fakeCompleter
	store     *state.MemoryStore
}

func newTestBot() *testBot {
	transport := &fakeTransport{}
	repo := &fakeRepo{}
	completer := &fakeCompleter{answer: "xin chào"}
	store := state.NewMemoryStore()
	return &testBot{
		Bot:       newBot(transport, service.NewJournal(repo), completer, store),
		transport: transport,
		repo:      repo,
		completer: completer,
		store:     store,
	}
}

func TestMenuSelectionArmsWorkflow(t *testing.T) {
	tests := []struct {
		label  string
		mode   model.Mode
		prompt string
	}{
		{noteButton, model.ModeNote, notePrompt},
		{reminderButton, model.ModeReminder, reminderPrompt},
		{expenseButton, model.ModeExpense, expensePrompt},
		{chatButton, model.ModeChat, chatPrompt},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			b := newTestBot()

			require.NoError(t, b.handleText(testUser, testChat, tt.label))

			assert.Equal(t, tt.mode, b.store.Get(testUser))
			assert.Equal(t, tt.prompt, b.transport.lastText(t))
			assert.Zero(t, b.repo.calls, "menu selection performs no side effect")
			assert.Zero(t, b.completer.calls)
		})
	}
}

// A menu selection overrides whatever workflow was in progress, with no
// warning about the abandoned one.
func TestMenuSelectionOverridesPendingWorkflow(t *testing.T) {
	b := newTestBot()
	b.store.Set(testUser, model.ModeReminder)

	require.NoError(t, b.handleText(testUser, testChat, expenseButton))

	assert.Equal(t, model.ModeExpense, b.store.Get(testUser))
	assert.Zero(t, b.repo.calls)
}

func TestNoteWorkflow(t *testing.T) {
	b := newTestBot()
	require.NoError(t, b.handleText(testUser, testChat, noteButton))

	require.NoError(t, b.handleText(testUser, testChat, "nhớ mua sữa"))

	require.Len(t, b.repo.notes, 1)
	assert.Equal(t, "nhớ mua sữa", b.repo.notes[0].Content)
	assert.NotEmpty(t, b.repo.notes[0].Timestamp)
	assert.Equal(t, noteSavedMessage, b.transport.lastText(t))
	assert.Equal(t, model.ModeIdle, b.store.Get(testUser))
}

// A failed note append sends no reply at all; the error surfaces to the
// polling loop instead.
func TestNoteStorageFailurePropagatesSilently(t *testing.T) {
	b := newTestBot()
	b.store.Set(testUser, model.ModeNote)
	b.repo.appendErr = errors.New("auth expired")
	b.transport.texts = nil

	err := b.handleText(testUser, testChat, "nhớ mua sữa")

	require.Error(t, err)
	assert.Empty(t, b.transport.texts, "the user hears nothing for this turn")
	assert.Equal(t, model.ModeIdle, b.store.Get(testUser))
}

func TestReminderWorkflow(t *testing.T) {
	b := newTestBot()
	b.store.Set(testUser, model.ModeReminder)

	require.NoError(t, b.handleText(testUser, testChat, "Gọi khách - 15h"))

	require.Len(t, b.repo.reminders, 1)
	assert.Equal(t, []string{"Gọi khách", "15h"}, b.repo.reminders[0].Fields)
	assert.Equal(t, reminderSavedMessage, b.transport.lastText(t))
	assert.Equal(t, model.ModeIdle, b.store.Get(testUser))
}

func TestReminderSyntaxError(t *testing.T) {
	b := newTestBot()
	b.store.Set(testUser, model.ModeReminder)

	require.NoError(t, b.handleText(testUser, testChat, "không có thời gian"))

	assert.Equal(t, reminderSyntaxMessage, b.transport.lastText(t))
	assert.Zero(t, b.repo.calls, "rejected input never reaches the store")
	assert.Equal(t, model.ModeIdle, b.store.Get(testUser), "input is discarded, not re-prompted")
}

func TestExpenseWorkflow(t *testing.T) {
	b := newTestBot()
	b.store.Set(testUser, model.ModeExpense)

	require.NoError(t, b.handleText(testUser, testChat, "Mua cà phê - 25000 - Linh"))

	require.Len(t, b.repo.expenses, 1)
	assert.Equal(t, []string{"Mua cà phê", "25000", "Linh"}, b.repo.expenses[0].Fields)
	assert.NotEmpty(t, b.repo.expenses[0].Timestamp)
	assert.Equal(t, expenseSavedMessage, b.transport.lastText(t))
	assert.Equal(t, model.ModeIdle, b.store.Get(testUser))
}

// Two fields satisfy the reminder workflow but not the expense one.
func TestExpenseRequiresThreeFields(t *testing.T) {
	b := newTestBot()
	b.store.Set(testUser, model.ModeExpense)

	require.NoError(t, b.handleText(testUser, testChat, "Mua cà phê - 25000"))

	assert.Equal(t, expenseSyntaxMessage, b.transport.lastText(t))
	assert.Zero(t, b.repo.calls)
	assert.Equal(t, model.ModeIdle, b.store.Get(testUser))
}

// Storage failure on a well-formed entry must not masquerade as a syntax
// error.
func TestExpenseStorageFailureReportedDistinctly(t *testing.T) {
	b := newTestBot()
	b.store.Set(testUser, model.ModeExpense)
	b.repo.appendErr = errors.New("quota exceeded")

	require.NoError(t, b.handleText(testUser, testChat, "Mua cà phê - 25000 - Linh"))

	assert.Equal(t, storageErrorMessage, b.transport.lastText(t))
	assert.Equal(t, model.ModeIdle, b.store.Get(testUser))
}

func TestChatWorkflow(t *testing.T) {
	b := newTestBot()
	b.store.Set(testUser, model.ModeChat)

	require.NoError(t, b.handleText(testUser, testChat, "thời tiết hôm nay thế nào?"))

	assert.Equal(t, 1, b.completer.calls)
	assert.Equal(t, assistantReplyPrefix+"xin chào", b.transport.lastText(t))
	assert.Equal(t, model.ModeIdle, b.store.Get(testUser))
}

// An LLM failure becomes chat text; the handler itself reports success.
func TestChatFailureIsFormattedIntoReply(t *testing.T) {
	b := newTestBot()
	b.store.Set(testUser, model.ModeChat)
	b.completer.err = errors.New("connection refused")

	err := b.handleText(testUser, testChat, "câu hỏi")

	require.NoError(t, err)
	reply := b.transport.lastText(t)
	assert.Contains(t, reply, "Lỗi kết nối GPT")
	assert.Contains(t, reply, "connection refused")
	assert.Equal(t, model.ModeIdle, b.store.Get(testUser))
}

func TestIdleUnknownTextChangesNothing(t *testing.T) {
	b := newTestBot()

	require.NoError(t, b.handleText(testUser, testChat, "xin chào bot"))

	assert.Equal(t, invalidCommandMessage, b.transport.lastText(t))
	assert.Equal(t, model.ModeIdle, b.store.Get(testUser))
	assert.Zero(t, b.repo.calls)
	assert.Zero(t, b.completer.calls)
}

// Every completed turn, success or failure, leaves the user idle.
func TestModeIsIdleAfterEveryTurn(t *testing.T) {
	inputs := []struct {
		mode model.Mode
		text string
	}{
		{model.ModeNote, "một ghi chú"},
		{model.ModeReminder, "Gọi khách - 15h"},
		{model.ModeReminder, "thiếu trường"},
		{model.ModeExpense, "Mua cà phê - 25000 - Linh"},
		{model.ModeExpense, "thiếu - trường"},
		{model.ModeChat, "câu hỏi"},
	}

	for _, in := range inputs {
		t.Run(fmt.Sprintf("%s %q", in.mode, in.text), func(t *testing.T) {
			b := newTestBot()
			b.store.Set(testUser, in.mode)

			require.NoError(t, b.handleText(testUser, testChat, in.text))

			assert.Equal(t, model.ModeIdle, b.store.Get(testUser))
		})
	}
}

// The welcome command works before any workflow has ever run and leaves the
// pending mode alone.
func TestStartIsIndependentOfWorkflowState(t *testing.T) {
	b := newTestBot()
	require.NoError(t, b.handleStart(testChat))
	require.Len(t, b.transport.menus, 1)
	assert.Equal(t, welcomeMessage, b.transport.menus[0].text)

	b.store.Set(testUser, model.ModeNote)
	require.NoError(t, b.handleStart(testChat))
	assert.Equal(t, model.ModeNote, b.store.Get(testUser))
}

func TestReport(t *testing.T) {
	t.Run("renders summary with chart", func(t *testing.T) {
		b := newTestBot()
		now := model.Timestamp(time.Now())
		b.repo.listRows = []model.ExpenseRecord{
			{Timestamp: now, Fields: []string{"Cà phê", "25000", "Linh"}},
			{Timestamp: now, Fields: []string{"Ăn trưa", "80000", "Minh"}},
		}

		require.NoError(t, b.handleReport(testChat))

		require.Len(t, b.transport.photos, 1)
		caption := b.transport.photos[0].text
		assert.Contains(t, caption, "Tổng: 105000")
		assert.Contains(t, caption, "Ăn trưa: 80000")
	})

	t.Run("empty month", func(t *testing.T) {
		b := newTestBot()

		require.NoError(t, b.handleReport(testChat))

		assert.Equal(t, reportEmptyMessage, b.transport.lastText(t))
		assert.Empty(t, b.transport.photos)
	})
}
