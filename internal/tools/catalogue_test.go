package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/jan-assistant/internal/domain/document"
	"github.com/janhq/jan-assistant/internal/domain/email"
	"github.com/janhq/jan-assistant/internal/domain/meeting"
	"github.com/janhq/jan-assistant/internal/domain/pizza"
	"github.com/janhq/jan-assistant/internal/domain/question"
	"github.com/janhq/jan-assistant/internal/domain/search"
	"github.com/janhq/jan-assistant/internal/domain/tool"
)

type recordingSender struct {
	sent []email.Message
	err  error
}

func (s *recordingSender) Send(_ context.Context, msg email.Message) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.sent = append(s.sent, msg)
	return fmt.Sprintf("msg_%d", len(s.sent)), nil
}

type stubSearcher struct {
	queries []string
	err     error
}

func (s *stubSearcher) Search(_ context.Context, query string, limit int) ([]search.Result, error) {
	s.queries = append(s.queries, query)
	if s.err != nil {
		return nil, s.err
	}
	out := make([]search.Result, 0, limit)
	for i := 0; i < limit; i++ {
		out = append(out, search.Result{Title: fmt.Sprintf("Result %d", i+1), URL: fmt.Sprintf("https://r%d.test", i+1)})
	}
	return out, nil
}

type stubExtractor map[string]*document.Document

func (s stubExtractor) Extract(_ context.Context, path string) (*document.Document, error) {
	if doc, ok := s[path]; ok {
		return doc, nil
	}
	return nil, fmt.Errorf("PDF file not found: %s", path)
}

type fixture struct {
	reg      *tool.Registry
	sender   *recordingSender
	searcher *stubSearcher
	meetings *meeting.Store
	orders   *pizza.OrderBook
	book     *question.Book
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	catalogue, err := pizza.DefaultCatalogue()
	require.NoError(t, err)

	f := &fixture{
		reg:      tool.NewRegistry(),
		sender:   &recordingSender{},
		searcher: &stubSearcher{},
		meetings: meeting.NewStore(time.UTC),
		orders:   pizza.NewOrderBook(catalogue),
		book:     question.NewBook(),
	}
	require.NoError(t, Register(f.reg, Deps{
		Mailer:    email.NewMailer(f.sender, "me@example.com"),
		Search:    search.NewService(f.searcher),
		Scheduler: f.meetings,
		Location:  time.UTC,
		Orders:    f.orders,
		Documents: document.NewLoader(stubExtractor{
			"report.pdf": {Path: "report.pdf", Pages: []string{"Revenue grew by ten percent. Costs were flat."}},
		}, document.NewStore()),
		Questions: f.book,
	}))
	return f
}

func (f *fixture) call(t *testing.T, name string, args map[string]any) tool.Result {
	t.Helper()
	raw, err := json.Marshal(args)
	require.NoError(t, err)
	res := f.reg.Dispatch(context.Background(), tool.Call{ID: "call_" + name, Name: name, Input: raw})
	require.Equal(t, "call_"+name, res.CallID)
	return res
}

func TestRegister_AllTools(t *testing.T) {
	f := newFixture(t)

	var names []string
	for _, spec := range f.reg.Specs() {
		names = append(names, spec.Name)
	}
	assert.Equal(t, []string{
		"send_email", "send_simple_email",
		"search_web", "get_news", "get_weather", "get_stock_price",
		"schedule_meeting", "list_meetings", "cancel_meeting", "update_meeting", "check_availability",
		"get_pizza_menu", "get_restaurants", "order_pizza", "check_order_status", "list_orders", "cancel_order",
		"read_pdf", "read_multiple_pdfs", "read_pdf_text", "get_pdf_info", "ask_question_about_pdf", "list_loaded_documents",
		"ask_clarifying_question", "ask_personal_information", "ask_preference_question", "ask_confirmation",
		"get_user_response", "list_pending_questions", "get_user_preferences",
	}, names)
}

func TestRegister_SkipsMissingGroups(t *testing.T) {
	reg := tool.NewRegistry()
	require.NoError(t, Register(reg, Deps{Questions: question.NewBook()}))
	assert.Equal(t, 7, reg.Len())
}

func TestEmailTools(t *testing.T) {
	f := newFixture(t)

	res := f.call(t, "send_simple_email", map[string]any{"to": "bob@example.com", "subject": "Hi", "message": "See you"})
	require.False(t, res.IsError, res.Content)
	assert.Equal(t, "Email sent successfully! id=msg_1 to=bob@example.com subject=Hi", res.Content)
	require.Len(t, f.sender.sent, 1)
	assert.Equal(t, "<p>See you</p>", f.sender.sent[0].HTML)
	assert.Equal(t, "See you", f.sender.sent[0].Text)

	res = f.call(t, "send_email", map[string]any{"to": "ann@example.com", "subject": "Report", "body": "Line one<br>Line two"})
	require.False(t, res.IsError, res.Content)
	assert.Equal(t, "Line one\nLine two", f.sender.sent[1].Text)

	res = f.call(t, "send_email", map[string]any{"to": []string{"not-an-address"}, "subject": "x", "body": "y"})
	assert.True(t, res.IsError)
	assert.True(t, strings.HasPrefix(res.Content, "Error sending email: "))

	f.sender.err = email.ErrNotConfigured
	res = f.call(t, "send_simple_email", map[string]any{"to": "bob@example.com", "subject": "Hi", "message": "x"})
	assert.Equal(t, "Error sending email: RESEND_API_KEY not found in environment variables", res.Content)
}

func TestSearchTools(t *testing.T) {
	f := newFixture(t)

	res := f.call(t, "get_news", map[string]any{})
	require.False(t, res.IsError, res.Content)
	assert.Equal(t, "technology news", f.searcher.queries[0])
	assert.Equal(t, 3, strings.Count(res.Content, "URL: "))

	res = f.call(t, "search_web", map[string]any{"query": "golang", "num_results": "2"})
	require.False(t, res.IsError, res.Content)
	assert.Equal(t, 2, strings.Count(res.Content, "URL: "))

	f.searcher.err = errors.New("all search providers failed")
	res = f.call(t, "get_weather", map[string]any{"location": "Paris"})
	assert.Equal(t, "Error getting weather: all search providers failed", res.Content)
}

func TestMeetingTools(t *testing.T) {
	f := newFixture(t)

	res := f.call(t, "schedule_meeting", map[string]any{"title": "Standup", "date": "2025-03-10", "time": "09:00", "duration_minutes": 30})
	require.False(t, res.IsError, res.Content)
	assert.Contains(t, res.Content, "Meeting scheduled successfully!")
	assert.Contains(t, res.Content, "End Time: 09:30")

	res = f.call(t, "schedule_meeting", map[string]any{"title": "Clash", "date": "2025-03-10", "time": "09:15"})
	assert.False(t, res.IsError)
	assert.Equal(t, "Conflict detected! Meeting 'Standup' is already scheduled at 2025-03-10 09:00", res.Content)
	assert.Equal(t, 1, f.meetings.Len())

	res = f.call(t, "schedule_meeting", map[string]any{"title": "Bad", "date": "10/03/2025", "time": "9am"})
	assert.False(t, res.IsError)
	assert.True(t, strings.HasPrefix(res.Content, "Error parsing date/time: "))

	res = f.call(t, "check_availability", map[string]any{"date": "2025-03-10", "time": "09:30"})
	assert.Equal(t, "Time slot is available on 2025-03-10 at 09:30 for 60 minutes.", res.Content)

	res = f.call(t, "update_meeting", map[string]any{"meeting_id": 1, "time": "11:00"})
	require.False(t, res.IsError, res.Content)
	assert.Contains(t, res.Content, "Time: 11:00")

	res = f.call(t, "update_meeting", map[string]any{"meeting_id": "1", "attendees": "carol@example.com"})
	require.False(t, res.IsError, res.Content)
	assert.Contains(t, res.Content, "Attendees: carol@example.com")

	res = f.call(t, "cancel_meeting", map[string]any{"meeting_id": "42"})
	assert.Equal(t, "Meeting with ID 42 not found.", res.Content)

	res = f.call(t, "cancel_meeting", map[string]any{"meeting_id": 1})
	assert.Equal(t, "Meeting 'Standup' scheduled for 2025-03-10 11:00 has been cancelled.", res.Content)

	res = f.call(t, "list_meetings", map[string]any{})
	assert.Equal(t, "No meetings scheduled.", res.Content)
}

func TestPizzaTools(t *testing.T) {
	f := newFixture(t)

	res := f.call(t, "order_pizza", map[string]any{"pizza_type": "margherita", "quantity": 2})
	require.False(t, res.IsError, res.Content)
	assert.Contains(t, res.Content, "Order ID: #1")
	assert.Contains(t, res.Content, "Pizza: Margherita Pizza (large)")
	assert.Contains(t, res.Content, "Total: $34.17")
	assert.Contains(t, res.Content, "Status: pending")

	res = f.call(t, "order_pizza", map[string]any{"pizza_type": "calzone"})
	assert.False(t, res.IsError)
	assert.True(t, strings.HasPrefix(res.Content, "Error: Pizza type 'calzone' not found. Available types: "))

	res = f.call(t, "check_order_status", map[string]any{"order_id": "1"})
	assert.Contains(t, res.Content, "Order #1 Status")

	res = f.call(t, "check_order_status", map[string]any{"order_id": 9})
	assert.Equal(t, "Order #9 not found.", res.Content)

	res = f.call(t, "cancel_order", map[string]any{"order_id": 1})
	assert.Contains(t, res.Content, "has been cancelled")

	res = f.call(t, "list_orders", nil)
	assert.Equal(t, "No pizza orders found.", res.Content)
}

func TestDocumentTools(t *testing.T) {
	f := newFixture(t)

	res := f.call(t, "ask_question_about_pdf", map[string]any{"question": "What about revenue?"})
	assert.Equal(t, "Error: No PDF files have been loaded. Please use read_pdf or read_multiple_pdfs first.", res.Content)

	res = f.call(t, "read_pdf", map[string]any{"file_path": "missing.pdf"})
	assert.True(t, res.IsError)
	assert.Equal(t, "Error reading PDF: PDF file not found: missing.pdf", res.Content)

	res = f.call(t, "read_pdf", map[string]any{"file_path": "report.pdf"})
	require.False(t, res.IsError, res.Content)
	assert.True(t, strings.HasPrefix(res.Content, "Successfully read PDF: report.pdf"))

	res = f.call(t, "ask_question_about_pdf", map[string]any{"question": "How did revenue change?"})
	assert.Equal(t, "Based on the PDF content, here's what I found:\n\n--- Page 1 ---\nRevenue grew by ten percent", res.Content)

	res = f.call(t, "read_pdf_text", map[string]any{"file_path": "report.pdf"})
	assert.True(t, strings.HasPrefix(res.Content, "Text from report.pdf (pages 1-1):"))

	res = f.call(t, "list_loaded_documents", nil)
	assert.True(t, strings.HasPrefix(res.Content, "Loaded PDF documents:\n- report.pdf ("))
}

func TestQuestionTools(t *testing.T) {
	f := newFixture(t)

	res := f.call(t, "ask_preference_question", map[string]any{"preference_type": "crust", "options": []string{"thin", "deep dish"}})
	require.False(t, res.IsError, res.Content)
	pending := f.book.Pending()
	require.Len(t, pending, 1)
	assert.Contains(t, res.Content, "Question ID: "+pending[0].ID)

	res = f.call(t, "get_user_response", map[string]any{"question_id": pending[0].ID, "response": "2"})
	assert.Equal(t, "✅ Response recorded: 2", res.Content)

	res = f.call(t, "get_user_preferences", nil)
	assert.Equal(t, "🎯 User Preferences:\n\n- crust: deep dish\n", res.Content)

	res = f.call(t, "get_user_response", map[string]any{"question_id": "q_99", "response": "x"})
	assert.Equal(t, "Error: Question ID q_99 not found.", res.Content)

	res = f.call(t, "ask_personal_information", map[string]any{"info_type": "email"})
	assert.Contains(t, res.Content, "This information is required to proceed.")

	res = f.call(t, "ask_preference_question", map[string]any{"preference_type": "crust"})
	assert.True(t, res.IsError)
	assert.Equal(t, "Error asking preference question: options is required", res.Content)
}
