package question

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Kind classifies a question.
type Kind string

const (
	KindGeneral      Kind = "general"
	KindPersonal     Kind = "personal"
	KindPreference   Kind = "preference"
	KindConfirmation Kind = "confirmation"
)

// ErrNotFound is returned for unknown question ids.
var ErrNotFound = errors.New("question not found")

var personalPrompts = map[string]string{
	"name":         "What is your full name?",
	"email":        "What is your email address?",
	"phone":        "What is your phone number?",
	"address":      "What is your address?",
	"birthday":     "What is your date of birth?",
	"preferences":  "What are your preferences for this task?",
	"confirmation": "Please confirm this information is correct",
}

// Record is one asked question and its answer once given.
type Record struct {
	ID             string
	Question       string
	Context        string
	Kind           Kind
	QuestionType   string
	Required       bool
	InfoType       string
	Purpose        string
	PreferenceType string
	Options        []string
	Action         string
	Consequences   string
	AskedAt        time.Time
	Answered       bool
	Response       string
	AnsweredAt     time.Time
}

// Book tracks asked questions and recorded preferences for one session.
type Book struct {
	mu          sync.Mutex
	records     map[string]*Record
	order       []string
	preferences map[string]string
	counter     int
	now         func() time.Time
}

// NewBook creates an empty question book.
func NewBook() *Book {
	return &Book{
		records:     make(map[string]*Record),
		preferences: make(map[string]string),
		now:         time.Now,
	}
}

// add assigns the next id and stores r; callers hold b.mu.
func (b *Book) add(prefix string, r Record) Record {
	b.counter++
	r.AskedAt = b.now()
	r.ID = fmt.Sprintf("%s_%d_%s", prefix, b.counter, r.AskedAt.Format("20060102_150405"))
	b.records[r.ID] = &r
	b.order = append(b.order, r.ID)
	return r
}

// AskClarifying records a free-form clarifying question.
func (b *Book) AskClarifying(question, context, questionType string, required bool) Record {
	if questionType == "" {
		questionType = string(KindGeneral)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.add("q", Record{
		Question:     question,
		Context:      context,
		Kind:         KindGeneral,
		QuestionType: questionType,
		Required:     required,
	})
}

// AskPersonal records a request for personal information.
func (b *Book) AskPersonal(infoType, purpose string, required bool) Record {
	prompt, ok := personalPrompts[infoType]
	if !ok {
		prompt = "Please provide your " + infoType
	}
	if purpose != "" {
		prompt += " (needed for: " + purpose + ")"
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.add("personal", Record{
		Question:     prompt,
		Context:      "Personal information request: " + infoType,
		Kind:         KindPersonal,
		QuestionType: string(KindPersonal),
		Required:     required,
		InfoType:     infoType,
		Purpose:      purpose,
	})
}

// AskPreference records a multiple choice preference question.
func (b *Book) AskPreference(preferenceType string, options []string, context string) Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.add("preference", Record{
		Question:       fmt.Sprintf("What is your preference for %s?", preferenceType),
		Context:        context,
		Kind:           KindPreference,
		QuestionType:   string(KindPreference),
		PreferenceType: preferenceType,
		Options:        append([]string(nil), options...),
	})
}

// AskConfirmation records a confirmation request for action.
func (b *Book) AskConfirmation(action, details, consequences string) Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.add("confirmation", Record{
		Question:     "Please confirm: " + action,
		Context:      details,
		Kind:         KindConfirmation,
		QuestionType: string(KindConfirmation),
		Action:       action,
		Consequences: consequences,
	})
}

// Answer marks a question answered. Answers to preference questions also
// update the preference map; a numeric answer selects the matching option.
func (b *Book) Answer(id, response string) (Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.records[strings.TrimSpace(id)]
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	r.Response = response
	r.Answered = true
	r.AnsweredAt = b.now()
	if r.Kind == KindPreference {
		b.preferences[r.PreferenceType] = resolveOption(r.Options, response)
	}
	return *r, nil
}

func resolveOption(options []string, response string) string {
	n, err := strconv.Atoi(strings.TrimSpace(response))
	if err != nil || n < 1 || n > len(options) {
		return response
	}
	return options[n-1]
}

// Pending lists unanswered questions in the order they were asked.
func (b *Book) Pending() []Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []Record
	for _, id := range b.order {
		if r := b.records[id]; !r.Answered {
			out = append(out, *r)
		}
	}
	return out
}

// Get returns one question record.
func (b *Book) Get(id string) (Record, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.records[id]
	if !ok {
		return Record{}, false
	}
	return *r, true
}

// Preference is one recorded preference.
type Preference struct {
	Type  string
	Value string
}

// Preferences returns recorded preferences sorted by type.
func (b *Book) Preferences() []Preference {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Preference, 0, len(b.preferences))
	for k, v := range b.preferences {
		out = append(out, Preference{Type: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}
