// Package entry holds the diary records exchanged with the diary service
// and the drafts edited locally before they are submitted.
package entry

import (
	"strings"
)

// Author is attached to entries that come from the public feed.
type Author struct {
	Name  string  `json:"author_name"`
	Photo *string `json:"author_photo"`
}

// Entry is one diary record for one calendar day.
type Entry struct {
	ID       string  `json:"id"`
	UserID   string  `json:"user_id,omitempty"`
	Date     string  `json:"date"`
	Weather  *string `json:"weather"`
	IsPublic bool    `json:"is_public"`

	Content                *string `json:"content"`
	Events                 *string `json:"events"`
	Emotions               *string `json:"emotions"`
	GoodThings             *string `json:"good_things"`
	Reflections            *string `json:"reflections"`
	Gratitude              *string `json:"gratitude"`
	TomorrowGoals          *string `json:"tomorrow_goals"`
	TomorrowLookingForward *string `json:"tomorrow_looking_forward"`
	Learnings              *string `json:"learnings"`
	HealthHabits           *string `json:"health_habits"`
	TodayInOneWord         *string `json:"today_in_one_word"`

	ImageURL  *string `json:"image_url"`
	ImageName *string `json:"image_name"`
	AudioURL  *string `json:"audio_url"`
	AudioName *string `json:"audio_name"`

	Created Timestamp `json:"created_at"`
	Updated Timestamp `json:"updated_at,omitempty"`

	// Author is only set for public feed entries.
	*Author `json:",omitempty"`
}

// HasAuthor reports whether the entry came from the public feed.
func (e *Entry) HasAuthor() bool {
	return e != nil && e.Author != nil && e.Author.Name != ""
}

// DateKey is the calendar day the entry belongs to.
func (e *Entry) DateKey() string {
	return DateKey(e.Date)
}

// Field returns the value stored for one reflection field.
func (e *Entry) Field(key FieldKey) string {
	if p := e.fieldPtr(key); p != nil {
		return deref(*p)
	}
	return ""
}

func (e *Entry) fieldPtr(key FieldKey) **string {
	switch key {
	case Events:
		return &e.Events
	case Emotions:
		return &e.Emotions
	case GoodThings:
		return &e.GoodThings
	case Reflections:
		return &e.Reflections
	case Gratitude:
		return &e.Gratitude
	case TomorrowGoals:
		return &e.TomorrowGoals
	case TomorrowLookingForward:
		return &e.TomorrowLookingForward
	case Learnings:
		return &e.Learnings
	case HealthHabits:
		return &e.HealthHabits
	case TodayInOneWord:
		return &e.TodayInOneWord
	}
	return nil
}

// Title is a short one line summary of the entry.
func (e *Entry) Title() string {
	if s := strings.TrimSpace(deref(e.TodayInOneWord)); s != "" {
		return s
	}
	if s := strings.TrimSpace(deref(e.Content)); s != "" {
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			s = s[:i]
		}
		return s
	}
	for _, f := range Fields() {
		if s := strings.TrimSpace(e.Field(f.Key)); s != "" {
			return s
		}
	}
	return ""
}

// User is the account the session token belongs to.
type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	DisplayName     string    `json:"display_name"`
	ProfileImageURL *string   `json:"profile_image_url"`
	Created         Timestamp `json:"created_at"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// String returns a pointer to s, or nil when s is empty.
func String(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
