package entry

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"tableflip.dev/diary/pkg/glyph"
)

// ErrEmptyDraft is returned when every free-text field of a draft is blank.
var ErrEmptyDraft = errors.New("fill in at least one field")

// Draft is the editable copy of an entry while a create or edit form is
// open. It is sent as-is as the request body for create and update.
type Draft struct {
	Date     string `json:"date" validate:"required,datekey"`
	Weather  string `json:"weather" validate:"weather"`
	IsPublic bool   `json:"is_public"`

	Content                string `json:"content"`
	Events                 string `json:"events"`
	Emotions               string `json:"emotions"`
	GoodThings             string `json:"good_things"`
	Reflections            string `json:"reflections"`
	Gratitude              string `json:"gratitude"`
	TomorrowGoals          string `json:"tomorrow_goals"`
	TomorrowLookingForward string `json:"tomorrow_looking_forward"`
	Learnings              string `json:"learnings"`
	HealthHabits           string `json:"health_habits"`
	TodayInOneWord         string `json:"today_in_one_word"`

	ImageURL  string `json:"image_url"`
	ImageName string `json:"image_name"`
	AudioURL  string `json:"audio_url"`
	AudioName string `json:"audio_name"`
}

// NewDraft returns an empty draft dated on the day of now.
func NewDraft(now time.Time) Draft {
	return Draft{Date: DayKey(now)}
}

// DraftFromEntry copies e into a draft; nil fields become empty strings.
func DraftFromEntry(e *Entry) Draft {
	return Draft{
		Date:                   e.Date,
		Weather:                deref(e.Weather),
		IsPublic:               e.IsPublic,
		Content:                deref(e.Content),
		Events:                 deref(e.Events),
		Emotions:               deref(e.Emotions),
		GoodThings:             deref(e.GoodThings),
		Reflections:            deref(e.Reflections),
		Gratitude:              deref(e.Gratitude),
		TomorrowGoals:          deref(e.TomorrowGoals),
		TomorrowLookingForward: deref(e.TomorrowLookingForward),
		Learnings:              deref(e.Learnings),
		HealthHabits:           deref(e.HealthHabits),
		TodayInOneWord:         deref(e.TodayInOneWord),
		ImageURL:               deref(e.ImageURL),
		ImageName:              deref(e.ImageName),
		AudioURL:               deref(e.AudioURL),
		AudioName:              deref(e.AudioName),
	}
}

// Field returns a pointer to the draft's value for a reflection field.
func (d *Draft) Field(key FieldKey) *string {
	switch key {
	case Events:
		return &d.Events
	case Emotions:
		return &d.Emotions
	case GoodThings:
		return &d.GoodThings
	case Reflections:
		return &d.Reflections
	case Gratitude:
		return &d.Gratitude
	case TomorrowGoals:
		return &d.TomorrowGoals
	case TomorrowLookingForward:
		return &d.TomorrowLookingForward
	case Learnings:
		return &d.Learnings
	case HealthHabits:
		return &d.HealthHabits
	case TodayInOneWord:
		return &d.TodayInOneWord
	}
	return nil
}

// HasContent reports whether content or any reflection field is non-blank.
func (d *Draft) HasContent() bool {
	if strings.TrimSpace(d.Content) != "" {
		return true
	}
	for _, f := range fields {
		if strings.TrimSpace(*d.Field(f.Key)) != "" {
			return true
		}
	}
	return false
}

// Attachment is one (url, name) pair on a draft.
type Attachment struct {
	URL  string
	Name string
}

// Kind selects an attachment slot.
type Kind string

const (
	Image Kind = "image"
	Audio Kind = "audio"
)

// ParseKind accepts "image" or "audio".
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Image, Audio:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown attachment kind %q, want image or audio", s)
}

// Attachment returns the draft's value for a slot.
func (d Draft) Attachment(k Kind) Attachment {
	if k == Audio {
		return Attachment{URL: d.AudioURL, Name: d.AudioName}
	}
	return Attachment{URL: d.ImageURL, Name: d.ImageName}
}

// SetAttachment replaces the value of a slot. An empty Attachment clears it.
func (d *Draft) SetAttachment(k Kind, a Attachment) {
	if k == Audio {
		d.AudioURL, d.AudioName = a.URL, a.Name
		return
	}
	d.ImageURL, d.ImageName = a.URL, a.Name
}

// ValidationError carries the field level problems found by Validate.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range []string{"date", "weather"} {
		if msg, ok := e.Fields[f]; ok {
			parts = append(parts, f+": "+msg)
		}
	}
	return "invalid diary: " + strings.Join(parts, ", ")
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func draftValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("datekey", func(fl validator.FieldLevel) bool {
			_, err := time.Parse(layoutISO, DateKey(fl.Field().String()))
			return err == nil
		})
		_ = validate.RegisterValidation("weather", func(fl validator.FieldLevel) bool {
			_, ok := glyph.WeatherFor(fl.Field().String())
			return ok
		})
	})
	return validate
}

// Validate checks the draft before it is submitted: at least one text field
// must be filled in, the date must be a calendar day and the weather one of
// the known values.
func (d *Draft) Validate() error {
	if !d.HasContent() {
		return ErrEmptyDraft
	}
	err := draftValidator().Struct(d)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			out.Fields[fe.Field()] = "required"
		case "datekey":
			out.Fields[fe.Field()] = fmt.Sprintf("%q is not a YYYY-MM-DD date", fe.Value())
		case "weather":
			out.Fields[fe.Field()] = fmt.Sprintf("unknown weather %q", fe.Value())
		default:
			out.Fields[fe.Field()] = fe.Error()
		}
	}
	return out
}
