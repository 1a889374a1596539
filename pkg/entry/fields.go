package entry

import (
	"bytes"
	"encoding/json"
)

// FieldKey names one of the categorized reflection fields.
type FieldKey string

const (
	Events                 FieldKey = "events"
	Emotions               FieldKey = "emotions"
	GoodThings             FieldKey = "good_things"
	Reflections            FieldKey = "reflections"
	Gratitude              FieldKey = "gratitude"
	TomorrowGoals          FieldKey = "tomorrow_goals"
	TomorrowLookingForward FieldKey = "tomorrow_looking_forward"
	Learnings              FieldKey = "learnings"
	HealthHabits           FieldKey = "health_habits"
	TodayInOneWord         FieldKey = "today_in_one_word"
)

// Field describes how a reflection field is presented.
type Field struct {
	Key   FieldKey
	Icon  string
	Label string
}

var fields = []Field{
	{Key: Events, Icon: "📝", Label: "Events"},
	{Key: Emotions, Icon: "💭", Label: "Emotions"},
	{Key: GoodThings, Icon: "😊", Label: "Good things"},
	{Key: Reflections, Icon: "🤔", Label: "Reflections"},
	{Key: Gratitude, Icon: "🙏", Label: "Gratitude"},
	{Key: TomorrowGoals, Icon: "🎯", Label: "Tomorrow's goals"},
	{Key: TomorrowLookingForward, Icon: "✨", Label: "Looking forward to"},
	{Key: Learnings, Icon: "💡", Label: "Learnings"},
	{Key: HealthHabits, Icon: "💪", Label: "Health & habits"},
	{Key: TodayInOneWord, Icon: "🏷️", Label: "Today in one word"},
}

// Fields returns the reflection fields in display order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// ParseFieldKey resolves a field key, accepting dashes for underscores.
func ParseFieldKey(s string) (FieldKey, bool) {
	for _, f := range fields {
		if string(f.Key) == s || dashed(f.Key) == s {
			return f.Key, true
		}
	}
	return "", false
}

func dashed(k FieldKey) string {
	b := []byte(k)
	for i := range b {
		if b[i] == '_' {
			b[i] = '-'
		}
	}
	return string(b)
}

// FieldSettings toggles the visibility of each reflection field in forms
// and printed output.
type FieldSettings map[FieldKey]bool

// DefaultFieldSettings shows every field.
func DefaultFieldSettings() FieldSettings {
	s := make(FieldSettings, len(fields))
	for _, f := range fields {
		s[f.Key] = true
	}
	return s
}

// Visible reports whether key should be shown. Unknown keys are hidden.
func (s FieldSettings) Visible(key FieldKey) bool {
	v, ok := s[key]
	if !ok {
		_, known := ParseFieldKey(string(key))
		return known
	}
	return v
}

// VisibleFields returns the fields that are turned on, in display order.
func (s FieldSettings) VisibleFields() []Field {
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		if s.Visible(f.Key) {
			out = append(out, f)
		}
	}
	return out
}

// DecodeFieldSettings merges a persisted document over the defaults. Values
// that are not booleans and keys that are not fields are ignored; a document
// that does not parse yields the defaults.
func DecodeFieldSettings(data []byte) FieldSettings {
	merged := DefaultFieldSettings()
	if len(data) == 0 {
		return merged
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return merged
	}
	for _, f := range fields {
		v, ok := raw[string(f.Key)]
		if !ok {
			continue
		}
		switch string(bytes.TrimSpace(v)) {
		case "true":
			merged[f.Key] = true
		case "false":
			merged[f.Key] = false
		}
	}
	return merged
}

// Encode serializes the settings for persistence.
func (s FieldSettings) Encode() ([]byte, error) {
	out := make(map[FieldKey]bool, len(fields))
	for _, f := range fields {
		out[f.Key] = s.Visible(f.Key)
	}
	return json.Marshal(out)
}
