package options

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/glyph"
)

// DraftOptions holds the form fields of a diary entry given as flags.
type DraftOptions struct {
	Date    string
	Content string
	Weather string
	Public  bool
	Fields  map[entry.FieldKey]*string

	Image      string
	Audio      string
	ClearImage bool
	ClearAudio bool

	flags *pflag.FlagSet
}

// AddDraftArgs registers one flag per form field. Reflection fields hidden
// in settings are still accepted but not advertised.
func AddDraftArgs(cmd *cobra.Command, o *DraftOptions, fs entry.FieldSettings, editing bool) {
	o.flags = cmd.Flags()
	o.Fields = make(map[entry.FieldKey]*string, len(entry.Fields()))

	cmd.Flags().StringVar(&o.Date, "date", "", "Day of the entry (YYYY-MM-DD, M/D, today).")
	cmd.Flags().StringVarP(&o.Content, "content", "c", "", "Free text of the entry.")
	weathers := make([]string, 0, len(glyph.Weather()))
	for _, g := range glyph.Weather() {
		if g.Key != "" {
			weathers = append(weathers, g.Key)
		}
	}
	cmd.Flags().StringVarP(&o.Weather, "weather", "w", "", "Weather, one of: "+strings.Join(weathers, ", ")+".")
	cmd.Flags().BoolVar(&o.Public, "public", false, "Share the entry on the public feed.")
	cmd.Flags().StringVar(&o.Image, "image", "", "Path of an image to attach.")
	cmd.Flags().StringVar(&o.Audio, "audio", "", "Path of an audio recording to attach.")
	if editing {
		cmd.Flags().BoolVar(&o.ClearImage, "clear-image", false, "Remove the attached image.")
		cmd.Flags().BoolVar(&o.ClearAudio, "clear-audio", false, "Remove the attached audio.")
	}

	for _, f := range entry.Fields() {
		v := new(string)
		o.Fields[f.Key] = v
		name := FieldFlag(f.Key)
		cmd.Flags().StringVar(v, name, "", f.Icon+" "+f.Label+".")
		if !fs.Visible(f.Key) {
			_ = cmd.Flags().MarkHidden(name)
		}
	}
}

// FieldFlag is the flag name of a reflection field.
func FieldFlag(k entry.FieldKey) string {
	return strings.ReplaceAll(string(k), "_", "-")
}

func (o *DraftOptions) changed(name string) bool {
	if o.flags == nil {
		return false
	}
	return o.flags.Changed(name)
}

// Apply copies every flag the user set onto d. Unset flags leave d alone.
// date is the already parsed --date value.
func (o *DraftOptions) Apply(d *entry.Draft, date string) {
	if date != "" {
		d.Date = date
	}
	if o.changed("content") {
		d.Content = o.Content
	}
	if o.changed("weather") {
		d.Weather = o.Weather
	}
	if o.changed("public") {
		d.IsPublic = o.Public
	}
	for _, f := range entry.Fields() {
		if o.changed(FieldFlag(f.Key)) {
			*d.Field(f.Key) = *o.Fields[f.Key]
		}
	}
	if o.ClearImage {
		d.SetAttachment(entry.Image, entry.Attachment{})
	}
	if o.ClearAudio {
		d.SetAttachment(entry.Audio, entry.Attachment{})
	}
}
