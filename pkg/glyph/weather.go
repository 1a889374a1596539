package glyph

// Glyph is the terminal symbol for an enumerated value.
type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
}

// Weather lists the weather values accepted by the diary service, in the
// order they are offered. The empty key means "not set".
func Weather() []Glyph {
	return []Glyph{
		{Key: "", Symbol: "", Meaning: "not set"},
		{Key: "sunny", Symbol: "☀️", Meaning: "sunny"},
		{Key: "cloudy", Symbol: "☁️", Meaning: "cloudy"},
		{Key: "rainy", Symbol: "🌧️", Meaning: "rainy"},
		{Key: "snowy", Symbol: "❄️", Meaning: "snowy"},
		{Key: "stormy", Symbol: "⛈️", Meaning: "stormy"},
		{Key: "foggy", Symbol: "🌫️", Meaning: "foggy"},
		{Key: "partly-cloudy", Symbol: "⛅", Meaning: "partly cloudy"},
		{Key: "windy", Symbol: "💨", Meaning: "windy"},
	}
}

// unknownWeather is shown for values the client does not know about.
const unknownWeather = "🌤️"

// WeatherFor looks up the glyph for a weather key.
func WeatherFor(key string) (Glyph, bool) {
	for _, g := range Weather() {
		if g.Key == key {
			return g, true
		}
	}
	return Glyph{Key: key, Symbol: unknownWeather, Meaning: key}, false
}

// WeatherLabel renders "☀️ sunny" style labels, or "" when key is empty.
func WeatherLabel(key string) string {
	if key == "" {
		return ""
	}
	g, _ := WeatherFor(key)
	return g.Symbol + " " + key
}

func (g Glyph) String() string {
	return g.Symbol
}
