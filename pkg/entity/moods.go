package entity

type MoodChoice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// MoodChoices is the fixed set of mood tags. The positive/neutral/negative
// grouping is presentation-only, nothing keys off it.
var MoodChoices = []MoodChoice{
	{"happy", "Happy"},
	{"excited", "Excited"},
	{"content", "Content"},
	{"grateful", "Grateful"},
	{"motivated", "Motivated"},
	{"peaceful", "Peaceful"},

	{"neutral", "Neutral"},
	{"tired", "Tired"},
	{"bored", "Bored"},
	{"indifferent", "Indifferent"},

	{"sad", "Sad"},
	{"anxious", "Anxious"},
	{"stressed", "Stressed"},
	{"overwhelmed", "Overwhelmed"},
	{"angry", "Angry"},
	{"lonely", "Lonely"},
	{"frustrated", "Frustrated"},
	{"fearful", "Fearful"},
	{"guilty", "Guilty"},
}

func IsValidMood(value string) bool {
	for _, c := range MoodChoices {
		if c.Value == value {
			return true
		}
	}
	return false
}
