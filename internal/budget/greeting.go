package budget

import (
	"fmt"
	"time"
)

type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Night     TimeOfDay = "night"
)

// Greeting is a message for the user depending on the time of day.
type Greeting struct {
	Greeting  string    `json:"greeting" example:"Good Morning, Alex"`                               // Salutation including the user's name
	Emoji     string    `json:"emoji" example:"🌅"`                                                   // Emoji for the time of day
	Message   string    `json:"message" example:"Start your day with financial awareness!"`          // Motivational message
	TimeOfDay TimeOfDay `json:"timeOfDay" example:"morning" enums:"morning,afternoon,evening,night"` // The time of day
}

type greetingText struct {
	salutation string
	emoji      string
	messages   []string
}

var greetings = map[TimeOfDay]greetingText{
	Morning: {"Good Morning", "🌅", []string{
		"Start your day with financial awareness!",
		"Plan your expenses for the day ahead!",
		"Morning is the perfect time to review your budget!",
	}},
	Afternoon: {"Good Afternoon", "☀️", []string{
		"Keep track of your midday expenses!",
		"How's your spending going today?",
		"Afternoon check-in on your financial goals!",
	}},
	Evening: {"Good Evening", "🌆", []string{
		"Review your day's spending!",
		"Evening reflection on your expenses!",
		"Time to wrap up and plan for tomorrow!",
	}},
	Night: {"Good Night", "🌙", []string{
		"Time to rest and plan for tomorrow!",
		"Night time - perfect for budget planning!",
		"End your day with financial peace of mind!",
	}},
}

// TimeOfDayAt returns the time of day for an hour from 0 to 23.
func TimeOfDayAt(hour int) TimeOfDay {
	switch {
	case hour >= 5 && hour < 12:
		return Morning
	case hour >= 12 && hour < 17:
		return Afternoon
	case hour >= 17 && hour < 21:
		return Evening
	default:
		return Night
	}
}

// Greet returns the greeting for name at the given time. The message
// changes from day to day.
func Greet(name string, at time.Time) Greeting {
	tod := TimeOfDayAt(at.Hour())
	text := greetings[tod]

	greeting := text.salutation
	if name != "" {
		greeting = fmt.Sprintf("%s, %s", text.salutation, name)
	}

	return Greeting{
		Greeting:  greeting,
		Emoji:     text.emoji,
		Message:   text.messages[at.YearDay()%len(text.messages)],
		TimeOfDay: tod,
	}
}
