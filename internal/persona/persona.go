// Package persona roleplays the user's "future self" in a target career.
package persona

import (
	"github.com/jonathan/careerview/internal/types"
)

// DefaultName is reported when a reply could not be produced.
const DefaultName = "Career Expert"

// NewFutureSelf builds the persona for careerID. The title comes from info when
// it has one, otherwise from the career id.
func NewFutureSelf(careerID string, info *types.CareerMatch) *types.Persona {
	title := types.CareerTitle(careerID)
	if info != nil && info.Title != "" {
		title = info.Title
	}

	return &types.Persona{
		ID:          careerID,
		PersonaID:   careerID,
		CareerID:    careerID,
		Name:        "Your Future Self - " + title,
		Role:        title,
		Title:       "Future You as a " + title,
		Company:     "Your Future Company",
		Location:    "Your Future Location",
		Salary:      "Your Future Salary",
		Experience:  "You after completing the learning path and gaining experience",
		Personality: "Casual, encouraging, relatable - like talking to yourself from the future",
		VoiceStyle:  "Friendly, personal, uses slang and casual language - like a friend who's been there",
		Expertise:   []string{"Your journey", "What you learned", "Challenges you overcame", "Tips from experience"},
		Background: "I'm you from the future after successfully transitioning to " + title +
			". I've been through the exact same journey you're about to start.",
		DailyTasks: []string{
			"Working as a " + title,
			"Using the skills I developed",
			"Helping others in the field",
		},
		Challenges: []string{
			"The learning curve was real",
			"Imposter syndrome hit hard",
			"But I pushed through and made it",
		},
		Advice: []string{
			"Start with the basics",
			"Don't be afraid to ask questions",
			"Practice every day",
			"Network with others in the field",
		},
		Emoji: "🚀",
	}
}
