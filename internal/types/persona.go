package types

import "time"

// Persona is a "future self" profile the chat roleplays as
type Persona struct {
	ID          string   `json:"id" validate:"required_without=PersonaID"`
	PersonaID   string   `json:"persona_id" validate:"required_without=ID"`
	CareerID    string   `json:"career_id,omitempty"`
	Name        string   `json:"name"`
	Role        string   `json:"role,omitempty"`
	Title       string   `json:"title,omitempty"`
	Company     string   `json:"company,omitempty"`
	Location    string   `json:"location,omitempty"`
	Salary      string   `json:"salary,omitempty"`
	Experience  string   `json:"experience,omitempty"`
	Personality string   `json:"personality,omitempty"`
	VoiceStyle  string   `json:"voice_style,omitempty"`
	Expertise   []string `json:"expertise,omitempty"`
	Background  string   `json:"background,omitempty"`
	DailyTasks  []string `json:"daily_tasks,omitempty"`
	Challenges  []string `json:"challenges,omitempty"`
	Advice      []string `json:"advice,omitempty"`
	Emoji       string   `json:"emoji,omitempty"`
}

// Key returns the identifier the persona is stored under
func (p *Persona) Key() string {
	if p.ID != "" {
		return p.ID
	}
	return p.PersonaID
}

// ChatTurn is one message of a conversation
type ChatTurn struct {
	Role    string `json:"role" validate:"omitempty,oneof=user assistant model system"`
	Content string `json:"content"`
}

// ChatRequest is a message sent to a persona
type ChatRequest struct {
	PersonaID           string         `json:"persona_id" validate:"required"`
	Message             string         `json:"message" validate:"required"`
	ConversationHistory []ChatTurn     `json:"conversation_history" validate:"dive"`
	UserContext         map[string]any `json:"user_context,omitempty"`
}

// ChatResponse is the persona's reply
type ChatResponse struct {
	PersonaID      string    `json:"persona_id"`
	PersonaName    string    `json:"persona_name"`
	Response       string    `json:"response"`
	Timestamp      time.Time `json:"timestamp"`
	ConversationID string    `json:"conversation_id"`
}

// VoiceChatRequest is a message for the voice conversation variant
type VoiceChatRequest struct {
	Message             string     `json:"message" validate:"required"`
	ConversationHistory []ChatTurn `json:"conversation_history" validate:"dive"`
	UserBackground      string     `json:"user_background,omitempty"`
	UserGoals           string     `json:"user_goals,omitempty"`
}

// VoiceChatResponse is the persona's spoken reply
type VoiceChatResponse struct {
	PersonaID string    `json:"persona_id"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}
