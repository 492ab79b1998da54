package dto

type SaveResponseRequest struct {
	QuestionId   int    `json:"question_id" validate:"required"`
	QuestionText string `json:"question_text" validate:"required"`
	Response     string `json:"response" validate:"required"`
}

type EndSessionRequest struct {
	ChatSessionId uint `json:"chat_session_id" validate:"required"`
}

type QuestionResponse struct {
	Id       uint     `json:"id"`
	Text     string   `json:"text"`
	Category string   `json:"category"`
	Options  []string `json:"options,omitempty"`
}

type ReportResponse struct {
	Id        uint   `json:"id"`
	UserEmail string `json:"user_email"`
	Summary   string `json:"summary"`
	RiskScore int    `json:"risk_score"`
	Urgency   string `json:"urgency"`
	CreatedAt string `json:"created_at"`
}
