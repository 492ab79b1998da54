package dto

type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

type ChatReply struct {
	Reply string `json:"reply"`
}

type ChatMessageResponse struct {
	Id        uint   `json:"id"`
	Sender    string `json:"sender"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}
