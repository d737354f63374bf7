package dto

type NewsletterSubscribeRequest struct {
	Email string `json:"email" binding:"required" validate:"required,email"`
}

type SendNewsletterRequest struct {
	Subject string `json:"subject" binding:"required" validate:"required,min=3,max=200"`
	Body    string `json:"body" binding:"required" validate:"required"`
}

type SendNewsletterResponse struct {
	Recipients int `json:"recipients"`
	Failed     int `json:"failed"`
}
