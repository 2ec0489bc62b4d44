package dto

type ContactRequest struct {
	Name    string `json:"name" validate:"notblank,max=100"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Subject string `json:"subject" validate:"notblank,max=200"`
	Message string `json:"message" validate:"notblank,min=10,max=5000"`
}

type ContactStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new read responded"`
}
