package models

type User struct {
	ID       string `json:"_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

type ContactForm struct {
	Name    string `form:"name" json:"name"`
	Email   string `form:"email" json:"email"`
	Subject string `form:"subject" json:"subject"`
	Message string `form:"message" json:"message"`
}

type ProfileForm struct {
	FullName string `form:"full_name" json:"full_name"`
	Phone    string `form:"phone" json:"phone"`
}
