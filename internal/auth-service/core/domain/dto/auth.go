package dto

type RegisterRequest struct {
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     string  `json:"phone"`
	Role      *string `json:"role"`
}

type LoginRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type AuthResponse struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	AccessToken string `json:"jwt_access"`
}

type ProfileUpdateRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Whatsapp  *string `json:"whatsapp"`
	AvatarURL *string `json:"avatar_url"`
}

type ProfileResponse struct {
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Whatsapp   string `json:"whatsapp,omitempty"`
	AvatarURL  string `json:"avatar_url,omitempty"`
	IsVerified bool   `json:"is_verified"`
}

// KycSubmitRequest is decoded from the multipart form of the document upload.
type KycSubmitRequest struct {
	DocumentType   string
	DocumentNumber string
	File           []byte
	FileName       string
	FileMime       string
}

type KycDocumentResponse struct {
	ID             string `json:"id"`
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
	FileURL        string `json:"file_url"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
}

// KycStatusResponse aggregates the caller's verification state.
type KycStatusResponse struct {
	Status    string                `json:"status"`
	Documents []KycDocumentResponse `json:"documents"`
}
