package models

// SignupRequest is the payload for POST /api/signup
// SECURITY: bcrypt refuses passwords over 72 bytes; multibyte input is
// checked again in the auth service since max counts characters
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=1,max=72"`
	Name     string `json:"name" binding:"required,max=100"`
	Role     Role   `json:"role" binding:"required,oneof=mentor mentee"`
}

// SignupResponse is returned after a successful signup
type SignupResponse struct {
	Message string `json:"message"`
}

// LoginRequest is the payload for POST /api/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=72"`
}

// LoginResponse carries the session credential
type LoginResponse struct {
	Token string `json:"token"`
}

// UpdateProfileRequest is the payload for PUT /api/profile.
// ID and Role are echoed by clients; when set they must match the caller.
type UpdateProfileRequest struct {
	ID     int      `json:"id" binding:"omitempty,gt=0"`
	Name   string   `json:"name" binding:"required,max=100"`
	Role   Role     `json:"role" binding:"omitempty,oneof=mentor mentee"`
	Bio    string   `json:"bio" binding:"max=5000"`
	Image  *string  `json:"image"`
	Skills []string `json:"skills" binding:"max=50,dive,required,max=50"`
}
