package dto

// Coordinates are optional browser-supplied geolocation values attached to a
// login request.
type Coordinates struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Accuracy  *float64 `json:"accuracy"`
}

// MemberLoginRequest authenticates a player, institution, official or donor.
// The password is the registered phone number; only its last 10 digits are
// compared.
type MemberLoginRequest struct {
	Type      string   `json:"type"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Accuracy  *float64 `json:"accuracy"`
}

// MemberLoginResponse is returned on a successful member login.
type MemberLoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
	Role    string `json:"role"`
	Profile any    `json:"profile"`
}

// AdminSignupRequest creates an operator account.
type AdminSignupRequest struct {
	AdminID         string `json:"adminId"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// AdminLoginRequest authenticates by username or email plus password.
type AdminLoginRequest struct {
	AdminID     string       `json:"adminId"`
	Password    string       `json:"password"`
	Coordinates *Coordinates `json:"coordinates"`
}
