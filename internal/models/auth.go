package models

// VerifyUserRequest starts the auth flow for a phone number.
type VerifyUserRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

// SignUpRequest is the signup form submission.
type SignUpRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
}

// OTPValidationRequest confirms a pending signup or login with the code.
type OTPValidationRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	OTP         string `json:"otp"`
}

// VerifyUserResponse tells the client what to do next: a non-nil
// VerificationCode means an OTP was issued (login or signup), nil means the
// phone is unregistered and the client should show the signup form.
type VerifyUserResponse struct {
	PhoneNumber      string  `json:"phoneNumber"`
	VerificationCode *string `json:"verificationCode"`
}
