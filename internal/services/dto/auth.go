package dto

// VerifyTokenResponse - результат проверки токена провайдера
type VerifyTokenResponse struct {
	UID   string  `json:"uid"`
	Email *string `json:"email"`
	Name  string  `json:"name"`
}

// RegisterResponse - пользователь после get-or-create
type RegisterResponse struct {
	User    *UserResponse `json:"user"`
	Created bool          `json:"created"`
}

// MessageResponse - простой ответ с сообщением
type MessageResponse struct {
	Message string `json:"message"`
}
