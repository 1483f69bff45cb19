package domain

// User — залогиненный покупатель (один на профиль).
type User struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
}

// SignupRequest — данные формы регистрации; поля пользователя плоские в JSON.
type SignupRequest struct {
	User
	Password string `json:"password,omitempty"`
}

// AuthResult — ответ на login/signup; отдаётся вызывающему как есть.
type AuthResult struct {
	Status  string `json:"status"`
	User    *User  `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
}

// OK — статус success и пользователь присутствует.
func (r AuthResult) OK() bool { return r.Status == StatusSuccess && r.User != nil }
