package entity

// User is one row of the users handbook sheet. ID is the personal login
// code the user types to authenticate. ChatID is set when a chat session
// is bound to the user; zero means no active session.
type User struct {
	ID       string `json:"id"`
	Fullname string `json:"fullname"`
	JobTitle string `json:"job_title"`
	Admin    bool   `json:"admin"`
	Active   bool   `json:"is_active"`
	ChatID   int64  `json:"chat_id"`
}

func (u *User) HasSession() bool {
	return u != nil && u.ChatID != 0
}
