package model

type User struct {
	ID        string
	FullName  string
	Email     string
	PushToken string
}

func (u *User) Recipient() Recipient {
	return Recipient{
		UserID:    u.ID,
		Email:     u.Email,
		PushToken: u.PushToken,
	}
}
