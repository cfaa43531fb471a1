package user

import (
	"github.com/marikeiske/datekeeper-plus/internal/model"
)

type userDTO struct {
	ID        string  `db:"id"`
	FullName  string  `db:"full_name"`
	Email     string  `db:"email"`
	PushToken *string `db:"push_token"`
}

func mapToUser(dto *userDTO) *model.User {
	u := &model.User{
		ID:       dto.ID,
		FullName: dto.FullName,
		Email:    dto.Email,
	}
	if dto.PushToken != nil {
		u.PushToken = *dto.PushToken
	}

	return u
}
