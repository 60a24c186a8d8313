package user

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserDataInvalid = errors.New("invalid user data")
var ErrUsernameTaken = errors.New("username already taken")

type User struct {
	Id          int
	Uid         string
	Username    string
	DisplayName string
	CreatedAt   time.Time
}
