package domain

import "time"

type AccessToken struct {
	Token     string
	Subject   string
	ExpiresAt time.Time
}
