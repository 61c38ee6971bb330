package auth

import (
	"context"

	"loan-portal/internal/domain/user"
	"loan-portal/internal/domain/validation"
)

type Usecase struct{ port user.AuthPort }

func NewUsecase(p user.AuthPort) *Usecase { return &Usecase{port: p} }

func (u *Usecase) Login(ctx context.Context, creds user.AuthCredentials) (*user.AuthResponse, error) {
	if err := validation.Email(creds.Email); err != nil {
		return nil, err
	}
	if err := validation.Password(creds.Password); err != nil {
		return nil, err
	}
	return u.port.Login(ctx, creds)
}

func (u *Usecase) Register(ctx context.Context, data user.RegisterData) (*user.AuthResponse, error) {
	if err := validation.Email(data.Email); err != nil {
		return nil, err
	}
	if err := validation.Password(data.Password); err != nil {
		return nil, err
	}
	if err := validation.FullName(data.FullName); err != nil {
		return nil, err
	}
	return u.port.Register(ctx, data)
}

func (u *Usecase) Logout(ctx context.Context) error { return u.port.Logout(ctx) }
