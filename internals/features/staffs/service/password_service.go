// file: internals/features/staffs/service/password_service.go
package service

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword membuat hash bcrypt untuk password petugas.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword membandingkan hash tersimpan dengan password input.
func CheckPassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
