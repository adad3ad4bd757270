package account

import "fmt"

func verifyEmailBody(host, token string) string {
	return fmt.Sprintf(`<a href="%s/users/verify-email?token=%s">verify your email</a>`, host, token)
}

func forgotPasswordBody(host, token string) string {
	return fmt.Sprintf(`<a href="%s/users/reset-password?token=%s">Request a new password</a>`, host, token)
}
