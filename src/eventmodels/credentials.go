package eventmodels

import "fmt"

// Credentials is the record written by get_token and read by put_finder.
type Credentials struct {
	ClientID     string `yaml:"client_id"`
	RefreshToken string `yaml:"refresh_token"`
}

func (c Credentials) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("%w: missing client_id", ErrInvalidCredentials)
	}

	if c.RefreshToken == "" {
		return fmt.Errorf("%w: missing refresh_token", ErrInvalidCredentials)
	}

	return nil
}
