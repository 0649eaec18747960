package config

import (
	"errors"
	"net/url"

	"github.com/go-andiamo/cfgenv"
)

// Load reads the settings for a test run from environment variables:
//
//	PETFRIENDS_URL               base URL of the service (optional)
//	PETFRIENDS_VALID_LOGIN       email of a registered user
//	PETFRIENDS_VALID_PASSWORD    password of that user
//	PETFRIENDS_INVALID_LOGIN     email that is not registered (optional)
//	PETFRIENDS_INVALID_PASSWORD  password that is wrong for the valid login (optional)
//	PETFRIENDS_INVALID_KEY       auth key that the service never issued (optional)
func Load() (*Config, error) {
	cfg, err := cfgenv.LoadAs[Config]()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type Config struct {
	Service Service     `env:"prefix=PETFRIENDS" json:"service"`
	Valid   Credentials `env:"prefix=PETFRIENDS_VALID" json:"valid"`
	Invalid Invalid     `env:"prefix=PETFRIENDS_INVALID" json:"invalid"`
}

type Service struct {
	URL string `env:"optional,default=https://petfriends.skillfactory.ru" json:"url"`
}

type Credentials struct {
	Login    string `json:"login"`
	Password string `json:"-"`
}

type Invalid struct {
	Login    string `env:"optional,default=nobody@petfriends.invalid" json:"login"`
	Password string `env:"optional,default=not-the-password" json:"-"`
	Key      string `env:"optional,default=ea738148a1f19838e1c5d1413877f3691a3731380e733e877b0ae729" json:"-"`
}

// Validate checks the settings that cfgenv cannot check by itself.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Service.URL)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return errors.New("service URL must be an absolute http or https URL")
	}
	if c.Valid.Login == "" || c.Valid.Password == "" {
		return errors.New("valid login and password must not be empty")
	}
	if c.Invalid.Login == c.Valid.Login {
		return errors.New("invalid login must not be the same as the valid login")
	}
	if c.Invalid.Password == c.Valid.Password {
		return errors.New("invalid password must not be the same as the valid password")
	}
	return nil
}
