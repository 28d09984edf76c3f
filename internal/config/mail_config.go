package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

// MailConfig holds SMTP transport settings and the addresses used by lead
// notifications. The fallback sender/recipient mirror the addresses the system
// has always notified; override them in mail.toml for production.
type MailConfig struct {
	SMTP         SMTPConfig   `toml:"smtp"`
	Notification Notification `toml:"notification"`
}

// SMTPConfig contains mail transport settings. An empty host disables real
// delivery and notifications are logged instead.
type SMTPConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
}

// Notification contains the fixed sender and recipient for lead events.
type Notification struct {
	From string `toml:"from"`
	To   string `toml:"to"`
}

// LoadMailConfig loads mail settings from a TOML file. A missing file is not
// an error: the defaults are returned and delivery falls back to logging.
func LoadMailConfig(filename string) (*MailConfig, error) {
	config := &MailConfig{
		SMTP: SMTPConfig{Port: 587},
		Notification: Notification{
			From: "test@test.com",
			To:   "test2@test.com",
		},
	}

	_, err := toml.DecodeFile(filename, config)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err) {
			return config, nil
		}
		return nil, err
	}
	return config, nil
}
