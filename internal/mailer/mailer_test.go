package mailer

import "testing"

func TestValidAddress(t *testing.T) {
	valid := []string{
		"mei@example.com",
		"satsuki+totoro@example.co.uk",
		"kiki_delivery@bakery.example",
	}
	for _, addr := range valid {
		if !ValidAddress(addr) {
			t.Errorf("ValidAddress(%q) = false, want true", addr)
		}
	}

	invalid := []string{
		"",
		"not-an-address",
		"@example.com",
		"mei@",
		"Mei Kusakabe <mei@example.com>", // display names are not plain addresses
		"mei@example.com extra",
	}
	for _, addr := range invalid {
		if ValidAddress(addr) {
			t.Errorf("ValidAddress(%q) = true, want false", addr)
		}
	}
}

func TestSMTPConfigEnabled(t *testing.T) {
	full := SMTPConfig{Host: "smtp.example.com", Port: 587, From: "sender@example.com"}
	if !full.Enabled() {
		t.Error("Config with host, port, and from should be enabled")
	}

	partials := []SMTPConfig{
		{},
		{Host: "smtp.example.com"},
		{Host: "smtp.example.com", Port: 587},
		{Port: 587, From: "sender@example.com"},
	}
	for i, cfg := range partials {
		if cfg.Enabled() {
			t.Errorf("Partial config %d should not be enabled", i)
		}
	}
}

func TestFromConfig(t *testing.T) {
	if _, ok := FromConfig(SMTPConfig{}).(LogSender); !ok {
		t.Error("Empty config should fall back to the log sender")
	}

	cfg := SMTPConfig{Host: "smtp.example.com", Port: 587, From: "sender@example.com"}
	if _, ok := FromConfig(cfg).(*SMTPSender); !ok {
		t.Error("Enabled config should build the SMTP sender")
	}
}
