package config

import (
	"testing"
	"time"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookupDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{"JWT_ACCESS_SECRET": "secret"}))
	if err != nil {
		t.Fatalf("FromLookup: %v", err)
	}

	if cfg.GetCreditsStore() != CreditsStoreMemory {
		t.Errorf("store = %q, want memory", cfg.GetCreditsStore())
	}
	if cfg.GetCreditsInitialBalance() != 150 {
		t.Errorf("initial balance = %d, want 150", cfg.GetCreditsInitialBalance())
	}
	if cfg.GetAssistantDelayMin() != time.Second || cfg.GetAssistantDelayMax() != 1500*time.Millisecond {
		t.Errorf("assistant delay = %v..%v", cfg.GetAssistantDelayMin(), cfg.GetAssistantDelayMax())
	}
	if cfg.GetScoreJitter() {
		t.Error("score jitter should be off by default")
	}
	if cfg.GetPhoneDefaultRegion() != "ES" {
		t.Errorf("region = %q", cfg.GetPhoneDefaultRegion())
	}
	if cfg.GetEmailEnabled() {
		t.Error("email should be disabled without SMTP_HOST")
	}
}

func TestFromLookupRejectsInvalidSettings(t *testing.T) {
	base := func() map[string]string {
		return map[string]string{"JWT_ACCESS_SECRET": "secret"}
	}

	cases := map[string]map[string]string{
		"missing secret": {},
		"negative balance": {
			"JWT_ACCESS_SECRET":       "secret",
			"CREDITS_INITIAL_BALANCE": "-1",
		},
		"redis store without url": {
			"JWT_ACCESS_SECRET": "secret",
			"CREDITS_STORE":     "redis",
		},
		"postgres store without url": {
			"JWT_ACCESS_SECRET": "secret",
			"CREDITS_STORE":     "postgres",
		},
		"unknown store": {
			"JWT_ACCESS_SECRET": "secret",
			"CREDITS_STORE":     "mongo",
		},
		"inverted assistant window": {
			"JWT_ACCESS_SECRET":   "secret",
			"ASSISTANT_DELAY_MIN": "2s",
			"ASSISTANT_DELAY_MAX": "1s",
		},
		"wildcard cors with credentials": {
			"JWT_ACCESS_SECRET": "secret",
			"CORS_ORIGINS":      "*",
		},
		"malformed initial balance": {
			"JWT_ACCESS_SECRET":       "secret",
			"CREDITS_INITIAL_BALANCE": "1OO",
		},
		"malformed assistant delay": {
			"JWT_ACCESS_SECRET":   "secret",
			"ASSISTANT_DELAY_MIN": "1sec",
		},
		"malformed smtp port": {
			"JWT_ACCESS_SECRET": "secret",
			"SMTP_PORT":         "smtp",
		},
		"sub-millisecond session ttl": {
			"JWT_ACCESS_SECRET":   "secret",
			"CREDITS_STORE":       "redis",
			"REDIS_URL":           "redis://localhost:6379/0",
			"CREDITS_SESSION_TTL": "500us",
		},
		"email without host": {
			"JWT_ACCESS_SECRET": "secret",
			"EMAIL_ENABLED":     "true",
		},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := FromLookup(lookupFrom(env)); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	if _, err := FromLookup(lookupFrom(base())); err != nil {
		t.Fatalf("base config should load: %v", err)
	}
}

func TestFromLookupRedisStore(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"JWT_ACCESS_SECRET":   "secret",
		"CREDITS_STORE":       " Redis ",
		"REDIS_URL":           "redis://localhost:6379/0",
		"CREDITS_SESSION_TTL": "2h",
		"CORS_ORIGINS":        "https://a.example, https://b.example",
	}))
	if err != nil {
		t.Fatalf("FromLookup: %v", err)
	}
	if cfg.GetCreditsStore() != CreditsStoreRedis {
		t.Errorf("store = %q", cfg.GetCreditsStore())
	}
	if cfg.GetCreditsSessionTTL() != 2*time.Hour {
		t.Errorf("ttl = %v", cfg.GetCreditsSessionTTL())
	}
	if got := cfg.GetCORSOrigins(); len(got) != 2 || got[1] != "https://b.example" {
		t.Errorf("cors origins = %v", got)
	}
}
