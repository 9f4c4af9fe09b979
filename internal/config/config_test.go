package config

import (
	"testing"
	"time"
)

func TestLoadAppliesDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "REST_BASE_URL", "KAFKA_TOPICS", "KAFKA_BROKERS", "KAFKA_BROKER", "CONSOLE_SEARCH_DEBOUNCE", "TOKEN_COOKIE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.REST.BaseURL != "http://localhost:5000" {
		t.Fatalf("expected default base url, got %q", cfg.REST.BaseURL)
	}
	if cfg.Console.SearchDebounce != 400*time.Millisecond {
		t.Fatalf("expected 400ms debounce, got %s", cfg.Console.SearchDebounce)
	}
	if cfg.Console.StaleTime != time.Minute {
		t.Fatalf("expected 60s stale time, got %s", cfg.Console.StaleTime)
	}
	if cfg.Console.ToastTTL != 3*time.Second {
		t.Fatalf("expected 3s toast ttl, got %s", cfg.Console.ToastTTL)
	}
	if cfg.Security.TokenCookie != "admin_token" {
		t.Fatalf("expected admin_token cookie, got %q", cfg.Security.TokenCookie)
	}
	if len(cfg.Kafka.Brokers) != 0 {
		t.Fatalf("expected no brokers, got %v", cfg.Kafka.Brokers)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("REST_BASE_URL", "https://api.impact.test/")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("KAFKA_TOPICS", "users:impact.users;courses:impact.courses,impact.lessons")
	t.Setenv("CONSOLE_SEARCH_DEBOUNCE", "250ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.REST.BaseURL != "https://api.impact.test" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.REST.BaseURL)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "kafka-2:9092" {
		t.Fatalf("unexpected brokers %v", cfg.Kafka.Brokers)
	}
	if got := cfg.Kafka.Topics["courses"]; len(got) != 2 {
		t.Fatalf("expected two course topics, got %v", got)
	}
	names := cfg.Kafka.TopicNames()
	if len(names) != 3 || names[0] != "impact.courses" {
		t.Fatalf("unexpected topic names %v", names)
	}
	if cfg.Console.SearchDebounce != 250*time.Millisecond {
		t.Fatalf("expected 250ms debounce, got %s", cfg.Console.SearchDebounce)
	}
}

func TestParseTopicsRejectsMalformedEntries(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"missing entity": ":impact.users",
		"missing topics": "users:",
		"no separator":   "users",
		"unknown":        "widgets:impact.widgets",
	}
	for name, raw := range cases {
		raw := raw
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if _, err := parseTopics(raw); err == nil {
				t.Fatalf("expected error for %q", raw)
			}
		})
	}
}

func TestParseTopicsCanonicalizesResources(t *testing.T) {
	t.Parallel()

	topics, err := parseTopics("Booking:impact.bookings;AUDIT_LOG:impact.audit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(topics["bookings"]) != 1 || len(topics["audit-logs"]) != 1 {
		t.Fatalf("expected canonical resource keys, got %v", topics)
	}
}

func TestResourcesByTopicGroupsSharedTopics(t *testing.T) {
	t.Parallel()

	k := KafkaConfig{Topics: map[string][]string{
		"partner-courses": {"impact.courses"},
		"courses":         {"impact.courses"},
		"users":           {"impact.users", "impact.users.audit"},
	}}

	got := k.ResourcesByTopic()
	if len(got) != 3 {
		t.Fatalf("expected 3 topics, got %v", got)
	}
	if courses := got["impact.courses"]; len(courses) != 2 || courses[0] != "courses" || courses[1] != "partner-courses" {
		t.Fatalf("expected courses then partner-courses, got %v", courses)
	}
	if users := got["impact.users.audit"]; len(users) != 1 || users[0] != "users" {
		t.Fatalf("expected users on the audit topic, got %v", users)
	}
}
