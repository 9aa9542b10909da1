package config

// NATSConfig enables publishing state changes to a NATS subject.
type NATSConfig struct {
	URL     string // empty disables publishing
	Subject string
}

func loadNATS() NATSConfig {
	return NATSConfig{
		URL:     envOrDefault(envNATSURL, ""),
		Subject: envOrDefault(envNATSSubject, defaultNATSSubject),
	}
}
