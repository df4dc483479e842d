package config

type Config struct {
	OpenAIKey    string
	DBConnString string
	JWTSecret    string
	Environment  string
}

// IngestFlags holds CLI options for the ingester job
type IngestFlags struct {
	File         string
	StartLine    int
	BatchSize    int
	SkipExisting bool
	Clear        bool
}
