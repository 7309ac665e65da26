package assist

import (
	"testing"
)

func TestNewResponder(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "unknown provider",
			config:  &Config{Provider: "carrier-pigeon"},
			wantErr: true,
		},
		{
			name:    "openai without key",
			config:  &Config{Provider: "openai"},
			wantErr: true,
		},
		{
			name:    "gemini without key",
			config:  &Config{Provider: "gemini"},
			wantErr: true,
		},
		{
			name:    "openai with key",
			config:  &Config{Provider: "openai", OpenAIKey: "sk-test"},
			wantErr: false,
		},
		{
			name:    "gemini with key",
			config:  &Config{Provider: "gemini", GeminiKey: "test"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewResponder(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewResponder() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && r.Name() != tt.config.Provider {
				t.Errorf("Name() = %q, want %q", r.Name(), tt.config.Provider)
			}
		})
	}
}

func TestGeminiResponderDefaultModel(t *testing.T) {
	r, err := NewGeminiResponder(&Config{Provider: "gemini", GeminiKey: "test"})
	if err != nil {
		t.Fatalf("NewGeminiResponder() unexpected error: %v", err)
	}

	gemini, ok := r.(*GeminiResponder)
	if !ok {
		t.Fatal("expected *GeminiResponder")
	}
	if gemini.model != "gemini-2.0-flash" {
		t.Errorf("default model = %q, want gemini-2.0-flash", gemini.model)
	}
}
