package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	WorkDir    string
	OutputDir  string
	Format     string
	BatchFile  string
	Archive    bool
	ListModels bool
	History    bool
	NoHistory  bool

	// Speech provider flags
	Provider          string
	ExternalCommand   string
	OpenAIModel       string
	OpenAIVoice       string
	OpenAISpeed       float64
	OpenAIInstruction string

	// Ask flags (answer the input with a chat model before speaking)
	Ask         bool
	AskProvider string
	AskModel    string

	// Image generation flags
	PicturesDir  string
	ImageModel   string
	ImageSize    string
	ImageQuality string
	ImageStyle   string

	// Transcription flags
	TranscribeModel string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		WorkDir:         ".",
		OutputDir:       "storage/documents",
		Format:          "mp3",
		Provider:        "openai",
		OpenAIModel:     "gpt-4o-mini-tts",
		OpenAISpeed:     1.0,
		AskProvider:     "openai",
		PicturesDir:     "storage/pictures",
		ImageModel:      "dall-e-3",
		ImageSize:       "1024x1024",
		ImageQuality:    "standard",
		ImageStyle:      "natural",
		TranscribeModel: "whisper-1",
	}
}
