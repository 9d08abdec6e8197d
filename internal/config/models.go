package config

// DefaultModels is the default model per backend. OLLAMA_MODEL and JAN_MODEL
// environment variables override these at load time.
var DefaultModels = map[string]string{
	BackendOllama: "llama3.1",
	BackendJan:    "llama 3.1",
	BackendMock:   "mock",
}

// BackendModels lists common model options per backend.
// Used by the interactive setup form.
var BackendModels = map[string][]string{
	BackendOllama: {
		"llama3.1",
		"llama3.2",
		"qwen2.5-coder",
		"codellama",
		"deepseek-coder",
		"mistral",
	},
	BackendJan: {
		"llama 3.1",
		"llama3.1-8b-instruct",
		"mistral-ins-7b-q4",
		"qwen2.5-7b-instruct",
	},
	BackendMock: {"mock"},
}
