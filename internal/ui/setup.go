package ui

import (
	"errors"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/gitmsg/gitmsg/internal/config"
)

// RunSetup launches a form over the persisted settings. It returns the
// updated config and whether the user confirmed; an abort leaves the
// original config untouched.
func RunSetup(cfg *config.Config) (*config.Config, bool, error) {
	out := *cfg

	backend := out.Backend
	ollamaModel := out.OllamaModel
	janModel := out.JanModel
	maxCharsStr := strconv.Itoa(out.MaxChars)
	chooser := out.Chooser
	analytics := out.Analytics
	vim := out.Vim
	num := out.Num
	redact := out.Redact

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("gitmsg configuration").
				Description("Settings are stored in "+pathHint()),

			huh.NewSelect[string]().
				Title("Backend").
				Options(
					huh.NewOption("Jan AI", config.BackendJan),
					huh.NewOption("Ollama", config.BackendOllama),
					huh.NewOption("Mock (offline)", config.BackendMock),
				).
				Value(&backend),

			huh.NewInput().
				Title("Ollama model").
				Suggestions(config.BackendModels[config.BackendOllama]).
				Value(&ollamaModel),

			huh.NewInput().
				Title("Jan model").
				Suggestions(config.BackendModels[config.BackendJan]).
				Value(&janModel),
		),

		huh.NewGroup(
			huh.NewInput().
				Title("Message length").
				Description("Suggested maximum characters per commit message").
				Value(&maxCharsStr).
				Validate(func(s string) error {
					v, err := strconv.Atoi(s)
					if err != nil {
						return err
					}
					if v <= 0 {
						return errors.New("must be positive")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Title("Chooser").
				Description("How candidates are presented").
				Options(
					huh.NewOption("Auto (fzf when installed)", config.ChooserAuto),
					huh.NewOption("fzf", config.ChooserFzf),
					huh.NewOption("Built-in picker", config.ChooserBuiltin),
				).
				Value(&chooser),
		),

		huh.NewGroup(
			huh.NewConfirm().
				Title("Analytics").
				Description("Print generation timing after each run?").
				Value(&analytics),

			huh.NewConfirm().
				Title("Vim navigation").
				Description("Navigate the chooser with j/k?").
				Value(&vim),

			huh.NewConfirm().
				Title("Numbered selection").
				Description("Label entries and accept with digit keys?").
				Value(&num),

			huh.NewConfirm().
				Title("Redact secrets").
				Description("Mask likely credentials before the diff leaves this machine?").
				Value(&redact),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return cfg, false, nil
		}
		return cfg, false, err
	}

	out.Backend = backend
	out.OllamaModel = ollamaModel
	out.JanModel = janModel
	if v, err := strconv.Atoi(maxCharsStr); err == nil {
		out.MaxChars = v
	}
	out.Chooser = chooser
	out.Analytics = analytics
	out.Vim = vim
	out.Num = num
	out.Redact = redact

	return &out, true, nil
}

func pathHint() string {
	if path, err := config.DefaultConfigPath(); err == nil {
		return path
	}
	return "your user config directory"
}
