package tesseract

type Option func(*Engine)

func WithLanguages(languages ...string) Option {
	return func(e *Engine) {
		if len(languages) > 0 {
			e.languages = languages
		}
	}
}
