package config

import "sync"

type ExtractConfig struct {
	OCRFallback bool
}

var (
	extractConfig *ExtractConfig
	extractOnce   sync.Once
)

func LoadExtractConfig() *ExtractConfig {
	extractOnce.Do(func() {
		extractConfig = &ExtractConfig{
			OCRFallback: getEnvBool("EXTRACT_OCR_FALLBACK", false),
		}
	})
	return extractConfig
}
