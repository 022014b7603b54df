// Package generation defines the boundary between the application core
// and external language-model services. The core depends only on the
// Extractor interface; concrete implementations live under
// internal/platform (see platform/gemini).
package generation
