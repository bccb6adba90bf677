package logging

import "sync"

var (
	instance *Logger
	once     sync.Once
)

// InitLogger initializes the global logger instance. Safe to call more
// than once; only the first call takes effect.
func InitLogger(config *Config) error {
	var err error
	once.Do(func() {
		if vErr := config.Validate(); vErr != nil {
			err = vErr
			return
		}
		instance, err = NewLogger(config)
	})
	return err
}

// GetGlobalLogger returns the global logger instance. It panics if
// InitLogger has not been called.
func GetGlobalLogger() *Logger {
	if instance == nil {
		panic("logger not initialized - call logging.InitLogger() first")
	}
	return instance
}
