package observers

import "go.uber.org/zap"

// NewDefaultLoggingObserver creates a logging observer backed by a zap production logger
func NewDefaultLoggingObserver() (*LoggingObserver, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return NewLoggingObserver(logger), nil
}

// NewDevelopmentLoggingObserver creates a logging observer that also prints debug entries
func NewDevelopmentLoggingObserver() (*LoggingObserver, error) {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return NewLoggingObserver(logger), nil
}
