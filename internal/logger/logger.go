package logger

// Logger is the logging interface shared by all application components.
// Every call carries a component tag so output can be filtered per
// subsystem.
type Logger interface {
	Info(component, message string, fields map[string]interface{})
	Warning(component, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
	Debug(component, message string, fields map[string]interface{})
}

// NoOp discards everything. Used in tests.
type NoOp struct{}

func (NoOp) Info(component, message string, fields map[string]interface{})    {}
func (NoOp) Warning(component, message string, fields map[string]interface{}) {}
func (NoOp) Error(component string, err error, fields map[string]interface{}) {}
func (NoOp) Debug(component, message string, fields map[string]interface{})   {}
