package middleware

import "net/http"

// inputCheck is a placeholder validation middleware. It never rejects a
// real request; it exists so frontends can exercise their input-error
// paths through the simulated failure flag.
type inputCheck struct{}

// NewInputCheck creates the input_check middleware.
func NewInputCheck() Middleware {
	return inputCheck{}
}

func (inputCheck) Name() string {
	return "input_check"
}

func (inputCheck) Handle(_ *http.Request, _ Settings, _ Metadata) *Verdict {
	return nil
}

func (inputCheck) FailVerdict() *Verdict {
	return ErrorVerdict(http.StatusBadRequest, "Simulated input validation failure")
}

func (inputCheck) ConfigRequirements() []Requirement {
	return []Requirement{
		{Key: "flag_driven", Description: "Allow one-shot simulated failures from the control panel", Kind: KindBool, Default: true},
	}
}

func (inputCheck) MetadataRequirements() []Requirement {
	return nil
}
